package maskstat

import (
	"math"
	"testing"

	"cutout/internal/buffer"
)

func TestComputeFullMask(t *testing.T) {
	m := buffer.NewMask(10, 10)
	m.Fill(255)

	s := Compute(m)
	if s.Coverage != 1 {
		t.Errorf("expected full coverage, got %f", s.Coverage)
	}
	if s.MeanAlpha != 1 {
		t.Errorf("expected mean alpha 1, got %f", s.MeanAlpha)
	}
}

func TestComputeEmptyMask(t *testing.T) {
	m := buffer.NewMask(10, 10)

	s := Compute(m)
	if s.Coverage != 0 || s.MeanAlpha != 0 {
		t.Errorf("expected zeros, got %+v", s)
	}
}

func TestComputeHalfVisible(t *testing.T) {
	m := buffer.NewMask(10, 10)
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			m.Set(x, y, 255)
		}
	}

	s := Compute(m)
	if s.Coverage != 0.5 {
		t.Errorf("expected coverage 0.5, got %f", s.Coverage)
	}
	if math.Abs(s.MeanAlpha-0.5) > 1e-9 {
		t.Errorf("expected mean alpha 0.5, got %f", s.MeanAlpha)
	}
}
