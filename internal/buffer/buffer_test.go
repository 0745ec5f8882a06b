package buffer

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := New(40, 30)
	if b.Width() != 40 || b.Height() != 30 {
		t.Errorf("expected 40x30, got %dx%d", b.Width(), b.Height())
	}

	c, err := b.At(20, 15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != (color.NRGBA{}) {
		t.Errorf("new buffer should be zeroed, got %v", c)
	}
}

func TestBufferSetAt(t *testing.T) {
	b := New(10, 10)
	want := color.NRGBA{R: 255, G: 128, B: 7, A: 200}
	if err := b.Set(3, 4, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := b.At(3, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestBufferOutOfBounds(t *testing.T) {
	b := New(10, 10)

	cases := []struct{ x, y int }{
		{-1, 5}, {5, -1}, {10, 5}, {5, 10},
	}
	for _, tc := range cases {
		if _, err := b.At(tc.x, tc.y); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("At(%d,%d): expected ErrOutOfBounds, got %v", tc.x, tc.y, err)
		}
		if err := b.Set(tc.x, tc.y, color.NRGBA{}); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Set(%d,%d): expected ErrOutOfBounds, got %v", tc.x, tc.y, err)
		}
	}
}

func TestBufferClone(t *testing.T) {
	b := New(5, 5)
	b.Fill(color.NRGBA{R: 10, G: 20, B: 30, A: 40})

	c := b.Clone()
	b.Fill(color.NRGBA{})

	got, _ := c.At(2, 2)
	if got != (color.NRGBA{R: 10, G: 20, B: 30, A: 40}) {
		t.Errorf("clone should not track the original, got %v", got)
	}
}

func TestFromImagePreservesAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 128})
	src.SetNRGBA(1, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 0})

	b := FromImage(src)
	got, _ := b.At(0, 0)
	if got != (color.NRGBA{R: 200, G: 100, B: 50, A: 128}) {
		t.Errorf("straight alpha not preserved, got %v", got)
	}
}

func TestToImageRoundTrip(t *testing.T) {
	b := New(3, 3)
	b.Set(1, 2, color.NRGBA{R: 9, G: 8, B: 7, A: 255})

	img := b.ToImage()
	if img.NRGBAAt(1, 2) != (color.NRGBA{R: 9, G: 8, B: 7, A: 255}) {
		t.Errorf("round trip lost pixel, got %v", img.NRGBAAt(1, 2))
	}
}
