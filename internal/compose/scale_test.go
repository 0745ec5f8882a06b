package compose

import (
	"image"
	"image/color"
	"testing"

	"cutout/internal/buffer"
)

func TestCoverGeometryWideBackground(t *testing.T) {
	// 100x50 into 200x200: scale max(2, 4) = 4, intermediate 400x200,
	// 100px cropped symmetrically off each side.
	sw, sh, ox, oy := coverGeometry(100, 50, 200, 200)
	if sw != 400 || sh != 200 {
		t.Errorf("expected scaled 400x200, got %dx%d", sw, sh)
	}
	if ox != 100 || oy != 0 {
		t.Errorf("expected crop offset (100,0), got (%d,%d)", ox, oy)
	}
}

func TestCoverGeometryTallBackground(t *testing.T) {
	sw, sh, ox, oy := coverGeometry(50, 100, 200, 200)
	if sw != 200 || sh != 400 {
		t.Errorf("expected scaled 200x400, got %dx%d", sw, sh)
	}
	if ox != 0 || oy != 100 {
		t.Errorf("expected crop offset (0,100), got (%d,%d)", ox, oy)
	}
}

func TestCoverGeometryExactFit(t *testing.T) {
	sw, sh, ox, oy := coverGeometry(200, 200, 200, 200)
	if sw != 200 || sh != 200 || ox != 0 || oy != 0 {
		t.Errorf("identity fit expected, got %dx%d at (%d,%d)", sw, sh, ox, oy)
	}
}

func TestCoverFitCropsCentered(t *testing.T) {
	// Left half red, right half blue. After cover-fit into a square the
	// seam stays centered.
	bg := buffer.New(100, 50)
	for y := 0; y < 50; y++ {
		for x := 0; x < 100; x++ {
			c := color.NRGBA{R: 255, A: 255}
			if x >= 50 {
				c = color.NRGBA{B: 255, A: 255}
			}
			bg.Set(x, y, c)
		}
	}

	out := CoverFit(bg, 200, 200)
	if out.Width() != 200 || out.Height() != 200 {
		t.Fatalf("expected 200x200, got %dx%d", out.Width(), out.Height())
	}

	left, _ := out.At(10, 100)
	if left.R != 255 || left.B != 0 {
		t.Errorf("left side should be red, got %v", left)
	}
	right, _ := out.At(190, 100)
	if right.B != 255 || right.R != 0 {
		t.Errorf("right side should be blue, got %v", right)
	}
}

func TestFitWorkingDownsamples(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1200, 900))
	out := FitWorking(img, 600)

	if out.Width() != 600 || out.Height() != 450 {
		t.Errorf("expected 600x450, got %dx%d", out.Width(), out.Height())
	}
}

func TestFitWorkingKeepsSmallImages(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 300, 200))
	out := FitWorking(img, 600)

	if out.Width() != 300 || out.Height() != 200 {
		t.Errorf("small image must not be scaled, got %dx%d", out.Width(), out.Height())
	}
}

func TestFitWorkingPortrait(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 450, 1800))
	out := FitWorking(img, 600)

	if out.Width() != 150 || out.Height() != 600 {
		t.Errorf("expected 150x600, got %dx%d", out.Width(), out.Height())
	}
}
