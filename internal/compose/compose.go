// Package compose combines the source image, the live mask, and a
// background specification into the final output buffer.
package compose

import (
	"fmt"
	"image/color"

	"cutout/internal/buffer"
)

// Checkerboard tile size and tones, fixed regardless of image content.
const checkerTile = 8

var (
	checkerLight = color.NRGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF}
	checkerDark  = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xFF}
)

// AlphaApply returns a copy of src whose alpha channel is replaced by the
// mask, sample for sample. This is the foreground-only view.
func AlphaApply(src *buffer.Buffer, mask *buffer.Mask) (*buffer.Buffer, error) {
	if src.Width() != mask.Width() || src.Height() != mask.Height() {
		return nil, fmt.Errorf("%w: source %dx%d vs mask %dx%d",
			buffer.ErrDimensionMismatch,
			src.Width(), src.Height(), mask.Width(), mask.Height())
	}
	out := src.Clone()
	pix := out.Pix()
	mpix := mask.Pix()
	for i, a := range mpix {
		pix[i*4+3] = a
	}
	return out, nil
}

// Checkerboard renders the two-tone transparency pattern into a new
// buffer of the given dimensions.
func Checkerboard(width, height int) *buffer.Buffer {
	out := buffer.New(width, height)
	pix := out.Pix()
	for y := 0; y < height; y++ {
		ty := (y / checkerTile) & 1
		for x := 0; x < width; x++ {
			c := checkerLight
			if ((x/checkerTile)&1)^ty == 1 {
				c = checkerDark
			}
			i := (y*width + x) * 4
			pix[i] = c.R
			pix[i+1] = c.G
			pix[i+2] = c.B
			pix[i+3] = c.A
		}
	}
	return out
}

// Composite produces the final output for the given background variant.
// For Transparent the result carries real alpha (suitable for PNG export);
// the other variants are fully opaque.
func Composite(src *buffer.Buffer, mask *buffer.Mask, bg Background) (*buffer.Buffer, error) {
	fg, err := AlphaApply(src, mask)
	if err != nil {
		return nil, err
	}

	switch b := bg.(type) {
	case Transparent:
		return fg, nil
	case SolidColor:
		out := buffer.New(src.Width(), src.Height())
		out.Fill(b.C)
		drawOver(out, fg)
		return out, nil
	case ImageBackground:
		out := CoverFit(b.Buf, src.Width(), src.Height())
		drawOver(out, fg)
		return out, nil
	default:
		return nil, fmt.Errorf("compose: unhandled background variant %T", bg)
	}
}

// Preview is Composite with the transparent variant rendered over the
// checkerboard so removed regions are visually distinct on screen.
func Preview(src *buffer.Buffer, mask *buffer.Mask, bg Background) (*buffer.Buffer, error) {
	if _, ok := bg.(Transparent); ok {
		fg, err := AlphaApply(src, mask)
		if err != nil {
			return nil, err
		}
		out := Checkerboard(src.Width(), src.Height())
		drawOver(out, fg)
		return out, nil
	}
	return Composite(src, mask, bg)
}

// drawOver blends fg onto an opaque dst of the same dimensions using
// standard "over" alpha blending, per channel:
// dst = fg*a + dst*(1-a).
func drawOver(dst, fg *buffer.Buffer) {
	dpix := dst.Pix()
	fpix := fg.Pix()
	for i := 0; i < len(dpix); i += 4 {
		a := uint32(fpix[i+3])
		switch a {
		case 255:
			dpix[i] = fpix[i]
			dpix[i+1] = fpix[i+1]
			dpix[i+2] = fpix[i+2]
		case 0:
			// keep background
		default:
			inv := 255 - a
			dpix[i] = uint8((uint32(fpix[i])*a + uint32(dpix[i])*inv + 127) / 255)
			dpix[i+1] = uint8((uint32(fpix[i+1])*a + uint32(dpix[i+1])*inv + 127) / 255)
			dpix[i+2] = uint8((uint32(fpix[i+2])*a + uint32(dpix[i+2])*inv + 127) / 255)
		}
		dpix[i+3] = 255
	}
}
