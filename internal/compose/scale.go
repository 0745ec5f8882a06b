package compose

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"cutout/internal/buffer"
)

// DefaultWorkingSize bounds the long edge of the working image so that
// per-stroke recomposition stays cheap. Product policy, not a hard limit.
const DefaultWorkingSize = 600

// CoverFit scales bg so it fully covers a width x height canvas while
// preserving aspect ratio, then center-crops the overflow.
func CoverFit(bg *buffer.Buffer, width, height int) *buffer.Buffer {
	sw, sh, ox, oy := coverGeometry(bg.Width(), bg.Height(), width, height)

	src := bg.ToImage()
	scaled := image.NewNRGBA(image.Rect(0, 0, sw, sh))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.Copy(out, image.Point{}, scaled, image.Rect(ox, oy, ox+width, oy+height), xdraw.Src, nil)
	return buffer.FromImage(out)
}

// coverGeometry computes the scaled size of the background and the
// top-left crop offset inside it. Scale factor is
// max(width/bgWidth, height/bgHeight) so the scaled image always covers
// the canvas; the crop is centered.
func coverGeometry(bw, bh, width, height int) (sw, sh, ox, oy int) {
	sx := float64(width) / float64(bw)
	sy := float64(height) / float64(bh)
	scale := sx
	if sy > scale {
		scale = sy
	}

	sw = int(float64(bw)*scale + 0.5)
	sh = int(float64(bh)*scale + 0.5)
	if sw < width {
		sw = width
	}
	if sh < height {
		sh = height
	}
	ox = (sw - width) / 2
	oy = (sh - height) / 2
	return sw, sh, ox, oy
}

// FitWorking downsamples img proportionally when its long edge exceeds
// maxDim. Images already within the limit are returned converted but
// unscaled. A non-positive maxDim falls back to DefaultWorkingSize.
func FitWorking(img image.Image, maxDim int) *buffer.Buffer {
	if maxDim <= 0 {
		maxDim = DefaultWorkingSize
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	long := w
	if h > long {
		long = h
	}
	if long <= maxDim {
		return buffer.FromImage(img)
	}

	scale := float64(maxDim) / float64(long)
	nw := int(float64(w)*scale + 0.5)
	nh := int(float64(h)*scale + 0.5)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	scaled := image.NewNRGBA(image.Rect(0, 0, nw, nh))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Src, nil)
	return buffer.FromImage(scaled)
}
