package segment

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"cutout/internal/buffer"
)

// GrabCut segments with OpenCV's GrabCut algorithm, initialized from a
// rectangle slightly inset from the image edges (the subject is assumed
// to be roughly centered, with the border belonging to the background).
type GrabCut struct {
	// Iterations is the number of GrabCut refinement passes.
	// Zero means the default of 5.
	Iterations int
}

// borderFrac is the fraction of each edge assumed to be background when
// seeding the initial rectangle.
const borderFrac = 0.04

// Segment implements Provider.
func (p GrabCut) Segment(ctx context.Context, src *buffer.Buffer) (*buffer.Buffer, error) {
	iters := p.Iterations
	if iters <= 0 {
		iters = 5
	}

	rgba, err := gocv.ImageToMatRGBA(src.ToImage())
	if err != nil {
		return nil, fmt.Errorf("failed to convert image: %w", err)
	}
	defer rgba.Close()

	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.CvtColor(rgba, &bgr, gocv.ColorRGBAToBGR)

	w, h := src.Width(), src.Height()
	mx := int(float64(w) * borderFrac)
	my := int(float64(h) * borderFrac)
	if mx < 1 {
		mx = 1
	}
	if my < 1 {
		my = 1
	}
	rect := image.Rect(mx, my, w-mx, h-my)

	mask := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8U)
	defer mask.Close()
	bgdModel := gocv.NewMat()
	defer bgdModel.Close()
	fgdModel := gocv.NewMat()
	defer fgdModel.Close()

	gocv.GrabCut(bgr, &mask, rect, &bgdModel, &fgdModel, iters, gocv.GCInitWithRect)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// GrabCut labels: 0 background, 1 foreground, 2 probable background,
	// 3 probable foreground. Odd values are foreground.
	out := src.Clone()
	pix := out.Pix()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := uint8(0)
			if mask.GetUCharAt(y, x)&1 == 1 {
				a = 255
			}
			pix[(y*w+x)*4+3] = a
		}
	}
	return out, nil
}
