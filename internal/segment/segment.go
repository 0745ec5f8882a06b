// Package segment defines the boundary to the external foreground
// segmentation model and ships two providers: a GrabCut-based one and a
// simple corner-sampling threshold fallback.
package segment

import (
	"context"

	"cutout/internal/buffer"
)

// Provider produces a segmented result for a source buffer: an RGBA
// buffer of identical dimensions whose alpha channel marks the
// foreground (255) and background (0). The editor only consumes the
// alpha channel; providers are free to leave color untouched.
type Provider interface {
	Segment(ctx context.Context, src *buffer.Buffer) (*buffer.Buffer, error)
}

// Threshold is a model-free provider that treats anything close to the
// image's corner colors as background. It is crude but dependency-free,
// and doubles as the provider used in tests.
type Threshold struct {
	// Tolerance is the per-channel distance from the sampled corner
	// color below which a pixel counts as background. Zero means the
	// default of 48.
	Tolerance int
}

// Segment implements Provider.
func (p Threshold) Segment(_ context.Context, src *buffer.Buffer) (*buffer.Buffer, error) {
	tol := p.Tolerance
	if tol <= 0 {
		tol = 48
	}

	w, h := src.Width(), src.Height()
	out := src.Clone()
	pix := out.Pix()

	// Average the four corner pixels as the background reference.
	var br, bg, bb int
	corners := [][2]int{{0, 0}, {w - 1, 0}, {0, h - 1}, {w - 1, h - 1}}
	for _, c := range corners {
		i := (c[1]*w + c[0]) * 4
		br += int(pix[i])
		bg += int(pix[i+1])
		bb += int(pix[i+2])
	}
	br /= 4
	bg /= 4
	bb /= 4

	for i := 0; i < len(pix); i += 4 {
		if absDiff(int(pix[i]), br) <= tol &&
			absDiff(int(pix[i+1]), bg) <= tol &&
			absDiff(int(pix[i+2]), bb) <= tol {
			pix[i+3] = 0
		} else {
			pix[i+3] = 255
		}
	}
	return out, nil
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
