// Package maskstat computes summary statistics over a mask for display
// in the tool panel.
package maskstat

import (
	"gonum.org/v1/gonum/stat"

	"cutout/internal/buffer"
)

// Stats summarizes the visibility state of a mask.
type Stats struct {
	// Coverage is the fraction of samples at least half visible.
	Coverage float64
	// MeanAlpha is the mean sample value scaled to [0,1].
	MeanAlpha float64
}

// Compute walks the mask once and returns its statistics.
func Compute(m *buffer.Mask) Stats {
	pix := m.Pix()
	if len(pix) == 0 {
		return Stats{}
	}

	values := make([]float64, len(pix))
	visible := 0
	for i, v := range pix {
		values[i] = float64(v) / 255
		if v >= 128 {
			visible++
		}
	}

	return Stats{
		Coverage:  float64(visible) / float64(len(pix)),
		MeanAlpha: stat.Mean(values, nil),
	}
}
