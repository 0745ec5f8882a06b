// Package brush applies circular erase/restore stamps to a mask.
package brush

import "cutout/internal/buffer"

// Mode selects what a stamp writes into the mask.
type Mode int

const (
	// Erase removes foreground: stamped samples become 0.
	Erase Mode = iota
	// Restore brings foreground back: stamped samples become 255.
	Restore
)

func (m Mode) String() string {
	switch m {
	case Erase:
		return "Erase"
	case Restore:
		return "Restore"
	default:
		return "Unknown"
	}
}

// value returns the sample a stamp writes for this mode.
func (m Mode) value() uint8 {
	if m == Restore {
		return 255
	}
	return 0
}

// Stamp fills a solid disc of the given radius centered at (cx, cy) in
// buffer coordinates. Pixels exactly on the boundary are included. Parts
// of the disc outside the mask are clipped; this is the one place where
// clipping is intentional rather than an error. Stamping is idempotent.
func Stamp(mask *buffer.Mask, cx, cy, radius int, mode Mode) {
	if radius < 0 {
		return
	}
	v := mode.value()
	pix := mask.Pix()
	w, h := mask.Width(), mask.Height()
	rr := radius * radius

	minY := max(cy-radius, 0)
	maxY := min(cy+radius, h-1)
	minX := max(cx-radius, 0)
	maxX := min(cx+radius, w-1)

	for y := minY; y <= maxY; y++ {
		dy := y - cy
		row := y * w
		for x := minX; x <= maxX; x++ {
			dx := x - cx
			if dx*dx+dy*dy <= rr {
				pix[row+x] = v
			}
		}
	}
}
