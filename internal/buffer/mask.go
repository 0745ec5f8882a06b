package buffer

import (
	"bytes"
	"fmt"
)

// Mask is a single-channel visibility buffer matching a source buffer's
// dimensions. 255 means fully visible (foreground), 0 fully removed.
type Mask struct {
	width  int
	height int
	pix    []uint8
}

// NewMask creates a mask of the given dimensions with every sample 0.
func NewMask(width, height int) *Mask {
	return &Mask{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height),
	}
}

// MaskFromAlpha seeds a mask from the alpha channel of a segmented result.
// The result must match the source buffer's dimensions exactly.
func MaskFromAlpha(segmented, source *Buffer) (*Mask, error) {
	if segmented.Width() != source.Width() || segmented.Height() != source.Height() {
		return nil, fmt.Errorf("%w: segmented %dx%d vs source %dx%d",
			ErrDimensionMismatch,
			segmented.Width(), segmented.Height(), source.Width(), source.Height())
	}
	m := NewMask(segmented.Width(), segmented.Height())
	pix := segmented.Pix()
	for i := range m.pix {
		m.pix[i] = pix[i*4+3]
	}
	return m, nil
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int {
	return m.width
}

// Height returns the mask height in pixels.
func (m *Mask) Height() int {
	return m.height
}

// Contains reports whether (x, y) is inside the mask.
func (m *Mask) Contains(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// At returns the sample at (x, y).
func (m *Mask) At(x, y int) (uint8, error) {
	if !m.Contains(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, m.width, m.height)
	}
	return m.pix[y*m.width+x], nil
}

// Set writes the sample at (x, y).
func (m *Mask) Set(x, y int, v uint8) error {
	if !m.Contains(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, m.width, m.height)
	}
	m.pix[y*m.width+x] = v
	return nil
}

// Fill sets every sample to v.
func (m *Mask) Fill(v uint8) {
	for i := range m.pix {
		m.pix[i] = v
	}
}

// Clone returns an independent copy of the mask.
func (m *Mask) Clone() *Mask {
	c := NewMask(m.width, m.height)
	copy(c.pix, m.pix)
	return c
}

// CopyFrom overwrites the mask's contents with src's. The dimensions
// must match; masks never resize during an editing session.
func (m *Mask) CopyFrom(src *Mask) error {
	if src.width != m.width || src.height != m.height {
		return fmt.Errorf("%w: %dx%d vs %dx%d",
			ErrDimensionMismatch, src.width, src.height, m.width, m.height)
	}
	copy(m.pix, src.pix)
	return nil
}

// Equal reports whether two masks have identical dimensions and contents.
func (m *Mask) Equal(other *Mask) bool {
	return m.width == other.width && m.height == other.height &&
		bytes.Equal(m.pix, other.pix)
}

// Pix returns the raw sample data. The slice aliases the mask's storage.
func (m *Mask) Pix() []uint8 {
	return m.pix
}
