// Package buffer provides the pixel buffer and mask primitives for the editor.
package buffer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// ErrOutOfBounds is returned for any access outside a buffer's allocated
// dimensions. Callers that want clipping must clip before accessing.
var ErrOutOfBounds = errors.New("buffer: coordinates out of bounds")

// ErrDimensionMismatch is returned when two buffers that must share
// dimensions do not.
var ErrDimensionMismatch = errors.New("buffer: dimension mismatch")

// Buffer is a fixed-size RGBA pixel buffer, 4 bytes per pixel.
type Buffer struct {
	width  int
	height int
	pix    []uint8
}

// New creates a zeroed (fully transparent) buffer of the given dimensions.
func New(width, height int) *Buffer {
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*4),
	}
}

// FromImage copies an image into a new buffer, normalizing to RGBA.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	b := New(bounds.Dx(), bounds.Dy())

	// Normalize through NRGBA so alpha stays straight (non-premultiplied).
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	copy(b.pix, nrgba.Pix)
	return b
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Contains reports whether (x, y) is inside the buffer.
func (b *Buffer) Contains(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the pixel at (x, y).
func (b *Buffer) At(x, y int) (color.NRGBA, error) {
	if !b.Contains(x, y) {
		return color.NRGBA{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
	}
	i := (y*b.width + x) * 4
	return color.NRGBA{R: b.pix[i], G: b.pix[i+1], B: b.pix[i+2], A: b.pix[i+3]}, nil
}

// Set writes the pixel at (x, y).
func (b *Buffer) Set(x, y int, c color.NRGBA) error {
	if !b.Contains(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
	}
	i := (y*b.width + x) * 4
	b.pix[i] = c.R
	b.pix[i+1] = c.G
	b.pix[i+2] = c.B
	b.pix[i+3] = c.A
	return nil
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c color.NRGBA) {
	for i := 0; i < len(b.pix); i += 4 {
		b.pix[i] = c.R
		b.pix[i+1] = c.G
		b.pix[i+2] = c.B
		b.pix[i+3] = c.A
	}
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	c := New(b.width, b.height)
	copy(c.pix, b.pix)
	return c
}

// Pix returns the raw RGBA pixel data. The slice aliases the buffer's
// storage; mutate it only from the owning component.
func (b *Buffer) Pix() []uint8 {
	return b.pix
}

// ToImage converts the buffer to an image.NRGBA for display or encoding.
func (b *Buffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.pix)
	return img
}
