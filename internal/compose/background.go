package compose

import (
	"image/color"

	"cutout/internal/buffer"
)

// Background selects what the refined foreground is composited over.
// This is a sealed interface: the three variants below are the only
// implementations, and the Compositor switches over them exhaustively.
type Background interface {
	backgroundMarker()
}

// Transparent keeps the background fully transparent; the preview shows a
// checkerboard under it.
type Transparent struct{}

func (Transparent) backgroundMarker() {}

// SolidColor fills the background with a flat color.
type SolidColor struct {
	C color.NRGBA
}

func (SolidColor) backgroundMarker() {}

// ImageBackground places a user-supplied image behind the foreground,
// scaled with cover-fit so it covers the canvas without letterboxing.
type ImageBackground struct {
	Buf *buffer.Buffer
}

func (ImageBackground) backgroundMarker() {}
