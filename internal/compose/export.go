package compose

import (
	"fmt"
	"image/png"
	"io"

	"cutout/internal/buffer"
)

// ExportPNG encodes the final composite to PNG. Transparent-background
// composites keep their alpha channel; the other variants are opaque.
func ExportPNG(buf *buffer.Buffer, w io.Writer) error {
	if err := png.Encode(w, buf.ToImage()); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}
