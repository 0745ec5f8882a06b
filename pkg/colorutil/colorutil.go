// Package colorutil provides shared color utilities for the Cutout application.
package colorutil

import (
	"fmt"
	"image/color"
	"strings"
)

// Common background colors offered as quick picks.
var (
	White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	Black = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
	Gray  = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
)

// NRGBAToHex formats a color as "#rrggbb". Alpha is dropped.
func NRGBAToHex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HexToNRGBA parses "#rrggbb" or "rrggbb" into an opaque color.
func HexToNRGBA(s string) (color.NRGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// Luminance returns the perceived brightness of a color in 0-255,
// using the Rec. 601 weights.
func Luminance(c color.NRGBA) float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}
