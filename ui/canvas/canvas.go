// Package canvas provides the editor canvas: preview display and
// pointer-driven brush strokes.
package canvas

import (
	"image"
	"image/color"

	"cutout/internal/session"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	xdraw "golang.org/x/image/draw"
)

// surround is the color drawn around the letterboxed preview.
var surround = color.NRGBA{R: 0x28, G: 0x28, B: 0x28, A: 0xFF}

// EditorCanvas displays the live composite and forwards pointer events
// to the session as brush strokes. Every stroke event triggers a full
// recomposite and redraw before the next event is handled.
type EditorCanvas struct {
	widget.BaseWidget

	session *session.Session
	raster  *fynecanvas.Raster
}

var _ fyne.Draggable = (*EditorCanvas)(nil)
var _ fyne.Tappable = (*EditorCanvas)(nil)
var _ desktop.Hoverable = (*EditorCanvas)(nil)

// NewEditorCanvas creates a canvas bound to the given session. The
// canvas subscribes to the session's state changes, so every stamp,
// undo, redo, or background switch triggers a redraw.
func NewEditorCanvas(s *session.Session) *EditorCanvas {
	ec := &EditorCanvas{session: s}
	ec.raster = fynecanvas.NewRaster(ec.draw)
	ec.ExtendBaseWidget(ec)

	redraw := func(interface{}) { ec.Refresh() }
	s.On(session.EventMaskChanged, redraw)
	s.On(session.EventBackgroundChanged, redraw)
	s.On(session.EventImageLoaded, redraw)
	return ec
}

// Refresh redraws the preview.
func (ec *EditorCanvas) Refresh() {
	ec.raster.Refresh()
	ec.BaseWidget.Refresh()
}

// draw is the raster drawing function.
func (ec *EditorCanvas) draw(w, h int) image.Image {
	output := image.NewNRGBA(image.Rect(0, 0, w, h))
	fillNRGBA(output, surround)

	preview, err := ec.session.Preview()
	if err != nil {
		// Nothing loaded yet; show the plain surround.
		return output
	}

	bw, bh := preview.Width(), preview.Height()
	if bw == 0 || bh == 0 || w == 0 || h == 0 {
		return output
	}

	// Contain-fit, centered; same geometry the pointer mapper assumes.
	scale := float64(w) / float64(bw)
	if s := float64(h) / float64(bh); s < scale {
		scale = s
	}
	dw := int(float64(bw) * scale)
	dh := int(float64(bh) * scale)
	ox := (w - dw) / 2
	oy := (h - dh) / 2

	dst := image.Rect(ox, oy, ox+dw, oy+dh)
	src := preview.ToImage()
	xdraw.ApproxBiLinear.Scale(output, dst, src, src.Bounds(), xdraw.Src, nil)
	return output
}

func fillNRGBA(img *image.NRGBA, c color.NRGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}

// pointerToBuffer maps an event position to buffer coordinates using
// the widget's size at this instant.
func (ec *EditorCanvas) pointerToBuffer(pos fyne.Position) (int, int, bool) {
	size := ec.Size()
	bw, bh := ec.session.Size()
	return BufferPoint(pos.X, pos.Y, size.Width, size.Height, bw, bh)
}

// Tapped applies a single stamp: a click is a one-stamp stroke.
func (ec *EditorCanvas) Tapped(ev *fyne.PointEvent) {
	x, y, _ := ec.pointerToBuffer(ev.Position)
	if ec.session.StrokeBegin(x, y) {
		ec.session.StrokeEnd()
	}
}

// Dragged continues (or begins) a brush stroke.
func (ec *EditorCanvas) Dragged(ev *fyne.DragEvent) {
	x, y, _ := ec.pointerToBuffer(ev.Position)
	if !ec.session.StrokeActive() {
		ec.session.StrokeBegin(x, y)
		return
	}
	ec.session.StrokeMove(x, y)
}

// DragEnd finishes the active stroke.
func (ec *EditorCanvas) DragEnd() {
	ec.session.StrokeEnd()
}

// MouseIn implements desktop.Hoverable.
func (ec *EditorCanvas) MouseIn(*desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable.
func (ec *EditorCanvas) MouseMoved(*desktop.MouseEvent) {}

// MouseOut ends the stroke when the pointer leaves the canvas.
func (ec *EditorCanvas) MouseOut() {
	ec.session.StrokeEnd()
}

// CreateRenderer implements fyne.Widget.
func (ec *EditorCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ec.raster)
}
