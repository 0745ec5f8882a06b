// Package panels provides UI panels for the application.
package panels

import (
	"fmt"
	"image"
	"image/color"

	"cutout/internal/brush"
	"cutout/internal/buffer"
	"cutout/internal/compose"
	"cutout/internal/maskstat"
	"cutout/internal/session"
	"cutout/pkg/colorutil"
	"cutout/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	bgChoiceTransparent = "Transparent"
	bgChoiceColor       = "Solid color"
	bgChoiceImage       = "Image"
)

// ToolPanel holds the brush controls, history buttons, background
// picker, and the mask statistics readout.
type ToolPanel struct {
	session *session.Session
	prefs   *prefs.Prefs
	window  fyne.Window

	container *fyne.Container

	modeRadio   *widget.RadioGroup
	radiusSlide *widget.Slider
	radiusLabel *widget.Label

	undoBtn  *widget.Button
	redoBtn  *widget.Button
	resetBtn *widget.Button

	bgRadio *widget.RadioGroup
	bgColor color.NRGBA

	statsLabel *widget.Label
}

// NewToolPanel creates the tool panel bound to the given session.
func NewToolPanel(s *session.Session, p *prefs.Prefs) *ToolPanel {
	tp := &ToolPanel{
		session: s,
		prefs:   p,
		bgColor: colorutil.White,
	}

	tp.buildBrushControls()
	tp.buildHistoryControls()
	tp.buildBackgroundControls()
	tp.statsLabel = widget.NewLabel("")

	tp.container = container.NewVBox(
		widget.NewLabelWithStyle("Brush", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		tp.modeRadio,
		tp.radiusLabel,
		tp.radiusSlide,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("History", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(2, tp.undoBtn, tp.redoBtn),
		tp.resetBtn,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Background", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		tp.bgRadio,
		widget.NewSeparator(),
		tp.statsLabel,
	)

	s.On(session.EventHistoryChanged, func(interface{}) { tp.syncHistoryButtons() })
	s.On(session.EventMaskChanged, func(interface{}) { tp.syncStats() })
	s.On(session.EventImageLoaded, func(interface{}) {
		tp.syncHistoryButtons()
		tp.syncStats()
	})

	tp.applyPrefs()
	tp.syncHistoryButtons()
	return tp
}

// Container returns the panel container.
func (tp *ToolPanel) Container() fyne.CanvasObject {
	return tp.container
}

// SetWindow sets the parent window for dialogs.
func (tp *ToolPanel) SetWindow(w fyne.Window) {
	tp.window = w
}

func (tp *ToolPanel) buildBrushControls() {
	tp.modeRadio = widget.NewRadioGroup(
		[]string{brush.Erase.String(), brush.Restore.String()},
		func(choice string) {
			mode := brush.Erase
			if choice == brush.Restore.String() {
				mode = brush.Restore
			}
			_, radius := tp.session.Brush()
			tp.session.SetBrush(mode, radius)
			tp.prefs.SetString(prefs.KeyBrushMode, choice)
		})
	tp.modeRadio.SetSelected(brush.Erase.String())

	tp.radiusLabel = widget.NewLabel(fmt.Sprintf("Radius: %d px", session.DefaultBrushRadius))
	tp.radiusSlide = widget.NewSlider(1, 64)
	tp.radiusSlide.SetValue(float64(session.DefaultBrushRadius))
	tp.radiusSlide.OnChanged = func(v float64) {
		mode, _ := tp.session.Brush()
		tp.session.SetBrush(mode, int(v))
		tp.radiusLabel.SetText(fmt.Sprintf("Radius: %d px", int(v)))
		tp.prefs.SetInt(prefs.KeyBrushRadius, int(v))
	}
}

func (tp *ToolPanel) buildHistoryControls() {
	tp.undoBtn = widget.NewButton("Undo", func() { tp.session.Undo() })
	tp.redoBtn = widget.NewButton("Redo", func() { tp.session.Redo() })
	tp.resetBtn = widget.NewButton("Reset mask", func() { tp.session.ResetMask() })
}

func (tp *ToolPanel) buildBackgroundControls() {
	tp.bgRadio = widget.NewRadioGroup(
		[]string{bgChoiceTransparent, bgChoiceColor, bgChoiceImage},
		func(choice string) {
			switch choice {
			case bgChoiceTransparent:
				tp.session.SetBackground(compose.Transparent{})
				tp.prefs.SetString(prefs.KeyBackground, choice)
			case bgChoiceColor:
				tp.pickColor()
			case bgChoiceImage:
				tp.pickImage()
			}
		})
	tp.bgRadio.SetSelected(bgChoiceTransparent)
}

// pickColor shows the color dialog, then switches to a solid background.
func (tp *ToolPanel) pickColor() {
	if tp.window == nil {
		tp.session.SetBackground(compose.SolidColor{C: tp.bgColor})
		return
	}
	picker := dialog.NewColorPicker("Background color", "", func(c color.Color) {
		r, g, b, a := c.RGBA()
		tp.bgColor = color.NRGBA{
			R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8),
		}
		tp.session.SetBackground(compose.SolidColor{C: tp.bgColor})
		tp.prefs.SetString(prefs.KeyBackground, bgChoiceColor)
		tp.prefs.SetString(prefs.KeyBgColor, colorutil.NRGBAToHex(tp.bgColor))
	}, tp.window)
	picker.Advanced = true
	picker.Show()
}

// pickImage shows the file dialog, then switches to an image background.
func (tp *ToolPanel) pickImage() {
	if tp.window == nil {
		return
	}
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		img, _, err := image.Decode(reader)
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to decode background image: %w", err), tp.window)
			return
		}
		tp.session.SetBackground(compose.ImageBackground{Buf: buffer.FromImage(img)})
		tp.prefs.SetString(prefs.KeyBackground, bgChoiceImage)
	}, tp.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".tiff", ".tif"}))
	fd.Show()
}

// applyPrefs restores brush settings from the previous run.
func (tp *ToolPanel) applyPrefs() {
	radius := tp.prefs.Int(prefs.KeyBrushRadius, session.DefaultBrushRadius)
	tp.radiusSlide.SetValue(float64(radius))
	tp.radiusLabel.SetText(fmt.Sprintf("Radius: %d px", radius))

	mode := tp.prefs.String(prefs.KeyBrushMode, brush.Erase.String())
	tp.modeRadio.SetSelected(mode)

	if hex := tp.prefs.String(prefs.KeyBgColor, ""); hex != "" {
		if c, err := colorutil.HexToNRGBA(hex); err == nil {
			tp.bgColor = c
		}
	}
}

func (tp *ToolPanel) syncHistoryButtons() {
	if tp.session.CanUndo() {
		tp.undoBtn.Enable()
	} else {
		tp.undoBtn.Disable()
	}
	if tp.session.CanRedo() {
		tp.redoBtn.Enable()
	} else {
		tp.redoBtn.Disable()
	}
}

func (tp *ToolPanel) syncStats() {
	mask := tp.session.Mask()
	if mask == nil {
		tp.statsLabel.SetText("")
		return
	}
	st := maskstat.Compute(mask)
	tp.statsLabel.SetText(fmt.Sprintf("Foreground: %.1f%%\nMean alpha: %.2f",
		st.Coverage*100, st.MeanAlpha))
}
