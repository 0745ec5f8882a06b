// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"image"
	"path/filepath"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"

	"cutout/internal/session"
	"cutout/internal/version"
	"cutout/ui/canvas"
	"cutout/ui/panels"
	"cutout/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	defaultWidth  = 1100
	defaultHeight = 750
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	session   *session.Session
	prefs     *prefs.Prefs
	canvas    *canvas.EditorCanvas
	toolPanel *panels.ToolPanel
	statusBar *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, s *session.Session, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Cutout")

	mw := &MainWindow{
		Window:  win,
		app:     fyneApp,
		session: s,
		prefs:   p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupEventHandlers()

	w := p.Int(prefs.KeyWindowW, defaultWidth)
	h := p.Int(prefs.KeyWindowH, defaultHeight)
	win.Resize(fyne.NewSize(float32(w), float32(h)))
	win.SetOnClosed(mw.saveWindowState)

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewEditorCanvas(mw.session)

	mw.toolPanel = panels.NewToolPanel(mw.session, mw.prefs)
	mw.toolPanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Open an image to begin")

	split := container.NewHSplit(
		mw.toolPanel.Container(),
		mw.canvas,
	)
	split.SetOffset(0.22)

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mw.onOpenImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PNG...", mw.onExportPNG),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.onUndo),
		fyne.NewMenuItem("Redo", mw.onRedo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reset Mask", mw.onResetMask),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

// setupShortcuts registers the keyboard shortcuts. They share the menu
// action handlers so behavior stays identical between the two paths.
func (mw *MainWindow) setupShortcuts() {
	bind := func(key fyne.KeyName, mod fyne.KeyModifier, action func()) {
		sc := &desktop.CustomShortcut{KeyName: key, Modifier: mod}
		mw.Canvas().AddShortcut(sc, func(fyne.Shortcut) { action() })
	}

	bind(fyne.KeyZ, fyne.KeyModifierControl, mw.onUndo)
	bind(fyne.KeyY, fyne.KeyModifierControl, mw.onRedo)
	bind(fyne.KeyZ, fyne.KeyModifierControl|fyne.KeyModifierShift, mw.onRedo)
	bind(fyne.KeyS, fyne.KeyModifierControl, mw.onExportPNG)

	mw.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case '[':
			mw.adjustRadius(-2)
		case ']':
			mw.adjustRadius(2)
		}
	})
}

// setupEventHandlers registers for session events.
func (mw *MainWindow) setupEventHandlers() {
	mw.session.On(session.EventImageLoaded, func(data interface{}) {
		mw.updateStatus("Image loaded")
	})

	mw.session.On(session.EventLoadFailed, func(data interface{}) {
		if err, ok := data.(error); ok {
			mw.updateStatus("Load failed: " + err.Error())
		}
	})

	mw.session.On(session.EventBackgroundChanged, func(data interface{}) {
		mw.updateStatus("Background changed")
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDir, "")
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeyLastDir, filepath.Dir(filePath))
}

// saveWindowState persists window geometry and preferences on close.
func (mw *MainWindow) saveWindowState() {
	size := mw.Canvas().Size()
	mw.prefs.SetInt(prefs.KeyWindowW, int(size.Width))
	mw.prefs.SetInt(prefs.KeyWindowH, int(size.Height))
	if err := mw.prefs.Save(); err != nil {
		fmt.Printf("Failed to save preferences: %v\n", err)
	}
}

func (mw *MainWindow) adjustRadius(delta int) {
	mode, radius := mw.session.Brush()
	radius += delta
	if radius < 1 {
		radius = 1
	}
	if radius > 64 {
		radius = 64
	}
	mw.session.SetBrush(mode, radius)
	mw.updateStatus(fmt.Sprintf("Brush radius: %d px", radius))
}

// Menu action handlers

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)

		img, _, err := image.Decode(reader)
		if err != nil {
			dialog.ShowError(fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err), mw.Window)
			return
		}

		mw.updateStatus("Segmenting " + filepath.Base(path) + "...")
		mw.SetTitle("Cutout - " + filepath.Base(path))
		mw.session.Load(img)
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".tiff", ".tif"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportPNG() {
	if !mw.session.Ready() {
		mw.updateStatus("Nothing to export")
		return
	}
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		mw.saveLastDir(path)

		if err := mw.session.Export(writer); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Exported " + filepath.Base(path))
	}, mw.Window)
	fd.SetFileName("cutout.png")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onUndo() {
	if mw.session.Undo() {
		mw.updateStatus("Undo")
	}
}

func (mw *MainWindow) onRedo() {
	if mw.session.Redo() {
		mw.updateStatus("Redo")
	}
}

func (mw *MainWindow) onResetMask() {
	mw.session.ResetMask()
	mw.updateStatus("Mask reset")
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Cutout",
		fmt.Sprintf("Cutout %s\n\nMask-based background removal editor.", version.Version),
		mw.Window)
}
