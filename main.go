// Package main provides the entry point for the Cutout application.
package main

import (
	"flag"
	"image"
	"log/slog"
	"os"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"

	"cutout/internal/segment"
	"cutout/internal/session"
	"cutout/internal/version"
	"cutout/ui/mainwindow"
	"cutout/ui/prefs"
	"cutout/ui/theme"

	"fyne.io/fyne/v2/app"
)

func main() {
	var (
		useThreshold = flag.Bool("threshold", false, "use the simple threshold segmenter instead of GrabCut")
		iterations   = flag.Int("iterations", 5, "GrabCut iteration count")
		verbose      = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("starting cutout", "version", version.Version, "commit", version.GitCommit)

	var provider segment.Provider = segment.GrabCut{Iterations: *iterations}
	if *useThreshold {
		provider = segment.Threshold{}
	}

	sess := session.New(session.Config{Provider: provider})
	appPrefs := prefs.Load()

	fyneApp := app.NewWithID("io.cutout.editor")
	fyneApp.Settings().SetTheme(&theme.EditorTheme{})
	win := mainwindow.New(fyneApp, sess, appPrefs)

	// An image path on the command line is opened immediately.
	if args := flag.Args(); len(args) > 0 {
		if img, err := loadImageFile(args[0]); err != nil {
			slog.Error("failed to open image", "path", args[0], "error", err)
		} else {
			sess.Load(img)
		}
	}

	win.ShowAndRun()
}

func loadImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}
