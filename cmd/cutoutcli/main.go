// Command cutoutcli removes the background of an image and writes the
// composited result as PNG, without the editor UI.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"cutout/internal/buffer"
	"cutout/internal/compose"
	"cutout/internal/maskstat"
	"cutout/internal/segment"
	"cutout/pkg/colorutil"

	_ "golang.org/x/image/tiff"
)

func main() {
	inPath := flag.String("in", "", "Path to source image (TIFF, PNG, or JPEG)")
	outPath := flag.String("out", "cutout.png", "Output PNG path")
	bgHex := flag.String("bg", "", "Solid background color as #rrggbb (default: transparent)")
	bgImage := flag.String("bg-image", "", "Background image path (overrides -bg)")
	useThreshold := flag.Bool("threshold", false, "Use the threshold segmenter instead of GrabCut")
	iterations := flag.Int("iterations", 5, "GrabCut iteration count")
	workingSize := flag.Int("max-dim", compose.DefaultWorkingSize, "Downsample so the long edge does not exceed this")
	flag.Parse()

	if *inPath == "" {
		fmt.Println("Usage: cutoutcli -in <path> [-out cutout.png] [-bg #rrggbb | -bg-image <path>]")
		os.Exit(1)
	}

	img, format, err := loadImage(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	src := compose.FitWorking(img, *workingSize)
	fmt.Printf("Loaded %s image, working size %dx%d pixels\n", format, src.Width(), src.Height())

	var provider segment.Provider = segment.GrabCut{Iterations: *iterations}
	if *useThreshold {
		provider = segment.Threshold{}
	}

	segmented, err := provider.Segment(context.Background(), src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Segmentation failed: %v\n", err)
		os.Exit(1)
	}
	mask, err := buffer.MaskFromAlpha(segmented, src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Segmentation failed: %v\n", err)
		os.Exit(1)
	}

	st := maskstat.Compute(mask)
	fmt.Printf("Foreground coverage: %.1f%% (mean alpha %.2f)\n", st.Coverage*100, st.MeanAlpha)

	bg, err := chooseBackground(*bgHex, *bgImage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	result, err := compose.Composite(src, mask, bg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Compositing failed: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := compose.ExportPNG(result, out); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *outPath)
}

func loadImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	return image.Decode(f)
}

// chooseBackground resolves the background flags. An image background
// is scaled to cover the foreground dimensions during compositing.
func chooseBackground(hex, imagePath string) (compose.Background, error) {
	if imagePath != "" {
		img, _, err := loadImage(imagePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load background image: %w", err)
		}
		return compose.ImageBackground{Buf: buffer.FromImage(img)}, nil
	}
	if hex != "" {
		c, err := colorutil.HexToNRGBA(hex)
		if err != nil {
			return nil, err
		}
		return compose.SolidColor{C: c}, nil
	}
	return compose.Transparent{}, nil
}
