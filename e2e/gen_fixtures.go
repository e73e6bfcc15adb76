//go:build ignore

// gen_fixtures creates small test images for manual smoke runs of
// bayer convert and bayer view.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(filepath.Join(dir, "edge"), 0o755)

	// Horizontal gray ramp: every Bayer level shows all its tones.
	writeImage(filepath.Join(dir, "ramp.png"), grayRamp(512, 128))

	// Photo-like radial falloff (JPEG, 400x300).
	writeJPEG(filepath.Join(dir, "disc.jpg"), radial(400, 300))

	// Degenerate aspect ratios for zoom clamping.
	writeImage(filepath.Join(dir, "edge", "row.png"), grayRamp(300, 1))
	writeImage(filepath.Join(dir, "edge", "column.png"), grayRamp(1, 300))
	writeImage(filepath.Join(dir, "edge", "pixel.png"), grayRamp(1, 1))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 5 fixtures in %s\n", dir)
}

func grayRamp(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if w > 1 {
				v = uint8(x * 255 / (w - 1))
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func radial(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2
	maxD := math.Hypot(cx, cy)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy) / maxD
			v := 1 - d*d
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(v * 250),
				G: uint8(v * 200),
				B: uint8(v * 120),
				A: 255,
			})
		}
	}
	return img
}

func writeImage(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}

func writeJPEG(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 85}); err != nil {
		panic(err)
	}
}
