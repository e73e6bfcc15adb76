package pipeline

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/AnyUserName/bayer-cli/internal/crop"
	"github.com/AnyUserName/bayer-cli/internal/dither"
	"github.com/AnyUserName/bayer-cli/internal/encoder"
	"github.com/AnyUserName/bayer-cli/internal/palette"
	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Load opens and decodes an image file into an NRGBA buffer with origin
// 0,0. EXIF orientation is applied.
func Load(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	src := imaging.Clone(img)
	if src.Rect.Empty() {
		return nil, fmt.Errorf("decode %s: empty image", path)
	}
	return src, nil
}

// RenderFrame produces one two-tone frame: the crop window of src is
// resampled back to src's size and dithered.
func RenderFrame(src *image.NRGBA, r crop.Rect, p dither.Params, pal palette.Palette) *image.NRGBA {
	b := src.Bounds()
	return p.Apply(crop.Resample(src, r, b.Dx(), b.Dy()), pal)
}

// ResolvePalette returns cfg.Palette, or one derived from src when a
// derivation method is configured.
func ResolvePalette(src image.Image, cfg Config) (palette.Palette, error) {
	if cfg.PaletteMethod == "" {
		return cfg.Palette, nil
	}
	return palette.FromImage(src, cfg.PaletteMethod)
}

// convertResult holds the result of converting a single source image.
type convertResult struct {
	output string
	bytes  int
	err    error
}

// convertImage handles a single source image: decode, dither, encode.
func convertImage(input, output string, cfg Config, registry *encoder.Registry) convertResult {
	result := convertResult{output: output}

	src, err := Load(input)
	if err != nil {
		result.err = err
		return result
	}
	pal, err := ResolvePalette(src, cfg)
	if err != nil {
		result.err = fmt.Errorf("palette for %s: %w", input, err)
		return result
	}

	b := src.Bounds()
	full := crop.Compute(0, crop.Angle(b.Dx(), b.Dy()), b.Dx(), b.Dy())
	frame := RenderFrame(src, full, cfg.Params, pal)

	n, err := registry.Save(output, frame, cfg.Quality)
	if err != nil {
		result.err = fmt.Errorf("save %s: %w", output, err)
		return result
	}
	result.bytes = n
	return result
}
