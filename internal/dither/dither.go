// Package dither converts images to two tones with ordered (Bayer) dithering.
package dither

import (
	"image"

	"github.com/AnyUserName/bayer-cli/internal/kernel"
	"github.com/AnyUserName/bayer-cli/internal/palette"
	"github.com/disintegration/imaging"
)

// Params are the user-tunable dithering parameters.
type Params struct {
	Level    kernel.Level
	Darkness float64 // added to every threshold, unbounded
	Inverted bool
}

// DefaultParams returns the 4x4 matrix with no bias.
func DefaultParams() Params {
	return Params{Level: kernel.DefaultLevel}
}

// Apply dithers img with the kernel selected by p.Level.
func (p Params) Apply(img image.Image, pal palette.Palette) *image.NRGBA {
	return Dither(img, kernel.For(p.Level), p.Darkness, p.Inverted, pal)
}

// Dither maps every pixel of img to pal.Foreground or pal.Background.
// A pixel is foreground when its intensity (R+G+B)/(3*255) exceeds the
// kernel threshold at its position plus darkness; inverted flips the
// comparison. Alpha is ignored. The result has img's size with origin 0,0.
func Dither(img image.Image, k kernel.Kernel, darkness float64, inverted bool, pal palette.Palette) *image.NRGBA {
	if k.Size() == 0 {
		panic("dither: empty kernel")
	}

	src, ok := img.(*image.NRGBA)
	if !ok || src.Rect.Min != (image.Point{}) {
		src = imaging.Clone(img)
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	fg := [4]uint8{pal.Foreground.R, pal.Foreground.G, pal.Foreground.B, 255}
	bg := [4]uint8{pal.Background.R, pal.Background.G, pal.Background.B, 255}

	for y := 0; y < h; y++ {
		si := y * src.Stride
		di := y * dst.Stride
		for x := 0; x < w; x++ {
			s := src.Pix[si : si+3 : si+3]
			intensity := float64(uint32(s[0])+uint32(s[1])+uint32(s[2])) / (3 * 255)
			threshold := k.At(x, y) + darkness

			on := intensity > threshold
			if inverted {
				on = !on
			}
			if on {
				copy(dst.Pix[di:di+4], fg[:])
			} else {
				copy(dst.Pix[di:di+4], bg[:])
			}
			si += 4
			di += 4
		}
	}
	return dst
}
