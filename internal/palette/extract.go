package palette

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// Method selects how a palette is derived from an image.
type Method string

const (
	MethodDominant Method = "dominant"
	MethodKMeans   Method = "kmeans"
)

// maxSamples bounds the kmeans dataset for large sources.
const maxSamples = 12000

// FromImage derives a two-tone palette from the image's colors. The
// brighter of the two picked colors becomes the foreground.
func FromImage(img image.Image, method Method) (Palette, error) {
	var cols []colorful.Color
	switch method {
	case MethodKMeans:
		cols = kmeansColors(img)
	case MethodDominant:
		cols = dominantColors(img)
	default:
		return Palette{}, fmt.Errorf("unknown palette method %q", method)
	}
	if len(cols) < 2 {
		return Palette{}, fmt.Errorf("%s: image has fewer than two distinct colors", method)
	}

	fg, bg := cols[0], cols[1]
	lf, _, _ := fg.Lab()
	lb, _, _ := bg.Lab()
	if lb > lf {
		fg, bg = bg, fg
	}
	pal := Palette{
		Name:       string(method),
		Foreground: toNRGBA(fg),
		Background: toNRGBA(bg),
	}
	if !pal.Distinct() {
		return Palette{}, fmt.Errorf("%s: image has fewer than two distinct colors", method)
	}
	return pal, nil
}

// dominantColors returns the heaviest color and the candidate farthest
// from it in Lab space.
func dominantColors(img image.Image) []colorful.Color {
	cands := dominantcolor.FindWeight(img, 8)
	if len(cands) == 0 {
		return nil
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].Weight > cands[j].Weight })

	first, _ := colorful.MakeColor(cands[0].RGBA)
	out := []colorful.Color{first}
	best, bestD := -1, 0.0
	for i := 1; i < len(cands); i++ {
		c, _ := colorful.MakeColor(cands[i].RGBA)
		// weight keeps tiny specks from winning on contrast alone
		d := first.DistanceLab(c) * math.Sqrt(cands[i].Weight)
		if d > bestD {
			best, bestD = i, d
		}
	}
	if best < 0 {
		return out
	}
	c, _ := colorful.MakeColor(cands[best].RGBA)
	return append(out, c)
}

// kmeansColors partitions subsampled pixels into two clusters and returns
// their centers, most populated first.
func kmeansColors(img image.Image) []colorful.Color {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	step := 1
	if w*h > maxSamples {
		step = int(math.Sqrt(float64(w*h)/float64(maxSamples))) + 1
	}

	var dataset clusters.Observations
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255,
				float64(c.G) / 255,
				float64(c.B) / 255,
			})
		}
	}
	if len(dataset) < 2 {
		return nil
	}

	cc, err := kmeans.New().Partition(dataset, 2)
	if err != nil {
		return nil
	}
	sort.Slice(cc, func(i, j int) bool {
		return len(cc[i].Observations) > len(cc[j].Observations)
	})

	var out []colorful.Color
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		out = append(out, colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped())
	}
	return out
}
