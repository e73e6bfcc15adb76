// Package palette defines the two output tones of a dithered image.
package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is the foreground/background pair. Pixels brighter than their
// threshold take Foreground.
type Palette struct {
	Name       string
	Foreground color.NRGBA
	Background color.NRGBA
}

// Default is white on black.
var Default = Palette{
	Name:       "classic",
	Foreground: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	Background: color.NRGBA{R: 0, G: 0, B: 0, A: 255},
}

// Built-in presets as foreground/background hex pairs.
var presets = map[string][2]string{
	"classic":  {"#ffffff", "#000000"},
	"paper":    {"#f4f1e8", "#1b1b1b"},
	"amber":    {"#ffb000", "#1a0f00"},
	"phosphor": {"#33ff66", "#001a08"},
	"cga":      {"#55ffff", "#aa00aa"},
}

// Get returns a preset by name. Falls back to classic if unknown.
func Get(name string) Palette {
	hex, ok := presets[strings.ToLower(name)]
	if !ok {
		return Default
	}
	fg, _ := Parse(hex[0])
	bg, _ := Parse(hex[1])
	return Palette{Name: strings.ToLower(name), Foreground: fg, Background: bg}
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Parse converts a "#rrggbb" string to an opaque color.
func Parse(hex string) (color.NRGBA, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return toNRGBA(c), nil
}

// Hex formats both tones for display.
func (p Palette) Hex() (fg, bg string) {
	f, _ := colorful.MakeColor(p.Foreground)
	b, _ := colorful.MakeColor(p.Background)
	return f.Hex(), b.Hex()
}

// Distinct reports whether the two tones differ.
func (p Palette) Distinct() bool {
	return p.Foreground != p.Background
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
