package palette

import (
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func TestGet_Known(t *testing.T) {
	p := Get("Amber")
	if p.Name != "amber" {
		t.Errorf("name: got %q", p.Name)
	}
	want := color.NRGBA{R: 0xff, G: 0xb0, B: 0x00, A: 255}
	if p.Foreground != want {
		t.Errorf("foreground: got %v, want %v", p.Foreground, want)
	}
}

func TestGet_UnknownFallsBack(t *testing.T) {
	if p := Get("no-such-palette"); p != Default {
		t.Errorf("got %+v, want default", p)
	}
}

func TestGet_ClassicIsDefault(t *testing.T) {
	if p := Get("classic"); p != Default {
		t.Errorf("classic preset %+v differs from Default", p)
	}
}

func TestParse(t *testing.T) {
	c, err := Parse("336699")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c != (color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}) {
		t.Errorf("got %v", c)
	}
	if _, err := Parse("#zzz"); err == nil {
		t.Error("invalid hex accepted")
	}
}

func TestHex(t *testing.T) {
	fg, bg := Get("amber").Hex()
	if fg != "#ffb000" || bg != "#1a0f00" {
		t.Errorf("got %s %s", fg, bg)
	}
}

func TestNames_Sorted(t *testing.T) {
	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("not sorted: %v", names)
		}
	}
}

func splitImg(w, h int, left, right color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := left
			if x >= w/2 {
				c = right
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func lightness(c color.NRGBA) float64 {
	cc, _ := colorful.MakeColor(c)
	l, _, _ := cc.Lab()
	return l
}

func TestFromImage_BrighterIsForeground(t *testing.T) {
	navy := color.NRGBA{R: 10, G: 20, B: 90, A: 255}
	sand := color.NRGBA{R: 230, G: 210, B: 160, A: 255}
	img := splitImg(64, 64, navy, sand)

	for _, m := range []Method{MethodDominant, MethodKMeans} {
		p, err := FromImage(img, m)
		if err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		if lightness(p.Foreground) <= lightness(p.Background) {
			t.Errorf("%s: foreground %v not brighter than background %v", m, p.Foreground, p.Background)
		}
	}
}

func TestFromImage_KMeansFindsBothTones(t *testing.T) {
	black := color.NRGBA{A: 255}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	p, err := FromImage(splitImg(32, 32, black, white), MethodKMeans)
	if err != nil {
		t.Fatalf("kmeans: %v", err)
	}
	if p.Foreground != white || p.Background != black {
		t.Errorf("got fg=%v bg=%v", p.Foreground, p.Background)
	}
}

func TestFromImage_UnknownMethod(t *testing.T) {
	if _, err := FromImage(image.NewNRGBA(image.Rect(0, 0, 2, 2)), "median"); err == nil {
		t.Error("unknown method accepted")
	}
}

func TestFromImage_UniformImageRejected(t *testing.T) {
	rust := color.NRGBA{R: 120, G: 80, B: 40, A: 255}
	img := splitImg(20, 20, rust, rust)
	for _, m := range []Method{MethodDominant, MethodKMeans} {
		p, err := FromImage(img, m)
		if err == nil {
			t.Errorf("%s: got single-tone palette %+v", m, p)
		}
	}
}

func TestDistinct(t *testing.T) {
	for _, name := range Names() {
		if !Get(name).Distinct() {
			t.Errorf("preset %s has equal tones", name)
		}
	}
	same := Palette{Foreground: Default.Foreground, Background: Default.Foreground}
	if same.Distinct() {
		t.Error("equal tones reported distinct")
	}
}
