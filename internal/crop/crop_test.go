package crop

import (
	"image"
	"image/color"
	"testing"
)

func patternImg(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 13), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func TestCompute_ZeroZoomIsFullImage(t *testing.T) {
	r := Compute(0, Angle(640, 480), 640, 480)
	if r != (Rect{X: 0, Y: 0, W: 640, H: 480}) {
		t.Errorf("got %+v", r)
	}
}

func TestCompute_OffsetsFollowAspect(t *testing.T) {
	// 3:4 -> sin = 0.6, cos = 0.8
	theta := Angle(300, 400)
	r := Compute(50, theta, 300, 400)
	if r.X != 30 || r.Y != 40 {
		t.Errorf("offsets: got (%d,%d), want (30,40)", r.X, r.Y)
	}
	if r.W != 300-60 || r.H != 400-80 {
		t.Errorf("size: got %dx%d", r.W, r.H)
	}
}

func TestCompute_NegativeZoomIsZero(t *testing.T) {
	theta := Angle(10, 10)
	if r := Compute(-25, theta, 10, 10); r != Compute(0, theta, 10, 10) {
		t.Errorf("got %+v", r)
	}
}

func TestCompute_ClampsToAtLeastOnePixel(t *testing.T) {
	sizes := [][2]int{{1, 1}, {2, 2}, {3, 7}, {640, 480}, {1, 500}, {500, 1}, {17, 4}}
	for _, s := range sizes {
		w, h := s[0], s[1]
		theta := Angle(w, h)
		for _, z := range []int{0, 1, 5, 100, 10000, 1 << 30} {
			r := Compute(z, theta, w, h)
			if r.W < 1 || r.H < 1 {
				t.Fatalf("%dx%d zoom %d: degenerate %+v", w, h, z, r)
			}
			if r.W != w-2*r.X || r.H != h-2*r.Y {
				t.Fatalf("%dx%d zoom %d: asymmetric %+v", w, h, z, r)
			}
		}
	}
}

func TestMaxZoom_IsMaximal(t *testing.T) {
	for _, s := range [][2]int{{640, 480}, {33, 9}, {5, 5}, {2, 100}} {
		w, h := s[0], s[1]
		theta := Angle(w, h)
		z := MaxZoom(theta, w, h)
		if !fits(z, theta, w, h) {
			t.Errorf("%dx%d: max zoom %d does not fit", w, h, z)
		}
		if fits(z+1, theta, w, h) {
			t.Errorf("%dx%d: zoom %d also fits", w, h, z+1)
		}
	}
}

func TestResample_ZeroZoomIdentity(t *testing.T) {
	src := patternImg(31, 17)
	out := Resample(src, Compute(0, Angle(31, 17), 31, 17), 31, 17)
	if out.Bounds() != src.Bounds() {
		t.Fatalf("bounds: %v", out.Bounds())
	}
	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("pix[%d]: got %d, want %d", i, out.Pix[i], src.Pix[i])
		}
	}
}

func TestResample_NearestNeighborUpscale(t *testing.T) {
	src := patternImg(8, 8)
	r := Rect{X: 2, Y: 2, W: 4, H: 4}
	out := Resample(src, r, 8, 8)
	if out.Bounds() != image.Rect(0, 0, 8, 8) {
		t.Fatalf("bounds: %v", out.Bounds())
	}
	// Each source pixel of the 4x4 window becomes a 2x2 block.
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			want := src.NRGBAAt(2+x/2, 2+y/2)
			if got := out.NRGBAAt(x, y); got != want {
				t.Fatalf("(%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestResample_RespectsOrigin(t *testing.T) {
	full := patternImg(12, 12)
	sub := full.SubImage(image.Rect(4, 4, 12, 12))
	out := Resample(sub, Rect{X: 1, Y: 1, W: 6, H: 6}, 6, 6)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			if out.NRGBAAt(x, y) != full.NRGBAAt(5+x, 5+y) {
				t.Fatalf("(%d,%d) sampled from wrong source pixel", x, y)
			}
		}
	}
}
