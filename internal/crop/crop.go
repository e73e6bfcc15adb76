// Package crop derives the zoom crop rectangle and resamples it back to
// canvas size.
package crop

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Rect is a crop window inset symmetrically from the image edges.
type Rect struct {
	X, Y int // offsets from the left and top edges
	W, H int // W = width - 2X, H = height - 2Y
}

// Rectangle converts r to image coordinates relative to origin.
func (r Rect) Rectangle(origin image.Point) image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H).Add(origin)
}

// Angle returns atan(w/h) for a source of size w x h. Offsets grow with
// sin on the x axis and cos on the y axis, so the crop keeps the aspect.
func Angle(w, h int) float64 {
	return math.Atan(float64(w) / float64(h))
}

func offsets(zoom int, theta float64) (x, y int) {
	z := float64(zoom)
	return int(math.Round(z * math.Sin(theta))), int(math.Round(z * math.Cos(theta)))
}

func fits(zoom int, theta float64, w, h int) bool {
	x, y := offsets(zoom, theta)
	return w-2*x >= 1 && h-2*y >= 1
}

// MaxZoom returns the largest zoom whose crop still has width and
// height of at least one pixel.
func MaxZoom(theta float64, w, h int) int {
	if w < 1 || h < 1 {
		return 0
	}
	// round(v) <= f exactly when v < f+0.5
	limit := func(f int, s float64) int {
		if s <= 0 {
			return math.MaxInt32
		}
		return int(math.Ceil((float64(f)+0.5)/s)) - 1
	}
	z := min(limit((w-1)/2, math.Sin(theta)), limit((h-1)/2, math.Cos(theta)))
	for z > 0 && !fits(z, theta, w, h) {
		z--
	}
	for fits(z+1, theta, w, h) && z < math.MaxInt32 {
		z++
	}
	return max(z, 0)
}

// Compute returns the crop window for zoom on a w x h source. Zoom is
// clamped to [0, MaxZoom] so the window never degenerates.
func Compute(zoom int, theta float64, w, h int) Rect {
	zoom = max(0, min(zoom, MaxZoom(theta, w, h)))
	x, y := offsets(zoom, theta)
	return Rect{X: x, Y: y, W: w - 2*x, H: h - 2*y}
}

// Resample crops r out of img and scales it to tw x th with
// nearest-neighbor sampling. The result has origin 0,0.
func Resample(img image.Image, r Rect, tw, th int) *image.NRGBA {
	b := img.Bounds()
	window := img
	if r.X != 0 || r.Y != 0 || r.W != b.Dx() || r.H != b.Dy() {
		window = imaging.Crop(img, r.Rectangle(b.Min))
	}
	return imaging.Resize(window, tw, th, imaging.NearestNeighbor)
}
