// Package kernel holds the Bayer threshold matrices used for ordered dithering.
package kernel

import (
	"fmt"
	"strconv"
	"strings"
)

// Level selects the detail of the dither pattern.
type Level int

const (
	Level1 Level = 1 // 2x2
	Level2 Level = 2 // 4x4
	Level3 Level = 3 // 8x8

	// DefaultLevel is used for unknown levels and on reset.
	DefaultLevel = Level2
)

// Kernel is a square threshold matrix tiled across an image.
// Values lie in [0,1) and are unique within the matrix.
type Kernel struct {
	n int
	m []float64 // row-major, m[x*n+y]
}

// Size returns the side length N of the matrix.
func (k Kernel) Size() int { return k.n }

// At returns the threshold for image coordinate (x, y). The matrix wraps
// in both directions, so any coordinate is valid.
func (k Kernel) At(x, y int) float64 {
	n := k.n
	x %= n
	y %= n
	if x < 0 {
		x += n
	}
	if y < 0 {
		y += n
	}
	return k.m[x*n+y]
}

var (
	bayer2 = [2 * 2]float64{
		0.0 / 4, 2.0 / 4,
		3.0 / 4, 1.0 / 4,
	}
	bayer4 = [4 * 4]float64{
		0.0 / 16, 8.0 / 16, 2.0 / 16, 10.0 / 16,
		12.0 / 16, 4.0 / 16, 14.0 / 16, 6.0 / 16,
		3.0 / 16, 11.0 / 16, 1.0 / 16, 9.0 / 16,
		15.0 / 16, 7.0 / 16, 13.0 / 16, 5.0 / 16,
	}
	bayer8 = [8 * 8]float64{
		0.0 / 64, 32.0 / 64, 8.0 / 64, 40.0 / 64, 2.0 / 64, 34.0 / 64, 10.0 / 64, 42.0 / 64,
		48.0 / 64, 16.0 / 64, 56.0 / 64, 24.0 / 64, 50.0 / 64, 18.0 / 64, 58.0 / 64, 26.0 / 64,
		12.0 / 64, 44.0 / 64, 4.0 / 64, 36.0 / 64, 14.0 / 64, 46.0 / 64, 6.0 / 64, 38.0 / 64,
		60.0 / 64, 28.0 / 64, 52.0 / 64, 20.0 / 64, 62.0 / 64, 30.0 / 64, 54.0 / 64, 22.0 / 64,
		3.0 / 64, 35.0 / 64, 11.0 / 64, 43.0 / 64, 1.0 / 64, 33.0 / 64, 9.0 / 64, 41.0 / 64,
		51.0 / 64, 19.0 / 64, 59.0 / 64, 27.0 / 64, 49.0 / 64, 17.0 / 64, 57.0 / 64, 25.0 / 64,
		15.0 / 64, 47.0 / 64, 7.0 / 64, 39.0 / 64, 13.0 / 64, 45.0 / 64, 5.0 / 64, 37.0 / 64,
		63.0 / 64, 31.0 / 64, 55.0 / 64, 23.0 / 64, 61.0 / 64, 29.0 / 64, 53.0 / 64, 21.0 / 64,
	}

	kernels = map[Level]Kernel{
		Level1: {n: 2, m: bayer2[:]},
		Level2: {n: 4, m: bayer4[:]},
		Level3: {n: 8, m: bayer8[:]},
	}
)

// For returns the matrix for a detail level. Unknown levels fall back
// to the 4x4 matrix.
func For(level Level) Kernel {
	if k, ok := kernels[level]; ok {
		return k
	}
	return kernels[DefaultLevel]
}

// Levels lists the supported levels in ascending detail.
func Levels() []Level {
	return []Level{Level1, Level2, Level3}
}

// Valid reports whether l is one of the supported levels.
func (l Level) Valid() bool {
	_, ok := kernels[l]
	return ok
}

func (l Level) String() string {
	if !l.Valid() {
		return fmt.Sprintf("level(%d)", int(l))
	}
	n := kernels[l].n
	return fmt.Sprintf("%d (%dx%d)", int(l), n, n)
}

// ParseLevel parses a command-line detail level. Any integer is accepted;
// values outside 1-3 select the default matrix at lookup time.
func ParseLevel(s string) (Level, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid detail level %q: %w", s, err)
	}
	return Level(v), nil
}
