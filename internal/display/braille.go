package display

import (
	"image"
	"image/color"
)

// dotBit maps a dot at (col, row) within a braille cell to its bit.
// Col 0 rows 0-3 are bits 0,1,2,6; col 1 rows 0-3 are bits 3,4,5,7.
var dotBit = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// grid is a block of braille cells.
type grid struct {
	cols, rows int
	runes      []rune
}

func (g grid) at(cx, cy int) rune { return g.runes[cy*g.cols+cx] }

// plot fits frame into at most maxCols x maxRows braille cells keeping
// its aspect ratio. Each dot covers a rectangle of source pixels and is
// set when at least half of them are foreground.
func plot(frame *image.NRGBA, fg color.NRGBA, maxCols, maxRows int) grid {
	b := frame.Bounds()
	fw, fh := b.Dx(), b.Dy()
	if fw < 1 || fh < 1 || maxCols < 1 || maxRows < 1 {
		return grid{}
	}

	// dots are close to square on a typical terminal font
	scale := min(float64(maxCols*2)/float64(fw), float64(maxRows*4)/float64(fh))
	dotsW := max(1, int(float64(fw)*scale))
	dotsH := max(1, int(float64(fh)*scale))

	g := grid{cols: (dotsW + 1) / 2, rows: (dotsH + 3) / 4}
	g.runes = make([]rune, g.cols*g.rows)
	for i := range g.runes {
		g.runes[i] = '\u2800'
	}

	for dy := 0; dy < dotsH; dy++ {
		y0, y1 := span(dy, dotsH, fh)
		for dx := 0; dx < dotsW; dx++ {
			x0, x1 := span(dx, dotsW, fw)
			if !covered(frame, fg, x0, y0, x1, y1) {
				continue
			}
			g.runes[(dy/4)*g.cols+dx/2] |= dotBit[dy%4][dx%2]
		}
	}
	return g
}

// span returns the source range [lo, hi) covered by dot i of n over a
// source of size size; it is never empty.
func span(i, n, size int) (lo, hi int) {
	lo = i * size / n
	hi = (i + 1) * size / n
	if hi <= lo {
		hi = lo + 1
	}
	return lo, min(hi, size)
}

func covered(frame *image.NRGBA, fg color.NRGBA, x0, y0, x1, y1 int) bool {
	on, total := 0, 0
	for y := y0; y < y1; y++ {
		row := y * frame.Stride
		for x := x0; x < x1; x++ {
			p := frame.Pix[row+x*4 : row+x*4+3 : row+x*4+3]
			if p[0] == fg.R && p[1] == fg.G && p[2] == fg.B {
				on++
			}
			total++
		}
	}
	return 2*on >= total
}
