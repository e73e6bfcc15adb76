package kernel

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// quadrant offsets of the recursive Bayer construction
var bayerBlocks = [2][2]float64{
	{0, 2},
	{3, 1},
}

// Generate builds the normalized Bayer matrix of side 2^order by the
// recursive rule M(2n) = [[4M, 4M+2], [4M+3, 4M+1]].
func Generate(order int) (*mat.Dense, error) {
	if order < 1 || order > 8 {
		return nil, fmt.Errorf("bayer order %d out of range 1-8", order)
	}

	m := mat.NewDense(1, 1, []float64{0})
	for n := 1; n < 1<<order; n *= 2 {
		next := mat.NewDense(2*n, 2*n, nil)
		for bi := 0; bi < 2; bi++ {
			for bj := 0; bj < 2; bj++ {
				off := bayerBlocks[bi][bj]
				dst := next.Slice(bi*n, (bi+1)*n, bj*n, (bj+1)*n).(*mat.Dense)
				dst.Apply(func(_, _ int, v float64) float64 { return 4*v + off }, m)
			}
		}
		m = next
	}

	size, _ := m.Dims()
	m.Scale(1/float64(size*size), m)
	return m, nil
}

// Dense returns the kernel as a gonum matrix.
func (k Kernel) Dense() *mat.Dense {
	data := make([]float64, len(k.m))
	copy(data, k.m)
	return mat.NewDense(k.n, k.n, data)
}
