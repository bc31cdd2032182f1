// SPDX-License-Identifier: MIT

package weightgen

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/regrid/operator"
)

// rectAxes extracts the longitude and latitude axis vectors of a
// rectilinear grid, verifying that longitude depends only on the column
// and latitude only on the row, and that both axes strictly increase.
//
// Returns ErrNotRectilinear on any violation.
func rectAxes(g *Grid) (lonAxis, latAxis []float64, err error) {
	var (
		rows = g.Lon.Shape[0]
		cols = g.Lon.Shape[1]
		r, c int
	)
	lonAxis = make([]float64, cols)
	latAxis = make([]float64, rows)
	for c = 0; c < cols; c++ {
		lonAxis[c] = g.Lon.Elements[c]
	}
	for r = 0; r < rows; r++ {
		latAxis[r] = g.Lat.Elements[r*cols]
	}
	for r = 0; r < rows; r++ {
		for c = 0; c < cols; c++ {
			if g.Lon.Elements[r*cols+c] != lonAxis[c] ||
				g.Lat.Elements[r*cols+c] != latAxis[r] {
				return nil, nil, fmt.Errorf("%w: cell (%d,%d) breaks axis separability",
					ErrNotRectilinear, r, c)
			}
		}
	}
	for c = 1; c < cols; c++ {
		if lonAxis[c] <= lonAxis[c-1] {
			return nil, nil, fmt.Errorf("%w: lon axis not strictly increasing at %d",
				ErrNotRectilinear, c)
		}
	}
	for r = 1; r < rows; r++ {
		if latAxis[r] <= latAxis[r-1] {
			return nil, nil, fmt.Errorf("%w: lat axis not strictly increasing at %d",
				ErrNotRectilinear, r)
		}
	}
	return lonAxis, latAxis, nil
}

// axisLocate finds the bracketing interval of v on a strictly increasing
// axis. It returns the two bracket indices and the fractional position t
// of v between them; values outside the axis extent clamp to the nearest
// edge with i0 == i1 and t == 0.
func axisLocate(axis []float64, v float64) (i0, i1 int, t float64) {
	n := len(axis)
	switch {
	case v <= axis[0]:
		return 0, 0, 0
	case v >= axis[n-1]:
		return n - 1, n - 1, 0
	}
	i := sort.SearchFloat64s(axis, v)
	if axis[i] == v {
		return i, i, 0
	}
	i0, i1 = i-1, i
	return i0, i1, (v - axis[i0]) / (axis[i1] - axis[i0])
}

// bilinearTriplets interpolates each destination cell from the four
// surrounding cells of a rectilinear source grid. Weights per
// destination cell sum to 1; zero weights are not emitted, so clamped
// edge cells yield one or two triplets only.
//
// Stage 1 (Axes): extract and verify the source axis vectors.
// Stage 2 (Locate): binary-search each destination lon/lat on the axes.
// Stage 3 (Emit): scatter the tensor-product weights.
//
// Complexity: O(nIn + nOut·log nIn) time.
func bilinearTriplets(src, dst *Grid) (*operator.Triplets, error) {
	lonAxis, latAxis, err := rectAxes(src)
	if err != nil {
		return nil, err
	}

	var (
		srcCols = src.Lon.Shape[1]
		nOut    = dst.Len()
		row     = make([]int32, 0, 4*nOut)
		col     = make([]int32, 0, 4*nOut)
		s       = make([]float64, 0, 4*nOut)
		i       int
	)

	emit := func(dstIdx, srcRow, srcCol int, w float64) {
		if w == 0 {
			return
		}
		row = append(row, int32(dstIdx))
		col = append(col, int32(srcRow*srcCols+srcCol))
		s = append(s, w)
	}

	for i = 0; i < nOut; i++ {
		c0, c1, tx := axisLocate(lonAxis, dst.Lon.Elements[i])
		r0, r1, ty := axisLocate(latAxis, dst.Lat.Elements[i])
		emit(i, r0, c0, (1-ty)*(1-tx))
		emit(i, r0, c1, (1-ty)*tx)
		emit(i, r1, c0, ty*(1-tx))
		emit(i, r1, c1, ty*tx)
	}

	return operator.NewTriplets(row, col, s)
}
