// SPDX-License-Identifier: MIT
// Package denseref: dense gonum-backed reference regridder.

package denseref

import (
	"errors"
	"fmt"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/regrid/grid"
	"github.com/katalvlaran/regrid/operator"
)

// ErrShapeMismatch indicates a data array or output shape incompatible
// with the dense operator's dimensions.
var ErrShapeMismatch = errors.New("denseref: array shape incompatible with operator dimensions")

// Materialize scatters t into a dense (nOut × nIn) matrix, summing
// duplicate (row, col) contributions.
// Errors: the operator package's validation sentinels.
// Complexity: O(nOut×nIn + nnz).
func Materialize(t *operator.Triplets, nOut, nIn int) (*mat.Dense, error) {
	// Reuse the canonical triplet validator; same contract as the
	// production materializer.
	if err := operator.Validate(t, nOut, nIn); err != nil {
		return nil, fmt.Errorf("denseref.Materialize: %w", err)
	}

	w := mat.NewDense(nOut, nIn, nil)
	nnz := t.Len()
	for k := 0; k < nnz; k++ { // accumulate, never overwrite
		i, j := int(t.Row[k]), int(t.Col[k])
		w.Set(i, j, w.At(i, j)+t.S[k])
	}

	return w, nil
}

// Apply broadcasts the dense operator over the extra dimensions of in,
// returning a fresh array shaped ExtraDims ++ [out.Rows, out.Cols].
// Data is expected in the canonical row-major layout (see package grid);
// layout reconciliation belongs to the production path under test, not to
// the reference.
//
// Implementation:
//   - Stage 1: validate shapes against the operator dimensions.
//   - Stage 2: gather the batch into the (nIn × batch) right-hand side,
//     multiply, scatter the (nOut × batch) product back to flat blocks.
//
// Errors: ErrShapeMismatch.
// Complexity: O(nOut×nIn×batch).
func Apply(w *mat.Dense, in *sparse.DenseArray, out grid.Shape) (*sparse.DenseArray, error) {
	if w == nil || in == nil {
		return nil, fmt.Errorf("denseref.Apply: nil operand: %w", ErrShapeMismatch)
	}
	nOut, nIn := w.Dims()

	extra, err := grid.ExtraDims(in.Shape)
	if err != nil {
		return nil, fmt.Errorf("denseref.Apply: input shape %v: %w", in.Shape, ErrShapeMismatch)
	}
	inShape, err := grid.SpatialShape(in.Shape)
	if err != nil {
		return nil, fmt.Errorf("denseref.Apply: input shape %v: %w", in.Shape, ErrShapeMismatch)
	}
	if inShape.Len() != nIn {
		return nil, fmt.Errorf("denseref.Apply: input plane flattens to %d, operator wants %d: %w",
			inShape.Len(), nIn, ErrShapeMismatch)
	}
	if out.Len() != nOut {
		return nil, fmt.Errorf("denseref.Apply: output shape flattens to %d, operator yields %d: %w",
			out.Len(), nOut, ErrShapeMismatch)
	}
	batch, err := grid.BatchSize(extra)
	if err != nil {
		return nil, fmt.Errorf("denseref.Apply: input shape %v: %w", in.Shape, ErrShapeMismatch)
	}

	// Gather: block b of the input becomes column b of the RHS.
	x := mat.NewDense(nIn, batch, nil)
	var b, j, i int
	for b = 0; b < batch; b++ {
		for j = 0; j < nIn; j++ {
			x.Set(j, b, in.Elements[b*nIn+j])
		}
	}

	// Multiply: (nOut × nIn) · (nIn × batch).
	var y mat.Dense
	y.Mul(w, x)

	// Scatter: column b of the product becomes block b of the result.
	outDims := make([]int, 0, len(extra)+2)
	outDims = append(outDims, extra...)
	outDims = append(outDims, out.Rows, out.Cols)
	res := sparse.ZerosDense(outDims...)
	for b = 0; b < batch; b++ {
		for i = 0; i < nOut; i++ {
			res.Elements[b*nOut+i] = y.At(i, b)
		}
	}

	return res, nil
}
