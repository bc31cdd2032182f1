// SPDX-License-Identifier: MIT
// Package operator CSR kernel: compressed-row materialization of a triplet
// set and the multiply kernels (single vector, batched, permuted).

package operator

import (
	"fmt"
	"sort"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMaterialize  = "Materialize"
	opMulVec       = "MulVec"
	opMulBatch     = "MulBatch"
	opMulBatchPerm = "MulBatchPerm"
)

// csrErrorf wraps err with an operation tag, preserving the original error
// via %w so callers keep errors.Is matching.
func csrErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// CSR is a sparse operator in compressed-row form, shape (nOut × nIn).
// Row i owns the nonzeros val[rowPtr[i]:rowPtr[i+1]] with input columns
// colIdx[rowPtr[i]:rowPtr[i+1]], sorted by column. A CSR is immutable and
// safe for concurrent read-only use by any number of goroutines.
type CSR struct {
	nOut, nIn int       // operator dimensions (output × input flat sizes)
	rowPtr    []int     // per-row extents into colIdx/val, length nOut+1
	colIdx    []int32   // merged input columns, length NNZ, sorted per row
	val       []float64 // merged coefficients, aligned with colIdx
}

// Materialize compresses a triplet set into a CSR operator of the given
// dimensions, summing duplicate (row, col) contributions.
//
// Implementation:
//   - Stage 1 (Validate): non-nil triplets, positive dims, every index in
//     [0,nOut) × [0,nIn). Nothing is allocated before validation passes.
//   - Stage 2 (Sort): order triplet positions by (row, col) via an index
//     permutation, leaving the caller's slices untouched.
//   - Stage 3 (Merge): single pass accumulating equal (row, col) runs into
//     one entry; build rowPtr from per-row counts.
//
// Behavior highlights:
//   - Duplicates are summed, never overwritten; merge order is the sorted
//     (row, col) order, so accumulation is deterministic.
//   - An empty triplet set is legal and yields the all-zero operator.
//
// Errors:
//   - ErrNilOperator, ErrBadDims, ErrIndexRange.
//
// Determinism:
//   - sort.Slice on (row, col) with strict ordering; equal keys are summed
//     into one entry, so comparator ties cannot reorder observable output.
//
// Complexity:
//   - Time O(nnz log nnz), Space O(nnz + nOut).
func Materialize(t *Triplets, nOut, nIn int) (*CSR, error) {
	// Validate handle, dimensions and every index via the canonical
	// validator before any storage is built.
	if err := Validate(t, nOut, nIn); err != nil {
		return nil, csrErrorf(opMaterialize, err)
	}
	nnz := t.Len()
	var k int

	// Order triplet positions by (row, col) without touching caller slices.
	ord := make([]int, nnz)
	for k = 0; k < nnz; k++ {
		ord[k] = k
	}
	sort.Slice(ord, func(a, b int) bool {
		ia, ib := ord[a], ord[b]
		if t.Row[ia] != t.Row[ib] {
			return t.Row[ia] < t.Row[ib]
		}

		return t.Col[ia] < t.Col[ib]
	})

	// Merge equal (row, col) runs, accumulating coefficients.
	c := &CSR{
		nOut:   nOut,
		nIn:    nIn,
		rowPtr: make([]int, nOut+1),
		colIdx: make([]int32, 0, nnz),
		val:    make([]float64, 0, nnz),
	}
	var prevRow, prevCol int32 = -1, -1 // sentinel: no previous entry
	for k = 0; k < nnz; k++ {
		i := ord[k]
		r, cl, s := t.Row[i], t.Col[i], t.S[i]
		if r == prevRow && cl == prevCol {
			// Duplicate contribution to the same cell: sum, don't overwrite.
			c.val[len(c.val)-1] += s
			continue
		}
		c.colIdx = append(c.colIdx, cl)
		c.val = append(c.val, s)
		c.rowPtr[r+1]++ // per-row count, prefix-summed below
		prevRow, prevCol = r, cl
	}
	// Prefix-sum the per-row counts into row extents.
	for r := 0; r < nOut; r++ {
		c.rowPtr[r+1] += c.rowPtr[r]
	}

	return c, nil
}

// Dims returns the operator shape (nOut, nIn).
// Complexity: O(1).
func (c *CSR) Dims() (nOut, nIn int) {
	return c.nOut, c.nIn
}

// NNZ returns the number of stored nonzeros after duplicate merging.
// Complexity: O(1).
func (c *CSR) NNZ() int {
	return len(c.val)
}

// MulVec computes dst = C·x for one flattened input grid.
// dst must have length nOut and x length nIn; dst is fully overwritten
// (rows with no nonzeros become exactly 0.0 — the zero-fill contract).
//
// Determinism: per row, nonzeros accumulate in stored (sorted) column order.
// Complexity: Time O(nOut + nnz), Space O(1) beyond dst.
func (c *CSR) MulVec(dst, x []float64) error {
	// Validate the handle and operand lengths.
	if c == nil {
		return csrErrorf(opMulVec, ErrNilOperator)
	}
	if len(x) != c.nIn {
		return csrErrorf(opMulVec, fmt.Errorf("x length %d, want %d: %w", len(x), c.nIn, ErrVecLen))
	}
	if len(dst) != c.nOut {
		return csrErrorf(opMulVec, fmt.Errorf("dst length %d, want %d: %w", len(dst), c.nOut, ErrVecLen))
	}
	// Execute the kernel with identity index maps.
	c.mulVec(dst, x, nil, nil)

	return nil
}

// MulBatch computes dst = C·x for a batch of contiguous flattened grids:
// x holds batch blocks of length nIn, dst receives batch blocks of length
// nOut, block b of dst corresponding to block b of x.
//
// Determinism: fixed b→row→nonzero loop order.
// Complexity: Time O(batch × (nOut + nnz)), Space O(1) beyond dst.
func (c *CSR) MulBatch(dst, x []float64, batch int) error {
	if err := c.validateBatch(dst, x, batch, opMulBatch); err != nil {
		return err
	}
	// Apply the 2D kernel independently to each contiguous block.
	var b int
	for b = 0; b < batch; b++ {
		c.mulVec(dst[b*c.nOut:(b+1)*c.nOut], x[b*c.nIn:(b+1)*c.nIn], nil, nil)
	}

	return nil
}

// MulBatchPerm is MulBatch with layout reconciliation folded into the
// kernel: inPerm (length nIn) maps a canonical input index to its physical
// offset within each input block, outPerm (length nOut) likewise for output
// blocks. A nil permutation means canonical order — a pure stride relabel
// with no gather table and no data copy.
//
// Behavior highlights:
//   - The same coefficients accumulate in the same order regardless of the
//     permutations, so results are bit-identical across layouts.
//
// Errors:
//   - ErrNilOperator, ErrVecLen, ErrBatch (operand/permutation lengths).
//
// Complexity: Time O(batch × (nOut + nnz)), Space O(1) beyond dst.
func (c *CSR) MulBatchPerm(dst, x []float64, batch int, inPerm, outPerm []int) error {
	if err := c.validateBatch(dst, x, batch, opMulBatchPerm); err != nil {
		return err
	}
	// Permutation tables, when present, must cover the full index space.
	if inPerm != nil && len(inPerm) != c.nIn {
		return csrErrorf(opMulBatchPerm, fmt.Errorf("inPerm length %d, want %d: %w", len(inPerm), c.nIn, ErrVecLen))
	}
	if outPerm != nil && len(outPerm) != c.nOut {
		return csrErrorf(opMulBatchPerm, fmt.Errorf("outPerm length %d, want %d: %w", len(outPerm), c.nOut, ErrVecLen))
	}

	var b int
	for b = 0; b < batch; b++ {
		c.mulVec(dst[b*c.nOut:(b+1)*c.nOut], x[b*c.nIn:(b+1)*c.nIn], inPerm, outPerm)
	}

	return nil
}

// validateBatch centralizes the operand checks shared by the batched
// multiply facades, returning plain sentinels wrapped with the facade tag.
func (c *CSR) validateBatch(dst, x []float64, batch int, tag string) error {
	if c == nil {
		return csrErrorf(tag, ErrNilOperator)
	}
	if batch <= 0 {
		return csrErrorf(tag, fmt.Errorf("batch %d: %w", batch, ErrBatch))
	}
	if len(x) != batch*c.nIn {
		return csrErrorf(tag, fmt.Errorf("x length %d, want %d×%d: %w", len(x), batch, c.nIn, ErrVecLen))
	}
	if len(dst) != batch*c.nOut {
		return csrErrorf(tag, fmt.Errorf("dst length %d, want %d×%d: %w", len(dst), batch, c.nOut, ErrVecLen))
	}

	return nil
}

// mulVec is the shared single-slice kernel. Permutations are applied at
// gather (x) and scatter (dst) time; nil means identity. Lengths are
// validated by the facades; the kernel assumes conformant operands.
func (c *CSR) mulVec(dst, x []float64, inPerm, outPerm []int) {
	var (
		i, p, lo, hi int     // row index, nonzero cursor, row extent
		acc          float64 // per-row accumulator
	)
	for i = 0; i < c.nOut; i++ { // fixed row order
		acc = 0.0
		lo, hi = c.rowPtr[i], c.rowPtr[i+1]
		if inPerm == nil {
			for p = lo; p < hi; p++ { // stored column order
				acc += c.val[p] * x[c.colIdx[p]]
			}
		} else {
			for p = lo; p < hi; p++ { // same order, gathered through inPerm
				acc += c.val[p] * x[inPerm[c.colIdx[p]]]
			}
		}
		if outPerm == nil {
			dst[i] = acc
		} else {
			dst[outPerm[i]] = acc
		}
	}
}
