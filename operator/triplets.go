// SPDX-License-Identifier: MIT
// Package operator triplet set: the persisted/in-memory raw form of a
// sparse regridding operator, before compression.

package operator

import "fmt"

// Triplets is a sparse linear operator in coordinate form: entry i states
// that output point Row[i] receives S[i] × input point Col[i]. Indices are
// 0-based canonical flat grid indices (see package grid). The three slices
// always share one length. Treat a constructed Triplets as immutable: it
// is read, never mutated, by materialization and by the weight store.
type Triplets struct {
	Row []int32   // output-side flat indices, one per nonzero
	Col []int32   // input-side flat indices, one per nonzero
	S   []float64 // coefficients, one per nonzero
}

// NewTriplets validates the parallel slices and wraps them as a Triplets.
// The slices are adopted, not copied; callers hand over ownership.
// Stage 1 (Validate): all three lengths equal.
// Stage 2 (Finalize): return the wrapper or ErrTripletLength.
// Complexity: O(1).
func NewTriplets(row, col []int32, s []float64) (*Triplets, error) {
	// Validate the parallel-slice invariant once, here.
	if len(row) != len(col) || len(col) != len(s) {
		return nil, fmt.Errorf("NewTriplets(%d,%d,%d): %w", len(row), len(col), len(s), ErrTripletLength)
	}

	return &Triplets{Row: row, Col: col, S: s}, nil
}

// Len returns the number of stored triplets (duplicates included).
// Complexity: O(1).
func (t *Triplets) Len() int {
	return len(t.S)
}

// Identity returns the n×n identity operator as a triplet set: one unit
// coefficient per diagonal point. Applying it leaves data unchanged, which
// makes it the canonical fixture for apply-path correctness tests.
// Complexity: O(n) time and memory.
func Identity(n int) *Triplets {
	row := make([]int32, n)
	col := make([]int32, n)
	s := make([]float64, n)
	for i := 0; i < n; i++ { // deterministic 0..n-1 diagonal fill
		row[i] = int32(i)
		col[i] = int32(i)
		s[i] = 1.0
	}

	return &Triplets{Row: row, Col: col, S: s}
}
