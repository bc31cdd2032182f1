// SPDX-License-Identifier: MIT
// Package: operator
//
// Purpose:
//  - Provide a single, canonical source of truth for triplet validation.
//  - Keep Materialize and the weight store free of duplicated guard logic.
//  - Return plain sentinels (wrapped with context) so call sites can match
//    with errors.Is uniformly.

package operator

import "fmt"

// Validate checks a triplet set against the operator dimensions it claims
// to relate: non-nil handle, positive dims, equal-length parallel slices,
// and every index inside [0, nOut) × [0, nIn). It allocates nothing.
//
// Errors: ErrNilOperator, ErrBadDims, ErrTripletLength, ErrIndexRange.
// Determinism: fixed 0..nnz-1 scan; first violation wins.
// Complexity: O(nnz) time, O(1) space.
func Validate(t *Triplets, nOut, nIn int) error {
	// Guard the handle before any field access.
	if t == nil {
		return ErrNilOperator
	}
	// Dimensions must describe a real grid pair.
	if nOut <= 0 || nIn <= 0 {
		return fmt.Errorf("dims (%d,%d): %w", nOut, nIn, ErrBadDims)
	}
	// The parallel-slice invariant may have been broken by direct struct
	// construction; re-check it here rather than trusting NewTriplets.
	if len(t.Row) != len(t.Col) || len(t.Col) != len(t.S) {
		return ErrTripletLength
	}
	// Every stored index must address a valid grid point.
	nnz := t.Len()
	for k := 0; k < nnz; k++ {
		if t.Row[k] < 0 || int(t.Row[k]) >= nOut {
			return fmt.Errorf("triplet %d row %d: %w", k, t.Row[k], ErrIndexRange)
		}
		if t.Col[k] < 0 || int(t.Col[k]) >= nIn {
			return fmt.Errorf("triplet %d col %d: %w", k, t.Col[k], ErrIndexRange)
		}
	}

	return nil
}
