// SPDX-License-Identifier: MIT
// Package regrid: functional options for the broadcast applier.

package regrid

import (
	"fmt"

	"github.com/katalvlaran/regrid/grid"
)

// defaultWorkers is the sequential apply: one batch partition, no fan-out.
const defaultWorkers = 1

// applyOptions collects the tunable parameters of one Apply call.
type applyOptions struct {
	inLayout  grid.Layout // spatial-plane order of each input slice
	outLayout grid.Layout // spatial-plane order of each output slice
	workers   int         // goroutines fanning out over the batch axis
}

// Option mutates applyOptions; construct via the With* helpers.
type Option func(*applyOptions)

// defaultApplyOptions returns the canonical configuration: row-major on
// both sides, sequential execution.
func defaultApplyOptions() applyOptions {
	return applyOptions{
		inLayout:  grid.RowMajor,
		outLayout: grid.RowMajor,
		workers:   defaultWorkers,
	}
}

// WithInputLayout declares the spatial-plane element order of the input
// slices. Use grid.ColMajor for data handed over by Fortran-ordered
// producers; the applier reconciles it to the operator's convention by
// index permutation (never by touching coefficients).
func WithInputLayout(l grid.Layout) Option {
	return func(o *applyOptions) { o.inLayout = l }
}

// WithOutputLayout declares the spatial-plane element order the caller
// wants the output slices stored in.
func WithOutputLayout(l grid.Layout) Option {
	return func(o *applyOptions) { o.outLayout = l }
}

// WithWorkers fans the batch dimension out over n goroutines. Each extra
// slice is an independent 2D regrid against the shared read-only operator,
// and output slices are partitioned disjointly, so no synchronization
// beyond the final join is needed. n is capped at the batch size.
func WithWorkers(n int) Option {
	return func(o *applyOptions) { o.workers = n }
}

// validate rejects out-of-range option values with ErrBadOption.
// Complexity: O(1).
func (o applyOptions) validate() error {
	if !o.inLayout.Valid() {
		return fmt.Errorf("input layout %v: %w", o.inLayout, ErrBadOption)
	}
	if !o.outLayout.Valid() {
		return fmt.Errorf("output layout %v: %w", o.outLayout, ErrBadOption)
	}
	if o.workers <= 0 {
		return fmt.Errorf("workers %d: %w", o.workers, ErrBadOption)
	}

	return nil
}
