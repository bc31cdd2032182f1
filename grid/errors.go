// SPDX-License-Identifier: MIT
// Package grid: sentinel error set (unified, consistent).
// Algorithms MUST return these sentinels and tests MUST check them via
// errors.Is. No function panics on user-triggered error conditions.

package grid

import "errors"

var (
	// ErrBadExtent is returned when a grid extent or broadcast dimension
	// is not strictly positive.
	ErrBadExtent = errors.New("grid: extent must be > 0")

	// ErrOutOfRange indicates a cell coordinate or flat index outside the
	// valid range of a Shape.
	ErrOutOfRange = errors.New("grid: index out of range")

	// ErrRank indicates a data shape with fewer than two axes, i.e. no
	// trailing spatial plane to regrid.
	ErrRank = errors.New("grid: shape needs at least two trailing spatial axes")

	// ErrBadLayout indicates a Layout value outside the declared constants.
	ErrBadLayout = errors.New("grid: unknown layout")
)
