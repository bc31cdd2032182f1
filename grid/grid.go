// SPDX-License-Identifier: MIT
// Package grid core types: Shape, Layout and the index arithmetic that
// realizes the pinned flattening convention (cell (r,c) ↦ r*Cols + c).

package grid

import "fmt"

// Layout selects the element order of a spatial plane.
type Layout int

const (
	// RowMajor is the canonical order: axis 0 (Rows) varies slowest,
	// element (r,c) sits at offset r*Cols + c. This is the convention the
	// operator's flat indices are defined against.
	RowMajor Layout = iota
	// ColMajor is the transposed order: axis 0 varies fastest, element
	// (r,c) sits at offset c*Rows + r. Typical for data handed over from
	// Fortran-ordered meshing engines.
	ColMajor
)

// String implements fmt.Stringer for diagnostics.
func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "row-major"
	case ColMajor:
		return "col-major"
	default:
		return fmt.Sprintf("layout(%d)", int(l))
	}
}

// Valid reports whether l is one of the declared Layout constants.
// Complexity: O(1).
func (l Layout) Valid() bool {
	return l == RowMajor || l == ColMajor
}

// Shape describes the two spatial axes of a grid in semantic (Rows, Cols)
// order. The zero value is invalid; construct via NewShape.
type Shape struct {
	Rows, Cols int // spatial extents, both strictly positive
}

// NewShape creates a Shape after validating both extents.
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Finalize): return value or ErrBadExtent.
// Complexity: O(1).
func NewShape(rows, cols int) (Shape, error) {
	// Validate extents
	if rows <= 0 || cols <= 0 {
		return Shape{}, fmt.Errorf("NewShape(%d,%d): %w", rows, cols, ErrBadExtent)
	}

	return Shape{Rows: rows, Cols: cols}, nil
}

// Len returns the flattened point count Rows*Cols.
// Complexity: O(1).
func (s Shape) Len() int {
	return s.Rows * s.Cols
}

// FlatIndex maps cell (r, c) to its flat offset under layout l.
// The canonical operator index of the cell is always FlatIndex(r, c, RowMajor);
// ColMajor yields the physical offset of the same cell in transposed storage.
// Errors: ErrOutOfRange on bad coordinates, ErrBadLayout on unknown l.
// Complexity: O(1).
func (s Shape) FlatIndex(r, c int, l Layout) (int, error) {
	// Validate coordinates against both extents
	if r < 0 || r >= s.Rows || c < 0 || c >= s.Cols {
		return 0, fmt.Errorf("FlatIndex(%d,%d): %w", r, c, ErrOutOfRange)
	}
	// Dispatch on layout
	switch l {
	case RowMajor:
		return r*s.Cols + c, nil
	case ColMajor:
		return c*s.Rows + r, nil
	default:
		return 0, fmt.Errorf("FlatIndex(%d,%d): %w", r, c, ErrBadLayout)
	}
}

// Coords inverts FlatIndex: it maps a flat offset under layout l back to
// the (r, c) cell coordinates.
// Errors: ErrOutOfRange when flat ∉ [0, Len), ErrBadLayout on unknown l.
// Complexity: O(1).
func (s Shape) Coords(flat int, l Layout) (r, c int, err error) {
	// Validate the flat offset
	if flat < 0 || flat >= s.Len() {
		return 0, 0, fmt.Errorf("Coords(%d): %w", flat, ErrOutOfRange)
	}
	// Invert the layout-specific stride arithmetic
	switch l {
	case RowMajor:
		return flat / s.Cols, flat % s.Cols, nil
	case ColMajor:
		return flat % s.Rows, flat / s.Rows, nil
	default:
		return 0, 0, fmt.Errorf("Coords(%d): %w", flat, ErrBadLayout)
	}
}

// Perm returns the permutation reconciling layout l to the canonical order:
// perm[j] is the physical offset, under l, of the cell whose canonical flat
// index is j. For RowMajor the permutation is the identity and Perm returns
// nil — callers treat nil as "use indices directly" (a stride relabel with
// no copy and no table).
//
// Implementation:
//   - Stage 1: short-circuit the canonical layout to nil.
//   - Stage 2: fill perm in fixed canonical order j = r*Cols + c.
//
// Determinism: fixed r→c traversal; identical Shape gives identical table.
// Complexity: O(Rows×Cols) time and memory for ColMajor, O(1) for RowMajor.
func Perm(s Shape, l Layout) []int {
	// Canonical layout needs no table.
	if l == RowMajor {
		return nil
	}

	// Build the canonical→physical table for the transposed order.
	perm := make([]int, s.Len())
	var r, c, j int // loop iterators (deterministic order)
	for r = 0; r < s.Rows; r++ {
		for c = 0; c < s.Cols; c++ {
			perm[j] = c*s.Rows + r // physical offset under ColMajor
			j++
		}
	}

	return perm
}

// SpatialShape extracts the trailing two axes of an N-dimensional data
// shape as a Shape.
// Errors: ErrRank when fewer than two axes, ErrBadExtent on non-positive
// spatial extents.
// Complexity: O(1).
func SpatialShape(shape []int) (Shape, error) {
	// Need at least the two trailing spatial axes.
	if len(shape) < 2 {
		return Shape{}, fmt.Errorf("SpatialShape(%v): %w", shape, ErrRank)
	}

	return NewShape(shape[len(shape)-2], shape[len(shape)-1])
}

// ExtraDims returns the leading broadcast axes of an N-dimensional data
// shape, i.e. everything before the trailing two spatial axes. The result
// may be empty (pure 2D data) and aliases the input slice.
// Errors: ErrRank when fewer than two axes, ErrBadExtent on a non-positive
// broadcast extent.
// Complexity: O(len(shape)).
func ExtraDims(shape []int) ([]int, error) {
	// Need at least the two trailing spatial axes.
	if len(shape) < 2 {
		return nil, fmt.Errorf("ExtraDims(%v): %w", shape, ErrRank)
	}
	extra := shape[:len(shape)-2]
	// Every broadcast extent must be strictly positive.
	for i, d := range extra {
		if d <= 0 {
			return nil, fmt.Errorf("ExtraDims(%v): axis %d: %w", shape, i, ErrBadExtent)
		}
	}

	return extra, nil
}

// BatchSize returns the product of the broadcast extents; the empty
// sequence degenerates to 1, so a pure 2D apply is just a batch of one.
// Errors: ErrBadExtent on a non-positive extent.
// Complexity: O(len(extra)).
func BatchSize(extra []int) (int, error) {
	batch := 1
	for i, d := range extra {
		if d <= 0 {
			return 0, fmt.Errorf("BatchSize(%v): axis %d: %w", extra, i, ErrBadExtent)
		}
		batch *= d
	}

	return batch, nil
}
