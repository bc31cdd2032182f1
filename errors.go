// SPDX-License-Identifier: MIT
// Package regrid: sentinel error set for the broadcast applier.
// All apply-path failures are raised eagerly, before any output is
// allocated; tests match these via errors.Is.

package regrid

import "errors"

var (
	// ErrNilOperator indicates a nil materialized operator argument.
	ErrNilOperator = errors.New("regrid: nil operator")

	// ErrNilInput indicates a nil input data array.
	ErrNilInput = errors.New("regrid: nil input array")

	// ErrShapeMismatch indicates that the input's trailing spatial plane
	// does not flatten to the operator's input size, or that the requested
	// output grid shape does not flatten to the operator's output size.
	ErrShapeMismatch = errors.New("regrid: array shape incompatible with operator dimensions")

	// ErrBadOption indicates an out-of-range Option value (unknown layout,
	// non-positive worker count).
	ErrBadOption = errors.New("regrid: invalid option")
)
