// SPDX-License-Identifier: MIT
// Package operator: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the
// operator package. All functions MUST return these sentinels and tests
// MUST check them via errors.Is. No function panics on user-triggered
// error conditions; panics are reserved for programmer errors.

package operator

import "errors"

var (
	// ErrTripletLength is returned when the row, col and coefficient
	// slices of a triplet set do not share one length.
	ErrTripletLength = errors.New("operator: triplet slices must have equal length")

	// ErrBadDims indicates a non-positive operator dimension (nOut or nIn).
	ErrBadDims = errors.New("operator: dimensions must be > 0")

	// ErrIndexRange indicates a triplet row ≥ nOut or col ≥ nIn (or < 0).
	// Materialization validates every triplet before building storage.
	ErrIndexRange = errors.New("operator: triplet index out of range")

	// ErrVecLen indicates a multiply operand whose length does not match
	// the operator dimension it feeds (x vs nIn, dst vs nOut).
	ErrVecLen = errors.New("operator: vector length mismatch")

	// ErrBatch indicates a non-positive batch count or operand slices not
	// evenly divisible into batch blocks.
	ErrBatch = errors.New("operator: invalid batch")

	// ErrNilOperator indicates a nil *Triplets or *CSR argument.
	ErrNilOperator = errors.New("operator: nil operator")
)
