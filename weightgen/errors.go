// SPDX-License-Identifier: MIT

package weightgen

import "errors"

var (
	// ErrNilGrid is returned when a grid descriptor or one of its
	// coordinate fields is nil.
	ErrNilGrid = errors.New("weightgen: nil grid")

	// ErrGridShape is returned when longitude and latitude arrays are not
	// 2-D arrays of identical positive shape.
	ErrGridShape = errors.New("weightgen: lon/lat shape mismatch")

	// ErrUnsupportedMethod is returned for methods that are declared but
	// have no generator (Conservative) or for unknown Method values.
	ErrUnsupportedMethod = errors.New("weightgen: unsupported method")

	// ErrNotRectilinear is returned by the bilinear generator when the
	// source grid is not rectilinear with strictly increasing axes.
	ErrNotRectilinear = errors.New("weightgen: source grid not rectilinear")
)
