// SPDX-License-Identifier: MIT

package weightgen

import (
	"fmt"

	"github.com/ctessum/sparse"

	"github.com/katalvlaran/regrid/grid"
)

// Method selects a weight-generation scheme.
type Method int

const (
	// Nearest assigns each destination cell the value of the closest
	// source cell on the sphere, weight 1.
	Nearest Method = iota

	// Bilinear interpolates from the four surrounding source cells of a
	// rectilinear source grid; destinations outside the source extent are
	// clamped to the edge.
	Bilinear

	// Conservative is declared for completeness; generating conservative
	// weights needs cell-boundary geometry this package does not model,
	// so Generate reports ErrUnsupportedMethod for it.
	Conservative
)

// String implements fmt.Stringer.
func (m Method) String() string {
	switch m {
	case Nearest:
		return "nearest"
	case Bilinear:
		return "bilinear"
	case Conservative:
		return "conservative"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Grid describes a curvilinear grid by the geographic position of every
// cell center. Lon and Lat are 2-D arrays of identical shape, indexed
// [row][col], in degrees.
type Grid struct {
	Lon *sparse.DenseArray
	Lat *sparse.DenseArray
}

// NewGrid validates the coordinate pair and returns the descriptor.
//
// Stage 1 (Nil): both arrays must be present.
// Stage 2 (Shape): both must be 2-D, identical, with positive extents.
//
// Returns ErrNilGrid or ErrGridShape.
func NewGrid(lon, lat *sparse.DenseArray) (*Grid, error) {
	if lon == nil || lat == nil {
		return nil, ErrNilGrid
	}
	if len(lon.Shape) != 2 || len(lat.Shape) != 2 {
		return nil, fmt.Errorf("%w: want 2-D, got lon rank %d, lat rank %d",
			ErrGridShape, len(lon.Shape), len(lat.Shape))
	}
	if lon.Shape[0] != lat.Shape[0] || lon.Shape[1] != lat.Shape[1] {
		return nil, fmt.Errorf("%w: lon %v vs lat %v",
			ErrGridShape, lon.Shape, lat.Shape)
	}
	if lon.Shape[0] <= 0 || lon.Shape[1] <= 0 {
		return nil, fmt.Errorf("%w: extents %v", ErrGridShape, lon.Shape)
	}
	return &Grid{Lon: lon, Lat: lat}, nil
}

// Shape reports the grid extents as a grid.Shape.
func (g *Grid) Shape() grid.Shape {
	s, _ := grid.NewShape(g.Lon.Shape[0], g.Lon.Shape[1])
	return s
}

// Len reports the flattened cell count.
func (g *Grid) Len() int {
	return g.Lon.Shape[0] * g.Lon.Shape[1]
}
