// SPDX-License-Identifier: MIT

package weightgen

import (
	"fmt"

	"github.com/katalvlaran/regrid/operator"
	"github.com/katalvlaran/regrid/weights"
)

// Operation tags used in wrapped errors.
const (
	opGenerate       = "Generate"
	opGenerateToFile = "GenerateToFile"
)

// genErrorf wraps err with the operation tag for context.
func genErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Generate computes remapping triplets from src to dst using method m.
//
// Stage 1 (Validate): both grids must pass NewGrid validation.
// Stage 2 (Dispatch): run the per-method generator.
//
// Triplet rows index dst cells, columns index src cells, both flattened
// row-major (row·Cols + col). The result is ready for
// operator.Materialize or weights.Write.
//
// Returns ErrNilGrid, ErrGridShape, ErrUnsupportedMethod, or
// ErrNotRectilinear (Bilinear only).
func Generate(m Method, src, dst *Grid) (*operator.Triplets, error) {
	if src == nil || dst == nil {
		return nil, genErrorf(opGenerate, ErrNilGrid)
	}
	// Normalize validation for callers that built Grid literals directly.
	if _, err := NewGrid(src.Lon, src.Lat); err != nil {
		return nil, genErrorf(opGenerate, err)
	}
	if _, err := NewGrid(dst.Lon, dst.Lat); err != nil {
		return nil, genErrorf(opGenerate, err)
	}

	switch m {
	case Nearest:
		return nearestTriplets(src, dst)
	case Bilinear:
		return bilinearTriplets(src, dst)
	default:
		return nil, fmt.Errorf("%s: %w: %s", opGenerate, ErrUnsupportedMethod, m)
	}
}

// GenerateToFile generates triplets with Generate and persists them at
// path via weights.Write. The file embeds dst and src flattened sizes.
//
// Returns Generate's errors, or weights.Write's (including
// weights.ErrFileExists when path already exists).
func GenerateToFile(path string, m Method, src, dst *Grid) error {
	t, err := Generate(m, src, dst)
	if err != nil {
		return genErrorf(opGenerateToFile, err)
	}
	return weights.Write(path, t, dst.Len(), src.Len())
}
