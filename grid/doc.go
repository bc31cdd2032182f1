// Package grid pins the flattening convention that relates a 2D spatial
// grid to the flat index space of a sparse regridding operator, and
// reconciles data produced under either memory layout to that convention.
//
// What:
//
//   - Shape describes the two spatial axes of a grid in (Rows, Cols)
//     semantic order; Shape.Len() is the flattened point count.
//   - Layout names the element order of a spatial plane: RowMajor
//     (canonical, axis 0 varies slowest) or ColMajor (axis 0 varies
//     fastest, the Fortran-side convention of many meshing engines).
//   - Perm materializes the index permutation between a layout and the
//     canonical order; the canonical layout yields nil (a pure stride
//     relabel, no copy, no permutation table).
//   - ExtraDims/BatchSize split an N-dimensional data shape into its
//     leading broadcast axes and trailing spatial plane.
//
// Why:
//
//   - Sparse operator coefficients address grid cells by flat index. If the
//     weight generator and the applier disagree on which spatial axis
//     varies fastest, every result is numerically plausible and silently
//     wrong. This package is the single source of truth both sides share.
//
// Convention (pinned, used by every package in this module):
//
//	cell (r, c) of a Rows×Cols grid ↦ flat index r*Cols + c
//
// Complexity:
//
//   - FlatIndex/Coords: O(1).
//   - Perm: O(Rows×Cols) time and memory (nil for RowMajor).
//
// Errors:
//
//   - ErrBadExtent: a grid or broadcast extent is not strictly positive.
//   - ErrOutOfRange: a cell coordinate or flat index is out of bounds.
//   - ErrRank: a data shape has fewer than the two trailing spatial axes.
//   - ErrBadLayout: an unknown Layout value.
package grid
