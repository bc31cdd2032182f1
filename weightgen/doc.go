// Package weightgen builds sparse remapping operators directly from
// source/destination grid coordinates, so a weight file can be produced
// without an external weight generator.
//
// What lives here?
//
//   - Method — enumeration of supported generation schemes
//     (Nearest, Bilinear; Conservative is declared but unsupported).
//   - Grid — a curvilinear grid descriptor: per-cell longitude and
//     latitude, each a 2-D *sparse.DenseArray of identical shape.
//   - Generate — produce operator triplets for a (method, src, dst) pair.
//   - GenerateToFile — Generate plus a durable write through weights.Write.
//
// Why this design?
//
//   - Triplets out, not matrices: the output feeds operator.Materialize
//     and weights.Write unchanged, so generated and externally-computed
//     operators travel the same path.
//   - Nearest works on arbitrary curvilinear grids; Bilinear requires a
//     rectilinear source (longitude constant along rows, latitude
//     constant along columns, both strictly increasing) and reports
//     ErrNotRectilinear otherwise.
//   - Every destination cell receives weights that sum to 1, so constant
//     fields are preserved exactly by either method.
//
// Complexity
//
//   - Nearest:  O(nOut·nIn) brute-force spherical search.
//   - Bilinear: O(nOut·log nIn) via binary search on the source axes.
//
// Errors
//
// Constructors and generators return package-level sentinels
// (ErrNilGrid, ErrGridShape, ErrUnsupportedMethod, ErrNotRectilinear),
// wrapped with the operation name for context.
package weightgen
