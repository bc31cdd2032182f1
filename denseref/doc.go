// Package denseref is an independently implemented dense reference path
// for the regridding pipeline: triplets are scattered into a dense
// gonum matrix and applied with general matrix multiplication.
//
// What:
//
//   - Materialize scatters a triplet set into a (nOut × nIn) mat.Dense,
//     summing duplicate contributions like the sparse materializer does.
//   - Apply broadcasts the dense operator over the extra dimensions of a
//     data array by forming the (nIn × batch) right-hand-side matrix,
//     multiplying, and scattering the (nOut × batch) product back.
//
// Why:
//
//   - Cross-validation. The production path (operator + regrid) and this
//     path share nothing but the coefficients, so agreement between them
//     catches indexing, layout and accumulation mistakes in either one.
//     It is a test collaborator, not a production engine: dense storage
//     costs O(nOut × nIn) and is hopeless for real grid sizes.
//
// Complexity:
//
//   - Materialize: O(nOut×nIn + nnz). Apply: O(nOut×nIn×batch).
package denseref
