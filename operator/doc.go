// Package operator turns raw regridding weight triplets into an efficient
// compressed-row sparse operator and provides the multiply kernels every
// apply path is built on.
//
// What:
//
//   - Triplets holds a sparse operator as three equal-length parallel
//     slices: output row index, input column index, coefficient. Indices
//     are 0-based flat grid indices under the convention pinned in
//     package grid. A Triplets value is immutable once constructed.
//   - Materialize compresses a Triplets into a CSR operator of shape
//     (nOut × nIn), summing duplicate (row, col) contributions — weight
//     generators legitimately emit several partial contributions per cell.
//   - CSR.MulVec applies the operator to one flattened grid; CSR.MulBatch
//     applies it to a batch of contiguous flattened grids in one call.
//
// Why:
//
//   - Applying weights is pure linear algebra: every interpolation decision
//     was already baked into the coefficients by the weight generator.
//     Keeping the kernel free of interpolation semantics is what makes one
//     operator reusable across every variable, time step and level.
//
// Semantics:
//
//   - Output points referenced by no triplet yield exactly 0.0, never a
//     missing value; the operator's implicit zero-fill is part of the
//     contract and is covered by tests.
//
// Complexity:
//
//   - Materialize: O(nnz log nnz) sort-and-merge, O(nnz + nOut) memory.
//   - MulVec: O(nnz); MulBatch: O(nnz × batch).
//
// Errors:
//
//   - ErrTripletLength: parallel slices of differing lengths.
//   - ErrBadDims: a non-positive operator dimension.
//   - ErrIndexRange: a triplet index outside [0, nOut) × [0, nIn).
//   - ErrVecLen: a multiply operand of the wrong length.
//   - ErrNilOperator: a nil *Triplets or *CSR argument.
package operator
