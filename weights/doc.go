// Package weights persists sparse regridding operators as self-describing
// NetCDF (classic format) weight files and loads them back with strict
// size validation.
//
// What:
//
//   - Write stores a triplet set under one dimension "n_s" with variables
//     "row" (int32, output-side flat index), "col" (int32, input-side flat
//     index) and "S" (float64, coefficient), plus global attributes "n_in"
//     and "n_out" recording the flattened point counts the operator
//     relates. Existing files are never overwritten: weight files are
//     expensive to regenerate and accidental clobbering is a common user
//     error, so Write fails with ErrFileExists instead.
//   - Read loads the three sequences and cross-checks the embedded sizes
//     against the caller-supplied expectation. The embedded attributes are
//     authoritative for decoding; the caller's sizes are an advisory guard
//     against applying an operator to the wrong grid pair. On any
//     inconsistency no partial operator is returned.
//
// Why NetCDF:
//
//   - The variable/attribute layout mirrors the weight files emitted by the
//     established ESMF-family regridders (n_s / col / row / S), so files
//     written here are readable by the wider tooling ecosystem and vice
//     versa — with one documented difference: indices are stored 0-based.
//     Engines that emit 1-based (Fortran-side) indices must shift before
//     writing.
//
// Errors:
//
//   - ErrFileExists: Write destination already present.
//   - ErrSizeMismatch: embedded n_in/n_out disagree with the caller's.
//   - ErrCorruptFile: missing variables, unequal sequence lengths, indices
//     outside the embedded sizes, or undecodable attributes.
//   - ErrNoTriplets: Write called with an empty operator (almost always a
//     generator bug; an all-zero operator is representable but a weight
//     file with no coefficients is refused).
//   - Plain wrapped I/O errors for missing/unwritable paths; match with
//     errors.Is against the os sentinels.
package weights
