// SPDX-License-Identifier: MIT
// Package weights: NetCDF weight-file store for sparse regridding
// operators (write-once create, size-checked read).

package weights

import (
	"errors"
	"fmt"
	"os"

	"github.com/ctessum/cdf"

	"github.com/katalvlaran/regrid/operator"
)

// Sentinel errors for the weight store.
var (
	// ErrFileExists indicates the Write destination is already present;
	// the store never silently overwrites a weight file.
	ErrFileExists = errors.New("weights: file already exists")

	// ErrSizeMismatch indicates the embedded n_in/n_out attributes
	// disagree with the sizes the caller expected.
	ErrSizeMismatch = errors.New("weights: stored sizes inconsistent with expected sizes")

	// ErrCorruptFile indicates a structurally invalid weight file:
	// missing variables or attributes, unequal sequence lengths, or
	// triplet indices outside the embedded sizes.
	ErrCorruptFile = errors.New("weights: corrupt weight file")

	// ErrNoTriplets indicates an attempt to persist an empty operator.
	ErrNoTriplets = errors.New("weights: refusing to write empty operator")
)

// NetCDF names shared by Write and Read; one source of truth, no magic
// strings at call sites. The layout mirrors ESMF-family weight files.
const (
	dimNS   = "n_s" // number of stored triplets
	varRow  = "row" // output-side flat indices (int32, 0-based)
	varCol  = "col" // input-side flat indices (int32, 0-based)
	varS    = "S"   // coefficients (float64)
	attrIn  = "n_in"
	attrOut = "n_out"
)

// Write serializes t and the flattened grid sizes it relates to a new
// NetCDF file at path.
//
// Implementation:
//   - Stage 1 (Validate): non-nil non-empty triplets, positive sizes,
//     every index within the declared sizes — all before any file I/O.
//   - Stage 2 (Create): exclusive create (O_EXCL), so an existing file
//     fails fast with ErrFileExists and is left untouched.
//   - Stage 3 (Encode): header (dimension, attributes, variables), then
//     the three payload sequences. If encoding fails, the partial file is
//     removed so a retry is not shadowed by ErrFileExists.
//
// Errors:
//   - ErrNilOperator/ErrTripletLength/ErrBadDims/ErrIndexRange (operator
//     validation), ErrNoTriplets, ErrFileExists, wrapped I/O errors.
//
// Complexity: O(nnz) time, O(nnz) transient memory for index conversion.
func Write(path string, t *operator.Triplets, nOut, nIn int) error {
	// Validate the operator against the declared sizes before touching
	// the filesystem.
	if err := operator.Validate(t, nOut, nIn); err != nil {
		return fmt.Errorf("weights.Write %s: %w", path, err)
	}
	ns := t.Len()
	if ns == 0 {
		return fmt.Errorf("weights.Write %s: %w", path, ErrNoTriplets)
	}

	// Exclusive create: refuse to clobber an existing weight file.
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("weights.Write %s: %w", path, ErrFileExists)
		}

		return fmt.Errorf("weights.Write %s: %w", path, err)
	}

	if err = encodeFile(f, t, nOut, nIn, ns); err != nil {
		// Drop the half-written file; it must not block a retry.
		f.Close()
		_ = os.Remove(path)

		return fmt.Errorf("weights.Write %s: %w", path, err)
	}

	if err = f.Close(); err != nil {
		_ = os.Remove(path)

		return fmt.Errorf("weights.Write %s: %w", path, err)
	}

	return nil
}

// encodeFile is a seam over encode for fault-injection in tests.
var encodeFile = encode

// encode writes the self-describing header and the three payload
// sequences to the freshly created file f.
func encode(f *os.File, t *operator.Triplets, nOut, nIn, ns int) error {
	// Assemble the self-describing header.
	h := cdf.NewHeader([]string{dimNS}, []int{ns})
	h.AddAttribute("", "title", "regrid sparse operator weights")
	h.AddAttribute("", attrIn, []int32{int32(nIn)})
	h.AddAttribute("", attrOut, []int32{int32(nOut)})
	h.AddVariable(varRow, []string{dimNS}, []int32{0})
	h.AddVariable(varCol, []string{dimNS}, []int32{0})
	h.AddVariable(varS, []string{dimNS}, []float64{0})
	h.Define()

	cf, err := cdf.Create(f, h) // writes the header to f
	if err != nil {
		return err
	}

	// Write the three payload sequences in a fixed order.
	if err = writeVarI32(cf, varRow, t.Row); err != nil {
		return err
	}
	if err = writeVarI32(cf, varCol, t.Col); err != nil {
		return err
	}
	if err = writeVarF64(cf, varS, t.S); err != nil {
		return err
	}

	return cdf.UpdateNumRecs(f)
}

// Read loads a weight file and returns its triplet set.
//
// expectedOut and expectedIn are the flattened sizes of the grid pair the
// caller intends to apply the operator to; the file's embedded attributes
// are authoritative, the expectation is cross-checked. Reconstructing a 2D
// grid shape from a flattened count is the caller's responsibility, using
// grid-shape data obtained independently of the weight file.
//
// Implementation:
//   - Stage 1 (Open/Decode): open + parse header; any structural failure
//     wraps ErrCorruptFile or the underlying I/O error.
//   - Stage 2 (Cross-check): embedded n_in/n_out vs expectation →
//     ErrSizeMismatch before any payload is read.
//   - Stage 3 (Load/Verify): read the three sequences, verify equal
//     lengths and index ranges, then construct the Triplets.
//
// No partial operator escapes: every failure path returns (nil, err).
//
// Complexity: O(nnz).
func Read(path string, expectedOut, expectedIn int) (*operator.Triplets, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("weights.Read %s: %w", path, err)
	}
	defer f.Close()

	cf, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("weights.Read %s: %v: %w", path, err, ErrCorruptFile)
	}

	// Decode the embedded sizes; these are authoritative.
	nIn, err := attrI32(cf, attrIn)
	if err != nil {
		return nil, fmt.Errorf("weights.Read %s: %w", path, err)
	}
	nOut, err := attrI32(cf, attrOut)
	if err != nil {
		return nil, fmt.Errorf("weights.Read %s: %w", path, err)
	}
	// Cross-check the caller's expectation before reading payload.
	if nOut != expectedOut || nIn != expectedIn {
		return nil, fmt.Errorf("weights.Read %s: stored (n_out=%d, n_in=%d), expected (%d, %d): %w",
			path, nOut, nIn, expectedOut, expectedIn, ErrSizeMismatch)
	}

	// All three sequences must exist with one shared length.
	ns, err := seqLen(cf, varS)
	if err != nil {
		return nil, fmt.Errorf("weights.Read %s: %w", path, err)
	}
	for _, v := range []string{varRow, varCol} {
		n, lerr := seqLen(cf, v)
		if lerr != nil {
			return nil, fmt.Errorf("weights.Read %s: %w", path, lerr)
		}
		if n != ns {
			return nil, fmt.Errorf("weights.Read %s: %s length %d, %s length %d: %w",
				path, v, n, varS, ns, ErrCorruptFile)
		}
	}

	row, err := readVarI32(cf, varRow, ns)
	if err != nil {
		return nil, fmt.Errorf("weights.Read %s: %w", path, err)
	}
	col, err := readVarI32(cf, varCol, ns)
	if err != nil {
		return nil, fmt.Errorf("weights.Read %s: %w", path, err)
	}
	s, err := readVarF64(cf, varS, ns)
	if err != nil {
		return nil, fmt.Errorf("weights.Read %s: %w", path, err)
	}

	// Verify every index against the embedded sizes; a violation means
	// the file is corrupt, not that the caller misconfigured anything.
	for k := 0; k < ns; k++ {
		if row[k] < 0 || int(row[k]) >= nOut {
			return nil, fmt.Errorf("weights.Read %s: triplet %d row %d outside n_out=%d: %w",
				path, k, row[k], nOut, ErrCorruptFile)
		}
		if col[k] < 0 || int(col[k]) >= nIn {
			return nil, fmt.Errorf("weights.Read %s: triplet %d col %d outside n_in=%d: %w",
				path, k, col[k], nIn, ErrCorruptFile)
		}
	}

	t, err := operator.NewTriplets(row, col, s)
	if err != nil {
		return nil, fmt.Errorf("weights.Read %s: %w", path, err)
	}

	return t, nil
}

// attrI32 decodes a global int32 attribute written by this store.
func attrI32(cf *cdf.File, name string) (int, error) {
	a := cf.Header.GetAttribute("", name)
	if a == nil {
		return 0, fmt.Errorf("missing attribute %s: %w", name, ErrCorruptFile)
	}
	v, ok := a.([]int32)
	if !ok || len(v) != 1 {
		return 0, fmt.Errorf("attribute %s has unexpected type %T: %w", name, a, ErrCorruptFile)
	}

	return int(v[0]), nil
}

// seqLen returns the length of a 1-D variable, verifying it exists.
func seqLen(cf *cdf.File, name string) (int, error) {
	dims := cf.Header.Lengths(name)
	if len(dims) != 1 {
		return 0, fmt.Errorf("variable %s missing or not one-dimensional: %w", name, ErrCorruptFile)
	}

	return dims[0], nil
}

// readVarI32 reads a full int32 sequence of known length n.
func readVarI32(cf *cdf.File, name string, n int) ([]int32, error) {
	buf := make([]int32, n)
	if _, err := cf.Reader(name, nil, nil).Read(buf); err != nil {
		return nil, fmt.Errorf("reading %s: %v: %w", name, err, ErrCorruptFile)
	}

	return buf, nil
}

// readVarF64 reads a full float64 sequence of known length n.
func readVarF64(cf *cdf.File, name string, n int) ([]float64, error) {
	buf := make([]float64, n)
	if _, err := cf.Reader(name, nil, nil).Read(buf); err != nil {
		return nil, fmt.Errorf("reading %s: %v: %w", name, err, ErrCorruptFile)
	}

	return buf, nil
}

// writeVarI32 writes a full int32 sequence into a defined variable.
func writeVarI32(cf *cdf.File, name string, data []int32) error {
	end := cf.Header.Lengths(name)
	start := make([]int, len(end))
	if _, err := cf.Writer(name, start, end).Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	return nil
}

// writeVarF64 writes a full float64 sequence into a defined variable.
func writeVarF64(cf *cdf.File, name string, data []float64) error {
	end := cf.Header.Lengths(name)
	start := make([]int, len(end))
	if _, err := cf.Writer(name, start, end).Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	return nil
}
