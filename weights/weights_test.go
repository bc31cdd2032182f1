package weights_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/regrid/operator"
	"github.com/katalvlaran/regrid/weights"
)

// testTriplets is the 1×3 → 1×2 operator used across the store tests.
func testTriplets(t *testing.T) *operator.Triplets {
	t.Helper()
	tr, err := operator.NewTriplets(
		[]int32{0, 0, 1},
		[]int32{0, 1, 1},
		[]float64{0.5, 0.5, 1.0},
	)
	require.NoError(t, err)
	return tr
}

func TestWriteRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "span.nc")
	tr := testTriplets(t)

	require.NoError(t, weights.Write(path, tr, 2, 3))

	got, err := weights.Read(path, 2, 3)
	require.NoError(t, err)
	if diff := cmp.Diff(tr, got); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteRead_RoundTripLargeValues(t *testing.T) {
	// Coefficients must round-trip at full float64 precision, and indices
	// must survive well past the float32 integer range.
	path := filepath.Join(t.TempDir(), "large.nc")
	tr, err := operator.NewTriplets(
		[]int32{0, 1 << 24, 3},
		[]int32{9, 0, 1<<24 + 1},
		[]float64{1.0 / 3.0, -2.718281828459045, 1e-300},
	)
	require.NoError(t, err)

	const n = 1<<24 + 2
	require.NoError(t, weights.Write(path, tr, n, n))

	got, err := weights.Read(path, n, n)
	require.NoError(t, err)
	if diff := cmp.Diff(tr, got); diff != "" {
		t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "span.nc")
	tr := testTriplets(t)

	require.NoError(t, weights.Write(path, tr, 2, 3))

	err := weights.Write(path, tr, 2, 3)
	require.ErrorIs(t, err, weights.ErrFileExists)

	// The original file must be intact and still readable.
	_, err = weights.Read(path, 2, 3)
	require.NoError(t, err)
}

func TestWrite_ValidatesBeforeTouchingDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.nc")

	// Row index 5 cannot address a 2-point output grid.
	tr, err := operator.NewTriplets([]int32{5}, []int32{0}, []float64{1})
	require.NoError(t, err)
	require.ErrorIs(t, weights.Write(path, tr, 2, 3), operator.ErrIndexRange)

	// Nothing may have been created on the failure path.
	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWrite_RefusesEmptyOperator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.nc")
	tr, err := operator.NewTriplets(nil, nil, nil)
	require.NoError(t, err)

	require.ErrorIs(t, weights.Write(path, tr, 2, 3), weights.ErrNoTriplets)
}

func TestRead_SizeMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "span.nc")
	require.NoError(t, weights.Write(path, testTriplets(t), 2, 3))

	cases := []struct {
		name       string
		nOut, nIn  int
	}{
		{"WrongOut", 3, 3},
		{"WrongIn", 2, 4},
		{"Swapped", 3, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := weights.Read(path, tc.nOut, tc.nIn)
			require.ErrorIs(t, err, weights.ErrSizeMismatch)
			require.Nil(t, got, "no partial operator on failure")
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	_, err := weights.Read(filepath.Join(t.TempDir(), "nope.nc"), 2, 3)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRead_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.nc")
	require.NoError(t, os.WriteFile(path, []byte("not a netcdf file"), 0o644))

	got, err := weights.Read(path, 2, 3)
	require.ErrorIs(t, err, weights.ErrCorruptFile)
	require.Nil(t, got)
}

func TestRead_TruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trunc.nc")
	require.NoError(t, weights.Write(path, testTriplets(t), 2, 3))

	// Chop the payload tail off; the header parses but the sequences
	// cannot be fully read.
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b[:len(b)-16], 0o644))

	got, err := weights.Read(path, 2, 3)
	if err == nil {
		t.Fatal("Read succeeded on truncated file")
	}
	require.Nil(t, got)
}
