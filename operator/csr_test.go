package operator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/regrid/grid"
	"github.com/katalvlaran/regrid/operator"
)

// spanTriplets is the concrete operator used throughout: a 1×3 input grid
// mapped onto a 1×2 output grid, dst0 = (src0+src1)/2, dst1 = src1.
func spanTriplets(t *testing.T) *operator.Triplets {
	t.Helper()
	tr, err := operator.NewTriplets(
		[]int32{0, 0, 1},
		[]int32{0, 1, 1},
		[]float64{0.5, 0.5, 1.0},
	)
	require.NoError(t, err)
	return tr
}

func TestNewTriplets_LengthMismatch(t *testing.T) {
	_, err := operator.NewTriplets([]int32{0, 1}, []int32{0}, []float64{1})
	require.ErrorIs(t, err, operator.ErrTripletLength)
}

func TestMaterialize_SpanScenario(t *testing.T) {
	c, err := operator.Materialize(spanTriplets(t), 2, 3)
	require.NoError(t, err)

	nOut, nIn := c.Dims()
	require.Equal(t, 2, nOut)
	require.Equal(t, 3, nIn)
	require.Equal(t, 3, c.NNZ())

	dst := make([]float64, 2)
	require.NoError(t, c.MulVec(dst, []float64{10, 20, 30}))
	// dst0 = 0.5*10 + 0.5*20 = 15; dst1 = 1.0*20 = 20.
	require.Equal(t, []float64{15, 20}, dst)
}

func TestMaterialize_SumsDuplicates(t *testing.T) {
	// Two partial contributions to (0,0) plus one to (1,2); the duplicates
	// must accumulate, not overwrite.
	tr, err := operator.NewTriplets(
		[]int32{1, 0, 0},
		[]int32{2, 0, 0},
		[]float64{1.0, 0.25, 0.5},
	)
	require.NoError(t, err)

	c, err := operator.Materialize(tr, 2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, c.NNZ()) // (0,0) merged into one entry

	dst := make([]float64, 2)
	require.NoError(t, c.MulVec(dst, []float64{4, 0, 8}))
	require.Equal(t, []float64{3, 8}, dst) // (0.25+0.5)*4 and 1.0*8
}

func TestMaterialize_EmptyOperatorZeroFills(t *testing.T) {
	tr, err := operator.NewTriplets(nil, nil, nil)
	require.NoError(t, err)

	c, err := operator.Materialize(tr, 3, 2)
	require.NoError(t, err)
	require.Equal(t, 0, c.NNZ())

	dst := []float64{7, 7, 7} // stale values must be overwritten with 0.0
	require.NoError(t, c.MulVec(dst, []float64{1, 2}))
	require.Equal(t, []float64{0, 0, 0}, dst)
}

func TestMaterialize_Errors(t *testing.T) {
	tr := operator.Identity(3)

	_, err := operator.Materialize(nil, 3, 3)
	require.ErrorIs(t, err, operator.ErrNilOperator)

	_, err = operator.Materialize(tr, 0, 3)
	require.ErrorIs(t, err, operator.ErrBadDims)

	_, err = operator.Materialize(tr, 3, -1)
	require.ErrorIs(t, err, operator.ErrBadDims)

	// Row index 2 does not fit a 2-point output grid.
	_, err = operator.Materialize(tr, 2, 3)
	require.ErrorIs(t, err, operator.ErrIndexRange)

	// Col index 2 does not fit a 2-point input grid.
	_, err = operator.Materialize(tr, 3, 2)
	require.ErrorIs(t, err, operator.ErrIndexRange)
}

func TestIdentity_RoundTripsVector(t *testing.T) {
	c, err := operator.Materialize(operator.Identity(4), 4, 4)
	require.NoError(t, err)

	x := []float64{3.5, -1, 0, 2.25}
	dst := make([]float64, 4)
	require.NoError(t, c.MulVec(dst, x))
	require.Equal(t, x, dst)
}

func TestMulVec_LengthErrors(t *testing.T) {
	c, err := operator.Materialize(spanTriplets(t), 2, 3)
	require.NoError(t, err)

	require.ErrorIs(t, c.MulVec(make([]float64, 2), make([]float64, 4)), operator.ErrVecLen)
	require.ErrorIs(t, c.MulVec(make([]float64, 1), make([]float64, 3)), operator.ErrVecLen)
}

func TestMulBatch_EqualsStackedMulVec(t *testing.T) {
	c, err := operator.Materialize(spanTriplets(t), 2, 3)
	require.NoError(t, err)

	const batch = 4
	x := []float64{
		10, 20, 30,
		1, 2, 3,
		-5, 0, 5,
		0.5, 0.25, 0.125,
	}
	dst := make([]float64, batch*2)
	require.NoError(t, c.MulBatch(dst, x, batch))

	// Stacking four independent single-slice applies must agree exactly.
	one := make([]float64, 2)
	for b := 0; b < batch; b++ {
		require.NoError(t, c.MulVec(one, x[b*3:(b+1)*3]))
		require.Equal(t, one, dst[b*2:(b+1)*2], "batch slice %d", b)
	}
}

func TestMulBatch_Errors(t *testing.T) {
	c, err := operator.Materialize(spanTriplets(t), 2, 3)
	require.NoError(t, err)

	require.ErrorIs(t, c.MulBatch(make([]float64, 2), make([]float64, 3), 0), operator.ErrBatch)
	require.ErrorIs(t, c.MulBatch(make([]float64, 2), make([]float64, 5), 2), operator.ErrVecLen)
	require.ErrorIs(t, c.MulBatch(make([]float64, 3), make([]float64, 6), 2), operator.ErrVecLen)
}

func TestMulBatchPerm_BitIdenticalAcrossLayouts(t *testing.T) {
	// Operator over a 2×2 input and 2×2 output grid with asymmetric
	// coefficients, so any layout confusion would change the result.
	tr, err := operator.NewTriplets(
		[]int32{0, 1, 2, 3, 3},
		[]int32{0, 2, 1, 3, 0},
		[]float64{1, 0.5, 0.25, 2, -1},
	)
	require.NoError(t, err)
	c, err := operator.Materialize(tr, 4, 4)
	require.NoError(t, err)

	s, err := grid.NewShape(2, 2)
	require.NoError(t, err)
	perm := grid.Perm(s, grid.ColMajor)

	// Canonical (row-major) data and the same logical data stored
	// column-major.
	xRM := []float64{1, 2, 3, 4}    // (0,0) (0,1) (1,0) (1,1)
	xCM := []float64{1, 3, 2, 4}    // (0,0) (1,0) (0,1) (1,1)

	want := make([]float64, 4)
	require.NoError(t, c.MulBatch(want, xRM, 1))

	gotCM := make([]float64, 4)
	require.NoError(t, c.MulBatchPerm(gotCM, xCM, 1, perm, perm))

	// Scatter the column-major result back to canonical order and compare
	// bit-for-bit: identical coefficients, identical accumulation order.
	got := make([]float64, 4)
	for j, pj := range perm {
		got[j] = gotCM[pj]
	}
	require.Equal(t, want, got)
}

func TestMulBatchPerm_PermLengthErrors(t *testing.T) {
	c, err := operator.Materialize(spanTriplets(t), 2, 3)
	require.NoError(t, err)

	dst := make([]float64, 2)
	x := make([]float64, 3)
	require.ErrorIs(t, c.MulBatchPerm(dst, x, 1, []int{0, 1}, nil), operator.ErrVecLen)
	require.ErrorIs(t, c.MulBatchPerm(dst, x, 1, nil, []int{0}), operator.ErrVecLen)
}
