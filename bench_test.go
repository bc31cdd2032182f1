// Package regrid_test provides benchmarks for the broadcast applier,
// covering batch scaling and worker fan-out on deterministic operators.
package regrid_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/ctessum/sparse"

	"github.com/katalvlaran/regrid"
	"github.com/katalvlaran/regrid/grid"
	"github.com/katalvlaran/regrid/operator"
)

var sinkArr *sparse.DenseArray

// benchOp materializes a reproducible side²×side² operator with ~4
// nonzeros per output point.
func benchOp(b *testing.B, side int, seed int64) *operator.CSR {
	b.Helper()
	rng := rand.New(rand.NewSource(seed))
	n := side * side
	nnz := 4 * n
	row := make([]int32, nnz)
	col := make([]int32, nnz)
	s := make([]float64, nnz)
	for k := 0; k < nnz; k++ {
		row[k] = int32(k / 4)
		col[k] = int32(rng.Intn(n))
		s[k] = rng.Float64()
	}
	t, err := operator.NewTriplets(row, col, s)
	if err != nil {
		b.Fatal(err)
	}
	op, err := operator.Materialize(t, n, n)
	if err != nil {
		b.Fatal(err)
	}
	return op
}

// benchInput fills a batch×side×side array with deterministic values.
func benchInput(batch, side int, seed int64) *sparse.DenseArray {
	rng := rand.New(rand.NewSource(seed))
	d := sparse.ZerosDense(batch, side, side)
	for i := range d.Elements {
		d.Elements[i] = rng.Float64()
	}
	return d
}

func BenchmarkApply(b *testing.B) {
	b.ReportAllocs()
	const side = 64
	op := benchOp(b, side, 1337)
	out, _ := grid.NewShape(side, side)
	for _, batch := range []int{1, 8, 64} {
		in := benchInput(batch, side, 7)
		b.Run(fmt.Sprintf("batch=%d", batch), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				res, err := regrid.Apply(op, in, out)
				if err != nil {
					b.Fatal(err)
				}
				sinkArr = res
			}
		})
	}
}

func BenchmarkApplyWorkers(b *testing.B) {
	b.ReportAllocs()
	const (
		side  = 64
		batch = 64
	)
	op := benchOp(b, side, 1337)
	out, _ := grid.NewShape(side, side)
	in := benchInput(batch, side, 7)
	for _, workers := range []int{1, 2, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				res, err := regrid.Apply(op, in, out, regrid.WithWorkers(workers))
				if err != nil {
					b.Fatal(err)
				}
				sinkArr = res
			}
		})
	}
}

func BenchmarkApplyColMajor(b *testing.B) {
	b.ReportAllocs()
	const (
		side  = 64
		batch = 8
	)
	op := benchOp(b, side, 1337)
	out, _ := grid.NewShape(side, side)
	in := benchInput(batch, side, 7)
	b.Run("canonical", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			res, err := regrid.Apply(op, in, out)
			if err != nil {
				b.Fatal(err)
			}
			sinkArr = res
		}
	})
	b.Run("transposed", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			res, err := regrid.Apply(op, in, out,
				regrid.WithInputLayout(grid.ColMajor),
				regrid.WithOutputLayout(grid.ColMajor),
			)
			if err != nil {
				b.Fatal(err)
			}
			sinkArr = res
		}
	})
}
