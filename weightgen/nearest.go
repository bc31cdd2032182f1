// SPDX-License-Identifier: MIT

package weightgen

import (
	"math"

	"github.com/katalvlaran/regrid/operator"
)

// unitVec converts a lon/lat pair (degrees) to a unit vector on the
// sphere, so distances can be compared by dot product without trig in
// the inner loop.
func unitVec(lonDeg, latDeg float64) (x, y, z float64) {
	lon := lonDeg * math.Pi / 180
	lat := latDeg * math.Pi / 180
	cosLat := math.Cos(lat)
	return cosLat * math.Cos(lon), cosLat * math.Sin(lon), math.Sin(lat)
}

// nearestTriplets assigns each destination cell the single closest
// source cell (great-circle distance), weight 1.
//
// Stage 1 (Precompute): convert every source cell to a unit vector.
// Stage 2 (Scan): per destination cell, brute-force the best dot
// product; ties keep the lowest source index, so output is
// deterministic.
//
// Complexity: O(nOut·nIn) time, O(nIn) extra space.
func nearestTriplets(src, dst *Grid) (*operator.Triplets, error) {
	var (
		nIn  = src.Len()
		nOut = dst.Len()
		sx   = make([]float64, nIn)
		sy   = make([]float64, nIn)
		sz   = make([]float64, nIn)
		row  = make([]int32, nOut)
		col  = make([]int32, nOut)
		s    = make([]float64, nOut)
		i, j int
	)

	for j = 0; j < nIn; j++ {
		sx[j], sy[j], sz[j] = unitVec(src.Lon.Elements[j], src.Lat.Elements[j])
	}

	for i = 0; i < nOut; i++ {
		dx, dy, dz := unitVec(dst.Lon.Elements[i], dst.Lat.Elements[i])
		best, bestDot := 0, math.Inf(-1)
		for j = 0; j < nIn; j++ {
			dot := dx*sx[j] + dy*sy[j] + dz*sz[j]
			if dot > bestDot {
				best, bestDot = j, dot
			}
		}
		row[i] = int32(i)
		col[i] = int32(best)
		s[i] = 1
	}

	return operator.NewTriplets(row, col, s)
}
