// Package regrid is a toolkit for applying precomputed sparse regridding
// operators to gridded numeric data — moving arrays from one spatial grid
// to another while broadcasting over any number of extra dimensions.
//
// 🚀 What is regrid?
//
//	A pure-Go library that brings together:
//		• Weight files: durable, self-describing NetCDF operator storage
//		• Materialization: triplets → compressed-row sparse operator
//		• Broadcast apply: one 2D operator, N-dimensional data
//		• Layout safety: one pinned flattening convention, bit-identical
//		  results for row-major and column-major producers
//
// ✨ Why choose regrid?
//
//   - Deterministic – fixed loop orders, reproducible sums, no surprises
//   - Fail-fast – every shape and size validated before any compute
//   - Pure Go – no cgo, no external interpolation engine on the apply path
//   - Extensible – bring weights from any engine that can emit triplets
//
// The broadcast applier lives in this root package; everything else is
// organized under five subpackages:
//
//	grid/      — grid shapes, flattening convention, layout reconciliation
//	operator/  — triplet sets and the compressed-row materialized operator
//	weights/   — NetCDF weight-file store (write-once, size-checked read)
//	denseref/  — independent dense reference path for cross-validation
//	weightgen/ — built-in analytic weight generators (nearest, bilinear)
//
// Quick ASCII picture of one apply:
//
//	data (time, lev, 25, 53)  ──flatten──▶  (time·lev, 1325)
//	            W (667 × 1325) applied per slice
//	result (time, lev, 23, 29) ◀─reshape──  (time·lev, 667)
//
// Weight generation by geometric meshing engines (conservative remapping
// and friends) stays outside this module; regrid consumes their files.
//
//	go get github.com/katalvlaran/regrid
package regrid
