//go:build !noasm && amd64

package simd

import "unsafe"

// n must be a multiple of 8.
//
//go:noescape
func indexInt32Avx2(p unsafe.Pointer, n int64, target int32) int64

// n must be a multiple of 16.
//
//go:noescape
func indexInt32Avx512(p unsafe.Pointer, n int64, target int32) int64
