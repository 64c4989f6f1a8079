// Package simd selects the instruction set for the wide int32 equality scan
// and implements its kernels.
//
// Runtime CPU feature detection picks AVX-512 or AVX2 on x86-64. Other
// targets, and builds with -tags noasm, use a portable kernel that compares
// eight lanes per block. Set LINSEARCH_SIMD to force a lower ISA.
package simd
