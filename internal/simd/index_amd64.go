//go:build amd64 && !noasm

package simd

import "unsafe"

var indexKernels = map[ISA]kernel{
	Generic: genericKernel,
	AVX2:    {fn: indexInt32AVX2Wrapper, width: 8, align: 32},
	AVX512:  {fn: indexInt32AVX512Wrapper, width: 16, align: 64},
}

func indexInt32AVX2Wrapper(s []int32, target int32) int {
	if len(s) == 0 {
		return -1
	}
	return int(indexInt32Avx2(unsafe.Pointer(&s[0]), int64(len(s)), target))
}

func indexInt32AVX512Wrapper(s []int32, target int32) int {
	if len(s) == 0 {
		return -1
	}
	return int(indexInt32Avx512(unsafe.Pointer(&s[0]), int64(len(s)), target))
}
