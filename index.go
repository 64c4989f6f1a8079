package linsearch

import (
	"slices"
	"unsafe"

	"github.com/hupe1980/linsearch/internal/simd"
)

// NotFound is returned by the total strategies when the target does not occur.
const NotFound = -1

// UnrollFactor is the default number of comparisons per iteration of IndexUnrolled.
const UnrollFactor = 5

// Index returns the index of the first occurrence of target in s, or NotFound.
// It uses the fastest total strategy available on this CPU.
func Index(s []int32, target int32) int {
	return IndexWide(s, target)
}

// IndexLibrary returns the index of the first occurrence of target in s, or NotFound.
// It is the reference the other strategies are checked against.
func IndexLibrary(s []int32, target int32) int {
	return slices.Index(s, target)
}

// IndexBounded returns the index of the first occurrence of target in s, or NotFound.
func IndexBounded(s []int32, target int32) int {
	for i := 0; i < len(s); i++ {
		if s[i] == target {
			return i
		}
	}
	return NotFound
}

// IndexUnchecked returns the index of the first occurrence of target in s.
//
// The target must be present. There is no bound check: if target does not
// occur, IndexUnchecked reads past the end of s and may never return.
//
// The cursor is a pointer bumped after the branch on the compare has
// resolved, so the increment never feeds the next comparison's flags.
// `go build -gcflags=-S` shows the generated loop.
func IndexUnchecked(s []int32, target int32) int {
	base := unsafe.Pointer(unsafe.SliceData(s))
	p := base
	for *(*int32)(p) != target {
		p = unsafe.Add(p, 4)
	}
	return int((uintptr(p) - uintptr(base)) / 4)
}

// IndexUnrolled returns the index of the first occurrence of target in s, or
// NotFound, comparing UnrollFactor elements per loop iteration.
func IndexUnrolled(s []int32, target int32) int {
	return indexUnrolled5(s, target)
}

// IndexWide returns the index of the first occurrence of target in s, or
// NotFound, comparing simd.BlockWidth() elements per step.
//
// Misaligned heads and trailing partial blocks are scanned one element at a
// time, so any s is valid.
func IndexWide(s []int32, target int32) int {
	return simd.IndexInt32(s, target)
}

// BlockWidth returns the lane count of the active wide kernel.
func BlockWidth() int {
	return simd.BlockWidth()
}

// ActiveISA returns the name of the instruction set backing IndexWide.
func ActiveISA() string {
	return simd.ActiveISA().String()
}
