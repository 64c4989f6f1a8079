package mem

import "unsafe"

// Alignment is the default boundary for int32 buffers: one 512-bit vector.
const Alignment = 64

// AllocAlignedInt32 returns a zeroed []int32 of length n whose first element
// sits on an Alignment-byte boundary.
func AllocAlignedInt32(n int) []int32 {
	return AlignedInt32s(n, Alignment)
}

// AlignedInt32s returns a zeroed []int32 of length n whose first element sits
// on an align-byte boundary. align must be a power of two and at least 4.
// The capacity equals n, so appends reallocate instead of writing past it.
func AlignedInt32s(n, align int) []int32 {
	if n <= 0 {
		return nil
	}
	buf := make([]int32, n+align/4-1)
	// make returns 4-byte aligned memory, so the head is always reachable.
	head := HeadToAlign(unsafe.Pointer(&buf[0]), 4, align)
	return buf[head : head+n : head+n]
}

// IsAligned reports whether p is a multiple of align. align must be a power of two.
func IsAligned(p unsafe.Pointer, align int) bool {
	return uintptr(p)&uintptr(align-1) == 0
}

// HeadToAlign returns the number of elemSize-byte elements between p and the
// next align-byte boundary. It is 0 when p is already aligned, and -1 when
// the boundary cannot be reached in whole elements.
func HeadToAlign(p unsafe.Pointer, elemSize, align int) int {
	mis := int(uintptr(p) & uintptr(align-1))
	if mis == 0 {
		return 0
	}
	gap := align - mis
	if gap%elemSize != 0 {
		return -1
	}
	return gap / elemSize
}
