package simd

import (
	"math/bits"
	"unsafe"

	"github.com/hupe1980/linsearch/internal/mem"
)

// genericWidth is the lane count emulated by the pure-Go kernel (one 256-bit
// register of int32 lanes).
const genericWidth = 8

// indexKernel returns the offset of the first lane of s equal to target, or -1.
// len(s) is always a multiple of the kernel's block width.
type indexKernel func(s []int32, target int32) int

// kernel is one block-compare implementation with its geometry.
type kernel struct {
	fn    indexKernel
	width int // int32 lanes per block
	align int // preferred byte alignment of block loads
}

var genericKernel = kernel{fn: indexInt32Generic, width: genericWidth, align: 4 * genericWidth}

// active is set from indexKernels at package init.
var active = genericKernel

// BlockWidth returns the number of int32 lanes compared per kernel step.
func BlockWidth() int {
	return active.width
}

// Alignment returns the byte alignment the kernel's block loads prefer.
func Alignment() int {
	return active.align
}

// IndexInt32 returns the index of the first element of s equal to target,
// or -1 if there is none.
//
// The scan runs in three phases: a scalar head until the cursor reaches
// Alignment(), whole blocks of BlockWidth() lanes through the active kernel,
// and a scalar tail for the remaining len(s) % BlockWidth() elements. No
// block load extends past len(s).
func IndexInt32(s []int32, target int32) int {
	return active.index(s, target)
}

func (k kernel) index(s []int32, target int32) int {
	n := len(s)
	if n == 0 {
		return -1
	}

	head := mem.HeadToAlign(unsafe.Pointer(&s[0]), 4, k.align)
	if head < 0 || head > n {
		head = n
	}
	for i := 0; i < head; i++ {
		if s[i] == target {
			return i
		}
	}

	i := head
	if body := (n - i) / k.width * k.width; body > 0 {
		if r := k.fn(s[i:i+body], target); r >= 0 {
			return i + r
		}
		i += body
	}

	for ; i < n; i++ {
		if s[i] == target {
			return i
		}
	}
	return -1
}

// indexInt32Generic emulates a block-wide compare: eight independent lane
// compares are folded into a mask and the lowest set bit picks the match.
func indexInt32Generic(s []int32, target int32) int {
	for base := 0; base+genericWidth <= len(s); base += genericWidth {
		if m := eqMask8((*[genericWidth]int32)(s[base:base+genericWidth]), target); m != 0 {
			return base + bits.TrailingZeros32(m)
		}
	}
	return -1
}

func eqMask8(b *[genericWidth]int32, target int32) uint32 {
	return boolToBit(b[0] == target) |
		boolToBit(b[1] == target)<<1 |
		boolToBit(b[2] == target)<<2 |
		boolToBit(b[3] == target)<<3 |
		boolToBit(b[4] == target)<<4 |
		boolToBit(b[5] == target)<<5 |
		boolToBit(b[6] == target)<<6 |
		boolToBit(b[7] == target)<<7
}

// EqMask returns a bitmask with bit i set when block[i] == target.
// Lanes past the 32nd are ignored.
func EqMask(block []int32, target int32) uint32 {
	if len(block) > 32 {
		block = block[:32]
	}
	var m uint32
	for i, v := range block {
		m |= boolToBit(v == target) << uint(i)
	}
	return m
}

// boolToBit converts a bool to 0 or 1 without branching.
// The compiler lowers this to SETcc.
func boolToBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
