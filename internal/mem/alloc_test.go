package mem

import (
	"fmt"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestAlignedInt32s(t *testing.T) {
	for _, align := range []int{4, 16, 32, 64, 128} {
		for _, n := range []int{1, 7, 8, 9, 16, 17, 4096} {
			buf := AlignedInt32s(n, align)
			assert.Len(t, buf, n)
			assert.Equal(t, n, cap(buf), "capacity is clipped")
			assert.True(t, IsAligned(unsafe.Pointer(&buf[0]), align), "n=%d align=%d", n, align)
		}
	}

	assert.Nil(t, AllocAlignedInt32(0))
	assert.Nil(t, AllocAlignedInt32(-1))
	assert.True(t, IsAligned(unsafe.Pointer(&AllocAlignedInt32(3)[0]), Alignment))
}

func TestHeadToAlign(t *testing.T) {
	buf := AllocAlignedInt32(64)

	for off := 0; off < 16; off++ {
		p := unsafe.Pointer(&buf[off])
		head := HeadToAlign(p, 4, Alignment)
		want := (16 - off) % 16
		assert.Equal(t, want, head, "offset %d", off)
		assert.True(t, IsAligned(unsafe.Pointer(&buf[off+head]), Alignment))
	}

	t.Run("Unreachable", func(t *testing.T) {
		p := unsafe.Add(unsafe.Pointer(&AllocAlignedInt32(16)[0]), 1)
		assert.Equal(t, -1, HeadToAlign(p, 4, 32))
	})
}

func BenchmarkAllocAlignedInt32(b *testing.B) {
	for _, n := range []int{16, 64, 256, 1024} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = AllocAlignedInt32(n)
			}
		})
	}
}
