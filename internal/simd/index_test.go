package simd

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/hupe1980/linsearch/internal/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexInt32(t *testing.T) {
	tests := []struct {
		name     string
		values   []int32
		target   int32
		expected int
	}{
		{name: "Empty", values: []int32{}, target: 1, expected: -1},
		{name: "Single hit", values: []int32{4}, target: 4, expected: 0},
		{name: "Single miss", values: []int32{4}, target: 5, expected: -1},
		{name: "First of duplicates", values: []int32{3, 7, 1, 9, 7, 2}, target: 7, expected: 1},
		{name: "Negative", values: []int32{0, -1, -2, -3}, target: -3, expected: 3},
		{name: "Zero target", values: []int32{5, 5, 5, 0, 5}, target: 0, expected: 3},
		{
			name:     "Hit in second block",
			values:   []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
			target:   18,
			expected: 17,
		},
		{
			name:     "Miss across blocks",
			values:   []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17},
			target:   99,
			expected: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IndexInt32(tt.values, tt.target))
		})
	}
}

func TestIndexInt32_Boundaries(t *testing.T) {
	w := BlockWidth()
	lengths := []int{1, w - 1, w, w + 1, 2*w - 1, 2 * w, 2*w + 1, 4096}

	for _, n := range lengths {
		if n <= 0 {
			continue
		}
		values := make([]int32, n)
		for i := range values {
			values[i] = int32(i + 1)
		}
		for _, pos := range []int{0, n / 2, n - 1} {
			assert.Equal(t, pos, IndexInt32(values, int32(pos+1)), "n=%d pos=%d", n, pos)
		}
		assert.Equal(t, -1, IndexInt32(values, 0), "n=%d absent", n)
	}
}

// Every start offset within an aligned buffer exercises a different split
// between the scalar head, kernel body and scalar tail.
func TestIndexInt32_Misaligned(t *testing.T) {
	buf := mem.AllocAlignedInt32(256)
	for i := range buf {
		buf[i] = int32(i)
	}

	for off := 0; off < 16; off++ {
		for _, n := range []int{1, 7, 8, 9, 31, 33, 100} {
			s := buf[off : off+n]
			for j := range s {
				require.Equal(t, j, IndexInt32(s, s[j]), "off=%d n=%d j=%d", off, n, j)
			}
			require.Equal(t, -1, IndexInt32(s, -1), "off=%d n=%d", off, n)
		}
	}
}

func TestIndexInt32_DoesNotReadPastEnd(t *testing.T) {
	// The target sits just past the slice bounds in the backing array.
	backing := []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 42, 42, 42}
	for n := 0; n <= 16; n++ {
		assert.Equal(t, -1, IndexInt32(backing[:n], 42), "n=%d", n)
	}
}

func TestIndexInt32_MatchesSlicesIndex(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for iter := 0; iter < 500; iter++ {
		n := 1 + r.Intn(300)
		values := make([]int32, n)
		for i := range values {
			values[i] = int32(r.Intn(64))
		}
		target := int32(r.Intn(80))
		require.Equal(t, slices.Index(values, target), IndexInt32(values, target), "iter=%d", iter)
	}
}

func TestIndexInt32Generic(t *testing.T) {
	values := make([]int32, 64)
	for i := range values {
		values[i] = int32(i * 3)
	}
	assert.Equal(t, 21, indexInt32Generic(values, 63))
	assert.Equal(t, -1, indexInt32Generic(values, 64))
	assert.Equal(t, 0, indexInt32Generic(values, 0))
	assert.Equal(t, 63, indexInt32Generic(values, 189))
}

func TestEqMask(t *testing.T) {
	assert.Equal(t, uint32(0b10010), EqMask([]int32{3, 7, 1, 9, 7, 2}, 7))
	assert.Equal(t, uint32(0), EqMask([]int32{1, 2, 3}, 9))
	assert.Equal(t, uint32(0), EqMask(nil, 0))

	wide := make([]int32, 40)
	wide[39] = 1
	wide[31] = 1
	assert.Equal(t, uint32(1)<<31, EqMask(wide, 1))

	var block [8]int32
	block[5] = -4
	assert.Equal(t, EqMask(block[:], -4), eqMask8(&block, -4))
}

func TestParseISA(t *testing.T) {
	for _, isa := range []ISA{Generic, NEON, SVE2, AVX2, AVX512} {
		parsed, ok := ParseISA(" " + isa.String() + " ")
		assert.True(t, ok)
		assert.Equal(t, isa, parsed)
	}

	_, ok := ParseISA("mmx")
	assert.False(t, ok)
	assert.Equal(t, "unknown", ISA(200).String())
}

func TestResolveISA(t *testing.T) {
	isa, overridden := resolveISA("generic")
	assert.Equal(t, Generic, isa)
	assert.True(t, overridden)

	isa, overridden = resolveISA("mmx")
	assert.False(t, overridden)
	assert.True(t, usable(isa))

	// No index kernel exists for the ARM ISAs, so they never win.
	for _, o := range []string{"neon", "sve2"} {
		isa, overridden = resolveISA(o)
		assert.False(t, overridden, o)
		assert.NotEqual(t, NEON, isa)
		assert.NotEqual(t, SVE2, isa)
	}
}

func TestActiveISAIsUsable(t *testing.T) {
	assert.True(t, usable(ActiveISA()))
	assert.Contains(t, Detected(), Generic)
	assert.Positive(t, BlockWidth())
	assert.Zero(t, Alignment()%4)
}

func TestFeatureHas(t *testing.T) {
	f := featAVX2 | featAVX512F
	assert.True(t, f.has(featAVX2))
	assert.True(t, f.has(featAVX2|featAVX512F))
	assert.False(t, f.has(featAVX512F|featAVX512BW))
	assert.False(t, feature(0).has(featASIMD))
}

// Each kernel this build carries is run directly, not only the one picked
// for the host, so the narrower asm paths are covered on wider CPUs.
func TestIndexKernels(t *testing.T) {
	for isa, k := range indexKernels {
		t.Run(isa.String(), func(t *testing.T) {
			if !supported(isa) {
				t.Skipf("cpu lacks %s", isa)
			}
			w := k.width
			buf := mem.AllocAlignedInt32(8*w + 32)
			for i := range buf {
				buf[i] = int32(i)
			}

			for _, off := range []int{0, 1, 3, w - 1, w, w + 1} {
				for _, n := range []int{1, w - 1, w, w + 1, 2*w - 1, 2 * w, 2*w + 1, 4*w + 3} {
					s := buf[off : off+n]
					for j := range s {
						require.Equal(t, j, k.index(s, s[j]), "off=%d n=%d j=%d", off, n, j)
					}
					require.Equal(t, -1, k.index(s, -1), "off=%d n=%d", off, n)
					// The element just past the slice must stay invisible.
					require.Equal(t, -1, k.index(s, buf[off+n]), "off=%d n=%d past end", off, n)
				}
			}

			// Block-multiple input straight into the kernel body.
			body := buf[:4*w]
			assert.Equal(t, 3*w+1, k.fn(body, int32(3*w+1)))
			assert.Equal(t, -1, k.fn(body, -7))
		})
	}
}
