package linsearch

import (
	"testing"

	"github.com/hupe1980/linsearch/internal/mem"
	"github.com/hupe1980/linsearch/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type indexFunc struct {
	name  string
	fn    func([]int32, int32) int
	total bool
}

func allIndexFuncs() []indexFunc {
	funcs := []indexFunc{
		{"library", IndexLibrary, true},
		{"bounded", IndexBounded, true},
		{"unchecked", IndexUnchecked, false},
		{"unrolled", IndexUnrolled, true},
		{"wide", IndexWide, true},
		{"index", Index, true},
	}
	for _, k := range UnrollFactors() {
		fn, _ := unrolledKernel(k)
		funcs = append(funcs, indexFunc{"unrolled" + string(rune('0'+k)), fn, true})
	}
	return funcs
}

func TestIndex_Example(t *testing.T) {
	s := []int32{3, 7, 1, 9, 7, 2}
	for _, f := range allIndexFuncs() {
		t.Run(f.name, func(t *testing.T) {
			assert.Equal(t, 1, f.fn(s, 7))
			assert.Equal(t, 0, f.fn(s, 3))
			assert.Equal(t, 5, f.fn(s, 2))
		})
	}
}

func TestIndex_LastOf4096(t *testing.T) {
	rng := testutil.NewRNG(4096)
	s := rng.UniqueInt32s(4096)
	target := s[4095]

	for _, f := range allIndexFuncs() {
		t.Run(f.name, func(t *testing.T) {
			assert.Equal(t, 4095, f.fn(s, target))
		})
	}
}

func TestIndex_Boundaries(t *testing.T) {
	w := BlockWidth()
	lengths := []int{
		1,
		UnrollFactor - 1, UnrollFactor, UnrollFactor + 1,
		2*UnrollFactor - 1, 2 * UnrollFactor, 2*UnrollFactor + 1,
		w - 1, w, w + 1,
		2*w - 1, 2 * w, 2*w + 1,
	}

	for _, n := range lengths {
		s := make([]int32, n)
		for i := range s {
			s[i] = int32(100 + i)
		}
		for _, f := range allIndexFuncs() {
			assert.Equal(t, 0, f.fn(s, 100), "%s n=%d first", f.name, n)
			assert.Equal(t, n-1, f.fn(s, int32(100+n-1)), "%s n=%d last", f.name, n)
			if f.total {
				assert.Equal(t, NotFound, f.fn(s, -1), "%s n=%d absent", f.name, n)
			}
		}
	}
}

func TestIndex_Empty(t *testing.T) {
	for _, f := range allIndexFuncs() {
		if !f.total {
			continue
		}
		assert.Equal(t, NotFound, f.fn(nil, 0), f.name)
		assert.Equal(t, NotFound, f.fn([]int32{}, 0), f.name)
	}
}

// The total strategies must not see values that live in the backing array
// beyond len(s).
func TestIndex_TotalStaysInBounds(t *testing.T) {
	backing := make([]int32, 64)
	for i := range backing {
		backing[i] = int32(i)
	}
	backing[40] = -7

	for _, f := range allIndexFuncs() {
		if !f.total {
			continue
		}
		for n := 0; n <= 40; n++ {
			require.Equal(t, NotFound, f.fn(backing[:n], -7), "%s n=%d", f.name, n)
		}
	}
}

func TestIndex_Equivalence(t *testing.T) {
	rng := testutil.NewRNG(11)
	funcs := allIndexFuncs()

	for iter := 0; iter < 1000; iter++ {
		n := 1 + rng.Intn(200)
		s := make([]int32, n)
		rng.FillInt32Range(s, 0, 32)

		// Present target: every strategy, including unchecked.
		present := s[rng.Intn(n)]
		want := IndexLibrary(s, present)
		for _, f := range funcs {
			require.Equal(t, want, f.fn(s, present), "%s iter=%d", f.name, iter)
		}

		// Absent target: total strategies only.
		for _, f := range funcs {
			if f.total {
				require.Equal(t, NotFound, f.fn(s, 32), "%s iter=%d", f.name, iter)
			}
		}
	}
}

func TestIndex_Misaligned(t *testing.T) {
	buf := mem.AllocAlignedInt32(128)
	for i := range buf {
		buf[i] = int32(i)
	}

	for off := 0; off < 16; off++ {
		s := buf[off : off+50]
		for _, f := range allIndexFuncs() {
			require.Equal(t, 49, f.fn(s, int32(off+49)), "%s off=%d", f.name, off)
		}
	}
}

func TestIndex_Idempotent(t *testing.T) {
	rng := testutil.NewRNG(3)
	s := make([]int32, 999)
	rng.FillZipfInt32(s, 1.3, 50)
	orig := append([]int32(nil), s...)
	target := s[777]

	for _, f := range allIndexFuncs() {
		first := f.fn(s, target)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, f.fn(s, target), f.name)
		}
	}
	assert.Equal(t, orig, s)
}

func TestStrategy_ParseAndString(t *testing.T) {
	for _, s := range Strategies() {
		parsed, ok := ParseStrategy(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, parsed)
	}

	parsed, ok := ParseStrategy(" SIMD ")
	assert.True(t, ok)
	assert.Equal(t, StrategyWide, parsed)

	_, ok = ParseStrategy("binary")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Strategy(99).String())

	assert.False(t, StrategyUnchecked.Total())
	assert.True(t, StrategyWide.Total())
}

func TestActiveISA(t *testing.T) {
	assert.NotEmpty(t, ActiveISA())
	assert.NotEqual(t, "unknown", ActiveISA())
	assert.GreaterOrEqual(t, BlockWidth(), 8)
}
