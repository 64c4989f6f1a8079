package testutil

import (
	"math/rand/v2"
	"sync"
)

// pcgStream is the fixed PCG increment. Only the seed varies between RNGs.
const pcgStream = 0x9e3779b97f4a7c15

// RNG is a reproducible, goroutine-safe source of int32 test sequences.
type RNG struct {
	mu   sync.Mutex
	src  *rand.PCG
	r    *rand.Rand
	seed int64
}

// NewRNG returns an RNG seeded with seed.
func NewRNG(seed int64) *RNG {
	src := rand.NewPCG(uint64(seed), pcgStream)
	return &RNG{src: src, r: rand.New(src), seed: seed}
}

// Reset rewinds the generator so it replays the sequence from the start.
func (g *RNG) Reset() {
	g.mu.Lock()
	g.src.Seed(uint64(g.seed), pcgStream)
	g.mu.Unlock()
}

func (g *RNG) Seed() int64 { return g.seed }

// Intn returns a value in [0, n). It panics if n <= 0.
func (g *RNG) Intn(n int) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.r.IntN(n)
}

// Int32 returns an int32 drawn from the whole range, negatives included.
func (g *RNG) Int32() int32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return int32(g.r.Uint32())
}

// FillInt32Range writes uniform values from [lo, hi) into dst. An empty
// range fills dst with lo.
func (g *RNG) FillInt32Range(dst []int32, lo, hi int32) {
	if hi <= lo {
		for i := range dst {
			dst[i] = lo
		}
		return
	}
	span := int64(hi) - int64(lo)

	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range dst {
		dst[i] = int32(int64(lo) + g.r.Int64N(span))
	}
}

// FillZipfInt32 writes Zipf(s) values from [0, imax] into dst. s must be
// greater than 1; the larger it is, the more often small values repeat.
func (g *RNG) FillZipfInt32(dst []int32, s float64, imax uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	z := rand.NewZipf(g.r, s, 1, imax)
	for i := range dst {
		dst[i] = int32(z.Uint64())
	}
}

// UniqueInt32s returns a random permutation of 0..n-1.
func (g *RNG) UniqueInt32s(n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(i)
	}
	g.Shuffle(out)
	return out
}

// Shuffle permutes dst in place.
func (g *RNG) Shuffle(dst []int32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.r.Shuffle(len(dst), func(i, j int) { dst[i], dst[j] = dst[j], dst[i] })
}
