package simd

import (
	"math/rand"
	"slices"
	"strconv"
	"testing"
)

// Benchmarks in this package are meant to be run twice to compare:
// - default build: asm enabled (SIMD dispatch when available)
// - generic build: `-tags noasm` (forces pure-Go implementations)
//
// Examples:
//   go test ./internal/simd -run '^$' -bench . -benchmem
//   go test ./internal/simd -run '^$' -bench . -benchmem -tags noasm
//   LINSEARCH_SIMD=avx2 go test ./internal/simd -run '^$' -bench .

func benchRand() *rand.Rand { return rand.New(rand.NewSource(1)) }

func uniqueInt32s(r *rand.Rand, n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(i)
	}
	r.Shuffle(n, func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func BenchmarkIndexInt32_Last(b *testing.B) {
	r := benchRand()
	for _, n := range []int{64, 512, 4096, 65536} {
		values := uniqueInt32s(r, n)
		target := values[n-1]

		b.Run("n="+strconv.Itoa(n), func(b *testing.B) {
			b.SetBytes(int64(n * 4))
			var sink int
			for i := 0; i < b.N; i++ {
				sink += IndexInt32(values, target)
			}
			_ = sink
		})

		b.Run("n="+strconv.Itoa(n)+"/generic", func(b *testing.B) {
			b.SetBytes(int64(n * 4))
			body := values[:n/genericWidth*genericWidth]
			var sink int
			for i := 0; i < b.N; i++ {
				sink += indexInt32Generic(body, target)
			}
			_ = sink
		})

		b.Run("n="+strconv.Itoa(n)+"/slices", func(b *testing.B) {
			b.SetBytes(int64(n * 4))
			var sink int
			for i := 0; i < b.N; i++ {
				sink += slices.Index(values, target)
			}
			_ = sink
		})
	}
}
