// Package linsearch finds the first occurrence of an int32 in a fixed-length
// sequence, with a family of scan strategies that trade safety for speed.
//
// # Quick Start
//
//	idx := linsearch.Index(seq, 42) // fastest total strategy
//	if idx == linsearch.NotFound {
//	    // 42 does not occur in seq
//	}
//
// # Strategies
//
// Listed in order of increasing throughput:
//
//	IndexLibrary    slices.Index; the reference result
//	IndexBounded    hand-written loop with a bound check per element
//	IndexUnchecked  no bound check; target MUST be present
//	IndexUnrolled   UnrollFactor independent compares per iteration
//	IndexWide       SIMD block compare (AVX2: 8 lanes, AVX-512: 16 lanes)
//
// All strategies except IndexUnchecked are total: they return NotFound for
// an absent target and never read outside the sequence. IndexUnrolled and
// IndexWide finish trailing partial blocks with a scalar loop, and
// IndexWide scans a scalar head until its loads are aligned.
//
// # Locator
//
// A Locator binds a strategy to logging and metrics:
//
//	loc, _ := linsearch.NewLocator(
//	    linsearch.WithStrategy(linsearch.StrategyUnrolled),
//	    linsearch.WithUnrollFactor(8),
//	    linsearch.WithMetricsCollector(&linsearch.BasicMetricsCollector{}),
//	)
//	idx := loc.Locate(seq, 42)
//	all, _ := loc.LocateAll(seq, 42)               // roaring bitmap of positions
//	idx, _ = loc.ParallelLocate(ctx, seq, 42, 4)  // sharded scan
//
// StrategyUnchecked must be acknowledged with WithPresenceGuaranteed.
//
// # SIMD Dispatch
//
// The wide kernel is selected at startup from CPU features. Set
// LINSEARCH_SIMD=generic (or avx2) to force a lower ISA, or build with
// -tags noasm to compile only the pure-Go kernel.
//
// # Concurrency
//
// Every function only reads the sequence, so concurrent calls over the same
// sequence need no coordination.
package linsearch
