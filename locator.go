package linsearch

import (
	"context"
	"math"
	"sync/atomic"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"
)

// parallelBlock bounds how many elements a ParallelLocate shard scans
// between checks of the context and of earlier shards' results.
const parallelBlock = 1 << 16

// Locator runs a configured strategy over caller-owned sequences.
// A Locator is immutable and safe for concurrent use.
type Locator struct {
	strategy Strategy
	unroll   int
	index    func([]int32, int32) int
	// total is index when the strategy is total, IndexWide otherwise.
	total   func([]int32, int32) int
	metrics MetricsCollector
	logger  *Logger
	observe bool
}

// NewLocator creates a Locator.
func NewLocator(optFns ...Option) (*Locator, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	l := &Locator{
		strategy: o.strategy,
		unroll:   o.unrollFactor,
		metrics:  o.metricsCollector,
		logger:   o.logger,
	}

	switch o.strategy {
	case StrategyLibrary:
		l.index = IndexLibrary
	case StrategyBounded:
		l.index = IndexBounded
	case StrategyUnchecked:
		if !o.presenceGuarantee {
			return nil, ErrPresenceNotGuaranteed
		}
		l.index = IndexUnchecked
	case StrategyUnrolled:
		fn, ok := unrolledKernel(o.unrollFactor)
		if !ok {
			return nil, &ErrUnsupportedUnrollFactor{Factor: o.unrollFactor}
		}
		l.index = fn
	case StrategyWide:
		l.index = IndexWide
	default:
		return nil, &ErrInvalidStrategy{Strategy: o.strategy}
	}

	l.total = l.index
	if !o.strategy.Total() {
		l.total = IndexWide
	}

	if l.metrics == nil {
		l.metrics = NoopMetricsCollector{}
	} else {
		l.observe = true
	}
	if l.logger == nil {
		l.logger = NoopLogger()
	} else {
		l.observe = true
	}

	return l, nil
}

// Strategy returns the configured strategy.
func (l *Locator) Strategy() Strategy {
	return l.strategy
}

// UnrollFactor returns the configured unroll factor. It only affects StrategyUnrolled.
func (l *Locator) UnrollFactor() int {
	return l.unroll
}

// Locate returns the index of the first occurrence of target in s.
//
// For total strategies it returns NotFound when target is absent. For
// StrategyUnchecked the target must be present.
func (l *Locator) Locate(s []int32, target int32) int {
	if !l.observe {
		return l.index(s, target)
	}

	start := time.Now()
	idx := l.index(s, target)
	l.metrics.RecordLocate(l.strategy, len(s), idx != NotFound, time.Since(start))
	l.logger.LogLocate(context.Background(), l.strategy, len(s), idx)
	return idx
}

// Contains reports whether target occurs in s. It never uses the unchecked kernel.
func (l *Locator) Contains(s []int32, target int32) bool {
	return l.total(s, target) != NotFound
}

// LocateAll returns every position of target in s.
// Sequences longer than math.MaxUint32 are rejected with ErrSequenceTooLarge.
func (l *Locator) LocateAll(s []int32, target int32) (*roaring.Bitmap, error) {
	if uint64(len(s)) > math.MaxUint32 {
		return nil, ErrSequenceTooLarge
	}

	bm := roaring.New()
	for i := 0; i < len(s); {
		r := l.total(s[i:], target)
		if r == NotFound {
			break
		}
		bm.Add(uint32(i + r))
		i += r + 1
	}
	return bm, nil
}

// Count returns the number of occurrences of target in s.
func (l *Locator) Count(s []int32, target int32) (int, error) {
	bm, err := l.LocateAll(s, target)
	if err != nil {
		return 0, err
	}
	return int(bm.GetCardinality()), nil
}

// ParallelLocate splits s into shards contiguous ranges, scans them
// concurrently and returns the smallest matching index, or NotFound.
//
// Ranges that start after an already-found match are skipped. The unchecked
// kernel is never used, so target need not be present.
func (l *Locator) ParallelLocate(ctx context.Context, s []int32, target int32, shards int) (int, error) {
	if shards <= 0 {
		return NotFound, ErrInvalidShards
	}
	if err := ctx.Err(); err != nil {
		return NotFound, err
	}

	n := len(s)
	if n == 0 {
		return NotFound, nil
	}
	if shards > n {
		shards = n
	}
	chunk := (n + shards - 1) / shards

	var best atomic.Int64
	best.Store(math.MaxInt64)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(shards)

	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for b := lo; b < hi; b += parallelBlock {
				if err := gctx.Err(); err != nil {
					return err
				}
				if int64(b) > best.Load() {
					return nil
				}
				e := min(b+parallelBlock, hi)
				if r := l.total(s[b:e], target); r != NotFound {
					storeMin(&best, int64(b+r))
					return nil
				}
			}
			return nil
		})
	}

	err := g.Wait()
	idx := NotFound
	if v := best.Load(); v != math.MaxInt64 {
		idx = int(v)
	}
	if l.observe {
		l.logger.LogParallelLocate(ctx, shards, n, idx, err)
	}
	if err != nil {
		return NotFound, err
	}
	return idx, nil
}

func storeMin(v *atomic.Int64, x int64) {
	for {
		cur := v.Load()
		if x >= cur || v.CompareAndSwap(cur, x) {
			return
		}
	}
}
