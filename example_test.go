package linsearch_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/linsearch"
)

func ExampleIndex() {
	s := []int32{8, 3, 5, 3}
	fmt.Println(linsearch.Index(s, 3))
	fmt.Println(linsearch.Index(s, 7))
	// Output:
	// 1
	// -1
}

// ExampleNewLocator selects a strategy explicitly.
func ExampleNewLocator() {
	loc, err := linsearch.NewLocator(
		linsearch.WithStrategy(linsearch.StrategyUnrolled),
		linsearch.WithUnrollFactor(8),
	)
	if err != nil {
		log.Fatal(err)
	}

	s := []int32{10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	fmt.Println(loc.Strategy(), loc.UnrollFactor(), loc.Locate(s, 19))
	// Output: unrolled 8 9
}

// The unchecked strategy must be told that targets are always present.
func ExampleWithPresenceGuaranteed() {
	_, err := linsearch.NewLocator(linsearch.WithStrategy(linsearch.StrategyUnchecked))
	fmt.Println(err)

	loc, err := linsearch.NewLocator(
		linsearch.WithStrategy(linsearch.StrategyUnchecked),
		linsearch.WithPresenceGuaranteed(),
	)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(loc.Locate([]int32{4, 2, 42}, 42))
	// Output:
	// unchecked strategy requires the caller to guarantee target presence
	// 2
}

func ExampleLocator_LocateAll() {
	loc, _ := linsearch.NewLocator()
	bm, err := loc.LocateAll([]int32{1, 9, 1, 9, 9}, 9)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(bm.ToArray())
	// Output: [1 3 4]
}

func ExampleLocator_ParallelLocate() {
	s := make([]int32, 1_000_000)
	s[700_000] = 1

	loc, _ := linsearch.NewLocator()
	idx, err := loc.ParallelLocate(context.Background(), s, 1, 4)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(idx)
	// Output: 700000
}

func ExampleWithMetricsCollector() {
	metrics := &linsearch.BasicMetricsCollector{}
	loc, _ := linsearch.NewLocator(linsearch.WithMetricsCollector(metrics))

	loc.Locate([]int32{1, 2, 3}, 2)
	loc.Locate([]int32{1, 2, 3}, 4)

	stats := metrics.GetStats()
	fmt.Println(stats.LocateCount, stats.LocateMisses, stats.LocateElements)
	// Output: 2 1 6
}
