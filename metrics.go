package linsearch

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// metrics/prometheus package provides a Prometheus implementation.
//
// Implementations must be safe for concurrent use.
type MetricsCollector interface {
	// RecordLocate is called after each Locator call that scans a sequence.
	// n is the sequence length, found reports whether the target occurred.
	RecordLocate(s Strategy, n int, found bool, duration time.Duration)

	// RecordBenchmark is called once per measured (dataset, strategy) pair.
	// err is non-nil when the strategy returned a wrong index.
	RecordBenchmark(s Strategy, n int, nsPerOp float64, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLocate(Strategy, int, bool, time.Duration) {}
func (NoopMetricsCollector) RecordBenchmark(Strategy, int, float64, error)   {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	LocateCount      atomic.Int64
	LocateMisses     atomic.Int64
	LocateElements   atomic.Int64
	LocateTotalNanos atomic.Int64
	BenchmarkCount   atomic.Int64
	BenchmarkErrors  atomic.Int64
}

// RecordLocate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLocate(_ Strategy, n int, found bool, duration time.Duration) {
	b.LocateCount.Add(1)
	b.LocateElements.Add(int64(n))
	b.LocateTotalNanos.Add(duration.Nanoseconds())
	if !found {
		b.LocateMisses.Add(1)
	}
}

// RecordBenchmark implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBenchmark(_ Strategy, _ int, _ float64, err error) {
	b.BenchmarkCount.Add(1)
	if err != nil {
		b.BenchmarkErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		LocateCount:     b.LocateCount.Load(),
		LocateMisses:    b.LocateMisses.Load(),
		LocateElements:  b.LocateElements.Load(),
		LocateAvgNanos:  b.getAvgLocateNanos(),
		BenchmarkCount:  b.BenchmarkCount.Load(),
		BenchmarkErrors: b.BenchmarkErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgLocateNanos() int64 {
	count := b.LocateCount.Load()
	if count == 0 {
		return 0
	}
	return b.LocateTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	LocateCount     int64
	LocateMisses    int64
	LocateElements  int64
	LocateAvgNanos  int64
	BenchmarkCount  int64
	BenchmarkErrors int64
}
