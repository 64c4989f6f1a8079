package linsearch

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}

	assert.Zero(t, m.GetStats().LocateAvgNanos)

	m.RecordLocate(StrategyWide, 100, true, 10*time.Nanosecond)
	m.RecordLocate(StrategyWide, 50, false, 30*time.Nanosecond)
	m.RecordBenchmark(StrategyBounded, 4096, 812.5, nil)
	m.RecordBenchmark(StrategyUnrolled, 4096, 300, errors.New("mismatch"))

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats.LocateCount)
	assert.Equal(t, int64(1), stats.LocateMisses)
	assert.Equal(t, int64(150), stats.LocateElements)
	assert.Equal(t, int64(20), stats.LocateAvgNanos)
	assert.Equal(t, int64(2), stats.BenchmarkCount)
	assert.Equal(t, int64(1), stats.BenchmarkErrors)
}

func TestNoopMetricsCollector(t *testing.T) {
	var m MetricsCollector = NoopMetricsCollector{}
	assert.NotPanics(t, func() {
		m.RecordLocate(StrategyLibrary, 1, true, time.Second)
		m.RecordBenchmark(StrategyLibrary, 1, 1, nil)
	})
}
