// Package prometheus exports linsearch metrics to Prometheus.
package prometheus

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/linsearch"
)

const namespace = "linsearch"

// Collector implements linsearch.MetricsCollector.
type Collector struct {
	locateLatency *prometheus.HistogramVec
	locateTotal   *prometheus.CounterVec
	elements      *prometheus.CounterVec
	benchNsPerOp  *prometheus.GaugeVec
	benchTotal    *prometheus.CounterVec
}

var _ linsearch.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers it with reg.
// A nil reg means prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		locateLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "locate_duration_seconds",
			Help:      "Latency of Locate calls.",
			Buckets:   prometheus.ExponentialBuckets(1e-8, 4, 12),
		}, []string{"strategy"}),
		locateTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "locate_total",
			Help:      "Locate calls by outcome.",
		}, []string{"strategy", "result"}),
		elements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "locate_elements_total",
			Help:      "Length of sequences passed to Locate.",
		}, []string{"strategy"}),
		benchNsPerOp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "benchmark_ns_per_op",
			Help:      "Last measured nanoseconds per Locate call.",
		}, []string{"strategy", "length"}),
		benchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "benchmark_cases_total",
			Help:      "Measured benchmark cases by outcome.",
		}, []string{"strategy", "result"}),
	}

	for _, col := range []prometheus.Collector{c.locateLatency, c.locateTotal, c.elements, c.benchNsPerOp, c.benchTotal} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// RecordLocate implements linsearch.MetricsCollector.
func (c *Collector) RecordLocate(s linsearch.Strategy, n int, found bool, d time.Duration) {
	name := s.String()
	c.locateLatency.WithLabelValues(name).Observe(d.Seconds())
	c.elements.WithLabelValues(name).Add(float64(n))

	result := "found"
	if !found {
		result = "not_found"
	}
	c.locateTotal.WithLabelValues(name, result).Inc()
}

// RecordBenchmark implements linsearch.MetricsCollector.
func (c *Collector) RecordBenchmark(s linsearch.Strategy, n int, nsPerOp float64, err error) {
	name := s.String()
	if err != nil {
		c.benchTotal.WithLabelValues(name, "mismatch").Inc()
		return
	}
	c.benchTotal.WithLabelValues(name, "ok").Inc()
	c.benchNsPerOp.WithLabelValues(name, lengthBucket(n)).Set(nsPerOp)
}

// lengthBucket keeps label cardinality bounded by rounding n up to a power of two.
func lengthBucket(n int) string {
	b := 1
	for b < n {
		b <<= 1
	}
	return strconv.Itoa(b)
}
