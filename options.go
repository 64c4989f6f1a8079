package linsearch

type options struct {
	strategy          Strategy
	unrollFactor      int
	presenceGuarantee bool
	metricsCollector  MetricsCollector
	logger            *Logger
}

func defaultOptions() options {
	return options{
		strategy:     StrategyWide,
		unrollFactor: UnrollFactor,
	}
}

// Option configures a Locator.
type Option func(*options)

// WithStrategy selects the scan strategy. The default is StrategyWide.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithUnrollFactor sets the comparisons per iteration for StrategyUnrolled.
// See UnrollFactors for the supported values. The default is UnrollFactor.
func WithUnrollFactor(k int) Option {
	return func(o *options) {
		o.unrollFactor = k
	}
}

// WithPresenceGuaranteed declares that every target passed to Locate occurs in
// its sequence. It is required for StrategyUnchecked, which reads out of
// bounds otherwise.
func WithPresenceGuaranteed() Option {
	return func(o *options) {
		o.presenceGuarantee = true
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &linsearch.BasicMetricsCollector{}
//	loc, _ := linsearch.NewLocator(linsearch.WithMetricsCollector(metrics))
//	loc.Locate(seq, 42)
//	fmt.Println(metrics.GetStats().LocateCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
