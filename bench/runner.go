package bench

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/linsearch"
	"github.com/hupe1980/linsearch/blobstore"
	"github.com/hupe1980/linsearch/dataset"
	"github.com/hupe1980/linsearch/internal/resource"
)

// Runner measures strategies against datasets.
type Runner struct {
	cfg     Config
	rc      *resource.Controller
	metrics linsearch.MetricsCollector
	logger  *linsearch.Logger
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithMetricsCollector receives one RecordBenchmark call per measured case.
func WithMetricsCollector(mc linsearch.MetricsCollector) RunnerOption {
	return func(r *Runner) { r.metrics = mc }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *linsearch.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// NewRunner validates cfg and creates a Runner.
func NewRunner(cfg Config, opts ...RunnerOption) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{
		cfg: cfg,
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes: cfg.MemoryLimitBytes,
			MaxWorkers:       int64(cfg.Workers),
		}),
		metrics: linsearch.NoopMetricsCollector{},
		logger:  linsearch.NoopLogger(),
	}
	for _, fn := range opts {
		fn(r)
	}
	if r.metrics == nil {
		r.metrics = linsearch.NoopMetricsCollector{}
	}
	if r.logger == nil {
		r.logger = linsearch.NoopLogger()
	}
	return r, nil
}

type benchCase struct {
	ds       *dataset.Dataset
	strategy linsearch.Strategy
}

// Run measures every configured strategy on every dataset.
//
// Results appear in dataset order, then strategy order. A strategy that
// returns the wrong index is recorded as a failure rather than aborting the
// run. StrategyUnchecked is skipped on datasets whose target is absent.
func (r *Runner) Run(ctx context.Context, datasets []*dataset.Dataset) (*Report, error) {
	start := time.Now()
	report := newReport(r.cfg.UnrollFactor)

	var cases []benchCase
	for _, ds := range datasets {
		for _, s := range r.cfg.strategies() {
			cases = append(cases, benchCase{ds: ds, strategy: s})
		}
	}
	results := make([]Result, len(cases))

	g, gctx := errgroup.WithContext(ctx)
	var acquireErr error
	for i, c := range cases {
		if err := r.rc.AcquireWorker(gctx); err != nil {
			acquireErr = err
			break
		}
		g.Go(func() error {
			defer r.rc.ReleaseWorker()
			res, err := r.measure(gctx, c.ds, c.strategy)
			results[i] = res
			return err
		})
	}
	err := g.Wait()
	if err == nil {
		err = acquireErr
	}

	report.Results = results
	for _, res := range results {
		if res.Failed() {
			report.Failures++
		}
	}
	report.Elapsed = time.Since(start)

	r.logger.LogBenchmark(ctx, report.ID, len(results), report.Failures, report.Elapsed, err)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// RunStored loads the named datasets from store and runs them. Loaded
// datasets are charged against the configured memory limit.
func (r *Runner) RunStored(ctx context.Context, store blobstore.BlobStore, names []string) (*Report, error) {
	datasets := make([]*dataset.Dataset, 0, len(names))
	var charged int64
	defer func() { r.rc.ReleaseMemory(charged) }()

	for _, name := range names {
		ds, err := dataset.Load(ctx, store, name, dataset.WithMaxBytes(r.loadBudget()))
		r.logger.LogDataset(ctx, "load", name, datasetLen(ds), err)
		if errors.Is(err, dataset.ErrTooLarge) && r.rc.MemoryLimit() > 0 {
			return nil, fmt.Errorf("bench: load %q: %w: %w", name, resource.ErrMemoryLimitExceeded, err)
		}
		if err != nil {
			return nil, err
		}
		size := int64(4 * len(ds.Values))
		if err := r.rc.AcquireMemory(size); err != nil {
			return nil, fmt.Errorf("bench: load %q: %w", name, err)
		}
		charged += size
		datasets = append(datasets, ds)
	}

	return r.Run(ctx, datasets)
}

// loadBudget is the decode cap for the next dataset: whatever the memory
// limit has left, or 0 (no cap) without a limit.
func (r *Runner) loadBudget() int64 {
	limit := r.rc.MemoryLimit()
	if limit <= 0 {
		return 0
	}
	// A cap of 0 would disable the check, so an exhausted budget still
	// admits only empty datasets.
	return max(limit-r.rc.MemoryUsage(), 1)
}

func datasetLen(ds *dataset.Dataset) int {
	if ds == nil {
		return 0
	}
	return len(ds.Values)
}

func (r *Runner) measure(ctx context.Context, ds *dataset.Dataset, s linsearch.Strategy) (Result, error) {
	n := len(ds.Values)
	res := Result{
		Dataset:  ds.Name,
		Strategy: s.String(),
		Length:   n,
		Expected: ds.Expected,
		Got:      linsearch.NotFound,
	}

	if !s.Total() && !ds.TargetAt(ds.Expected) {
		res.Skipped = true
		res.SkipReason = "target absent"
		if ds.Present() {
			res.SkipReason = "target not at expected index"
		}
		return res, nil
	}

	opts := []linsearch.Option{
		linsearch.WithStrategy(s),
		linsearch.WithUnrollFactor(r.cfg.UnrollFactor),
	}
	if !s.Total() {
		opts = append(opts, linsearch.WithPresenceGuaranteed())
	}
	loc, err := linsearch.NewLocator(opts...)
	if err != nil {
		return res, err
	}

	values, target := ds.Values, ds.Target
	res.Got = loc.Locate(values, target)
	if res.Got != ds.Expected {
		mismatch := &MismatchError{Dataset: ds.Name, Strategy: s, Want: ds.Expected, Got: res.Got}
		res.Err = mismatch.Error()
		r.metrics.RecordBenchmark(s, n, 0, mismatch)
		return res, nil
	}

	for range r.cfg.Warmup {
		loc.Locate(values, target)
	}
	runtime.GC()

	var sink int
	iters, batch := 0, 1
	begin := time.Now()
	var elapsed time.Duration
	for {
		for range batch {
			sink += loc.Locate(values, target)
		}
		iters += batch
		elapsed = time.Since(begin)
		if elapsed >= r.cfg.MinDuration || iters >= r.cfg.Iterations {
			break
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		batch = min(batch*2, r.cfg.Iterations-iters)
	}
	runtime.KeepAlive(sink)

	res.Iterations = iters
	res.NsPerOp = float64(elapsed.Nanoseconds()) / float64(iters)
	if res.NsPerOp > 0 {
		scanned := n
		if ds.Present() {
			scanned = ds.Expected + 1
		}
		res.ElementsPerNs = float64(scanned) / res.NsPerOp
	}

	r.metrics.RecordBenchmark(s, n, res.NsPerOp, nil)
	return res, nil
}
