package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/linsearch"
	"github.com/hupe1980/linsearch/bench"
	"github.com/hupe1980/linsearch/bench/boltdb"
	"github.com/hupe1980/linsearch/bench/ddb"
	"github.com/hupe1980/linsearch/codec"
	"github.com/hupe1980/linsearch/dataset"
	"github.com/hupe1980/linsearch/internal/simd"
	prommetrics "github.com/hupe1980/linsearch/metrics/prometheus"
	"github.com/hupe1980/linsearch/testutil"
)

func runISA(_ context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("isa", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Fprintf(e.stdout, "isa:         %s\n", linsearch.ActiveISA())
	fmt.Fprintf(e.stdout, "detected:    %v\n", simd.Detected())
	fmt.Fprintf(e.stdout, "overridden:  %t\n", simd.IsOverridden())
	fmt.Fprintf(e.stdout, "block width: %d\n", linsearch.BlockWidth())
	fmt.Fprintf(e.stdout, "alignment:   %d\n", simd.Alignment())
	return nil
}

func runGen(ctx context.Context, e *env, args []string) error {
	fs, c := newFlagSet(e, "gen")
	n := fs.Int("n", 4096, "number of elements")
	placement := fs.String("placement", "random", "target placement (first, middle, last, random, absent, duplicate)")
	compression := fs.String("compression", "lz4", "payload compression (none, lz4, zstd)")
	name := fs.String("name", "", "dataset name (default <placement>-<n>)")
	seed := fs.Int64("seed", 1, "random seed")

	s, err := c.setup(ctx, e, fs, args)
	if err != nil {
		return err
	}
	if *n < 0 {
		return fmt.Errorf("n must not be negative")
	}
	p, ok := dataset.ParsePlacement(*placement)
	if !ok {
		return fmt.Errorf("unknown placement %q", *placement)
	}
	comp, ok := dataset.ParseCompression(*compression)
	if !ok {
		return fmt.Errorf("unknown compression %q", *compression)
	}

	ds := dataset.Generate(testutil.NewRNG(*seed), *n, p)
	if *name != "" {
		ds.Name = *name
	}
	err = dataset.Save(ctx, s.raw, ds, comp)
	e.logger.LogDataset(ctx, "save", ds.Name, len(ds.Values), err)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.stdout, "%s: n=%d expected=%d\n", ds.Name, len(ds.Values), ds.Expected)
	return nil
}

func runLocate(ctx context.Context, e *env, args []string) error {
	fs, c := newFlagSet(e, "locate")
	name := fs.String("name", "", "dataset name")
	strategy := fs.String("strategy", "wide", "strategy (library, bounded, unchecked, unrolled, wide)")
	unroll := fs.Int("unroll", linsearch.UnrollFactor, "unroll factor for the unrolled strategy")
	shards := fs.Int("shards", 0, "scan in parallel over this many shards")

	s, err := c.setup(ctx, e, fs, args)
	if err != nil {
		return err
	}
	if *name == "" {
		return errors.New("-name is required")
	}
	strat, ok := linsearch.ParseStrategy(*strategy)
	if !ok {
		return fmt.Errorf("unknown strategy %q", *strategy)
	}

	ds, err := dataset.Load(ctx, s.read, *name)
	e.logger.LogDataset(ctx, "load", *name, len(dsValues(ds)), err)
	if err != nil {
		return err
	}

	opts := []linsearch.Option{
		linsearch.WithStrategy(strat),
		linsearch.WithUnrollFactor(*unroll),
		linsearch.WithLogger(e.logger),
	}
	if !strat.Total() {
		if !ds.TargetAt(ds.Expected) {
			return fmt.Errorf("%s: target not confirmed at index %d, the %s strategy would read out of bounds", ds.Name, ds.Expected, strat)
		}
		opts = append(opts, linsearch.WithPresenceGuaranteed())
	}
	loc, err := linsearch.NewLocator(opts...)
	if err != nil {
		return err
	}

	var idx int
	if *shards > 0 {
		idx, err = loc.ParallelLocate(ctx, ds.Values, ds.Target, *shards)
		if err != nil {
			return err
		}
	} else {
		idx = loc.Locate(ds.Values, ds.Target)
	}

	fmt.Fprintf(e.stdout, "%s: %s found index %d\n", ds.Name, strat, idx)
	if idx != ds.Expected {
		return &bench.MismatchError{Dataset: ds.Name, Strategy: strat, Want: ds.Expected, Got: idx}
	}
	return nil
}

func dsValues(ds *dataset.Dataset) []int32 {
	if ds == nil {
		return nil
	}
	return ds.Values
}

type benchFlags struct {
	config       string
	names        string
	strategies   string
	duration     time.Duration
	iterations   int
	warmup       int
	workers      int
	unroll       int
	memoryLimit  int64
	publish      bool
	rateLimit    int64
	ledgerTable  string
	ledgerRegion string
	ledgerFile   string
	metricsAddr  string
	format       string
	codec        string
}

func runBench(ctx context.Context, e *env, args []string) error {
	fs, c := newFlagSet(e, "bench")
	def := bench.DefaultConfig()
	var f benchFlags
	fs.StringVar(&f.config, "config", "", "YAML benchmark config")
	fs.StringVar(&f.names, "names", "", "comma-separated dataset names (default all)")
	fs.StringVar(&f.strategies, "strategies", "all", "comma-separated strategies")
	fs.DurationVar(&f.duration, "duration", def.MinDuration, "minimum timed duration per case")
	fs.IntVar(&f.iterations, "iterations", def.Iterations, "maximum timed calls per case")
	fs.IntVar(&f.warmup, "warmup", def.Warmup, "untimed calls before measuring")
	fs.IntVar(&f.workers, "workers", def.Workers, "cases measured concurrently")
	fs.IntVar(&f.unroll, "unroll", def.UnrollFactor, "unroll factor for the unrolled strategy")
	fs.Int64Var(&f.memoryLimit, "memory-limit", 0, "dataset bytes resident at once, 0 is unlimited")
	fs.BoolVar(&f.publish, "publish", false, "publish the report to the store")
	fs.Int64Var(&f.rateLimit, "rate-limit", 0, "publish bandwidth in bytes per second, 0 is unlimited")
	fs.StringVar(&f.ledgerTable, "ledger-table", envOr("LINSEARCH_LEDGER_TABLE", ""), "DynamoDB table to record published runs in")
	fs.StringVar(&f.ledgerRegion, "ledger-region", "", "AWS region of the ledger table")
	fs.StringVar(&f.ledgerFile, "ledger-file", "", "bbolt file to record published runs in")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	fs.StringVar(&f.format, "format", "auto", "output format (auto, table, json)")
	fs.StringVar(&f.codec, "codec", codec.Default.Name(), "codec for published reports (json, go-json)")

	s, err := c.setup(ctx, e, fs, args)
	if err != nil {
		return err
	}
	cfg, err := f.benchConfig(fs)
	if err != nil {
		return err
	}

	var names []string
	if f.names != "" {
		for _, n := range strings.Split(f.names, ",") {
			names = append(names, strings.TrimSpace(n))
		}
	} else if names, err = dataset.List(ctx, s.read); err != nil {
		return err
	}
	if len(names) == 0 {
		return errors.New("no datasets; create some with 'linsearch gen'")
	}

	opts := []bench.RunnerOption{bench.WithLogger(e.logger)}
	if f.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		col, err := prommetrics.New(reg)
		if err != nil {
			return err
		}
		stop := serveMetrics(e, f.metricsAddr, reg)
		defer stop()
		opts = append(opts, bench.WithMetricsCollector(col))
	}

	runner, err := bench.NewRunner(cfg, opts...)
	if err != nil {
		return err
	}
	report, err := runner.RunStored(ctx, s.read, names)
	if err != nil {
		return err
	}

	if err := writeReport(e, f.format, report); err != nil {
		return err
	}

	if f.publish {
		if err := f.publishReport(ctx, e, s, report); err != nil {
			return err
		}
	}

	if report.Failures > 0 {
		return fmt.Errorf("%d strategies returned a wrong index", report.Failures)
	}
	return nil
}

// benchConfig layers explicitly set flags over the config file, or the defaults.
func (f *benchFlags) benchConfig(fs *flag.FlagSet) (bench.Config, error) {
	cfg := bench.DefaultConfig()
	if f.config != "" {
		var err error
		if cfg, err = bench.LoadConfig(f.config); err != nil {
			return cfg, err
		}
	}

	var err error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "strategies":
			var s []linsearch.Strategy
			if s, err = bench.ParseStrategies(f.strategies); err == nil {
				cfg.Strategies = s
			}
		case "duration":
			cfg.MinDuration = f.duration
		case "iterations":
			cfg.Iterations = f.iterations
		case "warmup":
			cfg.Warmup = f.warmup
		case "workers":
			cfg.Workers = f.workers
		case "unroll":
			cfg.UnrollFactor = f.unroll
		case "memory-limit":
			cfg.MemoryLimitBytes = f.memoryLimit
		}
	})
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (f *benchFlags) publishReport(ctx context.Context, e *env, s stores, r *bench.Report) error {
	c, ok := codec.ByName(f.codec)
	if !ok {
		return fmt.Errorf("unknown codec %q", f.codec)
	}
	opts := []bench.PublisherOption{bench.WithPublishLogger(e.logger), bench.WithCodec(c)}
	if f.rateLimit > 0 {
		opts = append(opts, bench.WithRateLimit(f.rateLimit))
	}

	switch {
	case f.ledgerTable != "" && f.ledgerFile != "":
		return errors.New("-ledger-table and -ledger-file are mutually exclusive")
	case f.ledgerTable != "":
		l, err := ddb.New(ctx, f.ledgerTable, f.ledgerRegion)
		if err != nil {
			return err
		}
		opts = append(opts, bench.WithLedger(l))
	case f.ledgerFile != "":
		l, err := boltdb.Open(f.ledgerFile)
		if err != nil {
			return err
		}
		defer l.Close()
		opts = append(opts, bench.WithLedger(l))
	}

	name, err := bench.NewPublisher(s.raw, opts...).Publish(ctx, r)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stderr, "published %s\n", name)
	return nil
}

func writeReport(e *env, format string, r *bench.Report) error {
	switch format {
	case "auto":
		if e.tty {
			return bench.WriteTable(e.stdout, r)
		}
		fallthrough
	case "json":
		data, err := codec.Pretty(codec.Default, r)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(e.stdout, "%s\n", data)
		return err
	case "table":
		return bench.WriteTable(e.stdout, r)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func serveMetrics(e *env, addr string, reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.logger.Error("metrics server", "addr", addr, "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func runReports(ctx context.Context, e *env, args []string) error {
	fs, c := newFlagSet(e, "reports")
	id := fs.String("id", "", "show this report instead of listing")
	format := fs.String("format", "auto", "output format for -id (auto, table, json)")
	ledgerFile := fs.String("ledger-file", "", "print the latest run recorded in this bbolt file for -host")
	host := fs.String("host", bench.Hostname(), "host for -ledger-file")

	s, err := c.setup(ctx, e, fs, args)
	if err != nil {
		return err
	}

	switch {
	case *ledgerFile != "":
		l, err := boltdb.Open(*ledgerFile)
		if err != nil {
			return err
		}
		defer l.Close()
		latest, err := l.Latest(ctx, *host)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.stdout, "%s %s %s results=%d failures=%d\n",
			latest.RunID, latest.ISA, latest.Blob, latest.Results, latest.Failures)
		return nil
	case *id != "":
		r, err := bench.LoadReport(ctx, s.read, *id)
		if err != nil {
			return err
		}
		return writeReport(e, *format, r)
	}

	ids, err := bench.ListReports(ctx, s.read)
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(e.stdout, id)
	}
	return nil
}
