// Command linsearch generates datasets, locates targets in them and
// benchmarks the linear-search strategies.
//
// Usage:
//
//	linsearch isa
//	linsearch gen -n 4096 -placement last -compression zstd
//	linsearch locate -name last-4096 -strategy wide
//	linsearch bench -names last-4096 -strategies all -publish
//	linsearch reports [-id ID]
//
// Every subcommand accepts -store (default $LINSEARCH_STORE) and
// -log-level (default $LINSEARCH_LOG_LEVEL).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/hupe1980/linsearch"
)

const defaultStore = "file://./linsearch-data"

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, env *env, args []string) error
}

var commands = []command{
	{"isa", "print the active instruction set", runISA},
	{"gen", "generate and store a dataset", runGen},
	{"locate", "run one strategy on a stored dataset", runLocate},
	{"bench", "benchmark strategies on stored datasets", runBench},
	{"reports", "list or show published reports", runReports},
}

// env carries what every subcommand shares.
type env struct {
	stdout io.Writer
	stderr io.Writer
	// tty reports whether stdout is a terminal.
	tty    bool
	logger *linsearch.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e := &env{stdout: os.Stdout, stderr: os.Stderr, tty: isTerminal(os.Stdout)}
	if err := run(ctx, e, os.Args[1:]); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "linsearch:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, e *env, args []string) error {
	if len(args) == 0 {
		usage(e.stderr)
		return flag.ErrHelp
	}
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(ctx, e, args[1:])
		}
	}
	usage(e.stderr)
	return fmt.Errorf("unknown command %q", args[0])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: linsearch <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", c.name, c.usage)
	}
}

// common are the flags shared by every subcommand.
type common struct {
	store      string
	cacheBytes int64
	logLevel   string
}

func newFlagSet(e *env, name string) (*flag.FlagSet, *common) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)

	c := &common{}
	fs.StringVar(&c.store, "store", envOr("LINSEARCH_STORE", defaultStore), "blob store URI (file://, mem://, s3://, minio://)")
	fs.Int64Var(&c.cacheBytes, "cache-bytes", 64<<20, "block cache size for remote stores, 0 disables")
	fs.StringVar(&c.logLevel, "log-level", envOr("LINSEARCH_LOG_LEVEL", "warn"), "log level (debug, info, warn, error)")
	return fs, c
}

// setup parses fs and builds the logger and stores.
func (c *common) setup(ctx context.Context, e *env, fs *flag.FlagSet, args []string) (stores, error) {
	if err := fs.Parse(args); err != nil {
		return stores{}, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.logLevel)); err != nil {
		return stores{}, fmt.Errorf("log level: %w", err)
	}
	e.logger = linsearch.NewLogger(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level}))

	return openStore(ctx, c.store, c.cacheBytes)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
