package bench

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/linsearch"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid benchmark config")

// Config controls a benchmark run.
type Config struct {
	// Strategies to measure. Empty means all of them.
	Strategies []linsearch.Strategy

	// UnrollFactor is passed to StrategyUnrolled.
	UnrollFactor int

	// Warmup calls are made before timing starts.
	Warmup int

	// Iterations caps the timed calls per case.
	Iterations int

	// MinDuration is how long each case is timed for, unless Iterations is hit first.
	MinDuration time.Duration

	// Workers is the number of cases measured concurrently.
	Workers int

	// MemoryLimitBytes caps the dataset bytes resident at once. Zero is unlimited.
	MemoryLimitBytes int64
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Strategies:   linsearch.Strategies(),
		UnrollFactor: linsearch.UnrollFactor,
		Warmup:       10,
		Iterations:   1 << 24,
		MinDuration:  200 * time.Millisecond,
		Workers:      1,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	for _, s := range c.Strategies {
		if !slices.Contains(linsearch.Strategies(), s) {
			return fmt.Errorf("%w: unknown strategy %d", ErrInvalidConfig, s)
		}
	}
	if !slices.Contains(linsearch.UnrollFactors(), c.UnrollFactor) {
		return fmt.Errorf("%w: unroll factor %d not in %v", ErrInvalidConfig, c.UnrollFactor, linsearch.UnrollFactors())
	}
	if c.Warmup < 0 {
		return fmt.Errorf("%w: warmup must not be negative", ErrInvalidConfig)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive", ErrInvalidConfig)
	}
	if c.MinDuration < 0 {
		return fmt.Errorf("%w: min duration must not be negative", ErrInvalidConfig)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive", ErrInvalidConfig)
	}
	if c.MemoryLimitBytes < 0 {
		return fmt.Errorf("%w: memory limit must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (c Config) strategies() []linsearch.Strategy {
	if len(c.Strategies) == 0 {
		return linsearch.Strategies()
	}
	return c.Strategies
}

// ParseStrategies parses a comma-separated list. "all" selects every strategy.
func ParseStrategies(list string) ([]linsearch.Strategy, error) {
	if strings.TrimSpace(list) == "" || strings.EqualFold(strings.TrimSpace(list), "all") {
		return linsearch.Strategies(), nil
	}
	var out []linsearch.Strategy
	for _, part := range strings.Split(list, ",") {
		s, ok := linsearch.ParseStrategy(part)
		if !ok {
			return nil, fmt.Errorf("%w: unknown strategy %q", ErrInvalidConfig, strings.TrimSpace(part))
		}
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	return out, nil
}

// fileConfig is the YAML shape of Config.
type fileConfig struct {
	Strategies   []string `yaml:"strategies"`
	UnrollFactor *int     `yaml:"unroll_factor"`
	Warmup       *int     `yaml:"warmup"`
	Iterations   *int     `yaml:"iterations"`
	MinDuration  string   `yaml:"min_duration"`
	Workers      *int     `yaml:"workers"`
	MemoryLimit  *int64   `yaml:"memory_limit_bytes"`
}

// ParseConfig decodes YAML over DefaultConfig. Absent keys keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if len(fc.Strategies) > 0 {
		s, err := ParseStrategies(strings.Join(fc.Strategies, ","))
		if err != nil {
			return cfg, err
		}
		cfg.Strategies = s
	}
	if fc.MinDuration != "" {
		d, err := time.ParseDuration(fc.MinDuration)
		if err != nil {
			return cfg, fmt.Errorf("%w: min_duration: %w", ErrInvalidConfig, err)
		}
		cfg.MinDuration = d
	}
	setIf(&cfg.UnrollFactor, fc.UnrollFactor)
	setIf(&cfg.Warmup, fc.Warmup)
	setIf(&cfg.Iterations, fc.Iterations)
	setIf(&cfg.Workers, fc.Workers)
	setIf(&cfg.MemoryLimitBytes, fc.MemoryLimit)

	return cfg, cfg.Validate()
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
