package bench

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/linsearch"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, linsearch.Strategies(), cfg.strategies())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"UnknownStrategy", func(c *Config) { c.Strategies = []linsearch.Strategy{99} }},
		{"UnrollFactor", func(c *Config) { c.UnrollFactor = 3 }},
		{"Warmup", func(c *Config) { c.Warmup = -1 }},
		{"Iterations", func(c *Config) { c.Iterations = 0 }},
		{"MinDuration", func(c *Config) { c.MinDuration = -time.Second }},
		{"Workers", func(c *Config) { c.Workers = 0 }},
		{"MemoryLimit", func(c *Config) { c.MemoryLimitBytes = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestParseStrategies(t *testing.T) {
	all, err := ParseStrategies("all")
	require.NoError(t, err)
	assert.Equal(t, linsearch.Strategies(), all)

	got, err := ParseStrategies("wide, bounded,simd")
	require.NoError(t, err)
	assert.Equal(t, []linsearch.Strategy{linsearch.StrategyWide, linsearch.StrategyBounded}, got)

	_, err = ParseStrategies("wide,turbo")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
strategies: [unrolled, wide]
unroll_factor: 8
min_duration: 50ms
workers: 2
`))
	require.NoError(t, err)

	assert.Equal(t, []linsearch.Strategy{linsearch.StrategyUnrolled, linsearch.StrategyWide}, cfg.Strategies)
	assert.Equal(t, 8, cfg.UnrollFactor)
	assert.Equal(t, 50*time.Millisecond, cfg.MinDuration)
	assert.Equal(t, 2, cfg.Workers)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultConfig().Iterations, cfg.Iterations)
	assert.Equal(t, DefaultConfig().Warmup, cfg.Warmup)
}

func TestParseConfig_Errors(t *testing.T) {
	for name, doc := range map[string]string{
		"Syntax":   "strategies: [wide",
		"Duration": "min_duration: soon",
		"Strategy": "strategies: [nope]",
		"Invalid":  "unroll_factor: 7",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("iterations: 1000\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Iterations)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
