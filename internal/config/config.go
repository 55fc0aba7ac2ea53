// Package config loads the settings of the brc command from YAML.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/brc"
	"github.com/arloliu/brc/errs"
	"github.com/arloliu/brc/format"
	"github.com/arloliu/brc/internal/pool"
	"github.com/arloliu/brc/stats"
)

// DefaultInput is the measurements file read when none is given.
const DefaultInput = "./setup/measurements.txt"

// Config is the top-level configuration of the brc command.
type Config struct {
	Strategy    string `yaml:"strategy"`    // naive, streaming, mapped, parallel
	Input       string `yaml:"input"`       // measurements file path
	Compression string `yaml:"compression"` // auto, none, zstd, s2, lz4
	ChunkSize   int    `yaml:"chunkSize"`
	Workers     int    `yaml:"workers"`
	SizeHint    int    `yaml:"sizeHint"`

	Policies PoliciesConfig `yaml:"policies"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type PoliciesConfig struct {
	Malformed string `yaml:"malformed"` // abort, skip, unchecked
	Encoding  string `yaml:"encoding"`  // validate, unchecked
	Trailing  string `yaml:"trailing"`  // discard, flush
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

type MetricsConfig struct {
	// TextfilePath, when set, receives the run metrics in the Prometheus
	// text exposition format.
	TextfilePath string `yaml:"textfilePath"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{
		Strategy:    format.DefaultStrategy.String(),
		Input:       DefaultInput,
		Compression: format.CompressionAuto.String(),
		ChunkSize:   pool.ChunkBufferDefaultSize,
		Workers:     runtime.NumCPU(),
		SizeHint:    stats.DefaultSizeHint,
		Policies: PoliciesConfig{
			Malformed: format.MalformedAbort.String(),
			Encoding:  format.EncodingValidate.String(),
			Trailing:  format.TrailingDiscard.String(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
	cfg.applyEnvOverrides()

	return cfg
}

// LoadFromFile loads config from a YAML file, overlaying on defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// applyEnvOverrides lets BRC_INPUT and BRC_STRATEGY replace the file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("BRC_INPUT"); v != "" {
		c.Input = v
	}
	if v := os.Getenv("BRC_STRATEGY"); v != "" {
		c.Strategy = v
	}
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if _, err := c.Options(); err != nil {
		return err
	}

	if c.Input == "" {
		return fmt.Errorf("input is required")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be debug, info, warn, or error", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be text or json", c.Log.Format)
	}

	return nil
}

// Options converts the config into aggregation options.
func (c *Config) Options() ([]brc.Option, error) {
	strategy, err := format.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	ct, err := format.ParseCompression(c.Compression)
	if err != nil {
		return nil, err
	}
	malformed, err := format.ParseMalformedPolicy(c.Policies.Malformed)
	if err != nil {
		return nil, err
	}
	encoding, err := format.ParseEncodingPolicy(c.Policies.Encoding)
	if err != nil {
		return nil, err
	}
	trailing, err := format.ParseTrailingPolicy(c.Policies.Trailing)
	if err != nil {
		return nil, err
	}

	if c.ChunkSize <= 0 {
		return nil, fmt.Errorf("chunkSize: %w: got %d", errs.ErrInvalidChunkSize, c.ChunkSize)
	}
	if c.Workers <= 0 {
		return nil, fmt.Errorf("workers: %w: got %d", errs.ErrInvalidWorkers, c.Workers)
	}

	return []brc.Option{
		brc.WithStrategy(strategy),
		brc.WithCompression(ct),
		brc.WithChunkSize(c.ChunkSize),
		brc.WithWorkers(c.Workers),
		brc.WithSizeHint(c.SizeHint),
		brc.WithMalformedPolicy(malformed),
		brc.WithEncodingPolicy(encoding),
		brc.WithTrailingPolicy(trailing),
	}, nil
}

// NewLogger builds a slog.Logger writing to w in the configured format.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}
