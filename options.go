package brc

import (
	"fmt"

	"github.com/arloliu/brc/engine"
	"github.com/arloliu/brc/errs"
	"github.com/arloliu/brc/format"
	"github.com/arloliu/brc/internal/options"
)

// Config collects the settings of one aggregation. The zero value is not
// usable; options are applied on top of the defaults.
type Config struct {
	Strategy    format.Strategy
	Compression format.CompressionType
	Encoding    format.EncodingPolicy
	Engine      engine.Config
}

// Option is a functional option for Aggregate, AggregateFile, AggregateBytes
// and AggregateSource.
type Option = options.Option[*Config]

// Validate checks every setting.
func (c *Config) Validate() error {
	switch c.Encoding {
	case format.EncodingValidate, format.EncodingUnchecked:
	default:
		return fmt.Errorf("%w: encoding policy %d", errs.ErrUnknownPolicy, c.Encoding)
	}

	if c.Compression > format.CompressionLZ4 {
		return fmt.Errorf("%w: %d", errs.ErrUnknownCompression, c.Compression)
	}

	return c.Engine.Validate()
}

// newConfig applies opts over the defaults. compression is the entry point's
// default: files sniff their header, in-memory and reader inputs are plain
// unless an option says otherwise.
func newConfig(compression format.CompressionType, opts ...Option) (*Config, error) {
	cfg := &Config{
		Strategy:    format.DefaultStrategy,
		Compression: compression,
		Encoding:    format.EncodingValidate,
		Engine:      engine.DefaultConfig(),
	}
	if err := options.ApplyAndValidate(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithStrategy selects the aggregation strategy. Default: format.StrategyStreaming.
func WithStrategy(s format.Strategy) Option {
	return options.NoError(func(c *Config) {
		c.Strategy = s
	})
}

// WithCompression sets the input compression. Default: format.CompressionAuto
// for AggregateFile, format.CompressionNone for Aggregate and AggregateBytes.
//
// format.CompressionAuto detects zstd, S2 and LZ4 from their magic bytes, so a
// plain input whose first key starts with one of those sequences must not use it.
func WithCompression(ct format.CompressionType) Option {
	return options.NoError(func(c *Config) {
		c.Compression = ct
	})
}

// WithChunkSize sets the read size of the streaming and naive strategies.
//
// Returns errs.ErrInvalidChunkSize if size is not positive.
func WithChunkSize(size int) Option {
	return options.New(func(c *Config) error {
		if size <= 0 {
			return fmt.Errorf("%w: got %d", errs.ErrInvalidChunkSize, size)
		}
		c.Engine.ChunkSize = size

		return nil
	})
}

// WithWorkers sets the partition count of the parallel strategy.
//
// Returns errs.ErrInvalidWorkers if n is not positive.
func WithWorkers(n int) Option {
	return options.New(func(c *Config) error {
		if n <= 0 {
			return fmt.Errorf("%w: got %d", errs.ErrInvalidWorkers, n)
		}
		c.Engine.Workers = n

		return nil
	})
}

// WithSizeHint sets the expected number of distinct keys.
func WithSizeHint(n int) Option {
	return options.NoError(func(c *Config) {
		c.Engine.SizeHint = n
	})
}

// WithMalformedPolicy selects how records violating the grammar are handled.
// Default: format.MalformedAbort.
func WithMalformedPolicy(p format.MalformedPolicy) Option {
	return options.NoError(func(c *Config) {
		c.Engine.Malformed = p
	})
}

// WithTrailingPolicy selects what happens to an unterminated final record.
// Default: format.TrailingDiscard.
func WithTrailingPolicy(p format.TrailingPolicy) Option {
	return options.NoError(func(c *Config) {
		c.Engine.Trailing = p
	})
}

// WithEncodingPolicy selects whether keys are checked for valid UTF-8 when
// the report is built. Default: format.EncodingValidate.
func WithEncodingPolicy(p format.EncodingPolicy) Option {
	return options.NoError(func(c *Config) {
		c.Encoding = p
	})
}
