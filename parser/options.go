package parser

import (
	"fmt"

	"github.com/arloliu/brc/errs"
	"github.com/arloliu/brc/format"
	"github.com/arloliu/brc/internal/options"
)

// Config holds the input handling policies shared by Tokenizer and Scan.
type Config struct {
	Malformed format.MalformedPolicy
	Trailing  format.TrailingPolicy
	// BaseOffset is added to every reported byte offset. It lets a caller that
	// scans a partition of a larger input report absolute offsets.
	BaseOffset int64
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// Validate checks that every policy is a known value.
func (c *Config) Validate() error {
	switch c.Malformed {
	case format.MalformedAbort, format.MalformedSkip, format.MalformedUnchecked:
	default:
		return fmt.Errorf("%w: malformed policy %d", errs.ErrUnknownPolicy, c.Malformed)
	}

	switch c.Trailing {
	case format.TrailingDiscard, format.TrailingFlush:
	default:
		return fmt.Errorf("%w: trailing policy %d", errs.ErrUnknownPolicy, c.Trailing)
	}

	if c.BaseOffset < 0 {
		return fmt.Errorf("base offset must not be negative: %d", c.BaseOffset)
	}

	return nil
}

// WithMalformedPolicy selects how records violating the grammar are handled.
func WithMalformedPolicy(p format.MalformedPolicy) Option {
	return options.NoError(func(c *Config) {
		c.Malformed = p
	})
}

// WithTrailingPolicy selects what happens to an unterminated final record.
func WithTrailingPolicy(p format.TrailingPolicy) Option {
	return options.NoError(func(c *Config) {
		c.Trailing = p
	})
}

// WithBaseOffset sets the absolute offset of the first input byte.
func WithBaseOffset(offset int64) Option {
	return options.NoError(func(c *Config) {
		c.BaseOffset = offset
	})
}

func newConfig(opts ...Option) (Config, error) {
	cfg := Config{
		Malformed: format.MalformedAbort,
		Trailing:  format.TrailingDiscard,
	}
	if err := options.ApplyAndValidate(&cfg, opts...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) checked() bool {
	return c.Malformed != format.MalformedUnchecked
}
