// Package engine implements the interchangeable aggregation strategies.
//
// Every strategy reads a source.Source and folds it into a stats.Table:
//
//	eng, err := engine.New(format.StrategyStreaming, engine.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	table, summary, err := eng.Run(src)
//
// For well-formed input all strategies produce the same table. Under the
// checked malformed policies (abort, skip) they also agree on malformed input.
package engine

import (
	"fmt"
	"runtime"
	"time"

	"github.com/arloliu/brc/errs"
	"github.com/arloliu/brc/format"
	"github.com/arloliu/brc/internal/pool"
	"github.com/arloliu/brc/parser"
	"github.com/arloliu/brc/source"
	"github.com/arloliu/brc/stats"
)

// Engine is one aggregation strategy.
type Engine interface {
	// Strategy identifies the implementation.
	Strategy() format.Strategy
	// Run consumes src and returns the aggregate table. src is not closed.
	Run(src source.Source) (*stats.Table, Summary, error)
}

// Config tunes the strategies. Chunk size and worker count affect speed only,
// never the result.
type Config struct {
	// ChunkSize is the read size of the streaming and naive strategies.
	ChunkSize int
	// Workers is the partition count of the parallel strategy.
	Workers int
	// SizeHint is the expected number of distinct keys.
	SizeHint  int
	Malformed format.MalformedPolicy
	Trailing  format.TrailingPolicy
}

// DefaultConfig returns 64KiB chunks and one worker per CPU.
func DefaultConfig() Config {
	return Config{
		ChunkSize: pool.ChunkBufferDefaultSize,
		Workers:   runtime.NumCPU(),
		SizeHint:  stats.DefaultSizeHint,
		Malformed: format.MalformedAbort,
		Trailing:  format.TrailingDiscard,
	}
}

// Validate checks the numeric settings and the policy values.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: got %d", errs.ErrInvalidChunkSize, c.ChunkSize)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: got %d", errs.ErrInvalidWorkers, c.Workers)
	}

	pc := parser.Config{Malformed: c.Malformed, Trailing: c.Trailing}

	return pc.Validate()
}

func (c Config) parserOptions() []parser.Option {
	return []parser.Option{
		parser.WithMalformedPolicy(c.Malformed),
		parser.WithTrailingPolicy(c.Trailing),
	}
}

// Summary describes one run.
type Summary struct {
	Strategy  format.Strategy
	Bytes     int64 // decompressed input bytes
	Records   int64 // records aggregated
	Skipped   int64 // malformed records dropped
	Discarded int64 // bytes of a dropped unterminated final record
	Keys      int   // distinct keys
	Elapsed   time.Duration
}

func newSummary(strategy format.Strategy, st parser.Stats, table *stats.Table, begin time.Time) Summary {
	s := Summary{
		Strategy:  strategy,
		Bytes:     st.Bytes,
		Records:   st.Records,
		Skipped:   st.Skipped,
		Discarded: st.Discarded,
		Elapsed:   time.Since(begin),
	}
	if table != nil {
		s.Keys = table.Len()
	}

	return s
}

// New returns the engine implementing strategy.
//
// Parameters:
//   - strategy: one of format.Strategies()
//   - cfg: engine settings, validated before the engine is built
//
// Returns:
//   - Engine: ready to Run any number of sources
//   - error: errs.ErrUnknownStrategy or a configuration error
func New(strategy format.Strategy, cfg Config) (Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch strategy {
	case format.StrategyNaive:
		return &naiveEngine{cfg: cfg}, nil
	case format.StrategyStreaming:
		return &streamingEngine{cfg: cfg}, nil
	case format.StrategyMapped:
		return &mappedEngine{cfg: cfg}, nil
	case format.StrategyParallel:
		return &parallelEngine{cfg: cfg}, nil
	default:
		return nil, fmt.Errorf("%w: %s (%d)", errs.ErrUnknownStrategy, strategy, strategy)
	}
}
