package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/arloliu/brc/format"
	"github.com/arloliu/brc/internal/pool"
	"github.com/arloliu/brc/parser"
	"github.com/arloliu/brc/source"
	"github.com/arloliu/brc/stats"
)

// streamingEngine reads fixed-size chunks into a pooled buffer and feeds
// them to a Tokenizer. Memory use is bounded by the chunk size plus the
// table, independent of the input size.
type streamingEngine struct {
	cfg Config
}

func (e *streamingEngine) Strategy() format.Strategy {
	return format.StrategyStreaming
}

func (e *streamingEngine) Run(src source.Source) (*stats.Table, Summary, error) {
	begin := time.Now()

	r, err := src.Stream()
	if err != nil {
		return nil, Summary{Strategy: format.StrategyStreaming}, err
	}

	tok, err := parser.NewTokenizer(e.cfg.parserOptions()...)
	if err != nil {
		return nil, Summary{Strategy: format.StrategyStreaming}, err
	}
	defer tok.Release()

	buf := pool.GetChunkBuffer(e.cfg.ChunkSize)
	defer pool.PutChunkBuffer(buf)

	table := stats.NewTable(e.cfg.SizeHint)
	for {
		n, rerr := r.Read(buf.B)
		if n > 0 {
			if err := tok.Feed(buf.B[:n], table); err != nil {
				return nil, newSummary(format.StrategyStreaming, tok.Stats(), table, begin), err
			}
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return nil, newSummary(format.StrategyStreaming, tok.Stats(), table, begin), fmt.Errorf("reading input: %w", rerr)
		}
	}

	if err := tok.Close(table); err != nil {
		return nil, newSummary(format.StrategyStreaming, tok.Stats(), table, begin), err
	}

	return table, newSummary(format.StrategyStreaming, tok.Stats(), table, begin), nil
}
