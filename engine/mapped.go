package engine

import (
	"time"

	"github.com/arloliu/brc/format"
	"github.com/arloliu/brc/parser"
	"github.com/arloliu/brc/source"
	"github.com/arloliu/brc/stats"
)

// mappedEngine scans the whole input as one buffer, memory-mapped when the
// source is an uncompressed file.
type mappedEngine struct {
	cfg Config
}

func (e *mappedEngine) Strategy() format.Strategy {
	return format.StrategyMapped
}

func (e *mappedEngine) Run(src source.Source) (*stats.Table, Summary, error) {
	begin := time.Now()

	data, err := src.Bytes()
	if err != nil {
		return nil, Summary{Strategy: format.StrategyMapped}, err
	}

	table := stats.NewTable(e.cfg.SizeHint)
	st, err := parser.Scan(data, table, e.cfg.parserOptions()...)
	if err != nil {
		return nil, newSummary(format.StrategyMapped, st, table, begin), err
	}

	return table, newSummary(format.StrategyMapped, st, table, begin), nil
}
