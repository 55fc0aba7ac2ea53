package engine

import (
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/brc/format"
	"github.com/arloliu/brc/parser"
	"github.com/arloliu/brc/source"
	"github.com/arloliu/brc/stats"
)

// parallelEngine cuts the whole input into newline-aligned partitions, scans
// each into its own table concurrently and merges the tables in partition
// order. Buckets merge associatively, so the result equals a single pass.
type parallelEngine struct {
	cfg Config
}

func (e *parallelEngine) Strategy() format.Strategy {
	return format.StrategyParallel
}

func (e *parallelEngine) Run(src source.Source) (*stats.Table, Summary, error) {
	begin := time.Now()

	data, err := src.Bytes()
	if err != nil {
		return nil, Summary{Strategy: format.StrategyParallel}, err
	}

	points := parser.SplitPoints(data, e.cfg.Workers)
	parts := len(points) - 1

	tables := make([]*stats.Table, parts)
	results := make([]parser.Stats, parts)
	partErrs := make([]error, parts)

	var g errgroup.Group
	for i := 0; i < parts; i++ {
		lo, hi := points[i], points[i+1]
		opts := []parser.Option{
			parser.WithMalformedPolicy(e.cfg.Malformed),
			parser.WithBaseOffset(int64(lo)),
		}
		// only the last partition can end without a newline
		if i == parts-1 {
			opts = append(opts, parser.WithTrailingPolicy(e.cfg.Trailing))
		}

		g.Go(func() error {
			t := stats.NewTable(e.cfg.SizeHint)
			st, err := parser.Scan(data[lo:hi], t, opts...)
			tables[i], results[i], partErrs[i] = t, st, err

			return err
		})
	}
	waitErr := g.Wait()

	var total parser.Stats
	for _, st := range results {
		total.Add(st)
	}

	if waitErr != nil {
		// Wait yields the first partition to finish failing; report the
		// earliest failing partition instead so the offset matches a single pass.
		for _, err := range partErrs {
			if err != nil {
				return nil, newSummary(format.StrategyParallel, total, nil, begin), err
			}
		}
	}

	table := tables[0]
	for _, t := range tables[1:] {
		table.Merge(t)
	}

	return table, newSummary(format.StrategyParallel, total, table, begin), nil
}
