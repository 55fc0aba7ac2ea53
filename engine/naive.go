package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/brc/errs"
	"github.com/arloliu/brc/format"
	"github.com/arloliu/brc/parser"
	"github.com/arloliu/brc/source"
	"github.com/arloliu/brc/stats"
)

var tempPattern = regexp.MustCompile(`^-?[0-9]{1,2}\.[0-9]$`)

// naiveEngine is the straightforward baseline: one string per line,
// strings.Cut on ';', strconv.ParseFloat and a string-keyed map. It exists to
// check the optimized strategies against and to measure them by.
//
// Under format.MalformedUnchecked it still needs a ';' and a parseable float
// per line; lines without them are counted as skipped.
type naiveEngine struct {
	cfg Config
}

func (e *naiveEngine) Strategy() format.Strategy {
	return format.StrategyNaive
}

func (e *naiveEngine) Run(src source.Source) (*stats.Table, Summary, error) {
	begin := time.Now()

	r, err := src.Stream()
	if err != nil {
		return nil, Summary{Strategy: format.StrategyNaive}, err
	}

	br := bufio.NewReaderSize(r, e.cfg.ChunkSize)
	buckets := make(map[string]*stats.Bucket)
	var st parser.Stats

	for {
		line, rerr := br.ReadString('\n')
		if len(line) > 0 {
			start := st.Bytes
			st.Bytes += int64(len(line))

			terminated := strings.HasSuffix(line, "\n")
			switch {
			case !terminated && e.cfg.Trailing == format.TrailingDiscard:
				st.Discarded += int64(len(line))
			case line == "\n":
				// blank line
			default:
				if err := e.applyLine(strings.TrimSuffix(line, "\n"), start, terminated, buckets, &st); err != nil {
					return nil, newSummary(format.StrategyNaive, st, nil, begin), err
				}
			}
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return nil, newSummary(format.StrategyNaive, st, nil, begin), fmt.Errorf("reading input: %w", rerr)
		}
	}

	table := stats.NewTable(len(buckets))
	for name, b := range buckets {
		table.MergeBucket([]byte(name), *b)
	}

	return table, newSummary(format.StrategyNaive, st, table, begin), nil
}

func (e *naiveEngine) applyLine(line string, start int64, terminated bool, buckets map[string]*stats.Bucket, st *parser.Stats) error {
	name, temp, found := strings.Cut(line, ";")
	if !found {
		if e.cfg.Malformed == format.MalformedUnchecked {
			if terminated {
				st.Skipped++
			} else {
				st.Discarded += int64(len(line))
			}

			return nil
		}

		return e.reject(st, start, line, "missing ';' delimiter")
	}

	if e.cfg.Malformed != format.MalformedUnchecked && !tempPattern.MatchString(temp) {
		return e.reject(st, start, line, "value does not match -?d{1,2}.d")
	}

	v, err := strconv.ParseFloat(temp, 64)
	if err != nil {
		// only reachable unchecked
		st.Skipped++
		return nil
	}
	scaled := int64(math.Round(v * 10))

	if b, ok := buckets[name]; ok {
		b.Add(scaled)
	} else {
		b := stats.NewBucket(scaled)
		buckets[name] = &b
	}
	st.Records++

	return nil
}

func (e *naiveEngine) reject(st *parser.Stats, start int64, line, reason string) error {
	if e.cfg.Malformed == format.MalformedSkip {
		st.Skipped++
		return nil
	}

	return errs.NewMalformedRecordError(start, []byte(line), reason)
}
