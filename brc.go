// Package brc aggregates "One Billion Row Challenge" style measurement files.
//
// An input is a sequence of records KEY;VALUE\n where VALUE has the form
// -?\d{1,2}\.\d. For every distinct key brc computes the mean, maximum and
// minimum value and renders them, sorted by key, as
//
//	{Hamburg=13.0/14.0/12.0, Palma=25.5/25.5/25.5}
//
// # Basic Usage
//
//	res, err := brc.AggregateFile("measurements.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Report)
//
// Values are carried as scaled integers (value x 10) from parsing to output,
// so sums of millions of records accumulate no rounding error.
//
// # Strategies
//
// Four interchangeable strategies produce the same report:
//
//   - format.StrategyNaive: line-at-a-time baseline using strconv.ParseFloat
//   - format.StrategyStreaming: fixed-size chunks through a suspendable tokenizer (default)
//   - format.StrategyMapped: one scan over a memory-mapped file
//   - format.StrategyParallel: newline-aligned partitions scanned concurrently and merged
//
// Select one with WithStrategy.
//
// # Compression
//
// AggregateFile detects zstd, S2 and LZ4 files from their first bytes and
// decompresses them transparently. Aggregate and AggregateBytes treat their
// input as plain text unless WithCompression says otherwise, since a key may
// legitimately begin with bytes that look like a compression header.
//
// # Package Structure
//
// This package wires the building blocks together. The parser, stats, report,
// engine and source packages can be used directly for finer control, for
// example to feed a parser.Tokenizer from a network stream.
package brc

import (
	"io"

	"github.com/arloliu/brc/engine"
	"github.com/arloliu/brc/format"
	"github.com/arloliu/brc/report"
	"github.com/arloliu/brc/source"
)

// Result is the outcome of one aggregation.
type Result struct {
	Report  report.Report
	Summary engine.Summary
}

// String returns the formatted report line.
func (r Result) String() string {
	return r.Report.String()
}

// Aggregate reads measurements from r until EOF.
//
// The caller keeps ownership of r. The input is read as plain text; pass
// WithCompression(format.CompressionAuto) to detect compressed streams.
//
// Parameters:
//   - r: measurement stream, read until io.EOF
//   - opts: optional configuration; compression defaults to format.CompressionNone
//
// Returns:
//   - Result: sorted per-key statistics and run summary
//   - error: invalid options, read or decompression failure, or a malformed record
//
// Example:
//
//	res, err := brc.Aggregate(os.Stdin, brc.WithMalformedPolicy(format.MalformedSkip))
func Aggregate(r io.Reader, opts ...Option) (Result, error) {
	cfg, err := newConfig(format.CompressionNone, opts...)
	if err != nil {
		return Result{}, err
	}

	src := source.FromReader(r, cfg.Compression)
	defer src.Close()

	return run(cfg, src)
}

// AggregateFile aggregates the file at path.
//
// Uncompressed files are memory-mapped by the mapped and parallel strategies
// and read in chunks by the others. Compressed files are detected from their
// header unless WithCompression fixes the format.
//
// Parameters:
//   - path: file to aggregate
//   - opts: optional configuration; compression defaults to format.CompressionAuto
//
// Returns:
//   - Result: sorted per-key statistics and run summary
//   - error: invalid options, open or decompression failure, or a malformed record
//
// Example:
//
//	res, err := brc.AggregateFile("measurements.txt.zst",
//	    brc.WithStrategy(format.StrategyParallel),
//	    brc.WithWorkers(8),
//	)
func AggregateFile(path string, opts ...Option) (Result, error) {
	cfg, err := newConfig(format.CompressionAuto, opts...)
	if err != nil {
		return Result{}, err
	}

	src, err := source.Open(path, cfg.Compression)
	if err != nil {
		return Result{}, err
	}
	defer src.Close()

	return run(cfg, src)
}

// AggregateBytes aggregates an in-memory input. data is not modified or
// retained.
//
// Parameters:
//   - data: complete input, plain unless WithCompression says otherwise
//   - opts: optional configuration; compression defaults to format.CompressionNone
//
// Returns:
//   - Result: sorted per-key statistics and run summary
//   - error: invalid options, decompression failure, or a malformed record
func AggregateBytes(data []byte, opts ...Option) (Result, error) {
	cfg, err := newConfig(format.CompressionNone, opts...)
	if err != nil {
		return Result{}, err
	}

	src := source.FromBytes(data, cfg.Compression)
	defer src.Close()

	return run(cfg, src)
}

// AggregateSource aggregates any source.Source. src is not closed.
//
// The source already owns decompression, so WithCompression has no effect here.
//
// Parameters:
//   - src: opened input; the caller closes it
//   - opts: optional configuration
//
// Returns:
//   - Result: sorted per-key statistics and run summary
//   - error: invalid options, read failure, or a malformed record
func AggregateSource(src source.Source, opts ...Option) (Result, error) {
	cfg, err := newConfig(format.CompressionNone, opts...)
	if err != nil {
		return Result{}, err
	}

	return run(cfg, src)
}

func run(cfg *Config, src source.Source) (Result, error) {
	eng, err := engine.New(cfg.Strategy, cfg.Engine)
	if err != nil {
		return Result{}, err
	}

	table, summary, err := eng.Run(src)
	if err != nil {
		return Result{Summary: summary}, err
	}

	rep, err := report.Build(table, cfg.Encoding)
	if err != nil {
		return Result{Summary: summary}, err
	}

	return Result{Report: rep, Summary: summary}, nil
}
