// Command brc prints the per-station mean, maximum and minimum of a
// measurements file.
//
// Usage:
//
//	brc [flags] [strategy] [path]
//
// strategy defaults to streaming and path to ./setup/measurements.txt.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/arloliu/brc"
	"github.com/arloliu/brc/errs"
	"github.com/arloliu/brc/format"
	"github.com/arloliu/brc/internal/config"
	"github.com/arloliu/brc/internal/metrics"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("brc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: brc [flags] [strategy] [path]\n\nstrategies: naive, streaming, mapped, parallel\n\nflags:\n")
		fs.PrintDefaults()
	}

	var (
		configFile  string
		workers     int
		chunkSize   int
		compression string
		malformed   string
		encoding    string
		trailing    string
		metricsFile string
		logLevel    string
	)
	fs.StringVar(&configFile, "config", "", "Path to YAML config file")
	fs.IntVar(&workers, "workers", runtime.NumCPU(), "Partitions of the parallel strategy")
	fs.IntVar(&chunkSize, "chunk-size", 64*1024, "Read size of the streaming and naive strategies")
	fs.StringVar(&compression, "compression", "auto", "Input compression: auto, none, zstd, s2, lz4")
	fs.StringVar(&malformed, "malformed", "abort", "Malformed record policy: abort, skip, unchecked")
	fs.StringVar(&encoding, "encoding", "validate", "Key encoding policy: validate, unchecked")
	fs.StringVar(&trailing, "trailing", "discard", "Unterminated final record policy: discard, flush")
	fs.StringVar(&metricsFile, "metrics-file", "", "Write run metrics to this Prometheus textfile")
	fs.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}

		return exitUsage
	}

	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.LoadFromFile(configFile)
		if err != nil {
			fmt.Fprintf(stderr, "brc: %v\n", err)
			return exitUsage
		}
		cfg = loaded
	}

	// explicitly set flags win over the config file
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Workers = workers
		case "chunk-size":
			cfg.ChunkSize = chunkSize
		case "compression":
			cfg.Compression = compression
		case "malformed":
			cfg.Policies.Malformed = malformed
		case "encoding":
			cfg.Policies.Encoding = encoding
		case "trailing":
			cfg.Policies.Trailing = trailing
		case "metrics-file":
			cfg.Metrics.TextfilePath = metricsFile
		case "log-level":
			cfg.Log.Level = logLevel
		}
	})

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.Strategy = fs.Arg(0)
	case 2:
		cfg.Strategy = fs.Arg(0)
		cfg.Input = fs.Arg(1)
	default:
		fs.Usage()
		return exitUsage
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "brc: %v\n", err)
		if errors.Is(err, errs.ErrUnknownStrategy) {
			fmt.Fprintf(stderr, "valid strategies: %v\n", format.Strategies())
		}

		return exitUsage
	}

	logger := cfg.Log.NewLogger(stderr)

	opts, err := cfg.Options()
	if err != nil {
		logger.Error("invalid options", "error", err)
		return exitUsage
	}

	logger.Debug("aggregating", "input", cfg.Input, "strategy", cfg.Strategy, "workers", cfg.Workers)

	res, err := brc.AggregateFile(cfg.Input, opts...)

	if cfg.Metrics.TextfilePath != "" {
		rec := metrics.NewRecorder()
		rec.Observe(res.Summary, err)
		if werr := rec.WriteToTextfile(cfg.Metrics.TextfilePath); werr != nil {
			logger.Warn("writing metrics failed", "path", cfg.Metrics.TextfilePath, "error", werr)
		}
	}

	if err != nil {
		var mre *errs.MalformedRecordError
		if errors.As(err, &mre) {
			logger.Error("malformed input", "offset", mre.Offset, "reason", mre.Reason, "record", string(mre.Record))
		} else {
			logger.Error("aggregation failed", "input", cfg.Input, "error", err)
		}

		return exitError
	}

	s := res.Summary
	logger.Info("done",
		"strategy", s.Strategy,
		"bytes", s.Bytes,
		"records", s.Records,
		"keys", s.Keys,
		"skipped", s.Skipped,
		"discarded", s.Discarded,
		"elapsed", s.Elapsed,
	)

	if _, err := res.Report.WriteTo(stdout); err != nil {
		logger.Error("writing report failed", "error", err)
		return exitError
	}

	return exitOK
}
