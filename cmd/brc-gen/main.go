// Command brc-gen writes a synthetic measurements file.
//
// Usage:
//
//	brc-gen [-records N] [-seed S] [-stations K] [-compression zstd] [path]
//
// The output goes to path, or to stdout when path is omitted or "-". With
// -compression unset, the compression is chosen from the path extension.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/arloliu/brc/compress"
	"github.com/arloliu/brc/format"
	"github.com/arloliu/brc/internal/generate"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("brc-gen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	records := fs.Int64("records", 1_000_000, "Number of records to write")
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
	stations := fs.Int("stations", 0, fmt.Sprintf("Distinct stations, 0 for all %d", len(generate.Stations)))
	stddev := fs.Float64("stddev", 10, "Spread of values around each station mean")
	compression := fs.String("compression", "", "Output compression: none, zstd, s2, lz4 (default from extension)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	path := fs.Arg(0)
	ct := format.CompressionNone
	if *compression != "" {
		parsed, err := format.ParseCompression(*compression)
		if err != nil {
			logger.Error("invalid compression", "error", err)
			return 2
		}
		ct = parsed
	} else if path != "" && path != "-" {
		ct = compress.FromExtension(path)
	}

	out := stdout
	var f *os.File
	if path != "" && path != "-" {
		var err error
		f, err = os.Create(path)
		if err != nil {
			logger.Error("creating output failed", "error", err)
			return 1
		}
		defer f.Close()
		out = f
	}

	bw := bufio.NewWriter(out)
	begin := time.Now()
	n, err := generate.Write(bw,
		generate.WithRecords(*records),
		generate.WithSeed(*seed),
		generate.WithStations(*stations),
		generate.WithStdDev(*stddev),
		generate.WithCompression(ct),
	)
	if err == nil {
		err = bw.Flush()
	}
	if err == nil && f != nil {
		err = f.Sync()
	}
	if err != nil {
		logger.Error("generating failed", "error", err)
		return 1
	}

	logger.Info("generated",
		"path", path,
		"records", *records,
		"bytes", n,
		"compression", ct,
		"elapsed", time.Since(begin),
	)

	return 0
}
