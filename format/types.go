// Package format defines the enumerations shared by brc packages: aggregation
// strategies, input compression types and the input handling policies.
package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/brc/errs"
)

type (
	Strategy        uint8
	CompressionType uint8
	MalformedPolicy uint8
	EncodingPolicy  uint8
	TrailingPolicy  uint8
)

const (
	StrategyNaive     Strategy = 0x1 // StrategyNaive parses lines with strconv into a string-keyed map.
	StrategyStreaming Strategy = 0x2 // StrategyStreaming feeds fixed-size chunks to the tokenizer.
	StrategyMapped    Strategy = 0x3 // StrategyMapped scans a whole-file byte view.
	StrategyParallel  Strategy = 0x4 // StrategyParallel scans newline-aligned partitions concurrently.

	CompressionAuto CompressionType = 0x0 // CompressionAuto detects compression from magic bytes.
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 frame compression.

	MalformedAbort     MalformedPolicy = 0x0 // MalformedAbort stops at the first malformed record.
	MalformedSkip      MalformedPolicy = 0x1 // MalformedSkip drops malformed records and counts them.
	MalformedUnchecked MalformedPolicy = 0x2 // MalformedUnchecked does no validation at all.

	EncodingValidate  EncodingPolicy = 0x0 // EncodingValidate rejects keys that are not valid UTF-8.
	EncodingUnchecked EncodingPolicy = 0x1 // EncodingUnchecked emits key bytes as they are.

	TrailingDiscard TrailingPolicy = 0x0 // TrailingDiscard drops an unterminated final record.
	TrailingFlush   TrailingPolicy = 0x1 // TrailingFlush applies an unterminated final record.
)

// DefaultStrategy is used when no strategy is selected.
const DefaultStrategy = StrategyStreaming

// Strategies lists every registered strategy in a stable order.
func Strategies() []Strategy {
	return []Strategy{StrategyNaive, StrategyStreaming, StrategyMapped, StrategyParallel}
}

func (s Strategy) String() string {
	switch s {
	case StrategyNaive:
		return "naive"
	case StrategyStreaming:
		return "streaming"
	case StrategyMapped:
		return "mapped"
	case StrategyParallel:
		return "parallel"
	default:
		return "unknown"
	}
}

// ParseStrategy resolves a strategy by name. The long names used by earlier
// releases of the tool are accepted as aliases.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "naive":
		return StrategyNaive, nil
	case "streaming", "single_thread_optimized", "latest":
		return StrategyStreaming, nil
	case "mapped", "mmap", "single_thread_optimized_mmap":
		return StrategyMapped, nil
	case "parallel":
		return StrategyParallel, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownStrategy, name)
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionAuto:
		return "auto"
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionS2:
		return "s2"
	case CompressionLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// ParseCompression resolves a compression type by name.
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return CompressionAuto, nil
	case "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownCompression, name)
	}
}

func (p MalformedPolicy) String() string {
	switch p {
	case MalformedAbort:
		return "abort"
	case MalformedSkip:
		return "skip"
	case MalformedUnchecked:
		return "unchecked"
	default:
		return "unknown"
	}
}

// ParseMalformedPolicy resolves a malformed record policy by name.
func ParseMalformedPolicy(name string) (MalformedPolicy, error) {
	switch strings.ToLower(name) {
	case "", "abort":
		return MalformedAbort, nil
	case "skip":
		return MalformedSkip, nil
	case "unchecked":
		return MalformedUnchecked, nil
	default:
		return 0, fmt.Errorf("%w: malformed policy %q", errs.ErrUnknownPolicy, name)
	}
}

func (p EncodingPolicy) String() string {
	switch p {
	case EncodingValidate:
		return "validate"
	case EncodingUnchecked:
		return "unchecked"
	default:
		return "unknown"
	}
}

// ParseEncodingPolicy resolves a key encoding policy by name.
func ParseEncodingPolicy(name string) (EncodingPolicy, error) {
	switch strings.ToLower(name) {
	case "", "validate":
		return EncodingValidate, nil
	case "unchecked":
		return EncodingUnchecked, nil
	default:
		return 0, fmt.Errorf("%w: encoding policy %q", errs.ErrUnknownPolicy, name)
	}
}

func (p TrailingPolicy) String() string {
	switch p {
	case TrailingDiscard:
		return "discard"
	case TrailingFlush:
		return "flush"
	default:
		return "unknown"
	}
}

// ParseTrailingPolicy resolves a trailing record policy by name.
func ParseTrailingPolicy(name string) (TrailingPolicy, error) {
	switch strings.ToLower(name) {
	case "", "discard":
		return TrailingDiscard, nil
	case "flush":
		return TrailingFlush, nil
	default:
		return 0, fmt.Errorf("%w: trailing policy %q", errs.ErrUnknownPolicy, name)
	}
}
