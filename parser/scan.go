package parser

import (
	"bytes"

	"github.com/arloliu/brc/format"
)

// Scan parses a buffer holding the complete input and delivers every record
// to sink. Keys passed to sink are sub-slices of data.
//
// Scan keeps no state between calls: the end of data is the end of input, and
// an unterminated final record is handled according to the trailing policy.
// For the same input and options it produces the same sink calls and Stats
// as feeding data to a Tokenizer in any number of chunks and closing it.
//
// Parameters:
//   - data: complete input; only read
//   - sink: receives every well-formed record in input order
//   - opts: same options as NewTokenizer
//
// Returns:
//   - Stats: bytes, records, skipped and discarded counts up to the stop point
//   - error: an invalid option or, under format.MalformedAbort, a *errs.MalformedRecordError
func Scan(data []byte, sink Sink, opts ...Option) (Stats, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{Bytes: int64(len(data))}
	base := cfg.BaseOffset
	checked := cfg.checked()

	pos := 0
	for pos < len(data) {
		if data[pos] == '\n' {
			pos++
			continue
		}

		start := pos
		semi := bytes.IndexByte(data[pos:], ';')

		if checked {
			limit := data[pos:]
			if semi >= 0 {
				limit = data[pos : pos+semi]
			}
			if nl := bytes.IndexByte(limit, '\n'); nl >= 0 {
				if err := reject(&cfg, &st, base+int64(start), reasonMissingDelimiter, limit[:nl]); err != nil {
					return st, err
				}
				pos += nl + 1

				continue
			}
		}

		if semi < 0 {
			if cfg.Trailing == format.TrailingFlush && checked {
				return st, reject(&cfg, &st, base+int64(start), reasonMissingDelimiter, data[start:])
			}
			st.Discarded += int64(len(data) - start)

			break
		}

		key := data[pos : pos+semi]
		valStart := pos + semi + 1
		nl := bytes.IndexByte(data[valStart:], '\n')
		if nl < 0 {
			if cfg.Trailing == format.TrailingDiscard {
				st.Discarded += int64(len(data) - start)
				break
			}
			if err := applyRecord(&cfg, &st, base+int64(start), key, data[valStart:], sink); err != nil {
				return st, err
			}

			break
		}

		if err := applyRecord(&cfg, &st, base+int64(start), key, data[valStart:valStart+nl], sink); err != nil {
			return st, err
		}
		pos = valStart + nl + 1
	}

	return st, nil
}

// SplitPoints returns n+1 offsets that cut data into at most n contiguous
// partitions, each ending just after a '\n' (the last one ends at len(data)).
// Partitions never split a record. Empty partitions are removed, so fewer
// than n partitions are returned for small inputs.
func SplitPoints(data []byte, n int) []int {
	if n < 1 {
		n = 1
	}

	points := make([]int, 1, n+1)
	size := len(data) / n
	prev := 0
	for i := 1; i < n; i++ {
		at := i * size
		if at <= prev {
			continue
		}
		nl := bytes.IndexByte(data[at:], '\n')
		if nl < 0 {
			break
		}
		cut := at + nl + 1
		if cut >= len(data) {
			break
		}
		points = append(points, cut)
		prev = cut
	}

	if prev != len(data) || len(points) == 1 {
		points = append(points, len(data))
	}

	return points
}
