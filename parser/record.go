package parser

import (
	"github.com/arloliu/brc/errs"
	"github.com/arloliu/brc/format"
)

// Sink receives parsed records.
//
// key is only valid for the duration of the call; implementations that keep
// it must copy it.
type Sink interface {
	Apply(key []byte, value int64)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(key []byte, value int64)

func (f SinkFunc) Apply(key []byte, value int64) {
	f(key, value)
}

// Stats counts what a Tokenizer or Scan did with its input.
type Stats struct {
	Records   int64 // records delivered to the sink
	Skipped   int64 // malformed records dropped under format.MalformedSkip
	Bytes     int64 // input bytes consumed
	Discarded int64 // bytes of an unterminated final record that was dropped
}

// Add accumulates o into s.
func (s *Stats) Add(o Stats) {
	s.Records += o.Records
	s.Skipped += o.Skipped
	s.Bytes += o.Bytes
	s.Discarded += o.Discarded
}

const (
	reasonMissingDelimiter = "missing ';' delimiter"
	reasonInvalidValue     = "value does not match -?d{1,2}.d"
)

// applyRecord parses val under cfg's policy and hands the record to sink.
func applyRecord(cfg *Config, st *Stats, start int64, key, val []byte, sink Sink) error {
	if cfg.Malformed == format.MalformedUnchecked {
		sink.Apply(key, ParseTemp(val))
		st.Records++

		return nil
	}

	v, ok := ParseTempStrict(val)
	if !ok {
		return reject(cfg, st, start, reasonInvalidValue, key, []byte{';'}, val)
	}

	sink.Apply(key, v)
	st.Records++

	return nil
}

// reject applies the malformed policy to a bad record made of parts.
func reject(cfg *Config, st *Stats, start int64, reason string, parts ...[]byte) error {
	if cfg.Malformed == format.MalformedSkip {
		st.Skipped++
		return nil
	}

	var record []byte
	for _, p := range parts {
		record = append(record, p...)
	}

	return errs.NewMalformedRecordError(start, record, reason)
}

func leadingNewlines(p []byte) int {
	n := 0
	for n < len(p) && p[n] == '\n' {
		n++
	}

	return n
}
