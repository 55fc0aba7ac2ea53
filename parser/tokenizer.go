package parser

import (
	"bytes"

	"github.com/arloliu/brc/format"
	"github.com/arloliu/brc/internal/pool"
)

type state uint8

const (
	readingKey state = iota
	readingValue
)

func (s state) String() string {
	if s == readingValue {
		return "ReadingValue"
	}

	return "ReadingKey"
}

// Tokenizer is a suspendable KEY;VALUE\n parser.
//
// It starts in the ReadingKey state and switches to ReadingValue on ';' and
// back on '\n', applying the completed record to the sink. Feed may stop at
// any byte; the partial key or value is kept in pooled accumulators and the
// next Feed continues from there.
//
// A Tokenizer is not safe for concurrent use. After Feed or Close returns a
// *errs.MalformedRecordError the tokenizer must be Reset before reuse.
type Tokenizer struct {
	cfg   Config
	state state

	key   *pool.ByteBuffer
	value *pool.ByteBuffer

	// keyRef is the completed key while in ReadingValue. It aliases the chunk
	// passed to Feed when borrowed is set, and key.B otherwise.
	keyRef   []byte
	borrowed bool

	offset int64 // absolute offset of the next byte
	start  int64 // absolute offset of the current record
	stats  Stats
}

// NewTokenizer creates a Tokenizer in the ReadingKey state.
//
// Options are validated; an invalid policy value returns an error.
//
// Parameters:
//   - opts: malformed and trailing policies, base offset
//
// Returns:
//   - *Tokenizer: ready for Feed
//   - error: errs.ErrUnknownPolicy for an out-of-range policy
func NewTokenizer(opts ...Option) (*Tokenizer, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Tokenizer{
		cfg:    cfg,
		state:  readingKey,
		key:    pool.GetTokenBuffer(),
		value:  pool.GetTokenBuffer(),
		offset: cfg.BaseOffset,
		start:  cfg.BaseOffset,
	}, nil
}

// Feed consumes all of p, delivering every record completed within it to sink.
//
// p may end anywhere, including in the middle of a key, a value or between a
// value and its newline.
func (t *Tokenizer) Feed(p []byte, sink Sink) error {
	for len(p) > 0 {
		var n int
		var err error
		if t.state == readingKey {
			n, err = t.feedKey(p)
		} else {
			n, err = t.feedValue(p, sink)
		}
		t.offset += int64(n)
		p = p[n:]
		if err != nil {
			return err
		}
	}
	t.stash()

	return nil
}

func (t *Tokenizer) feedKey(p []byte) (int, error) {
	if t.key.Len() == 0 {
		if n := leadingNewlines(p); n > 0 {
			t.start = t.offset + int64(n)
			return n, nil
		}
	}

	i := bytes.IndexByte(p, ';')

	if t.cfg.checked() {
		limit := p
		if i >= 0 {
			limit = p[:i]
		}
		if j := bytes.IndexByte(limit, '\n'); j >= 0 {
			err := reject(&t.cfg, &t.stats, t.start, reasonMissingDelimiter, t.key.Bytes(), limit[:j])
			t.resetRecord(t.offset + int64(j+1))

			return j + 1, err
		}
	}

	if i < 0 {
		t.key.Append(p)
		return len(p), nil
	}

	if t.key.Len() == 0 {
		t.keyRef = p[:i]
		t.borrowed = true
	} else {
		t.key.Append(p[:i])
		t.keyRef = t.key.Bytes()
	}
	t.state = readingValue

	return i + 1, nil
}

func (t *Tokenizer) feedValue(p []byte, sink Sink) (int, error) {
	i := bytes.IndexByte(p, '\n')
	if i < 0 {
		t.value.Append(p)
		return len(p), nil
	}

	val := p[:i]
	if t.value.Len() > 0 {
		t.value.Append(val)
		val = t.value.Bytes()
	}

	err := applyRecord(&t.cfg, &t.stats, t.start, t.keyRef, val, sink)
	t.resetRecord(t.offset + int64(i+1))

	return i + 1, err
}

// stash copies a borrowed key into the accumulator before the chunk it
// points into is handed back to the caller.
func (t *Tokenizer) stash() {
	if !t.borrowed {
		return
	}
	t.key.Append(t.keyRef)
	t.keyRef = t.key.Bytes()
	t.borrowed = false
}

func (t *Tokenizer) resetRecord(next int64) {
	t.state = readingKey
	t.key.Reset()
	t.value.Reset()
	t.keyRef = nil
	t.borrowed = false
	t.start = next
}

// Close signals the end of input.
//
// A pending partial record is dropped under format.TrailingDiscard and its
// bytes are counted in Stats.Discarded. Under format.TrailingFlush it is
// applied as if a '\n' followed; a partial record without ';' is malformed.
func (t *Tokenizer) Close(sink Sink) error {
	defer t.resetRecord(t.offset)

	if t.state == readingKey && t.key.Len() == 0 {
		return nil
	}

	if t.cfg.Trailing == format.TrailingDiscard {
		t.stats.Discarded += t.offset - t.start
		return nil
	}

	if t.state == readingKey {
		if !t.cfg.checked() {
			t.stats.Discarded += t.offset - t.start
			return nil
		}

		return reject(&t.cfg, &t.stats, t.start, reasonMissingDelimiter, t.key.Bytes())
	}

	return applyRecord(&t.cfg, &t.stats, t.start, t.keyRef, t.value.Bytes(), sink)
}

// Pending reports whether a partial record is buffered.
func (t *Tokenizer) Pending() bool {
	return t.state == readingValue || t.key.Len() > 0
}

// Stats returns the counters accumulated since creation or the last Reset.
func (t *Tokenizer) Stats() Stats {
	st := t.stats
	st.Bytes = t.offset - t.cfg.BaseOffset

	return st
}

// Reset clears all state so the tokenizer can parse a new input.
func (t *Tokenizer) Reset() {
	t.offset = t.cfg.BaseOffset
	t.resetRecord(t.offset)
	t.stats = Stats{}
}

// Release returns the accumulators to the pool. The tokenizer must not be
// used afterwards.
func (t *Tokenizer) Release() {
	pool.PutTokenBuffer(t.key)
	pool.PutTokenBuffer(t.value)
	t.key = nil
	t.value = nil
	t.keyRef = nil
}
