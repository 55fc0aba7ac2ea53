package stats

import (
	"bytes"
	"slices"

	"github.com/arloliu/brc/internal/hash"
	"github.com/arloliu/brc/parser"
)

// DefaultSizeHint is the number of distinct keys a table is sized for when
// no hint is given.
const DefaultSizeHint = 512

// Entry is one key and its bucket.
type Entry struct {
	Key    []byte
	Bucket Bucket
}

type entry struct {
	hash   uint64
	key    []byte
	bucket Bucket
}

// Table maps keys to buckets.
//
// It is an open-addressing hash table over the xxHash64 of the key bytes with
// linear probing. A probe hit compares the stored hash first and the key bytes
// second, so colliding hashes never merge different keys. Keys are copied once,
// when first inserted; updates for an existing key do not allocate.
//
// A Table is not safe for concurrent use; aggregate per goroutine and Merge.
type Table struct {
	slots   []int32 // 1-based index into entries, 0 marks an empty slot
	entries []entry
	mask    uint64
}

var _ parser.Sink = (*Table)(nil)

// NewTable creates a table sized for about sizeHint distinct keys.
// A non-positive hint selects DefaultSizeHint.
func NewTable(sizeHint int) *Table {
	if sizeHint <= 0 {
		sizeHint = DefaultSizeHint
	}

	n := 16
	for n < sizeHint*2 {
		n <<= 1
	}

	return &Table{
		slots:   make([]int32, n),
		entries: make([]entry, 0, sizeHint),
		mask:    uint64(n - 1),
	}
}

// Apply inserts a new bucket seeded with v, or adds v to the existing bucket
// of key.
func (t *Table) Apply(key []byte, v int64) {
	h := hash.Key(key)
	i, e := t.find(h, key)
	if e != nil {
		e.bucket.Add(v)
		return
	}
	t.insert(i, h, key, NewBucket(v))
}

// MergeBucket folds a complete bucket into the bucket of key, inserting it if
// the key is new.
func (t *Table) MergeBucket(key []byte, b Bucket) {
	h := hash.Key(key)
	i, e := t.find(h, key)
	if e != nil {
		e.bucket.Merge(b)
		return
	}
	t.insert(i, h, key, b)
}

// Lookup returns the bucket of key.
func (t *Table) Lookup(key []byte) (Bucket, bool) {
	_, e := t.find(hash.Key(key), key)
	if e == nil {
		return Bucket{}, false
	}

	return e.bucket, true
}

// Len returns the number of distinct keys.
func (t *Table) Len() int {
	return len(t.entries)
}

// Merge folds every bucket of other into t. other is not modified.
func (t *Table) Merge(other *Table) {
	for k := range other.entries {
		o := &other.entries[k]
		i, e := t.find(o.hash, o.key)
		if e != nil {
			e.bucket.Merge(o.bucket)
			continue
		}
		t.insert(i, o.hash, o.key, o.bucket)
	}
}

// Entries returns all entries sorted by key in byte order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	for i := range t.entries {
		out[i] = Entry{Key: t.entries[i].key, Bucket: t.entries[i].bucket}
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return bytes.Compare(a.Key, b.Key)
	})

	return out
}

// Map returns a copy of the table keyed by string.
func (t *Table) Map() map[string]Bucket {
	m := make(map[string]Bucket, len(t.entries))
	for i := range t.entries {
		m[string(t.entries[i].key)] = t.entries[i].bucket
	}

	return m
}

// find returns the entry of key, or nil and the empty slot where it belongs.
func (t *Table) find(h uint64, key []byte) (uint64, *entry) {
	i := h & t.mask
	for {
		s := t.slots[i]
		if s == 0 {
			return i, nil
		}
		e := &t.entries[s-1]
		if e.hash == h && bytes.Equal(e.key, key) {
			return i, e
		}
		i = (i + 1) & t.mask
	}
}

func (t *Table) insert(slot uint64, h uint64, key []byte, b Bucket) {
	t.entries = append(t.entries, entry{hash: h, key: bytes.Clone(key), bucket: b})
	t.slots[slot] = int32(len(t.entries))

	if len(t.entries)*2 > len(t.slots) {
		t.grow()
	}
}

// grow doubles the slot array and re-seats every entry by its stored hash.
func (t *Table) grow() {
	n := len(t.slots) * 2
	t.slots = make([]int32, n)
	t.mask = uint64(n - 1)
	for k := range t.entries {
		i := t.entries[k].hash & t.mask
		for t.slots[i] != 0 {
			i = (i + 1) & t.mask
		}
		t.slots[i] = int32(k + 1)
	}
}
