package stats

// Bucket is the running aggregate of one key. Total, Max and Min are scaled
// integers (value x 10).
//
// A bucket is created from its first value, so Count is always >= 1 and
// Min <= Total/Count <= Max holds after any sequence of Add and Merge.
type Bucket struct {
	Total int64
	Count uint64
	Max   int64
	Min   int64
}

// NewBucket seeds a bucket with its first value.
func NewBucket(v int64) Bucket {
	return Bucket{Total: v, Count: 1, Max: v, Min: v}
}

// Add folds one value into the bucket.
func (b *Bucket) Add(v int64) {
	b.Total += v
	b.Count++
	if v > b.Max {
		b.Max = v
	}
	if v < b.Min {
		b.Min = v
	}
}

// Merge folds another bucket of the same key into b. Merge is associative and
// commutative, so partial aggregates can be combined in any order.
func (b *Bucket) Merge(o Bucket) {
	b.Total += o.Total
	b.Count += o.Count
	if o.Max > b.Max {
		b.Max = o.Max
	}
	if o.Min < b.Min {
		b.Min = o.Min
	}
}

// Mean returns the average as a decimal value.
func (b Bucket) Mean() float64 {
	return float64(b.Total) / float64(b.Count) / 10.0
}

// MaxValue returns the maximum as a decimal value.
func (b Bucket) MaxValue() float64 {
	return float64(b.Max) / 10.0
}

// MinValue returns the minimum as a decimal value.
func (b Bucket) MinValue() float64 {
	return float64(b.Min) / 10.0
}
