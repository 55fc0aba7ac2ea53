// Package stats holds the per-key aggregates (total, count, max, min) and the
// hash-keyed table that folds parsed records into them.
//
// All values are scaled integers (temperature x 10); conversion back to
// decimal happens only when a Bucket is read with Mean, MaxValue or MinValue.
package stats
