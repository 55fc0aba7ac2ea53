// Package hash provides the key hash used by the aggregate table.
package hash

import "github.com/cespare/xxhash/v2"

// Key computes the xxHash64 of a raw key.
func Key(b []byte) uint64 {
	return xxhash.Sum64(b)
}
