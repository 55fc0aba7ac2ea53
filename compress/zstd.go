package compress

import "github.com/arloliu/brc/format"

// ZstdCodec reads and writes Zstandard frames.
//
// The implementation is selected at build time: pure Go by default, libzstd
// through cgo with the gozstd build tag. Both produce standard frames.
type ZstdCodec struct{}

var _ Codec = (*ZstdCodec)(nil)

// NewZstdCodec creates a new Zstd codec.
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

func (c ZstdCodec) Type() format.CompressionType {
	return format.CompressionZstd
}
