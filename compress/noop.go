package compress

import (
	"io"

	"github.com/arloliu/brc/format"
)

// NoOpCodec passes data through unchanged.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a codec for uncompressed files.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

func (c NoOpCodec) Type() format.CompressionType {
	return format.CompressionNone
}

// Compress returns data itself, not a copy.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data itself, not a copy.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}

func (c NoOpCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

func (c NoOpCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
