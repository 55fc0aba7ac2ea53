package compress

import (
	"io"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/brc/format"
)

// S2Codec reads and writes S2 framed streams.
type S2Codec struct{}

var _ Codec = (*S2Codec)(nil)

// NewS2Codec creates a new S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

func (c S2Codec) Type() format.CompressionType {
	return format.CompressionS2
}

func (c S2Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return compressStream(c, data)
}

func (c S2Codec) Decompress(data []byte) ([]byte, error) {
	return decompressStream(c, data)
}

func (c S2Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}

func (c S2Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return s2.NewWriter(w), nil
}
