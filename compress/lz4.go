package compress

import (
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/brc/format"
)

// LZ4Codec reads and writes LZ4 frames, the format of the lz4 command line tool.
type LZ4Codec struct{}

var _ Codec = (*LZ4Codec)(nil)

// NewLZ4Codec creates a new LZ4 codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

func (c LZ4Codec) Type() format.CompressionType {
	return format.CompressionLZ4
}

func (c LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return compressStream(c, data)
}

func (c LZ4Codec) Decompress(data []byte) ([]byte, error) {
	return decompressStream(c, data)
}

func (c LZ4Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}

func (c LZ4Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.BlockSizeOption(lz4.Block4Mb)); err != nil {
		return nil, err
	}

	return zw, nil
}
