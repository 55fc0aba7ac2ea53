//go:build gozstd && cgo

package compress

import (
	"fmt"
	"io"

	"github.com/valyala/gozstd"
)

func (c ZstdCodec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.CompressLevel(nil, data, 3), nil
}

func (c ZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, fmt.Errorf("zstd decompression failed: %w", err)
	}

	return out, nil
}

func (c ZstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return &gozstdReader{Reader: gozstd.NewReader(r)}, nil
}

func (c ZstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return &gozstdWriter{Writer: gozstd.NewWriterLevel(w, 3)}, nil
}

// gozstdReader frees the C decoder on Close.
type gozstdReader struct {
	*gozstd.Reader
}

func (r *gozstdReader) Close() error {
	r.Release()
	return nil
}

// gozstdWriter flushes the final frame and frees the C encoder on Close.
type gozstdWriter struct {
	*gozstd.Writer
}

func (w *gozstdWriter) Close() error {
	err := w.Writer.Close()
	w.Release()

	return err
}
