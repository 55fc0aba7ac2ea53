package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arloliu/brc/errs"
	"github.com/arloliu/brc/format"
)

// Compressor compresses a whole buffer into one framed stream.
type Compressor interface {
	// Compress returns a newly allocated compressed copy of data.
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a whole framed stream.
type Decompressor interface {
	// Decompress returns a newly allocated decompressed copy of data.
	// Corrupted or foreign input returns an error.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines whole-buffer and streaming access to one algorithm.
type Codec interface {
	Compressor
	Decompressor

	// Type returns the compression type implemented by the codec.
	Type() format.CompressionType

	// NewReader returns a reader of the decompressed content of r. Closing it
	// releases decoder resources but does not close r.
	NewReader(r io.Reader) (io.ReadCloser, error)

	// NewWriter returns a writer that compresses into w. Close must be called
	// to flush the final frame; it does not close w.
	NewWriter(w io.Writer) (io.WriteCloser, error)
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
//
// format.CompressionAuto is not a codec; resolve it with Detect first.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnknownCompression, compressionType)
}

// compressStream compresses data through a streaming writer. It backs the
// whole-buffer Compress of codecs whose library only exposes framing on the
// stream API.
func compressStream(c Codec, data []byte) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(data) / 2)

	w, err := c.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("%s compression failed: %w", c.Type(), err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%s compression failed: %w", c.Type(), err)
	}

	return buf.Bytes(), nil
}

// decompressStream is the reading counterpart of compressStream.
func decompressStream(c Codec, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	r, err := c.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s decompression failed: %w", c.Type(), err)
	}

	return out, nil
}
