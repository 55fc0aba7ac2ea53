package compress

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/arloliu/brc/format"
)

var (
	zstdMagic   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic    = []byte{0x04, 0x22, 0x4d, 0x18}
	s2Magic     = []byte("\xff\x06\x00\x00S2sTwO")
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
)

// magicLen is the longest magic prefix Detect needs to see.
const magicLen = 10

// Detect identifies the compression of the stream behind br from its leading
// magic bytes without consuming them. Input that matches no known magic,
// including an empty stream, is reported as format.CompressionNone.
func Detect(br *bufio.Reader) (format.CompressionType, error) {
	head, err := br.Peek(magicLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return format.CompressionNone, err
	}

	return DetectBytes(head), nil
}

// DetectBytes identifies the compression of a buffer from its prefix.
func DetectBytes(head []byte) format.CompressionType {
	switch {
	case bytes.HasPrefix(head, zstdMagic):
		return format.CompressionZstd
	case bytes.HasPrefix(head, lz4Magic):
		return format.CompressionLZ4
	case bytes.HasPrefix(head, s2Magic), bytes.HasPrefix(head, snappyMagic):
		return format.CompressionS2
	default:
		return format.CompressionNone
	}
}

// FromExtension maps a file name extension to a compression type.
// Unknown extensions map to format.CompressionNone.
func FromExtension(path string) format.CompressionType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		return format.CompressionZstd
	case ".s2", ".sz":
		return format.CompressionS2
	case ".lz4":
		return format.CompressionLZ4
	default:
		return format.CompressionNone
	}
}
