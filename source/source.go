// Package source adapts measurement inputs (files, readers, in-memory buffers,
// optionally compressed) to the two access patterns the aggregation
// strategies need: a sequential stream or a single whole-input byte view.
package source

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/brc/compress"
	"github.com/arloliu/brc/format"
)

// Source is one input. Callers use either Stream or Bytes, once, and Close
// the source when done.
type Source interface {
	// Stream returns the decompressed content as a reader.
	Stream() (io.Reader, error)
	// Bytes returns the decompressed content as one buffer. The buffer stays
	// valid until Close; it may be a read-only memory mapping.
	Bytes() ([]byte, error)
	// Close releases the file, decoder and mapping held by the source.
	Close() error
}

// File is a Source backed by a file on disk.
type File struct {
	path  string
	ct    format.CompressionType
	f     *os.File
	rc    io.ReadCloser
	unmap func() error
}

var _ Source = (*File)(nil)

// Open opens path. With format.CompressionAuto the compression is detected
// from the first bytes of the file.
func Open(path string, ct format.CompressionType) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	if ct == format.CompressionAuto {
		head := make([]byte, 16)
		n, err := f.ReadAt(head, 0)
		if err != nil && !errors.Is(err, io.EOF) {
			_ = f.Close()
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		ct = compress.DetectBytes(head[:n])
	}

	if _, err := compress.GetCodec(ct); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &File{path: path, ct: ct, f: f}, nil
}

// Compression returns the resolved compression type of the file.
func (s *File) Compression() format.CompressionType {
	return s.ct
}

// Path returns the file path.
func (s *File) Path() string {
	return s.path
}

func (s *File) Stream() (io.Reader, error) {
	if s.ct == format.CompressionNone {
		return s.f, nil
	}

	codec, err := compress.GetCodec(s.ct)
	if err != nil {
		return nil, err
	}
	rc, err := codec.NewReader(s.f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}
	s.rc = rc

	return rc, nil
}

// Bytes memory-maps an uncompressed regular file. Compressed files are read
// and decompressed into memory.
func (s *File) Bytes() ([]byte, error) {
	if s.ct == format.CompressionNone {
		data, unmap, err := mapFile(s.f)
		if err != nil {
			return nil, fmt.Errorf("mapping %s: %w", s.path, err)
		}
		s.unmap = unmap

		return data, nil
	}

	raw, err := io.ReadAll(s.f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	return decompressAll(s.ct, raw)
}

func (s *File) Close() error {
	var errList []error
	if s.rc != nil {
		errList = append(errList, s.rc.Close())
		s.rc = nil
	}
	if s.unmap != nil {
		errList = append(errList, s.unmap())
		s.unmap = nil
	}
	if s.f != nil {
		errList = append(errList, s.f.Close())
		s.f = nil
	}

	return errors.Join(errList...)
}

// Reader is a Source over an io.Reader.
type Reader struct {
	r  io.Reader
	ct format.CompressionType
	rc io.ReadCloser
}

var _ Source = (*Reader)(nil)

// FromReader wraps r. The caller keeps ownership of r; Close does not close it.
func FromReader(r io.Reader, ct format.CompressionType) *Reader {
	return &Reader{r: r, ct: ct}
}

func (s *Reader) Stream() (io.Reader, error) {
	r := s.r
	ct := s.ct
	if ct == format.CompressionAuto {
		br := bufio.NewReader(r)
		detected, err := compress.Detect(br)
		if err != nil {
			return nil, fmt.Errorf("detecting compression: %w", err)
		}
		r, ct = br, detected
	}
	if ct == format.CompressionNone {
		return r, nil
	}

	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}
	rc, err := codec.NewReader(r)
	if err != nil {
		return nil, err
	}
	s.rc = rc

	return rc, nil
}

func (s *Reader) Bytes() ([]byte, error) {
	raw, err := io.ReadAll(s.r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	return decompressAll(s.ct, raw)
}

func (s *Reader) Close() error {
	if s.rc != nil {
		err := s.rc.Close()
		s.rc = nil

		return err
	}

	return nil
}

// Memory is a Source over a caller-owned buffer.
type Memory struct {
	data []byte
	ct   format.CompressionType
	rc   io.ReadCloser
}

var _ Source = (*Memory)(nil)

// FromBytes wraps data without copying it.
func FromBytes(data []byte, ct format.CompressionType) *Memory {
	return &Memory{data: data, ct: ct}
}

func (s *Memory) Stream() (io.Reader, error) {
	ct := s.resolved()
	if ct == format.CompressionNone {
		return bytes.NewReader(s.data), nil
	}

	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	rc, err := codec.NewReader(bytes.NewReader(s.data))
	if err != nil {
		return nil, err
	}
	s.rc = rc

	return rc, nil
}

func (s *Memory) Bytes() ([]byte, error) {
	return decompressAll(s.resolved(), s.data)
}

func (s *Memory) Close() error {
	if s.rc != nil {
		err := s.rc.Close()
		s.rc = nil

		return err
	}

	return nil
}

func (s *Memory) resolved() format.CompressionType {
	if s.ct == format.CompressionAuto {
		return compress.DetectBytes(s.data)
	}

	return s.ct
}

func decompressAll(ct format.CompressionType, raw []byte) ([]byte, error) {
	if ct == format.CompressionAuto {
		ct = compress.DetectBytes(raw)
	}

	codec, err := compress.GetCodec(ct)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(raw)
}
