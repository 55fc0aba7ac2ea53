// Package errs defines the error values returned by brc packages.
//
// Callers match sentinels with errors.Is and extract details from the typed
// errors with errors.As:
//
//	_, err := brc.AggregateFile(path)
//	var mre *errs.MalformedRecordError
//	if errors.As(err, &mre) {
//	    log.Printf("bad record at byte %d: %s", mre.Offset, mre.Reason)
//	}
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord is returned when an input record violates the KEY;VALUE\n grammar.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrInvalidEncoding is returned when a key is not valid UTF-8 at report time.
	ErrInvalidEncoding = errors.New("invalid key encoding")

	// ErrUnknownStrategy is returned for a strategy name or value that is not registered.
	ErrUnknownStrategy = errors.New("unknown strategy")

	// ErrUnknownCompression is returned for an unsupported compression type.
	ErrUnknownCompression = errors.New("unknown compression type")

	// ErrUnknownPolicy is returned for an unrecognized policy name.
	ErrUnknownPolicy = errors.New("unknown policy")

	// ErrInvalidChunkSize is returned when the read chunk size is not positive.
	ErrInvalidChunkSize = errors.New("chunk size must be greater than 0")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	ErrInvalidWorkers = errors.New("workers must be greater than 0")
)

// MalformedRecordError describes a record that failed validation.
type MalformedRecordError struct {
	// Offset is the absolute byte offset of the first byte of the record.
	Offset int64
	// Record holds a copy of the offending bytes, without the trailing newline.
	Record []byte
	// Reason is a short description of the violation.
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s at offset %d (%s): %q", ErrMalformedRecord, e.Offset, e.Reason, e.Record)
}

func (e *MalformedRecordError) Unwrap() error {
	return ErrMalformedRecord
}

// NewMalformedRecordError copies record so the error outlives the read buffer.
func NewMalformedRecordError(offset int64, record []byte, reason string) *MalformedRecordError {
	return &MalformedRecordError{
		Offset: offset,
		Record: append([]byte(nil), record...),
		Reason: reason,
	}
}

// InvalidEncodingError reports a key that is not valid UTF-8.
type InvalidEncodingError struct {
	Key []byte
}

func (e *InvalidEncodingError) Error() string {
	return fmt.Sprintf("%s: key %q", ErrInvalidEncoding, e.Key)
}

func (e *InvalidEncodingError) Unwrap() error {
	return ErrInvalidEncoding
}
