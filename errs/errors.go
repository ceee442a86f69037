// Package errs defines the error kinds reported by nanobit.
//
// Every failure surfaced by the codec and the compression layer matches exactly one
// of the sentinel errors below through errors.Is. Context is attached by wrapping:
//
//	return fmt.Errorf("%w: need %d bytes, have %d", errs.ErrTruncated, n, remaining)
//
// Two kinds carry structured data and are also available through errors.As:
// UnsupportedVersionError (the version byte found) and CompressionError (the
// backend message).
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFormat reports a magic mismatch or a structural/discriminant value
	// outside its valid range.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrUnsupportedVersion reports a valid magic followed by a version this build
	// does not understand.
	ErrUnsupportedVersion = errors.New("unsupported version")
	// ErrTruncated reports a read past the end of the available bytes.
	ErrTruncated = errors.New("truncated input")
	// ErrVarintOverflow reports a varint wider than 64 bits.
	ErrVarintOverflow = errors.New("varint overflows 64 bits")
	// ErrCompression reports a backend failure or an unrecognized compression tag.
	ErrCompression = errors.New("compression error")

	// ErrStreamClosed reports use of a sequence stream after Close.
	ErrStreamClosed = errors.New("sequence stream already closed")
)

// UnsupportedVersionError carries the version byte found in an envelope.
type UnsupportedVersionError struct {
	Found uint8
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("%s: %d", ErrUnsupportedVersion, e.Found)
}

// Is reports whether target is ErrUnsupportedVersion.
func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

// CompressionError wraps a compression backend failure.
//
// Msg describes the failed operation. Err, when set, is the backend error and is
// returned verbatim by Unwrap.
type CompressionError struct {
	Msg string
	Err error
}

// NewCompressionError creates a CompressionError without an underlying cause.
func NewCompressionError(format string, args ...any) *CompressionError {
	return &CompressionError{Msg: fmt.Sprintf(format, args...)}
}

// WrapCompressionError creates a CompressionError around a backend error.
func WrapCompressionError(err error, format string, args ...any) *CompressionError {
	return &CompressionError{Msg: fmt.Sprintf(format, args...), Err: err}
}

func (e *CompressionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", ErrCompression, e.Msg, e.Err)
	}

	return fmt.Sprintf("%s: %s", ErrCompression, e.Msg)
}

// Is reports whether target is ErrCompression.
func (e *CompressionError) Is(target error) bool {
	return target == ErrCompression
}

func (e *CompressionError) Unwrap() error {
	return e.Err
}
