package buffer

import (
	"fmt"
	"math"
	"unicode/utf8"
	"unsafe"

	"github.com/arloliu/nanobit/encoding"
	"github.com/arloliu/nanobit/endian"
	"github.com/arloliu/nanobit/errs"
)

// ReadBuffer is a bounds-checked cursor over an immutable byte region.
type ReadBuffer struct {
	data   []byte
	pos    int
	engine endian.EndianEngine
}

// NewReadBuffer creates a ReadBuffer positioned at the start of data.
//
// data is borrowed, not copied. It must not be modified while the ReadBuffer or
// any view it returned is in use.
func NewReadBuffer(data []byte) *ReadBuffer {
	return &ReadBuffer{
		data:   data,
		engine: endian.GetLittleEndianEngine(),
	}
}

// Position returns the cursor offset from the start of the region.
func (rb *ReadBuffer) Position() int {
	return rb.pos
}

// Remaining returns the number of unread bytes.
func (rb *ReadBuffer) Remaining() int {
	return len(rb.data) - rb.pos
}

// HasRemaining reports whether unread bytes are left.
func (rb *ReadBuffer) HasRemaining() bool {
	return rb.pos < len(rb.data)
}

// Unread returns the unread part of the region without advancing the cursor.
func (rb *ReadBuffer) Unread() []byte {
	return rb.data[rb.pos:]
}

func (rb *ReadBuffer) truncated(n int) error {
	return fmt.Errorf("%w: need %d bytes at offset %d, have %d", errs.ErrTruncated, n, rb.pos, rb.Remaining())
}

// next returns the next n bytes and advances the cursor.
func (rb *ReadBuffer) next(n int) ([]byte, error) {
	if n < 0 || n > rb.Remaining() {
		return nil, rb.truncated(n)
	}
	b := rb.data[rb.pos : rb.pos+n : rb.pos+n]
	rb.pos += n

	return b, nil
}

// Skip advances the cursor by n bytes.
func (rb *ReadBuffer) Skip(n int) error {
	_, err := rb.next(n)
	return err
}

// ReadUint8 reads one byte.
func (rb *ReadBuffer) ReadUint8() (uint8, error) {
	if !rb.HasRemaining() {
		return 0, rb.truncated(1)
	}
	b := rb.data[rb.pos]
	rb.pos++

	return b, nil
}

// ReadUint16 reads a little-endian uint16.
func (rb *ReadBuffer) ReadUint16() (uint16, error) {
	b, err := rb.next(2)
	if err != nil {
		return 0, err
	}

	return rb.engine.Uint16(b), nil
}

// ReadUint32 reads a little-endian uint32.
func (rb *ReadBuffer) ReadUint32() (uint32, error) {
	b, err := rb.next(4)
	if err != nil {
		return 0, err
	}

	return rb.engine.Uint32(b), nil
}

// ReadUint64 reads a little-endian uint64.
func (rb *ReadBuffer) ReadUint64() (uint64, error) {
	b, err := rb.next(8)
	if err != nil {
		return 0, err
	}

	return rb.engine.Uint64(b), nil
}

// ReadUint128 reads a 128-bit value written by WriteUint128.
func (rb *ReadBuffer) ReadUint128() (hi, lo uint64, err error) {
	b, err := rb.next(16)
	if err != nil {
		return 0, 0, err
	}

	return rb.engine.Uint64(b[8:]), rb.engine.Uint64(b[:8]), nil
}

// ReadInt8 reads a two's complement byte.
func (rb *ReadBuffer) ReadInt8() (int8, error) {
	v, err := rb.ReadUint8()
	return int8(v), err //nolint:gosec
}

// ReadInt16 reads a little-endian two's complement int16.
func (rb *ReadBuffer) ReadInt16() (int16, error) {
	v, err := rb.ReadUint16()
	return int16(v), err //nolint:gosec
}

// ReadInt32 reads a little-endian two's complement int32.
func (rb *ReadBuffer) ReadInt32() (int32, error) {
	v, err := rb.ReadUint32()
	return int32(v), err //nolint:gosec
}

// ReadInt64 reads a little-endian two's complement int64.
func (rb *ReadBuffer) ReadInt64() (int64, error) {
	v, err := rb.ReadUint64()
	return int64(v), err //nolint:gosec
}

// ReadFloat32 reads IEEE-754 single precision bits.
func (rb *ReadBuffer) ReadFloat32() (float32, error) {
	v, err := rb.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads IEEE-754 double precision bits.
func (rb *ReadBuffer) ReadFloat64() (float64, error) {
	v, err := rb.ReadUint64()
	return math.Float64frombits(v), err
}

// ReadVarint reads an unsigned varint.
//
// Returns:
//   - uint64: Decoded value
//   - error: ErrTruncated if the region ends inside the varint, ErrVarintOverflow
//     if it does not fit in 64 bits
func (rb *ReadBuffer) ReadVarint() (uint64, error) {
	v, n, err := encoding.Uvarint(rb.data[rb.pos:])
	if err != nil {
		return 0, fmt.Errorf("offset %d: %w", rb.pos, err)
	}
	rb.pos += n

	return v, nil
}

// ReadLen reads a varint length and checks that that many bytes remain.
func (rb *ReadBuffer) ReadLen() (int, error) {
	start := rb.pos
	n, err := rb.ReadVarint()
	if err != nil {
		return 0, err
	}

	if rem := rb.Remaining(); n > uint64(rem) {
		rb.pos = start
		return 0, fmt.Errorf("%w: length %d at offset %d exceeds remaining %d bytes",
			errs.ErrTruncated, n, start, rem)
	}

	return int(n), nil
}

// ReadBytes returns a zero-copy view of the next n bytes.
//
// The view's capacity is clipped to its length, so appending to it never writes
// into the rest of the region.
func (rb *ReadBuffer) ReadBytes(n int) ([]byte, error) {
	return rb.next(n)
}

// ReadByteSlice reads a varint length prefix and returns a zero-copy view of that many bytes.
func (rb *ReadBuffer) ReadByteSlice() ([]byte, error) {
	n, err := rb.ReadLen()
	if err != nil {
		return nil, err
	}

	return rb.next(n)
}

// ReadStr reads a length-prefixed UTF-8 string without copying.
//
// The returned string shares memory with the region; see the package documentation.
//
// Returns:
//   - string: Borrowed string
//   - error: ErrTruncated, ErrVarintOverflow, or ErrInvalidFormat for invalid UTF-8
func (rb *ReadBuffer) ReadStr() (string, error) {
	start := rb.pos
	b, err := rb.ReadByteSlice()
	if err != nil {
		return "", err
	}

	if !utf8.Valid(b) {
		rb.pos = start
		return "", fmt.Errorf("%w: invalid UTF-8 string at offset %d", errs.ErrInvalidFormat, start)
	}

	return BorrowString(b), nil
}

// BorrowString returns a string that shares memory with b.
//
// b must not be modified for as long as the string is in use.
func BorrowString(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	return unsafe.String(unsafe.SliceData(b), len(b))
}
