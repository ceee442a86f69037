package buffer

import (
	"io"
	"math"

	"github.com/arloliu/nanobit/encoding"
	"github.com/arloliu/nanobit/endian"
)

// DefaultCapacity is the initial capacity used by NewWriteBuffer when none is given.
const DefaultCapacity = 8192

// WriteBuffer is a growable, append-only byte accumulator.
//
// The zero value is ready to use and starts empty.
type WriteBuffer struct {
	// B is the underlying byte slice.
	B      []byte
	engine endian.EndianEngine
}

// NewWriteBuffer creates a WriteBuffer with the given initial capacity.
//
// A non-positive capacity selects DefaultCapacity.
func NewWriteBuffer(capacity int) *WriteBuffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &WriteBuffer{
		B:      make([]byte, 0, capacity),
		engine: endian.GetLittleEndianEngine(),
	}
}

func (wb *WriteBuffer) order() endian.EndianEngine {
	if wb.engine == nil {
		wb.engine = endian.GetLittleEndianEngine()
	}

	return wb.engine
}

// Bytes returns the accumulated bytes.
//
// The returned slice aliases the buffer. It must not be modified, and it is only
// stable until the next append or Reset.
func (wb *WriteBuffer) Bytes() []byte {
	return wb.B
}

// Len returns the number of accumulated bytes.
func (wb *WriteBuffer) Len() int {
	return len(wb.B)
}

// Cap returns the capacity of the buffer.
func (wb *WriteBuffer) Cap() int {
	return cap(wb.B)
}

// Reset empties the buffer but keeps the allocated memory for reuse.
func (wb *WriteBuffer) Reset() {
	wb.B = wb.B[:0]
}

// Grow ensures the buffer can take n more bytes without reallocating.
//
// Capacity at least doubles on every reallocation so a sequence of appends costs
// amortized O(1) per byte.
func (wb *WriteBuffer) Grow(n int) {
	if cap(wb.B)-len(wb.B) >= n {
		return
	}

	newCap := 2 * cap(wb.B)
	if need := len(wb.B) + n; newCap < need {
		newCap = need
	}

	newBuf := make([]byte, len(wb.B), newCap)
	copy(newBuf, wb.B)
	wb.B = newBuf
}

// Write appends p. It always succeeds and implements io.Writer.
func (wb *WriteBuffer) Write(p []byte) (int, error) {
	wb.Grow(len(p))
	wb.B = append(wb.B, p...)

	return len(p), nil
}

// WriteByte appends a single byte. It implements io.ByteWriter.
func (wb *WriteBuffer) WriteByte(b byte) error {
	wb.Grow(1)
	wb.B = append(wb.B, b)

	return nil
}

// WriteString appends the bytes of s without a length prefix. It implements io.StringWriter.
func (wb *WriteBuffer) WriteString(s string) (int, error) {
	wb.Grow(len(s))
	wb.B = append(wb.B, s...)

	return len(s), nil
}

// WriteTo writes the accumulated bytes to w.
func (wb *WriteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(wb.B)
	return int64(n), err
}

// WriteUint8 appends v.
func (wb *WriteBuffer) WriteUint8(v uint8) {
	_ = wb.WriteByte(v)
}

// WriteUint16 appends v in little-endian order.
func (wb *WriteBuffer) WriteUint16(v uint16) {
	wb.Grow(2)
	wb.B = wb.order().AppendUint16(wb.B, v)
}

// WriteUint32 appends v in little-endian order.
func (wb *WriteBuffer) WriteUint32(v uint32) {
	wb.Grow(4)
	wb.B = wb.order().AppendUint32(wb.B, v)
}

// WriteUint64 appends v in little-endian order.
func (wb *WriteBuffer) WriteUint64(v uint64) {
	wb.Grow(8)
	wb.B = wb.order().AppendUint64(wb.B, v)
}

// WriteUint128 appends a 128-bit value as its low then high 64-bit half, each little-endian.
func (wb *WriteBuffer) WriteUint128(hi, lo uint64) {
	wb.Grow(16)
	wb.B = wb.order().AppendUint64(wb.B, lo)
	wb.B = wb.order().AppendUint64(wb.B, hi)
}

// WriteInt8 appends v as its two's complement byte.
func (wb *WriteBuffer) WriteInt8(v int8) {
	wb.WriteUint8(uint8(v)) //nolint:gosec
}

// WriteInt16 appends v in little-endian two's complement.
func (wb *WriteBuffer) WriteInt16(v int16) {
	wb.WriteUint16(uint16(v)) //nolint:gosec
}

// WriteInt32 appends v in little-endian two's complement.
func (wb *WriteBuffer) WriteInt32(v int32) {
	wb.WriteUint32(uint32(v)) //nolint:gosec
}

// WriteInt64 appends v in little-endian two's complement.
func (wb *WriteBuffer) WriteInt64(v int64) {
	wb.WriteUint64(uint64(v)) //nolint:gosec
}

// WriteFloat32 appends the IEEE-754 bits of v.
func (wb *WriteBuffer) WriteFloat32(v float32) {
	wb.WriteUint32(math.Float32bits(v))
}

// WriteFloat64 appends the IEEE-754 bits of v.
func (wb *WriteBuffer) WriteFloat64(v float64) {
	wb.WriteUint64(math.Float64bits(v))
}

// WriteVarint appends v as an unsigned varint (1-10 bytes).
func (wb *WriteBuffer) WriteVarint(v uint64) {
	wb.Grow(encoding.UvarintSize(v))
	wb.B = encoding.AppendUvarint(wb.B, v)
}

// WriteByteSlice appends a varint length prefix followed by p.
func (wb *WriteBuffer) WriteByteSlice(p []byte) {
	wb.Grow(encoding.UvarintSize(uint64(len(p))) + len(p))
	wb.B = encoding.AppendUvarint(wb.B, uint64(len(p)))
	wb.B = append(wb.B, p...)
}

// WriteStr appends a varint length prefix followed by the bytes of s.
func (wb *WriteBuffer) WriteStr(s string) {
	wb.Grow(encoding.UvarintSize(uint64(len(s))) + len(s))
	wb.B = encoding.AppendUvarint(wb.B, uint64(len(s)))
	wb.B = append(wb.B, s...)
}
