package buffer

import (
	"bytes"
	"math"
	"testing"
	"unsafe"

	"github.com/arloliu/nanobit/errs"
	"github.com/stretchr/testify/require"
)

func TestWriteReadRoundTrip(t *testing.T) {
	wb := NewWriteBuffer(0)
	wb.WriteUint8(0x42)
	wb.WriteUint16(0x1234)
	wb.WriteUint32(0x12345678)
	wb.WriteUint64(0x123456789ABCDEF0)
	wb.WriteInt8(-42)
	wb.WriteInt16(-1234)
	wb.WriteInt32(-123456789)
	wb.WriteInt64(-123456789012345)
	wb.WriteUint128(0xFEDCBA9876543210, 0x0123456789ABCDEF)
	wb.WriteFloat32(3.14159)
	wb.WriteFloat64(2.718281828459045)
	wb.WriteStr("Hello, NanoBit!")
	wb.WriteByteSlice([]byte{0x00, 0xFF})
	wb.WriteVarint(300)

	rb := NewReadBuffer(wb.Bytes())

	u8, err := rb.ReadUint8()
	require.NoError(t, err)
	require.Equal(t, uint8(0x42), u8)

	u16, err := rb.ReadUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), u16)

	u32, err := rb.ReadUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(0x12345678), u32)

	u64, err := rb.ReadUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x123456789ABCDEF0), u64)

	i8, err := rb.ReadInt8()
	require.NoError(t, err)
	require.Equal(t, int8(-42), i8)

	i16, err := rb.ReadInt16()
	require.NoError(t, err)
	require.Equal(t, int16(-1234), i16)

	i32, err := rb.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(-123456789), i32)

	i64, err := rb.ReadInt64()
	require.NoError(t, err)
	require.Equal(t, int64(-123456789012345), i64)

	hi, lo, err := rb.ReadUint128()
	require.NoError(t, err)
	require.Equal(t, uint64(0xFEDCBA9876543210), hi)
	require.Equal(t, uint64(0x0123456789ABCDEF), lo)

	f32, err := rb.ReadFloat32()
	require.NoError(t, err)
	require.Equal(t, float32(3.14159), f32)

	f64, err := rb.ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, 2.718281828459045, f64)

	s, err := rb.ReadStr()
	require.NoError(t, err)
	require.Equal(t, "Hello, NanoBit!", s)

	b, err := rb.ReadByteSlice()
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0xFF}, b)

	v, err := rb.ReadVarint()
	require.NoError(t, err)
	require.Equal(t, uint64(300), v)

	require.False(t, rb.HasRemaining())
	require.Equal(t, wb.Len(), rb.Position())
}

func TestWriteBuffer_LittleEndianLayout(t *testing.T) {
	wb := NewWriteBuffer(16)
	wb.WriteUint32(0x01020304)
	wb.WriteInt16(-2)
	wb.WriteUint128(0x02, 0x01)

	expected := []byte{
		0x04, 0x03, 0x02, 0x01,
		0xFE, 0xFF,
		0x01, 0, 0, 0, 0, 0, 0, 0,
		0x02, 0, 0, 0, 0, 0, 0, 0,
	}
	require.Equal(t, expected, wb.Bytes())
}

func TestWriteBuffer_Grow(t *testing.T) {
	wb := NewWriteBuffer(4)
	require.Equal(t, 4, wb.Cap())

	wb.Grow(2)
	require.Equal(t, 4, wb.Cap(), "sufficient capacity must not reallocate")

	_, _ = wb.Write([]byte{1, 2, 3, 4, 5})
	require.GreaterOrEqual(t, wb.Cap(), 8, "capacity should at least double")

	before := wb.Cap()
	wb.Grow(before * 3)
	require.GreaterOrEqual(t, wb.Cap(), wb.Len()+before*3)
	require.Equal(t, []byte{1, 2, 3, 4, 5}, wb.Bytes())
}

func TestWriteBuffer_ZeroValue(t *testing.T) {
	var wb WriteBuffer
	wb.WriteUint16(0xBEEF)
	_, _ = wb.WriteString("ok")
	require.Equal(t, []byte{0xEF, 0xBE, 'o', 'k'}, wb.Bytes())
}

func TestWriteBuffer_ResetAndWriteTo(t *testing.T) {
	wb := NewWriteBuffer(32)
	wb.WriteStr("abc")

	var out bytes.Buffer
	n, err := wb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(4), n)
	require.Equal(t, []byte{3, 'a', 'b', 'c'}, out.Bytes())

	capBefore := wb.Cap()
	wb.Reset()
	require.Equal(t, 0, wb.Len())
	require.Equal(t, capBefore, wb.Cap())
}

func TestReadBuffer_Truncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(rb *ReadBuffer) error
	}{
		{name: "uint8 empty", data: nil, read: func(rb *ReadBuffer) error { _, err := rb.ReadUint8(); return err }},
		{name: "uint16 short", data: []byte{1}, read: func(rb *ReadBuffer) error { _, err := rb.ReadUint16(); return err }},
		{name: "uint32 short", data: []byte{1, 2, 3}, read: func(rb *ReadBuffer) error { _, err := rb.ReadUint32(); return err }},
		{name: "uint64 short", data: make([]byte, 7), read: func(rb *ReadBuffer) error { _, err := rb.ReadUint64(); return err }},
		{name: "uint128 short", data: make([]byte, 15), read: func(rb *ReadBuffer) error { _, _, err := rb.ReadUint128(); return err }},
		{name: "float64 short", data: make([]byte, 4), read: func(rb *ReadBuffer) error { _, err := rb.ReadFloat64(); return err }},
		{name: "varint unterminated", data: []byte{0x80}, read: func(rb *ReadBuffer) error { _, err := rb.ReadVarint(); return err }},
		{name: "string body short", data: []byte{5, 'a', 'b'}, read: func(rb *ReadBuffer) error { _, err := rb.ReadStr(); return err }},
		{name: "bytes body short", data: []byte{2, 0}, read: func(rb *ReadBuffer) error { _, err := rb.ReadByteSlice(); return err }},
		{name: "skip past end", data: []byte{1, 2}, read: func(rb *ReadBuffer) error { return rb.Skip(3) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := NewReadBuffer(tt.data)
			err := tt.read(rb)
			require.ErrorIs(t, err, errs.ErrTruncated)
			require.LessOrEqual(t, rb.Position(), len(tt.data))
		})
	}
}

func TestReadBuffer_FailedReadKeepsCursor(t *testing.T) {
	rb := NewReadBuffer([]byte{0x01, 0x02, 0x03})
	_, err := rb.ReadUint8()
	require.NoError(t, err)

	_, err = rb.ReadUint32()
	require.ErrorIs(t, err, errs.ErrTruncated)
	require.Equal(t, 1, rb.Position())

	_, err = rb.ReadByteSlice() // length 2, only 1 byte follows
	require.ErrorIs(t, err, errs.ErrTruncated)
	require.Equal(t, 1, rb.Position())
}

func TestReadBuffer_HugeLengthPrefix(t *testing.T) {
	data := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01, 'x'}
	rb := NewReadBuffer(data)
	_, err := rb.ReadByteSlice()
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestReadBuffer_VarintOverflow(t *testing.T) {
	data := bytes.Repeat([]byte{0x80}, 11)
	rb := NewReadBuffer(data)
	_, err := rb.ReadVarint()
	require.ErrorIs(t, err, errs.ErrVarintOverflow)
	require.Equal(t, 0, rb.Position())
}

func TestReadBuffer_InvalidUTF8(t *testing.T) {
	rb := NewReadBuffer([]byte{2, 0xC3, 0x28})
	_, err := rb.ReadStr()
	require.ErrorIs(t, err, errs.ErrInvalidFormat)
	require.Equal(t, 0, rb.Position())
}

func TestReadBuffer_ZeroCopy(t *testing.T) {
	data := []byte{5, 'h', 'e', 'l', 'l', 'o', 3, 0xAA, 0xBB, 0xCC, 0xDD}

	rb := NewReadBuffer(data)
	s, err := rb.ReadStr()
	require.NoError(t, err)
	b, err := rb.ReadByteSlice()
	require.NoError(t, err)
	rb = nil //nolint:ineffassign,wastedassign

	require.Equal(t, "hello", s)
	require.Same(t, &data[1], unsafe.StringData(s))
	require.Same(t, &data[7], &b[0])
	require.Equal(t, len(b), cap(b), "view capacity must be clipped")

	// appending to the view must not clobber the trailing byte
	_ = append(b, 0x00)
	require.Equal(t, byte(0xDD), data[10])
}

func TestReadBuffer_SkipUnread(t *testing.T) {
	rb := NewReadBuffer([]byte{9, 8, 7})
	require.Equal(t, []byte{9, 8, 7}, rb.Unread())
	require.Equal(t, 0, rb.Position())

	require.NoError(t, rb.Skip(1))
	require.Equal(t, []byte{8, 7}, rb.Unread())
	require.Equal(t, 2, rb.Remaining())
	require.True(t, rb.HasRemaining())
}

func TestReadBuffer_Floats(t *testing.T) {
	wb := NewWriteBuffer(0)
	wb.WriteFloat64(math.Inf(-1))
	wb.WriteFloat32(float32(math.NaN()))

	rb := NewReadBuffer(wb.Bytes())
	f64, err := rb.ReadFloat64()
	require.NoError(t, err)
	require.True(t, math.IsInf(f64, -1))

	f32, err := rb.ReadFloat32()
	require.NoError(t, err)
	require.True(t, math.IsNaN(float64(f32)))
}

func TestBorrowString_Empty(t *testing.T) {
	require.Equal(t, "", BorrowString(nil))
	require.Equal(t, "", BorrowString([]byte{}))
}
