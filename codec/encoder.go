package codec

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/nanobit/buffer"
	"github.com/arloliu/nanobit/errs"
	"github.com/arloliu/nanobit/internal/pool"
	"github.com/arloliu/nanobit/value"
)

// Encoder writes one encoded payload.
//
// The envelope is written when the Encoder is created and every Write call appends
// to the payload. The bytes are only complete once the caller has written a whole
// root value; Finish then hands them out.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	buf *buffer.WriteBuffer
	cfg *EncoderConfig
}

// NewEncoder creates an Encoder with the envelope already written.
//
// Parameters:
//   - opts: Optional configuration (e.g. WithInitialCapacity)
//
// Returns:
//   - *Encoder: Ready-to-use encoder
//   - error: Error if an option is invalid
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg, err := newEncoderConfig(opts...)
	if err != nil {
		return nil, err
	}

	enc := &Encoder{
		buf: buffer.NewWriteBuffer(cfg.initialCapacity),
		cfg: cfg,
	}
	WriteEnvelope(enc.buf)

	return enc, nil
}

// newBareEncoder creates an Encoder over wb that writes no envelope.
func newBareEncoder(wb *buffer.WriteBuffer) *Encoder {
	return &Encoder{buf: wb}
}

// Len returns the number of bytes written so far, envelope included.
func (e *Encoder) Len() int {
	return e.buf.Len()
}

// Finish returns the encoded bytes: envelope followed by payload.
//
// The slice aliases the Encoder's buffer and is valid until the next Write or Reset.
// Copy it to keep it longer.
func (e *Encoder) Finish() []byte {
	return e.buf.Bytes()
}

// Reset discards everything written and starts a new payload.
func (e *Encoder) Reset() {
	e.buf.Reset()
	WriteEnvelope(e.buf)
}

// Encode writes m through its MarshalNano method.
func (e *Encoder) Encode(m Marshaler) error {
	return m.MarshalNano(e)
}

// WriteUnit writes the unit value, which encodes to nothing.
func (e *Encoder) WriteUnit() {}

// WriteBool writes b as one byte, 0x00 or 0x01.
func (e *Encoder) WriteBool(b bool) {
	if b {
		e.buf.WriteUint8(1)
		return
	}
	e.buf.WriteUint8(0)
}

// WriteInt8 writes v as 1 byte.
func (e *Encoder) WriteInt8(v int8) { e.buf.WriteInt8(v) }

// WriteInt16 writes v as 2 bytes, little-endian two's complement.
func (e *Encoder) WriteInt16(v int16) { e.buf.WriteInt16(v) }

// WriteInt32 writes v as 4 bytes, little-endian two's complement.
func (e *Encoder) WriteInt32(v int32) { e.buf.WriteInt32(v) }

// WriteInt64 writes v as 8 bytes, little-endian two's complement.
func (e *Encoder) WriteInt64(v int64) { e.buf.WriteInt64(v) }

// WriteInt128 writes v as 16 bytes, low half first.
func (e *Encoder) WriteInt128(v value.Int128) {
	e.buf.WriteUint128(uint64(v.Hi), v.Lo) //nolint:gosec
}

// WriteUint8 writes v as 1 byte.
func (e *Encoder) WriteUint8(v uint8) { e.buf.WriteUint8(v) }

// WriteUint16 writes v as 2 little-endian bytes.
func (e *Encoder) WriteUint16(v uint16) { e.buf.WriteUint16(v) }

// WriteUint32 writes v as 4 little-endian bytes.
func (e *Encoder) WriteUint32(v uint32) { e.buf.WriteUint32(v) }

// WriteUint64 writes v as 8 little-endian bytes.
func (e *Encoder) WriteUint64(v uint64) { e.buf.WriteUint64(v) }

// WriteUint128 writes v as 16 bytes, low half first.
func (e *Encoder) WriteUint128(v value.Uint128) {
	e.buf.WriteUint128(v.Hi, v.Lo)
}

// WriteFloat32 writes the IEEE-754 bits of v, little-endian.
func (e *Encoder) WriteFloat32(v float32) { e.buf.WriteFloat32(v) }

// WriteFloat64 writes the IEEE-754 bits of v, little-endian.
func (e *Encoder) WriteFloat64(v float64) { e.buf.WriteFloat64(v) }

// WriteChar writes r as its 4-byte scalar value.
// Surrogates and values above U+10FFFF are rejected with ErrInvalidFormat.
func (e *Encoder) WriteChar(r rune) error {
	if !utf8.ValidRune(r) {
		return fmt.Errorf("%w: invalid char U+%04X", errs.ErrInvalidFormat, r)
	}
	e.buf.WriteUint32(uint32(r))

	return nil
}

// WriteString writes a varint length followed by the bytes of s.
// Strings that are not valid UTF-8 are rejected with ErrInvalidFormat.
func (e *Encoder) WriteString(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: invalid UTF-8 string of %d bytes", errs.ErrInvalidFormat, len(s))
	}
	e.buf.WriteStr(s)

	return nil
}

// WriteBytes writes a varint length followed by b.
func (e *Encoder) WriteBytes(b []byte) {
	e.buf.WriteByteSlice(b)
}

// WriteNone writes an absent option.
func (e *Encoder) WriteNone() {
	e.buf.WriteUint8(0)
}

// WriteSome writes the present tag of an option. The payload is written next.
func (e *Encoder) WriteSome() {
	e.buf.WriteUint8(1)
}

// WriteSeqLen writes the element count that starts a sequence.
func (e *Encoder) WriteSeqLen(n int) {
	e.buf.WriteVarint(uint64(n)) //nolint:gosec
}

// WriteMapLen writes the entry count that starts a map. Each entry is then
// written as key followed by value.
func (e *Encoder) WriteMapLen(n int) {
	e.buf.WriteVarint(uint64(n)) //nolint:gosec
}

// WriteStructLen writes the field count that starts a struct or tuple.
func (e *Encoder) WriteStructLen(n int) {
	e.buf.WriteVarint(uint64(n)) //nolint:gosec
}

// WriteVariant writes an enum variant index. A payload, if any, is written next.
func (e *Encoder) WriteVariant(index uint32) {
	e.buf.WriteVarint(uint64(index))
}

// EncodeValue writes v in its canonical encoding.
//
// Returns:
//   - error: ErrInvalidFormat if v or a nested value is the zero Value, an invalid char or a non-UTF-8 string
func (e *Encoder) EncodeValue(v value.Value) error {
	switch v.Kind() {
	case value.KindUnit:
		e.WriteUnit()
	case value.KindBool:
		e.WriteBool(v.Bool())
	case value.KindInt8:
		e.WriteInt8(int8(v.Int())) //nolint:gosec
	case value.KindInt16:
		e.WriteInt16(int16(v.Int())) //nolint:gosec
	case value.KindInt32:
		e.WriteInt32(int32(v.Int())) //nolint:gosec
	case value.KindInt64:
		e.WriteInt64(v.Int())
	case value.KindInt128:
		e.WriteInt128(v.Int128())
	case value.KindUint8:
		e.WriteUint8(uint8(v.Uint())) //nolint:gosec
	case value.KindUint16:
		e.WriteUint16(uint16(v.Uint())) //nolint:gosec
	case value.KindUint32:
		e.WriteUint32(uint32(v.Uint())) //nolint:gosec
	case value.KindUint64:
		e.WriteUint64(v.Uint())
	case value.KindUint128:
		e.WriteUint128(v.Uint128())
	case value.KindFloat32:
		e.WriteFloat32(v.Float32())
	case value.KindFloat64:
		e.WriteFloat64(v.Float64())
	case value.KindChar:
		return e.WriteChar(v.Char())
	case value.KindString:
		return e.WriteString(v.Str())
	case value.KindBytes:
		e.WriteBytes(v.Bytes())
	case value.KindOption:
		if !v.IsSome() {
			e.WriteNone()
			return nil
		}
		e.WriteSome()

		return e.EncodeValue(v.Elem())
	case value.KindSeq:
		elems := v.Elems()
		e.WriteSeqLen(len(elems))
		for i, elem := range elems {
			if err := e.EncodeValue(elem); err != nil {
				return fmt.Errorf("seq element %d: %w", i, err)
			}
		}
	case value.KindMap:
		entries := v.Entries()
		e.WriteMapLen(len(entries))
		for i, ent := range entries {
			if err := e.EncodeValue(ent.Key); err != nil {
				return fmt.Errorf("map key %d: %w", i, err)
			}
			if err := e.EncodeValue(ent.Value); err != nil {
				return fmt.Errorf("map value %d: %w", i, err)
			}
		}
	case value.KindStruct:
		fields := v.Fields()
		e.WriteStructLen(len(fields))
		for i, f := range fields {
			if err := e.EncodeValue(f.Value); err != nil {
				return fmt.Errorf("%s field %d: %w", v.Name(), i, err)
			}
		}
	case value.KindEnum:
		e.WriteVariant(v.VariantIndex())
		if p, ok := v.Payload(); ok {
			if err := e.EncodeValue(p); err != nil {
				return fmt.Errorf("%s::%s: %w", v.Name(), v.VariantName(), err)
			}
		}
	default:
		return fmt.Errorf("%w: cannot encode %s value", errs.ErrInvalidFormat, v.Kind())
	}

	return nil
}

// Encode encodes v into a new byte slice with a pooled scratch buffer.
//
// Parameters:
//   - v: Root value
//   - opts: Optional encoder configuration
//
// Returns:
//   - []byte: Envelope followed by payload, owned by the caller
//   - error: Error if an option or v is invalid
func Encode(v value.Value, opts ...EncoderOption) ([]byte, error) {
	return encodePooled(func(enc *Encoder) error { return enc.EncodeValue(v) }, opts...)
}

// Marshal encodes m into a new byte slice with a pooled scratch buffer.
func Marshal(m Marshaler, opts ...EncoderOption) ([]byte, error) {
	return encodePooled(m.MarshalNano, opts...)
}

func encodePooled(write func(*Encoder) error, opts ...EncoderOption) ([]byte, error) {
	cfg, err := newEncoderConfig(opts...)
	if err != nil {
		return nil, err
	}

	wb := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(wb)

	wb.Grow(cfg.initialCapacity)
	enc := &Encoder{buf: wb, cfg: cfg}
	WriteEnvelope(wb)

	if err := write(enc); err != nil {
		return nil, err
	}

	return bytes.Clone(wb.Bytes()), nil
}
