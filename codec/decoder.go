package codec

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/nanobit/buffer"
	"github.com/arloliu/nanobit/errs"
	"github.com/arloliu/nanobit/value"
)

// Decoder reads one encoded payload.
//
// Strings and byte sequences are returned as views into the input unless the
// Decoder was created with WithOwnedCopies. The input must stay unmodified while
// such views are in use.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	rb      *buffer.ReadBuffer
	cfg     *DecoderConfig
	version uint8
	depth   int
}

// NewDecoder validates the envelope of data and returns a Decoder positioned at
// the start of the payload.
//
// Parameters:
//   - data: Encoded bytes, borrowed for the life of the Decoder
//   - opts: Optional configuration (e.g. WithOwnedCopies, WithMaxLength)
//
// Returns:
//   - *Decoder: Decoder ready to read the root value
//   - error: ErrInvalidFormat, ErrTruncated or ErrUnsupportedVersion from the
//     envelope, or an error from an invalid option
func NewDecoder(data []byte, opts ...DecoderOption) (*Decoder, error) {
	cfg, err := newDecoderConfig(opts...)
	if err != nil {
		return nil, err
	}

	rb := buffer.NewReadBuffer(data)
	version, err := DecodeEnvelope(rb)
	if err != nil {
		return nil, err
	}

	return &Decoder{rb: rb, cfg: cfg, version: version}, nil
}

// Version returns the envelope version of the payload.
func (d *Decoder) Version() uint8 {
	return d.version
}

// Remaining returns the number of unread payload bytes.
func (d *Decoder) Remaining() int {
	return d.rb.Remaining()
}

// Offset returns the cursor position from the start of the input.
func (d *Decoder) Offset() int {
	return d.rb.Position()
}

// Finish checks that the whole input was consumed.
func (d *Decoder) Finish() error {
	if n := d.rb.Remaining(); n > 0 {
		return fmt.Errorf("%w: %d trailing bytes after root value", errs.ErrInvalidFormat, n)
	}

	return nil
}

// Decode reads u through its UnmarshalNano method.
func (d *Decoder) Decode(u Unmarshaler) error {
	return u.UnmarshalNano(d)
}

// ReadUnit reads the unit value, which occupies no bytes.
func (d *Decoder) ReadUnit() error {
	return nil
}

// ReadBool reads one byte. Anything other than 0x00 or 0x01 is ErrInvalidFormat.
func (d *Decoder) ReadBool() (bool, error) {
	off := d.rb.Position()
	b, err := d.rb.ReadUint8()
	if err != nil {
		return false, err
	}

	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: bool byte 0x%02x at offset %d", errs.ErrInvalidFormat, b, off)
	}
}

// ReadInt8 reads a 1-byte signed integer.
func (d *Decoder) ReadInt8() (int8, error) { return d.rb.ReadInt8() }

// ReadInt16 reads a 2-byte little-endian signed integer.
func (d *Decoder) ReadInt16() (int16, error) { return d.rb.ReadInt16() }

// ReadInt32 reads a 4-byte little-endian signed integer.
func (d *Decoder) ReadInt32() (int32, error) { return d.rb.ReadInt32() }

// ReadInt64 reads an 8-byte little-endian signed integer.
func (d *Decoder) ReadInt64() (int64, error) { return d.rb.ReadInt64() }

// ReadInt128 reads a 16-byte signed integer, low half first.
func (d *Decoder) ReadInt128() (value.Int128, error) {
	hi, lo, err := d.rb.ReadUint128()
	return value.Int128{Hi: int64(hi), Lo: lo}, err //nolint:gosec
}

// ReadUint8 reads a 1-byte unsigned integer.
func (d *Decoder) ReadUint8() (uint8, error) { return d.rb.ReadUint8() }

// ReadUint16 reads a 2-byte little-endian unsigned integer.
func (d *Decoder) ReadUint16() (uint16, error) { return d.rb.ReadUint16() }

// ReadUint32 reads a 4-byte little-endian unsigned integer.
func (d *Decoder) ReadUint32() (uint32, error) { return d.rb.ReadUint32() }

// ReadUint64 reads an 8-byte little-endian unsigned integer.
func (d *Decoder) ReadUint64() (uint64, error) { return d.rb.ReadUint64() }

// ReadUint128 reads a 16-byte unsigned integer, low half first.
func (d *Decoder) ReadUint128() (value.Uint128, error) {
	hi, lo, err := d.rb.ReadUint128()
	return value.Uint128{Hi: hi, Lo: lo}, err
}

// ReadFloat32 reads a 4-byte IEEE-754 float.
func (d *Decoder) ReadFloat32() (float32, error) { return d.rb.ReadFloat32() }

// ReadFloat64 reads an 8-byte IEEE-754 float.
func (d *Decoder) ReadFloat64() (float64, error) { return d.rb.ReadFloat64() }

// ReadChar reads a 4-byte Unicode scalar value.
func (d *Decoder) ReadChar() (rune, error) {
	off := d.rb.Position()
	v, err := d.rb.ReadUint32()
	if err != nil {
		return 0, err
	}

	r := rune(v) //nolint:gosec
	if v > utf8.MaxRune || !utf8.ValidRune(r) {
		return 0, fmt.Errorf("%w: invalid char 0x%08x at offset %d", errs.ErrInvalidFormat, v, off)
	}

	return r, nil
}

// ReadString reads a length-prefixed UTF-8 string.
//
// The result borrows the input unless the Decoder copies (WithOwnedCopies).
func (d *Decoder) ReadString() (string, error) {
	s, err := d.rb.ReadStr()
	if err != nil {
		return "", err
	}
	if d.cfg.ownedCopies {
		return strings.Clone(s), nil
	}

	return s, nil
}

// ReadBytes reads a length-prefixed byte sequence.
//
// The result borrows the input unless the Decoder copies (WithOwnedCopies). A
// borrowed slice has its capacity clipped, so appending to it reallocates.
func (d *Decoder) ReadBytes() ([]byte, error) {
	b, err := d.rb.ReadByteSlice()
	if err != nil {
		return nil, err
	}
	if d.cfg.ownedCopies {
		return bytes.Clone(b), nil
	}

	return b, nil
}

// ReadOption reads an option tag and reports whether a payload follows.
func (d *Decoder) ReadOption() (bool, error) {
	off := d.rb.Position()
	tag, err := d.rb.ReadUint8()
	if err != nil {
		return false, err
	}

	switch tag {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: option tag 0x%02x at offset %d", errs.ErrInvalidFormat, tag, off)
	}
}

// ReadSeqLen reads a sequence element count.
//
// Returns:
//   - int: Element count
//   - error: ErrInvalidFormat if the count exceeds the Decoder's max length
func (d *Decoder) ReadSeqLen() (int, error) {
	return d.readCount("sequence")
}

// ReadMapLen reads a map entry count.
func (d *Decoder) ReadMapLen() (int, error) {
	return d.readCount("map")
}

func (d *Decoder) readCount(what string) (int, error) {
	off := d.rb.Position()
	n, err := d.rb.ReadVarint()
	if err != nil {
		return 0, err
	}
	if n > uint64(d.cfg.maxLength) { //nolint:gosec
		return 0, fmt.Errorf("%w: %s length %d at offset %d exceeds limit %d",
			errs.ErrInvalidFormat, what, n, off, d.cfg.maxLength)
	}

	return int(n), nil //nolint:gosec
}

// ReadStructLen reads a struct field count and checks it against want.
func (d *Decoder) ReadStructLen(want int) error {
	off := d.rb.Position()
	n, err := d.rb.ReadVarint()
	if err != nil {
		return err
	}
	if n != uint64(want) { //nolint:gosec
		return fmt.Errorf("%w: struct has %d fields at offset %d, want %d", errs.ErrInvalidFormat, n, off, want)
	}

	return nil
}

// ReadVariant reads an enum variant index and checks it is below count.
func (d *Decoder) ReadVariant(count int) (uint32, error) {
	off := d.rb.Position()
	idx, err := d.rb.ReadVarint()
	if err != nil {
		return 0, err
	}
	if idx >= uint64(count) { //nolint:gosec
		return 0, fmt.Errorf("%w: variant index %d at offset %d, enum has %d variants",
			errs.ErrInvalidFormat, idx, off, count)
	}

	return uint32(idx), nil //nolint:gosec
}

// checkCount rejects counts that the remaining input cannot possibly hold.
func (d *Decoder) checkCount(n, elemSize int) error {
	if elemSize == 0 {
		if n > maxZeroSizedElems {
			return fmt.Errorf("%w: %d zero-sized elements exceeds limit %d", errs.ErrInvalidFormat, n, maxZeroSizedElems)
		}

		return nil
	}

	if rem := d.rb.Remaining(); n > rem/elemSize {
		return fmt.Errorf("%w: %d elements of at least %d bytes, %d bytes remain",
			errs.ErrTruncated, n, elemSize, rem)
	}

	return nil
}

// DecodeValue reads one value of type t.
//
// Parameters:
//   - t: Expected type; the encoding is not self-describing
//
// Returns:
//   - value.Value: Decoded value; strings and bytes borrow the input by default
//   - error: ErrTruncated, ErrVarintOverflow or ErrInvalidFormat
func (d *Decoder) DecodeValue(t *value.Type) (value.Value, error) {
	if t == nil {
		return value.Value{}, fmt.Errorf("%w: nil type at offset %d", errs.ErrInvalidFormat, d.rb.Position())
	}

	d.depth++
	defer func() { d.depth-- }()
	if d.depth > d.cfg.maxDepth {
		return value.Value{}, fmt.Errorf("%w: nesting deeper than %d", errs.ErrInvalidFormat, d.cfg.maxDepth)
	}

	switch t.Kind {
	case value.KindUnit:
		return value.Unit(), nil
	case value.KindBool:
		b, err := d.ReadBool()
		return value.Bool(b), err
	case value.KindInt8:
		v, err := d.ReadInt8()
		return value.Int8(v), err
	case value.KindInt16:
		v, err := d.ReadInt16()
		return value.Int16(v), err
	case value.KindInt32:
		v, err := d.ReadInt32()
		return value.Int32(v), err
	case value.KindInt64:
		v, err := d.ReadInt64()
		return value.Int64(v), err
	case value.KindInt128:
		v, err := d.ReadInt128()
		return value.I128(v), err
	case value.KindUint8:
		v, err := d.ReadUint8()
		return value.Uint8(v), err
	case value.KindUint16:
		v, err := d.ReadUint16()
		return value.Uint16(v), err
	case value.KindUint32:
		v, err := d.ReadUint32()
		return value.Uint32(v), err
	case value.KindUint64:
		v, err := d.ReadUint64()
		return value.Uint64(v), err
	case value.KindUint128:
		v, err := d.ReadUint128()
		return value.U128(v), err
	case value.KindFloat32:
		v, err := d.ReadFloat32()
		return value.Float32(v), err
	case value.KindFloat64:
		v, err := d.ReadFloat64()
		return value.Float64(v), err
	case value.KindChar:
		r, err := d.ReadChar()
		return value.Char(r), err
	case value.KindString:
		s, err := d.ReadString()
		if err != nil {
			return value.Value{}, err
		}
		if d.cfg.ownedCopies {
			return value.String(s), nil
		}

		return value.BorrowedString(s), nil
	case value.KindBytes:
		b, err := d.ReadBytes()
		if err != nil {
			return value.Value{}, err
		}
		if d.cfg.ownedCopies {
			return value.Bytes(b), nil
		}

		return value.BorrowedBytes(b), nil
	case value.KindOption:
		return d.decodeOption(t)
	case value.KindSeq:
		return d.decodeSeq(t)
	case value.KindMap:
		return d.decodeMap(t)
	case value.KindStruct:
		return d.decodeStruct(t)
	case value.KindEnum:
		return d.decodeEnum(t)
	default:
		return value.Value{}, fmt.Errorf("%w: cannot decode %s type", errs.ErrInvalidFormat, t.Kind)
	}
}

func (d *Decoder) decodeOption(t *value.Type) (value.Value, error) {
	present, err := d.ReadOption()
	if err != nil {
		return value.Value{}, err
	}
	if !present {
		return value.None(), nil
	}

	elem, err := d.DecodeValue(t.Elem)
	if err != nil {
		return value.Value{}, err
	}

	return value.Some(elem), nil
}

func (d *Decoder) decodeSeq(t *value.Type) (value.Value, error) {
	n, err := d.ReadSeqLen()
	if err != nil {
		return value.Value{}, err
	}
	if n == 0 {
		return value.Seq(), nil
	}
	if t.Elem == nil {
		return value.Value{}, fmt.Errorf("%w: sequence type has no element type", errs.ErrInvalidFormat)
	}
	if err := d.checkCount(n, t.Elem.MinSize()); err != nil {
		return value.Value{}, err
	}

	elems := make([]value.Value, n)
	for i := range elems {
		if elems[i], err = d.DecodeValue(t.Elem); err != nil {
			return value.Value{}, fmt.Errorf("seq element %d: %w", i, err)
		}
	}

	return value.Seq(elems...), nil
}

func (d *Decoder) decodeMap(t *value.Type) (value.Value, error) {
	n, err := d.ReadMapLen()
	if err != nil {
		return value.Value{}, err
	}
	if n == 0 {
		return value.Map(), nil
	}
	if t.Key == nil || t.Elem == nil {
		return value.Value{}, fmt.Errorf("%w: map type has no key or value type", errs.ErrInvalidFormat)
	}
	if err := d.checkCount(n, t.Key.MinSize()+t.Elem.MinSize()); err != nil {
		return value.Value{}, err
	}

	entries := make([]value.Entry, n)
	for i := range entries {
		if entries[i].Key, err = d.DecodeValue(t.Key); err != nil {
			return value.Value{}, fmt.Errorf("map key %d: %w", i, err)
		}
		if entries[i].Value, err = d.DecodeValue(t.Elem); err != nil {
			return value.Value{}, fmt.Errorf("map value %d: %w", i, err)
		}
	}

	return value.Map(entries...), nil
}

func (d *Decoder) decodeStruct(t *value.Type) (value.Value, error) {
	if err := d.ReadStructLen(len(t.Fields)); err != nil {
		return value.Value{}, err
	}

	fields := make([]value.Field, len(t.Fields))
	for i, ft := range t.Fields {
		v, err := d.DecodeValue(ft.Type)
		if err != nil {
			return value.Value{}, fmt.Errorf("%s field %d: %w", t.Name, i, err)
		}
		fields[i] = value.Field{Name: ft.Name, Value: v}
	}

	return value.Struct(t.Name, fields...), nil
}

func (d *Decoder) decodeEnum(t *value.Type) (value.Value, error) {
	idx, err := d.ReadVariant(len(t.Variants))
	if err != nil {
		return value.Value{}, err
	}

	vt := t.Variants[idx]
	if vt.Payload == nil {
		return value.UnitVariant(t.Name, idx, vt.Name), nil
	}

	p, err := d.DecodeValue(vt.Payload)
	if err != nil {
		return value.Value{}, fmt.Errorf("%s::%s: %w", t.Name, vt.Name, err)
	}

	return value.Variant(t.Name, idx, vt.Name, p), nil
}

// Decode decodes a root value of type t from data and checks that nothing follows it.
//
// Parameters:
//   - data: Envelope followed by payload
//   - t: Expected type of the root value
//   - opts: Optional decoder configuration
//
// Returns:
//   - value.Value: Decoded value, borrowing data unless WithOwnedCopies is set
//   - error: Any decode error kind
func Decode(data []byte, t *value.Type, opts ...DecoderOption) (value.Value, error) {
	dec, err := NewDecoder(data, opts...)
	if err != nil {
		return value.Value{}, err
	}

	v, err := dec.DecodeValue(t)
	if err != nil {
		return value.Value{}, err
	}

	if err := dec.Finish(); err != nil {
		return value.Value{}, err
	}

	return v, nil
}

// Unmarshal decodes data into u and checks that nothing follows the root value.
func Unmarshal(data []byte, u Unmarshaler, opts ...DecoderOption) error {
	dec, err := NewDecoder(data, opts...)
	if err != nil {
		return err
	}

	if err := u.UnmarshalNano(dec); err != nil {
		return err
	}

	return dec.Finish()
}
