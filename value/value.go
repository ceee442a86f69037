package value

import (
	"bytes"
	"math"
	"strings"
)

// Int128 is a signed 128-bit integer in two's complement halves.
type Int128 struct {
	Hi int64
	Lo uint64
}

// Uint128 is an unsigned 128-bit integer.
type Uint128 struct {
	Hi uint64
	Lo uint64
}

// Field is a struct field. Name is empty for positional fields.
type Field struct {
	Name  string
	Value Value
}

// Entry is a map key/value pair.
type Entry struct {
	Key   Value
	Value Value
}

// Value is a tagged union over the nanobit data model.
//
// The zero Value has KindInvalid and cannot be encoded. Values are immutable once
// built; the slices passed to the constructors are retained, not copied.
type Value struct {
	kind     Kind
	bits     uint64 // scalar payload, low half of 128-bit ints, variant index
	hi       uint64 // high half of 128-bit ints
	str      string // string payload, struct or enum type name
	variant  string // enum variant name
	raw      []byte // bytes payload
	borrowed bool
	elems    []Value // seq elements, option or enum payload
	fields   []Field
	entries  []Entry
}

// Unit returns the unit value.
func Unit() Value { return Value{kind: KindUnit} }

// Bool returns a boolean value.
func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.bits = 1
	}

	return v
}

func Int8(v int8) Value   { return Value{kind: KindInt8, bits: uint64(v)} }  //nolint:gosec
func Int16(v int16) Value { return Value{kind: KindInt16, bits: uint64(v)} } //nolint:gosec
func Int32(v int32) Value { return Value{kind: KindInt32, bits: uint64(v)} } //nolint:gosec
func Int64(v int64) Value { return Value{kind: KindInt64, bits: uint64(v)} } //nolint:gosec

// I128 returns a signed 128-bit value.
func I128(v Int128) Value {
	return Value{kind: KindInt128, hi: uint64(v.Hi), bits: v.Lo} //nolint:gosec
}

func Uint8(v uint8) Value   { return Value{kind: KindUint8, bits: uint64(v)} }
func Uint16(v uint16) Value { return Value{kind: KindUint16, bits: uint64(v)} }
func Uint32(v uint32) Value { return Value{kind: KindUint32, bits: uint64(v)} }
func Uint64(v uint64) Value { return Value{kind: KindUint64, bits: v} }

// U128 returns an unsigned 128-bit value.
func U128(v Uint128) Value {
	return Value{kind: KindUint128, hi: v.Hi, bits: v.Lo}
}

func Float32(v float32) Value { return Value{kind: KindFloat32, bits: uint64(math.Float32bits(v))} }
func Float64(v float64) Value { return Value{kind: KindFloat64, bits: math.Float64bits(v)} }

// Char returns a character value. r should be a valid Unicode scalar value;
// encoding an invalid one fails.
func Char(r rune) Value { return Value{kind: KindChar, bits: uint64(uint32(r))} } //nolint:gosec

// String returns an owned string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// BorrowedString returns a string value marked as a view into a decode input.
func BorrowedString(s string) Value { return Value{kind: KindString, str: s, borrowed: true} }

// Bytes returns an owned byte sequence value.
func Bytes(b []byte) Value { return Value{kind: KindBytes, raw: b} }

// BorrowedBytes returns a byte sequence value marked as a view into a decode input.
func BorrowedBytes(b []byte) Value { return Value{kind: KindBytes, raw: b, borrowed: true} }

// None returns an absent option.
func None() Value { return Value{kind: KindOption} }

// Some returns a present option holding v.
func Some(v Value) Value { return Value{kind: KindOption, elems: []Value{v}} }

// Seq returns an ordered sequence.
func Seq(elems ...Value) Value { return Value{kind: KindSeq, elems: elems} }

// Map returns an ordered map. Key uniqueness is the caller's responsibility.
func Map(entries ...Entry) Value { return Value{kind: KindMap, entries: entries} }

// Struct returns a struct value. Fields are encoded in the given order.
func Struct(name string, fields ...Field) Value {
	return Value{kind: KindStruct, str: name, fields: fields}
}

// Tuple returns a struct value with positional fields.
func Tuple(name string, elems ...Value) Value {
	fields := make([]Field, len(elems))
	for i, e := range elems {
		fields[i].Value = e
	}

	return Value{kind: KindStruct, str: name, fields: fields}
}

// UnitVariant returns an enum value without associated data.
func UnitVariant(enum string, index uint32, variant string) Value {
	return Value{kind: KindEnum, str: enum, bits: uint64(index), variant: variant}
}

// Variant returns an enum value carrying payload.
func Variant(enum string, index uint32, variant string, payload Value) Value {
	return Value{kind: KindEnum, str: enum, bits: uint64(index), variant: variant, elems: []Value{payload}}
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v was built by a constructor.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// Bool returns the boolean payload.
func (v Value) Bool() bool { return v.bits != 0 }

// Int returns the payload of an Int8..Int64 value, sign-extended.
func (v Value) Int() int64 {
	switch v.kind {
	case KindInt8:
		return int64(int8(v.bits)) //nolint:gosec
	case KindInt16:
		return int64(int16(v.bits)) //nolint:gosec
	case KindInt32:
		return int64(int32(v.bits)) //nolint:gosec
	default:
		return int64(v.bits) //nolint:gosec
	}
}

// Uint returns the payload of a Uint8..Uint64 value.
func (v Value) Uint() uint64 { return v.bits }

// Int128 returns the payload of an Int128 value.
func (v Value) Int128() Int128 { return Int128{Hi: int64(v.hi), Lo: v.bits} } //nolint:gosec

// Uint128 returns the payload of a Uint128 value.
func (v Value) Uint128() Uint128 { return Uint128{Hi: v.hi, Lo: v.bits} }

// Float32 returns the payload of a Float32 value.
func (v Value) Float32() float32 { return math.Float32frombits(uint32(v.bits)) } //nolint:gosec

// Float64 returns the payload of a Float64 value, or a Float32 payload widened.
func (v Value) Float64() float64 {
	if v.kind == KindFloat32 {
		return float64(v.Float32())
	}

	return math.Float64frombits(v.bits)
}

// Char returns the payload of a Char value.
func (v Value) Char() rune { return rune(uint32(v.bits)) } //nolint:gosec

// Str returns the payload of a String value.
func (v Value) Str() string {
	if v.kind != KindString {
		return ""
	}

	return v.str
}

// Bytes returns the payload of a Bytes value.
func (v Value) Bytes() []byte { return v.raw }

// IsBorrowed reports whether a String or Bytes value shares memory with a decode input.
func (v Value) IsBorrowed() bool { return v.borrowed }

// IsSome reports whether an option is present.
func (v Value) IsSome() bool { return v.kind == KindOption && len(v.elems) == 1 }

// Elem returns the payload of a present option.
func (v Value) Elem() Value {
	if v.kind != KindOption || len(v.elems) == 0 {
		return Value{}
	}

	return v.elems[0]
}

// Len returns the number of elements, entries or fields.
func (v Value) Len() int {
	switch v.kind {
	case KindSeq:
		return len(v.elems)
	case KindMap:
		return len(v.entries)
	case KindStruct:
		return len(v.fields)
	case KindString:
		return len(v.str)
	case KindBytes:
		return len(v.raw)
	default:
		return 0
	}
}

// Elems returns the elements of a sequence.
func (v Value) Elems() []Value {
	if v.kind != KindSeq {
		return nil
	}

	return v.elems
}

// Entries returns the entries of a map.
func (v Value) Entries() []Entry { return v.entries }

// Fields returns the fields of a struct.
func (v Value) Fields() []Field { return v.fields }

// Field returns the first struct field with the given name.
func (v Value) Field(name string) (Value, bool) {
	for _, f := range v.fields {
		if f.Name == name {
			return f.Value, true
		}
	}

	return Value{}, false
}

// Name returns the type name of a struct or enum.
func (v Value) Name() string {
	if v.kind != KindStruct && v.kind != KindEnum {
		return ""
	}

	return v.str
}

// VariantIndex returns the variant index of an enum.
func (v Value) VariantIndex() uint32 { return uint32(v.bits) } //nolint:gosec

// VariantName returns the variant name of an enum.
func (v Value) VariantName() string { return v.variant }

// Payload returns the associated data of an enum variant, if any.
func (v Value) Payload() (Value, bool) {
	if v.kind != KindEnum || len(v.elems) == 0 {
		return Value{}, false
	}

	return v.elems[0], true
}

// Clone returns a deep copy of v in which every string and byte sequence is owned.
func (v Value) Clone() Value {
	out := v
	out.borrowed = false

	switch v.kind {
	case KindString:
		out.str = strings.Clone(v.str)
	case KindBytes:
		if v.raw != nil {
			out.raw = bytes.Clone(v.raw)
		}
	case KindOption, KindSeq, KindEnum:
		if v.elems != nil {
			out.elems = make([]Value, len(v.elems))
			for i, e := range v.elems {
				out.elems[i] = e.Clone()
			}
		}
	case KindMap:
		if v.entries != nil {
			out.entries = make([]Entry, len(v.entries))
			for i, e := range v.entries {
				out.entries[i] = Entry{Key: e.Key.Clone(), Value: e.Value.Clone()}
			}
		}
	case KindStruct:
		if v.fields != nil {
			out.fields = make([]Field, len(v.fields))
			for i, f := range v.fields {
				out.fields[i] = Field{Name: f.Name, Value: f.Value.Clone()}
			}
		}
	}

	return out
}

// Equal reports whether a and b hold the same data.
//
// Floats compare by bit pattern, so NaN payloads round-trip as equal. Whether a
// string or byte sequence is borrowed does not matter, and a nil byte sequence
// equals an empty one.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case KindString:
		return a.str == b.str
	case KindBytes:
		return bytes.Equal(a.raw, b.raw)
	case KindOption, KindSeq:
		return equalValues(a.elems, b.elems)
	case KindMap:
		if len(a.entries) != len(b.entries) {
			return false
		}
		for i := range a.entries {
			if !Equal(a.entries[i].Key, b.entries[i].Key) || !Equal(a.entries[i].Value, b.entries[i].Value) {
				return false
			}
		}

		return true
	case KindStruct:
		if a.str != b.str || len(a.fields) != len(b.fields) {
			return false
		}
		for i := range a.fields {
			if a.fields[i].Name != b.fields[i].Name || !Equal(a.fields[i].Value, b.fields[i].Value) {
				return false
			}
		}

		return true
	case KindEnum:
		return a.str == b.str && a.bits == b.bits && a.variant == b.variant && equalValues(a.elems, b.elems)
	default:
		return a.bits == b.bits && a.hi == b.hi
	}
}

func equalValues(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}
