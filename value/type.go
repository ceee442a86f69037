package value

import (
	"fmt"
	"strings"
)

// Type describes the shape a decoder expects.
//
// Elem is used by Option, Seq and Map (the map value type), Key by Map, Fields by
// Struct and Variants by Enum. Name is informational and is copied onto decoded
// structs and enums.
type Type struct {
	Kind     Kind
	Name     string
	Elem     *Type
	Key      *Type
	Fields   []FieldType
	Variants []VariantType
}

// FieldType describes one struct field. Name may be empty for positional fields.
type FieldType struct {
	Name string
	Type *Type
}

// VariantType describes one enum variant. A nil Payload marks a unit variant.
type VariantType struct {
	Name    string
	Payload *Type
}

// Prim returns a Type for a scalar, string or bytes kind.
func Prim(k Kind) *Type {
	return &Type{Kind: k}
}

// OptionOf returns an option type.
func OptionOf(elem *Type) *Type {
	return &Type{Kind: KindOption, Elem: elem}
}

// SeqOf returns a sequence type.
func SeqOf(elem *Type) *Type {
	return &Type{Kind: KindSeq, Elem: elem}
}

// MapOf returns a map type.
func MapOf(key, elem *Type) *Type {
	return &Type{Kind: KindMap, Key: key, Elem: elem}
}

// StructOf returns a struct type with fields in encoding order.
func StructOf(name string, fields ...FieldType) *Type {
	return &Type{Kind: KindStruct, Name: name, Fields: fields}
}

// TupleOf returns a struct type with positional fields.
func TupleOf(name string, elems ...*Type) *Type {
	fields := make([]FieldType, len(elems))
	for i, e := range elems {
		fields[i].Type = e
	}

	return &Type{Kind: KindStruct, Name: name, Fields: fields}
}

// EnumOf returns an enum type. The position of each variant is its index.
func EnumOf(name string, variants ...VariantType) *Type {
	return &Type{Kind: KindEnum, Name: name, Variants: variants}
}

// Validate checks that t and every nested type is complete.
func (t *Type) Validate() error {
	if t == nil {
		return fmt.Errorf("nil type")
	}

	switch t.Kind {
	case KindOption, KindSeq:
		if t.Elem == nil {
			return fmt.Errorf("%s type without element type", t.Kind)
		}

		return t.Elem.Validate()
	case KindMap:
		if t.Key == nil || t.Elem == nil {
			return fmt.Errorf("map type without key or element type")
		}
		if err := t.Key.Validate(); err != nil {
			return err
		}

		return t.Elem.Validate()
	case KindStruct:
		for i, f := range t.Fields {
			if err := f.Type.Validate(); err != nil {
				return fmt.Errorf("field %d (%s) of %s: %w", i, f.Name, t.Name, err)
			}
		}

		return nil
	case KindEnum:
		for i, vt := range t.Variants {
			if vt.Payload == nil {
				continue
			}
			if err := vt.Payload.Validate(); err != nil {
				return fmt.Errorf("variant %d (%s) of %s: %w", i, vt.Name, t.Name, err)
			}
		}

		return nil
	case KindInvalid:
		return fmt.Errorf("invalid kind")
	default:
		if int(t.Kind) >= len(kindNames) {
			return fmt.Errorf("unknown kind %d", t.Kind)
		}

		return nil
	}
}

// MinSize returns the fewest bytes any value of type t encodes to.
func (t *Type) MinSize() int {
	if t == nil {
		return 0
	}
	if t.Kind.IsScalar() {
		return t.Kind.FixedSize()
	}

	// every variable-size kind starts with at least a one-byte tag, length or count
	return 1
}

// TypeOf derives the narrowest Type able to decode the encoding of v.
//
// Sequences and maps take their element types from their first element, so an
// empty sequence yields a nil element type. Enums get placeholder unit variants
// up to the variant v holds. The result decodes v's own encoding; it is not a
// general schema for v's application type.
func TypeOf(v Value) *Type {
	t := &Type{Kind: v.kind, Name: v.Name()}

	switch v.kind {
	case KindOption:
		if v.IsSome() {
			t.Elem = TypeOf(v.elems[0])
		}
	case KindSeq:
		if len(v.elems) > 0 {
			t.Elem = TypeOf(v.elems[0])
		}
	case KindMap:
		if len(v.entries) > 0 {
			t.Key = TypeOf(v.entries[0].Key)
			t.Elem = TypeOf(v.entries[0].Value)
		}
	case KindStruct:
		t.Fields = make([]FieldType, len(v.fields))
		for i, f := range v.fields {
			t.Fields[i] = FieldType{Name: f.Name, Type: TypeOf(f.Value)}
		}
	case KindEnum:
		idx := v.VariantIndex()
		t.Variants = make([]VariantType, int(idx)+1)
		t.Variants[idx].Name = v.variant
		if p, ok := v.Payload(); ok {
			t.Variants[idx].Payload = TypeOf(p)
		}
	}

	return t
}

// String returns a compact description such as "Seq<Option<String>>".
func (t *Type) String() string {
	var sb strings.Builder
	t.writeTo(&sb)

	return sb.String()
}

func (t *Type) writeTo(sb *strings.Builder) {
	if t == nil {
		sb.WriteString("?")
		return
	}

	switch t.Kind {
	case KindOption, KindSeq:
		sb.WriteString(t.Kind.String())
		sb.WriteByte('<')
		t.Elem.writeTo(sb)
		sb.WriteByte('>')
	case KindMap:
		sb.WriteString("Map<")
		t.Key.writeTo(sb)
		sb.WriteString(", ")
		t.Elem.writeTo(sb)
		sb.WriteByte('>')
	case KindStruct:
		sb.WriteString(t.Name)
		sb.WriteByte('{')
		for i, f := range t.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			if f.Name != "" {
				sb.WriteString(f.Name)
				sb.WriteString(": ")
			}
			f.Type.writeTo(sb)
		}
		sb.WriteByte('}')
	case KindEnum:
		sb.WriteString(t.Name)
		sb.WriteByte('(')
		for i, vt := range t.Variants {
			if i > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(vt.Name)
			if vt.Payload != nil {
				sb.WriteByte('(')
				vt.Payload.writeTo(sb)
				sb.WriteByte(')')
			}
		}
		sb.WriteByte(')')
	default:
		sb.WriteString(t.Kind.String())
	}
}
