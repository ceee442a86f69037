package value

import (
	"strconv"
	"strings"
)

// String returns a debug representation of v.
func (v Value) String() string {
	var sb strings.Builder
	v.writeTo(&sb)

	return sb.String()
}

func (v Value) writeTo(sb *strings.Builder) {
	switch v.kind {
	case KindInvalid:
		sb.WriteString("<invalid>")
	case KindUnit:
		sb.WriteString("()")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.Bool()))
	case KindInt8, KindInt16, KindInt32, KindInt64:
		sb.WriteString(strconv.FormatInt(v.Int(), 10))
	case KindUint8, KindUint16, KindUint32, KindUint64:
		sb.WriteString(strconv.FormatUint(v.Uint(), 10))
	case KindInt128, KindUint128:
		sb.WriteString("0x")
		sb.WriteString(strconv.FormatUint(v.hi, 16))
		sb.WriteByte('_')
		sb.WriteString(strconv.FormatUint(v.bits, 16))
	case KindFloat32:
		sb.WriteString(strconv.FormatFloat(float64(v.Float32()), 'g', -1, 32))
	case KindFloat64:
		sb.WriteString(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case KindChar:
		sb.WriteString(strconv.QuoteRune(v.Char()))
	case KindString:
		sb.WriteString(strconv.Quote(v.str))
	case KindBytes:
		sb.WriteString("0x")
		const hex = "0123456789abcdef"
		for _, b := range v.raw {
			sb.WriteByte(hex[b>>4])
			sb.WriteByte(hex[b&0x0f])
		}
	case KindOption:
		if !v.IsSome() {
			sb.WriteString("None")
			return
		}
		sb.WriteString("Some(")
		v.elems[0].writeTo(sb)
		sb.WriteByte(')')
	case KindSeq:
		sb.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.writeTo(sb)
		}
		sb.WriteByte(']')
	case KindMap:
		sb.WriteByte('{')
		for i, e := range v.entries {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.Key.writeTo(sb)
			sb.WriteString(": ")
			e.Value.writeTo(sb)
		}
		sb.WriteByte('}')
	case KindStruct:
		sb.WriteString(v.str)
		sb.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			if f.Name != "" {
				sb.WriteString(f.Name)
				sb.WriteString(": ")
			}
			f.Value.writeTo(sb)
		}
		sb.WriteByte('}')
	case KindEnum:
		sb.WriteString(v.str)
		sb.WriteString("::")
		if v.variant != "" {
			sb.WriteString(v.variant)
		} else {
			sb.WriteByte('#')
			sb.WriteString(strconv.FormatUint(v.bits, 10))
		}
		if len(v.elems) == 1 {
			sb.WriteByte('(')
			v.elems[0].writeTo(sb)
			sb.WriteByte(')')
		}
	default:
		sb.WriteString(v.kind.String())
	}
}
