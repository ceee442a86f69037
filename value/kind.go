package value

// Kind identifies the variant held by a Value or described by a Type.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUnit
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt128
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUint128
	KindFloat32
	KindFloat64
	KindChar
	KindString
	KindBytes
	KindOption
	KindSeq
	KindMap
	KindStruct
	KindEnum
)

var kindNames = [...]string{
	KindInvalid: "Invalid",
	KindUnit:    "Unit",
	KindBool:    "Bool",
	KindInt8:    "Int8",
	KindInt16:   "Int16",
	KindInt32:   "Int32",
	KindInt64:   "Int64",
	KindInt128:  "Int128",
	KindUint8:   "Uint8",
	KindUint16:  "Uint16",
	KindUint32:  "Uint32",
	KindUint64:  "Uint64",
	KindUint128: "Uint128",
	KindFloat32: "Float32",
	KindFloat64: "Float64",
	KindChar:    "Char",
	KindString:  "String",
	KindBytes:   "Bytes",
	KindOption:  "Option",
	KindSeq:     "Seq",
	KindMap:     "Map",
	KindStruct:  "Struct",
	KindEnum:    "Enum",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return "Unknown"
}

// IsScalar reports whether k has a fixed-width encoding.
func (k Kind) IsScalar() bool {
	return k >= KindUnit && k <= KindChar
}

// FixedSize returns the encoded size of a scalar kind, or -1 for variable-size kinds.
func (k Kind) FixedSize() int {
	switch k {
	case KindUnit:
		return 0
	case KindBool, KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32, KindChar:
		return 4
	case KindInt64, KindUint64, KindFloat64:
		return 8
	case KindInt128, KindUint128:
		return 16
	default:
		return -1
	}
}
