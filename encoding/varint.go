package encoding

import (
	"fmt"

	"github.com/arloliu/nanobit/errs"
)

// MaxVarintLen is the maximum number of bytes a 64-bit varint occupies.
const MaxVarintLen = 10

// AppendUvarint appends v to dst in LEB128 form and returns the extended slice.
//
// Each output byte carries 7 bits of v, least significant group first. The high
// bit (0x80) is set on every byte except the last.
//
// Parameters:
//   - dst: Destination slice (may be nil)
//   - v: Value to encode
//
// Returns:
//   - []byte: dst with 1 to 10 bytes appended
func AppendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

// UvarintSize returns the number of bytes AppendUvarint emits for v.
func UvarintSize(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}

	return n
}

// Uvarint decodes a varint from the start of src.
//
// Parameters:
//   - src: Encoded bytes; only the varint prefix is consumed
//
// Returns:
//   - uint64: Decoded value
//   - int: Number of bytes consumed
//   - error: ErrTruncated if src ends before a byte with the continuation bit clear,
//     ErrVarintOverflow if the encoding needs more than 64 bits
func Uvarint(src []byte) (uint64, int, error) {
	var v uint64
	var shift uint

	for i, b := range src {
		if i == MaxVarintLen {
			return 0, 0, fmt.Errorf("%w: more than %d groups", errs.ErrVarintOverflow, MaxVarintLen)
		}

		// the 10th group may only contribute the single top bit
		if i == MaxVarintLen-1 && b > 1 {
			return 0, 0, fmt.Errorf("%w: final group 0x%02x", errs.ErrVarintOverflow, b)
		}

		v |= uint64(b&0x7f) << shift
		if b < 0x80 {
			return v, i + 1, nil
		}
		shift += 7
	}

	return 0, 0, fmt.Errorf("%w: unterminated varint after %d bytes", errs.ErrTruncated, len(src))
}
