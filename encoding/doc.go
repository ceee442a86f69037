// Package encoding implements the variable-length integer coding used by nanobit.
//
// Varints carry lengths, element counts and enum variant indices. Each byte holds
// 7 payload bits, least significant group first, and the high bit marks that
// another byte follows (unsigned LEB128):
//
//	0      -> 0x00
//	127    -> 0x7f
//	128    -> 0x80 0x01
//	300    -> 0xac 0x02
//	MaxUint64 -> 0xff x9, 0x01
//
// Signed integers are never varint encoded in nanobit payloads. They are written
// as fixed-width little-endian two's complement by the buffer package.
//
// Decoding is strict: a varint that runs past the input reports errs.ErrTruncated
// and one that does not fit in 64 bits reports errs.ErrVarintOverflow.
package encoding
