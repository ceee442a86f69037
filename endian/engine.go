// Package endian provides the byte order used for fixed-width values in nanobit payloads.
//
// The package combines encoding/binary's ByteOrder and AppendByteOrder into a
// single EndianEngine, so buffers can both append and decode through one value.
// nanobit payloads are always little-endian; the engine is still passed around as
// an interface so the buffers never hard-code binary.LittleEndian calls.
//
// All functions in this package are safe for concurrent use. The returned engines
// are immutable.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// It is satisfied by binary.LittleEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the nanobit wire order.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
