// Package buffer provides the two byte primitives nanobit is built on.
//
// WriteBuffer is the only append primitive used while encoding. It owns a growable
// byte region, appends fixed-width values in little-endian order, varints and
// length-prefixed byte strings, and grows by amortized doubling.
//
// ReadBuffer is the only primitive used while decoding. It is a cursor over a
// borrowed, immutable byte region. Every read is bounds-checked and advances the
// cursor; the cursor never passes the end of the region. A failed read leaves the
// cursor where it was and reports errs.ErrTruncated.
//
// # Zero-copy reads
//
// ReadBytes, ReadByteSlice and ReadStr return views into the region handed to
// NewReadBuffer, not into the ReadBuffer. A view stays valid after the ReadBuffer
// is discarded, for as long as the original region is alive and unmodified:
//
//	data := loadPayload()
//	rb := buffer.NewReadBuffer(data)
//	name, _ := rb.ReadStr() // shares memory with data
//	rb = nil                // name is still valid
//	data[0] = 'x'           // undefined: name may change
//
// Callers that need to mutate or recycle the region must copy the view first
// (strings.Clone, bytes.Clone).
//
// Neither type is safe for concurrent use; each encode or decode call owns its
// own buffer.
package buffer
