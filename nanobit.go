// Package nanobit provides a compact binary serialization format with optional
// compression.
//
// A nanobit payload is the 4-byte magic "NANO", a version byte, and the encoding
// of one value. Values follow a small data model: unit, booleans, fixed-width
// integers up to 128 bits, floats, chars, strings, byte sequences, options,
// sequences, maps, structs, tuples and enums. The encoding is not self-describing;
// readers supply the expected shape.
//
// # Core Features
//
//   - Little-endian fixed-width scalars and LEB128 varint lengths
//   - Zero-copy decoding: strings and byte sequences borrow the input by default
//   - Pluggable compression (LZ4, Zstd, Snappy) with a one-byte format tag, so
//     decompression needs no out-of-band information
//   - Hand-written encodings through the Marshaler and Unmarshaler interfaces
//
// # Basic Usage
//
// Encoding and decoding a dynamic value:
//
//	v := value.Struct("User",
//	    value.Field{Name: "id", Value: value.Uint64(42)},
//	    value.Field{Name: "name", Value: value.String("ada")},
//	)
//	data, _ := nanobit.Encode(v)
//
//	userType := value.StructOf("User",
//	    value.FieldType{Name: "id", Type: value.Prim(value.KindUint64)},
//	    value.FieldType{Name: "name", Type: value.Prim(value.KindString)},
//	)
//	decoded, _ := nanobit.Decode(data, userType)
//
// Compressing the result:
//
//	compressed, _ := nanobit.Compress(data, format.CompressionZstd, format.LevelDefault)
//	original, _ := nanobit.Decompress(compressed)
//
// # Package Structure
//
// This package provides convenient top-level wrappers. For fine-grained control
// use the codec, compress and value packages directly.
package nanobit

import (
	"io"

	"github.com/arloliu/nanobit/buffer"
	"github.com/arloliu/nanobit/codec"
	"github.com/arloliu/nanobit/compress"
	"github.com/arloliu/nanobit/format"
	"github.com/arloliu/nanobit/internal/hash"
	"github.com/arloliu/nanobit/value"
)

const (
	// Magic is the 4-byte prefix of every payload.
	Magic = codec.Magic
	// Version is the envelope version written by this build.
	Version = codec.Version
	// DefaultBufferSize is the initial capacity of encode buffers.
	DefaultBufferSize = buffer.DefaultCapacity
)

// Encode encodes v into a new byte slice.
//
// Parameters:
//   - v: Root value
//   - opts: Optional encoder configuration
//
// Returns:
//   - []byte: Envelope followed by payload
//   - error: ErrInvalidFormat if v holds an unencodable value
func Encode(v value.Value, opts ...codec.EncoderOption) ([]byte, error) {
	return codec.Encode(v, opts...)
}

// Decode decodes a root value of type t from data.
//
// Strings and byte sequences in the result borrow data unless
// codec.WithOwnedCopies is given. data must stay unmodified while they are in use.
//
// Parameters:
//   - data: Envelope followed by payload
//   - t: Expected type of the root value
//   - opts: Optional decoder configuration
//
// Returns:
//   - value.Value: Decoded value
//   - error: ErrInvalidFormat, ErrUnsupportedVersion, ErrTruncated or ErrVarintOverflow
func Decode(data []byte, t *value.Type, opts ...codec.DecoderOption) (value.Value, error) {
	return codec.Decode(data, t, opts...)
}

// Marshal encodes m through its MarshalNano method.
func Marshal(m codec.Marshaler, opts ...codec.EncoderOption) ([]byte, error) {
	return codec.Marshal(m, opts...)
}

// Unmarshal decodes data into u through its UnmarshalNano method and rejects
// trailing bytes.
func Unmarshal(data []byte, u codec.Unmarshaler, opts ...codec.DecoderOption) error {
	return codec.Unmarshal(data, u, opts...)
}

// IsSerialized reports whether data starts with a valid nanobit envelope.
// It never fails and never modifies data.
func IsSerialized(data []byte) bool {
	return codec.IsSerialized(data)
}

// Compress compresses data with the given format and level. The output starts
// with the format tag.
func Compress(data []byte, f format.CompressionFormat, level format.CompressionLevel) ([]byte, error) {
	return compress.Compress(data, f, level)
}

// CompressDefault compresses data with LZ4 at the default level.
func CompressDefault(data []byte) ([]byte, error) {
	return compress.CompressDefault(data)
}

// Decompress detects the format from the leading tag and decompresses data.
func Decompress(data []byte) ([]byte, error) {
	return compress.Decompress(data)
}

// EncodeCompressed encodes v and compresses the whole payload, envelope included.
func EncodeCompressed(v value.Value, f format.CompressionFormat, level format.CompressionLevel) ([]byte, error) {
	data, err := codec.Encode(v)
	if err != nil {
		return nil, err
	}

	return compress.Compress(data, f, level)
}

// DecodeCompressed decompresses data and decodes a root value of type t from it.
//
// The decompressed buffer is private to the call, so borrowed strings and byte
// sequences in the result stay valid regardless of what happens to data.
func DecodeCompressed(data []byte, t *value.Type, opts ...codec.DecoderOption) (value.Value, error) {
	raw, err := compress.Decompress(data)
	if err != nil {
		return value.Value{}, err
	}

	return codec.Decode(raw, t, opts...)
}

// MarshalCompressed marshals m and compresses the whole payload.
//
// Parameters:
//   - m: Value to marshal
//   - f: Compression format
//   - level: Compression level
//
// Returns:
//   - []byte: Tag byte followed by the compressed payload
//   - error: Encoding or compression error
func MarshalCompressed(m codec.Marshaler, f format.CompressionFormat, level format.CompressionLevel) ([]byte, error) {
	data, err := codec.Marshal(m)
	if err != nil {
		return nil, err
	}

	return compress.Compress(data, f, level)
}

// UnmarshalCompressed decompresses data and unmarshals the payload into u.
func UnmarshalCompressed(data []byte, u codec.Unmarshaler, opts ...codec.DecoderOption) error {
	raw, err := compress.Decompress(data)
	if err != nil {
		return err
	}

	return codec.Unmarshal(raw, u, opts...)
}

// EncodeTo encodes v and writes the payload to w.
// The bytes written are identical to those returned by Encode.
func EncodeTo(w io.Writer, v value.Value, opts ...codec.EncoderOption) error {
	enc, err := codec.NewEncoder(opts...)
	if err != nil {
		return err
	}
	if err := enc.EncodeValue(v); err != nil {
		return err
	}

	_, err = w.Write(enc.Finish())

	return err
}

// DecodeFrom reads r to EOF and decodes a root value of type t.
func DecodeFrom(r io.Reader, t *value.Type, opts ...codec.DecoderOption) (value.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return value.Value{}, err
	}

	return codec.Decode(data, t, opts...)
}

// MarshalTo marshals m and writes the payload to w.
func MarshalTo(w io.Writer, m codec.Marshaler, opts ...codec.EncoderOption) error {
	enc, err := codec.NewEncoder(opts...)
	if err != nil {
		return err
	}
	if err := enc.Encode(m); err != nil {
		return err
	}

	_, err = w.Write(enc.Finish())

	return err
}

// UnmarshalFrom reads r to EOF and unmarshals the payload into u.
func UnmarshalFrom(r io.Reader, u codec.Unmarshaler, opts ...codec.DecoderOption) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	return codec.Unmarshal(data, u, opts...)
}

// Checksum returns the xxHash64 digest of data. It is not part of the payload
// format; use it to compare payloads or detect changes.
func Checksum(data []byte) uint64 {
	return hash.Sum(data)
}
