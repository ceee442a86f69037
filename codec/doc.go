// Package codec encodes and decodes nanobit payloads.
//
// A payload is a 5-byte envelope ("NANO" followed by a version byte) and the
// encoding of exactly one root value. The encoding is not self-describing: the
// reader supplies the expected shape, either as a value.Type or by calling the
// Decoder's Read methods in the order the writer called the Encoder's Write methods.
//
// # Wire format
//
//   - Unit encodes to nothing. Bool is one byte, 0x00 or 0x01.
//   - Fixed-width integers and floats are little-endian; signed integers are two's
//     complement. 128-bit integers are the low 64-bit half then the high half.
//   - Char is the 4-byte little-endian scalar value.
//   - Strings and byte sequences are a varint length followed by the raw bytes.
//     Strings must be valid UTF-8; both the encoder and the decoder reject others.
//   - Option is a tag byte (0 absent, 1 present) followed by the payload if present.
//   - Seq and Map are a varint count followed by the elements, or key then value
//     for each map entry.
//   - Struct and tuple are a varint field count followed by the fields in order.
//   - Enum is a varint variant index followed by the variant's payload, if any.
//
// # Zero-copy decoding
//
// By default strings and byte sequences are views into the decoded input. Use
// WithOwnedCopies, or value.Value.Clone, when results must outlive the input.
//
// # Usage
//
//	data, err := codec.Encode(value.Seq(value.String("a"), value.String("b")))
//	if err != nil {
//	    return err
//	}
//
//	v, err := codec.Decode(data, value.SeqOf(value.Prim(value.KindString)))
//
// Types with hand-written encodings implement Marshaler and Unmarshaler and use
// codec.Marshal and codec.Unmarshal.
package codec
