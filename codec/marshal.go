package codec

// Marshaler is implemented by types that write themselves to an Encoder.
//
// Implementations call the Encoder's Write methods in a fixed order. The matching
// Unmarshaler must read the same sequence back.
type Marshaler interface {
	MarshalNano(enc *Encoder) error
}

// Unmarshaler is implemented by types that read themselves from a Decoder.
//
// Strings and byte sequences returned by the Decoder may borrow the input. An
// implementation that keeps them past the input's lifetime must copy them.
type Unmarshaler interface {
	UnmarshalNano(dec *Decoder) error
}
