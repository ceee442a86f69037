// Package value defines the abstract data model nanobit encodes and decodes.
//
// A Value is a tagged union over unit, booleans, signed and unsigned integers
// (8 to 128 bits), floats, characters, strings, byte sequences, options,
// sequences, maps, structs and enums. The codec package walks Values without
// knowing which application type produced them.
//
// The wire format carries no type information beyond lengths and discriminants,
// so decoding is driven by a Type: the shape an application expects, including
// struct field order and the variants of each enum.
//
//	person := value.StructOf("Person",
//	    value.FieldType{Name: "name", Type: value.Prim(value.KindString)},
//	    value.FieldType{Name: "age", Type: value.Prim(value.KindUint32)},
//	)
//
//	v := value.Struct("Person",
//	    value.Field{Name: "name", Value: value.String("Alice")},
//	    value.Field{Name: "age", Value: value.Uint32(30)},
//	)
//
// # Borrowed data
//
// Strings and byte sequences produced by a decoder are borrowed by default: they
// share memory with the decoded input (IsBorrowed reports true). Such values are
// valid as long as the input is alive and unmodified. Clone returns a fully owned
// copy.
package value
