package nanobit_test

import (
	"fmt"

	"github.com/arloliu/nanobit"
	"github.com/arloliu/nanobit/format"
	"github.com/arloliu/nanobit/value"
)

func ExampleEncode() {
	data, err := nanobit.Encode(value.Seq(value.String("a"), value.String("b")))
	if err != nil {
		panic(err)
	}

	fmt.Printf("%d bytes: %x\n", len(data), data)
	fmt.Println(nanobit.IsSerialized(data))
	// Output:
	// 10 bytes: 4e414e4f010201610162
	// true
}

func ExampleDecode() {
	data, _ := nanobit.Encode(value.Struct("Point",
		value.Field{Name: "x", Value: value.Int32(3)},
		value.Field{Name: "y", Value: value.Int32(-4)},
	))

	pointType := value.StructOf("Point",
		value.FieldType{Name: "x", Type: value.Prim(value.KindInt32)},
		value.FieldType{Name: "y", Type: value.Prim(value.KindInt32)},
	)

	v, err := nanobit.Decode(data, pointType)
	if err != nil {
		panic(err)
	}

	y, _ := v.Field("y")
	fmt.Println(y.Int())
	// Output: -4
}

func ExampleCompress() {
	data, _ := nanobit.Encode(value.Bytes(make([]byte, 4096)))

	compressed, err := nanobit.Compress(data, format.CompressionSnappy, format.LevelDefault)
	if err != nil {
		panic(err)
	}

	original, err := nanobit.Decompress(compressed)
	if err != nil {
		panic(err)
	}

	fmt.Println(format.CompressionFormat(compressed[0]), len(compressed) < len(data), len(original) == len(data))
	// Output: Snappy true true
}
