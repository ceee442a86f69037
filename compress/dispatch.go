package compress

import (
	"github.com/arloliu/nanobit/errs"
	"github.com/arloliu/nanobit/format"
)

// TagSize is the size of the format tag that prefixes every Compress output.
const TagSize = 1

// Compress compresses data and prefixes the result with the format tag.
//
// Parameters:
//   - data: Input bytes (may be empty)
//   - f: Compression format
//   - level: Compression level
//
// Returns:
//   - []byte: Tag byte followed by the backend output
//   - error: CompressionError for Custom, an unknown format, or a backend failure
func Compress(data []byte, f format.CompressionFormat, level format.CompressionLevel) ([]byte, error) {
	codec, err := CreateCodec(f, level)
	if err != nil {
		return nil, err
	}

	dst := make([]byte, 0, TagSize+len(data)/2+64)
	dst = append(dst, byte(f))

	if ac, ok := codec.(AppendCompressor); ok {
		return ac.AppendCompress(dst, data)
	}

	out, err := codec.Compress(data)
	if err != nil {
		return nil, err
	}

	return append(dst, out...), nil
}

// CompressDefault compresses data with DefaultCompression at LevelDefault.
func CompressDefault(data []byte) ([]byte, error) {
	return Compress(data, format.DefaultCompression, format.LevelDefault)
}

// Decompress reads the format tag of data and decompresses the rest with the
// matching backend.
//
// Returns:
//   - []byte: Original bytes
//   - error: CompressionError for empty input, an unknown or reserved tag, or corrupt data
func Decompress(data []byte) ([]byte, error) {
	f, err := DetectFormat(data)
	if err != nil {
		return nil, err
	}

	codec, err := CreateCodec(f, format.LevelDefault)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(data[TagSize:])
}

// DetectFormat returns the format named by the tag byte of data.
//
// Returns:
//   - format.CompressionFormat: Format of the tag
//   - error: CompressionError for empty input or a tag that is not a known format
func DetectFormat(data []byte) (format.CompressionFormat, error) {
	if len(data) < TagSize {
		return 0, errs.NewCompressionError("unknown format: empty input")
	}

	f := format.CompressionFormat(data[0])
	if !f.Valid() {
		return 0, errs.NewCompressionError("unknown format: tag 0x%02x", data[0])
	}

	return f, nil
}
