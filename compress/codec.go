package compress

import (
	"github.com/arloliu/nanobit/errs"
	"github.com/arloliu/nanobit/format"
)

// MaxDecompressedSize bounds the output of a single Decompress call.
// Payloads declaring a larger size are rejected before any allocation.
const MaxDecompressedSize = 1 << 30 // 1GiB

// Compressor compresses a whole buffer in one call.
//
// Memory management:
//   - Returned slice is newly allocated and owned by the caller
//   - Input slice is not modified
//   - Internal encoder state may be pooled and reused
type Compressor interface {
	// Compress returns the backend encoding of data, without a format tag.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same format.
//
// Implementations are safe for concurrent use.
type Decompressor interface {
	// Decompress returns the original bytes of a backend encoding.
	//
	// Corrupted or foreign input fails with an error matching errs.ErrCompression.
	// A successful result is never nil, even when empty.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// AppendCompressor is implemented by codecs that can compress directly behind
// existing bytes. The dispatcher uses it to write the format tag and the backend
// output into a single allocation.
type AppendCompressor interface {
	AppendCompress(dst, data []byte) ([]byte, error)
}

// Stats describes one compression result.
type Stats struct {
	Format         format.CompressionFormat
	OriginalSize   int64
	CompressedSize int64
}

// Ratio returns CompressedSize / OriginalSize, or 0 for empty input.
// Values below 1.0 mean the data shrank.
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage. It is negative when the
// output is larger than the input.
func (s Stats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.Ratio()) * 100.0
}

// CreateCodec returns the backend for a compression format and level.
//
// Parameters:
//   - f: Compression format (LZ4, Zstd or Snappy)
//   - level: Compression level; backends map it to their own settings
//
// Returns:
//   - Codec: Stateless codec, safe for concurrent use
//   - error: CompressionError for Custom (reserved, no backend) or an unknown format
func CreateCodec(f format.CompressionFormat, level format.CompressionLevel) (Codec, error) {
	if !level.Valid() {
		return nil, errs.NewCompressionError("unknown compression level %d", uint8(level))
	}

	switch f {
	case format.CompressionLZ4:
		return NewLZ4Compressor(level), nil
	case format.CompressionZstd:
		return NewZstdCompressor(level), nil
	case format.CompressionSnappy:
		return NewSnappyCompressor(level), nil
	case format.CompressionCustom:
		return nil, errs.NewCompressionError("%s compression has no backend", f)
	default:
		return nil, errs.NewCompressionError("unknown compression format 0x%02x", uint8(f))
	}
}
