package compress

import "github.com/arloliu/nanobit/format"

// ZstdCompressor produces a single Zstandard frame.
//
// The default build uses the pure Go klauspost/compress encoder with pooled
// encoders per level (SpeedFastest, SpeedDefault, SpeedBestCompression). Building
// with the gozstd tag switches to the cgo libzstd binding at levels 1, 3 and 22.
// Both produce standard frames, so either build reads the other's output.
type ZstdCompressor struct {
	level format.CompressionLevel
}

var (
	_ Codec            = (*ZstdCompressor)(nil)
	_ AppendCompressor = (*ZstdCompressor)(nil)
)

// NewZstdCompressor creates a new Zstd compressor.
//
// Example:
//
//	compressor := NewZstdCompressor(format.LevelBest)
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor(level format.CompressionLevel) ZstdCompressor {
	return ZstdCompressor{level: level}
}

// Compress compresses data into one Zstandard frame.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return c.AppendCompress(nil, data)
}
