package compress

import (
	"slices"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/s2"

	"github.com/arloliu/nanobit/errs"
	"github.com/arloliu/nanobit/format"
)

// SnappyCompressor produces Snappy block format.
//
// Output is written by the Snappy-compatible s2 encoders (LevelFastest: plain,
// LevelDefault: better, LevelBest: best) and read back by the reference Snappy
// decoder, so any Snappy block decoder can read it.
type SnappyCompressor struct {
	level format.CompressionLevel
}

var (
	_ Codec            = (*SnappyCompressor)(nil)
	_ AppendCompressor = (*SnappyCompressor)(nil)
)

// NewSnappyCompressor creates a new Snappy compressor.
func NewSnappyCompressor(level format.CompressionLevel) SnappyCompressor {
	return SnappyCompressor{level: level}
}

// Compress compresses data into one Snappy block.
func (c SnappyCompressor) Compress(data []byte) ([]byte, error) {
	return c.AppendCompress(nil, data)
}

// AppendCompress appends the Snappy block of data to dst.
func (c SnappyCompressor) AppendCompress(dst, data []byte) ([]byte, error) {
	bound := s2.MaxEncodedLen(len(data))
	if bound < 0 {
		return nil, errs.WrapCompressionError(s2.ErrTooLarge, "snappy compress")
	}

	dst = slices.Grow(dst, bound)
	scratch := dst[len(dst) : len(dst)+bound]

	var block []byte
	switch c.level {
	case format.LevelFastest:
		block = s2.EncodeSnappy(scratch, data)
	case format.LevelBest:
		block = s2.EncodeSnappyBest(scratch, data)
	default:
		block = s2.EncodeSnappyBetter(scratch, data)
	}

	// block starts at scratch[0], so this only extends dst
	return append(dst, block...), nil
}

// Decompress decodes one Snappy block.
func (c SnappyCompressor) Decompress(data []byte) ([]byte, error) {
	n, err := snappy.DecodedLen(data)
	if err != nil {
		return nil, errs.WrapCompressionError(err, "snappy decompress")
	}
	if n > MaxDecompressedSize {
		return nil, errs.NewCompressionError("snappy: declared size %d exceeds limit", n)
	}

	out, err := snappy.Decode(make([]byte, n), data)
	if err != nil {
		return nil, errs.WrapCompressionError(err, "snappy decompress")
	}

	return out, nil
}
