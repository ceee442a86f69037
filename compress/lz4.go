package compress

import (
	"math"
	"slices"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/nanobit/endian"
	"github.com/arloliu/nanobit/errs"
	"github.com/arloliu/nanobit/format"
)

const (
	// lz4SizePrefix is the little-endian uncompressed length written before each block.
	lz4SizePrefix = 4
	// lz4MaxRatio is the largest expansion one LZ4 block byte can decode to.
	lz4MaxRatio = 255
)

// lz4CompressorPool pools lz4.Compressor instances for reuse.
// The lz4.Compressor maintains a hash table that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

var lz4HCPool = sync.Pool{
	New: func() any {
		return &lz4.CompressorHC{Level: lz4.Level9}
	},
}

// LZ4Compressor produces a 4-byte little-endian uncompressed length followed by
// one LZ4 block.
//
// LevelFastest and LevelDefault use the fast block compressor; LevelBest uses the
// high-compression compressor at level 9.
type LZ4Compressor struct {
	level format.CompressionLevel
}

var (
	_ Codec            = (*LZ4Compressor)(nil)
	_ AppendCompressor = (*LZ4Compressor)(nil)
)

// NewLZ4Compressor creates a new LZ4 compressor.
//
// Parameters:
//   - level: Compression level
//
// Returns:
//   - LZ4Compressor: New LZ4 compressor instance
func NewLZ4Compressor(level format.CompressionLevel) LZ4Compressor {
	return LZ4Compressor{level: level}
}

// Compress compresses data into a size-prefixed LZ4 block.
// Empty input yields just the zero size prefix.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	return c.AppendCompress(nil, data)
}

// AppendCompress appends the size-prefixed LZ4 block of data to dst.
func (c LZ4Compressor) AppendCompress(dst, data []byte) ([]byte, error) {
	if uint64(len(data)) > math.MaxUint32 {
		return nil, errs.NewCompressionError("lz4: input of %d bytes exceeds the size prefix", len(data))
	}

	bound := lz4.CompressBlockBound(len(data))
	dst = slices.Grow(dst, lz4SizePrefix+bound)
	dst = endian.GetLittleEndianEngine().AppendUint32(dst, uint32(len(data))) //nolint:gosec
	if len(data) == 0 {
		return dst, nil
	}

	start := len(dst)
	block := dst[start : start+bound]

	var n int
	var err error
	if c.level == format.LevelBest {
		hc, _ := lz4HCPool.Get().(*lz4.CompressorHC)
		n, err = hc.CompressBlock(data, block)
		lz4HCPool.Put(hc)
	} else {
		lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
		n, err = lc.CompressBlock(data, block)
		lz4CompressorPool.Put(lc)
	}
	if err != nil {
		return nil, errs.WrapCompressionError(err, "lz4 compress")
	}

	return dst[:start+n], nil
}

// Decompress decompresses a size-prefixed LZ4 block.
//
// The declared size is checked against MaxDecompressedSize and against the most
// the block could expand to before the output buffer is allocated.
//
// Returns:
//   - []byte: Decompressed data (empty, not nil, for an empty original)
//   - error: CompressionError for a short prefix, an implausible size, or a corrupt block
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) < lz4SizePrefix {
		return nil, errs.NewCompressionError("lz4: %d bytes is too short for the size prefix", len(data))
	}

	size := uint64(endian.GetLittleEndianEngine().Uint32(data))
	block := data[lz4SizePrefix:]

	if size == 0 {
		if len(block) != 0 {
			return nil, errs.NewCompressionError("lz4: %d bytes after an empty block", len(block))
		}

		return []byte{}, nil
	}

	if size > MaxDecompressedSize || size > uint64(len(block))*lz4MaxRatio {
		return nil, errs.NewCompressionError("lz4: declared size %d is impossible for a %d-byte block", size, len(block))
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(block, buf)
	if err != nil {
		return nil, errs.WrapCompressionError(err, "lz4 decompress")
	}
	if uint64(n) != size {
		return nil, errs.NewCompressionError("lz4: block decoded to %d bytes, want %d", n, size)
	}

	return buf, nil
}
