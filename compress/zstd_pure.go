//go:build !gozstd

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/nanobit/errs"
	"github.com/arloliu/nanobit/format"
)

// zstdDecoderPool pools zstd decoders for reuse. The klauspost decoder operates
// without allocations after warmup.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
			zstd.WithDecoderMaxMemory(MaxDecompressedSize),
		)
		if err != nil {
			// only reachable with invalid options
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

// zstdEncoderPools holds one encoder pool per format.CompressionLevel.
var zstdEncoderPools = [...]*sync.Pool{
	format.LevelDefault: newZstdEncoderPool(zstd.SpeedDefault),
	format.LevelFastest: newZstdEncoderPool(zstd.SpeedFastest),
	format.LevelBest:    newZstdEncoderPool(zstd.SpeedBestCompression),
}

func newZstdEncoderPool(level zstd.EncoderLevel) *sync.Pool {
	return &sync.Pool{
		New: func() any {
			encoder, err := zstd.NewWriter(nil,
				zstd.WithEncoderLevel(level),
				zstd.WithEncoderConcurrency(1),
				zstd.WithZeroFrames(true),
			)
			if err != nil {
				panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
			}

			return encoder
		},
	}
}

// AppendCompress appends one Zstandard frame holding data to dst.
func (c ZstdCompressor) AppendCompress(dst, data []byte) ([]byte, error) {
	level := c.level
	if int(level) >= len(zstdEncoderPools) {
		level = format.LevelDefault
	}

	pool := zstdEncoderPools[level]
	encoder, _ := pool.Get().(*zstd.Encoder)
	defer pool.Put(encoder)

	// EncodeAll is stateless, so a pooled encoder is safe here
	return encoder.EncodeAll(data, dst), nil
}

// Decompress decodes every frame in data.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errs.NewCompressionError("zstd: empty input")
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	// a failed DecodeAll leaves the decoder reusable
	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, errs.WrapCompressionError(err, "zstd decompress")
	}
	if out == nil {
		out = []byte{}
	}

	return out, nil
}
