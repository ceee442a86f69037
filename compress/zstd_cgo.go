//go:build gozstd

package compress

import (
	"github.com/valyala/gozstd"

	"github.com/arloliu/nanobit/errs"
	"github.com/arloliu/nanobit/format"
)

// zstdLevels maps format.CompressionLevel onto libzstd levels.
var zstdLevels = [...]int{
	format.LevelDefault: 3,
	format.LevelFastest: 1,
	format.LevelBest:    22,
}

// AppendCompress appends one Zstandard frame holding data to dst.
func (c ZstdCompressor) AppendCompress(dst, data []byte) ([]byte, error) {
	level := zstdLevels[format.LevelDefault]
	if int(c.level) < len(zstdLevels) {
		level = zstdLevels[c.level]
	}

	return gozstd.CompressLevel(dst, data, level), nil
}

// Decompress decodes every frame in data.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errs.NewCompressionError("zstd: empty input")
	}

	out, err := gozstd.Decompress(nil, data)
	if err != nil {
		return nil, errs.WrapCompressionError(err, "zstd decompress")
	}
	if out == nil {
		out = []byte{}
	}

	return out, nil
}
