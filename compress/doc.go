// Package compress provides the compression layer for nanobit payloads.
//
// Every output of Compress starts with a one-byte format tag, so Decompress needs
// nothing but the bytes:
//
//	0x01  LZ4     4-byte little-endian uncompressed length, then one LZ4 block
//	0x02  Zstd    one Zstandard frame
//	0x03  Snappy  one Snappy block
//	0x04  Custom  reserved; compressing or decompressing it fails
//
// Any other tag, and empty input, fails with a CompressionError reporting an
// unknown format.
//
// # Levels
//
// format.CompressionLevel is an ordinal preference. Each backend maps it to its
// own settings:
//
//	Level    LZ4             Zstd (pure / gozstd)      Snappy (s2 encoder)
//	Fastest  fast block      SpeedFastest / 1          EncodeSnappy
//	Default  fast block      SpeedDefault / 3          EncodeSnappyBetter
//	Best     HC, level 9     SpeedBestCompression / 22 EncodeSnappyBest
//
// The level is not recorded in the output; decompression does not need it.
//
// # Usage
//
//	compressed, err := compress.Compress(data, format.CompressionZstd, format.LevelBest)
//	if err != nil {
//	    return err
//	}
//
//	original, err := compress.Decompress(compressed)
//
// Backends are also available directly through CreateCodec, which returns a Codec
// that reads and writes the untagged backend format.
//
// # Build tags
//
// The default build is pure Go. Building with -tags gozstd switches Zstd to the
// cgo libzstd binding (github.com/valyala/gozstd).
//
// # Thread Safety
//
// All functions and codecs are safe for concurrent use. Encoder and decoder state
// is pooled internally.
//
// # Error Handling
//
// Every failure matches errs.ErrCompression. Backend errors are kept as the cause
// of the CompressionError and are reachable through errors.Unwrap.
package compress
