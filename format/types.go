// Package format defines the identifiers persisted in, or selecting, nanobit byte layouts.
package format

import (
	"fmt"
	"strings"
)

type (
	// CompressionFormat identifies a compression backend. Its byte value is the
	// tag written in front of every compressed output.
	CompressionFormat uint8
	// CompressionLevel is an ordinal preference mapped onto each backend's native
	// level range. It is never persisted.
	CompressionLevel uint8
)

const (
	CompressionLZ4    CompressionFormat = 0x1 // CompressionLZ4 represents LZ4 block compression.
	CompressionZstd   CompressionFormat = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionSnappy CompressionFormat = 0x3 // CompressionSnappy represents Snappy block compression.
	CompressionCustom CompressionFormat = 0x4 // CompressionCustom is reserved for a future native algorithm.

	LevelDefault CompressionLevel = 0x0 // LevelDefault balances speed and ratio.
	LevelFastest CompressionLevel = 0x1 // LevelFastest favours speed.
	LevelBest    CompressionLevel = 0x2 // LevelBest favours ratio.
)

// DefaultCompression is the format used when the caller does not pick one.
const DefaultCompression = CompressionLZ4

// Formats returns the formats backed by an implementation, in tag order.
func Formats() []CompressionFormat {
	return []CompressionFormat{CompressionLZ4, CompressionZstd, CompressionSnappy}
}

// Levels returns every compression level.
func Levels() []CompressionLevel {
	return []CompressionLevel{LevelFastest, LevelDefault, LevelBest}
}

// Valid reports whether c is a known tag, including the reserved custom tag.
func (c CompressionFormat) Valid() bool {
	return c >= CompressionLZ4 && c <= CompressionCustom
}

func (c CompressionFormat) String() string {
	switch c {
	case CompressionLZ4:
		return "LZ4"
	case CompressionZstd:
		return "Zstd"
	case CompressionSnappy:
		return "Snappy"
	case CompressionCustom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c CompressionFormat) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown compression format 0x%02x", uint8(c))
	}

	return []byte(strings.ToLower(c.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching is case-insensitive.
func (c *CompressionFormat) UnmarshalText(text []byte) error {
	f, err := ParseCompressionFormat(string(text))
	if err != nil {
		return err
	}
	*c = f

	return nil
}

// ParseCompressionFormat parses a format name such as "lz4", "zstd" or "snappy".
func ParseCompressionFormat(s string) (CompressionFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lz4":
		return CompressionLZ4, nil
	case "zstd", "zstandard":
		return CompressionZstd, nil
	case "snappy":
		return CompressionSnappy, nil
	case "custom":
		return CompressionCustom, nil
	default:
		return 0, fmt.Errorf("unknown compression format %q", s)
	}
}

// Valid reports whether l is a known level.
func (l CompressionLevel) Valid() bool {
	return l <= LevelBest
}

func (l CompressionLevel) String() string {
	switch l {
	case LevelDefault:
		return "Default"
	case LevelFastest:
		return "Fastest"
	case LevelBest:
		return "Best"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (l CompressionLevel) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("unknown compression level %d", uint8(l))
	}

	return []byte(strings.ToLower(l.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Matching is case-insensitive.
func (l *CompressionLevel) UnmarshalText(text []byte) error {
	v, err := ParseCompressionLevel(string(text))
	if err != nil {
		return err
	}
	*l = v

	return nil
}

// ParseCompressionLevel parses "fastest", "default" or "best".
func ParseCompressionLevel(s string) (CompressionLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fastest", "fast":
		return LevelFastest, nil
	case "default", "":
		return LevelDefault, nil
	case "best":
		return LevelBest, nil
	default:
		return 0, fmt.Errorf("unknown compression level %q", s)
	}
}
