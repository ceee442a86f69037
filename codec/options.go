package codec

import (
	"fmt"

	"github.com/arloliu/nanobit/buffer"
	"github.com/arloliu/nanobit/internal/options"
)

const (
	// DefaultMaxLength bounds sequence and map counts read by a Decoder.
	DefaultMaxLength = 1 << 24
	// DefaultMaxDepth bounds how deeply nested values a Decoder accepts.
	DefaultMaxDepth = 512

	// maxZeroSizedElems bounds collections whose elements encode to zero bytes.
	// Such counts are not limited by the input size.
	maxZeroSizedElems = 1 << 16
)

// EncoderConfig holds Encoder settings.
type EncoderConfig struct {
	initialCapacity int
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

func newEncoderConfig(opts ...EncoderOption) (*EncoderConfig, error) {
	cfg := &EncoderConfig{initialCapacity: buffer.DefaultCapacity}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithInitialCapacity sets the initial output buffer capacity in bytes.
// Default is 8192. The buffer grows as needed.
func WithInitialCapacity(n int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if n <= 0 {
			return fmt.Errorf("initial capacity must be positive, got %d", n)
		}
		c.initialCapacity = n

		return nil
	})
}

// DecoderConfig holds Decoder settings.
type DecoderConfig struct {
	ownedCopies bool
	maxLength   int
	maxDepth    int
}

// DecoderOption configures a Decoder.
type DecoderOption = options.Option[*DecoderConfig]

func newDecoderConfig(opts ...DecoderOption) (*DecoderConfig, error) {
	cfg := &DecoderConfig{
		maxLength: DefaultMaxLength,
		maxDepth:  DefaultMaxDepth,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithOwnedCopies makes the Decoder copy every string and byte sequence instead of
// returning views into the input. Use it when decoded values outlive the input.
func WithOwnedCopies() DecoderOption {
	return options.NoError(func(c *DecoderConfig) {
		c.ownedCopies = true
	})
}

// WithMaxLength bounds the element count of decoded sequences and maps.
// Larger counts fail with ErrInvalidFormat. Default is DefaultMaxLength.
func WithMaxLength(n int) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if n <= 0 {
			return fmt.Errorf("max length must be positive, got %d", n)
		}
		c.maxLength = n

		return nil
	})
}

// WithMaxDepth bounds value nesting. Deeper input fails with ErrInvalidFormat.
// Default is DefaultMaxDepth.
func WithMaxDepth(n int) DecoderOption {
	return options.New(func(c *DecoderConfig) error {
		if n <= 0 {
			return fmt.Errorf("max depth must be positive, got %d", n)
		}
		c.maxDepth = n

		return nil
	})
}
