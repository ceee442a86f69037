package codec

import (
	"fmt"

	"github.com/arloliu/nanobit/buffer"
	"github.com/arloliu/nanobit/errs"
)

const (
	// Magic identifies nanobit payloads. It is the first four bytes of every envelope.
	Magic = "NANO"
	// Version is the envelope version written by this build.
	Version uint8 = 1
	// EnvelopeSize is the size of the fixed header: magic plus version byte.
	EnvelopeSize = len(Magic) + 1
)

// IsSupportedVersion reports whether this build decodes envelopes of version v.
func IsSupportedVersion(v uint8) bool {
	return v == Version
}

// AppendEnvelope appends the magic and current version to dst.
func AppendEnvelope(dst []byte) []byte {
	dst = append(dst, Magic...)
	return append(dst, Version)
}

// WriteEnvelope writes the magic and current version to wb.
func WriteEnvelope(wb *buffer.WriteBuffer) {
	var hdr [EnvelopeSize]byte
	_, _ = wb.Write(AppendEnvelope(hdr[:0]))
}

// DecodeEnvelope validates the envelope at the cursor of rb and consumes it.
//
// The magic is compared byte-for-byte against whatever input is available, so
// foreign data is rejected even when it is shorter than an envelope. On error the
// cursor does not move.
//
// Parameters:
//   - rb: Read buffer positioned at the start of an encoded payload
//
// Returns:
//   - uint8: Envelope version
//   - error: ErrInvalidFormat on a magic mismatch, ErrTruncated if the input ends
//     inside a matching envelope, *errs.UnsupportedVersionError for an unknown version
func DecodeEnvelope(rb *buffer.ReadBuffer) (uint8, error) {
	avail := rb.Unread()

	n := min(len(avail), len(Magic))
	if string(avail[:n]) != Magic[:n] {
		return 0, fmt.Errorf("%w: bad magic % x", errs.ErrInvalidFormat, avail[:n])
	}

	if len(avail) < EnvelopeSize {
		return 0, fmt.Errorf("%w: envelope needs %d bytes, have %d", errs.ErrTruncated, EnvelopeSize, len(avail))
	}

	version := avail[len(Magic)]
	if !IsSupportedVersion(version) {
		return 0, &errs.UnsupportedVersionError{Found: version}
	}

	if err := rb.Skip(EnvelopeSize); err != nil {
		return 0, err
	}

	return version, nil
}

// IsSerialized reports whether data starts with a valid envelope.
//
// It never modifies data and never returns an error: empty input, a short header,
// a magic mismatch and an unsupported version all report false.
func IsSerialized(data []byte) bool {
	_, err := DecodeEnvelope(buffer.NewReadBuffer(data))
	return err == nil
}
