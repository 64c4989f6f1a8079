package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic is returned when the input does not start with the LSDS magic.
	ErrBadMagic = errors.New("dataset: bad magic")

	// ErrUnsupportedVersion is returned for format versions this build cannot read.
	ErrUnsupportedVersion = errors.New("dataset: unsupported format version")

	// ErrChecksumMismatch is returned when the payload CRC32C does not match.
	ErrChecksumMismatch = errors.New("dataset: checksum mismatch")

	// ErrTooLarge is returned when a dataset's values would not fit the
	// configured size cap or the platform's int.
	ErrTooLarge = errors.New("dataset: too large")
)

// ErrCorrupt indicates a structurally invalid encoding.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrCorrupt struct {
	Reason string
	cause  error
}

func (e *ErrCorrupt) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("dataset: corrupt: %s: %v", e.Reason, e.cause)
	}
	return "dataset: corrupt: " + e.Reason
}

func (e *ErrCorrupt) Unwrap() error { return e.cause }
