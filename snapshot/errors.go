package snapshot

import (
	"errors"
	"fmt"
)

var (
	// ErrCorrupt is returned when a snapshot fails structural or checksum checks.
	ErrCorrupt = errors.New("snapshot: corrupt")

	// ErrUnsupportedVersion is returned for snapshots written by a newer format.
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")

	// ErrUnknownCodec is returned when the header names a codec that is not registered.
	ErrUnknownCodec = errors.New("snapshot: unknown codec")
)

// ChecksumError is returned when the trailing CRC does not match.
type ChecksumError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("snapshot: checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

// Unwrap makes errors.Is(err, ErrCorrupt) hold.
func (e *ChecksumError) Unwrap() error {
	return ErrCorrupt
}

func corrupt(reason string) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, reason)
}
