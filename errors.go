package datgo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/datgo/blobstore"
	"github.com/hupe1980/datgo/config"
	"github.com/hupe1980/datgo/filter"
	"github.com/hupe1980/datgo/store"
)

var (
	// ErrNotFound is returned when a snapshot or referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPrecondition is returned when an operation runs on a store in the
	// wrong state (e.g. not bucketed by machine).
	ErrPrecondition = errors.New("precondition failed")

	// ErrInvalidArgument is returned for malformed filters and profiles.
	ErrInvalidArgument = errors.New("invalid argument")
)

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, blobstore.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	var invalid *store.ErrInvalidID
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	if errors.Is(err, store.ErrNotBucketed) || errors.Is(err, store.ErrWrongBucketing) {
		return fmt.Errorf("%w: %w", ErrPrecondition, err)
	}

	if errors.Is(err, filter.ErrInvalidFilter) || errors.Is(err, config.ErrInvalidProfile) {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return err
}
