package config

import (
	"errors"
	"fmt"

	"github.com/hupe1980/datgo/filter"
	"github.com/hupe1980/datgo/snapshot"
	"github.com/hupe1980/datgo/store"
)

// ErrInvalidProfile is wrapped by every validation failure.
var ErrInvalidProfile = errors.New("invalid profile")

// Validate ensures the profile is usable.
func (p *Profile) Validate() error {
	if err := p.validateDedup(); err != nil {
		return err
	}
	if err := p.validateFilters(); err != nil {
		return err
	}
	if p.OneGamePerRegion && len(p.Regions) == 0 {
		return fmt.Errorf("%w: one_game_per_region requires regions", ErrInvalidProfile)
	}
	if _, err := snapshot.ParseCompression(p.Compression); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	return nil
}

func (p *Profile) validateDedup() error {
	switch p.Dedup {
	case DedupNone, DedupGame:
		return nil
	case DedupFull:
		key, ok := store.ParseItemKey(p.DedupKey)
		if !ok || !key.IsHash() {
			return fmt.Errorf("%w: dedup_key %q is not a hash", ErrInvalidProfile, p.DedupKey)
		}
		return nil
	default:
		return fmt.Errorf("%w: dedup must be none, full or game, got %q", ErrInvalidProfile, p.Dedup)
	}
}

func (p *Profile) validateFilters() error {
	if _, err := filter.ParseRunner(p.Filters); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}
	return nil
}

// Runner builds the filter runner for the profile's filters.
func (p *Profile) Runner() (*filter.Runner, error) {
	return filter.ParseRunner(p.Filters)
}

// DedupItemKey returns the bucketing key used for deduplication.
func (p *Profile) DedupItemKey() store.ItemKey {
	switch p.Dedup {
	case DedupFull:
		key, _ := store.ParseItemKey(p.DedupKey)
		return key
	case DedupGame:
		return store.KeyMachine
	default:
		return store.KeyNone
	}
}

// SnapshotCompression returns the parsed compression setting.
func (p *Profile) SnapshotCompression() snapshot.Compression {
	c, _ := snapshot.ParseCompression(p.Compression)
	return c
}
