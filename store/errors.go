package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotBucketed is returned when an operation needs a bucketed store.
	ErrNotBucketed = errors.New("store is not bucketed")

	// ErrWrongBucketing is returned when an operation needs a different active key.
	ErrWrongBucketing = errors.New("store is bucketed by the wrong key")
)

// ErrInvalidID indicates an identifier that is out of range or already removed.
type ErrInvalidID struct {
	Kind string
	ID   int64
}

func (e *ErrInvalidID) Error() string {
	return fmt.Sprintf("invalid %s id: %d", e.Kind, e.ID)
}

func invalidItem(id int64) error    { return &ErrInvalidID{Kind: "item", ID: id} }
func invalidMachine(id int64) error { return &ErrInvalidID{Kind: "machine", ID: id} }
func invalidSource(id int64) error  { return &ErrInvalidID{Kind: "source", ID: id} }

// RequireKey returns an error unless the store is bucketed by key.
func (s *Store) RequireKey(key ItemKey) error {
	if s.bucketedBy == KeyNone {
		return ErrNotBucketed
	}
	if s.bucketedBy != key {
		return fmt.Errorf("%w: have %s, need %s", ErrWrongBucketing, s.bucketedBy, key)
	}
	return nil
}
