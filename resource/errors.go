package resource

import "fmt"

// ErrMemoryLimit is returned when a single reservation can never fit.
type ErrMemoryLimit struct {
	Requested int64
	Limit     int64
}

func (e *ErrMemoryLimit) Error() string {
	return fmt.Sprintf("resource: reservation of %d bytes exceeds limit of %d", e.Requested, e.Limit)
}
