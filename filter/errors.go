package filter

import (
	"errors"
	"fmt"
)

// ErrInvalidFilter is returned for a malformed filter expression.
var ErrInvalidFilter = errors.New("invalid filter")

// ErrParse describes why a filter expression was rejected.
//
// It unwraps to ErrInvalidFilter.
type ErrParse struct {
	Input  string
	Reason string
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("invalid filter %q: %s", e.Input, e.Reason)
}

func (e *ErrParse) Unwrap() error { return ErrInvalidFilter }
