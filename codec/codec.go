// Package codec encodes snapshot payloads.
//
// A snapshot records the name of its codec in the header and is decoded with
// whatever codec is registered under that name. Keep a codec registered for as
// long as snapshots written with it need to load.
package codec

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

// ErrDuplicate is returned when a codec name is registered twice.
var ErrDuplicate = errors.New("codec: name already registered")

// Codec converts values to bytes and back. A Codec is shared between
// goroutines.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

var (
	mu       sync.RWMutex
	registry = map[string]Codec{}
)

func init() {
	if err := Register(JSON{}); err != nil {
		panic(err)
	}
}

// Register makes c available to ByName under c.Name().
func Register(c Codec) error {
	if c == nil || c.Name() == "" {
		return errors.New("codec: register: empty name")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, ok := registry[c.Name()]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, c.Name())
	}
	registry[c.Name()] = c
	return nil
}

// ByName returns the codec registered under name.
func ByName(name string) (Codec, bool) {
	mu.RLock()
	defer mu.RUnlock()

	c, ok := registry[name]
	return c, ok
}

// Names lists the registered codec names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	return slices.Sorted(maps.Keys(registry))
}
