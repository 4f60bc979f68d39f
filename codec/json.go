package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Field values carry their kind explicitly, so a store state survives the
// round trip without float/int confusion.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used for new snapshots.
var Default Codec = JSON{}
