package field

import (
	"sort"
	"strings"
)

// Document is a set of named, typed fields.
type Document map[string]Value

// Clone creates a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}

	clone := make(Document, len(d))
	for k, v := range d {
		clone[k] = v.clone()
	}
	return clone
}

// Get returns the value stored under key, or an invalid Value.
func (d Document) Get(key string) (Value, bool) {
	v, ok := d[key]
	return v, ok
}

// GetString returns the string stored under key.
// Non-string values are rendered with Value.Text.
func (d Document) GetString(key string) string {
	v, ok := d[key]
	if !ok {
		return ""
	}
	if s, ok := v.AsString(); ok {
		return s
	}
	return v.Text()
}

// GetInt returns the integer stored under key.
func (d Document) GetInt(key string) (int64, bool) {
	v, ok := d[key]
	if !ok {
		return 0, false
	}
	return v.AsInt64()
}

// GetBool returns the boolean stored under key; absent means false.
func (d Document) GetBool(key string) bool {
	v, ok := d[key]
	if !ok {
		return false
	}
	b, _ := v.AsBool()
	return b
}

// Has reports whether key holds a non-empty value.
func (d Document) Has(key string) bool {
	v, ok := d[key]
	return ok && !v.IsZero()
}

// SetString stores a string value; an empty string removes the key.
func (d Document) SetString(key, value string) {
	if value == "" {
		delete(d, key)
		return
	}
	d[key] = String(value)
}

// Key returns a stable string representation of the whole document.
func (d Document) Key() string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('\x1e')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(d[k].Key())
	}
	return sb.String()
}
