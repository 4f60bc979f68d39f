package field

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unique"
)

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindNull represents a null value.
	KindNull
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
	// KindString represents a string value.
	KindString
	// KindBool represents a boolean value.
	KindBool
	// KindArray represents an array value.
	KindArray
	// KindRecord represents a nested sub-record.
	KindRecord
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindArray:
		return "array"
	case KindRecord:
		return "record"
	default:
		return "invalid"
	}
}

// Value is a small typed value used for item, machine and source fields.
//
// Strings are interned: DAT files repeat the same machine names, statuses and
// region tokens many thousands of times.
//
// NOTE: This is also used for snapshots; keep it stable.
type Value struct {
	Kind Kind                  `json:"k"`
	I64  int64                 `json:"i,omitempty"`
	F64  float64               `json:"f,omitempty"`
	s    unique.Handle[string] `json:"-"`
	B    bool                  `json:"b,omitempty"`
	A    []Value               `json:"a,omitempty"`
	R    Document              `json:"r,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	type Alias Value
	aux := &struct {
		S string `json:"s,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(&v),
	}
	if v.Kind == KindString {
		aux.S = v.str()
	}
	return json.Marshal(aux)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	type Alias Value
	aux := &struct {
		S string `json:"s,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(v),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if v.Kind == KindString {
		v.s = unique.Make(aux.S)
	}
	return nil
}

// Key returns a stable string representation for use in maps.
func (v Value) Key() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindInt:
		return "i:" + strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return "f:" + strconv.FormatUint(math.Float64bits(v.F64), 16)
	case KindString:
		return "s:" + v.str()
	case KindBool:
		if v.B {
			return "b:1"
		}
		return "b:0"
	case KindArray:
		if len(v.A) == 0 {
			return "a:"
		}
		parts := make([]string, len(v.A))
		for i := range v.A {
			parts[i] = v.A[i].Key()
		}
		return "a:" + strings.Join(parts, "\x1f")
	case KindRecord:
		return "r:" + v.R.Key()
	default:
		return "invalid"
	}
}

// Text renders the value the way a DAT writer would print it.
// Null and invalid values render as the empty string.
func (v Value) Text() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.F64, 'f', -1, 64)
	case KindString:
		return v.str()
	case KindBool:
		if v.B {
			return "yes"
		}
		return "no"
	case KindArray:
		parts := make([]string, len(v.A))
		for i := range v.A {
			parts[i] = v.A[i].Text()
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}

// IsZero reports whether the value is absent: invalid, null or an empty string.
func (v Value) IsZero() bool {
	switch v.Kind {
	case KindInvalid, KindNull:
		return true
	case KindString:
		return v.str() == ""
	default:
		return false
	}
}

// str returns the interned string. A Value built as a struct literal has a
// zero handle, which reads as "".
func (v Value) str() string {
	if v.s == (unique.Handle[string]{}) {
		return ""
	}
	return v.s.Value()
}

// Equal reports whether two values are identical in kind and content.
func (v Value) Equal(o Value) bool {
	return v.Key() == o.Key()
}

// AsInt64 returns the int64 value if Kind is KindInt.
func (v Value) AsInt64() (int64, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.I64, true
}

// AsFloat64 returns the float64 value if Kind is KindFloat.
func (v Value) AsFloat64() (float64, bool) {
	if v.Kind != KindFloat {
		return 0, false
	}
	return v.F64, true
}

// AsString returns the string value if Kind is KindString.
func (v Value) AsString() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.str(), true
}

// AsBool returns the boolean value if Kind is KindBool.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.B, true
}

// AsArray returns the array value if Kind is KindArray.
func (v Value) AsArray() ([]Value, bool) {
	if v.Kind != KindArray {
		return nil, false
	}
	return v.A, true
}

// AsRecord returns the nested document if Kind is KindRecord.
func (v Value) AsRecord() (Document, bool) {
	if v.Kind != KindRecord {
		return nil, false
	}
	return v.R, true
}

// Null returns a null Value.
func Null() Value { return Value{Kind: KindNull} }

// Int returns an int64 Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// String returns a string Value.
func String(v string) Value { return Value{Kind: KindString, s: unique.Make(v)} }

// Bool returns a boolean Value.
func Bool(v bool) Value { return Value{Kind: KindBool, B: v} }

// Array returns an array Value.
func Array(v []Value) Value { return Value{Kind: KindArray, A: v} }

// Record returns a nested sub-record Value.
func Record(d Document) Value { return Value{Kind: KindRecord, R: d} }

// clone creates a deep copy of a Value, including nested arrays and records.
func (v Value) clone() Value {
	switch v.Kind {
	case KindArray:
		if len(v.A) == 0 {
			return v
		}
		arrayCopy := make([]Value, len(v.A))
		for i := range v.A {
			arrayCopy[i] = v.A[i].clone()
		}
		v.A = arrayCopy
		return v
	case KindRecord:
		v.R = v.R.Clone()
		return v
	default:
		return v
	}
}
