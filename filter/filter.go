package filter

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hupe1980/datgo/field"
	"github.com/hupe1980/datgo/internal/textutil"
	"github.com/hupe1980/datgo/model"
)

// Target values besides item type names.
const (
	TargetMachine = model.PrefixMachine
	TargetItem    = model.PrefixItem
)

// Key is a field path: the target it resolves against and the field name.
// Nested sub-records are addressed with further dots ("rom.info.name").
type Key struct {
	Target string
	Field  string
}

func (k Key) String() string {
	return k.Target + "." + k.Field
}

// ParseKey splits a field path and validates its target.
func ParseKey(path string) (Key, error) {
	target, name, ok := strings.Cut(strings.ToLower(strings.TrimSpace(path)), ".")
	if !ok || target == "" || name == "" {
		return Key{}, &ErrParse{Input: path, Reason: "expected <target>.<field>"}
	}

	switch target {
	case TargetMachine, TargetItem:
	default:
		t, ok := model.ParseItemType(target)
		if !ok {
			return Key{}, &ErrParse{Input: path, Reason: fmt.Sprintf("unknown target %q", target)}
		}
		target = string(t)
	}
	return Key{Target: target, Field: name}, nil
}

// Filter is one predicate: a field path, an operation and the value the
// field is compared with.
type Filter struct {
	Key       Key
	Operation Operation
	Value     string

	re *regexp.Regexp
}

// New builds a filter. A value wrapped in slashes is compiled as a regular
// expression; regular expressions support only equality operations.
func New(path string, op Operation, value string) (*Filter, error) {
	key, err := ParseKey(path)
	if err != nil {
		return nil, err
	}
	if op == OpNone {
		return nil, &ErrParse{Input: path, Reason: "missing operation"}
	}

	f := &Filter{Key: key, Operation: op, Value: value}

	if len(value) >= 2 && strings.HasPrefix(value, "/") && strings.HasSuffix(value, "/") {
		if op != OpEquals && op != OpNotEquals {
			return nil, &ErrParse{Input: f.String(), Reason: "regular expressions support only == and !="}
		}
		re, err := regexp.Compile(value[1 : len(value)-1])
		if err != nil {
			return nil, &ErrParse{Input: f.String(), Reason: err.Error()}
		}
		f.re = re
	}
	return f, nil
}

// Parse reads a filter expression such as "rom.crc!=deadbeef".
func Parse(expr string) (*Filter, error) {
	idx, token, op := -1, "", OpNone
	for i := 0; i < len(expr) && idx < 0; i++ {
		for _, o := range operators {
			if strings.HasPrefix(expr[i:], o.token) {
				idx, token, op = i, o.token, o.op
				break
			}
		}
	}
	if idx < 0 {
		return nil, &ErrParse{Input: expr, Reason: "missing operation"}
	}

	f, err := New(expr[:idx], op, strings.TrimSpace(expr[idx+len(token):]))
	if err != nil {
		var pe *ErrParse
		if errors.As(err, &pe) {
			pe.Input = expr
		}
		return nil, err
	}
	return f, nil
}

// String renders the filter in the form Parse accepts.
func (f *Filter) String() string {
	return f.Key.String() + f.Operation.String() + f.Value
}

// IsRegex reports whether the value is a regular expression.
func (f *Filter) IsRegex() bool {
	return f.re != nil
}

// Matches reports whether doc satisfies the filter.
//
// An absent field behaves like an empty one: it equals only an empty value
// (or a false boolean) and never satisfies an ordering.
func (f *Filter) Matches(doc field.Document) bool {
	v, ok := lookup(doc, f.Key.Field)
	if ok && v.IsZero() {
		ok = false
	}

	if f.re != nil {
		text := ""
		if ok {
			text = v.Text()
		}
		return f.re.MatchString(text) == (f.Operation == OpEquals)
	}

	switch f.Operation {
	case OpEquals:
		return f.equal(v, ok)
	case OpNotEquals:
		return !f.equal(v, ok)
	}

	if !ok {
		return false
	}
	c := f.compare(v)
	switch f.Operation {
	case OpGreaterThan:
		return c > 0
	case OpGreaterThanOrEqual:
		return c >= 0
	case OpLessThan:
		return c < 0
	case OpLessThanOrEqual:
		return c <= 0
	default:
		return false
	}
}

func (f *Filter) equal(v field.Value, present bool) bool {
	if !present {
		if b, ok := parseBool(f.Value); ok {
			return !b
		}
		return f.Value == ""
	}

	switch v.Kind {
	case field.KindInt, field.KindFloat:
		if n, err := strconv.ParseFloat(f.Value, 64); err == nil {
			return asFloat(v) == n
		}
	case field.KindBool:
		if b, ok := parseBool(f.Value); ok {
			return v.B == b
		}
	}
	return textutil.EqualFold(v.Text(), f.Value)
}

// compare orders the field value against the filter value, numerically when
// both sides are numbers.
func (f *Filter) compare(v field.Value) int {
	want, errWant := strconv.ParseFloat(f.Value, 64)
	if errWant == nil {
		have, ok := numeric(v)
		if ok {
			switch {
			case have < want:
				return -1
			case have > want:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(textutil.Fold(v.Text()), textutil.Fold(f.Value))
}

func lookup(doc field.Document, path string) (field.Value, bool) {
	for {
		name, rest, nested := strings.Cut(path, ".")
		v, ok := doc[name]
		if !ok {
			// Keys may themselves contain dots.
			v, ok = doc[path]
			return v, ok
		}
		if !nested {
			return v, true
		}
		rec, isRecord := v.AsRecord()
		if !isRecord {
			return field.Value{}, false
		}
		doc, path = rec, rest
	}
}

func numeric(v field.Value) (float64, bool) {
	switch v.Kind {
	case field.KindInt, field.KindFloat:
		return asFloat(v), true
	case field.KindString:
		n, err := strconv.ParseFloat(v.Text(), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func asFloat(v field.Value) float64 {
	if v.Kind == field.KindInt {
		return float64(v.I64)
	}
	return v.F64
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, true
	case "no", "false", "0":
		return false, true
	default:
		return false, false
	}
}
