package filter

// Operation is the comparison a filter applies.
type Operation uint8

const (
	OpNone Operation = iota
	OpEquals
	OpNotEquals
	OpGreaterThan
	OpGreaterThanOrEqual
	OpLessThan
	OpLessThanOrEqual
)

func (o Operation) String() string {
	switch o {
	case OpEquals:
		return "=="
	case OpNotEquals:
		return "!="
	case OpGreaterThan:
		return ">"
	case OpGreaterThanOrEqual:
		return ">="
	case OpLessThan:
		return "<"
	case OpLessThanOrEqual:
		return "<="
	default:
		return "none"
	}
}

// negated reports whether the operation excludes rather than selects.
func (o Operation) negated() bool {
	return o == OpNotEquals
}

// operators in match order: longer tokens first.
var operators = []struct {
	token string
	op    Operation
}{
	{"==", OpEquals},
	{"!=", OpNotEquals},
	{">=", OpGreaterThanOrEqual},
	{"<=", OpLessThanOrEqual},
	{">", OpGreaterThan},
	{"<", OpLessThan},
	{"=", OpEquals},
	{":", OpEquals},
	{"!", OpNotEquals},
}
