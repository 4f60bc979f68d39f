package filter

import (
	"github.com/hupe1980/datgo/field"
	"github.com/hupe1980/datgo/model"
)

// Runner holds an ordered set of filters.
//
// Filters on the same field path form a group. Within a group an item must
// satisfy at least one selecting filter (==, >, >=, <, <=) and every
// excluding filter (!=). Across groups every group must be satisfied.
// A group whose target is another item type does not apply and passes.
type Runner struct {
	filters []*Filter
	groups  []group
	index   map[Key]int
}

type group struct {
	key     Key
	include []*Filter
	exclude []*Filter
}

// NewRunner creates a runner from filters in order.
func NewRunner(filters ...*Filter) *Runner {
	r := &Runner{index: make(map[Key]int)}
	for _, f := range filters {
		r.Add(f)
	}
	return r
}

// ParseRunner parses every expression into one runner.
func ParseRunner(exprs []string) (*Runner, error) {
	r := NewRunner()
	for _, expr := range exprs {
		f, err := Parse(expr)
		if err != nil {
			return nil, err
		}
		r.Add(f)
	}
	return r, nil
}

// Add appends a filter.
func (r *Runner) Add(f *Filter) {
	if f == nil {
		return
	}
	r.filters = append(r.filters, f)

	i, ok := r.index[f.Key]
	if !ok {
		i = len(r.groups)
		r.index[f.Key] = i
		r.groups = append(r.groups, group{key: f.Key})
	}
	if f.Operation.negated() {
		r.groups[i].exclude = append(r.groups[i].exclude, f)
	} else {
		r.groups[i].include = append(r.groups[i].include, f)
	}
}

// Filters returns the filters in insertion order.
func (r *Runner) Filters() []*Filter {
	return r.filters
}

// Len returns the number of filters.
func (r *Runner) Len() int {
	if r == nil {
		return 0
	}
	return len(r.filters)
}

// Keep reports whether an item and its machine pass every group.
func (r *Runner) Keep(item *model.Item, machine *model.Machine) bool {
	if r == nil || item == nil {
		return true
	}

	for i := range r.groups {
		g := &r.groups[i]

		var doc field.Document
		switch g.key.Target {
		case TargetMachine:
			if machine != nil {
				doc = machine.Fields
			}
		case TargetItem, string(item.Type):
			doc = item.Fields
		default:
			continue
		}

		if !g.pass(doc) {
			return false
		}
	}
	return true
}

func (g *group) pass(doc field.Document) bool {
	for _, f := range g.exclude {
		if !f.Matches(doc) {
			return false
		}
	}
	if len(g.include) == 0 {
		return true
	}
	for _, f := range g.include {
		if f.Matches(doc) {
			return true
		}
	}
	return false
}
