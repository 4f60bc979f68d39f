package stats

import (
	"github.com/hupe1980/datgo/hashing"
	"github.com/hupe1980/datgo/model"
)

// DatStatistics holds running totals derived from store contents.
//
// Counts reflect physical contents: items marked for removal but not yet
// swept are still counted. RemovedCount is the number of such marked items
// as of the last full recalculation.
type DatStatistics struct {
	ItemCounts   map[model.ItemType]int64   `json:"items"`
	HashCounts   map[hashing.Type]int64     `json:"hashes"`
	StatusCounts map[model.ItemStatus]int64 `json:"statuses"`
	TotalSize    int64                      `json:"total_size"`
	MachineCount int64                      `json:"machines"`
	RemovedCount int64                      `json:"removed"`
}

// New returns empty statistics.
func New() *DatStatistics {
	return &DatStatistics{
		ItemCounts:   make(map[model.ItemType]int64),
		HashCounts:   make(map[hashing.Type]int64),
		StatusCounts: make(map[model.ItemStatus]int64),
	}
}

// AddItem adds one item to the totals.
func (s *DatStatistics) AddItem(it *model.Item) {
	s.apply(it, 1)
}

// RemoveItem subtracts one item from the totals.
func (s *DatStatistics) RemoveItem(it *model.Item) {
	s.apply(it, -1)
}

func (s *DatStatistics) apply(it *model.Item, delta int64) {
	if it == nil {
		return
	}

	s.ItemCounts[it.Type] += delta

	if size, ok := it.Size(); ok {
		s.TotalSize += delta * size
	}

	for _, t := range it.HashFields() {
		if it.Fields.Has(t.String()) {
			s.HashCounts[t] += delta
		}
	}

	if it.Type.IsHashBearing() {
		status := it.Status()
		if status == "" {
			status = model.StatusNone
		}
		s.StatusCounts[status] += delta
	}
}

// Reset zeroes every counter.
func (s *DatStatistics) Reset() {
	*s = *New()
}

// Merge adds o's totals into s.
func (s *DatStatistics) Merge(o *DatStatistics) {
	if o == nil {
		return
	}
	for k, v := range o.ItemCounts {
		s.ItemCounts[k] += v
	}
	for k, v := range o.HashCounts {
		s.HashCounts[k] += v
	}
	for k, v := range o.StatusCounts {
		s.StatusCounts[k] += v
	}
	s.TotalSize += o.TotalSize
	s.MachineCount += o.MachineCount
	s.RemovedCount += o.RemovedCount
}

// Clone returns an independent copy.
func (s *DatStatistics) Clone() *DatStatistics {
	c := New()
	c.Merge(s)
	return c
}

// TotalItems returns the number of items of every type.
func (s *DatStatistics) TotalItems() int64 {
	var n int64
	for _, v := range s.ItemCounts {
		n += v
	}
	return n
}

// Count returns the number of items of type t.
func (s *DatStatistics) Count(t model.ItemType) int64 {
	return s.ItemCounts[t]
}

// HashCount returns how many items carry hash t.
func (s *DatStatistics) HashCount(t hashing.Type) int64 {
	return s.HashCounts[t]
}

// StatusCount returns how many hash-bearing items have status st.
func (s *DatStatistics) StatusCount(st model.ItemStatus) int64 {
	return s.StatusCounts[st]
}
