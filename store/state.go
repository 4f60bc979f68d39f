package store

import (
	"fmt"

	"github.com/hupe1980/datgo/field"
	"github.com/hupe1980/datgo/model"
)

// State is the serializable form of a store. Removed entities are kept as
// nil slots so identifiers survive a round trip.
type State struct {
	Sources    []*model.Source  `json:"sources"`
	Machines   []*model.Machine `json:"machines"`
	Items      []*model.Item    `json:"items"`
	BucketedBy ItemKey          `json:"bucketed_by"`
	Lowercase  bool             `json:"lowercase,omitempty"`
	NoRename   bool             `json:"no_rename,omitempty"`
}

// State exports the store. The returned value shares entities with the
// store; serialize it before mutating the store again.
func (s *Store) State() *State {
	return &State{
		Sources:    s.sources,
		Machines:   s.machines,
		Items:      s.items,
		BucketedBy: s.bucketedBy,
		Lowercase:  s.opts.lowercase,
		NoRename:   s.opts.noRename,
	}
}

// FromState rebuilds a store from an exported state. Every present item must
// reference a present machine and source.
func FromState(st *State) (*Store, error) {
	s := New(WithLowercaseKeys(st.Lowercase), WithNoRename(st.NoRename))
	s.sources = st.Sources
	s.machines = st.Machines
	s.items = st.Items

	for id, m := range s.machines {
		if m == nil {
			continue
		}
		if m.Fields == nil {
			m.Fields = field.Document{}
		}
		s.liveMachines.Add(uint64(id))
	}

	for id, item := range s.items {
		if item == nil {
			continue
		}
		if _, ok := s.GetMachine(item.MachineID); !ok {
			return nil, fmt.Errorf("item %d: %w", id, invalidMachine(item.MachineID))
		}
		if _, ok := s.GetSource(item.SourceID); !ok {
			return nil, fmt.Errorf("item %d: %w", id, invalidSource(item.SourceID))
		}
		if item.Fields == nil {
			item.Fields = field.Document{}
		}
		s.liveItems.Add(uint64(id))
		s.attach(model.ItemID(id), item.MachineID)
	}

	s.RecalculateStats()
	s.BucketBy(st.BucketedBy)
	return s, nil
}
