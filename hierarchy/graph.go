package hierarchy

import (
	"github.com/hupe1980/datgo/internal/textutil"
	"github.com/hupe1980/datgo/model"
	"github.com/hupe1980/datgo/store"
)

// set is one machine bucket of a machine-keyed store.
type set struct {
	Key      string
	ID       model.MachineID
	Machine  *model.Machine
	SourceID model.SourceID
	Source   *model.Source
}

// graph resolves machine references of a store for one operation.
type graph struct {
	st     *store.Store
	byName map[string]model.MachineID
}

func newGraph(st *store.Store) (*graph, error) {
	if err := st.RequireKey(store.KeyMachine); err != nil {
		return nil, err
	}

	g := &graph{
		st:     st,
		byName: make(map[string]model.MachineID, st.MachineCount()),
	}
	for id, m := range st.Machines() {
		name := textutil.Fold(m.Name())
		if _, ok := g.byName[name]; !ok {
			g.byName[name] = id
		}
	}
	return g, nil
}

// sets returns the current machine buckets in key order.
func (g *graph) sets() []set {
	keys := g.st.BucketKeys()
	out := make([]set, 0, len(keys))
	for _, key := range keys {
		entries := g.st.GetItemsForBucket(key, false)
		if len(entries) == 0 {
			continue
		}
		first := entries[0].Item
		m, ok := g.st.GetMachine(first.MachineID)
		if !ok {
			continue
		}
		src, _ := g.st.GetSource(first.SourceID)
		out = append(out, set{
			Key:      key,
			ID:       first.MachineID,
			Machine:  m,
			SourceID: first.SourceID,
			Source:   src,
		})
	}
	return out
}

// resolve finds the machine called name as seen from the set from. The
// returned set is keyed in from's source namespace and may hold no items.
func (g *graph) resolve(name string, from set) (set, bool) {
	if name == "" {
		return set{}, false
	}

	key := g.st.MachineKey(name, from.Source)
	if key == from.Key {
		return set{}, false
	}

	if id, m, ok := g.st.BucketMachine(key); ok {
		return set{Key: key, ID: id, Machine: m, SourceID: from.SourceID, Source: from.Source}, true
	}

	id, ok := g.byName[textutil.Fold(name)]
	if !ok || id == from.ID {
		return set{}, false
	}
	m, ok := g.st.GetMachine(id)
	if !ok {
		return set{}, false
	}
	return set{Key: key, ID: id, Machine: m, SourceID: from.SourceID, Source: from.Source}, true
}

// items returns the unmarked items of a set.
func (g *graph) items(s set) []*model.Item {
	entries := g.st.GetItemsForBucket(s.Key, true)
	out := make([]*model.Item, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Item)
	}
	return out
}

// copyInto adds copies of items to dst. With dedup set, an item equivalent
// to one already in dst, or to an earlier copy, is skipped. rename, when not
// nil, is applied to each copy before the comparison.
func (g *graph) copyInto(dst set, items []*model.Item, dedup bool, rename func(*model.Item)) (int, error) {
	have := g.items(dst)
	added := 0
	for _, item := range items {
		c := item.Clone()
		if rename != nil {
			rename(c)
		}
		if dedup && containsEquivalent(have, c) {
			continue
		}
		if _, err := g.st.AddItem(c, dst.ID, dst.SourceID, false); err != nil {
			return added, err
		}
		have = append(have, c)
		added++
	}
	return added, nil
}

// removeEquivalent deletes the items of child that have an equivalent in
// parent.
func (g *graph) removeEquivalent(child, parent set) (int, error) {
	have := g.items(parent)
	if len(have) == 0 {
		return 0, nil
	}

	removed := 0
	for _, e := range g.st.GetItemsForBucket(child.Key, true) {
		if !containsEquivalent(have, e.Item) {
			continue
		}
		if err := g.st.RemoveItem(e.ID); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func containsEquivalent(items []*model.Item, item *model.Item) bool {
	for _, it := range items {
		if model.Equivalent(it, item) {
			return true
		}
	}
	return false
}
