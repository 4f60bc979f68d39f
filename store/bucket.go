package store

import (
	"maps"
	"slices"

	"github.com/hupe1980/datgo/internal/textutil"
	"github.com/hupe1980/datgo/model"
)

// BucketedBy returns the active key.
func (s *Store) BucketedBy() ItemKey {
	return s.bucketedBy
}

// BucketBy clears the current partition and re-buckets every present item,
// including items marked for removal, under key.
func (s *Store) BucketBy(key ItemKey) {
	s.bucketedBy = key
	clear(s.buckets)
	clear(s.itemBucket)

	for id, item := range s.Items() {
		s.insertIntoBucket(id, item)
	}
}

// BucketKeys returns the names of all non-empty buckets in sorted order.
func (s *Store) BucketKeys() []string {
	return slices.Sorted(maps.Keys(s.buckets))
}

// HasBucket reports whether a bucket with that name holds any item.
func (s *Store) HasBucket(name string) bool {
	_, ok := s.buckets[name]
	return ok
}

// GetItemsForBucket returns a bucket's items in insertion order. With filter
// set, items marked for removal are left out.
func (s *Store) GetItemsForBucket(name string, filter bool) []Entry {
	ids := s.buckets[name]
	entries := make([]Entry, 0, len(ids))
	for _, id := range ids {
		item := s.items[id]
		if filter && item.Removed {
			continue
		}
		entries = append(entries, Entry{ID: id, Item: item})
	}
	return entries
}

// RemoveBucket physically deletes every item in a bucket. It reports
// whether the bucket existed.
func (s *Store) RemoveBucket(name string) bool {
	ids, ok := s.buckets[name]
	if !ok {
		return false
	}
	for _, id := range slices.Clone(ids) {
		_ = s.RemoveItem(id)
	}
	delete(s.buckets, name)
	return true
}

// BucketKeyFor computes the bucket name of an item under the active key and
// the store's key options.
func (s *Store) BucketKeyFor(item *model.Item) string {
	if item == nil {
		return ""
	}
	machine, _ := s.GetMachine(item.MachineID)
	source, _ := s.GetSource(item.SourceID)
	return BucketKey(item, machine, source, s.bucketedBy, s.opts.lowercase, s.opts.noRename)
}

// MachineKey returns the machine bucket name for a machine name as seen from
// source. The set-hierarchy engine uses it to find a parent's bucket.
func (s *Store) MachineKey(name string, source *model.Source) string {
	key := machineKey(name, source, s.opts.noRename)
	if s.opts.lowercase {
		key = textutil.Lower(key)
	}
	return key
}

// BucketMachine returns the machine shared by the items of a machine bucket.
// It resolves through the first present item; an empty bucket has no machine.
func (s *Store) BucketMachine(name string) (model.MachineID, *model.Machine, bool) {
	for _, id := range s.buckets[name] {
		item := s.items[id]
		if m, ok := s.GetMachine(item.MachineID); ok {
			return item.MachineID, m, true
		}
	}
	return model.NoID, nil, false
}

func (s *Store) insertIntoBucket(id model.ItemID, item *model.Item) {
	name := s.BucketKeyFor(item)
	s.buckets[name] = append(s.buckets[name], id)
	s.itemBucket[id] = name
}

func (s *Store) removeFromBucket(id model.ItemID) {
	name, ok := s.itemBucket[id]
	if !ok {
		return
	}
	delete(s.itemBucket, id)

	ids := s.buckets[name]
	if i := slices.Index(ids, id); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
	}
	if len(ids) == 0 {
		delete(s.buckets, name)
		return
	}
	s.buckets[name] = ids
}
