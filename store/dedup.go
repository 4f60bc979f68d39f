package store

import "github.com/hupe1980/datgo/model"

// MarkDuplicates walks every bucket and keeps the first item of each
// duplicate group. Later members get the removal mark, and the kept item
// records how it was duplicated. Nodump items are never grouped. It returns
// the identifiers it marked.
//
// Under a hash key the "" bucket holds items without that hash and is not
// treated as a group.
func (s *Store) MarkDuplicates() []model.ItemID {
	var marked []model.ItemID
	for _, name := range s.BucketKeys() {
		if name == "" && s.bucketedBy.IsHash() {
			continue
		}
		marked = append(marked, s.markBucketDuplicates(name)...)
	}
	return marked
}

func (s *Store) markBucketDuplicates(name string) []model.ItemID {
	var (
		kept   []*model.Item
		marked []model.ItemID
	)

	for _, e := range s.GetItemsForBucket(name, true) {
		if e.Item.Status() == model.StatusNoDump {
			continue
		}

		source, _ := s.GetSource(e.Item.SourceID)
		dupeOf := -1
		var dupe model.DupeType
		for i, k := range kept {
			keptSource, _ := s.GetSource(k.SourceID)
			if d := s.GetDuplicateStatus(k, keptSource, e.Item, source); d.IsDupe() {
				dupeOf, dupe = i, d
				break
			}
		}

		if dupeOf < 0 {
			kept = append(kept, e.Item)
			continue
		}

		kept[dupeOf].DupeType |= dupe
		e.Item.Removed = true
		e.Item.DupeType = dupe
		marked = append(marked, e.ID)
	}
	return marked
}

// Deduplicate keeps one representative per duplicate group in every bucket,
// physically deletes the rest and recomputes statistics. Items marked by
// earlier filters are left for ClearMarked. It returns the number of items
// deleted; a second call deletes nothing.
func (s *Store) Deduplicate() int {
	marked := s.MarkDuplicates()
	for _, id := range marked {
		_ = s.RemoveItem(id)
	}
	s.RecalculateStats()
	return len(marked)
}
