package store

import (
	"github.com/hupe1980/datgo/internal/textutil"
	"github.com/hupe1980/datgo/model"
)

// GetDuplicateStatus classifies candidate against other.
//
// Items of different types, absent items and an item compared with itself
// are never duplicates. Otherwise the comparable hashes must agree (see
// model.HashMatch); matching machine names upgrade a hash match to DupeAll.
// Equal source ordinals make the duplicate internal, different ones external.
func (s *Store) GetDuplicateStatus(candidate *model.Item, candidateSource *model.Source, other *model.Item, otherSource *model.Source) model.DupeType {
	if candidate == nil || other == nil || candidate == other {
		return 0
	}
	if candidate.Type != other.Type {
		return 0
	}
	if !model.HashMatch(candidate, other) {
		return 0
	}

	var dupe model.DupeType
	if s.sameMachineName(candidate, other) {
		dupe = model.DupeAll
	} else {
		dupe = model.DupeHash
	}

	if sourceIndex(candidateSource) == sourceIndex(otherSource) {
		dupe |= model.DupeInternal
	} else {
		dupe |= model.DupeExternal
	}
	return dupe
}

// GetDuplicates returns the present, unmarked items in the candidate's
// bucket that duplicate it.
func (s *Store) GetDuplicates(candidate *model.Item) []Entry {
	if candidate == nil {
		return nil
	}
	candidateSource, _ := s.GetSource(candidate.SourceID)

	var dupes []Entry
	for _, e := range s.GetItemsForBucket(s.BucketKeyFor(candidate), true) {
		otherSource, _ := s.GetSource(e.Item.SourceID)
		if s.GetDuplicateStatus(candidate, candidateSource, e.Item, otherSource).IsDupe() {
			dupes = append(dupes, e)
		}
	}
	return dupes
}

// HasDuplicates reports whether GetDuplicates would return anything.
func (s *Store) HasDuplicates(candidate *model.Item) bool {
	if candidate == nil {
		return false
	}
	candidateSource, _ := s.GetSource(candidate.SourceID)

	for _, e := range s.GetItemsForBucket(s.BucketKeyFor(candidate), true) {
		otherSource, _ := s.GetSource(e.Item.SourceID)
		if s.GetDuplicateStatus(candidate, candidateSource, e.Item, otherSource).IsDupe() {
			return true
		}
	}
	return false
}

func (s *Store) sameMachineName(a, b *model.Item) bool {
	ma, okA := s.GetMachine(a.MachineID)
	mb, okB := s.GetMachine(b.MachineID)
	if !okA || !okB {
		return false
	}
	return textutil.EqualFold(ma.Name(), mb.Name())
}

func sourceIndex(src *model.Source) int {
	if src == nil {
		return -1
	}
	return src.Index
}
