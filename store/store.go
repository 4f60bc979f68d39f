package store

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/datgo/field"
	"github.com/hupe1980/datgo/hashing"
	"github.com/hupe1980/datgo/model"
	"github.com/hupe1980/datgo/stats"
)

// Entry pairs an item with its identifier.
type Entry struct {
	ID   model.ItemID
	Item *model.Item
}

// Store holds the items, machines and sources of one DAT plus the current
// bucket partition.
type Store struct {
	opts options

	// Indexed by identifier; removed slots are nil and never reused.
	items    []*model.Item
	machines []*model.Machine
	sources  []*model.Source

	liveItems    *roaring64.Bitmap
	liveMachines *roaring64.Bitmap

	// Live items per machine, kept in step with item associations.
	machineItems map[model.MachineID]*roaring64.Bitmap

	bucketedBy ItemKey
	buckets    map[string][]model.ItemID
	itemBucket map[model.ItemID]string

	stats *stats.DatStatistics
}

// New creates an empty store. Every item starts in the "" bucket.
func New(optFns ...Option) *Store {
	var opts options
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Store{
		opts:         opts,
		liveItems:    roaring64.New(),
		liveMachines: roaring64.New(),
		machineItems: make(map[model.MachineID]*roaring64.Bitmap),
		buckets:      make(map[string][]model.ItemID),
		itemBucket:   make(map[model.ItemID]string),
		stats:        stats.New(),
	}
}

// AddSource stores a new source and returns its identifier.
// Equal sources are not interned.
func (s *Store) AddSource(src *model.Source) model.SourceID {
	if src == nil {
		src = &model.Source{}
	}
	s.sources = append(s.sources, src)
	return model.SourceID(len(s.sources) - 1)
}

// AddMachine stores a new machine and returns its identifier.
// Equal machines are not interned.
func (s *Store) AddMachine(m *model.Machine) model.MachineID {
	if m == nil {
		m = model.NewMachine("", "")
	}
	if m.Fields == nil {
		m.Fields = field.Document{}
	}
	s.machines = append(s.machines, m)
	id := model.MachineID(len(s.machines) - 1)
	s.liveMachines.Add(uint64(id))
	s.stats.MachineCount++
	return id
}

// AddItem attaches item to a machine and source, derives default fields and
// updates statistics. Unless statsOnly is set the item is stored, bucketed
// under the active key and its new identifier returned. With statsOnly the
// item only contributes to statistics and model.NoID is returned.
func (s *Store) AddItem(item *model.Item, machineID model.MachineID, sourceID model.SourceID, statsOnly bool) (model.ItemID, error) {
	if item == nil {
		return model.NoID, invalidItem(model.NoID)
	}
	if item.Fields == nil {
		item.Fields = field.Document{}
	}
	if _, ok := s.GetMachine(machineID); !ok {
		return model.NoID, invalidMachine(machineID)
	}
	if _, ok := s.GetSource(sourceID); !ok {
		return model.NoID, invalidSource(sourceID)
	}

	item.MachineID = machineID
	item.SourceID = sourceID
	deriveDefaults(item)
	s.stats.AddItem(item)

	if statsOnly {
		return model.NoID, nil
	}

	s.items = append(s.items, item)
	id := model.ItemID(len(s.items) - 1)
	s.liveItems.Add(uint64(id))
	s.attach(id, machineID)
	s.insertIntoBucket(id, item)
	return id, nil
}

// deriveDefaults fills hash-bearing items that arrive without any hash with
// the empty-input hashes and marks them nodump. Items with hashes default to
// status none.
func deriveDefaults(item *model.Item) {
	if !item.Type.IsHashBearing() {
		return
	}

	if item.HasHashes() {
		if item.Status() == "" {
			item.SetStatus(model.StatusNone)
		}
		return
	}

	for _, t := range item.HashFields() {
		item.SetHash(t, hashing.Empty(t))
	}
	if item.Type.HasSize() {
		if _, ok := item.Size(); !ok {
			item.Fields[model.KeySize] = field.Int(0)
		}
	}
	item.SetStatus(model.StatusNoDump)
}

// RemoveItem physically deletes an item.
func (s *Store) RemoveItem(id model.ItemID) error {
	item, ok := s.GetItem(id)
	if !ok {
		return invalidItem(id)
	}

	s.removeFromBucket(id)
	s.detach(id, item.MachineID)
	s.items[id] = nil
	s.liveItems.Remove(uint64(id))
	s.stats.RemoveItem(item)
	return nil
}

func (s *Store) attach(id model.ItemID, machineID model.MachineID) {
	bm, ok := s.machineItems[machineID]
	if !ok {
		bm = roaring64.New()
		s.machineItems[machineID] = bm
	}
	bm.Add(uint64(id))
}

func (s *Store) detach(id model.ItemID, machineID model.MachineID) {
	bm, ok := s.machineItems[machineID]
	if !ok {
		return
	}
	bm.Remove(uint64(id))
	if bm.IsEmpty() {
		delete(s.machineItems, machineID)
	}
}

// MachineItems iterates the live items associated with a machine in
// identifier order.
func (s *Store) MachineItems(machineID model.MachineID) iter.Seq2[model.ItemID, *model.Item] {
	return func(yield func(model.ItemID, *model.Item) bool) {
		bm, ok := s.machineItems[machineID]
		if !ok {
			return
		}
		for _, id := range bm.ToArray() {
			if !yield(model.ItemID(id), s.items[id]) {
				return
			}
		}
	}
}

// RemoveMachine deletes a machine and every item associated with it.
func (s *Store) RemoveMachine(id model.MachineID) error {
	if _, ok := s.GetMachine(id); !ok {
		return invalidMachine(id)
	}

	for itemID := range s.MachineItems(id) {
		_ = s.RemoveItem(itemID)
	}
	delete(s.machineItems, id)

	s.machines[id] = nil
	s.liveMachines.Remove(uint64(id))
	s.stats.MachineCount--
	return nil
}

// RemapItemToMachine moves an item's machine association. When the store is
// bucketed by machine the item follows the association into its new bucket.
func (s *Store) RemapItemToMachine(itemID model.ItemID, machineID model.MachineID) error {
	item, ok := s.GetItem(itemID)
	if !ok {
		return invalidItem(itemID)
	}
	if _, ok := s.GetMachine(machineID); !ok {
		return invalidMachine(machineID)
	}

	s.detach(itemID, item.MachineID)
	item.MachineID = machineID
	s.attach(itemID, machineID)
	if s.bucketedBy == KeyMachine {
		s.removeFromBucket(itemID)
		s.insertIntoBucket(itemID, item)
	}
	return nil
}

// GetItem returns a live item.
func (s *Store) GetItem(id model.ItemID) (*model.Item, bool) {
	if id < 0 || id >= int64(len(s.items)) || s.items[id] == nil {
		return nil, false
	}
	return s.items[id], true
}

// GetMachine returns a live machine.
func (s *Store) GetMachine(id model.MachineID) (*model.Machine, bool) {
	if id < 0 || id >= int64(len(s.machines)) || s.machines[id] == nil {
		return nil, false
	}
	return s.machines[id], true
}

// GetSource returns a source.
func (s *Store) GetSource(id model.SourceID) (*model.Source, bool) {
	if id < 0 || id >= int64(len(s.sources)) || s.sources[id] == nil {
		return nil, false
	}
	return s.sources[id], true
}

// GetMachineForItem resolves the machine an item is associated with.
func (s *Store) GetMachineForItem(id model.ItemID) (*model.Machine, bool) {
	item, ok := s.GetItem(id)
	if !ok {
		return nil, false
	}
	return s.GetMachine(item.MachineID)
}

// GetSourceForItem resolves the source an item is associated with.
func (s *Store) GetSourceForItem(id model.ItemID) (*model.Source, bool) {
	item, ok := s.GetItem(id)
	if !ok {
		return nil, false
	}
	return s.GetSource(item.SourceID)
}

// Items iterates live items in identifier (insertion) order.
func (s *Store) Items() iter.Seq2[model.ItemID, *model.Item] {
	return func(yield func(model.ItemID, *model.Item) bool) {
		for _, id := range s.liveItems.ToArray() {
			if !yield(model.ItemID(id), s.items[id]) {
				return
			}
		}
	}
}

// Machines iterates live machines in identifier order.
func (s *Store) Machines() iter.Seq2[model.MachineID, *model.Machine] {
	return func(yield func(model.MachineID, *model.Machine) bool) {
		it := s.liveMachines.Iterator()
		for it.HasNext() {
			id := it.Next()
			if !yield(model.MachineID(id), s.machines[id]) {
				return
			}
		}
	}
}

// Sources iterates sources in identifier order.
func (s *Store) Sources() iter.Seq2[model.SourceID, *model.Source] {
	return func(yield func(model.SourceID, *model.Source) bool) {
		for id, src := range s.sources {
			if src == nil {
				continue
			}
			if !yield(model.SourceID(id), src) {
				return
			}
		}
	}
}

// ItemCount returns the number of physically present items.
func (s *Store) ItemCount() int {
	return int(s.liveItems.GetCardinality())
}

// MachineCount returns the number of live machines.
func (s *Store) MachineCount() int {
	return int(s.liveMachines.GetCardinality())
}

// MarkedCount returns how many present items carry the removal mark.
func (s *Store) MarkedCount() int {
	n := 0
	for _, item := range s.Items() {
		if item.Removed {
			n++
		}
	}
	return n
}

// ClearMarked physically deletes every item marked for removal and returns
// how many were deleted.
func (s *Store) ClearMarked() int {
	var marked []model.ItemID
	for id, item := range s.Items() {
		if item.Removed {
			marked = append(marked, id)
		}
	}
	for _, id := range marked {
		_ = s.RemoveItem(id)
	}
	s.stats.RemovedCount = 0
	return len(marked)
}

// Statistics returns the running statistics. The returned value is owned by
// the store.
func (s *Store) Statistics() *stats.DatStatistics {
	return s.stats
}

// RecalculateStats rebuilds statistics from the present items.
func (s *Store) RecalculateStats() {
	s.stats.Reset()
	s.stats.MachineCount = int64(s.MachineCount())
	for _, item := range s.Items() {
		s.stats.AddItem(item)
		if item.Removed {
			s.stats.RemovedCount++
		}
	}
}
