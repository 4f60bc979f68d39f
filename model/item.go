package model

import (
	"github.com/hupe1980/datgo/field"
	"github.com/hupe1980/datgo/hashing"
)

// Item is one artifact of a machine.
//
// MachineID and SourceID are weak references resolved through the store.
// Removed is the soft-delete mark set by filters and duplicate handling;
// the item stays in the store until the mark is swept.
type Item struct {
	Type      ItemType       `json:"type"`
	Fields    field.Document `json:"fields"`
	MachineID MachineID      `json:"machine"`
	SourceID  SourceID       `json:"source"`
	Removed   bool           `json:"removed,omitempty"`
	DupeType  DupeType       `json:"dupe,omitempty"`
}

// NewItem creates an unattached item of the given type.
func NewItem(t ItemType, fields field.Document) *Item {
	if fields == nil {
		fields = field.Document{}
	}
	return &Item{
		Type:      t,
		Fields:    fields,
		MachineID: NoID,
		SourceID:  NoID,
	}
}

// Name returns the item name.
func (i *Item) Name() string {
	return i.Fields.GetString(KeyName)
}

// SetName replaces the item name.
func (i *Item) SetName(name string) {
	i.Fields.SetString(KeyName, name)
}

// Get returns a field value by key.
func (i *Item) Get(key string) (field.Value, bool) {
	return i.Fields.Get(key)
}

// Hash returns the value of hash t, or "" when absent.
func (i *Item) Hash(t hashing.Type) string {
	return i.Fields.GetString(t.String())
}

// SetHash stores the value of hash t.
func (i *Item) SetHash(t hashing.Type, value string) {
	i.Fields.SetString(t.String(), value)
}

// HashFields returns the comparable hash types for the item's type.
func (i *Item) HashFields() []hashing.Type {
	return i.Type.HashFields()
}

// HasHashes reports whether at least one comparable hash is present.
func (i *Item) HasHashes() bool {
	for _, t := range i.HashFields() {
		if i.Fields.Has(t.String()) {
			return true
		}
	}
	return false
}

// Size returns the byte size when present.
func (i *Item) Size() (int64, bool) {
	return i.Fields.GetInt(KeySize)
}

// Status returns the dump status, or "" when unset.
func (i *Item) Status() ItemStatus {
	return ItemStatus(i.Fields.GetString(KeyStatus))
}

// SetStatus sets the dump status.
func (i *Item) SetStatus(s ItemStatus) {
	i.Fields.SetString(KeyStatus, string(s))
}

// Clone returns a deep copy carrying the same associations.
// The removal mark and dupe classification are not copied.
func (i *Item) Clone() *Item {
	return &Item{
		Type:      i.Type,
		Fields:    i.Fields.Clone(),
		MachineID: i.MachineID,
		SourceID:  i.SourceID,
	}
}
