package hierarchy

import (
	"fmt"
	"strings"

	"github.com/hupe1980/datgo/store"
)

// MergeType names a ROM-set convention.
type MergeType uint8

const (
	// MergeNone leaves the machine graph untouched.
	MergeNone MergeType = iota
	// MergeSplit keeps only the items a clone does not share with its parent.
	MergeSplit
	// MergeMerged folds clones into their parents.
	MergeMerged
	// MergeNonMerged makes every clone self-contained apart from its BIOS.
	MergeNonMerged
	// MergeFullNonMerged makes every machine self-contained, BIOS and
	// devices included.
	MergeFullNonMerged
	// MergeDeviceNonMerged copies device items into the machines using them.
	MergeDeviceNonMerged
)

var mergeNames = [...]string{
	MergeNone:            "none",
	MergeSplit:           "split",
	MergeMerged:          "merged",
	MergeNonMerged:       "nonmerged",
	MergeFullNonMerged:   "fullnonmerged",
	MergeDeviceNonMerged: "devicenonmerged",
}

func (m MergeType) String() string {
	if int(m) < len(mergeNames) {
		return mergeNames[m]
	}
	return fmt.Sprintf("MergeType(%d)", uint8(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m MergeType) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MergeType) UnmarshalText(text []byte) error {
	v, err := ParseMergeType(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMergeType parses a convention name. Dashes and case are ignored, and
// "full" and "device" are accepted as short forms.
func ParseMergeType(s string) (MergeType, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "")
	switch norm {
	case "", "none":
		return MergeNone, nil
	case "full":
		return MergeFullNonMerged, nil
	case "device":
		return MergeDeviceNonMerged, nil
	}
	for i, name := range mergeNames {
		if name == norm {
			return MergeType(i), nil
		}
	}
	return MergeNone, fmt.Errorf("unknown merge type %q", s)
}

type step func(*store.Store) error

func (m MergeType) steps() []step {
	switch m {
	case MergeSplit:
		return []step{
			RemoveItemsFromCloneOfChild,
			RemoveItemsFromRomOfChild,
			RemoveMachineRelationshipTags,
		}
	case MergeMerged:
		return []step{
			func(st *store.Store) error { return AddItemsFromChildren(st, false, false) },
			RemoveCloneSets,
			RemoveItemsFromRomOfChild,
			RemoveMachineRelationshipTags,
		}
	case MergeNonMerged:
		return []step{
			AddItemsFromCloneOfParent,
			RemoveItemsFromRomOfChild,
			RemoveMachineRelationshipTags,
		}
	case MergeFullNonMerged:
		return []step{
			func(st *store.Store) error { return AddItemsFromDevices(st, true, true) },
			AddItemsFromCloneOfParent,
			AddItemsFromRomOfParent,
			RemoveBiosAndDeviceSets,
			RemoveMachineRelationshipTags,
		}
	case MergeDeviceNonMerged:
		return []step{
			func(st *store.Store) error { return AddItemsFromDevices(st, false, false) },
			RemoveMachineRelationshipTags,
		}
	}
	return nil
}

// Apply rewrites st toward the convention m. The store must be bucketed by
// machine, even for MergeNone.
func Apply(st *store.Store, m MergeType) error {
	if err := st.RequireKey(store.KeyMachine); err != nil {
		return err
	}
	if int(m) >= len(mergeNames) {
		return fmt.Errorf("unknown merge type %d", uint8(m))
	}

	for _, fn := range m.steps() {
		if err := fn(st); err != nil {
			return fmt.Errorf("%s: %w", m, err)
		}
	}
	return nil
}
