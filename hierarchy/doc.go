// Package hierarchy rewrites the machine graph of a store toward a ROM-set
// convention.
//
// Every operation requires a store bucketed by store.KeyMachine. Parents and
// devices are resolved by name: first within the bucket namespace of the
// referencing machine's source, then among all machines. A reference to a
// machine that is not present copies or compares nothing.
//
// Apply maps a MergeType onto the operation sequence of the matching set
// convention:
//
//	split            RemoveItemsFromCloneOfChild, RemoveItemsFromRomOfChild, ...
//	merged           AddItemsFromChildren, RemoveCloneSets, RemoveItemsFromRomOfChild, ...
//	nonmerged        AddItemsFromCloneOfParent, RemoveItemsFromRomOfChild, ...
//	fullnonmerged    AddItemsFromDevices, AddItemsFromCloneOfParent, AddItemsFromRomOfParent, RemoveBiosAndDeviceSets, ...
//	devicenonmerged  AddItemsFromDevices, ...
package hierarchy
