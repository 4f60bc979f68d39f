// Package store owns every item, machine and source of one DAT.
//
// Entities are addressed by integer identifiers assigned sequentially from
// zero. Items hold weak references (MachineID, SourceID) that are resolved
// through the store, never pointers, so an item can be remapped to another
// machine without touching any other reference.
//
// # Buckets
//
// Items are partitioned into named buckets by the active ItemKey:
//
//	st.BucketBy(store.KeyMachine) // "0000000000-pacman"
//	st.BucketBy(store.KeyCRC)     // "deadbeef"
//
// Items without a value for the active key collapse into the "" bucket.
//
// # Removal
//
// Filters and duplicate handling only set Item.Removed. Physical deletion
// happens in ClearMarked (or the explicit Remove* calls), so a traversal can
// mark items without mutating the collection it iterates.
//
// A Store is not safe for concurrent use. Process independent DATs with one
// Store per goroutine.
package store
