package model

// ItemID identifies an item within one store.
// Invariant: never reused, even after the item is removed.
type ItemID = int64

// MachineID identifies a machine within one store.
type MachineID = int64

// SourceID identifies a source within one store.
type SourceID = int64

// NoID marks an association that has not been attached yet.
const NoID int64 = -1
