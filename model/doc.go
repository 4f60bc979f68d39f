// Package model defines the entities a DAT is made of.
//
// # Identity Types
//
//   - ItemID: store-assigned item identifier, never reused (int64)
//   - MachineID: store-assigned machine identifier (int64)
//   - SourceID: store-assigned source identifier (int64)
//
// # Data Types
//
//   - Item: one artifact (rom, disk, sample, ...) tagged with its ItemType
//   - Machine: a named set/game carrying the clone-of/rom-of hierarchy
//   - Source: the input a batch of items came from
//
// Items never own their Machine or Source. They are associated through
// identifiers resolved by the store, so the set-hierarchy engine can move
// items between machines without invalidating other references.
//
// # Example
//
//	rom := model.NewItem(model.TypeRom, field.Document{
//	    model.KeyName: field.String("game.bin"),
//	    model.KeySize: field.Int(1024),
//	    "crc":         field.String("deadbeef"),
//	})
package model
