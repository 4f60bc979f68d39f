// Package filter evaluates field predicates against the items of a store and
// marks the items that fail them.
//
// A filter is written "<target>.<field><op><value>", for example
// "rom.crc!=deadbeef" or "machine.year>=1990". The target is an item type,
// "item" for every item type, or "machine" for the item's machine. Values
// wrapped in slashes ("/^pac/") are regular expressions.
//
// Marking never deletes. Items stay in the store until Store.ClearMarked.
package filter
