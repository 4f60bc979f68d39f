// Package field provides the typed field-value model shared by every item,
// machine and source in a DAT.
//
// Parsers for the various DAT formats decode their vocabulary into a
// Document, a map of field names to typed Values. The rest of datgo only
// ever sees Documents, which keeps the core independent of any on-disk
// format.
//
// # Value Types
//
//   - String: field.String("deadbeef")
//   - Int: field.Int(1024)
//   - Float: field.Float(1.5)
//   - Bool: field.Bool(true)
//   - Array: field.Array([]field.Value{...})
//   - Record: field.Record(field.Document{...}) for nested sub-records
//
// Example:
//
//	doc := field.Document{
//	    "name": field.String("game.rom"),
//	    "size": field.Int(1024),
//	    "crc":  field.String("deadbeef"),
//	}
package field
