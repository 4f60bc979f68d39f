// Package stats aggregates item, hash and status counts for a DAT.
package stats
