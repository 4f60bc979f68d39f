// Package hashing names the hash types a DAT item can carry and provides
// their canonical values for the empty byte sequence.
//
// Hash computation for real files belongs to the file/rebuild layer. Compute
// is offered for callers that only need a quick multi-hash of a reader; it
// fills every type the Go ecosystem has an implementation for.
package hashing
