// Package resource bounds the work a batch run may do at once: worker slots
// for parallel DAT processing, a memory budget for decoded snapshots and a
// byte-rate limit for snapshot IO.
//
// All methods are safe on a nil *Controller, which means "unlimited".
package resource
