// Package testutil provides fixture builders for datgo tests.
//
// This package is intended for use in tests and benchmarks only.
//
// # Items and Machines
//
//	parent := testutil.Machine("parent", "")
//	child := testutil.Machine("child", "parent")
//	rom := testutil.Rom("a.bin", "deadbeef")
//
// # Loading
//
//	ids := testutil.Load(st, src, testutil.Set(parent, rom))
//
// # Random DATs
//
//	rng := testutil.NewRNG(seed)
//	sets := rng.Sets(100, 8)
package testutil
