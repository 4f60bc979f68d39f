// Package textutil holds Unicode-aware string helpers shared by the store
// and the filter engine.
package textutil
