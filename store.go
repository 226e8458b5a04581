// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

import "fmt"

// store is the trait the generic engine (apply.go, quantify.go, compose.go,
// restrict.go, fdd.go, ...) is written against. Per spec.md's Design Notes
// §9, only the primitive operations on the node store are abstracted here;
// every compound operation (apply, ite, quantify, compose, restrict, ...) is
// implemented once, in engine code, regardless of which backend a Factory
// was built with.
//
// Both concrete backends (mapStore, arrayStore) keep terminal ids fixed at 0
// (false) and 1 (true), apply the BDD or ZDD reduction rule in mk depending
// on mode(), and protect in-flight results from a concurrent sweep via
// pushref/popref around recursive calls that might call mk again.
type store interface {
	mode() Mode
	size() int
	varnum() int32

	level(id int) int32
	low(id int) int
	high(id int) int

	incref(id int)
	decref(id int)

	// mk looks up (level, lo, hi) in the unique table, applying the
	// reduction rule for the store's mode first. It allocates a fresh node
	// on a miss, triggering gc and, if that is not enough, a resize.
	mk(level int32, lo, hi int) (int, error)

	// pushref/popref pin (and later release) ids produced mid-recursion so
	// that a gc triggered by a nested mk cannot sweep them.
	pushref(id int) int
	popref(n int)

	// addvars extends the store with n fresh variables, returning the
	// level of the first one created.
	addvars(n int) (int32, error)

	// setGCHook installs a callback invoked after every sweep, used by the
	// Factory to invalidate its operator caches (cache entries may refer to
	// swept nodes).
	setGCHook(func())

	stats() string
}

// formatStats renders the common fields both backends report from stats().
func formatStats(backend string, size, produced, free int, freeratio float64) string {
	return fmt.Sprintf("symdd[%s]: nodes=%d produced=%d free=%d (%.1f%%)", backend, size, produced, free, freeratio)
}
