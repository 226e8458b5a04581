// Copyright (c) 2024 The symdd Authors
//
// MIT License

/*
Package symdd defines a concrete type for Reduced Ordered Binary and
Zero-suppressed Decision Diagrams (BDD/ZDD), a data structure used to
efficiently represent Boolean functions over a fixed set of variables or,
equivalently, sets of Boolean vectors of a fixed size.

# Basics

Each diagram family is held by a Factory, which fixes the number of
variables (Varnum) when it is created with New and assigns every variable a
stable index in the interval [0..Varnum). Variables have a position in the
current ordering, called a level; variables are never reordered, so a
variable's level is always its index.

Most operations return a Node: a handle to a vertex in the diagram,
identifying a variable level and its low (false) and high (true) branches.
Handles carry ownership: each live Node contributes one external reference
to its node and must eventually be released with Free, directly or through
one of the consuming "...With" operations.

# BDD and ZDD

A Factory operates in one of two modes, fixed at creation and never changed
afterward: BDDMode applies the classical reduction rule (a branch collapses
when its two children are equal) while ZDDMode applies the zero-suppressed
rule (a branch collapses when its high child is the false terminal), which
is efficient for representing sparse families of sets. Both modes share the
same node store, operator cache, and apply engine; only the reduction rule
in mk and a handful of mode-dependent semantics (the meaning of "universe",
don't-care detection during enumeration) differ.

# Backends

The factory can be built on two interchangeable node-store backends,
selected with the WithBackend option: the default mapStore, based on the Go
runtime hashmap, and arrayStore, a dynamic-array-plus-hash-chain table
closer to the layout used by the BuDDy C library. Both satisfy the same
small store interface (mk, incref, decref, low, high, level, mode) that the
generic apply/quantification/composition engine is written against once.

# Automatic memory management

The library is written in pure Go. Node allocation, resizing, and garbage
collection are handled internally; callers manage only the lifetime of
their own Node handles via incref/decref (Free). There is no reliance on
finalizers: a Node is reclaimable once every owning handle has called Free
and a GC sweep runs.
*/
package symdd
