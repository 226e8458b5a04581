// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

// minFreeNodes is the minimal percentage of free nodes that has to be left
// after a garbage collect unless a resize should be done instead.
const minFreeNodes = 20

// defaultMaxNodeIncrease bounds the growth of the node table at each resize
// to about one million nodes, unless overridden with Maxnodeincrease.
const defaultMaxNodeIncrease = 1 << 20

// maxVar is the largest number of levels (and so variables) supported: we
// reserve the top 11 bits of the level field for GC marking (see node.go)
// and keep the field an int32 so behavior does not change across
// architectures.
const maxVar int32 = 0x1FFFFF

// maxRefcou is the saturating value of a node's reference counter, also
// used to pin nodes (terminals, variables) that must never be collected.
const maxRefcou int32 = 0x3FF

// Backend selects which node-store implementation a Factory uses. Both
// satisfy the same store interface and share one apply/quantification
// engine.
type Backend int

const (
	// MapBackend is the default: a Go runtime hashmap unique table.
	MapBackend Backend = iota
	// ArrayBackend is a BuDDy-style dynamic array with hash chaining.
	ArrayBackend
)

// configs collects the tunable parameters of a Factory.
type configs struct {
	varnum          int
	nodesize        int
	cachesize       int
	cacheratio      int
	maxnodesize     int
	maxnodeincrease int
	minfreenodes    int
	mode            Mode
	backend         Backend
}

func makeconfigs(varnum int) *configs {
	c := &configs{varnum: varnum}
	c.minfreenodes = minFreeNodes
	c.maxnodeincrease = defaultMaxNodeIncrease
	// enough nodes to hold the two terminals and the variables themselves
	c.nodesize = 2*varnum + 2
	return c
}

// Option configures a Factory at construction time.
type Option func(*configs)

// Nodesize sets the preferred initial size of the node table. The table
// grows automatically as needed; this only affects how much work early
// operations need to do before the first resize.
func Nodesize(size int) Option {
	return func(c *configs) {
		if size >= 2*c.varnum+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize caps the total number of nodes a Factory may allocate. An
// operation that would grow past this limit fails with
// KindResourceExhausted. Zero (the default) means no limit.
func Maxnodesize(size int) Option {
	return func(c *configs) { c.maxnodesize = size }
}

// Maxnodeincrease caps how much the node table can grow in a single resize.
// Below this limit the table doubles each time it needs to grow. Zero
// removes the limit.
func Maxnodeincrease(size int) Option {
	return func(c *configs) { c.maxnodeincrease = size }
}

// Minfreenodes sets the percentage of free nodes that must remain after a
// garbage collection before a resize is triggered instead. Default is 20.
func Minfreenodes(ratio int) Option {
	return func(c *configs) { c.minfreenodes = ratio }
}

// Cachesize sets the initial number of entries in each operator cache.
// Default is 10000.
func Cachesize(size int) Option {
	return func(c *configs) { c.cachesize = size }
}

// Cacheratio resizes every operator cache, after each garbage collection,
// to this percentage of the node table's capacity at that moment, which can
// be smaller than the initial cache size. Zero (the default) keeps caches
// at their initial size.
func Cacheratio(ratio int) Option {
	return func(c *configs) { c.cacheratio = ratio }
}

// WithMode selects BDDMode (the default) or ZDDMode. Mode cannot change
// after construction.
func WithMode(m Mode) Option {
	return func(c *configs) { c.mode = m }
}

// WithBackend selects the node-store implementation. Default is MapBackend.
func WithBackend(b Backend) Option {
	return func(c *configs) { c.backend = b }
}
