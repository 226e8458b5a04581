// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

// cacheEntry is a single computed-table slot shared by every cache in this
// package (apply, ite, quantify, compose, replace, restrict). a/b/c hold the
// operand ids (unused slots left at -1); tag disambiguates the operator (or
// pairing/varset generation) so a single slot array can serve every call
// shape without a dedicated struct per operation, mirroring the teacher's
// data3n/data4n reuse in cache.go.
type cacheEntry struct {
	a, b, c int
	tag     int32
	valid   bool
	res     int
}

// cache is a direct-mapped computed table: a fixed-size open slot array
// indexed by a hash of the key, with no chaining. A collision simply evicts
// the previous entry, trading hit rate for O(1) lookup and no allocation,
// exactly like the teacher's applycache/itecache/quantcache.
type cache struct {
	slots []cacheEntry
}

func newCache(size int) *cache {
	if size <= 0 {
		size = 10000
	}
	return &cache{slots: make([]cacheEntry, primeGte(size))}
}

func (c *cache) resize(size int) {
	c.slots = make([]cacheEntry, primeGte(size))
}

func (c *cache) clear() {
	for i := range c.slots {
		c.slots[i].valid = false
	}
}

func (c *cache) lookup3(a, b, d int, tag int32) (int, bool) {
	h := triple(a, b, d, len(c.slots)) ^ int(tag)
	if h < 0 {
		h = -h
	}
	h %= len(c.slots)
	e := &c.slots[h]
	if e.valid && e.a == a && e.b == b && e.c == d && e.tag == tag {
		return e.res, true
	}
	return 0, false
}

func (c *cache) insert3(a, b, d int, tag int32, res int) {
	h := triple(a, b, d, len(c.slots)) ^ int(tag)
	if h < 0 {
		h = -h
	}
	h %= len(c.slots)
	c.slots[h] = cacheEntry{a: a, b: b, c: d, tag: tag, valid: true, res: res}
}

func (c *cache) lookup2(a, b int, tag int32) (int, bool) {
	return c.lookup3(a, b, -1, tag)
}

func (c *cache) insert2(a, b int, tag int32, res int) {
	c.insert3(a, b, -1, tag, res)
}
