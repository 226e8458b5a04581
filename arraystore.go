// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

import "go.uber.org/zap"

// arrayStore is the BuDDy-style backend: a flat node array with its own
// unique table implemented as a hash-chain threaded through node.hash/next
// instead of a separate Go map. Table sizes are kept prime (see hash.go) so
// the chain lengths stay uniform as ids accumulate. Ported from the
// teacher's buddy.go/bkernel.go.
type arrayStore struct {
	nodes    []node
	freenum  int
	freepos  int
	produced int
	refstack []int
	nvars    int32
	mmode    Mode

	minfreenodes    int
	maxnodeincrease int
	maxnodesize     int

	gcHook func()
}

func newArrayStore(c *configs) *arrayStore {
	nodesize := primeGte(c.nodesize)
	s := &arrayStore{
		minfreenodes:    c.minfreenodes,
		maxnodeincrease: c.maxnodeincrease,
		maxnodesize:     c.maxnodesize,
		mmode:           c.mode,
		refstack:        make([]int, 0, 2*c.varnum+4),
	}
	s.nodes = make([]node, nodesize)
	for k := range s.nodes {
		s.nodes[k] = node{lo: -1, hi: k + 1, hash: 0, next: 0}
	}
	s.nodes[nodesize-1].hi = 0
	s.nodes[0] = node{level: int32(c.varnum), lo: 0, hi: 0, refcou: maxRefcou}
	s.nodes[1] = node{level: int32(c.varnum), lo: 1, hi: 1, refcou: maxRefcou}
	s.freepos = 2
	s.freenum = nodesize - 2
	return s
}

func (s *arrayStore) mode() Mode    { return s.mmode }
func (s *arrayStore) size() int     { return len(s.nodes) }
func (s *arrayStore) varnum() int32 { return s.nvars }

func (s *arrayStore) level(id int) int32 { return s.nodes[id].level & levelMask }
func (s *arrayStore) low(id int) int     { return s.nodes[id].lo }
func (s *arrayStore) high(id int) int    { return s.nodes[id].hi }

func (s *arrayStore) incref(id int) {
	if id < 2 {
		return
	}
	if s.nodes[id].refcou < maxRefcou {
		s.nodes[id].refcou++
	}
}

func (s *arrayStore) decref(id int) {
	if id < 2 {
		return
	}
	if s.nodes[id].refcou > 0 && s.nodes[id].refcou < maxRefcou {
		s.nodes[id].refcou--
	}
}

func (s *arrayStore) reduces(lo, hi int) bool {
	if s.mmode == ZDDMode {
		return hi == 0
	}
	return lo == hi
}

func (s *arrayStore) nodehash(level int32, lo, hi int) int {
	return triple(int(level), lo, hi, len(s.nodes))
}

// ptrhash finds an existing node with the given (level, lo, hi) by walking
// the hash-chain at its bucket, or returns -1.
func (s *arrayStore) ptrhash(level int32, lo, hi int) int {
	h := s.nodehash(level, lo, hi)
	n := s.nodes[h].hash
	for n != 0 {
		nd := &s.nodes[n]
		if nd.level&levelMask == level && nd.lo == lo && nd.hi == hi {
			return n
		}
		n = nd.next
	}
	return -1
}

func (s *arrayStore) mk(level int32, lo, hi int) (int, error) {
	if s.reduces(lo, hi) {
		return lo, nil
	}
	if id := s.ptrhash(level, lo, hi); id != -1 {
		return id, nil
	}
	if s.freepos == 0 {
		s.gc()
		if (s.freenum*100)/len(s.nodes) <= s.minfreenodes {
			if err := s.resize(); err != nil {
				return -1, err
			}
		}
		if s.freepos == 0 {
			return -1, newError(KindResourceExhausted, "unable to allocate a new node: table exhausted after gc and resize")
		}
	}
	s.freenum--
	res := s.freepos
	s.freepos = s.nodes[s.freepos].hi

	s.nodes[res].level = level
	s.nodes[res].lo = lo
	s.nodes[res].hi = hi
	s.nodes[res].refcou = 0

	h := s.nodehash(level, lo, hi)
	s.nodes[res].next = s.nodes[h].hash
	s.nodes[h].hash = res
	s.produced++
	return res, nil
}

func (s *arrayStore) pushref(id int) int {
	s.refstack = append(s.refstack, id)
	return id
}

func (s *arrayStore) popref(n int) {
	s.refstack = s.refstack[:len(s.refstack)-n]
}

func (s *arrayStore) markrec(n int) {
	if n < 2 || s.nodes[n].marked() || s.nodes[n].lo == -1 {
		return
	}
	s.nodes[n].mark()
	s.markrec(s.nodes[n].lo)
	s.markrec(s.nodes[n].hi)
}

func (s *arrayStore) gc() {
	pkglog.Debug("symdd: gc start (array)", zap.Int("nodes", len(s.nodes)), zap.Int("free", s.freenum))
	for _, r := range s.refstack {
		s.markrec(r)
	}
	for k := range s.nodes {
		if s.nodes[k].refcou > 0 {
			s.markrec(k)
		}
	}
	// clear hash buckets, rebuild below as surviving nodes are rehashed
	for k := range s.nodes {
		s.nodes[k].hash = 0
	}
	s.freepos = 0
	s.freenum = 0
	for n := len(s.nodes) - 1; n > 1; n-- {
		nd := &s.nodes[n]
		if nd.marked() && nd.lo != -1 {
			nd.unmark()
			h := s.nodehash(nd.level&levelMask, nd.lo, nd.hi)
			nd.next = s.nodes[h].hash
			s.nodes[h].hash = n
			continue
		}
		nd.lo = -1
		nd.hi = s.freepos
		s.freepos = n
		s.freenum++
	}
	if s.gcHook != nil {
		s.gcHook()
	}
	pkglog.Debug("symdd: gc done (array)", zap.Int("free", s.freenum))
}

func (s *arrayStore) resize() error {
	oldsize := len(s.nodes)
	if s.maxnodesize > 0 && oldsize >= s.maxnodesize {
		return newError(KindResourceExhausted, "cannot resize: already at max capacity (%d nodes)", s.maxnodesize)
	}
	nodesize := primeGte(oldsize * 2)
	if s.maxnodeincrease > 0 && nodesize > oldsize+s.maxnodeincrease {
		nodesize = primeGte(oldsize + s.maxnodeincrease)
	}
	if s.maxnodesize > 0 && nodesize > s.maxnodesize {
		nodesize = primeLte(s.maxnodesize)
	}
	if nodesize <= oldsize {
		return newError(KindResourceExhausted, "unable to grow node table beyond %d nodes", oldsize)
	}
	pkglog.Info("symdd: resizing node table (array)", zap.Int("from", oldsize), zap.Int("to", nodesize))
	tmp := s.nodes
	s.nodes = make([]node, nodesize)
	copy(s.nodes, tmp)
	for n := oldsize; n < nodesize; n++ {
		s.nodes[n] = node{lo: -1, hi: n + 1}
	}
	s.nodes[nodesize-1].hi = 0

	// rehash all buckets and the new free list since table size (modulus)
	// changed
	for k := range s.nodes {
		s.nodes[k].hash = 0
	}
	s.freepos = 0
	s.freenum = 0
	for n := nodesize - 1; n > 1; n-- {
		nd := &s.nodes[n]
		if nd.lo == -1 {
			nd.hi = s.freepos
			s.freepos = n
			s.freenum++
			continue
		}
		h := s.nodehash(nd.level&levelMask, nd.lo, nd.hi)
		nd.next = s.nodes[h].hash
		s.nodes[h].hash = n
	}
	return nil
}

func (s *arrayStore) addvars(n int) (int32, error) {
	first := s.nvars
	for k := 0; k < n; k++ {
		level := s.nvars
		v0, err := s.mk(level, 0, 1)
		if err != nil {
			return first, err
		}
		s.pushref(v0)
		s.nodes[v0].refcou = maxRefcou
		v1, err := s.mk(level, 1, 0)
		s.popref(1)
		if err != nil {
			return first, err
		}
		s.nodes[v1].refcou = maxRefcou
		s.nvars++
	}
	return first, nil
}

func (s *arrayStore) setGCHook(f func()) { s.gcHook = f }

func (s *arrayStore) stats() string {
	r := (float64(s.freenum) / float64(len(s.nodes))) * 100
	return formatStats("arrayStore", len(s.nodes), s.produced, s.freenum, r)
}
