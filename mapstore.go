// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

import "go.uber.org/zap"

// triple3 is the unique-table key (level, lo, hi). Using a plain comparable
// struct as a map key is simpler and just as fast as the teacher's
// hand-rolled byte-buffer hashing in hudd.go (the original motivation there
// was avoiding per-lookup allocation; Go's runtime specializes small
// comparable struct keys without one).
type triple3 struct {
	level int32
	lo    int
	hi    int
}

// mapStore is the default node-store backend: a Go runtime hashmap unique
// table over a flat, resizable node array. Ported from the teacher's
// hudd.go/hkernel.go.
type mapStore struct {
	nodes    []node
	unique   map[triple3]int
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

func newMapStore(c *configs) *mapStore {
	s := &mapStore{
		minfreenodes:    c.minfreenodes,
		maxnodeincrease: c.maxnodeincrease,
		maxnodesize:     c.maxnodesize,
		mmode:           c.mode,
		refstack:        make([]int, 0, 2*c.varnum+4),
	}
	nodesize := c.nodesize
	s.nodes = make([]node, nodesize)
	for k := range s.nodes {
		s.nodes[k] = node{level: 0, lo: -1, hi: k + 1}
	}
	s.nodes[nodesize-1].hi = 0
	s.unique = make(map[triple3]int, nodesize)
	s.nodes[0] = node{level: int32(c.varnum), lo: 0, hi: 0, refcou: maxRefcou}
	s.nodes[1] = node{level: int32(c.varnum), lo: 1, hi: 1, refcou: maxRefcou}
	s.freepos = 2
	s.freenum = nodesize - 2
	if s.freenum == 0 {
		// no free slot yet: the first mk collects and then grows the table
		s.freepos = 0
	}
	return s
}

func (s *mapStore) mode() Mode  { return s.mmode }
func (s *mapStore) size() int   { return len(s.nodes) }
func (s *mapStore) varnum() int32 { return s.nvars }

func (s *mapStore) level(id int) int32 { return s.nodes[id].level }
func (s *mapStore) low(id int) int     { return s.nodes[id].lo }
func (s *mapStore) high(id int) int    { return s.nodes[id].hi }

func (s *mapStore) incref(id int) {
	if id < 2 {
		return
	}
	if s.nodes[id].refcou < maxRefcou {
		s.nodes[id].refcou++
	}
}

func (s *mapStore) decref(id int) {
	if id < 2 {
		return
	}
	if s.nodes[id].refcou > 0 && s.nodes[id].refcou < maxRefcou {
		s.nodes[id].refcou--
	}
}

func (s *mapStore) reduces(lo, hi int) bool {
	if s.mmode == ZDDMode {
		return hi == 0
	}
	return lo == hi
}

func (s *mapStore) mk(level int32, lo, hi int) (int, error) {
	if s.reduces(lo, hi) {
		return lo, nil
	}
	key := triple3{level, lo, hi}
	if id, ok := s.unique[key]; ok {
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
	s.nodes[res] = node{level: level, lo: lo, hi: hi}
	s.unique[key] = res
	s.produced++
	return res, nil
}

func (s *mapStore) pushref(id int) int {
	s.refstack = append(s.refstack, id)
	return id
}

func (s *mapStore) popref(n int) {
	s.refstack = s.refstack[:len(s.refstack)-n]
}

func (s *mapStore) markrec(n int) {
	if n < 2 || s.nodes[n].marked() || s.nodes[n].lo == -1 {
		return
	}
	s.nodes[n].mark()
	s.markrec(s.nodes[n].lo)
	s.markrec(s.nodes[n].hi)
}

func (s *mapStore) gc() {
	pkglog.Debug("symdd: gc start", zap.Int("nodes", len(s.nodes)), zap.Int("free", s.freenum))
	for _, r := range s.refstack {
		s.markrec(r)
	}
	for k := range s.nodes {
		if s.nodes[k].refcou > 0 {
			s.markrec(k)
		}
	}
	s.freepos = 0
	s.freenum = 0
	for n := len(s.nodes) - 1; n > 1; n-- {
		if s.nodes[n].marked() && s.nodes[n].lo != -1 {
			s.nodes[n].unmark()
			continue
		}
		if s.nodes[n].lo != -1 {
			delete(s.unique, triple3{s.nodes[n].level, s.nodes[n].lo, s.nodes[n].hi})
		}
		s.nodes[n].lo = -1
		s.nodes[n].hi = s.freepos
		s.freepos = n
		s.freenum++
	}
	if s.gcHook != nil {
		s.gcHook()
	}
	pkglog.Debug("symdd: gc done", zap.Int("free", s.freenum))
}

func (s *mapStore) resize() error {
	oldsize := len(s.nodes)
	if s.maxnodesize > 0 && oldsize >= s.maxnodesize {
		return newError(KindResourceExhausted, "cannot resize: already at max capacity (%d nodes)", s.maxnodesize)
	}
	nodesize := oldsize * 2
	if s.maxnodeincrease > 0 && nodesize > oldsize+s.maxnodeincrease {
		nodesize = oldsize + s.maxnodeincrease
	}
	if s.maxnodesize > 0 && nodesize > s.maxnodesize {
		nodesize = s.maxnodesize
	}
	if nodesize <= oldsize {
		return newError(KindResourceExhausted, "unable to grow node table beyond %d nodes", oldsize)
	}
	pkglog.Info("symdd: resizing node table", zap.Int("from", oldsize), zap.Int("to", nodesize))
	tmp := s.nodes
	s.nodes = make([]node, nodesize)
	copy(s.nodes, tmp)
	for n := oldsize; n < nodesize; n++ {
		s.nodes[n] = node{lo: -1, hi: n + 1}
	}
	s.nodes[nodesize-1].hi = s.freepos
	s.freepos = oldsize
	s.freenum += nodesize - oldsize
	return nil
}

func (s *mapStore) addvars(n int) (int32, error) {
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

func (s *mapStore) setGCHook(f func()) { s.gcHook = f }

func (s *mapStore) stats() string {
	r := (float64(s.freenum) / float64(len(s.nodes))) * 100
	return formatStats("mapStore", len(s.nodes), s.produced, s.freenum, r)
}
