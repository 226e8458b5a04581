// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

// Pairing is a mutable variable-to-variable renaming used by Replace. Each
// Set call bumps a generation counter so that any replace-cache entries
// computed under a previous mapping are never reused after the mapping
// changes, without having to walk and invalidate them individually.
type Pairing struct {
	f     *Factory
	table map[int32]int32
	last  int32
	gen   int
}

// NewPairing creates an identity pairing (replaces nothing) over f.
func NewPairing(f *Factory) *Pairing {
	return &Pairing{f: f, table: make(map[int32]int32), last: -1}
}

// Set arranges for old to be replaced by new wherever this Pairing is used.
// Both must be variable indices of f's declared variables; Pairing only
// supports var-to-var substitution (see VecCompose for var-to-diagram
// substitution).
func (p *Pairing) Set(old, new int32) error {
	if old < 0 || old >= p.f.store.varnum() {
		return newError(KindDomain, "variable index %d out of range [0,%d)", old, p.f.store.varnum())
	}
	if new < 0 || new >= p.f.store.varnum() {
		return newError(KindDomain, "variable index %d out of range [0,%d)", new, p.f.store.varnum())
	}
	p.table[old] = new
	if old > p.last {
		p.last = old
	}
	p.gen++
	return nil
}

// cacheTag distinguishes this Pairing's generation in cache keys; two calls with
// the same (node, pairing-id) before any intervening Set are guaranteed to
// return the same result.
func (p *Pairing) cacheTag() int32 {
	return int32(p.gen)
}

// Replace substitutes variables in n according to p. A global check on p
// (such as "every old level maps to a new level no smaller") is not enough
// to know a direct mk will keep levels strictly increasing: a renamed node
// can still end up above a child that recursion left untouched, or above a
// child whose own replacement landed below it. replaceRec instead checks
// the actual levels involved at every node and only falls back to an
// ite-based restructuring there, exactly as the teacher's correctify does
// in operations.go, rather than deciding once for the whole diagram.
func (f *Factory) Replace(n Node, p *Pairing) (Node, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return Node{}, err
	}
	if p.f != f {
		return Node{}, newError(KindModeViolation, "pairing belongs to a different factory")
	}
	res, err := f.replaceRec(a, p)
	if err != nil {
		return Node{}, err
	}
	return f.wrap(res), nil
}

// ReplaceWith is like Replace but consumes n.
func (f *Factory) ReplaceWith(n *Node, p *Pairing) (Node, error) {
	res, err := f.Replace(*n, p)
	if err != nil {
		return Node{}, err
	}
	consume(n)
	return res, nil
}

func (f *Factory) replaceRec(a int, p *Pairing) (int, error) {
	if a < 2 || f.topLevel(a) > p.last {
		return a, nil
	}
	tag := p.cacheTag()
	if res, ok := f.replaceCache.lookup2(a, a, tag); ok {
		return res, nil
	}

	lo, err := f.replaceRec(f.store.low(a), p)
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	hi, err := f.replaceRec(f.store.high(a), p)
	f.store.popref(1)
	if err != nil {
		return -1, err
	}
	level := f.store.level(a)
	if nl, ok := p.table[level]; ok {
		level = nl
	}

	f.store.pushref(lo)
	f.store.pushref(hi)
	var res int
	if level < f.topLevel(lo) && level < f.topLevel(hi) {
		// the replaced level still falls strictly above both (possibly
		// themselves replaced) children: a direct mk keeps the diagram
		// correctly ordered.
		res, err = f.store.mk(level, lo, hi)
	} else {
		// the renaming moved level at or below one of its children's
		// levels; mk would build a malformed node (lo/hi must sit on
		// strictly deeper levels than their parent). Restructure with ite
		// instead, which re-derives a correctly ordered diagram regardless
		// of how the levels compare.
		res, err = f.correctifyNode(level, lo, hi)
	}
	f.store.popref(2)
	if err != nil {
		return -1, err
	}
	f.replaceCache.insert2(a, a, tag, res)
	return res, nil
}

// correctifyNode builds the diagram equivalent to "if var(level) then hi
// else lo" via Ite, used when a replaced level can no longer be placed
// directly above lo and hi with a plain mk.
func (f *Factory) correctifyNode(level int32, lo, hi int) (int, error) {
	varid, err := f.store.mk(level, 0, 1)
	if err != nil {
		return -1, err
	}
	f.store.pushref(varid)
	res, err := f.ite(varid, hi, lo)
	f.store.popref(1)
	return res, err
}
