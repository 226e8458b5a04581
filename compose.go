// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

// ComposePairing maps variables to arbitrary diagrams (unlike Pairing,
// which only renames variables) for use with VecCompose.
type ComposePairing struct {
	f     *Factory
	table map[int32]Node
	last  int32
	gen   int
}

// NewComposePairing creates an empty composition (the identity: every
// variable maps to itself) over f.
func NewComposePairing(f *Factory) *ComposePairing {
	return &ComposePairing{f: f, table: make(map[int32]Node), last: -1}
}

// Set arranges for var to be substituted by g wherever this ComposePairing
// is used with VecCompose.
func (p *ComposePairing) Set(variable int32, g Node) error {
	if variable < 0 || variable >= p.f.store.varnum() {
		return newError(KindDomain, "variable index %d out of range [0,%d)", variable, p.f.store.varnum())
	}
	if err := g.valid(p.f); err != nil {
		return err
	}
	p.table[variable] = g
	if variable > p.last {
		p.last = variable
	}
	p.gen++
	return nil
}

// Compose substitutes g for a single variable v in n: the result holds at
// an assignment iff n holds at the same assignment with v's value replaced
// by g's.
func (f *Factory) Compose(n Node, v int32, g Node) (Node, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return Node{}, err
	}
	b, err := checkedID(f, g)
	if err != nil {
		return Node{}, err
	}
	if v < 0 || v >= f.store.varnum() {
		return Node{}, newError(KindDomain, "variable index %d out of range [0,%d)", v, f.store.varnum())
	}
	res, err := f.composeRec(a, v, b)
	if err != nil {
		return Node{}, err
	}
	return f.wrap(res), nil
}

func (f *Factory) composeRec(a int, v int32, g int) (int, error) {
	if a < 2 || f.topLevel(a) > v {
		return a, nil
	}
	tag := int32(g)
	if res, ok := f.composeCache.lookup3(a, int(v), -1, tag); ok {
		return res, nil
	}
	if f.store.level(a) == v {
		res, err := f.ite(g, f.store.high(a), f.store.low(a))
		if err != nil {
			return -1, err
		}
		f.composeCache.insert3(a, int(v), -1, tag, res)
		return res, nil
	}

	lo, err := f.composeRec(f.store.low(a), v, g)
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	hi, err := f.composeRec(f.store.high(a), v, g)
	f.store.popref(1)
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	f.store.pushref(hi)
	var res int
	if level := f.store.level(a); level < f.topLevel(lo) && level < f.topLevel(hi) {
		res, err = f.store.mk(level, lo, hi)
	} else {
		// g brought in variables at or above this level
		res, err = f.correctifyNode(level, lo, hi)
	}
	f.store.popref(2)
	if err != nil {
		return -1, err
	}
	f.composeCache.insert3(a, int(v), -1, tag, res)
	return res, nil
}

// VecCompose substitutes every variable mapped in p simultaneously, rather
// than one at a time: this avoids the intermediate blow-up of folding
// Compose calls and matches how variables composed together are usually
// meant (each occurrence sees the same substitution for every variable, not
// the partially-composed result of earlier ones).
func (f *Factory) VecCompose(n Node, p *ComposePairing) (Node, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return Node{}, err
	}
	if p.f != f {
		return Node{}, newError(KindModeViolation, "composition belongs to a different factory")
	}
	res, err := f.vecComposeRec(a, p)
	if err != nil {
		return Node{}, err
	}
	return f.wrap(res), nil
}

func (f *Factory) vecComposeRec(a int, p *ComposePairing) (int, error) {
	if a < 2 || f.topLevel(a) > p.last {
		return a, nil
	}
	tag := int32(p.gen)
	if res, ok := f.composeCache.lookup2(a, a, tag); ok {
		return res, nil
	}

	lo, err := f.vecComposeRec(f.store.low(a), p)
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	hi, err := f.vecComposeRec(f.store.high(a), p)
	f.store.popref(1)
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	f.store.pushref(hi)

	var res int
	if g, ok := p.table[f.store.level(a)]; ok {
		res, err = f.ite(g.id, hi, lo)
	} else if level := f.store.level(a); level < f.topLevel(lo) && level < f.topLevel(hi) {
		res, err = f.store.mk(level, lo, hi)
	} else {
		// substitutions below brought in variables at or above this level
		res, err = f.correctifyNode(level, lo, hi)
	}
	f.store.popref(2)
	if err != nil {
		return -1, err
	}
	f.composeCache.insert2(a, a, tag, res)
	return res, nil
}
