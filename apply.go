// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

// Not returns the negation of n. BDDMode defines this the usual way
// (swap the constant leaves reached at every path); in ZDDMode it is
// computed relative to the current Factory's universe, since "the family of
// all sets not in n" is only meaningful with a fixed ground set of
// variables — see Universe.
func (f *Factory) Not(n Node) (Node, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return Node{}, err
	}
	res, err := f.not(a)
	if err != nil {
		return Node{}, err
	}
	return f.wrap(res), nil
}

func (f *Factory) not(a int) (int, error) {
	if a == 0 {
		return 1, nil
	}
	if a == 1 {
		return 0, nil
	}
	if res, ok := f.applyCache.lookup2(a, a, int32(opnot)); ok {
		return res, nil
	}
	lo, err := f.not(f.store.low(a))
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	hi, err := f.not(f.store.high(a))
	f.store.popref(1)
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	f.store.pushref(hi)
	res, err := f.store.mk(f.store.level(a), lo, hi)
	f.store.popref(2)
	if err != nil {
		return -1, err
	}
	f.applyCache.insert2(a, a, int32(opnot), res)
	return res, nil
}

// Apply computes the result of applying op to left and right. op must not
// be opnot (use Not).
func (f *Factory) Apply(op Operator, left, right Node) (Node, error) {
	if op == opnot {
		return Node{}, newError(KindDomain, "opnot is unary; call Not instead of Apply")
	}
	a, err := checkedID(f, left)
	if err != nil {
		return Node{}, err
	}
	b, err := checkedID(f, right)
	if err != nil {
		return Node{}, err
	}
	res, err := f.apply(op, a, b)
	if err != nil {
		return Node{}, err
	}
	return f.wrap(res), nil
}

// ApplyWith is like Apply but consumes left and right.
func (f *Factory) ApplyWith(op Operator, left, right *Node) (Node, error) {
	res, err := f.Apply(op, *left, *right)
	if err != nil {
		return Node{}, err
	}
	consume(left)
	consume(right)
	return res, nil
}

// apply is the unmemoized terminal check plus the memoized recursive case,
// following the teacher's apply/operations.go structure: terminal results
// come straight out of opres, and the recursive case splits on the top
// variable of whichever operand has the smaller level (is "nearer the
// root").
func (f *Factory) apply(op Operator, a, b int) (int, error) {
	if a < 2 && b < 2 {
		return opres[op][a][b], nil
	}
	if res, ok := f.applyCache.lookup2(a, b, int32(op)); ok {
		return res, nil
	}

	var level int32
	var lo0, hi0, lo1, hi1 int
	la, lb := f.topLevel(a), f.topLevel(b)
	switch {
	case la == lb:
		level = la
		lo0, hi0 = f.store.low(a), f.store.high(a)
		lo1, hi1 = f.store.low(b), f.store.high(b)
	case la < lb:
		level = la
		lo0, hi0 = f.store.low(a), f.store.high(a)
		lo1, hi1 = b, b
	default:
		level = lb
		lo0, hi0 = a, a
		lo1, hi1 = f.store.low(b), f.store.high(b)
	}

	lo, err := f.apply(op, lo0, lo1)
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	hi, err := f.apply(op, hi0, hi1)
	f.store.popref(1)
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	f.store.pushref(hi)
	res, err := f.store.mk(level, lo, hi)
	f.store.popref(2)
	if err != nil {
		return -1, err
	}
	f.applyCache.insert2(a, b, int32(op), res)
	return res, nil
}

// topLevel returns the level of a non-terminal id, or the number of
// variables (past every real level) for a terminal, so terminals always
// compare as "furthest from the root" when picked against a real node.
func (f *Factory) topLevel(id int) int32 {
	if id < 2 {
		return f.store.varnum()
	}
	return f.store.level(id)
}

func min3(a, b, c int32) int32 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// Ite computes if-then-else(f, g, h): the diagram equal to g where f holds
// and h where it does not.
func (f *Factory) Ite(i, t, e Node) (Node, error) {
	a, err := checkedID(f, i)
	if err != nil {
		return Node{}, err
	}
	b, err := checkedID(f, t)
	if err != nil {
		return Node{}, err
	}
	c, err := checkedID(f, e)
	if err != nil {
		return Node{}, err
	}
	res, err := f.ite(a, b, c)
	if err != nil {
		return Node{}, err
	}
	return f.wrap(res), nil
}

// IteWith is like Ite but consumes all three operands.
func (f *Factory) IteWith(i, t, e *Node) (Node, error) {
	res, err := f.Ite(*i, *t, *e)
	if err != nil {
		return Node{}, err
	}
	consume(i)
	consume(t)
	consume(e)
	return res, nil
}

func (f *Factory) ite(a, b, c int) (int, error) {
	switch {
	case a == 1:
		return b, nil
	case a == 0:
		return c, nil
	case b == c:
		return b, nil
	case b == 1 && c == 0:
		return a, nil
	}
	if res, ok := f.iteCache.lookup3(a, b, c, 0); ok {
		return res, nil
	}

	level := min3(f.topLevel(a), f.topLevel(b), f.topLevel(c))
	lo0, hi0 := f.restrictAtLevel(a, level)
	lo1, hi1 := f.restrictAtLevel(b, level)
	lo2, hi2 := f.restrictAtLevel(c, level)

	lo, err := f.ite(lo0, lo1, lo2)
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	hi, err := f.ite(hi0, hi1, hi2)
	f.store.popref(1)
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	f.store.pushref(hi)
	res, err := f.store.mk(level, lo, hi)
	f.store.popref(2)
	if err != nil {
		return -1, err
	}
	f.iteCache.insert3(a, b, c, 0, res)
	return res, nil
}

// restrictAtLevel returns (low, high) of id as seen from level: id's own
// (low, high) if it sits exactly at level, or (id, id) if id's top variable
// is further from the root (so it does not depend on level at all).
func (f *Factory) restrictAtLevel(id int, level int32) (int, int) {
	if f.topLevel(id) != level {
		return id, id
	}
	return f.store.low(id), f.store.high(id)
}
