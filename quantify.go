// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

// quantOp selects how the two branches of a quantified variable are
// recombined: existential (or), universal (and), or unique (xor,
// "exactly one assignment satisfies").
type quantOp int

const (
	quantExist quantOp = iota
	quantForall
	quantUnique
)

func (q quantOp) combine() Operator {
	switch q {
	case quantForall:
		return OPand
	case quantUnique:
		return OPxor
	default:
		return OPor
	}
}

// quantInfo precomputes the membership test and last (deepest) level of a
// VarSet so quant_rec can stop recursing past it, exactly as the teacher's
// INVARSET/quantlast pair does in operations.go.
type quantInfo struct {
	id      int
	present map[int32]bool
	last    int32
}

func (f *Factory) quantInfoFor(vs VarSet) quantInfo {
	levels := vs.Scanset()
	qi := quantInfo{id: vs.id, present: make(map[int32]bool, len(levels))}
	for _, l := range levels {
		qi.present[l] = true
		if l > qi.last {
			qi.last = l
		}
	}
	if len(levels) == 0 {
		qi.last = -1
	}
	return qi
}

// Exist eliminates the variables in vars existentially: result holds at an
// assignment of the remaining variables iff some extension over vars
// satisfies n.
func (f *Factory) Exist(n Node, vars VarSet) (Node, error) {
	return f.quantify(n, vars, quantExist)
}

// ForAll eliminates the variables in vars universally.
func (f *Factory) ForAll(n Node, vars VarSet) (Node, error) {
	return f.quantify(n, vars, quantForall)
}

// Unique eliminates the variables in vars requiring exactly one assignment
// of them to satisfy n (XOR quantification).
func (f *Factory) Unique(n Node, vars VarSet) (Node, error) {
	return f.quantify(n, vars, quantUnique)
}

func (f *Factory) quantify(n Node, vars VarSet, q quantOp) (Node, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return Node{}, err
	}
	if vars.f != nil && vars.f != f {
		return Node{}, newError(KindModeViolation, "varset belongs to a different factory")
	}
	qi := f.quantInfoFor(vars)
	res, err := f.quantRec(a, qi, q)
	if err != nil {
		return Node{}, err
	}
	return f.wrap(res), nil
}

func (f *Factory) quantRec(a int, qi quantInfo, q quantOp) (int, error) {
	if a < 2 || f.topLevel(a) > qi.last {
		return a, nil
	}
	tag := int32(qi.id)<<2 | int32(q)
	if res, ok := f.quantCache.lookup2(a, a, tag); ok {
		return res, nil
	}

	lo, err := f.quantRec(f.store.low(a), qi, q)
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	hi, err := f.quantRec(f.store.high(a), qi, q)
	f.store.popref(1)
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	f.store.pushref(hi)

	var res int
	if qi.present[f.store.level(a)] {
		res, err = f.apply(q.combine(), lo, hi)
	} else {
		res, err = f.store.mk(f.store.level(a), lo, hi)
	}
	f.store.popref(2)
	if err != nil {
		return -1, err
	}
	f.quantCache.insert2(a, a, tag, res)
	return res, nil
}

// AppEx fuses Apply(op, left, right) with an existential quantification
// over vars, avoiding the full intermediate diagram Apply would otherwise
// build — the same motivation as the teacher's AppEx/bdd_appex.
func (f *Factory) AppEx(op Operator, left, right Node, vars VarSet) (Node, error) {
	return f.fusedApply(op, left, right, vars, quantExist)
}

// AppAll is AppEx with universal quantification.
func (f *Factory) AppAll(op Operator, left, right Node, vars VarSet) (Node, error) {
	return f.fusedApply(op, left, right, vars, quantForall)
}

// AppUnique is AppEx with unique (XOR) quantification.
func (f *Factory) AppUnique(op Operator, left, right Node, vars VarSet) (Node, error) {
	return f.fusedApply(op, left, right, vars, quantUnique)
}

func (f *Factory) fusedApply(op Operator, left, right Node, vars VarSet, q quantOp) (Node, error) {
	if !op.isFusible() {
		return Node{}, newError(KindDomain, "operator %s cannot be used in a fused quantified apply", op)
	}
	a, err := checkedID(f, left)
	if err != nil {
		return Node{}, err
	}
	b, err := checkedID(f, right)
	if err != nil {
		return Node{}, err
	}
	qi := f.quantInfoFor(vars)
	res, err := f.appquantRec(op, a, b, qi, q)
	if err != nil {
		return Node{}, err
	}
	return f.wrap(res), nil
}

func (f *Factory) appquantRec(op Operator, a, b int, qi quantInfo, q quantOp) (int, error) {
	if a < 2 && b < 2 {
		return opres[op][a][b], nil
	}
	if a == b && op == OPand {
		return f.quantRec(a, qi, q)
	}

	tag := (int32(qi.id)<<4 | int32(op)<<2 | int32(q))
	if res, ok := f.appexCache.lookup2(a, b, tag); ok {
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

	lo, err := f.appquantRec(op, lo0, lo1, qi, q)
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	hi, err := f.appquantRec(op, hi0, hi1, qi, q)
	f.store.popref(1)
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	f.store.pushref(hi)

	var res int
	if qi.present[level] {
		res, err = f.apply(q.combine(), lo, hi)
	} else {
		res, err = f.store.mk(level, lo, hi)
	}
	f.store.popref(2)
	if err != nil {
		return -1, err
	}
	f.appexCache.insert2(a, b, tag, res)
	return res, nil
}

// RelProd computes the relational product of left and right, existentially
// quantifying vars out of their conjunction — shorthand for
// AppEx(OPand, left, right, vars) that matches common relational-BDD
// terminology.
func (f *Factory) RelProd(left, right Node, vars VarSet) (Node, error) {
	return f.AppEx(OPand, left, right, vars)
}
