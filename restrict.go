// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

// cubeInfo records, per level, whether a cube (built from Ithvar/NIthvar via
// Apply(OPand, ...)) fixes that variable to true or false, along with the
// deepest level the cube mentions. Restrict reads this back off of the
// cube's own node structure: a positive literal node has lo==0 (only the hi
// branch survives), a negative literal has hi==0.
type cubeInfo struct {
	polarity map[int32]bool
	last     int32
}

func (f *Factory) scanCube(c int) (cubeInfo, error) {
	ci := cubeInfo{polarity: make(map[int32]bool), last: -1}
	for c > 1 {
		lo, hi := f.store.low(c), f.store.high(c)
		level := f.store.level(c)
		switch {
		case lo == 0:
			ci.polarity[level] = true
			c = hi
		case hi == 0:
			ci.polarity[level] = false
			c = lo
		default:
			return ci, newError(KindDomain, "restrict expects a cube (conjunction of literals), got a branching diagram at level %d", level)
		}
		if level > ci.last {
			ci.last = level
		}
	}
	return ci, nil
}

// Restrict computes the cofactor of n with respect to cube: n with every
// variable fixed by cube set to its forced value. cube must be a
// conjunction of literals (as built by Apply(OPand, Ithvar/NIthvar, ...)),
// not an arbitrary diagram — use Constrain for that.
func (f *Factory) Restrict(n, cube Node) (Node, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return Node{}, err
	}
	c, err := checkedID(f, cube)
	if err != nil {
		return Node{}, err
	}
	ci, err := f.scanCube(c)
	if err != nil {
		return Node{}, err
	}
	res, err := f.restrictRec(a, ci)
	if err != nil {
		return Node{}, err
	}
	return f.wrap(res), nil
}

// RestrictWith is like Restrict but consumes n.
func (f *Factory) RestrictWith(n *Node, cube Node) (Node, error) {
	res, err := f.Restrict(*n, cube)
	if err != nil {
		return Node{}, err
	}
	consume(n)
	return res, nil
}

func (f *Factory) restrictRec(a int, ci cubeInfo) (int, error) {
	if a < 2 || f.topLevel(a) > ci.last {
		return a, nil
	}
	level := f.store.level(a)
	if pol, fixed := ci.polarity[level]; fixed {
		if pol {
			return f.restrictRec(f.store.high(a), ci)
		}
		return f.restrictRec(f.store.low(a), ci)
	}
	lo, err := f.restrictRec(f.store.low(a), ci)
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	hi, err := f.restrictRec(f.store.high(a), ci)
	f.store.popref(1)
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	f.store.pushref(hi)
	res, err := f.store.mk(level, lo, hi)
	f.store.popref(2)
	return res, err
}

// Constrain computes the generalized cofactor of n with respect to c (not
// necessarily a cube): a diagram agreeing with n everywhere c holds (not
// necessarily the smallest such diagram), following the recursive definition from Coudert & Madre's
// restrict operator.
func (f *Factory) Constrain(n, c Node) (Node, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return Node{}, err
	}
	b, err := checkedID(f, c)
	if err != nil {
		return Node{}, err
	}
	res, err := f.constrainRec(a, b)
	if err != nil {
		return Node{}, err
	}
	return f.wrap(res), nil
}

// ConstrainWith is like Constrain but consumes n.
func (f *Factory) ConstrainWith(n *Node, c Node) (Node, error) {
	res, err := f.Constrain(*n, c)
	if err != nil {
		return Node{}, err
	}
	consume(n)
	return res, nil
}

func (f *Factory) constrainRec(a, c int) (int, error) {
	if c == 0 {
		return 0, nil
	}
	if c == 1 || a < 2 {
		return a, nil
	}
	if res, ok := f.restrictCache.lookup2(a, c, 0); ok {
		return res, nil
	}

	la, lc := f.topLevel(a), f.topLevel(c)
	var res int
	var err error
	switch {
	case la < lc:
		var lo, hi int
		lo, err = f.constrainRec(f.store.low(a), c)
		if err != nil {
			return -1, err
		}
		f.store.pushref(lo)
		hi, err = f.constrainRec(f.store.high(a), c)
		f.store.popref(1)
		if err != nil {
			return -1, err
		}
		f.store.pushref(lo)
		f.store.pushref(hi)
		res, err = f.store.mk(la, lo, hi)
		f.store.popref(2)
	case la > lc:
		if f.store.low(c) == 0 {
			res, err = f.constrainRec(a, f.store.high(c))
		} else if f.store.high(c) == 0 {
			res, err = f.constrainRec(a, f.store.low(c))
		} else {
			var lo, hi int
			lo, err = f.constrainRec(a, f.store.low(c))
			if err != nil {
				return -1, err
			}
			f.store.pushref(lo)
			hi, err = f.constrainRec(a, f.store.high(c))
			f.store.popref(1)
			if err != nil {
				return -1, err
			}
			f.store.pushref(lo)
			f.store.pushref(hi)
			res, err = f.store.mk(lc, lo, hi)
			f.store.popref(2)
		}
	default:
		if f.store.low(c) == 0 {
			res, err = f.constrainRec(f.store.high(a), f.store.high(c))
		} else if f.store.high(c) == 0 {
			res, err = f.constrainRec(f.store.low(a), f.store.low(c))
		} else {
			var lo, hi int
			lo, err = f.constrainRec(f.store.low(a), f.store.low(c))
			if err != nil {
				return -1, err
			}
			f.store.pushref(lo)
			hi, err = f.constrainRec(f.store.high(a), f.store.high(c))
			f.store.popref(1)
			if err != nil {
				return -1, err
			}
			f.store.pushref(lo)
			f.store.pushref(hi)
			res, err = f.store.mk(la, lo, hi)
			f.store.popref(2)
		}
	}
	if err != nil {
		return -1, err
	}
	f.restrictCache.insert2(a, c, 0, res)
	return res, nil
}

// Simplify computes the Coudert-Madre simplification of n with respect to
// the care set c: a diagram that agrees with n on every assignment
// satisfying c. Its size is not checked against n's. Unlike Constrain, simplify never needs to pick
// an arbitrary branch of c when c depends on variables n does not — it
// folds those branches together with Or first, so the result only ever
// depends on c through the assignments it actually distinguishes for n.
func (f *Factory) Simplify(n, c Node) (Node, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return Node{}, err
	}
	b, err := checkedID(f, c)
	if err != nil {
		return Node{}, err
	}
	res, err := f.simplifyRec(a, b)
	if err != nil {
		return Node{}, err
	}
	return f.wrap(res), nil
}

// SimplifyWith is like Simplify but consumes n.
func (f *Factory) SimplifyWith(n *Node, c Node) (Node, error) {
	res, err := f.Simplify(*n, c)
	if err != nil {
		return Node{}, err
	}
	consume(n)
	return res, nil
}

func (f *Factory) simplifyRec(a, c int) (int, error) {
	if c == 1 || a < 2 {
		return a, nil
	}
	if c == 0 {
		return 0, nil
	}

	la, lc := f.topLevel(a), f.topLevel(c)
	if la < lc {
		lo, err := f.simplifyRec(f.store.low(a), c)
		if err != nil {
			return -1, err
		}
		f.store.pushref(lo)
		hi, err := f.simplifyRec(f.store.high(a), c)
		f.store.popref(1)
		if err != nil {
			return -1, err
		}
		f.store.pushref(lo)
		f.store.pushref(hi)
		res, err := f.store.mk(la, lo, hi)
		f.store.popref(2)
		return res, err
	}
	if la > lc {
		if f.store.low(c) == 0 {
			return f.simplifyRec(a, f.store.high(c))
		}
		if f.store.high(c) == 0 {
			return f.simplifyRec(a, f.store.low(c))
		}
		projected, err := f.apply(OPor, f.store.low(c), f.store.high(c))
		if err != nil {
			return -1, err
		}
		f.store.pushref(projected)
		res, err := f.simplifyRec(a, projected)
		f.store.popref(1)
		return res, err
	}
	if f.store.low(c) == 0 {
		return f.simplifyRec(f.store.high(a), f.store.high(c))
	}
	if f.store.high(c) == 0 {
		return f.simplifyRec(f.store.low(a), f.store.low(c))
	}
	lo, err := f.simplifyRec(f.store.low(a), f.store.low(c))
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	hi, err := f.simplifyRec(f.store.high(a), f.store.high(c))
	f.store.popref(1)
	if err != nil {
		return -1, err
	}
	f.store.pushref(lo)
	f.store.pushref(hi)
	res, err := f.store.mk(la, lo, hi)
	f.store.popref(2)
	return res, err
}
