// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

// SatOne returns one satisfying cube of n, as a conjunction of literals for
// only the variables n actually branches on. Panics are never used to
// signal "n is unsatisfiable" — Apply/Ite already guarantee n != 0 unless
// the caller built it that way on purpose, so that case simply yields
// False.
func (f *Factory) SatOne(n Node) (Node, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return Node{}, err
	}
	if a == 0 {
		return f.False(), nil
	}
	res, err := f.satOneRec(a)
	if err != nil {
		return Node{}, err
	}
	return f.wrap(res), nil
}

func (f *Factory) satOneRec(a int) (int, error) {
	if a < 2 {
		return a, nil
	}
	lo, hi := f.store.low(a), f.store.high(a)
	level := f.store.level(a)
	if lo == 0 {
		sub, err := f.satOneRec(hi)
		if err != nil {
			return -1, err
		}
		f.store.pushref(sub)
		res, err := f.store.mk(level, 0, sub)
		f.store.popref(1)
		return res, err
	}
	sub, err := f.satOneRec(lo)
	if err != nil {
		return -1, err
	}
	f.store.pushref(sub)
	res, err := f.store.mk(level, sub, 0)
	f.store.popref(1)
	return res, err
}

// FullSatOne is like SatOne but every declared variable appears in the
// result, with pol (true for positive) used for any variable n does not
// branch on.
func (f *Factory) FullSatOne(n Node, pol bool) (Node, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return Node{}, err
	}
	if a == 0 {
		return f.False(), nil
	}
	res, err := f.fullSatOneRec(a, 0, pol)
	if err != nil {
		return Node{}, err
	}
	return f.wrap(res), nil
}

func (f *Factory) fullSatOneRec(a int, level int32, pol bool) (int, error) {
	if level >= f.store.varnum() {
		return 1, nil
	}
	if a >= 2 && f.store.level(a) == level {
		lo, hi := f.store.low(a), f.store.high(a)
		if lo == 0 {
			sub, err := f.fullSatOneRec(hi, level+1, pol)
			if err != nil {
				return -1, err
			}
			f.store.pushref(sub)
			res, err := f.store.mk(level, 0, sub)
			f.store.popref(1)
			return res, err
		}
		sub, err := f.fullSatOneRec(lo, level+1, pol)
		if err != nil {
			return -1, err
		}
		f.store.pushref(sub)
		res, err := f.store.mk(level, sub, 0)
		f.store.popref(1)
		return res, err
	}
	// level is free: fill it with the requested polarity
	sub, err := f.fullSatOneRec(a, level+1, pol)
	if err != nil {
		return -1, err
	}
	f.store.pushref(sub)
	var res int
	if pol {
		res, err = f.store.mk(level, 0, sub)
	} else {
		res, err = f.store.mk(level, sub, 0)
	}
	f.store.popref(1)
	return res, err
}

// SatOneSet is like SatOne but prefers, for every variable in vars, the
// branch matching pol over whichever branch SatOne would otherwise pick
// first; variables outside vars (and variables n does not branch on) are
// unconstrained as in SatOne.
func (f *Factory) SatOneSet(n Node, vars VarSet, pol bool) (Node, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return Node{}, err
	}
	if vars.f != nil && vars.f != f {
		return Node{}, newError(KindModeViolation, "varset belongs to a different factory")
	}
	if a == 0 {
		return f.False(), nil
	}
	preferred := make(map[int32]bool)
	for _, l := range vars.Scanset() {
		preferred[l] = true
	}
	res, err := f.satOneSetRec(a, preferred, pol)
	if err != nil {
		return Node{}, err
	}
	return f.wrap(res), nil
}

func (f *Factory) satOneSetRec(a int, preferred map[int32]bool, pol bool) (int, error) {
	if a < 2 {
		return a, nil
	}
	lo, hi := f.store.low(a), f.store.high(a)
	level := f.store.level(a)

	wantHigh := hi != 0 && (lo == 0 || (preferred[level] && pol))
	if wantHigh {
		sub, err := f.satOneSetRec(hi, preferred, pol)
		if err != nil {
			return -1, err
		}
		f.store.pushref(sub)
		res, err := f.store.mk(level, 0, sub)
		f.store.popref(1)
		return res, err
	}
	sub, err := f.satOneSetRec(lo, preferred, pol)
	if err != nil {
		return -1, err
	}
	f.store.pushref(sub)
	res, err := f.store.mk(level, sub, 0)
	f.store.popref(1)
	return res, err
}
