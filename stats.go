// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

import "math/big"

// NodeCount returns the number of distinct non-terminal nodes reachable
// from n.
func (f *Factory) NodeCount(n Node) (int, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return 0, err
	}
	seen := make(map[int]bool)
	f.countRec(a, seen)
	return len(seen), nil
}

func (f *Factory) countRec(a int, seen map[int]bool) {
	if a < 2 || seen[a] {
		return
	}
	seen[a] = true
	f.countRec(f.store.low(a), seen)
	f.countRec(f.store.high(a), seen)
}

// Support returns the VarSet of variables n actually depends on.
func (f *Factory) Support(n Node) (VarSet, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return VarSet{}, err
	}
	seen := make(map[int]bool)
	levels := make(map[int32]bool)
	f.supportRec(a, seen, levels)
	vars := make([]int32, 0, len(levels))
	for l := range levels {
		vars = append(vars, l)
	}
	return f.Makeset(vars)
}

func (f *Factory) supportRec(a int, seen map[int]bool, levels map[int32]bool) {
	if a < 2 || seen[a] {
		return
	}
	seen[a] = true
	levels[f.store.level(a)] = true
	f.supportRec(f.store.low(a), seen, levels)
	f.supportRec(f.store.high(a), seen, levels)
}

// PathCount returns the number of distinct paths from n to the 1 terminal.
func (f *Factory) PathCount(n Node) (*big.Int, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return nil, err
	}
	memo := make(map[int]*big.Int)
	return f.pathCountRec(a, memo), nil
}

func (f *Factory) pathCountRec(a int, memo map[int]*big.Int) *big.Int {
	if a == 0 {
		return big.NewInt(0)
	}
	if a == 1 {
		return big.NewInt(1)
	}
	if v, ok := memo[a]; ok {
		return v
	}
	res := new(big.Int).Add(
		f.pathCountRec(f.store.low(a), memo),
		f.pathCountRec(f.store.high(a), memo),
	)
	memo[a] = res
	return res
}

// SatCount returns the number of satisfying assignments of n. In BDDMode a
// variable not tested on a given path is free and contributes a factor of
// 2, following the teacher's level-gap doubling technique in operations.go;
// SatCount(1) == 2^varNum and SatCount(0) == 0. In ZDDMode a skipped level
// means the opposite: that variable is forced absent from every set in the
// family (the reduction rule only elides a node when its high child is the
// zero terminal), so no doubling applies there at all — SatCount(0) == 0,
// SatCount(1) == 1 (the family containing only the empty set), and
// SatCount(Universe) == 2^varNum, distinct from the 1 terminal.
func (f *Factory) SatCount(n Node) (*big.Int, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return nil, err
	}
	memo := make(map[int]*big.Int)
	if f.mode == ZDDMode {
		return f.satCountZDDRec(a, memo), nil
	}
	res := f.satCountRec(a, memo)
	// root may itself sit below level 0: every variable strictly above its
	// level is free on every satisfying assignment counted so far.
	return new(big.Int).Lsh(res, uint(f.topLevel(a))), nil
}

func (f *Factory) satCountRec(a int, memo map[int]*big.Int) *big.Int {
	if a == 0 {
		return big.NewInt(0)
	}
	if a == 1 {
		return big.NewInt(1)
	}
	if v, ok := memo[a]; ok {
		return v
	}
	lo, hi := f.store.low(a), f.store.high(a)
	level := f.store.level(a)
	loGap := f.topLevel(lo) - level - 1
	hiGap := f.topLevel(hi) - level - 1

	loCount := new(big.Int).Lsh(f.satCountRec(lo, memo), uint(loGap))
	hiCount := new(big.Int).Lsh(f.satCountRec(hi, memo), uint(hiGap))
	res := new(big.Int).Add(loCount, hiCount)
	memo[a] = res
	return res
}

// satCountZDDRec sums the two children with no level-gap scaling: a level
// absent from the path (whether above the root or between a node and its
// low child) is a variable the family never includes, not a free choice.
func (f *Factory) satCountZDDRec(a int, memo map[int]*big.Int) *big.Int {
	if a == 0 {
		return big.NewInt(0)
	}
	if a == 1 {
		return big.NewInt(1)
	}
	if v, ok := memo[a]; ok {
		return v
	}
	res := new(big.Int).Add(
		f.satCountZDDRec(f.store.low(a), memo),
		f.satCountZDDRec(f.store.high(a), memo),
	)
	memo[a] = res
	return res
}

// VarProfile returns, indexed by variable level, how many nodes reachable
// from n sit at that level.
func (f *Factory) VarProfile(n Node) ([]int, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return nil, err
	}
	profile := make([]int, f.store.varnum())
	seen := make(map[int]bool)
	f.profileRec(a, seen, profile)
	return profile, nil
}

func (f *Factory) profileRec(a int, seen map[int]bool, profile []int) {
	if a < 2 || seen[a] {
		return
	}
	seen[a] = true
	profile[f.store.level(a)]++
	f.profileRec(f.store.low(a), seen, profile)
	f.profileRec(f.store.high(a), seen, profile)
}
