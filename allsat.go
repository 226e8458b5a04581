// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

// Profile is one row of an all-sat enumeration: one entry per declared
// variable, 0 or 1 if the path fixes that variable, -1 ("don't care") if
// the diagram never tests it along that path.
type Profile []int8

// AllSatIter walks every path from a diagram to the 1 terminal, yielding
// one Profile per path. Paths are computed eagerly at construction (the
// teacher's Allsat does the same, building its whole result list up front)
// rather than lazily, so Next only ever does O(1) work; that trades a
// larger up-front memory footprint for a simpler, allocation-free Next.
type AllSatIter struct {
	profiles []Profile
	pos      int
}

// AllSat builds an AllSatIter over every satisfying path of n.
func (f *Factory) AllSat(n Node) (*AllSatIter, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return nil, err
	}
	it := &AllSatIter{}
	profile := make(Profile, f.store.varnum())
	for i := range profile {
		profile[i] = -1
	}
	f.allsatRec(a, profile, it)
	return it, nil
}

func (f *Factory) allsatRec(a int, profile Profile, it *AllSatIter) {
	if a == 0 {
		return
	}
	if a == 1 {
		out := make(Profile, len(profile))
		copy(out, profile)
		it.profiles = append(it.profiles, out)
		return
	}
	level := f.store.level(a)
	if lo := f.store.low(a); lo != 0 {
		profile[level] = 0
		f.allsatRec(lo, profile, it)
	}
	if hi := f.store.high(a); hi != 0 {
		profile[level] = 1
		f.allsatRec(hi, profile, it)
	}
	profile[level] = -1
}

// Next returns the next Profile and true, or a zero Profile and false once
// every path has been produced.
func (it *AllSatIter) Next() (Profile, bool) {
	if it.pos >= len(it.profiles) {
		return nil, false
	}
	p := it.profiles[it.pos]
	it.pos++
	return p, true
}

// Len returns the total number of paths the iterator will yield.
func (it *AllSatIter) Len() int { return len(it.profiles) }

// Reset rewinds the iterator to the first path.
func (it *AllSatIter) Reset() { it.pos = 0 }
