// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

// MintermIter enumerates every individual minterm (fully-specified
// assignment) implied by a diagram over a fixed VarSet domain, expanding
// each don't-care path into all of its concrete assignments with an
// odometer: the rightmost free variable flips fastest, carrying into the
// next free variable to its left exactly like the least-significant digit
// of a counter. Unlike AllSatIter, which returns one Profile per path with
// -1 standing for "either value", MintermIter never leaves a -1 in what it
// returns from Next.
type MintermIter struct {
	f       *Factory
	vars    []int32
	rows    []Profile
	rowIdx  int
	dcIdx   []int // indices into vars/current that are don't-care for rows[rowIdx]
	current Profile
	started bool
	done    bool
	base    Node
	total   int
}

// Minterms builds a MintermIter over n restricted to the variables in vars.
// n is expected to depend only on variables in vars; any other variable n
// branches on is treated as fixed by whatever value its path takes (it does
// not appear in the Profiles this iterator yields).
func (f *Factory) Minterms(n Node, vars VarSet) (*MintermIter, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return nil, err
	}
	if vars.f != nil && vars.f != f {
		return nil, newError(KindModeViolation, "varset belongs to a different factory")
	}
	domain := vars.Scanset()
	it := &MintermIter{f: f, vars: domain, base: n}
	profile := make(Profile, len(domain))
	for i := range profile {
		profile[i] = -1
	}
	pos := make(map[int32]int, len(domain))
	for i, v := range domain {
		pos[v] = i
	}
	f.mintermRec(a, profile, pos, it)
	for _, row := range it.rows {
		dontCares := 0
		for _, v := range row {
			if v == -1 {
				dontCares++
			}
		}
		it.total += 1 << uint(dontCares)
	}
	if len(it.rows) > 0 {
		it.loadRow(0)
	} else {
		it.done = true
	}
	return it, nil
}

func (f *Factory) mintermRec(a int, profile Profile, pos map[int32]int, it *MintermIter) {
	if a == 0 {
		return
	}
	if a == 1 {
		row := make(Profile, len(profile))
		copy(row, profile)
		it.rows = append(it.rows, row)
		return
	}
	level := f.store.level(a)
	idx, tracked := pos[level]
	if lo := f.store.low(a); lo != 0 {
		if tracked {
			profile[idx] = 0
		}
		f.mintermRec(lo, profile, pos, it)
	}
	if hi := f.store.high(a); hi != 0 {
		if tracked {
			profile[idx] = 1
		}
		f.mintermRec(hi, profile, pos, it)
	}
	if tracked {
		profile[idx] = -1
	}
}

func (it *MintermIter) loadRow(i int) {
	it.rowIdx = i
	row := it.rows[i]
	it.current = make(Profile, len(row))
	copy(it.current, row)
	it.dcIdx = it.dcIdx[:0]
	for idx, v := range row {
		if v == -1 {
			it.current[idx] = 0
			it.dcIdx = append(it.dcIdx, idx)
		}
	}
	it.started = false
}

// Len returns the total number of minterms this iterator will yield: the
// sum, over every path to the 1 terminal, of 2^(number of don't-care
// variables on that path) — the full expansion, not the number of DFS
// paths (rows) before don't-cares are accounted for.
func (it *MintermIter) Len() int { return it.total }

// Next returns the next fully-specified assignment, or false once every
// minterm of every row has been produced.
func (it *MintermIter) Next() (Profile, bool) {
	if it.done {
		return nil, false
	}
	if !it.started {
		it.started = true
		out := make(Profile, len(it.current))
		copy(out, it.current)
		return out, true
	}
	if !it.advanceOdometer() {
		if !it.advanceRow() {
			return nil, false
		}
	}
	out := make(Profile, len(it.current))
	copy(out, it.current)
	return out, true
}

// advanceOdometer flips the rightmost don't-care digit that is still 0 to
// 1, carrying (resetting to 0 and flipping its left neighbor) through any
// digits that were already 1, exactly like incrementing a binary counter.
// It reports whether there was a next state within the current row.
func (it *MintermIter) advanceOdometer() bool {
	for i := len(it.dcIdx) - 1; i >= 0; i-- {
		idx := it.dcIdx[i]
		if it.current[idx] == 0 {
			it.current[idx] = 1
			for j := i + 1; j < len(it.dcIdx); j++ {
				it.current[it.dcIdx[j]] = 0
			}
			return true
		}
	}
	return false
}

func (it *MintermIter) advanceRow() bool {
	if it.rowIdx+1 >= len(it.rows) {
		it.done = true
		return false
	}
	it.loadRow(it.rowIdx + 1)
	it.started = true
	return true
}

// FastForward abandons every remaining don't-care expansion of the current
// row and jumps straight to the first minterm of the next row, returning it
// (or false if this was the last row).
func (it *MintermIter) FastForward() (Profile, bool) {
	if it.done {
		return nil, false
	}
	if !it.advanceRow() {
		return nil, false
	}
	out := make(Profile, len(it.current))
	copy(out, it.current)
	return out, true
}

// SkipDontCare abandons the remaining states of the single rightmost
// don't-care digit currently being varied, advancing whatever digit is next
// to its left instead. It is the fine-grained counterpart to FastForward:
// useful when a caller has already seen enough of one free variable's
// combinations but still wants the rest of this row's don't-cares expanded.
func (it *MintermIter) SkipDontCare() (Profile, bool) {
	if it.done || len(it.dcIdx) == 0 {
		return it.FastForward()
	}
	last := it.dcIdx[len(it.dcIdx)-1]
	it.current[last] = 0
	if !it.advanceOdometerFrom(len(it.dcIdx) - 2) {
		if !it.advanceRow() {
			return nil, false
		}
	}
	out := make(Profile, len(it.current))
	copy(out, it.current)
	return out, true
}

func (it *MintermIter) advanceOdometerFrom(start int) bool {
	for i := start; i >= 0; i-- {
		idx := it.dcIdx[i]
		if it.current[idx] == 0 {
			it.current[idx] = 1
			for j := i + 1; j < len(it.dcIdx); j++ {
				it.current[it.dcIdx[j]] = 0
			}
			return true
		}
	}
	return false
}

// Remove subtracts the most recently returned minterm from the iterator's
// underlying diagram (via OPdiff, same as the teacher's diff operation) and
// mutates the iterator's own view of that diagram to the result: it.base
// is replaced by the shrunk diagram, so a second Remove call subtracts from
// what the first one left behind. The shrunk diagram is also returned so
// the caller can hold and eventually Free their own handle to it; removal
// does not affect which minterms this iterator still has left to yield,
// since that is driven by the original rows computed at construction time,
// not by it.base. Calling Remove before the first Next is a KindIterator
// error.
func (it *MintermIter) Remove() (Node, error) {
	if !it.started {
		return Node{}, newError(KindIterator, "Remove called before Next returned a minterm")
	}
	f := it.f
	id := 1
	for i := len(it.vars) - 1; i >= 0; i-- {
		v := it.current[i]
		f.store.pushref(id)
		var nid int
		var err error
		if v == 1 {
			nid, err = f.store.mk(it.vars[i], 0, id)
		} else {
			nid, err = f.store.mk(it.vars[i], id, 0)
		}
		f.store.popref(1)
		if err != nil {
			return Node{}, err
		}
		id = nid
	}
	base, err := checkedID(f, it.base)
	if err != nil {
		return Node{}, err
	}
	res, err := f.apply(OPdiff, base, id)
	if err != nil {
		return Node{}, err
	}
	// it.base only ever aliases a diagram id, matching how the constructor
	// stores the caller's Node without taking its own reference; the
	// returned Node below is the one the caller owns and must Free.
	it.base = Node{f: f, id: res}
	return f.wrap(res), nil
}
