// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

// VarSet is an immutable, canonical set of variables, represented internally
// as a BDD cube (a chain of nodes with both branches leading to the next
// variable's node and only one branch surviving, terminated by node 1).
// Because the store hash-conses nodes, two VarSets containing the same
// variables always share one underlying id, so id equality is set equality
// and the id doubles as a cache tag for quantification and composition
// (valid only within the lifetime of the owning Factory's operator caches,
// which are cleared on every gc sweep).
type VarSet struct {
	f  *Factory
	id int
}

// Makeset builds a VarSet from a list of factory-level variable indices
// (levels). Duplicate entries are harmless; order does not matter.
func (f *Factory) Makeset(vars []int32) (VarSet, error) {
	vars = mergeLevels(vars, nil, true) // sorted, duplicates dropped
	id := 1
	for i := len(vars) - 1; i >= 0; i-- {
		v := vars[i]
		if v < 0 || v >= f.store.varnum() {
			return VarSet{}, newError(KindDomain, "variable index %d out of range [0,%d)", v, f.store.varnum())
		}
		f.store.pushref(id)
		nid, err := f.store.mk(v, 0, id)
		f.store.popref(1)
		if err != nil {
			return VarSet{}, err
		}
		id = nid
	}
	return VarSet{f: f, id: id}, nil
}

// Scanset returns the variable levels contained in vs, in increasing order.
func (vs VarSet) Scanset() []int32 {
	var out []int32
	for n := vs.id; n > 1; n = vs.f.store.high(n) {
		out = append(out, vs.f.store.level(n))
	}
	return out
}

// Size returns the number of variables in vs.
func (vs VarSet) Size() int {
	n := 0
	for id := vs.id; id > 1; id = vs.f.store.high(id) {
		n++
	}
	return n
}

// Union returns the VarSet containing the variables of vs and other.
func (vs VarSet) Union(other VarSet) (VarSet, error) {
	return vs.f.Makeset(mergeLevels(vs.Scanset(), other.Scanset(), true))
}

// Intersect returns the VarSet containing only the variables present in
// both vs and other.
func (vs VarSet) Intersect(other VarSet) (VarSet, error) {
	return vs.f.Makeset(mergeLevels(vs.Scanset(), other.Scanset(), false))
}

// Diff returns the VarSet containing the variables of vs that are not in
// other.
func (vs VarSet) Diff(other VarSet) (VarSet, error) {
	excl := make(map[int32]bool)
	for _, v := range other.Scanset() {
		excl[v] = true
	}
	var out []int32
	for _, v := range vs.Scanset() {
		if !excl[v] {
			out = append(out, v)
		}
	}
	return vs.f.Makeset(out)
}

// mergeLevels merges two sorted level slices; union=true keeps the union,
// union=false keeps the intersection.
func mergeLevels(a, b []int32, union bool) []int32 {
	set := make(map[int32]bool, len(a)+len(b))
	for _, v := range a {
		set[v] = union
	}
	if union {
		for _, v := range b {
			set[v] = true
		}
	} else {
		for _, v := range b {
			if _, ok := set[v]; ok {
				set[v] = true
			}
		}
	}
	out := make([]int32, 0, len(set))
	for v, keep := range set {
		if keep {
			out = append(out, v)
		}
	}
	// simple insertion sort: variable counts are small relative to node
	// counts in the diagrams this package targets
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
