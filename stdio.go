// Copyright (c) 2024 The symdd Authors
//
// MIT License

package symdd

import (
	"fmt"
	"strings"
)

// String renders n as a human-readable cube expression: a sum of cubes of
// literals, "0" for False, "1" for True. Intended for debugging and test
// failure messages, not as a stable wire format.
func (n Node) String() string {
	if err := n.valid(n.f); err != nil {
		return fmt.Sprintf("<invalid node: %v>", err)
	}
	if n.id == 0 {
		return "0"
	}
	if n.id == 1 {
		return "1"
	}
	var terms []string
	n.f.toStringRec(n.id, nil, &terms)
	return strings.Join(terms, " + ")
}

func (f *Factory) toStringRec(a int, path []string, terms *[]string) {
	if a == 0 {
		return
	}
	if a == 1 {
		if len(path) == 0 {
			*terms = append(*terms, "1")
			return
		}
		*terms = append(*terms, strings.Join(path, "&"))
		return
	}
	level := f.store.level(a)
	if lo := f.store.low(a); lo != 0 {
		f.toStringRec(lo, append(path, fmt.Sprintf("!x%d", level)), terms)
	}
	if hi := f.store.high(a); hi != 0 {
		f.toStringRec(hi, append(path, fmt.Sprintf("x%d", level)), terms)
	}
}

// ToStringWithDomains is like String but groups the Boolean variables
// belonging to each finite-domain handle in domains into a single "dN=v"
// term instead of printing their individual bits.
func (f *Factory) ToStringWithDomains(n Node, domains []int) (string, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return "", err
	}
	levelToDomain := make(map[int32]int)
	for _, d := range domains {
		fd, err := f.fddDomain(d)
		if err != nil {
			return "", err
		}
		for _, lvl := range fd.bits {
			levelToDomain[lvl] = d
		}
	}
	if a == 0 {
		return "0", nil
	}
	if a == 1 {
		return "1", nil
	}
	var terms []string
	f.toStringDomainsRec(a, nil, levelToDomain, domains, &terms)
	return strings.Join(terms, " + "), nil
}

func (f *Factory) toStringDomainsRec(a int, path []string, levelToDomain map[int32]int, domains []int, terms *[]string) {
	if a == 0 {
		return
	}
	if a == 1 {
		if len(path) == 0 {
			*terms = append(*terms, "1")
			return
		}
		*terms = append(*terms, strings.Join(path, "&"))
		return
	}
	level := f.store.level(a)
	if d, ok := levelToDomain[level]; ok {
		// decode this domain's value along both branches that survive and
		// emit one "dN=v" term per concrete value, rather than individual
		// bit literals.
		if lo := f.store.low(a); lo != 0 {
			v, _ := f.scanVarRec(a, f.fdds[d].bits, 0)
			f.toStringDomainsRec(lo, append(path, fmt.Sprintf("d%d=%d", d, v)), levelToDomain, domains, terms)
		}
		if hi := f.store.high(a); hi != 0 {
			v, _ := f.scanVarRec(a, f.fdds[d].bits, 0)
			f.toStringDomainsRec(hi, append(path, fmt.Sprintf("d%d=%d", d, v)), levelToDomain, domains, terms)
		}
		return
	}
	if lo := f.store.low(a); lo != 0 {
		f.toStringDomainsRec(lo, append(path, fmt.Sprintf("!x%d", level)), levelToDomain, domains, terms)
	}
	if hi := f.store.high(a); hi != 0 {
		f.toStringDomainsRec(hi, append(path, fmt.Sprintf("x%d", level)), levelToDomain, domains, terms)
	}
}

// PrintDot renders n as a Graphviz dot digraph: one node per diagram node,
// solid edges for the high branch and dashed edges for the low branch,
// following the usual BDD/ZDD drawing convention.
func (f *Factory) PrintDot(n Node) (string, error) {
	a, err := checkedID(f, n)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("digraph symdd {\n")
	b.WriteString("  0 [shape=box label=\"0\"];\n")
	b.WriteString("  1 [shape=box label=\"1\"];\n")
	seen := make(map[int]bool)
	f.printDotRec(a, seen, &b)
	b.WriteString("}\n")
	return b.String(), nil
}

func (f *Factory) printDotRec(a int, seen map[int]bool, b *strings.Builder) {
	if a < 2 || seen[a] {
		return
	}
	seen[a] = true
	fmt.Fprintf(b, "  %d [label=\"x%d\"];\n", a, f.store.level(a))
	fmt.Fprintf(b, "  %d -> %d [style=dashed];\n", a, f.store.low(a))
	fmt.Fprintf(b, "  %d -> %d [style=solid];\n", a, f.store.high(a))
	f.printDotRec(f.store.low(a), seen, b)
	f.printDotRec(f.store.high(a), seen, b)
}
