package lints

import "github.com/sigopt/sigopt-tools/internal/pyast"

// isComprehendedSet reports whether n builds a set from a comprehension,
// either {x for x in y} or set(<generator or list comprehension>).
func isComprehendedSet(n *pyast.Node) bool {
	if n.Is(pyast.SetComp) {
		return true
	}
	if n.IsCallTo("set") {
		for _, arg := range n.Args {
			if arg.Is(pyast.GeneratorExp, pyast.ListComp) {
				return true
			}
		}
	}
	return false
}

// DetectSetComparison flags subset and superset comparisons against a
// comprehended set; any() and all() short-circuit and say what is meant.
func DetectSetComparison(n *pyast.Node) (bool, string) {
	if !n.Is(pyast.Compare) {
		return false, ""
	}
	operands := append([]*pyast.Node{n.Left}, n.Comparators...)
	if len(operands) != len(n.Ops)+1 {
		return false, ""
	}
	for i, op := range n.Ops {
		if op != "<=" && op != ">=" {
			continue
		}
		if isComprehendedSet(operands[i]) || isComprehendedSet(operands[i+1]) {
			return true, "use any() and all() over comprehended set comparisons"
		}
	}
	return false, ""
}
