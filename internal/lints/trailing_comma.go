package lints

import "github.com/sigopt/sigopt-tools/internal/pyast"

// DetectSingleElementTuple flags statements whose value is a one-element
// tuple literal, which is easy to write by accident with a stray comma.
func DetectSingleElementTuple(n *pyast.Node) (bool, string) {
	switch n.Kind {
	case pyast.Assign, pyast.AugAssign, pyast.Expr, pyast.Return, pyast.Yield:
		if n.Value.Is(pyast.Tuple) && len(n.Value.Elts) == 1 {
			return true, "Prefer `tuple` for single-element tuples"
		}
	}
	return false, ""
}
