package lints

import "github.com/sigopt/sigopt-tools/internal/pyast"

// isMethodCall reports whether n calls an attribute named one of methods,
// on any receiver.
func isMethodCall(n *pyast.Node, methods ...string) bool {
	if !n.Is(pyast.Call) || !n.Func.Is(pyast.Attribute) {
		return false
	}
	for _, m := range methods {
		if n.Func.Ident == m {
			return true
		}
	}
	return false
}

func isStringLike(n *pyast.Node) bool {
	return n.Is(pyast.Str, pyast.JoinedStr, pyast.FormattedValue)
}
