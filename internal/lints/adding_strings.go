package lints

import "github.com/sigopt/sigopt-tools/internal/pyast"

// DetectAddingStrings flags "a" + "b" where implicit concatenation inside
// parentheses would do.
func DetectAddingStrings(n *pyast.Node) (bool, string) {
	if n.Is(pyast.BinOp) && n.Op == "+" && isStringLike(n.Left) && isStringLike(n.Right) {
		return true, "use parenthesis instead of addition for long strings"
	}
	return false, ""
}
