package lints

import (
	"fmt"

	"github.com/sigopt/sigopt-tools/internal/pyast"
)

// single-use iterators that must not escape a function unwrapped.
var unsafeIterators = []string{"range", "zip", "map", "filter"}

// DetectUnsafeIterator flags functions returning a bare single-use iterator
// and additions involving one.
func DetectUnsafeIterator(n *pyast.Node) (bool, string) {
	switch n.Kind {
	case pyast.Return:
		if n.Value.IsCallTo(unsafeIterators...) {
			return true, fmt.Sprintf(
				"returning `%s` is not allowed, suggest using `yield from` syntax "+
					"or returning `zigopt.common.lists.safe_iterator`", n.Value.Func.Ident)
		}
	case pyast.BinOp:
		if n.Op == "+" && (n.Left.IsCallTo(unsafeIterators...) || n.Right.IsCallTo(unsafeIterators...)) {
			return true, "adding iterators is not allowed"
		}
	}
	return false, ""
}
