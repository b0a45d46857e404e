package lints

import (
	"fmt"

	"github.com/sigopt/sigopt-tools/internal/pyast"
)

func DetectMapFilter(n *pyast.Node) (bool, string) {
	if n.IsCallTo("map", "filter") {
		return true, fmt.Sprintf("use generator expression over the %s function", n.Func.Ident)
	}
	return false, ""
}
