package lints

import (
	"strings"

	"github.com/sigopt/sigopt-tools/internal/pyast"
)

const (
	forbiddenComputePackage = "libsigopt.compute"
	msgForbiddenCompute     = "Should not import from libsigopt.compute, consider moving the class/method to libsigopt.aux or libsigopt.views"
)

// DetectComputeImport flags imports of libsigopt.compute.
func DetectComputeImport(n *pyast.Node) (bool, string) {
	switch n.Kind {
	case pyast.Import:
		for _, alias := range n.Names {
			if alias.Ident == forbiddenComputePackage {
				return true, msgForbiddenCompute
			}
		}
	case pyast.ImportFrom:
		// relative imports without a module path name nothing to match
		if n.Ident != "" && strings.HasPrefix(n.Ident, forbiddenComputePackage) {
			return true, msgForbiddenCompute
		}
	}
	return false, ""
}
