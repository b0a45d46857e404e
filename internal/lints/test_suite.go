package lints

import (
	"fmt"
	"strings"

	"github.com/sigopt/sigopt-tools/internal/pyast"
)

// pytest collects classes with this prefix as test suites.
const testSuitePrefix = "Test"

var testImportPrefixes = []string{"Test", "test_"}

// DetectTestSuiteInheritance flags a test suite class inheriting from
// another test suite, which makes pytest run the base suite twice.
func DetectTestSuiteInheritance(n *pyast.Node) (bool, string) {
	if !n.Is(pyast.ClassDef) || !strings.HasPrefix(n.Ident, testSuitePrefix) {
		return false, ""
	}
	for _, base := range n.Bases {
		if base.Is(pyast.Name) && strings.HasPrefix(base.Ident, testSuitePrefix) {
			return true, fmt.Sprintf(
				"Inheriting the test suite %s may cause it to get run twice."+
					" Classes beginning with `%s` are interpreted by pytest as test suites.",
				base.Ident, testSuitePrefix)
		}
	}
	return false, ""
}

// DetectTestSuiteImport flags importing names that pytest would collect
// again in the importing module.
func DetectTestSuiteImport(n *pyast.Node) (bool, string) {
	if !n.Is(pyast.Import, pyast.ImportFrom) {
		return false, ""
	}
	for _, alias := range n.Names {
		name := alias.AsName
		if name == "" {
			name = alias.Ident
		}
		for _, prefix := range testImportPrefixes {
			if strings.HasPrefix(name, prefix) {
				return true, fmt.Sprintf(
					"Importing the test suite %s may cause it to get run twice."+
						" Imported objects beginning with `%s` are interpreted by pytest as test suites.",
					name, prefix)
			}
		}
	}
	return false, ""
}
