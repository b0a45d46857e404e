package lints

import "github.com/sigopt/sigopt-tools/internal/pyast"

const (
	msgMixedYieldReturn   = "Do not mix `return value` and `yield` in the same function"
	msgMissingYieldMarker = "Functions with `yield` should be decorated with a `generator_to_X` function"
)

// Decorators that make a generator function safe to hand to callers.
var safeGeneratorDecorators = map[string]bool{
	"generator_to_list":          true,
	"generator_to_dict":          true,
	"generator_to_safe_iterator": true,
	// opt-in marker for typical generator behaviour
	"unsafe_generator": true,
	// third-party decorators that use yield for control flow
	"contextmanager": true,
	"fixture":        true,
	"hookimpl":       true,
}

// DetectUnsafeYield flags yields in functions that also return a value, or
// that lack one of the safe generator decorators. Mixing return and yield is
// reported in preference to the missing decorator.
func DetectUnsafeYield(n *pyast.Node) (bool, string) {
	if !n.Is(pyast.Yield, pyast.YieldFrom) {
		return false, ""
	}
	fn := pyast.EnclosingFunction(n)
	if fn == nil {
		return false, ""
	}

	if hasReturnWithValue(fn) {
		return true, msgMixedYieldReturn
	}
	if !hasSafeDecorator(fn) {
		return true, msgMissingYieldMarker
	}
	return false, ""
}

// hasReturnWithValue reports whether fn, nested definitions included,
// contains a return statement with a value. In a generator such a return
// turns into StopIteration(value), which callers rarely expect.
func hasReturnWithValue(fn *pyast.Node) bool {
	return pyast.Any(fn, func(c *pyast.Node) bool {
		return c.Kind == pyast.Return && c.Value != nil
	})
}

func hasSafeDecorator(fn *pyast.Node) bool {
	for _, d := range fn.Decorators {
		if safeGeneratorDecorators[decoratorName(d)] {
			return true
		}
	}
	return false
}

// decoratorName returns the simple name of a decorator: the identifier of a
// bare name, the final attribute of an attribute access, or either of those
// under exactly one level of call. Anything else has no name.
func decoratorName(d *pyast.Node) string {
	if d.Is(pyast.Call) {
		d = d.Func
	}
	if d.Is(pyast.Name, pyast.Attribute) {
		return d.Ident
	}
	return ""
}
