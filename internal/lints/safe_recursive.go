package lints

import "github.com/sigopt/sigopt-tools/internal/pyast"

const msgRecursiveMissingArgs = "Recursive call appears to be missing arguments. Specify all arguments for recursive calls."

// DetectUnsafeRecursion flags direct self-recursive calls that pass a
// different number of arguments than the function declares.
//
// Functions taking *args, **kwargs or keyword-only parameters cannot be
// checked this way and are skipped.
func DetectUnsafeRecursion(n *pyast.Node) (bool, string) {
	if !n.Is(pyast.Call) || !n.Func.Is(pyast.Name) {
		return false, ""
	}
	fn := pyast.EnclosingFunction(n)
	if fn == nil || fn.Ident != n.Func.Ident {
		return false, ""
	}

	declared := 0
	for _, p := range fn.Params {
		switch p.ParamKind {
		case pyast.VarPositional, pyast.VarKeyword, pyast.KeywordOnly:
			return false, ""
		case pyast.PositionalOrKeyword:
			declared++
		}
	}

	if declared != len(n.Args)+len(n.Keywords) {
		return true, msgRecursiveMissingArgs
	}
	return false, ""
}
