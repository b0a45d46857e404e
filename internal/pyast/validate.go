package pyast

import sitter "github.com/smacker/go-tree-sitter"

// The tree-sitter grammar still accepts a few Python 2 forms and argument
// orders that CPython 3 rejects at parse time. rejectedConstruct finds the
// first of them in document order.
func rejectedConstruct(n *sitter.Node) (*sitter.Node, string) {
	if n == nil {
		return nil, ""
	}
	switch n.Type() {
	case "print_statement":
		return n, "Missing parentheses in call to 'print'"
	case "exec_statement":
		return n, "Missing parentheses in call to 'exec'"
	case "argument_list":
		if bad, msg := checkArgumentOrder(n); bad != nil {
			return bad, msg
		}
	case "comparison_operator":
		for i := 0; i < int(n.ChildCount()); i++ {
			if c := n.Child(i); c != nil && !c.IsNamed() && c.Type() == "<>" {
				return c, "invalid comparison operator '<>'"
			}
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad, msg := rejectedConstruct(n.Child(i)); bad != nil {
			return bad, msg
		}
	}
	return nil, ""
}

// checkArgumentOrder applies CPython's ordering of call arguments:
// positionals, then keywords and *splats, then **splats and keywords.
func checkArgumentOrder(args *sitter.Node) (*sitter.Node, string) {
	var sawKeyword, sawDictSplat bool
	for _, c := range named(args) {
		switch c.Type() {
		case "keyword_argument":
			sawKeyword = true
		case "dictionary_splat":
			sawDictSplat = true
		case "list_splat", "parenthesized_list_splat":
			if sawDictSplat {
				return c, "iterable argument unpacking follows keyword argument unpacking"
			}
		default:
			if sawDictSplat {
				return c, "positional argument follows keyword argument unpacking"
			}
			if sawKeyword {
				return c, "positional argument follows keyword argument"
			}
		}
	}
	return nil, ""
}
