package pyast

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// lowerer converts a tree-sitter concrete syntax tree into Nodes.
type lowerer struct {
	src []byte
}

func (l *lowerer) text(sn *sitter.Node) string {
	if sn == nil {
		return ""
	}
	return sn.Content(l.src)
}

func newNode(kind Kind, at *sitter.Node) *Node {
	p := at.StartPoint()
	return &Node{Kind: kind, Line: int(p.Row) + 1, Col: int(p.Column)}
}

func (n *Node) add(children ...*Node) {
	for _, c := range children {
		if c != nil {
			n.Children = append(n.Children, c)
		}
	}
}

// named returns the named children of sn, comments excluded.
func named(sn *sitter.Node) []*sitter.Node {
	if sn == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, sn.NamedChildCount())
	for i := 0; i < int(sn.NamedChildCount()); i++ {
		c := sn.NamedChild(i)
		if c == nil || c.Type() == "comment" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func firstNamed(sn *sitter.Node) *sitter.Node {
	if cs := named(sn); len(cs) > 0 {
		return cs[0]
	}
	return nil
}

// hasToken reports whether sn has a direct anonymous child of type tok.
func hasToken(sn *sitter.Node, tok string) bool {
	for i := 0; i < int(sn.ChildCount()); i++ {
		c := sn.Child(i)
		if c != nil && !c.IsNamed() && c.Type() == tok {
			return true
		}
	}
	return false
}

func (l *lowerer) lower(sn *sitter.Node) *Node {
	if sn == nil {
		return nil
	}

	switch sn.Type() {
	case "comment":
		return nil
	case "module":
		n := newNode(Module, sn)
		// The module has no source position of its own.
		n.Line, n.Col = 0, 0
		l.addBody(n, sn)
		return n
	case "parenthesized_expression":
		return l.lower(firstNamed(sn))
	case "decorated_definition":
		return l.lowerDecorated(sn)
	case "function_definition":
		return l.lowerFunction(sn)
	case "class_definition":
		return l.lowerClass(sn)
	case "lambda":
		n := newNode(Lambda, sn)
		l.lowerParams(n, sn.ChildByFieldName("parameters"))
		n.add(l.lower(sn.ChildByFieldName("body")))
		return n
	case "expression_statement":
		return l.lowerExprStatement(sn)
	case "assignment":
		return l.lowerAssign(sn)
	case "augmented_assignment":
		n := newNode(AugAssign, sn)
		target := l.lower(sn.ChildByFieldName("left"))
		n.Targets = []*Node{target}
		if op := sn.ChildByFieldName("operator"); op != nil {
			n.Op = op.Type()
		}
		n.Value = l.lower(sn.ChildByFieldName("right"))
		n.add(target, n.Value)
		return n
	case "return_statement":
		n := newNode(Return, sn)
		n.Value = l.lower(firstNamed(sn))
		n.add(n.Value)
		return n
	case "yield":
		kind := Yield
		if hasToken(sn, "from") {
			kind = YieldFrom
		}
		n := newNode(kind, sn)
		n.Value = l.lower(firstNamed(sn))
		n.add(n.Value)
		return n
	case "expression_list", "tuple", "pattern_list", "tuple_pattern":
		n := newNode(Tuple, sn)
		for _, c := range named(sn) {
			elt := l.lower(c)
			n.Elts = append(n.Elts, elt)
			n.add(elt)
		}
		return n
	case "call":
		return l.lowerCall(sn)
	case "attribute":
		n := newNode(Attribute, sn)
		n.Value = l.lower(sn.ChildByFieldName("object"))
		if attr := sn.ChildByFieldName("attribute"); attr != nil {
			n.Ident = l.text(attr)
		}
		n.add(n.Value)
		return n
	case "identifier":
		n := newNode(Name, sn)
		n.Ident = l.text(sn)
		return n
	case "binary_operator":
		n := newNode(BinOp, sn)
		n.Left = l.lower(sn.ChildByFieldName("left"))
		n.Right = l.lower(sn.ChildByFieldName("right"))
		if op := sn.ChildByFieldName("operator"); op != nil {
			n.Op = op.Type()
		}
		n.add(n.Left, n.Right)
		return n
	case "comparison_operator":
		return l.lowerCompare(sn)
	case "string":
		return l.lowerString(sn)
	case "concatenated_string":
		return l.lowerConcatenated(sn)
	case "interpolation":
		n := newNode(FormattedValue, sn)
		parts := named(sn)
		if len(parts) > 0 {
			n.Value = l.lower(parts[0])
		}
		n.add(n.Value)
		for _, c := range parts[min(1, len(parts)):] {
			n.add(l.lower(c))
		}
		return n
	case "list_splat", "parenthesized_list_splat":
		n := newNode(Starred, sn)
		n.Value = l.lower(firstNamed(sn))
		n.add(n.Value)
		return n
	case "keyword_argument":
		return l.lowerKeyword(sn)
	case "set_comprehension":
		return l.generic(SetComp, sn)
	case "list_comprehension":
		return l.generic(ListComp, sn)
	case "dictionary_comprehension":
		return l.generic(DictComp, sn)
	case "generator_expression":
		return l.generic(GeneratorExp, sn)
	case "import_statement":
		return l.lowerImport(sn)
	case "import_from_statement", "future_import_statement":
		return l.lowerImportFrom(sn)
	default:
		return l.generic(Other, sn)
	}
}

// generic lowers sn into a node of the given kind whose children are the
// lowered named children of sn. Blocks are flattened into their statements.
func (l *lowerer) generic(kind Kind, sn *sitter.Node) *Node {
	n := newNode(kind, sn)
	l.addBody(n, sn)
	return n
}

func (l *lowerer) addBody(n *Node, sn *sitter.Node) {
	for _, c := range named(sn) {
		if c.Type() == "block" {
			l.addBody(n, c)
			continue
		}
		n.add(l.lower(c))
	}
}

func (l *lowerer) lowerDecorated(sn *sitter.Node) *Node {
	var decorators []*Node
	for _, c := range named(sn) {
		if c.Type() == "decorator" {
			if d := l.lower(firstNamed(c)); d != nil {
				decorators = append(decorators, d)
			}
		}
	}

	n := l.lower(sn.ChildByFieldName("definition"))
	if n == nil {
		return l.generic(Other, sn)
	}
	n.Decorators = decorators
	n.Children = append(append([]*Node{}, decorators...), n.Children...)
	return n
}

func (l *lowerer) lowerFunction(sn *sitter.Node) *Node {
	n := newNode(FunctionDef, sn)
	n.Async = hasToken(sn, "async")
	n.Ident = l.text(sn.ChildByFieldName("name"))
	l.lowerParams(n, sn.ChildByFieldName("parameters"))
	n.add(l.lower(sn.ChildByFieldName("return_type")))
	if body := sn.ChildByFieldName("body"); body != nil {
		l.addBody(n, body)
	}
	return n
}

func (l *lowerer) lowerParams(fn *Node, params *sitter.Node) {
	if params == nil {
		return
	}
	mode := PositionalOrKeyword
	for i := 0; i < int(params.ChildCount()); i++ {
		c := params.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "keyword_separator", "*":
			mode = KeywordOnly
			continue
		case "positional_separator", "/":
			for _, p := range fn.Params {
				if p.ParamKind == PositionalOrKeyword {
					p.ParamKind = PositionalOnly
				}
			}
			continue
		}
		if !c.IsNamed() || c.Type() == "comment" {
			continue
		}
		p := l.lowerParam(c, mode)
		if p.ParamKind == VarPositional {
			mode = KeywordOnly
		}
		fn.Params = append(fn.Params, p)
		fn.add(p)
	}
}

func (l *lowerer) lowerParam(sn *sitter.Node, mode ParamKind) *Node {
	if sn == nil {
		return &Node{Kind: Param, ParamKind: mode}
	}
	p := newNode(Param, sn)
	p.ParamKind = mode

	switch sn.Type() {
	case "identifier":
		p.Ident = l.text(sn)
	case "list_splat_pattern":
		p.ParamKind = VarPositional
		p.Ident = l.text(firstNamed(sn))
	case "dictionary_splat_pattern":
		p.ParamKind = VarKeyword
		p.Ident = l.text(firstNamed(sn))
	case "typed_parameter":
		inner := l.lowerParam(firstNamed(sn), mode)
		p.Ident, p.ParamKind = inner.Ident, inner.ParamKind
		p.add(l.lower(sn.ChildByFieldName("type")))
	case "default_parameter", "typed_default_parameter":
		if name := sn.ChildByFieldName("name"); name != nil {
			p.Ident = l.text(name)
		}
		p.add(l.lower(sn.ChildByFieldName("type")), l.lower(sn.ChildByFieldName("value")))
	default:
		p.add(l.lower(sn))
	}
	return p
}

func (l *lowerer) lowerClass(sn *sitter.Node) *Node {
	n := newNode(ClassDef, sn)
	if name := sn.ChildByFieldName("name"); name != nil {
		n.Ident = l.text(name)
	}
	for _, c := range named(sn.ChildByFieldName("superclasses")) {
		arg := l.lower(c)
		if arg == nil {
			continue
		}
		if arg.Kind != Keyword {
			n.Bases = append(n.Bases, arg)
		}
		n.add(arg)
	}
	if body := sn.ChildByFieldName("body"); body != nil {
		l.addBody(n, body)
	}
	return n
}

func (l *lowerer) lowerExprStatement(sn *sitter.Node) *Node {
	parts := named(sn)
	if len(parts) == 1 && !hasToken(sn, ",") {
		switch parts[0].Type() {
		case "assignment", "augmented_assignment":
			return l.lower(parts[0])
		}
		n := newNode(Expr, sn)
		n.Value = l.lower(parts[0])
		n.add(n.Value)
		return n
	}

	tuple := newNode(Tuple, sn)
	for _, c := range parts {
		elt := l.lower(c)
		tuple.Elts = append(tuple.Elts, elt)
		tuple.add(elt)
	}
	n := newNode(Expr, sn)
	n.Value = tuple
	n.add(tuple)
	return n
}

func (l *lowerer) lowerAssign(sn *sitter.Node) *Node {
	left := sn.ChildByFieldName("left")
	right := sn.ChildByFieldName("right")

	if typ := sn.ChildByFieldName("type"); typ != nil {
		n := newNode(AnnAssign, sn)
		target := l.lower(left)
		n.Targets = []*Node{target}
		n.Value = l.lower(right)
		n.add(target, l.lower(typ), n.Value)
		return n
	}

	n := newNode(Assign, sn)
	n.Targets = append(n.Targets, l.lower(left))
	for right != nil && right.Type() == "assignment" && right.ChildByFieldName("type") == nil {
		n.Targets = append(n.Targets, l.lower(right.ChildByFieldName("left")))
		right = right.ChildByFieldName("right")
	}
	n.add(n.Targets...)
	n.Value = l.lower(right)
	n.add(n.Value)
	return n
}

func (l *lowerer) lowerCall(sn *sitter.Node) *Node {
	n := newNode(Call, sn)
	n.Func = l.lower(sn.ChildByFieldName("function"))

	args := sn.ChildByFieldName("arguments")
	if args != nil && args.Type() == "generator_expression" {
		n.Args = append(n.Args, l.lower(args))
	} else {
		for _, c := range named(args) {
			var arg *Node
			if c.Type() == "dictionary_splat" {
				arg = newNode(Keyword, c)
				arg.Value = l.lower(firstNamed(c))
				arg.add(arg.Value)
			} else {
				arg = l.lower(c)
			}
			if arg == nil {
				continue
			}
			if arg.Kind == Keyword {
				n.Keywords = append(n.Keywords, arg)
			} else {
				n.Args = append(n.Args, arg)
			}
		}
	}

	n.add(n.Func)
	n.add(n.Args...)
	n.add(n.Keywords...)
	return n
}

func (l *lowerer) lowerKeyword(sn *sitter.Node) *Node {
	n := newNode(Keyword, sn)
	if name := sn.ChildByFieldName("name"); name != nil {
		n.Ident = l.text(name)
	}
	n.Value = l.lower(sn.ChildByFieldName("value"))
	n.add(n.Value)
	return n
}

func (l *lowerer) lowerCompare(sn *sitter.Node) *Node {
	n := newNode(Compare, sn)
	var pending []string
	first := true
	for i := 0; i < int(sn.ChildCount()); i++ {
		c := sn.Child(i)
		if c == nil || c.Type() == "comment" {
			continue
		}
		if !c.IsNamed() {
			pending = append(pending, c.Type())
			continue
		}
		operand := l.lower(c)
		if first {
			n.Left = operand
			first = false
		} else {
			n.Ops = append(n.Ops, strings.Join(pending, " "))
			n.Comparators = append(n.Comparators, operand)
		}
		pending = nil
		n.add(operand)
	}
	return n
}

// stringPrefix returns the lower-cased prefix letters of a string literal.
func (l *lowerer) stringPrefix(sn *sitter.Node) string {
	text := l.text(sn)
	if i := strings.IndexAny(text, `'"`); i >= 0 {
		return strings.ToLower(text[:i])
	}
	return ""
}

func (l *lowerer) lowerString(sn *sitter.Node) *Node {
	prefix := l.stringPrefix(sn)
	switch {
	case strings.Contains(prefix, "f"):
		n := newNode(JoinedStr, sn)
		for _, c := range named(sn) {
			if c.Type() == "interpolation" {
				n.add(l.lower(c))
			}
		}
		return n
	case strings.Contains(prefix, "b"):
		return newNode(Bytes, sn)
	default:
		return newNode(Str, sn)
	}
}

func (l *lowerer) lowerConcatenated(sn *sitter.Node) *Node {
	var parts []*Node
	joined, allBytes := false, true
	for _, c := range named(sn) {
		part := l.lower(c)
		if part == nil {
			continue
		}
		joined = joined || part.Kind == JoinedStr
		allBytes = allBytes && part.Kind == Bytes
		parts = append(parts, part)
	}

	switch {
	case joined:
		n := newNode(JoinedStr, sn)
		for _, part := range parts {
			n.add(part.Children...)
		}
		return n
	case allBytes && len(parts) > 0:
		return newNode(Bytes, sn)
	default:
		return newNode(Str, sn)
	}
}

// dotted returns the canonical text of a dotted_name, without whitespace.
func (l *lowerer) dotted(sn *sitter.Node) string {
	if sn == nil {
		return ""
	}
	if sn.Type() != "dotted_name" {
		return l.text(sn)
	}
	parts := make([]string, 0, sn.NamedChildCount())
	for _, c := range named(sn) {
		parts = append(parts, l.text(c))
	}
	return strings.Join(parts, ".")
}

func (l *lowerer) lowerAlias(sn *sitter.Node) *Node {
	n := newNode(Alias, sn)
	switch sn.Type() {
	case "aliased_import":
		n.Ident = l.dotted(sn.ChildByFieldName("name"))
		if alias := sn.ChildByFieldName("alias"); alias != nil {
			n.AsName = l.text(alias)
		}
	case "wildcard_import":
		n.Ident = "*"
	default:
		n.Ident = l.dotted(sn)
	}
	return n
}

func (l *lowerer) lowerImport(sn *sitter.Node) *Node {
	n := newNode(Import, sn)
	for _, c := range named(sn) {
		switch c.Type() {
		case "dotted_name", "aliased_import":
			alias := l.lowerAlias(c)
			n.Names = append(n.Names, alias)
			n.add(alias)
		}
	}
	return n
}

func (l *lowerer) lowerImportFrom(sn *sitter.Node) *Node {
	n := newNode(ImportFrom, sn)
	if sn.Type() == "future_import_statement" {
		n.Ident = "__future__"
	}

	sawImport := false
	for i := 0; i < int(sn.ChildCount()); i++ {
		c := sn.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "import":
			sawImport = true
		case "relative_import":
			for _, part := range named(c) {
				switch part.Type() {
				case "import_prefix":
					n.Level = len(strings.TrimSpace(l.text(part)))
				case "dotted_name":
					n.Ident = l.dotted(part)
				}
			}
		case "dotted_name", "aliased_import", "wildcard_import":
			if !sawImport && c.Type() == "dotted_name" {
				n.Ident = l.dotted(c)
				continue
			}
			alias := l.lowerAlias(c)
			n.Names = append(n.Names, alias)
			n.add(alias)
		}
	}
	return n
}
