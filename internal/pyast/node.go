// Package pyast provides a small, closed syntax tree for Python source files.
//
// Source text is parsed with tree-sitter and lowered into Nodes whose shape
// follows CPython's ast module closely enough for lint rules to be written
// against it: calls have a callee and arguments, comparisons have operator
// and comparator lists, decorators hang off their definitions, and so on.
// Constructs that no rule inspects are kept as Other nodes so that
// traversal still reaches everything nested inside them.
package pyast

import "fmt"

// Kind discriminates the node variants.
type Kind int

const (
	Other Kind = iota
	Module
	FunctionDef
	ClassDef
	Lambda
	Param
	Return
	Assign
	AugAssign
	AnnAssign
	Expr
	Import
	ImportFrom
	Alias
	Call
	Keyword
	Starred
	Attribute
	Name
	BinOp
	Compare
	Tuple
	Yield
	YieldFrom
	Str
	Bytes
	JoinedStr
	FormattedValue
	SetComp
	ListComp
	DictComp
	GeneratorExp
)

var kindNames = [...]string{
	Other:          "Other",
	Module:         "Module",
	FunctionDef:    "FunctionDef",
	ClassDef:       "ClassDef",
	Lambda:         "Lambda",
	Param:          "Param",
	Return:         "Return",
	Assign:         "Assign",
	AugAssign:      "AugAssign",
	AnnAssign:      "AnnAssign",
	Expr:           "Expr",
	Import:         "Import",
	ImportFrom:     "ImportFrom",
	Alias:          "Alias",
	Call:           "Call",
	Keyword:        "Keyword",
	Starred:        "Starred",
	Attribute:      "Attribute",
	Name:           "Name",
	BinOp:          "BinOp",
	Compare:        "Compare",
	Tuple:          "Tuple",
	Yield:          "Yield",
	YieldFrom:      "YieldFrom",
	Str:            "Str",
	Bytes:          "Bytes",
	JoinedStr:      "JoinedStr",
	FormattedValue: "FormattedValue",
	SetComp:        "SetComp",
	ListComp:       "ListComp",
	DictComp:       "DictComp",
	GeneratorExp:   "GeneratorExp",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParamKind classifies a function parameter.
type ParamKind int

const (
	PositionalOnly ParamKind = iota
	PositionalOrKeyword
	VarPositional
	KeywordOnly
	VarKeyword
)

// Node is one element of a lowered syntax tree.
//
// Children lists every structural child in source order and is what the
// walker follows. The named fields below are views into Children for the
// kinds that use them; a field irrelevant to a node's Kind is left empty.
type Node struct {
	Kind Kind
	// Line is 1-based. Col is the 0-based byte offset into the line.
	Line int
	Col  int

	// Parent is set by Annotate. It is nil for the root.
	Parent *Node

	Children []*Node

	// Func is the callee of a Call.
	Func *Node
	// Value is the object of an Attribute, the value of Return, Assign,
	// AugAssign, AnnAssign, Expr, Yield, YieldFrom, Keyword, Starred and
	// FormattedValue. It may be nil for a bare return or yield.
	Value *Node
	// Left and Right are the operands of a BinOp. Left is also the first
	// operand of a Compare.
	Left  *Node
	Right *Node

	Args        []*Node // Call positional arguments
	Keywords    []*Node // Call keyword arguments and ** splats
	Elts        []*Node // Tuple elements
	Comparators []*Node // Compare operands after Left
	Ops         []string
	Decorators  []*Node
	Bases       []*Node // ClassDef positional bases
	Params      []*Node // FunctionDef and Lambda parameters
	Names       []*Node // Import and ImportFrom aliases
	Targets     []*Node // Assign targets

	// Ident is the identifier of a Name, the attribute of an Attribute,
	// the name of a definition, Param, Keyword or Alias, or the module path
	// of an ImportFrom. Keyword splats have an empty Ident.
	Ident  string
	AsName string
	Op     string
	// Level is the number of leading dots of a relative ImportFrom.
	Level     int
	ParamKind ParamKind
	Async     bool
}

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Ident != "" {
		return fmt.Sprintf("%s(%s)@%d:%d", n.Kind, n.Ident, n.Line, n.Col)
	}
	return fmt.Sprintf("%s@%d:%d", n.Kind, n.Line, n.Col)
}

// Is reports whether n is non-nil and of one of the given kinds.
func (n *Node) Is(kinds ...Kind) bool {
	if n == nil {
		return false
	}
	for _, k := range kinds {
		if n.Kind == k {
			return true
		}
	}
	return false
}

// IsCallTo reports whether n is a call whose callee is a bare name in names.
func (n *Node) IsCallTo(names ...string) bool {
	if !n.Is(Call) || !n.Func.Is(Name) {
		return false
	}
	for _, name := range names {
		if n.Func.Ident == name {
			return true
		}
	}
	return false
}

// Comment is a comment token of the source, with its position.
type Comment struct {
	Line int
	Col  int
	Text string
}

// Tree is one parsed source file.
type Tree struct {
	Filename string
	Root     *Node
	Comments []Comment
}
