package pyast

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrInvalidSyntax is wrapped by every SyntaxError.
var ErrInvalidSyntax = errors.New("invalid syntax")

// SyntaxError reports source that could not be parsed.
type SyntaxError struct {
	Filename string
	Line     int
	Column   int
	Msg      string
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s: %s", e.Filename, ErrInvalidSyntax, e.Msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s: %s", e.Filename, e.Line, e.Column, ErrInvalidSyntax, e.Msg)
}

func (e *SyntaxError) Unwrap() error { return ErrInvalidSyntax }

// Parse parses Python source into a Tree.
//
// When the source contains syntax errors, Parse returns a *SyntaxError
// together with a Tree whose Root is nil but whose Comments are populated,
// so callers can still inspect comment directives of a broken file.
func Parse(ctx context.Context, filename string, src []byte) (*Tree, error) {
	if !utf8.Valid(src) {
		return nil, &SyntaxError{Filename: filename, Msg: "source is not valid UTF-8"}
	}

	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	st, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	defer st.Close()

	root := st.RootNode()
	tree := &Tree{
		Filename: filename,
		Comments: collectComments(root, src),
	}

	if root.HasError() {
		serr := &SyntaxError{Filename: filename, Msg: "unexpected token"}
		if bad := firstError(root); bad != nil {
			p := bad.StartPoint()
			serr.Line = int(p.Row) + 1
			serr.Column = int(p.Column)
			if bad.IsMissing() {
				serr.Msg = fmt.Sprintf("missing %q", bad.Type())
			}
		}
		return tree, serr
	}
	if bad, msg := rejectedConstruct(root); bad != nil {
		p := bad.StartPoint()
		return tree, &SyntaxError{
			Filename: filename,
			Line:     int(p.Row) + 1,
			Column:   int(p.Column),
			Msg:      msg,
		}
	}

	l :=&lowerer{src: src}
	tree.Root = l.lower(root)
	Annotate(tree.Root)
	return tree, nil
}

// firstError returns the first ERROR or MISSING node in document order.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsError() || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if bad := firstError(child); bad != nil {
			return bad
		}
	}
	return nil
}

func collectComments(root *sitter.Node, src []byte) []Comment {
	var comments []Comment
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n.Type() == "comment" {
			p := n.StartPoint()
			comments = append(comments, Comment{
				Line: int(p.Row) + 1,
				Col:  int(p.Column),
				Text: n.Content(src),
			})
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if child := n.Child(i); child != nil {
				visit(child)
			}
		}
	}
	visit(root)
	return comments
}
