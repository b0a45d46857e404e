package types

import "fmt"

// Position is a location in a source file. Line is 1-based and Column is
// the 0-based byte offset into the line, as Python tooling reports it.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p sorts strictly before q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// Issue represents a lint issue found in a source file.
type Issue struct {
	Rule     string   `json:"rule"`
	Filename string   `json:"filename"`
	Message  string   `json:"message"`
	Start    Position `json:"start"`
}

// String renders the issue in the canonical one-line report format.
func (i Issue) String() string {
	return fmt.Sprintf("%s:%d:%d: %s", i.Filename, i.Start.Line, i.Start.Column, i.Message)
}
