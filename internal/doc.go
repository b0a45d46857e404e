// Package internal provides the core of sigoptlint, a linter for Python
// sources.
//
// Key components:
//
// Engine: parses one file, walks the tree breadth first and applies every
// active rule to every node. Findings on lines covered by a
// "# sigoptlint: disable=Rule" comment are dropped and the rest are returned
// sorted by position.
//
// LintRule: the contract of a rule. Check looks at a single node and reports
// whether it is a finding. The rule bodies live in the lints package.
//
// SourceCode: the lines of a source file, used when rendering snippets.
//
// Usage:
//
//	engine, err := internal.NewEngine([]string{"SafeYield"}, nil)
//	if err != nil {
//	    // unknown rule name
//	}
//
//	issues, err := engine.Run(ctx, "path/to/file.py")
//	if err != nil {
//	    // unreadable file, invalid syntax or an enable= directive
//	}
//
//	for _, issue := range issues {
//	    fmt.Println(issue)
//	}
//
// This package is intended for internal use within the linting tool and should not be
// imported by external packages.
package internal
