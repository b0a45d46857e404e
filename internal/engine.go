package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sigopt/sigopt-tools/internal/nolint"
	"github.com/sigopt/sigopt-tools/internal/pyast"
	tt "github.com/sigopt/sigopt-tools/internal/types"
)

// ErrUnknownRule is returned when a rule name is not registered.
var ErrUnknownRule = errors.New("unknown rule")

// Engine manages the linting process. An Engine holds no per-file state
// and may be shared between goroutines.
type Engine struct {
	// rules are kept sorted by name; that order is the per-node tie-break.
	rules []LintRule
}

// Define the ruleConstructor type
type ruleConstructor func() LintRule

// Define the ruleMap type
type ruleMap map[string]ruleConstructor

// Create a map to hold the mappings of rule names to their constructors
var allRuleConstructors = ruleMap{
	"AddingStrings":              NewAddingStringsRule,
	"AvoidDatetimeNow":           NewAvoidDatetimeNowRule,
	"ForbidImportTestSuite":      NewForbidImportTestSuiteRule,
	"ForbidTestSuiteInheritance": NewForbidTestSuiteInheritanceRule,
	"GeneratorExpression":        NewGeneratorExpressionRule,
	"NoImportLibsigoptCompute":   NewNoImportLibsigoptComputeRule,
	"ProtobufMethods":            NewProtobufMethodsRule,
	"SafeIterator":               NewSafeIteratorRule,
	"SafeRecursive":              NewSafeRecursiveRule,
	"SafeYield":                  NewSafeYieldRule,
	"SetComparison":              NewSetComparisonRule,
	"TrailingComma":              NewTrailingCommaRule,
}

// rules enabled when nothing else is asked for
var defaultRules = []string{
	"AddingStrings",
	"ForbidImportTestSuite",
	"ForbidTestSuiteInheritance",
	"SafeRecursive",
	"SetComparison",
	"TrailingComma",
}

// RuleNames returns every registered rule name, sorted.
func RuleNames() []string {
	names := make([]string, 0, len(allRuleConstructors))
	for name := range allRuleConstructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRuleNames returns the names of the rules enabled by default.
func DefaultRuleNames() []string {
	return append([]string(nil), defaultRules...)
}

// IsDefaultRule reports whether name is enabled by default.
func IsDefaultRule(name string) bool {
	name = normalizeRuleName(name)
	for _, d := range defaultRules {
		if d == name {
			return true
		}
	}
	return false
}

// normalizeRuleName maps the historical "XxxRule" spelling onto the
// registry name.
func normalizeRuleName(name string) string {
	name = strings.TrimSpace(name)
	if _, ok := allRuleConstructors[name]; ok {
		return name
	}
	return strings.TrimSuffix(name, "Rule")
}

// NewEngine creates a lint engine running the default rules plus include,
// minus ignore. Every name must be registered.
func NewEngine(include, ignore []string) (*Engine, error) {
	selected := make(map[string]bool, len(allRuleConstructors))
	for _, name := range defaultRules {
		selected[name] = true
	}
	for _, name := range include {
		key, err := lookupRule(name)
		if err != nil {
			return nil, err
		}
		selected[key] = true
	}
	for _, name := range ignore {
		key, err := lookupRule(name)
		if err != nil {
			return nil, err
		}
		delete(selected, key)
	}

	names := make([]string, 0, len(selected))
	for name := range selected {
		names = append(names, name)
	}
	return NewEngineWithRules(names)
}

// NewEngineWithRules creates a lint engine running exactly the named rules.
func NewEngineWithRules(names []string) (*Engine, error) {
	seen := make(map[string]bool, len(names))
	engine := &Engine{}
	for _, name := range names {
		key, err := lookupRule(name)
		if err != nil {
			return nil, err
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		engine.rules = append(engine.rules, allRuleConstructors[key]())
	}
	sort.Slice(engine.rules, func(i, j int) bool {
		return engine.rules[i].Name() < engine.rules[j].Name()
	})
	return engine, nil
}

func lookupRule(name string) (string, error) {
	key := normalizeRuleName(name)
	if _, ok := allRuleConstructors[key]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	return key, nil
}

// Rules returns the names of the active rules in the order they run.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name()
	}
	return names
}

// Run applies all lint rules to the given file and returns a slice of Issues.
func (e *Engine) Run(ctx context.Context, filename string) ([]tt.Issue, error) {
	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return e.RunSource(ctx, filename, source)
}

// RunSource applies all lint rules to source, reported under filename.
//
// Issues come back ordered by position. Issues sharing a position keep walk
// order, then rule name order.
func (e *Engine) RunSource(ctx context.Context, filename string, source []byte) ([]tt.Issue, error) {
	tree, parseErr := pyast.Parse(ctx, filename, source)
	if tree == nil {
		return nil, fmt.Errorf("error parsing file: %w", parseErr)
	}

	mgr, err := nolint.ParseComments(tree.Comments)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if parseErr != nil {
		return nil, fmt.Errorf("error parsing file: %w", parseErr)
	}

	var allIssues []tt.Issue
	pyast.Walk(tree.Root, func(node *pyast.Node) {
		for _, rule := range e.rules {
			found, msg := rule.Check(node)
			if !found {
				continue
			}
			allIssues = append(allIssues, tt.Issue{
				Rule:     rule.Name(),
				Filename: filename,
				Message:  msg,
				Start:    tt.Position{Line: node.Line, Column: node.Col},
			})
		}
	})

	filtered := filterNolintIssues(mgr, allIssues)
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Start.Before(filtered[j].Start)
	})
	return filtered, nil
}

// filterNolintIssues filters issues based on disable comments.
func filterNolintIssues(mgr *nolint.Manager, issues []tt.Issue) []tt.Issue {
	if mgr.Len() == 0 {
		return issues
	}
	filtered := make([]tt.Issue, 0, len(issues))
	for _, issue := range issues {
		if !mgr.IsNolint(issue.Start.Line, issue.Rule, issue.Rule+"Rule") {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}

// SourceCode stores the content of a source code file.
type SourceCode struct {
	Lines []string
}

// ReadSourceCode reads the content of a file and returns it as a `SourceCode` struct.
func ReadSourceCode(filename string) (*SourceCode, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return NewSourceCode(content), nil
}

// NewSourceCode splits content into lines.
func NewSourceCode(content []byte) *SourceCode {
	return &SourceCode{Lines: strings.Split(string(content), "\n")}
}
