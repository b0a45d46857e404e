package internal

import (
	"github.com/sigopt/sigopt-tools/internal/lints"
	"github.com/sigopt/sigopt-tools/internal/pyast"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all lint rules.
type LintRule interface {
	// Check inspects a single node. It reports whether the node is a
	// finding and, if so, the message to show for it. Check must not depend
	// on anything but the node and the tree around it.
	Check(node *pyast.Node) (bool, string)

	// Name returns the name of the lint rule.
	Name() string
}

type AvoidDatetimeNowRule struct{}

func NewAvoidDatetimeNowRule() LintRule { return &AvoidDatetimeNowRule{} }

func (r *AvoidDatetimeNowRule) Check(node *pyast.Node) (bool, string) {
	return lints.DetectDatetimeNow(node)
}

func (r *AvoidDatetimeNowRule) Name() string {
	return "AvoidDatetimeNow"
}

type SafeRecursiveRule struct{}

func NewSafeRecursiveRule() LintRule { return &SafeRecursiveRule{} }

func (r *SafeRecursiveRule) Check(node *pyast.Node) (bool, string) {
	return lints.DetectUnsafeRecursion(node)
}

func (r *SafeRecursiveRule) Name() string {
	return "SafeRecursive"
}

type SafeIteratorRule struct{}

func NewSafeIteratorRule() LintRule { return &SafeIteratorRule{} }

func (r *SafeIteratorRule) Check(node *pyast.Node) (bool, string) {
	return lints.DetectUnsafeIterator(node)
}

func (r *SafeIteratorRule) Name() string {
	return "SafeIterator"
}

type ProtobufMethodsRule struct{}

func NewProtobufMethodsRule() LintRule { return &ProtobufMethodsRule{} }

func (r *ProtobufMethodsRule) Check(node *pyast.Node) (bool, string) {
	return lints.DetectProtobufMethods(node)
}

func (r *ProtobufMethodsRule) Name() string {
	return "ProtobufMethods"
}

type SafeYieldRule struct{}

func NewSafeYieldRule() LintRule { return &SafeYieldRule{} }

func (r *SafeYieldRule) Check(node *pyast.Node) (bool, string) {
	return lints.DetectUnsafeYield(node)
}

func (r *SafeYieldRule) Name() string {
	return "SafeYield"
}

type TrailingCommaRule struct{}

func NewTrailingCommaRule() LintRule { return &TrailingCommaRule{} }

func (r *TrailingCommaRule) Check(node *pyast.Node) (bool, string) {
	return lints.DetectSingleElementTuple(node)
}

func (r *TrailingCommaRule) Name() string {
	return "TrailingComma"
}

type AddingStringsRule struct{}

func NewAddingStringsRule() LintRule { return &AddingStringsRule{} }

func (r *AddingStringsRule) Check(node *pyast.Node) (bool, string) {
	return lints.DetectAddingStrings(node)
}

func (r *AddingStringsRule) Name() string {
	return "AddingStrings"
}

type GeneratorExpressionRule struct{}

func NewGeneratorExpressionRule() LintRule { return &GeneratorExpressionRule{} }

func (r *GeneratorExpressionRule) Check(node *pyast.Node) (bool, string) {
	return lints.DetectMapFilter(node)
}

func (r *GeneratorExpressionRule) Name() string {
	return "GeneratorExpression"
}

type ForbidTestSuiteInheritanceRule struct{}

func NewForbidTestSuiteInheritanceRule() LintRule { return &ForbidTestSuiteInheritanceRule{} }

func (r *ForbidTestSuiteInheritanceRule) Check(node *pyast.Node) (bool, string) {
	return lints.DetectTestSuiteInheritance(node)
}

func (r *ForbidTestSuiteInheritanceRule) Name() string {
	return "ForbidTestSuiteInheritance"
}

type ForbidImportTestSuiteRule struct{}

func NewForbidImportTestSuiteRule() LintRule { return &ForbidImportTestSuiteRule{} }

func (r *ForbidImportTestSuiteRule) Check(node *pyast.Node) (bool, string) {
	return lints.DetectTestSuiteImport(node)
}

func (r *ForbidImportTestSuiteRule) Name() string {
	return "ForbidImportTestSuite"
}

type SetComparisonRule struct{}

func NewSetComparisonRule() LintRule { return &SetComparisonRule{} }

func (r *SetComparisonRule) Check(node *pyast.Node) (bool, string) {
	return lints.DetectSetComparison(node)
}

func (r *SetComparisonRule) Name() string {
	return "SetComparison"
}

type NoImportLibsigoptComputeRule struct{}

func NewNoImportLibsigoptComputeRule() LintRule { return &NoImportLibsigoptComputeRule{} }

func (r *NoImportLibsigoptComputeRule) Check(node *pyast.Node) (bool, string) {
	return lints.DetectComputeImport(node)
}

func (r *NoImportLibsigoptComputeRule) Name() string {
	return "NoImportLibsigoptCompute"
}
