package lints

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigopt/sigopt-tools/internal/pyast"
)

type detector func(*pyast.Node) (bool, string)

// findings runs detect over every node of src and returns the messages.
func findings(t *testing.T, detect detector, src string) []string {
	t.Helper()
	tree, err := pyast.Parse(context.Background(), "test.py", []byte(src))
	require.NoError(t, err)

	var msgs []string
	pyast.Walk(tree.Root, func(n *pyast.Node) {
		if found, msg := detect(n); found {
			require.NotEmpty(t, msg)
			msgs = append(msgs, msg)
		}
	})
	return msgs
}

type ruleCase struct {
	src   string
	count int
}

func runRuleCases(t *testing.T, detect detector, cases []ruleCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, findings(t, detect, tc.src), tc.count)
		})
	}
}

var unsafeIteratorCalls = []string{"range(x)", "zip(x, y)", "map(int, x)", "filter(bool, x)"}

func TestDetectDatetimeNow(t *testing.T) {
	t.Parallel()
	var cases []ruleCase
	for _, module := range []string{"dt", "datetime"} {
		for _, function := range []string{"datetime.now", "datetime.utcnow"} {
			cases = append(cases, ruleCase{fmt.Sprintf("%s.%s()\n", module, function), 1})
		}
	}
	cases = append(cases,
		ruleCase{"current_datetime()\n", 0},
		ruleCase{"now()\n", 0},
		ruleCase{"x.now()\n", 0},
	)
	runRuleCases(t, DetectDatetimeNow, cases)

	msgs := findings(t, DetectDatetimeNow, "dt.datetime.utcnow()\n")
	require.Len(t, msgs, 1)
	assert.Equal(t, "Prefer `current_datetime` to `datetime.utcnow` to ensure consistent use of UTC timezone", msgs[0])
}

func TestDetectUnsafeRecursion(t *testing.T) {
	t.Parallel()
	runRuleCases(t, DetectUnsafeRecursion, []ruleCase{
		{"def recursive(x, y):\n  return recursive(y, x-1)\n", 0},
		{"def recursive(x, y):\n  return recursive(y)\n", 1},
		{"def recursive(x, y):\n  return recursive(y, y=x)\n", 0},
		{"def recursive(x, *args):\n  return recursive(x)\n", 0},
		{"def recursive(x, **kw):\n  return recursive()\n", 0},
		{"def recursive(x, *, y):\n  return recursive(x)\n", 0},
		{"def recursive(a, /, x):\n  return recursive(1, 2)\n", 1},
		{"def recursive(x):\n  return other(x)\n", 0},
		{"recursive(1)\n", 0},
	})
}

func TestDetectUnsafeIterator(t *testing.T) {
	t.Parallel()
	var cases []ruleCase
	for _, returned := range unsafeIteratorCalls {
		cases = append(cases,
			ruleCase{fmt.Sprintf("def returns_unsafe_iterator(x):\n  return %s\n", returned), 1},
			ruleCase{fmt.Sprintf("def returns_safe_iterator(x):\n  return safe_iterator(%s)\n", returned), 0},
			ruleCase{fmt.Sprintf("def returns_safe_iterator(x):\n  yield from %s\n", returned), 0},
		)
		for _, second := range unsafeIteratorCalls {
			cases = append(cases, ruleCase{
				fmt.Sprintf("def returns_unsafe_iterator(x):\n  if x:\n    return %s\n  return %s\n", returned, second), 2,
			})
		}
	}
	cases = append(cases,
		ruleCase{"x = range(3) + range(4)\n", 1},
		ruleCase{"x = [1] + range(4)\n", 1},
		ruleCase{"x = [1] + [2]\n", 0},
	)
	runRuleCases(t, DetectUnsafeIterator, cases)

	msgs := findings(t, DetectUnsafeIterator, "def f(x):\n  return zip(x, x)\n")
	require.Len(t, msgs, 1)
	assert.True(t, strings.HasPrefix(msgs[0], "returning `zip` is not allowed"))
}

func TestDetectProtobufMethods(t *testing.T) {
	t.Parallel()
	var cases []ruleCase
	for _, method := range []string{"CopyFrom", "MergeFrom"} {
		cases = append(cases,
			ruleCase{fmt.Sprintf("x.%s(y)\n", method), 1},
			ruleCase{fmt.Sprintf("%s(x, y)\n", method), 0},
		)
	}
	runRuleCases(t, DetectProtobufMethods, cases)
}

func TestDetectUnsafeYield(t *testing.T) {
	t.Parallel()
	statements := []string{"yield 1", "yield from range(10)"}
	decorators := []string{
		"generator_to_list", "generator_to_dict", "generator_to_safe_iterator",
		"unsafe_generator", "contextmanager", "fixture", "hookimpl",
	}

	var cases []ruleCase
	for _, statement := range statements {
		cases = append(cases, ruleCase{fmt.Sprintf("def generator():\n  %s", statement), 1})
		for _, decorator := range decorators {
			cases = append(cases, ruleCase{fmt.Sprintf("@%s\ndef generator():\n  %s", decorator, statement), 0})
		}
	}
	cases = append(cases,
		ruleCase{"@pytest.fixture\ndef f():\n  yield 1\n", 0},
		ruleCase{"@pytest.fixture(scope='module')\ndef f():\n  yield 1\n", 0},
		ruleCase{"@contextlib.contextmanager\ndef f():\n  yield\n", 0},
		ruleCase{"@wraps(f)\ndef f():\n  yield\n", 1},
		ruleCase{"@generator_to_list\ndef f():\n  yield 1\n  return\n", 0},
		ruleCase{"@generator_to_list\ndef f():\n  yield 1\n  return 2\n", 1},
		ruleCase{"def f():\n  yield 1\n  yield 2\n", 2},
	)
	runRuleCases(t, DetectUnsafeYield, cases)
}

func TestDetectUnsafeYieldMixedReturnWins(t *testing.T) {
	t.Parallel()
	msgs := findings(t, DetectUnsafeYield, "def generator():\n  if True:\n    yield 1\n  return []")
	require.Len(t, msgs, 1)
	assert.True(t, strings.HasPrefix(msgs[0], "Do not mix "))
}

func TestDetectSingleElementTuple(t *testing.T) {
	t.Parallel()
	runRuleCases(t, DetectSingleElementTuple, []ruleCase{
		{"x = 1,", 1},
		{"x += 1,", 1},
		{"print(1),", 1},
		{"1,", 1},
		{"def func(x):\n  return x,\n", 1},
		{"def func(x):\n  yield x,\n", 1},
		{"x = tuple((1,))", 0},
		{"x += tuple((1,))", 0},
		{"tuple((print(1),))", 0},
		{"tuple((1,))", 0},
		{"def func(x):\n  return tuple((x,))\n", 0},
		{"def func(x):\n  yield tuple((x,))\n", 0},
		{"x = 1, 2\n", 0},
	})
}

func TestDetectAddingStrings(t *testing.T) {
	t.Parallel()
	runRuleCases(t, DetectAddingStrings, []ruleCase{
		{"'test adding' + 'strings'\n", 1},
		{"f'{x}' + 'strings'\n", 1},
		{"('test'\n'adding'\n'strings')\n", 0},
		{"'a' * 3\n", 0},
		{"x + 'a'\n", 0},
	})
}

func TestDetectMapFilter(t *testing.T) {
	t.Parallel()
	runRuleCases(t, DetectMapFilter, []ruleCase{
		{"map(int, range(10))\n", 1},
		{"filter(int, range(10))\n", 1},
		{"[int(x) for x in range(10)]\n", 0},
		{"[x for x in range(10) if int(x)]\n", 0},
	})

	msgs := findings(t, DetectMapFilter, "filter(None, x)\n")
	require.Len(t, msgs, 1)
	assert.Equal(t, "use generator expression over the filter function", msgs[0])
}

func TestDetectTestSuiteInheritance(t *testing.T) {
	t.Parallel()
	runRuleCases(t, DetectTestSuiteInheritance, []ruleCase{
		{"class TestClass(TestBase):\n  pass\n", 1},
		{"class TestClass(Base):\n  pass\n", 0},
		{"class Helper(TestBase):\n  pass\n", 0},
		{"class TestClass(mod.TestBase):\n  pass\n", 0},
	})
}

func TestDetectTestSuiteImport(t *testing.T) {
	t.Parallel()
	runRuleCases(t, DetectTestSuiteImport, []ruleCase{
		{"from . import TestClass\n", 1},
		{"from . import test_function\n", 1},
		{"from . import NotTestClass\n", 0},
		{"from . import not_test_function\n", 0},
		{"from m import Helper as TestHelper\n", 1},
		{"from m import TestHelper as Helper\n", 0},
		{"import test_module\n", 1},
	})

	msgs := findings(t, DetectTestSuiteImport, "from . import test_function\n")
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0], "test_function")
	assert.Contains(t, msgs[0], "`test_`")
}

func TestDetectSetComparison(t *testing.T) {
	t.Parallel()
	runRuleCases(t, DetectSetComparison, []ruleCase{
		{"{x for x in range(10)} <= other\n", 1},
		{"{x for x in range(10)} >= other\n", 1},
		{"other <= {x for x in range(10)}\n", 1},
		{"other >= {x for x in range(10)}\n", 1},
		{"set(x for x in y) <= other\n", 1},
		{"other >= set([x for x in y])\n", 1},
		{"all(x in other for x in range(10))\n", 0},
		{"all(x in range(10) for x in other)\n", 0},
		{"{x for x in y} == other\n", 0},
		{"set(y) <= other\n", 0},
	})
}

func TestDetectComputeImport(t *testing.T) {
	t.Parallel()
	runRuleCases(t, DetectComputeImport, []ruleCase{
		{"from libsigopt.compute import *\n", 1},
		{"import libsigopt.compute\n", 1},
		{"from libsigopt.compute.models import x\n", 1},
		{"from libsigopt import *\n", 0},
		{"from libsigopt.aux import *\n", 0},
		{"from libsigopt.views import *\n", 0},
		{"import libsigopt.aux\n", 0},
		{"import libsigopt.views\n", 0},
		{"import libsigopt\n", 0},
		{"from . import compute\n", 0},
	})
}
