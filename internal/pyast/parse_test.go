package pyast

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *Tree {
	t.Helper()
	tree, err := Parse(context.Background(), "test.py", []byte(src))
	require.NoError(t, err)
	require.NotNil(t, tree.Root)
	return tree
}

func TestParseCall(t *testing.T) {
	t.Parallel()
	tree := mustParse(t, "dt.datetime.now()\n")

	require.Len(t, tree.Root.Children, 1)
	stmt := tree.Root.Children[0]
	assert.Equal(t, Expr, stmt.Kind)

	call := stmt.Value
	require.True(t, call.Is(Call))
	assert.Equal(t, 1, call.Line)
	assert.Equal(t, 0, call.Col)
	assert.Empty(t, call.Args)

	require.True(t, call.Func.Is(Attribute))
	assert.Equal(t, "now", call.Func.Ident)
	assert.Equal(t, "datetime", call.Func.Value.Ident)
	assert.Equal(t, Name, call.Func.Value.Value.Kind)
	assert.Equal(t, "dt", call.Func.Value.Value.Ident)
}

func TestParseCallArguments(t *testing.T) {
	t.Parallel()
	tree := mustParse(t, "f(a, *b, c=1, **d)\nset(x for x in y)\n")

	call := tree.Root.Children[0].Value
	require.True(t, call.Is(Call))
	require.Len(t, call.Args, 2)
	assert.Equal(t, Name, call.Args[0].Kind)
	assert.Equal(t, Starred, call.Args[1].Kind)
	require.Len(t, call.Keywords, 2)
	assert.Equal(t, "c", call.Keywords[0].Ident)
	assert.Equal(t, "", call.Keywords[1].Ident)

	gen := tree.Root.Children[1].Value
	require.True(t, gen.IsCallTo("set"))
	require.Len(t, gen.Args, 1)
	assert.Equal(t, GeneratorExp, gen.Args[0].Kind)
}

func TestParseFunctionDefinition(t *testing.T) {
	t.Parallel()
	src := "@generator_to_list\n@pytest.fixture(scope='module')\ndef f(a, /, b, c=1, *args, d, **kw):\n  pass\n"
	tree := mustParse(t, src)

	fn := tree.Root.Children[0]
	require.Equal(t, FunctionDef, fn.Kind)
	assert.Equal(t, "f", fn.Ident)
	assert.Equal(t, 3, fn.Line)
	assert.Equal(t, 0, fn.Col)

	require.Len(t, fn.Decorators, 2)
	assert.Equal(t, Name, fn.Decorators[0].Kind)
	assert.Equal(t, Call, fn.Decorators[1].Kind)

	kinds := make([]ParamKind, 0, len(fn.Params))
	names := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		kinds = append(kinds, p.ParamKind)
		names = append(names, p.Ident)
	}
	assert.Equal(t, []string{"a", "b", "c", "args", "d", "kw"}, names)
	assert.Equal(t, []ParamKind{
		PositionalOnly, PositionalOrKeyword, PositionalOrKeyword,
		VarPositional, KeywordOnly, VarKeyword,
	}, kinds)
}

func TestParseKeywordOnlySeparator(t *testing.T) {
	t.Parallel()
	tree := mustParse(t, "def f(a, *, b):\n  pass\n")

	fn := tree.Root.Children[0]
	require.Len(t, fn.Params, 2)
	assert.Equal(t, PositionalOrKeyword, fn.Params[0].ParamKind)
	assert.Equal(t, KeywordOnly, fn.Params[1].ParamKind)
}

func TestParseTuples(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		kind Kind
		elts int
	}{
		{"bare trailing comma", "x = 1,\n", Assign, 1},
		{"parenthesized single", "x = (1,)\n", Assign, 1},
		{"pair", "x = 1, 2\n", Assign, 2},
		{"augmented", "x += 1,\n", AugAssign, 1},
		{"expression statement", "print(1),\n", Expr, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := mustParse(t, tt.src)
			stmt := tree.Root.Children[0]
			require.Equal(t, tt.kind, stmt.Kind)
			require.True(t, stmt.Value.Is(Tuple))
			assert.Len(t, stmt.Value.Elts, tt.elts)
		})
	}
}

func TestParseParenthesesAreTransparent(t *testing.T) {
	t.Parallel()
	tree := mustParse(t, "x = (a)\n")

	stmt := tree.Root.Children[0]
	require.Equal(t, Assign, stmt.Kind)
	assert.Equal(t, Name, stmt.Value.Kind)
	assert.Equal(t, 5, stmt.Value.Col)
}

func TestParseChainedAssignment(t *testing.T) {
	t.Parallel()
	tree := mustParse(t, "a = b = 1,\n")

	stmt := tree.Root.Children[0]
	require.Equal(t, Assign, stmt.Kind)
	assert.Len(t, stmt.Targets, 2)
	assert.True(t, stmt.Value.Is(Tuple))
}

func TestParseYield(t *testing.T) {
	t.Parallel()
	tree := mustParse(t, "def g():\n  yield 1\n  yield from h()\n  yield\n")

	fn := tree.Root.Children[0]
	require.Len(t, fn.Children, 3)

	y := fn.Children[0].Value
	assert.Equal(t, Yield, y.Kind)
	assert.NotNil(t, y.Value)

	yf := fn.Children[1].Value
	assert.Equal(t, YieldFrom, yf.Kind)
	assert.True(t, yf.Value.IsCallTo("h"))

	bare := fn.Children[2].Value
	assert.Equal(t, Yield, bare.Kind)
	assert.Nil(t, bare.Value)
}

func TestParseCompare(t *testing.T) {
	t.Parallel()
	tree := mustParse(t, "a < b not in c is not d\n")

	cmp := tree.Root.Children[0].Value
	require.Equal(t, Compare, cmp.Kind)
	assert.Equal(t, "a", cmp.Left.Ident)
	assert.Equal(t, []string{"<", "not in", "is not"}, cmp.Ops)
	assert.Len(t, cmp.Comparators, 3)
}

func TestParseStrings(t *testing.T) {
	t.Parallel()
	tests := []struct {
		src  string
		kind Kind
	}{
		{"'a'\n", Str},
		{"'a' 'b'\n", Str},
		{"f'{x}'\n", JoinedStr},
		{"'a' f'{x}'\n", JoinedStr},
		{"b'a'\n", Bytes},
		{"rb'a'\n", Bytes},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree := mustParse(t, tt.src)
			assert.Equal(t, tt.kind, tree.Root.Children[0].Value.Kind)
		})
	}
}

func TestParseImports(t *testing.T) {
	t.Parallel()
	src := "import a.b as c, d\nfrom ..x.y import z, w as v\nfrom . import t\nfrom m import *\n"
	tree := mustParse(t, src)
	require.Len(t, tree.Root.Children, 4)

	imp := tree.Root.Children[0]
	require.Equal(t, Import, imp.Kind)
	require.Len(t, imp.Names, 2)
	assert.Equal(t, "a.b", imp.Names[0].Ident)
	assert.Equal(t, "c", imp.Names[0].AsName)
	assert.Equal(t, "d", imp.Names[1].Ident)

	rel := tree.Root.Children[1]
	require.Equal(t, ImportFrom, rel.Kind)
	assert.Equal(t, "x.y", rel.Ident)
	assert.Equal(t, 2, rel.Level)
	require.Len(t, rel.Names, 2)
	assert.Equal(t, "z", rel.Names[0].Ident)
	assert.Equal(t, "v", rel.Names[1].AsName)

	dot := tree.Root.Children[2]
	assert.Equal(t, "", dot.Ident)
	assert.Equal(t, 1, dot.Level)
	require.Len(t, dot.Names, 1)
	assert.Equal(t, "t", dot.Names[0].Ident)

	star := tree.Root.Children[3]
	assert.Equal(t, "m", star.Ident)
	require.Len(t, star.Names, 1)
	assert.Equal(t, "*", star.Names[0].Ident)
}

func TestParseClassBases(t *testing.T) {
	t.Parallel()
	tree := mustParse(t, "class TestA(TestBase, mixins.M, metaclass=Meta):\n  pass\n")

	cls := tree.Root.Children[0]
	require.Equal(t, ClassDef, cls.Kind)
	assert.Equal(t, "TestA", cls.Ident)
	require.Len(t, cls.Bases, 2)
	assert.Equal(t, Name, cls.Bases[0].Kind)
	assert.Equal(t, Attribute, cls.Bases[1].Kind)
}

func TestParseComments(t *testing.T) {
	t.Parallel()
	tree := mustParse(t, "x = 1  # trailing\n# sigoptlint: disable=A\ny = '# not a comment'\n")

	require.Len(t, tree.Comments, 2)
	assert.Equal(t, Comment{Line: 1, Col: 7, Text: "# trailing"}, tree.Comments[0])
	assert.Equal(t, 2, tree.Comments[1].Line)
	assert.Equal(t, "# sigoptlint: disable=A", tree.Comments[1].Text)
}

func TestParseSyntaxError(t *testing.T) {
	t.Parallel()
	tree, err := Parse(context.Background(), "bad.py", []byte("# sigoptlint: disable=X\ndef f(:\n  pass\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSyntax))

	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "bad.py", serr.Filename)
	assert.Positive(t, serr.Line)

	require.NotNil(t, tree)
	assert.Nil(t, tree.Root)
	assert.Len(t, tree.Comments, 1)
}

func TestParseRejectsPython2Forms(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"print statement", "print 'hello'\n", 1},
		{"exec statement", "x = 1\nexec 'x = 1'\n", 2},
		{"splat after double splat", "f(**a, *b)\n", 1},
		{"positional after double splat", "f(**a, b)\n", 1},
		{"positional after keyword", "f(a=1, b)\n", 1},
		{"diamond operator", "a <> b\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(context.Background(), "old.py", []byte(tt.src))
			require.ErrorIs(t, err, ErrInvalidSyntax)

			var serr *SyntaxError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, tt.line, serr.Line)
			require.NotNil(t, tree)
			assert.Nil(t, tree.Root)
		})
	}
}

func TestParseAcceptsPython3ArgumentOrders(t *testing.T) {
	t.Parallel()
	for _, src := range []string{
		"print('hello')\n",
		"exec('x = 1')\n",
		"f(a, *b, c=1, *d, **e, g=2)\n",
		"f(a=1, *b)\n",
		"class A(B, metaclass=M):\n  pass\n",
	} {
		t.Run(src, func(t *testing.T) {
			mustParse(t, src)
		})
	}
}

func TestParseInvalidUTF8(t *testing.T) {
	t.Parallel()
	_, err := Parse(context.Background(), "bad.py", []byte{'x', '=', 0xff, '\n'})
	assert.ErrorIs(t, err, ErrInvalidSyntax)
}
