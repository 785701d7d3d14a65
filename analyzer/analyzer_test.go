package analyzer

import (
	"strings"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/logrush/analyzer/cache"
	"github.com/viant/logrush/analyzer/parser"
	"github.com/viant/logrush/analyzer/scope"
	"github.com/viant/logrush/document"
)

const marker = "/*POS*/"

func newAnalyzer(t *testing.T, options ...Option) *Analyzer {
	t.Helper()
	ret, err := New(options...)
	require.NoError(t, err)
	return ret
}

// markedDocument returns a document and the position of the marker comment
func markedDocument(fileName, code string) (*document.TextDocument, document.Position) {
	doc := document.NewTextDocument(fileName, code)
	return doc, doc.PositionAt(strings.Index(code, marker))
}

func TestAnalyzer_ResolveContext(t *testing.T) {
	var testCases = []struct {
		description  string
		fileName     string
		code         string
		expectName   string
		expectObject string
		expectPath   []string
		expectKind   NodeKind
	}{
		{
			description: "innermost function wins",
			code:        "function outer(){ function inner(){ /*POS*/ } }",
			expectName:  "inner",
			expectPath:  []string{"inner"},
			expectKind:  KindFunctionDeclaration,
		},
		{
			description:  "nested object method",
			code:         "const obj = { a: { method(){ /*POS*/ } } }",
			expectName:   "method",
			expectObject: "obj.a",
			expectPath:   []string{"obj", "a", "method"},
			expectKind:   KindObjectMethod,
		},
		{
			description:  "class method",
			code:         "class Service {\n  run(job: string) {\n    /*POS*/\n  }\n}",
			expectName:   "run",
			expectObject: "Service",
			expectPath:   []string{"Service", "run"},
			expectKind:   KindClassMethod,
		},
		{
			description: "arrow assigned to variable",
			code:        "const handler = (evt) => { /*POS*/ };",
			expectName:  "handler",
			expectPath:  []string{"handler"},
			expectKind:  KindArrowFunction,
		},
		{
			description: "anonymous callback",
			code:        "items.forEach(function () { /*POS*/ });",
			expectName:  Anonymous,
			expectPath:  []string{Anonymous},
			expectKind:  KindFunctionExpression,
		},
		{
			description: "named function expression argument",
			code:        "run(function named() { /*POS*/ });",
			expectName:  "named",
			expectPath:  []string{"named"},
			expectKind:  KindFunctionExpression,
		},
		{
			description:  "arrow object property",
			code:         "const api = { load: async () => { /*POS*/ } };",
			expectName:   "load",
			expectObject: "api",
			expectPath:   []string{"api", "load"},
			expectKind:   KindArrowFunction,
		},
		{
			description:  "class field arrow",
			fileName:     "store.tsx",
			code:         "class Store {\n  save = () => { /*POS*/ };\n}",
			expectName:   "save",
			expectObject: "Store",
			expectPath:   []string{"Store", "save"},
			expectKind:   KindArrowFunction,
		},
		{
			description:  "object wrapped in type assertion",
			code:         "const routes = { home() { /*POS*/ } } as const;",
			expectName:   "home",
			expectObject: "routes",
			expectPath:   []string{"routes", "home"},
			expectKind:   KindObjectMethod,
		},
		{
			description: "outside any function",
			code:        "const a = 1; /*POS*/",
		},
	}

	for _, testCase := range testCases {
		fileName := testCase.fileName
		if fileName == "" {
			fileName = "example.ts"
		}
		doc, position := markedDocument(fileName, testCase.code)
		info := newAnalyzer(t).ResolveContext(doc, position)
		assert.Equal(t, testCase.expectName, info.FunctionName, testCase.description)
		assert.Equal(t, testCase.expectObject, info.ObjectName, testCase.description)
		assert.Equal(t, testCase.expectPath, info.Path, testCase.description)
		assert.Equal(t, testCase.expectKind, info.Kind, testCase.description)
		assert.NotNil(t, info.VariableScope, testCase.description)
	}
}

func TestAnalyzer_ResolveContext_ParseFailure(t *testing.T) {
	doc, position := markedDocument("broken.ts", "function f() { if (a) { /*POS*/ return 1; }")
	info := newAnalyzer(t).ResolveContext(doc, position)
	assert.True(t, info.IsEmpty())
	assert.Nil(t, info.VariableScope)
}

func TestAnalyzer_ResolveInsertionPoint(t *testing.T) {
	var testCases = []struct {
		description  string
		code         string
		variable     string
		expectOffset func(code string) int
		expectTier   Tier
		expectKind   scope.Kind
	}{
		{
			description: "after the full declaration",
			code:        "function f(){ const x = compute(a,b); /*POS*/ }",
			variable:    "x",
			expectOffset: func(code string) int {
				return strings.Index(code, "compute(a,b);") + len("compute(a,b);")
			},
			expectTier: TierScope,
			expectKind: scope.Block,
		},
		{
			description: "multi line initializer",
			code:        "function f() {\n  const user = {\n    id: 1,\n    name: 'a',\n  };\n  /*POS*/\n}",
			variable:    "user",
			expectOffset: func(code string) int {
				return strings.Index(code, "};") + 2
			},
			expectTier: TierScope,
			expectKind: scope.Block,
		},
		{
			description: "declared in an ancestor scope",
			code:        "const total = sum();\nfunction report() {\n  if (ready) {\n    /*POS*/\n  }\n}",
			variable:    "total",
			expectOffset: func(code string) int {
				return strings.Index(code, "\n")
			},
			expectTier: TierScope,
			expectKind: scope.Global,
		},
		{
			description: "parameter goes inside the body",
			code:        "function g(p) {\n  /*POS*/\n}",
			variable:    "p",
			expectOffset: func(code string) int {
				return strings.Index(code, "{") + 1
			},
			expectTier: TierScope,
			expectKind: scope.Function,
		},
		{
			description: "exported declaration",
			code:        "export const cfg = load();\n/*POS*/",
			variable:    "cfg",
			expectOffset: func(code string) int {
				return strings.Index(code, "\n")
			},
			expectTier: TierScope,
			expectKind: scope.Global,
		},
		{
			description: "unknown variable after the preceding statement",
			code:        "function h() {\n  run();\n  /*POS*/\n}",
			variable:    "missing",
			expectOffset: func(code string) int {
				return strings.Index(code, "run();") + len("run();")
			},
			expectTier: TierStatement,
			expectKind: scope.Block,
		},
		{
			description: "unknown variable in an empty function body",
			code:        "function h() {\n  /*POS*/\n}",
			variable:    "missing",
			expectOffset: func(code string) int {
				return strings.Index(code, "{") + 1
			},
			expectTier: TierStatement,
			expectKind: scope.Block,
		},
		{
			description: "expression bodied arrow parameter",
			code:        "const twice = item => item /*POS*/ * 2;",
			variable:    "item",
			expectOffset: func(code string) int {
				return len(code)
			},
			expectTier: TierStatement,
			expectKind: scope.Function,
		},
	}

	for _, testCase := range testCases {
		doc, position := markedDocument("example.ts", testCase.code)
		got := newAnalyzer(t).ResolveInsertionPoint(doc, document.Cursor(position), testCase.variable)
		assert.True(t, got.IsEndOfStatement, testCase.description)
		assert.Equal(t, testCase.expectTier, got.Tier, testCase.description)
		assert.Equal(t, doc.PositionAt(testCase.expectOffset(testCase.code)), got.Position(), testCase.description)
		require.NotNil(t, got.Scope, testCase.description)
		assert.Equal(t, testCase.expectKind, got.Scope.Kind, testCase.description)
		assert.LessOrEqual(t, got.Scope.End, len(testCase.code), testCase.description)
	}
}

func TestAnalyzer_ResolveInsertionPoint_Fallback(t *testing.T) {
	code := "function f() {\n  if (a) { const v = 1;\n  return v;\n"
	doc := document.NewTextDocument("broken.js", code)
	selection := document.Selection{
		Start: document.Position{Line: 1, Character: 4},
		End:   document.Position{Line: 1, Character: 10},
	}
	analyzer := newAnalyzer(t)
	got := analyzer.ResolveInsertionPoint(doc, selection, "v")
	assert.False(t, got.IsEndOfStatement)
	assert.Equal(t, TierLineEnd, got.Tier)
	assert.Equal(t, document.LineEnd(doc, 1), got.Position())
	assert.Nil(t, got.Scope)
	assert.True(t, analyzer.ResolveContext(doc, selection.Start).IsEmpty())
}

func TestFromObjectMethod(t *testing.T) {
	code := "const o = { m() { const v = 1; call(v); } };"
	tree, err := parser.Parse(code, "example.js")
	require.NoError(t, err)
	offset := strings.Index(code, "call")
	end, ok := fromObjectMethod(tree, offset, "v")
	require.True(t, ok)
	assert.Equal(t, strings.Index(code, "1;")+2, end)

	_, ok = fromObjectMethod(tree, offset, "w")
	assert.False(t, ok)
	_, ok = fromObjectMethod(tree, len(code), "v")
	assert.False(t, ok, "method must contain the offset")
}

func TestAnalyzer_FindVariable(t *testing.T) {
	code := "let a = 1;\nfunction f(a) {\n  /*POS*/\n}\nfunction g() { return b; }"
	doc, position := markedDocument("example.ts", code)
	analyzer := newAnalyzer(t)

	inner, ok := analyzer.FindVariable(doc, position, "a")
	require.True(t, ok)
	assert.True(t, inner.IsParameter)

	outer, ok := analyzer.FindVariable(doc, document.Position{Line: 0, Character: 0}, "a")
	require.True(t, ok)
	assert.False(t, outer.IsParameter)
	assert.NotSame(t, inner, outer)

	_, ok = analyzer.FindVariable(doc, position, "b")
	assert.False(t, ok)
}

func TestAnalyzer_ClearCache(t *testing.T) {
	calls := 0
	c, err := cache.New(cache.WithParseFunc(func(text, fileName string) (*parser.Tree, error) {
		calls++
		return parser.Parse(text, fileName)
	}))
	require.NoError(t, err)
	analyzer := newAnalyzer(t, WithCache(c))
	assert.Same(t, c, analyzer.Cache())

	doc, position := markedDocument("a.ts", "function f() { /*POS*/ }")
	analyzer.ResolveContext(doc, position)
	analyzer.ResolveInsertionPoint(doc, document.Cursor(position), "x")
	assert.Equal(t, 1, calls)

	analyzer.ClearCache("other.ts")
	analyzer.ResolveContext(doc, position)
	assert.Equal(t, 1, calls)

	analyzer.ClearCache(doc.FileName())
	analyzer.ResolveContext(doc, position)
	assert.Equal(t, 2, calls)

	analyzer.ClearCache()
	analyzer.ResolveContext(doc, position)
	assert.Equal(t, 3, calls)
}

func descendants(n *sitter.Node) []*sitter.Node {
	ret := []*sitter.Node{n}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		ret = append(ret, descendants(n.NamedChild(i))...)
	}
	return ret
}

func TestClassify(t *testing.T) {
	code := "function a() {}\nconst b = function () {};\nconst c = () => 1;\nconst d = { e() {} };\nclass F { g() {} }"
	tree, err := parser.Parse(code, "example.ts")
	require.NoError(t, err)
	kinds := map[NodeKind]int{}
	for _, n := range descendants(tree.Root()) {
		if kind := classify(n); kind != KindNone {
			kinds[kind]++
		}
	}
	assert.Equal(t, map[NodeKind]int{
		KindFunctionDeclaration: 1,
		KindFunctionExpression:  1,
		KindArrowFunction:       1,
		KindObjectMethod:        1,
		KindClassMethod:         1,
	}, kinds)
	assert.Equal(t, "classMethod", KindClassMethod.String())
	assert.Equal(t, "none", KindNone.String())
}
