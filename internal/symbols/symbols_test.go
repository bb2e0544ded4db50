package symbols

import (
	"testing"

	"github.com/jward/trellis/internal/checker"
	"github.com/jward/trellis/internal/diag"
	"github.com/jward/trellis/internal/host"
	"github.com/jward/trellis/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChecker(t *testing.T, files map[string]string) *checker.Checker {
	t.Helper()
	ws := host.NewWorkspace()
	for path, text := range files {
		ws.SetText(path, text)
	}
	return checker.New(ws, "")
}

func TestTable_InsertionOrderAndLookup(t *testing.T) {
	a := Variable("alpha", nil)
	b := Variable("beta", nil)
	tbl := NewTable(a, b)

	assert.Equal(t, 2, tbl.Size())
	assert.True(t, tbl.Has("alpha"))
	assert.False(t, tbl.Has("gamma"))

	got, ok := tbl.Get("beta")
	require.True(t, ok)
	assert.Same(t, b, got)

	vals := tbl.Values()
	require.Len(t, vals, 2)
	assert.Equal(t, "alpha", vals[0].Name())
	assert.Equal(t, "beta", vals[1].Name())
}

func TestTable_LaterEntryWins(t *testing.T) {
	first := Variable("x", nil)
	second := Variable("x", nil)
	tbl := NewTable(first, second)

	assert.Equal(t, 1, tbl.Size())
	got, _ := tbl.Get("x")
	assert.Same(t, second, got)
}

func TestMerge(t *testing.T) {
	base := NewTable(Variable("a", nil), Variable("b", nil))
	override := Variable("b", nil)
	merged := Merge(base, NewTable(override, Variable("c", nil)))

	assert.Equal(t, 3, merged.Size())
	got, _ := merged.Get("b")
	assert.Same(t, override, got)
}

func TestTypeSymbol_ClassMembers(t *testing.T) {
	chk := newTestChecker(t, map[string]string{
		"/src/widget.ts": `export class Widget {
  title: string;
  private secret: string;
  greet(name: string): string { return name; }
}
`,
	})
	cls, ok := chk.ClassNamed("/src/widget.ts", "Widget")
	require.True(t, ok)

	sym := TypeSymbol(chk, chk.TypeOfClass(cls))
	assert.Equal(t, "Widget", sym.Name())
	assert.Equal(t, KindType, sym.Kind())
	assert.False(t, sym.Callable())

	members := sym.Members()
	require.NotNil(t, members)
	assert.Equal(t, 3, members.Size())

	title, ok := members.Get("title")
	require.True(t, ok)
	assert.Equal(t, KindProperty, title.Kind())
	assert.True(t, title.Public())
	assert.Equal(t, "string", title.Type().Name())

	secret, ok := members.Get("secret")
	require.True(t, ok)
	assert.False(t, secret.Public())

	greet, ok := members.Get("greet")
	require.True(t, ok)
	assert.Equal(t, KindMethod, greet.Kind())
	assert.True(t, greet.Callable())
	assert.Same(t, sym, greet.Container())
}

func TestMemberSymbol_Signatures(t *testing.T) {
	chk := newTestChecker(t, map[string]string{
		"/src/widget.ts": `export class Widget {
  greet(name: string, times: number): string { return name; }
}
`,
	})
	cls, _ := chk.ClassNamed("/src/widget.ts", "Widget")
	m, ok := chk.MemberNamed(cls, "greet")
	require.True(t, ok)

	sym := MemberSymbol(chk, m, nil)
	sigs := sym.Signatures()
	require.Len(t, sigs, 1)

	sig := sigs[0]
	assert.Equal(t, 2, sig.Arguments.Size())
	name, _ := sig.Arguments.Get("name")
	assert.Equal(t, "string", name.Type().Name())
	assert.Equal(t, "string", sig.Result.Name())

	// SelectSignature takes the first declared signature.
	assert.Same(t, sigs[0], sym.SelectSignature(nil))
}

func TestMemberSymbol_PropertyHasNoSignatures(t *testing.T) {
	chk := newTestChecker(t, map[string]string{
		"/src/widget.ts": `export class Widget {
  title: string;
}
`,
	})
	cls, _ := chk.ClassNamed("/src/widget.ts", "Widget")
	m, _ := chk.MemberNamed(cls, "title")

	sym := MemberSymbol(chk, m, nil)
	assert.Nil(t, sym.Signatures())
	assert.Nil(t, sym.SelectSignature(nil))
}

func TestTypeSymbol_IndexedArray(t *testing.T) {
	chk := newTestChecker(t, map[string]string{
		"/src/widget.ts": `export class Widget {
  items: string[];
}
`,
	})
	cls, _ := chk.ClassNamed("/src/widget.ts", "Widget")
	m, _ := chk.MemberNamed(cls, "items")

	sym := MemberSymbol(chk, m, nil)
	elem := sym.Indexed(nil)
	require.NotNil(t, elem)
	assert.Equal(t, "string", elem.Name())

	title := Variable("plain", TypeSymbol(chk, checker.Primitive(checker.String)))
	assert.Nil(t, title.Indexed(nil))
}

func TestVariable(t *testing.T) {
	chk := newTestChecker(t, nil)
	typ := TypeSymbol(chk, checker.Primitive(checker.Number))
	v := Variable("count", typ)

	assert.Equal(t, "count", v.Name())
	assert.Equal(t, KindProperty, v.Kind())
	assert.True(t, v.Public())
	assert.False(t, v.Callable())
	assert.Same(t, typ, v.Type())
	assert.Nil(t, v.Container())
}

func testPipeMeta(t *testing.T, files map[string]string, file, class string) (*checker.Checker, *resolver.Metadata) {
	t.Helper()
	ws := host.NewWorkspace()
	for path, text := range files {
		ws.SetText(path, text)
	}
	chk := checker.New(ws, "")
	r := resolver.New(chk, resolver.NewSymbolCache())
	meta := r.Resolve(r.Symbol(file, class), diag.NewSink())
	require.NotNil(t, meta)
	return chk, meta
}

func TestPipeSymbol_TransformSignature(t *testing.T) {
	chk, meta := testPipeMeta(t, map[string]string{
		"/src/shorten.pipe.ts": `@Pipe({name: 'shorten'})
export class ShortenPipe {
  transform(value: string, max: number): string { return value; }
}
`,
	}, "/src/shorten.pipe.ts", "ShortenPipe")

	pipe := PipeSymbol(chk, meta)
	assert.Equal(t, "shorten", pipe.Name())
	assert.Equal(t, KindPipe, pipe.Kind())
	assert.True(t, pipe.Callable())

	sigs := pipe.Signatures()
	require.Len(t, sigs, 1)
	assert.Equal(t, 2, sigs[0].Arguments.Size())
	assert.Equal(t, "string", sigs[0].Result.Name())
}

func TestPipeSymbol_NoTransformFallsBack(t *testing.T) {
	chk, meta := testPipeMeta(t, map[string]string{
		"/src/odd.pipe.ts": `@Pipe({name: 'odd'})
export class OddPipe {}
`,
	}, "/src/odd.pipe.ts", "OddPipe")

	pipe := PipeSymbol(chk, meta)
	sigs := pipe.Signatures()
	require.Len(t, sigs, 1)
	assert.Equal(t, 0, sigs[0].Arguments.Size())
	assert.Equal(t, "any", sigs[0].Result.Name())
}

func TestPipeSymbol_AsyncUnwrapsElement(t *testing.T) {
	chk, meta := testPipeMeta(t, map[string]string{
		"/src/async.pipe.ts": `@Pipe({name: 'async'})
export class AsyncPipe {
  transform(value: any): any { return value; }
}
`,
	}, "/src/async.pipe.ts", "AsyncPipe")

	pipe := PipeSymbol(chk, meta)

	arg := TypeSymbol(chk, &checker.Type{
		Kind: checker.Generic,
		Name: "Observable",
		Args: []*checker.Type{checker.Primitive(checker.String)},
	})
	sig := pipe.SelectSignature([]Symbol{arg})
	require.NotNil(t, sig)
	assert.Equal(t, "string", sig.Result.Name())

	// A non-wrapper argument keeps the declared result.
	plain := TypeSymbol(chk, checker.Primitive(checker.Number))
	sig = pipe.SelectSignature([]Symbol{plain})
	require.NotNil(t, sig)
	assert.Equal(t, "any", sig.Result.Name())
}

func TestPipeSymbol_SlicePreservesArgumentType(t *testing.T) {
	chk, meta := testPipeMeta(t, map[string]string{
		"/src/slice.pipe.ts": `@Pipe({name: 'slice'})
export class SlicePipe {
  transform(value: any, start: number): any { return value; }
}
`,
	}, "/src/slice.pipe.ts", "SlicePipe")

	pipe := PipeSymbol(chk, meta)
	arg := TypeSymbol(chk, &checker.Type{Kind: checker.Array, Elem: checker.Primitive(checker.String)})

	sig := pipe.SelectSignature([]Symbol{arg})
	require.NotNil(t, sig)
	assert.Same(t, arg, sig.Result)
}

func TestPipeTable(t *testing.T) {
	chk, meta := testPipeMeta(t, map[string]string{
		"/src/shorten.pipe.ts": `@Pipe({name: 'shorten'})
export class ShortenPipe {
  transform(value: string): string { return value; }
}
`,
	}, "/src/shorten.pipe.ts", "ShortenPipe")

	tbl := PipeTable(chk, []*resolver.Metadata{meta, {PipeName: ""}})
	assert.Equal(t, 1, tbl.Size())
	assert.True(t, tbl.Has("shorten"))
}

func newTestQuery(t *testing.T, files map[string]string, file string) *Query {
	t.Helper()
	ws := host.NewWorkspace()
	for path, text := range files {
		ws.SetText(path, text)
	}
	chk := checker.New(ws, "")
	builtins := make(map[checker.Kind]Symbol)
	pipes := func() SymbolTable { return NewTable() }
	var parse *host.Parse
	var text string
	if file != "" {
		var ok bool
		parse, ok = ws.Tree(file)
		require.True(t, ok)
		text, _ = ws.Text(file)
	}
	return NewQuery(chk, builtins, pipes, parse, text)
}

func TestQuery_BuiltinTypes(t *testing.T) {
	q := newTestQuery(t, nil, "")

	cases := map[checker.Kind]string{
		checker.Any:     "any",
		checker.Boolean: "boolean",
		checker.Number:  "number",
		checker.String:  "string",
	}
	for kind, name := range cases {
		sym := q.BuiltinType(kind)
		require.NotNil(t, sym, "kind %v", kind)
		assert.Equal(t, name, sym.Name(), "kind %v", kind)
	}
}

func TestQuery_BuiltinTypesStableWithinSnapshot(t *testing.T) {
	chk := newTestChecker(t, nil)
	builtins := make(map[checker.Kind]Symbol)
	pipes := func() SymbolTable { return NewTable() }

	q1 := NewQuery(chk, builtins, pipes, nil, "")
	q2 := NewQuery(chk, builtins, pipes, nil, "")

	// Queries sharing a snapshot's builtin cache return identical symbols.
	assert.Same(t, q1.BuiltinType(checker.String), q2.BuiltinType(checker.String))
	assert.Same(t, q1.BuiltinType(checker.Number), q1.BuiltinType(checker.Number))
}

func TestQuery_TypeAlgebra(t *testing.T) {
	q := newTestQuery(t, nil, "")

	str := q.BuiltinType(checker.String)
	num := q.BuiltinType(checker.Number)
	null := q.BuiltinType(checker.Null)

	arr := q.ArrayType(str)
	elem := q.ElementType(arr)
	require.NotNil(t, elem)
	assert.Equal(t, "string", elem.Name())
	assert.Nil(t, q.ElementType(num))

	u := q.TypeUnion(str, null)
	stripped := q.NonNullableType(u)
	assert.Equal(t, "string", stripped.Name())

	// A non-nullable type passes through unchanged.
	assert.Same(t, num, q.NonNullableType(num))
}

func TestQuery_TemplateContext(t *testing.T) {
	files := map[string]string{
		"/src/widget.ts": `export class Widget {
  title: string;
  count: number;
}
`,
	}
	q := newTestQuery(t, files, "/src/widget.ts")
	cache := resolver.NewSymbolCache()

	ctx := q.TemplateContext(cache.Get("/src/widget.ts", "Widget"))
	require.NotNil(t, ctx)
	assert.Equal(t, 2, ctx.Size())
	assert.True(t, ctx.Has("title"))
	assert.True(t, ctx.Has("count"))

	// An unresolvable class yields an empty table, not nil.
	ghost := q.TemplateContext(cache.Get("/src/widget.ts", "Ghost"))
	require.NotNil(t, ghost)
	assert.Equal(t, 0, ghost.Size())
}

func TestQuery_SpanAt(t *testing.T) {
	src := "class Widget { title: string; }\n"
	q := newTestQuery(t, map[string]string{"/src/widget.ts": src}, "/src/widget.ts")

	// Line 0, col 16 is inside "title".
	sp, ok := q.SpanAt(0, 16)
	require.True(t, ok)
	assert.Equal(t, "title", src[sp.Start:sp.End])

	_, ok = q.SpanAt(9, 0)
	assert.False(t, ok)
}

func TestQuery_SpanAt_NoParse(t *testing.T) {
	q := newTestQuery(t, nil, "")
	_, ok := q.SpanAt(0, 0)
	assert.False(t, ok)
}
