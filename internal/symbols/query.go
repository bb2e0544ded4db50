package symbols

import (
	"github.com/jward/trellis/internal/checker"
	"github.com/jward/trellis/internal/host"
	"github.com/jward/trellis/internal/resolver"
	"github.com/jward/trellis/internal/span"
)

// Query answers symbol and type questions for one file of the current
// program snapshot. Queries share the per-snapshot builtin cache handed to
// NewQuery, so repeated builtin lookups return the same Symbol pointer
// until the snapshot is invalidated.
type Query struct {
	chk      *checker.Checker
	builtins map[checker.Kind]Symbol
	pipes    func() SymbolTable
	parse    *host.Parse // may be nil for files without a parse tree
	text     string
}

// NewQuery builds a Query. builtins is owned by the caller and shared
// across queries of one snapshot generation; pipes supplies the pipe table
// lazily so constructing a Query never forces module analysis.
func NewQuery(chk *checker.Checker, builtins map[checker.Kind]Symbol, pipes func() SymbolTable, parse *host.Parse, text string) *Query {
	return &Query{
		chk:      chk,
		builtins: builtins,
		pipes:    pipes,
		parse:    parse,
		text:     text,
	}
}

// builtinLiterals spell each built-in kind as a minimal literal for the
// synthesized-expression adapter. Any has no spelling: an initializer-less
// declaration types as any. Other uses a regex literal, the cheapest
// expression with no more precise classification.
var builtinLiterals = map[checker.Kind]string{
	checker.Any:       "",
	checker.Boolean:   "true",
	checker.Null:      "null",
	checker.Number:    "0",
	checker.String:    `""`,
	checker.Undefined: "undefined",
	checker.Unbound:   "__unbound",
	checker.Other:     "/./",
}

// BuiltinType returns the symbol for a built-in kind, synthesizing it on
// first request and caching it for the snapshot's lifetime.
func (q *Query) BuiltinType(kind checker.Kind) Symbol {
	if sym, ok := q.builtins[kind]; ok {
		return sym
	}
	lit, ok := builtinLiterals[kind]
	if !ok {
		lit = ""
	}
	sym := TypeSymbol(q.chk, q.chk.TypeOfSynthesizedLiteral(lit))
	q.builtins[kind] = sym
	return sym
}

// TypeUnion returns the symbol for the union of the given symbols' types.
func (q *Query) TypeUnion(syms ...Symbol) Symbol {
	arms := make([]*checker.Type, len(syms))
	for i, s := range syms {
		arms[i] = checkerTypeOf(s)
	}
	return TypeSymbol(q.chk, checker.NewUnion(arms...))
}

// ArrayType returns the symbol for elem[].
func (q *Query) ArrayType(elem Symbol) Symbol {
	return TypeSymbol(q.chk, &checker.Type{Kind: checker.Array, Elem: checkerTypeOf(elem)})
}

// ElementType returns the element symbol of an array-shaped symbol, or nil.
func (q *Query) ElementType(sym Symbol) Symbol {
	elem := checker.ElementType(checkerTypeOf(sym))
	if elem == nil {
		return nil
	}
	return TypeSymbol(q.chk, elem)
}

// NonNullableType strips null and undefined from a union-typed symbol.
func (q *Query) NonNullableType(sym Symbol) Symbol {
	t := checkerTypeOf(sym)
	stripped := checker.NonNullable(t)
	if stripped == t {
		return sym
	}
	return TypeSymbol(q.chk, stripped)
}

// Pipes returns the pipe table of the current snapshot.
func (q *Query) Pipes() SymbolTable { return q.pipes() }

// TemplateContext returns the members visible to a template owned by the
// given component symbol: the component class's members. Returns an empty
// table when the symbol does not resolve to a class.
func (q *Query) TemplateContext(component *resolver.StaticSymbol) SymbolTable {
	cls, ok := q.chk.ClassNamed(component.FilePath, component.Name)
	if !ok {
		return NewTable()
	}
	owner := TypeSymbol(q.chk, q.chk.TypeOfClass(cls))
	return owner.Members()
}

// CreateTable builds a SymbolTable from syms.
func (q *Query) CreateTable(syms ...Symbol) SymbolTable { return NewTable(syms...) }

// MergeTables merges tables; later entries win.
func (q *Query) MergeTables(tables ...SymbolTable) SymbolTable { return Merge(tables...) }

// SpanAt returns the span of the narrowest named lexical node at a
// zero-based line/column in the query's file.
func (q *Query) SpanAt(line, col int) (span.Span, bool) {
	if q.parse == nil {
		return span.Span{}, false
	}
	offset, ok := span.OffsetFor(q.text, line, col)
	if !ok {
		return span.Span{}, false
	}
	node := span.NarrowestAt(q.parse.Root(), offset)
	if node == nil {
		return span.Span{}, false
	}
	return span.Of(node), true
}
