// Package symbols unifies the distinct symbol representations the analysis
// touches (checker types, class members, framework-declared template
// variables, pipe metadata) behind one capability interface.
// Consumers query capabilities; they never learn which representation is
// underneath.
//
// Wrapping is representation-preserving and lazy: constructing a wrapper
// does no computation, and every derived property is computed on first
// access and memoized on the wrapper, because most wrappers are built
// transiently during a tree walk and discarded unused.
package symbols

// SymbolKind is the structural kind of a symbol.
type SymbolKind string

const (
	KindType     SymbolKind = "type"
	KindMethod   SymbolKind = "method"
	KindProperty SymbolKind = "property"
	KindPipe     SymbolKind = "pipe"
)

// Symbol is the uniform capability set over every symbol origin.
type Symbol interface {
	// Name is the symbol's declared or derived name.
	Name() string
	// Kind is the structural kind.
	Kind() SymbolKind
	// Public reports whether the symbol is externally visible.
	Public() bool
	// Callable reports whether the symbol has call signatures.
	Callable() bool
	// Type returns the symbol's own type, as a symbol.
	Type() Symbol
	// Container returns the containing symbol, or nil at top level.
	Container() Symbol
	// Members returns the symbol's member table; empty when none.
	Members() SymbolTable
	// Signatures enumerates call signatures; nil for non-callables.
	Signatures() []*Signature
	// SelectSignature picks the signature for the given argument types.
	// When multiple signatures exist the first one wins; richer overload
	// resolution is deliberately not attempted.
	SelectSignature(args []Symbol) *Signature
	// Indexed returns the element symbol for an element access with the
	// given argument, or nil when the symbol is not indexable.
	Indexed(arg Symbol) Symbol
}

// Signature is one call signature of a callable symbol.
type Signature struct {
	Arguments SymbolTable
	Result    Symbol
}

// SymbolTable is an immutable mapping from name to Symbol.
type SymbolTable interface {
	// Size is the number of entries.
	Size() int
	// Get returns the symbol bound to name.
	Get(name string) (Symbol, bool)
	// Has reports whether name is bound.
	Has(name string) bool
	// Values enumerates the symbols in insertion order.
	Values() []Symbol
}
