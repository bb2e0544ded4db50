// Package resolver owns the framework-level view of declarations: canonical
// StaticSymbol identities and the reflector that turns a decorated class
// into directive, pipe, or module metadata. It resolves names across files
// through imports and re-exports, independent of any single parse tree's
// local scope.
package resolver

import (
	"github.com/jward/trellis/internal/checker"
)

// StaticSymbol identifies a framework-level declaration by its declaring
// file and exported name. Values are immutable and interned: two calls that
// name the same declaration return the same pointer, so a StaticSymbol is
// safe to use as a map key across cache rebuilds.
type StaticSymbol struct {
	FilePath string `json:"filePath"`
	Name     string `json:"name"`
}

func (s *StaticSymbol) String() string { return s.FilePath + "#" + s.Name }

type symbolKey struct {
	filePath string
	name     string
}

// SymbolCache interns StaticSymbols. It outlives cache invalidation: the
// identities themselves never go stale, only metadata derived from them
// does.
type SymbolCache struct {
	symbols map[symbolKey]*StaticSymbol
}

// NewSymbolCache returns an empty intern table.
func NewSymbolCache() *SymbolCache {
	return &SymbolCache{symbols: make(map[symbolKey]*StaticSymbol)}
}

// Get returns the canonical StaticSymbol for (filePath, name).
func (c *SymbolCache) Get(filePath, name string) *StaticSymbol {
	key := symbolKey{filePath: filePath, name: name}
	if sym, ok := c.symbols[key]; ok {
		return sym
	}
	sym := &StaticSymbol{FilePath: filePath, Name: name}
	c.symbols[key] = sym
	return sym
}

// Resolver resolves framework declarations against the current program
// snapshot. A Resolver is rebuilt wholesale on invalidation; the SymbolCache
// it interns through is not.
type Resolver struct {
	chk      *checker.Checker
	cache    *SymbolCache
	metadata map[*StaticSymbol]*Metadata
}

// New returns a Resolver over chk, interning through cache.
func New(chk *checker.Checker, cache *SymbolCache) *Resolver {
	return &Resolver{
		chk:      chk,
		cache:    cache,
		metadata: make(map[*StaticSymbol]*Metadata),
	}
}

// Symbol returns the canonical StaticSymbol for (filePath, name).
func (r *Resolver) Symbol(filePath, name string) *StaticSymbol {
	return r.cache.Get(filePath, name)
}

// Checker exposes the underlying checker for collaborating packages.
func (r *Resolver) Checker() *checker.Checker { return r.chk }

// ResolveIdentifier resolves a bare identifier written in fromFile, either
// a locally declared class or an imported name, to its canonical symbol.
func (r *Resolver) ResolveIdentifier(fromFile, name string) (*StaticSymbol, bool) {
	if _, ok := r.chk.ClassNamed(fromFile, name); ok {
		return r.Symbol(fromFile, name), true
	}
	if ref, ok := r.chk.ResolveImportedName(fromFile, name); ok {
		return r.Symbol(ref.File, ref.Name), true
	}
	return nil, false
}
