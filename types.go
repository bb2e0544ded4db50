package trellis

import (
	"github.com/jward/trellis/internal/checker"
	"github.com/jward/trellis/internal/config"
	"github.com/jward/trellis/internal/diag"
	"github.com/jward/trellis/internal/host"
	"github.com/jward/trellis/internal/modules"
	"github.com/jward/trellis/internal/resolver"
	"github.com/jward/trellis/internal/span"
	"github.com/jward/trellis/internal/symbols"
	"github.com/jward/trellis/internal/template"
)

// Public type aliases for the internal types surfaced by the Analyzer API.
// These are Go type aliases (=), identical to the internal types at compile
// time. External consumers use these names; no conversion is needed.

type Span = span.Span
type Position = span.Position
type Diagnostic = diag.Diagnostic
type Host = host.Host
type Workspace = host.Workspace
type Project = config.Project
type StaticSymbol = resolver.StaticSymbol
type Metadata = resolver.Metadata
type MetaKind = resolver.MetaKind
type AnalyzedModules = modules.AnalyzedModules
type ModuleSummary = modules.ModuleSummary
type Declaration = modules.Declaration
type TemplateSource = template.Source
type Symbol = symbols.Symbol
type SymbolTable = symbols.SymbolTable
type Signature = symbols.Signature
type SymbolQuery = symbols.Query
type BuiltinKind = checker.Kind

// Metadata kinds, re-exported for consumers classifying declarations.
const (
	MetaNone      = resolver.MetaNone
	MetaDirective = resolver.MetaDirective
	MetaComponent = resolver.MetaComponent
	MetaPipe      = resolver.MetaPipe
	MetaModule    = resolver.MetaModule
)

// Built-in type kinds accepted by SymbolQuery.BuiltinType.
const (
	BuiltinAny       = checker.Any
	BuiltinBoolean   = checker.Boolean
	BuiltinNull      = checker.Null
	BuiltinNumber    = checker.Number
	BuiltinString    = checker.String
	BuiltinUndefined = checker.Undefined
	BuiltinUnbound   = checker.Unbound
	BuiltinOther     = checker.Other
)

// NewWorkspace returns an empty in-memory workspace host.
func NewWorkspace() *Workspace { return host.NewWorkspace() }
