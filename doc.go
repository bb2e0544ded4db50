// Package trellis is an incremental, template-aware type-analysis host for
// decorator-based component frameworks embedded in TypeScript sources. It
// sits between the host program's parse trees and the framework's own
// semantic model, resolving identifiers written inside embedded templates
// against the types declared in the surrounding program, and keeping its
// caches consistent as files change across an editing session.
//
// # Pipeline
//
// Every public query runs through the same gate:
//
//  1. Validate: compare the host's snapshot identity to the last seen one;
//     on any change, discard all derived caches wholesale.
//
//  2. Analyze: lazily rebuild the module/declaration graph: which classes
//     each framework module declares as components, directives, and pipes.
//
//  3. Locate: find template content in the requested file, inline or
//     external, and attribute it to its owning declaration.
//
// # Usage
//
// Create a workspace host, load sources, and query through an Analyzer:
//
//	ws := trellis.NewWorkspace()
//	err := ws.LoadDirectory("path/to/project", nil)
//	a, err := trellis.New(ws, "path/to/project")
//
//	decls := a.DeclarationsIn("path/to/project/app.component.ts")
//	src := a.TemplateSourceAt("path/to/project/app.component.ts", 120)
//
// # Query API
//
// The [SymbolQuery] returned by [Analyzer.Query] answers symbol and type
// questions through one capability interface, regardless of whether a
// symbol came from the checker, a framework declaration, or pipe metadata:
//
//   - [SymbolQuery.BuiltinType]: built-in type lookup, cached per snapshot.
//   - [SymbolQuery.TypeUnion], [SymbolQuery.ArrayType],
//     [SymbolQuery.ElementType], [SymbolQuery.NonNullableType]: type
//     derivation.
//   - [SymbolQuery.Pipes]: pipe table of the analyzed modules.
//   - [SymbolQuery.TemplateContext]: members visible to a component's
//     template.
//   - [SymbolQuery.CreateTable], [SymbolQuery.MergeTables],
//     [SymbolQuery.SpanAt]: table construction and position mapping.
//
// # Consistency
//
// All analysis is demand-driven and synchronous. Edits are ordinary calls
// on the same thread (Workspace.SetText), so two back-to-back queries
// against unchanged state observe identical snapshots, and no query ever
// observes a cache mixing pre- and post-edit state. Callers needing
// responsiveness under bursts of edits debounce before querying.
package trellis
