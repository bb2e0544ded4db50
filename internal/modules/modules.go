// Package modules walks the framework declaration graph reachable from the
// program's source files and summarizes which classes each module declares
// as components, directives, and pipes.
package modules

import (
	"sort"

	"github.com/jward/trellis/internal/diag"
	"github.com/jward/trellis/internal/resolver"
	"github.com/jward/trellis/internal/span"
)

// ModuleSummary is one analyzed framework module.
type ModuleSummary struct {
	Module *resolver.StaticSymbol
	Meta   *resolver.Metadata

	Components []*resolver.StaticSymbol
	Directives []*resolver.StaticSymbol
	Pipes      []*resolver.StaticSymbol
}

// AnalyzedModules is an immutable snapshot of the analyzed declaration
// graph. It is rebuilt wholesale when the program changes; nothing patches
// one in place.
type AnalyzedModules struct {
	// Modules in deterministic (file, name) order.
	Modules []*ModuleSummary
	// ModuleByDeclaration maps a declared symbol to the module declaring it.
	ModuleByDeclaration map[*resolver.StaticSymbol]*ModuleSummary

	// Directives holds component and directive metadata for every usable
	// declared symbol; Pipes likewise. Symbols whose metadata failed to
	// resolve are absent here and present in the error sink instead.
	Directives      []*resolver.Metadata
	DirectiveByType map[*resolver.StaticSymbol]*resolver.Metadata
	Pipes           []*resolver.Metadata
	PipeByType      map[*resolver.StaticSymbol]*resolver.Metadata
}

// Analyze builds the module snapshot for the given files. Failures inside a
// module's declarations list are recorded into sink; the failing symbol is
// omitted from the usable indices and analysis of its siblings continues.
func Analyze(r *resolver.Resolver, files []string, sink *diag.Sink) *AnalyzedModules {
	am := &AnalyzedModules{
		ModuleByDeclaration: make(map[*resolver.StaticSymbol]*ModuleSummary),
		DirectiveByType:     make(map[*resolver.StaticSymbol]*resolver.Metadata),
		PipeByType:          make(map[*resolver.StaticSymbol]*resolver.Metadata),
	}

	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted)

	for _, file := range sorted {
		for _, cls := range r.Checker().Classes(file) {
			sym := r.Symbol(file, cls.Name)
			meta := r.Resolve(sym, sink)
			if meta == nil || meta.Kind != resolver.MetaModule {
				continue
			}
			am.addModule(r, sym, meta, sink)
		}
	}
	return am
}

func (am *AnalyzedModules) addModule(r *resolver.Resolver, sym *resolver.StaticSymbol, meta *resolver.Metadata, sink *diag.Sink) {
	summary := &ModuleSummary{Module: sym, Meta: meta}
	for _, declared := range meta.Declarations {
		dm := r.Resolve(declared, sink)
		if dm == nil {
			// Failure already recorded against the declaring file; the
			// symbol stays out of the usable indices.
			continue
		}
		switch dm.Kind {
		case resolver.MetaComponent:
			summary.Components = append(summary.Components, declared)
			am.Directives = append(am.Directives, dm)
			am.DirectiveByType[declared] = dm
		case resolver.MetaDirective:
			summary.Directives = append(summary.Directives, declared)
			am.Directives = append(am.Directives, dm)
			am.DirectiveByType[declared] = dm
		case resolver.MetaPipe:
			summary.Pipes = append(summary.Pipes, declared)
			am.Pipes = append(am.Pipes, dm)
			am.PipeByType[declared] = dm
		default:
			sink.Record(declared.FilePath, dm.DeclSpan, declared.Name+" is declared by "+sym.Name+" but is neither a directive, a component, nor a pipe")
			continue
		}
		am.ModuleByDeclaration[declared] = summary
	}
	am.Modules = append(am.Modules, summary)
}

// Declaration is the per-class analysis product for one file: the class's
// framework symbol, its declaration span, resolved metadata when resolution
// succeeded, and the diagnostics collected against the file.
type Declaration struct {
	Type     *resolver.StaticSymbol
	Span     span.Span
	Metadata *resolver.Metadata
	Errors   []diag.Diagnostic
}

// DeclarationsIn resolves every framework-decorated class in file, one
// Declaration per decorated class in source order. Classes without a
// recognized decorator are skipped silently. Each returned Declaration
// carries the file's collected diagnostics.
func DeclarationsIn(r *resolver.Resolver, file string, sink *diag.Sink) []*Declaration {
	var decls []*Declaration
	for _, cls := range r.Checker().Classes(file) {
		sym := r.Symbol(file, cls.Name)
		meta := r.Resolve(sym, sink)
		if meta == nil {
			continue
		}
		decls = append(decls, &Declaration{
			Type:     sym,
			Span:     meta.DeclSpan,
			Metadata: meta,
		})
	}
	errs := sink.ForFile(file)
	for _, d := range decls {
		d.Errors = errs
	}
	return decls
}
