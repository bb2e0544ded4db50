package trellis

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

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

// cacheRecord pairs a memoized value with the snapshot generation it was
// computed for. Validity is a generation comparison, never an ad-hoc nil
// check, so stale values can never be read after an invalidation.
type cacheRecord[V any] struct {
	value V
	gen   uint64
	valid bool
}

func (r *cacheRecord[V]) get(gen uint64) (V, bool) {
	if !r.valid || r.gen != gen {
		var zero V
		return zero, false
	}
	return r.value, true
}

func (r *cacheRecord[V]) put(gen uint64, v V) {
	r.value = v
	r.gen = gen
	r.valid = true
}

// Analyzer is the entry point of the analysis core. It bridges a Host to
// the framework-level caches and guarantees that every public query reads
// state computed against the host's current snapshot: each public
// operation revalidates first, and invalidation is all-or-nothing.
//
// Analyzer is single-threaded by design. Every operation runs to
// completion before the next is accepted; edits are ordinary synchronous
// calls on the same caller thread, so no query can observe a torn update.
type Analyzer struct {
	host    host.Host
	project *config.Project
	chk     *checker.Checker
	sink    *diag.Sink

	// symbolCache outlives invalidation: canonical identities never go
	// stale, only metadata derived from them does.
	symbolCache *resolver.SymbolCache

	generation uint64
	lastStamp  uint64
	validated  bool

	res     *resolver.Resolver
	locator *template.Locator

	analyzed cacheRecord[*modules.AnalyzedModules]
	external cacheRecord[map[string]*resolver.StaticSymbol]
	builtins map[checker.Kind]symbols.Symbol
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithProject supplies an explicit project configuration instead of
// discovering one.
func WithProject(p *config.Project) Option {
	return func(a *Analyzer) {
		a.project = p
	}
}

// New creates an Analyzer over h. Without WithProject, the project
// configuration is discovered by walking upward from rootDir; failing to
// establish any configuration root is fatal, since module resolution has no
// meaningful fallback.
func New(h host.Host, rootDir string, opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		host:        h,
		symbolCache: resolver.NewSymbolCache(),
		sink:        diag.NewSink(),
		builtins:    make(map[checker.Kind]symbols.Symbol),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.project == nil {
		p, err := config.Find(rootDir)
		if err != nil {
			return nil, fmt.Errorf("trellis: resolve project: %w", err)
		}
		a.project = p
	}
	a.chk = checker.New(h, a.project.BaseURL)
	return a, nil
}

// Project returns the configuration the Analyzer resolved.
func (a *Analyzer) Project() *config.Project { return a.project }

// validate compares the host's current snapshot identity to the last seen
// one and, on any change, discards every derived cache wholesale. Coarse
// invalidation trades recomputation for correctness simplicity; framework
// analysis is not the dominant cost of an edit. Idempotent, called at the
// top of every public operation.
func (a *Analyzer) validate() {
	stamp := host.ProgramStamp(a.host)
	if a.validated && stamp == a.lastStamp {
		return
	}

	// Any file whose stamp moved, appeared, or vanished made the program
	// stamp differ; error and declaration state derived from the old
	// snapshot is stale from here on, wholesale.
	a.sink.Clear()

	a.generation++
	a.lastStamp = stamp
	a.validated = true
	a.res = resolver.New(a.chk, a.symbolCache)
	a.locator = template.NewLocator(a.host, a.res, a.templateViews)
	a.builtins = make(map[checker.Kind]symbols.Symbol)
}

// sourceFiles lists the host's parseable source files, filtered by the
// project's include and exclude patterns.
func (a *Analyzer) sourceFiles() []string {
	var files []string
	for _, name := range a.host.FileNames() {
		if !strings.HasSuffix(name, ".ts") && !strings.HasSuffix(name, ".tsx") {
			continue
		}
		if rel, err := filepath.Rel(a.project.RootDir, name); err == nil && !a.project.Match(rel) {
			continue
		}
		files = append(files, name)
	}
	return files
}

// SourceFiles lists the parseable source files of the current snapshot,
// sorted, after applying the project's include and exclude patterns.
func (a *Analyzer) SourceFiles() []string {
	a.validate()
	return a.sourceFiles()
}

// AnalyzedModules returns the current module snapshot, computing it on the
// first request after an invalidation.
func (a *Analyzer) AnalyzedModules() *modules.AnalyzedModules {
	a.validate()
	if am, ok := a.analyzed.get(a.generation); ok {
		return am
	}
	am := modules.Analyze(a.res, a.sourceFiles(), a.sink)
	a.analyzed.put(a.generation, am)
	return am
}

// externalIndex maps external template files to their declaring component,
// built once per snapshot from the analyzed modules.
func (a *Analyzer) externalIndex() map[string]*resolver.StaticSymbol {
	if idx, ok := a.external.get(a.generation); ok {
		return idx
	}
	idx := template.ExternalIndex(a.AnalyzedModules())
	a.external.put(a.generation, idx)
	return idx
}

// TemplateReferences lists the files known to contain externally referenced
// template content, sorted.
func (a *Analyzer) TemplateReferences() []string {
	a.validate()
	idx := a.externalIndex()
	refs := make([]string, 0, len(idx))
	for path := range idx {
		refs = append(refs, path)
	}
	sort.Strings(refs)
	return refs
}

// TemplateSourceAt returns the template content containing offset in file:
// an inline template literal, or the whole file when file is a registered
// external template. Nil means no template there, which is an ordinary
// outcome.
func (a *Analyzer) TemplateSourceAt(file string, offset int) *template.Source {
	a.validate()
	if src := a.locator.SourceAt(file, offset); src != nil {
		return src
	}
	if owner, ok := a.externalIndex()[file]; ok {
		return a.locator.ExternalSource(file, owner)
	}
	return nil
}

// TemplateSourcesFor collects every template source belonging to file: all
// inline literals, plus the file itself when it is an external template.
func (a *Analyzer) TemplateSourcesFor(file string) []*template.Source {
	a.validate()
	sources := a.locator.SourcesIn(file)
	if owner, ok := a.externalIndex()[file]; ok {
		if src := a.locator.ExternalSource(file, owner); src != nil {
			sources = append(sources, src)
		}
	}
	return sources
}

// DeclarationsIn returns one Declaration per framework-decorated class in
// file, each carrying the file's collected diagnostics.
func (a *Analyzer) DeclarationsIn(file string) []*modules.Declaration {
	a.validate()
	return modules.DeclarationsIn(a.res, file, a.sink)
}

// DiagnosticsFor returns the diagnostics currently collected against file.
func (a *Analyzer) DiagnosticsFor(file string) []diag.Diagnostic {
	a.validate()
	return a.sink.ForFile(file)
}

// Query returns the symbol query engine for file. Builtin lookups are
// reference-stable across Queries of one snapshot generation.
func (a *Analyzer) Query(file string) *symbols.Query {
	a.validate()
	parse, _ := a.host.Tree(file)
	text, _ := a.host.Text(file)
	builtins := a.builtins
	return symbols.NewQuery(a.chk, builtins, a.pipeTable, parse, text)
}

// pipeTable supplies the pipe symbol table of the current snapshot.
func (a *Analyzer) pipeTable() symbols.SymbolTable {
	return symbols.PipeTable(a.chk, a.AnalyzedModules().Pipes)
}

// templateViews binds a template Source's lazy member and query views to
// its owning declaration.
func (a *Analyzer) templateViews(owner *resolver.StaticSymbol, file string) (func() symbols.SymbolTable, func() *symbols.Query) {
	members := func() symbols.SymbolTable {
		return a.Query(file).TemplateContext(owner)
	}
	query := func() *symbols.Query {
		return a.Query(file)
	}
	return members, query
}

// SpanAt returns the span of the narrowest lexical node at a zero-based
// line and column in file.
func (a *Analyzer) SpanAt(file string, line, col int) (span.Span, bool) {
	a.validate()
	return a.Query(file).SpanAt(line, col)
}
