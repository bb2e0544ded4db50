// Package template locates embedded template content inside parsed source
// files: inline string literals assigned to a component decorator's
// template property, and external files referenced through templateUrl.
package template

import (
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/trellis/internal/host"
	"github.com/jward/trellis/internal/modules"
	"github.com/jward/trellis/internal/resolver"
	"github.com/jward/trellis/internal/span"
	"github.com/jward/trellis/internal/symbols"
)

// Source is one piece of template content. Values live for a single
// request: the underlying text may change between calls even when the
// caller's version stamp still matches, so nothing caches a Source.
type Source struct {
	// Version is the owning file's version stamp at lookup time.
	Version uint64
	// Text is the template content.
	Text string
	// Span covers the content's byte range within the owning file. For an
	// inline template the enclosing quotes are excluded.
	Span span.Span
	// Declaration is the component class owning the template.
	Declaration *resolver.StaticSymbol

	members func() symbols.SymbolTable
	query   func() *symbols.Query

	memoMembers symbols.SymbolTable
	memoQuery   *symbols.Query
}

// Members returns the symbols visible inside the template, computed on
// first call and cached for this Source value only.
func (s *Source) Members() symbols.SymbolTable {
	if s.memoMembers == nil && s.members != nil {
		s.memoMembers = s.members()
	}
	return s.memoMembers
}

// Query returns the symbol query engine for the owning file, likewise lazy.
func (s *Source) Query() *symbols.Query {
	if s.memoQuery == nil && s.query != nil {
		s.memoQuery = s.query()
	}
	return s.memoQuery
}

// Locator finds template sources in parsed files. The viewFactory is
// supplied by the analyzer so a Source can build its member and query views
// lazily without the locator knowing about snapshot state.
type Locator struct {
	host host.Host
	res  *resolver.Resolver

	// viewFactory binds the lazy views of a Source to its owner.
	viewFactory func(owner *resolver.StaticSymbol, file string) (func() symbols.SymbolTable, func() *symbols.Query)
}

// NewLocator returns a Locator. viewFactory may be nil; Sources then have
// no member or query views.
func NewLocator(h host.Host, res *resolver.Resolver, viewFactory func(owner *resolver.StaticSymbol, file string) (func() symbols.SymbolTable, func() *symbols.Query)) *Locator {
	return &Locator{host: h, res: res, viewFactory: viewFactory}
}

// SourceAt returns the template source containing offset in file, or nil
// when the offset is not inside template content. Absence is the normal
// outcome, not an error.
func (l *Locator) SourceAt(file string, offset int) *Source {
	parse, ok := l.host.Tree(file)
	if !ok {
		return nil
	}
	node := span.NarrowestAt(parse.Root(), offset)
	// The narrowest node inside a literal is its fragment; climb back to
	// the literal itself.
	for node != nil && (node.Type() == "string_fragment" || node.Type() == "escape_sequence") {
		node = node.Parent()
	}
	if node == nil || !isStringNode(node) {
		return nil
	}
	return l.sourceFromLiteral(file, parse, node)
}

// SourcesIn collects every inline template in file, in source order. Files
// with several template literals (inline test fixtures, multiple components)
// yield one Source each. Descent stops at a matched literal: a matched
// node's children are never candidate literals themselves.
func (l *Locator) SourcesIn(file string) []*Source {
	parse, ok := l.host.Tree(file)
	if !ok {
		return nil
	}
	var sources []*Source
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if isStringNode(node) {
			if src := l.sourceFromLiteral(file, parse, node); src != nil {
				sources = append(sources, src)
			}
			return
		}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			walk(node.NamedChild(i))
		}
	}
	walk(parse.Root())
	return sources
}

// sourceFromLiteral verifies the ancestor shape of a candidate literal and
// builds its Source. The chain, from the literal outward, must be:
// property assignment named "template" → object literal → call expression →
// decorator → class declaration. Any broken link means "no template here".
func (l *Locator) sourceFromLiteral(file string, parse *host.Parse, literal *sitter.Node) *Source {
	pair := literal.Parent()
	if pair == nil || pair.Type() != "pair" {
		return nil
	}
	key := pair.ChildByFieldName("key")
	if key == nil || propertyName(key, parse.Src) != "template" {
		return nil
	}
	obj := pair.Parent()
	if obj == nil || obj.Type() != "object" {
		return nil
	}
	call := obj.Parent()
	if call != nil && call.Type() == "arguments" {
		call = call.Parent()
	}
	if call == nil || call.Type() != "call_expression" {
		return nil
	}
	dec := call.Parent()
	if dec == nil || dec.Type() != "decorator" {
		return nil
	}
	cls := dec.Parent()
	if cls != nil && cls.Type() == "export_statement" {
		cls = cls.ChildByFieldName("declaration")
	}
	if cls == nil || cls.Type() != "class_declaration" {
		return nil
	}
	name := cls.ChildByFieldName("name")
	if name == nil {
		return nil
	}

	owner := l.res.Symbol(file, name.Content(parse.Src))
	content := span.Span{Start: int(literal.StartByte()) + 1, End: int(literal.EndByte()) - 1}
	source := &Source{
		Version:     parse.Version,
		Text:        string(parse.Src[content.Start:content.End]),
		Span:        content,
		Declaration: owner,
	}
	if l.viewFactory != nil {
		source.members, source.query = l.viewFactory(owner, file)
	}
	return source
}

// ExternalSource builds the Source for an external template file owned by
// declaration. The whole file is the content.
func (l *Locator) ExternalSource(templateFile string, owner *resolver.StaticSymbol) *Source {
	text, ok := l.host.Text(templateFile)
	if !ok {
		return nil
	}
	version, _ := l.host.Version(templateFile)
	source := &Source{
		Version:     version,
		Text:        text,
		Span:        span.Span{Start: 0, End: len(text)},
		Declaration: owner,
	}
	if l.viewFactory != nil {
		source.members, source.query = l.viewFactory(owner, owner.FilePath)
	}
	return source
}

// ExternalIndex maps external template file paths to the component symbol
// declaring them. Built once per analysis pass by scanning every analyzed
// module's components; templateUrl values resolve against the declaring
// file's directory.
func ExternalIndex(am *modules.AnalyzedModules) map[string]*resolver.StaticSymbol {
	index := make(map[string]*resolver.StaticSymbol)
	for _, meta := range am.Directives {
		if meta.TemplateURL == "" {
			continue
		}
		path := filepath.Join(filepath.Dir(meta.Type.FilePath), meta.TemplateURL)
		index[path] = meta.Type
	}
	return index
}

func isStringNode(node *sitter.Node) bool {
	return node.Type() == "string" || node.Type() == "template_string"
}

func propertyName(key *sitter.Node, src []byte) string {
	if isStringNode(key) {
		text := key.Content(src)
		if len(text) >= 2 {
			return text[1 : len(text)-1]
		}
	}
	return key.Content(src)
}
