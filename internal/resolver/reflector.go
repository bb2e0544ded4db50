package resolver

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/trellis/internal/checker"
	"github.com/jward/trellis/internal/diag"
	"github.com/jward/trellis/internal/span"
)

// MetaKind classifies resolved declaration metadata.
type MetaKind int

const (
	MetaNone MetaKind = iota
	MetaDirective
	MetaComponent
	MetaPipe
	MetaModule
)

var metaKindNames = map[MetaKind]string{
	MetaNone:      "none",
	MetaDirective: "directive",
	MetaComponent: "component",
	MetaPipe:      "pipe",
	MetaModule:    "module",
}

func (k MetaKind) String() string { return metaKindNames[k] }

// TemplateMeta describes an inline template: its text and the byte span of
// the literal's content within the declaring file, quotes excluded.
type TemplateMeta struct {
	Text string
	Span span.Span
}

// Metadata is the resolved runtime shape of one decorated class. Fields are
// populated according to Kind; a failed resolution yields partial metadata
// with the failure recorded in the sink, never an aborted analysis.
type Metadata struct {
	Type     *StaticSymbol
	Kind     MetaKind
	DeclSpan span.Span

	// Directive / component.
	Selector    string
	Template    *TemplateMeta
	TemplateURL string
	Inputs      []string
	Outputs     []string

	// Pipe.
	PipeName string

	// Module.
	Declarations []*StaticSymbol
	Imports      []*StaticSymbol
	Exports      []*StaticSymbol

	// Constructor parameter types, for dependency-injection analysis.
	CtorParams []*checker.Param
}

// IsComponent reports whether the metadata describes a component, i.e. a
// directive carrying template content.
func (m *Metadata) IsComponent() bool { return m.Kind == MetaComponent }

// decoratorKinds maps decorator names to the metadata kind they produce.
var decoratorKinds = map[string]MetaKind{
	"Component": MetaComponent,
	"Directive": MetaDirective,
	"Pipe":      MetaPipe,
	"NgModule":  MetaModule,
}

// Resolve computes the metadata for sym, memoized for the life of this
// Resolver. Returns nil when sym does not name a decorated class; that is
// an ordinary outcome for plain classes. Failures while reading a decorator
// are recorded into sink against sym's file and resolution continues with
// whatever was readable.
func (r *Resolver) Resolve(sym *StaticSymbol, sink *diag.Sink) *Metadata {
	if meta, ok := r.metadata[sym]; ok {
		return meta
	}
	meta := r.resolve(sym, sink)
	r.metadata[sym] = meta
	return meta
}

func (r *Resolver) resolve(sym *StaticSymbol, sink *diag.Sink) *Metadata {
	cls, ok := r.chk.ClassNamed(sym.FilePath, sym.Name)
	if !ok {
		sink.Record(sym.FilePath, span.Span{}, fmt.Sprintf("class %s is not declared in %s", sym.Name, sym.FilePath))
		return nil
	}
	for _, dec := range r.chk.Decorators(cls) {
		call := decoratorCall(dec)
		if call == nil {
			continue
		}
		name := decoratorName(call, cls.Src)
		kind, known := decoratorKinds[name]
		if !known {
			continue
		}
		meta := &Metadata{
			Type:       sym,
			Kind:       kind,
			DeclSpan:   cls.Span(),
			CtorParams: r.chk.ConstructorParams(cls),
		}
		r.readDecoratorArgs(meta, call, cls, name, sink)
		if kind == MetaComponent && meta.Template == nil && meta.TemplateURL == "" {
			sink.Record(sym.FilePath, span.Of(call), fmt.Sprintf("component %s declares neither template nor templateUrl", sym.Name))
		}
		return meta
	}
	return nil
}

// readDecoratorArgs interprets the decorator's object-literal argument.
func (r *Resolver) readDecoratorArgs(meta *Metadata, call *sitter.Node, cls *checker.Class, decorator string, sink *diag.Sink) {
	args := call.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() == 0 {
		return
	}
	obj := args.NamedChild(0)
	if obj.Type() != "object" {
		sink.Record(cls.File, span.Of(obj), fmt.Sprintf("expected an object literal argument to @%s on %s", decorator, cls.Name))
		return
	}
	for i := 0; i < int(obj.NamedChildCount()); i++ {
		pair := obj.NamedChild(i)
		if pair.Type() != "pair" {
			continue
		}
		key := pair.ChildByFieldName("key")
		value := pair.ChildByFieldName("value")
		if key == nil || value == nil {
			continue
		}
		switch propertyName(key, cls.Src) {
		case "selector":
			meta.Selector = literalString(value, cls.Src)
		case "name":
			meta.PipeName = literalString(value, cls.Src)
		case "template":
			if isStringNode(value) {
				meta.Template = &TemplateMeta{
					Text: checker.StringContent(value, cls.Src),
					Span: contentSpan(value),
				}
			}
		case "templateUrl":
			meta.TemplateURL = literalString(value, cls.Src)
		case "inputs":
			meta.Inputs = literalStrings(value, cls.Src)
		case "outputs":
			meta.Outputs = literalStrings(value, cls.Src)
		case "declarations":
			meta.Declarations = r.symbolList(value, cls, "declarations", sink)
		case "imports":
			meta.Imports = r.symbolList(value, cls, "imports", sink)
		case "exports":
			meta.Exports = r.symbolList(value, cls, "exports", sink)
		}
	}
}

// symbolList resolves an array of identifiers to canonical symbols. Each
// unresolvable entry is recorded and skipped; resolvable siblings survive.
func (r *Resolver) symbolList(value *sitter.Node, cls *checker.Class, property string, sink *diag.Sink) []*StaticSymbol {
	if value.Type() != "array" {
		sink.Record(cls.File, span.Of(value), fmt.Sprintf("expected an array for %s of %s", property, cls.Name))
		return nil
	}
	var out []*StaticSymbol
	for i := 0; i < int(value.NamedChildCount()); i++ {
		entry := value.NamedChild(i)
		if entry.Type() != "identifier" {
			sink.Record(cls.File, span.Of(entry), fmt.Sprintf("expected an identifier in %s of %s", property, cls.Name))
			continue
		}
		name := entry.Content(cls.Src)
		sym, ok := r.ResolveIdentifier(cls.File, name)
		if !ok {
			sink.Record(cls.File, span.Of(entry), fmt.Sprintf("unknown identifier %s in %s of %s", name, property, cls.Name))
			continue
		}
		out = append(out, sym)
	}
	return out
}

// decoratorCall returns the call expression of a decorator node, or nil for
// bare decorators like @Injectable without arguments being a plain
// identifier.
func decoratorCall(dec *sitter.Node) *sitter.Node {
	for i := 0; i < int(dec.NamedChildCount()); i++ {
		child := dec.NamedChild(i)
		if child.Type() == "call_expression" {
			return child
		}
	}
	return nil
}

func decoratorName(call *sitter.Node, src []byte) string {
	fn := call.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	return fn.Content(src)
}

func propertyName(key *sitter.Node, src []byte) string {
	if isStringNode(key) {
		return checker.StringContent(key, src)
	}
	return key.Content(src)
}

func isStringNode(node *sitter.Node) bool {
	return node.Type() == "string" || node.Type() == "template_string"
}

func literalString(node *sitter.Node, src []byte) string {
	if !isStringNode(node) {
		return ""
	}
	return checker.StringContent(node, src)
}

func literalStrings(node *sitter.Node, src []byte) []string {
	if node.Type() != "array" {
		return nil
	}
	var out []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if entry := node.NamedChild(i); isStringNode(entry) {
			out = append(out, checker.StringContent(entry, src))
		}
	}
	return out
}

// contentSpan is the byte span of a string literal's content, excluding the
// quote or backtick delimiters.
func contentSpan(node *sitter.Node) span.Span {
	s := span.Of(node)
	return span.Span{Start: s.Start + 1, End: s.End - 1}
}
