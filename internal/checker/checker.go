package checker

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/trellis/internal/host"
	"github.com/jward/trellis/internal/span"
)

// Checker answers type and declaration queries over a Host's parse trees.
// It holds no per-file caches of its own: the host already caches trees per
// version, and everything derived here is cheap relative to a parse.
type Checker struct {
	host    host.Host
	baseURL string // module-resolution base for non-relative import specifiers

	synth *sitter.Parser // lazily created, only by TypeOfSynthesizedLiteral
}

// New returns a Checker over h. baseURL may be empty; then only relative
// import specifiers resolve.
func New(h host.Host, baseURL string) *Checker {
	return &Checker{host: h, baseURL: baseURL}
}

// Class is a class declaration found in a parsed file.
type Class struct {
	Name     string
	File     string
	Exported bool
	Node     *sitter.Node // the class_declaration node
	Src      []byte
}

// Span returns the byte range of the whole class declaration.
func (c *Class) Span() span.Span { return span.Of(c.Node) }

// Classes returns every class declared at the top level of path, in source
// order. Returns nil when the file is unknown or not parsed.
func (c *Checker) Classes(path string) []*Class {
	parse, ok := c.host.Tree(path)
	if !ok {
		return nil
	}
	var classes []*Class
	root := parse.Root()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		switch stmt.Type() {
		case "class_declaration":
			if cls := newClass(stmt, path, parse.Src, false); cls != nil {
				classes = append(classes, cls)
			}
		case "export_statement":
			if decl := stmt.ChildByFieldName("declaration"); decl != nil && decl.Type() == "class_declaration" {
				if cls := newClass(decl, path, parse.Src, true); cls != nil {
					classes = append(classes, cls)
				}
			}
		}
	}
	return classes
}

func newClass(node *sitter.Node, path string, src []byte, exported bool) *Class {
	name := node.ChildByFieldName("name")
	if name == nil {
		return nil
	}
	return &Class{
		Name:     name.Content(src),
		File:     path,
		Exported: exported,
		Node:     node,
		Src:      src,
	}
}

// ClassNamed finds the class declared as name in path.
func (c *Checker) ClassNamed(path, name string) (*Class, bool) {
	for _, cls := range c.Classes(path) {
		if cls.Name == name {
			return cls, true
		}
	}
	return nil, false
}

// Decorators returns the decorator nodes attached to a class, covering both
// placements the grammar allows: on the class_declaration itself and on a
// wrapping export_statement.
func (c *Checker) Decorators(cls *Class) []*sitter.Node {
	var decorators []*sitter.Node
	collect := func(node *sitter.Node) {
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if child.Type() == "decorator" {
				decorators = append(decorators, child)
			}
		}
	}
	if parent := cls.Node.Parent(); parent != nil && parent.Type() == "export_statement" {
		collect(parent)
	}
	collect(cls.Node)
	return decorators
}

// TypeOfClass returns the Type value identifying cls.
func (c *Checker) TypeOfClass(cls *Class) *Type {
	return &Type{Kind: ClassKind, Name: cls.Name, File: cls.File}
}

// ClassOfType resolves a Class or Generic type back to its declaration.
func (c *Checker) ClassOfType(t *Type) (*Class, bool) {
	if t == nil || t.File == "" || t.Name == "" {
		return nil, false
	}
	return c.ClassNamed(t.File, t.Name)
}
