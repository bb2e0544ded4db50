package checker

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// TypeOf reads a declared type annotation node into a Type. fromFile is the
// file the annotation appears in; named types resolve to their declaring
// file through that file's imports. Unresolvable names still produce a
// usable Type, Kind Other with the written name, so downstream analysis
// degrades instead of failing.
func (c *Checker) TypeOf(node *sitter.Node, src []byte, fromFile string) *Type {
	if node == nil {
		return Primitive(Any)
	}
	// type_annotation is the ": T" wrapper; the type is its named child.
	if node.Type() == "type_annotation" {
		if inner := node.NamedChild(0); inner != nil {
			return c.TypeOf(inner, src, fromFile)
		}
		return Primitive(Any)
	}

	// null and undefined show up under several node types depending on
	// position; classify by spelling before shape.
	switch node.Content(src) {
	case "null":
		return Primitive(Null)
	case "undefined":
		return Primitive(Undefined)
	}

	switch node.Type() {
	case "predefined_type":
		return primitiveNamed(node.Content(src))
	case "type_identifier":
		name := node.Content(src)
		if file, ok := c.declaringFile(fromFile, name); ok {
			return &Type{Kind: ClassKind, Name: name, File: file}
		}
		return &Type{Kind: Other, Name: name}
	case "generic_type":
		t := &Type{Kind: Generic}
		if name := node.ChildByFieldName("name"); name != nil {
			t.Name = name.Content(src)
			if file, ok := c.declaringFile(fromFile, t.Name); ok {
				t.File = file
			}
		}
		if args := node.ChildByFieldName("type_arguments"); args != nil {
			for i := 0; i < int(args.NamedChildCount()); i++ {
				t.Args = append(t.Args, c.TypeOf(args.NamedChild(i), src, fromFile))
			}
		}
		return t
	case "array_type":
		return &Type{Kind: Array, Elem: c.TypeOf(node.NamedChild(0), src, fromFile)}
	case "union_type":
		var arms []*Type
		for i := 0; i < int(node.NamedChildCount()); i++ {
			arms = append(arms, c.TypeOf(node.NamedChild(i), src, fromFile))
		}
		return NewUnion(arms...)
	case "parenthesized_type":
		return c.TypeOf(node.NamedChild(0), src, fromFile)
	case "literal_type":
		if inner := node.NamedChild(0); inner != nil {
			return c.typeOfExpression(inner, src)
		}
		return Primitive(Other)
	}
	return &Type{Kind: Other, Name: node.Content(src)}
}

func primitiveNamed(name string) *Type {
	switch name {
	case "any", "unknown":
		return Primitive(Any)
	case "boolean":
		return Primitive(Boolean)
	case "number":
		return Primitive(Number)
	case "string":
		return Primitive(String)
	default:
		return &Type{Kind: Other, Name: name}
	}
}

// declaringFile resolves a type name used in fromFile to the workspace file
// declaring it: the same file, or the target of an import, following named
// re-export chains.
func (c *Checker) declaringFile(fromFile, name string) (string, bool) {
	if _, ok := c.ClassNamed(fromFile, name); ok {
		return fromFile, true
	}
	if ref, ok := c.ResolveImportedName(fromFile, name); ok {
		return ref.File, true
	}
	return "", false
}
