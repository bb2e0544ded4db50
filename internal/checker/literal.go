package checker

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	typescript "github.com/smacker/go-tree-sitter/typescript/typescript"
)

// TypeOfSynthesizedLiteral types a literal expression by wrapping it in a
// minimal variable declaration, parsing that snippet, and classifying the
// initializer. This borrows the parser's literal classification instead of
// reimplementing literal-typing rules, and it is the only function in the
// module that manufactures syntax that never existed in a source file.
//
// An empty literal produces any: `var v;` has no initializer.
func (c *Checker) TypeOfSynthesizedLiteral(literal string) *Type {
	if c.synth == nil {
		c.synth = sitter.NewParser()
		c.synth.SetLanguage(typescript.GetLanguage())
	}
	src := []byte("var __v = " + literal + ";")
	if literal == "" {
		src = []byte("var __v;")
	}
	tree, err := c.synth.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return Primitive(Any)
	}
	defer tree.Close()

	value := findSynthesizedValue(tree.RootNode())
	if value == nil {
		return Primitive(Any)
	}
	return c.typeOfExpression(value, src)
}

// findSynthesizedValue digs the initializer expression out of the snippet:
// program > variable_declaration > variable_declarator (field value).
func findSynthesizedValue(root *sitter.Node) *sitter.Node {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Type() != "variable_declaration" && stmt.Type() != "lexical_declaration" {
			continue
		}
		for j := 0; j < int(stmt.NamedChildCount()); j++ {
			decl := stmt.NamedChild(j)
			if decl.Type() == "variable_declarator" {
				return decl.ChildByFieldName("value")
			}
		}
	}
	return nil
}

// typeOfExpression classifies an expression node. Only literal shapes get a
// precise kind; a bare identifier is unbound, anything else is other.
func (c *Checker) typeOfExpression(node *sitter.Node, src []byte) *Type {
	switch node.Type() {
	case "number":
		return Primitive(Number)
	case "string", "template_string":
		return Primitive(String)
	case "true", "false":
		return Primitive(Boolean)
	case "null":
		return Primitive(Null)
	case "undefined":
		return Primitive(Undefined)
	case "identifier":
		if node.Content(src) == "undefined" {
			return Primitive(Undefined)
		}
		return Primitive(Unbound)
	}
	return Primitive(Other)
}
