package checker

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/trellis/internal/span"
)

// MemberKind distinguishes the two member shapes a class body yields.
type MemberKind int

const (
	Property MemberKind = iota
	Method
)

func (k MemberKind) String() string {
	if k == Method {
		return "method"
	}
	return "property"
}

// Member is one field or method of a class.
type Member struct {
	Name   string
	Kind   MemberKind
	Public bool
	Type   *Type    // declared type for properties; nil means any
	Params []*Param // methods only
	Result *Type    // methods only; nil means any
	Span   span.Span
}

// Param is a declared function parameter.
type Param struct {
	Name string
	Type *Type
}

// Members returns the fields and methods of cls in source order. The
// constructor is not a member; its parameters are reachable through
// ConstructorParams.
func (c *Checker) Members(cls *Class) []*Member {
	body := cls.Node.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	var members []*Member
	for i := 0; i < int(body.NamedChildCount()); i++ {
		node := body.NamedChild(i)
		switch node.Type() {
		case "public_field_definition":
			members = append(members, c.fieldMember(cls, node))
		case "method_definition":
			m := c.methodMember(cls, node)
			if m.Name == "constructor" {
				continue
			}
			members = append(members, m)
		}
	}
	return members
}

// MemberNamed finds a member of cls by name.
func (c *Checker) MemberNamed(cls *Class, name string) (*Member, bool) {
	for _, m := range c.Members(cls) {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// ConstructorParams returns the declared constructor parameter types, or nil
// when the class has no constructor. This is what dependency-injection
// analysis reads.
func (c *Checker) ConstructorParams(cls *Class) []*Param {
	body := cls.Node.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		node := body.NamedChild(i)
		if node.Type() != "method_definition" {
			continue
		}
		if name := node.ChildByFieldName("name"); name != nil && name.Content(cls.Src) == "constructor" {
			return c.params(cls, node.ChildByFieldName("parameters"))
		}
	}
	return nil
}

func (c *Checker) fieldMember(cls *Class, node *sitter.Node) *Member {
	m := &Member{
		Kind:   Property,
		Public: isPublic(node, cls.Src),
		Span:   span.Of(node),
	}
	if name := node.ChildByFieldName("name"); name != nil {
		m.Name = name.Content(cls.Src)
	}
	if ann := node.ChildByFieldName("type"); ann != nil {
		m.Type = c.TypeOf(ann, cls.Src, cls.File)
	}
	return m
}

func (c *Checker) methodMember(cls *Class, node *sitter.Node) *Member {
	m := &Member{
		Kind:   Method,
		Public: isPublic(node, cls.Src),
		Span:   span.Of(node),
	}
	if name := node.ChildByFieldName("name"); name != nil {
		m.Name = name.Content(cls.Src)
	}
	m.Params = c.params(cls, node.ChildByFieldName("parameters"))
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		m.Result = c.TypeOf(ret, cls.Src, cls.File)
	}
	return m
}

func (c *Checker) params(cls *Class, formal *sitter.Node) []*Param {
	if formal == nil {
		return nil
	}
	var params []*Param
	for i := 0; i < int(formal.NamedChildCount()); i++ {
		node := formal.NamedChild(i)
		if node.Type() != "required_parameter" && node.Type() != "optional_parameter" {
			continue
		}
		p := &Param{}
		if pattern := node.ChildByFieldName("pattern"); pattern != nil {
			p.Name = pattern.Content(cls.Src)
		}
		if ann := node.ChildByFieldName("type"); ann != nil {
			p.Type = c.TypeOf(ann, cls.Src, cls.File)
		}
		params = append(params, p)
	}
	return params
}

// isPublic reports whether a class member lacks a private or protected
// accessibility modifier.
func isPublic(node *sitter.Node, src []byte) bool {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() == "accessibility_modifier" {
			text := child.Content(src)
			return text != "private" && text != "protected"
		}
	}
	return true
}
