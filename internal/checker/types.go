// Package checker is the type-information boundary of the analysis core: a
// structural checker over tree-sitter parse trees of TypeScript sources. It
// answers what the framework layer needs (exported classes, class members,
// declared annotation types, call signatures, non-nullable stripping) and
// nothing more. It is deliberately not a general type checker: precision
// stops at declared annotations.
package checker

import "strings"

// Kind classifies a Type. The first eight values are the built-in kinds the
// symbol layer exposes; the rest are structural.
type Kind int

const (
	Any Kind = iota
	Boolean
	Null
	Number
	String
	Undefined
	Unbound
	Other
	ClassKind
	Array
	Union
	Generic
)

var kindNames = map[Kind]string{
	Any:       "any",
	Boolean:   "boolean",
	Null:      "null",
	Number:    "number",
	String:    "string",
	Undefined: "undefined",
	Unbound:   "unbound",
	Other:     "other",
	ClassKind: "class",
	Array:     "array",
	Union:     "union",
	Generic:   "generic",
}

func (k Kind) String() string { return kindNames[k] }

// Type is a structural description of a declared type. Types are plain
// values; the checker never mutates one after returning it.
type Type struct {
	Kind Kind
	Name string  // class name or generic head name; empty for primitives
	File string  // declaring file for Class/Generic types resolved in the workspace
	Elem *Type   // element type for Array
	Arms []*Type // members for Union
	Args []*Type // type arguments for Generic
}

// String renders the type roughly as it was written.
func (t *Type) String() string {
	if t == nil {
		return "any"
	}
	switch t.Kind {
	case ClassKind:
		return t.Name
	case Array:
		return t.Elem.String() + "[]"
	case Union:
		parts := make([]string, len(t.Arms))
		for i, a := range t.Arms {
			parts[i] = a.String()
		}
		return strings.Join(parts, " | ")
	case Generic:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.String()
		}
		return t.Name + "<" + strings.Join(parts, ", ") + ">"
	default:
		if t.Name != "" {
			return t.Name
		}
		return t.Kind.String()
	}
}

// Primitive returns the canonical Type for a built-in kind.
func Primitive(k Kind) *Type { return primitives[k] }

var primitives = map[Kind]*Type{
	Any:       {Kind: Any},
	Boolean:   {Kind: Boolean},
	Null:      {Kind: Null},
	Number:    {Kind: Number},
	String:    {Kind: String},
	Undefined: {Kind: Undefined},
	Unbound:   {Kind: Unbound},
	Other:     {Kind: Other},
}

// NewUnion builds a union from arms, flattening nested unions. A union of
// one arm collapses to that arm; an empty union is any.
func NewUnion(arms ...*Type) *Type {
	var flat []*Type
	for _, a := range arms {
		if a == nil {
			continue
		}
		if a.Kind == Union {
			flat = append(flat, a.Arms...)
		} else {
			flat = append(flat, a)
		}
	}
	switch len(flat) {
	case 0:
		return Primitive(Any)
	case 1:
		return flat[0]
	}
	return &Type{Kind: Union, Arms: flat}
}

// NonNullable strips null and undefined arms from a union. Non-union types
// pass through unchanged.
func NonNullable(t *Type) *Type {
	if t == nil || t.Kind != Union {
		return t
	}
	var kept []*Type
	for _, a := range t.Arms {
		if a.Kind == Null || a.Kind == Undefined {
			continue
		}
		kept = append(kept, a)
	}
	return NewUnion(kept...)
}

// ElementType returns the element type of an array-shaped type: T for T[],
// Array<T>, and ReadonlyArray<T>. Returns nil for anything else.
func ElementType(t *Type) *Type {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case Array:
		return t.Elem
	case Generic:
		if (t.Name == "Array" || t.Name == "ReadonlyArray") && len(t.Args) == 1 {
			return t.Args[0]
		}
	}
	return nil
}
