package symbols

import (
	"github.com/jward/trellis/internal/checker"
)

// typed is how wrappers inside this package recover the structural type
// underneath a Symbol. It stays unexported: external consumers work with
// capabilities only.
type typed interface {
	checkerType() *checker.Type
}

// checkerTypeOf extracts the structural type under sym, falling back to any
// for symbols without one.
func checkerTypeOf(sym Symbol) *checker.Type {
	if t, ok := sym.(typed); ok {
		return t.checkerType()
	}
	return checker.Primitive(checker.Any)
}

// typeSymbol wraps a checker type.
type typeSymbol struct {
	chk       *checker.Checker
	t         *checker.Type
	container Symbol

	members SymbolTable // computed on first Members call
}

// TypeSymbol wraps a structural type as a Symbol. Construction is free;
// member lookup happens on first access.
func TypeSymbol(chk *checker.Checker, t *checker.Type) Symbol {
	if t == nil {
		t = checker.Primitive(checker.Any)
	}
	return &typeSymbol{chk: chk, t: t}
}

func (s *typeSymbol) checkerType() *checker.Type { return s.t }

func (s *typeSymbol) Name() string {
	if s.t.Name != "" {
		return s.t.Name
	}
	return s.t.Kind.String()
}

func (s *typeSymbol) Kind() SymbolKind  { return KindType }
func (s *typeSymbol) Public() bool      { return true }
func (s *typeSymbol) Callable() bool    { return false }
func (s *typeSymbol) Type() Symbol      { return s }
func (s *typeSymbol) Container() Symbol { return s.container }

func (s *typeSymbol) Members() SymbolTable {
	if s.members == nil {
		s.members = s.computeMembers()
	}
	return s.members
}

func (s *typeSymbol) computeMembers() SymbolTable {
	cls, ok := s.chk.ClassOfType(s.t)
	if !ok {
		return NewTable()
	}
	var syms []Symbol
	for _, m := range s.chk.Members(cls) {
		syms = append(syms, &memberSymbol{chk: s.chk, m: m, container: s})
	}
	return NewTable(syms...)
}

func (s *typeSymbol) Signatures() []*Signature               { return nil }
func (s *typeSymbol) SelectSignature(args []Symbol) *Signature { return nil }

func (s *typeSymbol) Indexed(arg Symbol) Symbol {
	elem := checker.ElementType(s.t)
	if elem == nil {
		return nil
	}
	return TypeSymbol(s.chk, elem)
}

// memberSymbol wraps one checker class member.
type memberSymbol struct {
	chk       *checker.Checker
	m         *checker.Member
	container Symbol

	typ  Symbol       // memoized Type
	sigs []*Signature // memoized Signatures
}

// MemberSymbol wraps a class member declaration as a Symbol.
func MemberSymbol(chk *checker.Checker, m *checker.Member, container Symbol) Symbol {
	return &memberSymbol{chk: chk, m: m, container: container}
}

func (s *memberSymbol) checkerType() *checker.Type {
	if s.m.Kind == checker.Method {
		return s.m.Result
	}
	return s.m.Type
}

func (s *memberSymbol) Name() string { return s.m.Name }

func (s *memberSymbol) Kind() SymbolKind {
	if s.m.Kind == checker.Method {
		return KindMethod
	}
	return KindProperty
}

func (s *memberSymbol) Public() bool      { return s.m.Public }
func (s *memberSymbol) Callable() bool    { return s.m.Kind == checker.Method }
func (s *memberSymbol) Container() Symbol { return s.container }

func (s *memberSymbol) Type() Symbol {
	if s.typ == nil {
		s.typ = TypeSymbol(s.chk, s.checkerType())
	}
	return s.typ
}

func (s *memberSymbol) Members() SymbolTable { return s.Type().Members() }

func (s *memberSymbol) Signatures() []*Signature {
	if s.m.Kind != checker.Method {
		return nil
	}
	if s.sigs == nil {
		var args []Symbol
		for _, p := range s.m.Params {
			args = append(args, Variable(p.Name, TypeSymbol(s.chk, p.Type)))
		}
		s.sigs = []*Signature{{
			Arguments: NewTable(args...),
			Result:    TypeSymbol(s.chk, s.m.Result),
		}}
	}
	return s.sigs
}

func (s *memberSymbol) SelectSignature(args []Symbol) *Signature {
	return firstSignature(s.Signatures())
}

func (s *memberSymbol) Indexed(arg Symbol) Symbol { return s.Type().Indexed(arg) }

// variableSymbol is a framework-declared symbol: a template variable or a
// synthesized context member. It carries its type directly instead of
// consulting the checker.
type variableSymbol struct {
	name string
	typ  Symbol
}

// Variable declares a framework symbol with an explicit type.
func Variable(name string, typ Symbol) Symbol {
	return &variableSymbol{name: name, typ: typ}
}

func (s *variableSymbol) checkerType() *checker.Type { return checkerTypeOf(s.typ) }

func (s *variableSymbol) Name() string       { return s.name }
func (s *variableSymbol) Kind() SymbolKind   { return KindProperty }
func (s *variableSymbol) Public() bool       { return true }
func (s *variableSymbol) Callable() bool     { return false }
func (s *variableSymbol) Type() Symbol       { return s.typ }
func (s *variableSymbol) Container() Symbol  { return nil }
func (s *variableSymbol) Members() SymbolTable { return s.typ.Members() }

func (s *variableSymbol) Signatures() []*Signature               { return nil }
func (s *variableSymbol) SelectSignature(args []Symbol) *Signature { return nil }
func (s *variableSymbol) Indexed(arg Symbol) Symbol              { return s.typ.Indexed(arg) }

// firstSignature is the documented overload tie-break: the first signature
// wins.
func firstSignature(sigs []*Signature) *Signature {
	if len(sigs) == 0 {
		return nil
	}
	return sigs[0]
}
