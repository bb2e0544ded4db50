package symbols

import (
	"github.com/jward/trellis/internal/checker"
	"github.com/jward/trellis/internal/resolver"
)

// asyncContainers are the wrapper types whose element the async pipe
// unwraps.
var asyncContainers = map[string]bool{
	"Observable":      true,
	"Promise":         true,
	"EventEmitter":    true,
	"Subject":         true,
	"BehaviorSubject": true,
}

// pipeSymbol wraps resolved pipe metadata. Its signatures come from the
// pipe class's transform method; for two well-known pipes the call result
// is rewritten from the argument instead of taken from the declaration,
// the only library-specific typing behavior in the module:
//
//   - async: unwraps the argument's element type (Observable<T> → T)
//   - slice: preserves the argument's own type
type pipeSymbol struct {
	chk  *checker.Checker
	meta *resolver.Metadata

	transform     Symbol // memoized transform member wrapper
	transformDone bool
}

// PipeSymbol wraps pipe metadata as a callable Symbol.
func PipeSymbol(chk *checker.Checker, meta *resolver.Metadata) Symbol {
	return &pipeSymbol{chk: chk, meta: meta}
}

func (s *pipeSymbol) checkerType() *checker.Type {
	if sig := firstSignature(s.Signatures()); sig != nil {
		return checkerTypeOf(sig.Result)
	}
	return checker.Primitive(checker.Any)
}

func (s *pipeSymbol) Name() string      { return s.meta.PipeName }
func (s *pipeSymbol) Kind() SymbolKind  { return KindPipe }
func (s *pipeSymbol) Public() bool      { return true }
func (s *pipeSymbol) Callable() bool    { return true }
func (s *pipeSymbol) Container() Symbol { return nil }

func (s *pipeSymbol) Type() Symbol {
	if sig := firstSignature(s.Signatures()); sig != nil {
		return sig.Result
	}
	return TypeSymbol(s.chk, nil)
}

func (s *pipeSymbol) Members() SymbolTable { return NewTable() }

// transformMember locates the pipe class's transform method on first use.
func (s *pipeSymbol) transformMember() Symbol {
	if !s.transformDone {
		s.transformDone = true
		cls, ok := s.chk.ClassNamed(s.meta.Type.FilePath, s.meta.Type.Name)
		if !ok {
			return nil
		}
		m, ok := s.chk.MemberNamed(cls, "transform")
		if !ok || m.Kind != checker.Method {
			return nil
		}
		s.transform = MemberSymbol(s.chk, m, nil)
	}
	return s.transform
}

func (s *pipeSymbol) Signatures() []*Signature {
	if t := s.transformMember(); t != nil {
		return t.Signatures()
	}
	// A pipe without a readable transform still answers calls: any → any.
	return []*Signature{{
		Arguments: NewTable(),
		Result:    TypeSymbol(s.chk, nil),
	}}
}

func (s *pipeSymbol) SelectSignature(args []Symbol) *Signature {
	sig := firstSignature(s.Signatures())
	if sig == nil || len(args) == 0 {
		return sig
	}
	switch s.meta.PipeName {
	case "async":
		if elem := asyncElement(checkerTypeOf(args[0])); elem != nil {
			return &Signature{Arguments: sig.Arguments, Result: TypeSymbol(s.chk, elem)}
		}
	case "slice":
		return &Signature{Arguments: sig.Arguments, Result: args[0].Type()}
	}
	return sig
}

func (s *pipeSymbol) Indexed(arg Symbol) Symbol { return nil }

// asyncElement returns T for Observable<T>, Promise<T>, and the other
// asynchronous wrapper types; nil for anything else.
func asyncElement(t *checker.Type) *checker.Type {
	if t == nil || t.Kind != checker.Generic || len(t.Args) == 0 {
		return nil
	}
	if !asyncContainers[t.Name] {
		return nil
	}
	return t.Args[0]
}

// PipeTable builds the name → pipe symbol table for a set of resolved pipe
// metadata records.
func PipeTable(chk *checker.Checker, pipes []*resolver.Metadata) SymbolTable {
	var syms []Symbol
	for _, meta := range pipes {
		if meta.PipeName == "" {
			continue
		}
		syms = append(syms, PipeSymbol(chk, meta))
	}
	return NewTable(syms...)
}
