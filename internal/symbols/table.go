package symbols

// table is the one SymbolTable implementation: a name index plus insertion
// order. Tables handed to consumers are never mutated afterwards; merging
// builds a new table.
type table struct {
	names  []string
	byName map[string]Symbol
}

// NewTable builds a SymbolTable from syms. A later symbol with the same
// name replaces an earlier one without disturbing its position.
func NewTable(syms ...Symbol) SymbolTable {
	t := &table{byName: make(map[string]Symbol, len(syms))}
	for _, s := range syms {
		t.put(s)
	}
	return t
}

// Merge combines tables into one; entries from later tables win.
func Merge(tables ...SymbolTable) SymbolTable {
	merged := &table{byName: make(map[string]Symbol)}
	for _, src := range tables {
		if src == nil {
			continue
		}
		for _, s := range src.Values() {
			merged.put(s)
		}
	}
	return merged
}

func (t *table) put(s Symbol) {
	if s == nil {
		return
	}
	if _, exists := t.byName[s.Name()]; !exists {
		t.names = append(t.names, s.Name())
	}
	t.byName[s.Name()] = s
}

func (t *table) Size() int { return len(t.names) }

func (t *table) Get(name string) (Symbol, bool) {
	s, ok := t.byName[name]
	return s, ok
}

func (t *table) Has(name string) bool {
	_, ok := t.byName[name]
	return ok
}

func (t *table) Values() []Symbol {
	out := make([]Symbol, len(t.names))
	for i, name := range t.names {
		out[i] = t.byName[name]
	}
	return out
}
