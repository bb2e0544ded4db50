package checker

import (
	"path/filepath"

	sitter "github.com/smacker/go-tree-sitter"
)

// Ref names an exported declaration in a specific workspace file.
type Ref struct {
	File string
	Name string
}

// ResolveImportedName resolves a local name used in fromFile through that
// file's import statements to the file and exported name declaring it,
// following named and star re-export chains in between.
func (c *Checker) ResolveImportedName(fromFile, name string) (Ref, bool) {
	parse, ok := c.host.Tree(fromFile)
	if !ok {
		return Ref{}, false
	}
	root := parse.Root()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Type() != "import_statement" {
			continue
		}
		exported, ok := importedAs(stmt, parse.Src, name)
		if !ok {
			continue
		}
		target, ok := c.ResolveModule(fromFile, importSource(stmt, parse.Src))
		if !ok {
			return Ref{}, false
		}
		return c.resolveExported(target, exported, map[string]bool{fromFile: true})
	}
	return Ref{}, false
}

// resolveExported finds where `name`, exported from file, is declared.
func (c *Checker) resolveExported(file, name string, seen map[string]bool) (Ref, bool) {
	if seen[file] {
		return Ref{}, false
	}
	seen[file] = true

	if _, ok := c.ClassNamed(file, name); ok {
		return Ref{File: file, Name: name}, true
	}

	parse, ok := c.host.Tree(file)
	if !ok {
		return Ref{}, false
	}
	root := parse.Root()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		stmt := root.NamedChild(i)
		if stmt.Type() != "export_statement" {
			continue
		}
		source := stmt.ChildByFieldName("source")
		if source == nil {
			continue
		}
		target, ok := c.ResolveModule(file, StringContent(source, parse.Src))
		if !ok {
			continue
		}
		inner, star := reexportedAs(stmt, parse.Src, name)
		if star {
			if ref, ok := c.resolveExported(target, name, seen); ok {
				return ref, true
			}
			continue
		}
		if inner != "" {
			return c.resolveExported(target, inner, seen)
		}
	}
	return Ref{}, false
}

// ResolveModule resolves an import specifier against the importing file's
// directory, or against the module-resolution base URL for non-relative
// specifiers. Tries <path>.ts, <path>.tsx, then <path>/index.ts.
func (c *Checker) ResolveModule(fromFile, spec string) (string, bool) {
	if spec == "" {
		return "", false
	}
	var base string
	if spec[0] == '.' {
		base = filepath.Join(filepath.Dir(fromFile), spec)
	} else if c.baseURL != "" {
		base = filepath.Join(c.baseURL, spec)
	} else {
		return "", false
	}
	for _, cand := range []string{base + ".ts", base + ".tsx", filepath.Join(base, "index.ts")} {
		if _, ok := c.host.Version(cand); ok {
			return cand, true
		}
	}
	return "", false
}

// importedAs scans an import statement for a specifier binding localName,
// returning the name it was exported under.
func importedAs(stmt *sitter.Node, src []byte, localName string) (string, bool) {
	var found string
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if found != "" {
			return
		}
		if node.Type() == "import_specifier" {
			name := node.ChildByFieldName("name")
			alias := node.ChildByFieldName("alias")
			local := name
			if alias != nil {
				local = alias
			}
			if local != nil && local.Content(src) == localName && name != nil {
				found = name.Content(src)
			}
			return
		}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			walk(node.NamedChild(i))
		}
	}
	walk(stmt)
	return found, found != ""
}

// reexportedAs inspects an `export ... from` statement. For a named
// re-export of exportedName it returns the inner name in the source module;
// for `export * from` it reports star=true.
func reexportedAs(stmt *sitter.Node, src []byte, exportedName string) (inner string, star bool) {
	hasClause := false
	var walk func(node *sitter.Node)
	walk = func(node *sitter.Node) {
		if node.Type() == "export_specifier" {
			hasClause = true
			name := node.ChildByFieldName("name")
			alias := node.ChildByFieldName("alias")
			outer := name
			if alias != nil {
				outer = alias
			}
			if outer != nil && outer.Content(src) == exportedName && name != nil {
				inner = name.Content(src)
			}
			return
		}
		if node.Type() == "export_clause" {
			hasClause = true
		}
		for i := 0; i < int(node.NamedChildCount()); i++ {
			walk(node.NamedChild(i))
		}
	}
	walk(stmt)
	if !hasClause {
		return "", true
	}
	return inner, false
}

// importSource returns the module specifier string of an import statement.
func importSource(stmt *sitter.Node, src []byte) string {
	source := stmt.ChildByFieldName("source")
	if source == nil {
		return ""
	}
	return StringContent(source, src)
}

// StringContent returns the text of a string literal node without its
// enclosing quotes.
func StringContent(node *sitter.Node, src []byte) string {
	text := node.Content(src)
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return text
}
