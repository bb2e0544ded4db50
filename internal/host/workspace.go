package host

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	sitter "github.com/smacker/go-tree-sitter"
	typescript "github.com/smacker/go-tree-sitter/typescript/typescript"
)

// parsedExtensions are the file extensions the workspace parses with
// tree-sitter. Everything else (external template files, stylesheets) is
// tracked text-only.
var parsedExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
}

// trackedExtensions are additionally tracked as text so external templates
// referenced by templateUrl resolve against live content.
var trackedExtensions = map[string]bool{
	".html": true,
	".htm":  true,
}

type wsFile struct {
	text    []byte
	version uint64
	parse   *Parse // nil until requested; invalid once version moves on
}

// Workspace is a Host over an in-memory overlay, optionally seeded from a
// directory. SetText and Remove model edits; version stamps are content
// hashes, so writing identical content does not advance a file's stamp.
//
// Workspace is single-threaded, like every consumer of it in this module.
type Workspace struct {
	parser *sitter.Parser
	files  map[string]*wsFile
}

// NewWorkspace returns an empty workspace.
func NewWorkspace() *Workspace {
	p := sitter.NewParser()
	p.SetLanguage(typescript.GetLanguage())
	return &Workspace{
		parser: p,
		files:  make(map[string]*wsFile),
	}
}

// Tracked reports whether path has an extension the workspace accepts.
func Tracked(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return parsedExtensions[ext] || trackedExtensions[ext]
}

// SetText adds or updates a file. Unchanged content leaves the version
// stamp alone.
func (w *Workspace) SetText(path, text string) {
	content := []byte(text)
	version := xxhash.Sum64(content)
	if f, ok := w.files[path]; ok {
		if f.version == version {
			return
		}
		f.closeParse()
		f.text = content
		f.version = version
		return
	}
	w.files[path] = &wsFile{text: content, version: version}
}

// Remove drops a file from the workspace.
func (w *Workspace) Remove(path string) {
	if f, ok := w.files[path]; ok {
		f.closeParse()
		delete(w.files, path)
	}
}

// LoadFile reads path from disk into the workspace.
func (w *Workspace) LoadFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	w.SetText(path, string(content))
	return nil
}

// FileNames implements Host.
func (w *Workspace) FileNames() []string {
	names := make([]string, 0, len(w.files))
	for name := range w.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Version implements Host.
func (w *Workspace) Version(path string) (uint64, bool) {
	f, ok := w.files[path]
	if !ok {
		return 0, false
	}
	return f.version, true
}

// Text implements Host.
func (w *Workspace) Text(path string) (string, bool) {
	f, ok := w.files[path]
	if !ok {
		return "", false
	}
	return string(f.text), true
}

// Tree implements Host. Trees are parsed on first request and reused until
// the file's version stamp moves.
func (w *Workspace) Tree(path string) (*Parse, bool) {
	f, ok := w.files[path]
	if !ok || !parsedExtensions[strings.ToLower(filepath.Ext(path))] {
		return nil, false
	}
	if f.parse != nil && f.parse.Version == f.version {
		return f.parse, true
	}
	tree, err := w.parser.ParseCtx(context.Background(), nil, f.text)
	if err != nil {
		return nil, false
	}
	f.closeParse()
	f.parse = &Parse{Path: path, Version: f.version, Src: f.text, Tree: tree}
	return f.parse, true
}

func (f *wsFile) closeParse() {
	if f.parse != nil {
		f.parse.Tree.Close()
		f.parse = nil
	}
}
