// Package host supplies source text, per-file version stamps, and parse
// trees to the analysis core. The Host interface is the boundary to the
// surrounding program's file storage; Workspace is the reference
// implementation over a directory plus an in-memory overlay.
package host

import (
	"encoding/binary"
	"sort"

	"github.com/cespare/xxhash/v2"
	sitter "github.com/smacker/go-tree-sitter"
)

// Host is what the analysis core consumes. Version stamps change whenever a
// file's content changes; the core compares stamps, it never interprets them.
type Host interface {
	// FileNames lists every known source file path, sorted.
	FileNames() []string
	// Version returns the current version stamp for path.
	Version(path string) (uint64, bool)
	// Text returns the current content of path.
	Text(path string) (string, bool)
	// Tree returns the parse tree for path, or false for files that are not
	// parsed (external template files, unknown extensions).
	Tree(path string) (*Parse, bool)
}

// Parse bundles a parse tree with the exact source bytes it was built from.
type Parse struct {
	Path    string
	Version uint64
	Src     []byte
	Tree    *sitter.Tree
}

// Root returns the tree's root node.
func (p *Parse) Root() *sitter.Node { return p.Tree.RootNode() }

// ProgramStamp condenses a host's current (path, version) pairs into one
// identity value. Two equal stamps mean no known file was added, removed, or
// edited in between.
func ProgramStamp(h Host) uint64 {
	names := h.FileNames()
	sort.Strings(names)
	d := xxhash.New()
	var buf [8]byte
	for _, name := range names {
		v, ok := h.Version(name)
		if !ok {
			continue
		}
		_, _ = d.WriteString(name)
		_, _ = d.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
