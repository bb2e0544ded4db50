// Package span converts between linear byte offsets, line/column positions,
// and lexical node ranges. All functions are pure; nothing here caches.
//
// Lines and columns are zero-based, matching tree-sitter points. Spans are
// half-open byte ranges: Start is inclusive, End exclusive.
package span

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Span is a half-open byte range within a single file.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Length returns the number of bytes the span covers.
func (s Span) Length() int { return s.End - s.Start }

// Contains reports whether offset falls inside the span.
func (s Span) Contains(offset int) bool { return offset >= s.Start && offset < s.End }

// Position is a zero-based line/column pair.
type Position struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// Of returns the byte span covered by a tree-sitter node.
func Of(node *sitter.Node) Span {
	return Span{Start: int(node.StartByte()), End: int(node.EndByte())}
}

// OffsetFor converts a zero-based line/column position in text to a byte
// offset. Returns false when the position lies outside the text.
func OffsetFor(text string, line, col int) (int, bool) {
	if line < 0 || col < 0 {
		return 0, false
	}
	offset := 0
	for l := 0; l < line; l++ {
		next := strings.IndexByte(text[offset:], '\n')
		if next < 0 {
			return 0, false
		}
		offset += next + 1
	}
	lineEnd := strings.IndexByte(text[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(text) - offset
	}
	if col > lineEnd {
		return 0, false
	}
	return offset + col, true
}

// PositionFor converts a byte offset in text to a zero-based line/column
// position. Offsets past the end of text clamp to the final position.
func PositionFor(text string, offset int) Position {
	if offset > len(text) {
		offset = len(text)
	}
	line, col := 0, 0
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return Position{Line: line, Col: col}
}

// NarrowestAt descends from root to the smallest named node whose range
// contains offset. Anonymous token nodes (punctuation, keywords) are skipped
// during descent so the result is always a named node. Returns nil when the
// offset is outside root entirely.
func NarrowestAt(root *sitter.Node, offset int) *sitter.Node {
	if root == nil || !Of(root).Contains(offset) {
		return nil
	}
	node := root
	for {
		var next *sitter.Node
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if Of(child).Contains(offset) {
				next = child
				break
			}
		}
		if next == nil {
			return node
		}
		node = next
	}
}
