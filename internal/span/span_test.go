package span_test

import (
	"testing"

	"github.com/jward/trellis/internal/host"
	"github.com/jward/trellis/internal/span"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpan_ContainsAndLength(t *testing.T) {
	s := span.Span{Start: 3, End: 7}
	assert.Equal(t, 4, s.Length())
	assert.False(t, s.Contains(2))
	assert.True(t, s.Contains(3))
	assert.True(t, s.Contains(6))
	assert.False(t, s.Contains(7)) // end is exclusive
}

func TestOffsetFor(t *testing.T) {
	text := "abc\ndef\n"

	off, ok := span.OffsetFor(text, 0, 0)
	require.True(t, ok)
	assert.Equal(t, 0, off)

	off, ok = span.OffsetFor(text, 1, 2)
	require.True(t, ok)
	assert.Equal(t, 6, off)
	assert.Equal(t, byte('f'), text[off])

	// Column at end of line is valid (cursor after last character).
	off, ok = span.OffsetFor(text, 0, 3)
	require.True(t, ok)
	assert.Equal(t, 3, off)
}

func TestOffsetFor_OutOfRange(t *testing.T) {
	text := "abc\ndef"

	_, ok := span.OffsetFor(text, 5, 0)
	assert.False(t, ok)

	_, ok = span.OffsetFor(text, 0, 10)
	assert.False(t, ok)

	_, ok = span.OffsetFor(text, -1, 0)
	assert.False(t, ok)
}

func TestPositionFor(t *testing.T) {
	text := "abc\ndef\n"

	assert.Equal(t, span.Position{Line: 0, Col: 0}, span.PositionFor(text, 0))
	assert.Equal(t, span.Position{Line: 0, Col: 3}, span.PositionFor(text, 3))
	assert.Equal(t, span.Position{Line: 1, Col: 0}, span.PositionFor(text, 4))
	assert.Equal(t, span.Position{Line: 1, Col: 2}, span.PositionFor(text, 6))
}

func TestPositionFor_ClampsPastEnd(t *testing.T) {
	text := "ab"
	assert.Equal(t, span.Position{Line: 0, Col: 2}, span.PositionFor(text, 100))
}

func TestOffsetFor_PositionFor_RoundTrip(t *testing.T) {
	text := "class A {\n  title: string;\n}\n"
	for offset := 0; offset < len(text); offset++ {
		pos := span.PositionFor(text, offset)
		back, ok := span.OffsetFor(text, pos.Line, pos.Col)
		require.True(t, ok, "offset %d", offset)
		assert.Equal(t, offset, back)
	}
}

func TestNarrowestAt(t *testing.T) {
	ws := host.NewWorkspace()
	src := "class Widget { title: string; }\n"
	ws.SetText("/src/widget.ts", src)
	parse, ok := ws.Tree("/src/widget.ts")
	require.True(t, ok)

	// Offset inside the identifier "title".
	offset := 16
	node := span.NarrowestAt(parse.Root(), offset)
	require.NotNil(t, node)
	assert.Equal(t, "property_identifier", node.Type())
	assert.Equal(t, "title", src[node.StartByte():node.EndByte()])
	assert.True(t, span.Of(node).Contains(offset))
}

func TestNarrowestAt_OutsideRoot(t *testing.T) {
	ws := host.NewWorkspace()
	ws.SetText("/src/a.ts", "let x = 1;\n")
	parse, ok := ws.Tree("/src/a.ts")
	require.True(t, ok)

	assert.Nil(t, span.NarrowestAt(parse.Root(), 500))
	assert.Nil(t, span.NarrowestAt(nil, 0))
}
