package diag

import (
	"testing"

	"github.com/jward/trellis/internal/span"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSink_RecordAndForFile(t *testing.T) {
	s := NewSink()
	s.Record("/src/a.ts", span.Span{Start: 1, End: 4}, "first")
	s.Record("/src/a.ts", span.Span{Start: 8, End: 9}, "second")
	s.Record("/src/b.ts", span.Span{}, "other file")

	got := s.ForFile("/src/a.ts")
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Message)
	assert.Equal(t, "/src/a.ts", got[0].Path)
	assert.Equal(t, span.Span{Start: 1, End: 4}, got[0].Span)
	assert.Equal(t, "second", got[1].Message)

	assert.Equal(t, 3, s.Count())
	assert.Equal(t, 2, s.CountForFile("/src/a.ts"))
	assert.Equal(t, 1, s.CountForFile("/src/b.ts"))
	assert.Empty(t, s.ForFile("/src/missing.ts"))
}

func TestSink_ForFileReturnsCopy(t *testing.T) {
	s := NewSink()
	s.Record("/src/a.ts", span.Span{}, "original")

	got := s.ForFile("/src/a.ts")
	got[0].Message = "mutated"

	again := s.ForFile("/src/a.ts")
	assert.Equal(t, "original", again[0].Message)
}

func TestSink_DropFile(t *testing.T) {
	s := NewSink()
	s.Record("/src/a.ts", span.Span{}, "a")
	s.Record("/src/b.ts", span.Span{}, "b")

	s.DropFile("/src/a.ts")
	assert.Equal(t, 1, s.Count())
	assert.Empty(t, s.ForFile("/src/a.ts"))
	assert.Len(t, s.ForFile("/src/b.ts"), 1)
}

func TestSink_Clear(t *testing.T) {
	s := NewSink()
	s.Record("/src/a.ts", span.Span{}, "a")
	s.Record("/src/b.ts", span.Span{}, "b")

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.ForFile("/src/a.ts"))
}
