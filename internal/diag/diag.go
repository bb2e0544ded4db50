// Package diag accumulates analysis diagnostics keyed by file path.
//
// Resolution failures are data, not control flow: analysis code records them
// into a Sink and keeps going with partial results. The Sink is passed
// explicitly through analysis calls so there is no hidden global error state.
package diag

import "github.com/jward/trellis/internal/span"

// Diagnostic is one recorded resolution failure.
type Diagnostic struct {
	Path    string    `json:"path"`
	Span    span.Span `json:"span"`
	Message string    `json:"message"`
}

// Sink collects diagnostics per file. The zero value is not usable; call
// NewSink. Single-threaded by design, like the rest of the analysis core.
type Sink struct {
	byFile map[string][]Diagnostic
	total  int
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{byFile: make(map[string][]Diagnostic)}
}

// Record appends a diagnostic for path with a best-effort span.
func (s *Sink) Record(path string, sp span.Span, message string) {
	s.byFile[path] = append(s.byFile[path], Diagnostic{Path: path, Span: sp, Message: message})
	s.total++
}

// ForFile returns the diagnostics recorded against path, in record order.
// The returned slice is a copy; callers may hold it across later records.
func (s *Sink) ForFile(path string) []Diagnostic {
	ds := s.byFile[path]
	if len(ds) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(ds))
	copy(out, ds)
	return out
}

// Count returns the total number of recorded diagnostics. Used to attribute
// a contiguous run of records to one declaration: capture Count before a
// resolution call and slice ForFile afterwards.
func (s *Sink) Count() int { return s.total }

// CountForFile returns how many diagnostics are recorded against path.
func (s *Sink) CountForFile(path string) int { return len(s.byFile[path]) }

// DropFile discards all diagnostics recorded against path.
func (s *Sink) DropFile(path string) {
	s.total -= len(s.byFile[path])
	delete(s.byFile, path)
}

// Clear discards everything.
func (s *Sink) Clear() {
	s.byFile = make(map[string][]Diagnostic)
	s.total = 0
}
