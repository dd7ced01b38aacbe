// Package span stores a buffer's highlight ranges.
//
// Offsets are character (rune) offsets into the buffer, end exclusive.
// Spans may overlap; how overlaps render is decided by the render surface.
package span

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidRange is reported for spans with start >= end or a negative start.
var ErrInvalidRange = errors.New("invalid span range")

// Span is a styled character range.
type Span struct {
	Start int
	End   int
	Face  string
}

// Valid reports whether the span covers at least one character.
func (s Span) Valid() bool {
	return s.Start >= 0 && s.Start < s.End
}

// Overlaps reports whether s intersects [start, end).
func (s Span) Overlaps(start, end int) bool {
	return s.Start < end && s.End > start
}

// Contains reports whether pos lies inside s.
func (s Span) Contains(pos int) bool {
	return pos >= s.Start && pos < s.End
}

// Len returns the number of covered characters.
func (s Span) Len() int {
	return max(0, s.End-s.Start)
}

// Store is an insertion-ordered span collection owned by one buffer.
type Store struct {
	spans []Span
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a span. Invalid ranges are not stored.
func (s *Store) Add(start, end int, face string) error {
	sp := Span{Start: start, End: end, Face: face}
	if !sp.Valid() {
		return fmt.Errorf("%w: [%d, %d)", ErrInvalidRange, start, end)
	}
	s.spans = append(s.spans, sp)
	return nil
}

// AddBatch appends every valid entry and skips the rest. It returns the
// number of spans added.
func (s *Store) AddBatch(batch []Span) int {
	added := 0
	for _, sp := range batch {
		if !sp.Valid() {
			continue
		}
		s.spans = append(s.spans, sp)
		added++
	}
	return added
}

// Clear removes every span.
func (s *Store) Clear() {
	s.spans = s.spans[:0]
}

// ClearRange removes every span intersecting [start, end).
func (s *Store) ClearRange(start, end int) {
	if start >= end {
		return
	}
	kept := s.spans[:0]
	for _, sp := range s.spans {
		if !sp.Overlaps(start, end) {
			kept = append(kept, sp)
		}
	}
	s.spans = kept
}

// HasSpans reports whether the store holds any span.
func (s *Store) HasSpans() bool {
	return len(s.spans) > 0
}

// Len returns the number of spans.
func (s *Store) Len() int {
	return len(s.spans)
}

// All returns a copy of the spans in insertion order.
func (s *Store) All() []Span {
	out := make([]Span, len(s.spans))
	copy(out, s.spans)
	return out
}

// InRange returns the spans intersecting [start, end), ordered by start and
// then by insertion.
func (s *Store) InRange(start, end int) []Span {
	out := make([]Span, 0, 16)
	for _, sp := range s.spans {
		if sp.Overlaps(start, end) {
			out = append(out, sp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// FaceAt returns the face of the last inserted span containing pos, or of
// the first one when firstWins is set.
func (s *Store) FaceAt(pos int, firstWins bool) (string, bool) {
	if firstWins {
		for _, sp := range s.spans {
			if sp.Contains(pos) {
				return sp.Face, true
			}
		}
		return "", false
	}
	for i := len(s.spans) - 1; i >= 0; i-- {
		if s.spans[i].Contains(pos) {
			return s.spans[i].Face, true
		}
	}
	return "", false
}

// AdjustForInsert shifts spans after an insertion of n characters at pos.
// Spans starting at or after pos move right; spans containing pos grow.
func (s *Store) AdjustForInsert(pos, n int) {
	if n <= 0 {
		return
	}
	for i := range s.spans {
		sp := &s.spans[i]
		switch {
		case sp.Start >= pos:
			sp.Start += n
			sp.End += n
		case sp.End > pos:
			sp.End += n
		}
	}
}

// AdjustForDelete shifts, shrinks or drops spans after [start, end) was
// deleted.
func (s *Store) AdjustForDelete(start, end int) {
	if start >= end {
		return
	}
	n := end - start
	kept := s.spans[:0]
	for _, sp := range s.spans {
		switch {
		case sp.End <= start:
		case sp.Start >= end:
			sp.Start -= n
			sp.End -= n
		case sp.Start >= start && sp.End <= end:
			continue
		case sp.Start < start && sp.End > end:
			sp.End -= n
		case sp.Start < start:
			sp.End = start
		default:
			sp.End -= n
			sp.Start = start
		}
		if sp.Valid() {
			kept = append(kept, sp)
		}
	}
	s.spans = kept
}
