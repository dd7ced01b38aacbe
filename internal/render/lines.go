// Package render turns a buffer's spans into styled terminal lines for the
// visible range of a view.
package render

import (
	"slices"
	"strings"

	"facet/internal/span"
)

// Segment is a run of characters of one line sharing the same faces. Start
// and End are offsets within the line.
type Segment struct {
	Start int
	End   int
	Text  string
	Faces []string
}

// Line is one visible buffer line split into segments.
type Line struct {
	// Number is the 0-based line index.
	Number int
	// Offset is the character offset of the line start in the buffer.
	Offset   int
	Text     string
	Segments []Segment
}

// Lines returns count lines starting at the 0-based line first. spans must
// be in insertion order, as span.Store.All returns them.
func Lines(text string, spans []span.Span, first, count int, policy Policy) []Line {
	if count <= 0 || first < 0 {
		return nil
	}
	all := strings.Split(text, "\n")
	if first >= len(all) {
		return nil
	}
	last := min(len(all), first+count)

	offset := 0
	for i := 0; i < first; i++ {
		offset += len([]rune(all[i])) + 1
	}

	out := make([]Line, 0, last-first)
	for i := first; i < last; i++ {
		runes := []rune(all[i])
		out = append(out, Line{
			Number:   i,
			Offset:   offset,
			Text:     all[i],
			Segments: segments(runes, offset, spans, policy),
		})
		offset += len(runes) + 1
	}
	return out
}

func segments(runes []rune, offset int, spans []span.Span, policy Policy) []Segment {
	if len(runes) == 0 {
		return nil
	}
	end := offset + len(runes)
	var local []span.Span
	for _, sp := range spans {
		if sp.Overlaps(offset, end) {
			local = append(local, sp)
		}
	}

	facesAt := func(i int) []string {
		pos := offset + i
		var faces []string
		for _, sp := range local {
			if sp.Contains(pos) {
				faces = append(faces, sp.Face)
			}
		}
		return policy.pick(faces)
	}

	var out []Segment
	for i := 0; i < len(runes); {
		faces := facesAt(i)
		j := i + 1
		for j < len(runes) && slices.Equal(facesAt(j), faces) {
			j++
		}
		out = append(out, Segment{Start: i, End: j, Text: string(runes[i:j]), Faces: faces})
		i = j
	}
	return out
}
