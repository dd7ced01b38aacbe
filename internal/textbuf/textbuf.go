// Package textbuf is a small in-memory buffer addressed in characters. It
// stands in for an editor buffer in the command line tools and tests.
package textbuf

import (
	"strings"

	"facet/internal/readfile"
)

// Buffer holds text as runes. It is not safe for concurrent use.
type Buffer struct {
	text   []rune
	mode   string
	gutter bool
}

// New returns a buffer holding s.
func New(s string) *Buffer {
	return &Buffer{text: []rune(s)}
}

// Load reads path into a new buffer.
func Load(path string) (*Buffer, error) {
	s, err := readfile.Text(path)
	if err != nil {
		return nil, err
	}
	return New(s), nil
}

func (b *Buffer) Content() string { return string(b.text) }
func (b *Buffer) CharCount() int  { return len(b.text) }

// LineCount is one more than the number of newlines.
func (b *Buffer) LineCount() int {
	n := 1
	for _, r := range b.text {
		if r == '\n' {
			n++
		}
	}
	return n
}

// Line returns 0-based line i without its newline, or "" when out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 {
		return ""
	}
	start := 0
	for n := 0; n < i; n++ {
		next := b.indexFrom(start, '\n')
		if next < 0 {
			return ""
		}
		start = next + 1
	}
	end := b.indexFrom(start, '\n')
	if end < 0 {
		end = len(b.text)
	}
	return string(b.text[start:end])
}

func (b *Buffer) indexFrom(from int, r rune) int {
	for i := from; i < len(b.text); i++ {
		if b.text[i] == r {
			return i
		}
	}
	return -1
}

func (b *Buffer) clamp(start, end int) (int, int) {
	start = min(max(start, 0), len(b.text))
	end = min(max(end, start), len(b.text))
	return start, end
}

// Substring returns the characters in [start, end), clamped to the buffer.
func (b *Buffer) Substring(start, end int) string {
	start, end = b.clamp(start, end)
	return string(b.text[start:end])
}

// Insert inserts s at character offset pos, clamped to the buffer.
func (b *Buffer) Insert(pos int, s string) {
	if s == "" {
		return
	}
	pos, _ = b.clamp(pos, pos)
	ins := []rune(s)
	out := make([]rune, 0, len(b.text)+len(ins))
	out = append(out, b.text[:pos]...)
	out = append(out, ins...)
	b.text = append(out, b.text[pos:]...)
}

// Delete removes the characters in [start, end).
func (b *Buffer) Delete(start, end int) {
	start, end = b.clamp(start, end)
	if start == end {
		return
	}
	b.text = append(b.text[:start], b.text[end:]...)
}

// Replace swaps [start, end) for s and returns the end of the new text.
func (b *Buffer) Replace(start, end int, s string) int {
	start, end = b.clamp(start, end)
	b.Delete(start, end)
	b.Insert(start, s)
	return start + len([]rune(s))
}

// Lines returns the text split into lines.
func (b *Buffer) Lines() []string {
	return strings.Split(string(b.text), "\n")
}

func (b *Buffer) MajorModeName() string        { return b.mode }
func (b *Buffer) SetMajorModeName(name string) { b.mode = name }
func (b *Buffer) ShowGutter() bool             { return b.gutter }
func (b *Buffer) SetShowGutter(show bool)      { b.gutter = show }

// Sync replaces the buffer text with s using the smallest single edit: the
// common prefix and suffix are kept. It returns the edited range in the old
// text and the end of the replacement, ready to report as a change.
func (b *Buffer) Sync(s string) (start, oldEnd, newEnd int) {
	next := []rune(s)
	n := min(len(b.text), len(next))
	for start < n && b.text[start] == next[start] {
		start++
	}
	suffix := 0
	for suffix < n-start && b.text[len(b.text)-1-suffix] == next[len(next)-1-suffix] {
		suffix++
	}
	oldEnd = len(b.text) - suffix
	newEnd = len(next) - suffix
	b.text = next
	return start, oldEnd, newEnd
}
