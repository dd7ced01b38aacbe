package indent

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Action is an edit the host applies to its buffer. The core never mutates
// a buffer itself.
type Action interface {
	Apply(text string) string
	ApplyTo(e Editor)
	String() string
}

// Editor is the part of a host buffer actions are applied to. Offsets are
// character offsets.
type Editor interface {
	Content() string
	Insert(pos int, text string)
	Delete(start, end int)
}

// SetIndent replaces the leading whitespace of a 1-based line. A non-empty
// Whitespace is written as is; otherwise the line gets Column spaces.
type SetIndent struct {
	Line       int
	Column     int
	Whitespace string
}

// Insert inserts Text at character offset Pos.
type Insert struct {
	Pos  int
	Text string
}

var (
	_ Action = SetIndent{}
	_ Action = Insert{}
)

func (a SetIndent) String() string {
	if a.Whitespace != "" {
		return fmt.Sprintf("set-indent line=%d column=%d whitespace=%q", a.Line, a.Column, a.Whitespace)
	}
	return fmt.Sprintf("set-indent line=%d column=%d", a.Line, a.Column)
}

func (a SetIndent) indentation() string {
	if a.Whitespace != "" {
		return a.Whitespace
	}
	return strings.Repeat(" ", max(0, a.Column))
}

// Apply returns text with the action applied.
func (a SetIndent) Apply(text string) string {
	start, wsEnd, ok := a.locate(text)
	if !ok {
		return text
	}
	want := a.indentation()
	if text[start:wsEnd] == want {
		return text
	}
	return text[:start] + want + text[wsEnd:]
}

// ApplyTo applies the action to e.
func (a SetIndent) ApplyTo(e Editor) {
	text := e.Content()
	start, wsEnd, ok := a.locate(text)
	if !ok {
		return
	}
	want := a.indentation()
	if text[start:wsEnd] == want {
		return
	}
	charStart := utf8.RuneCountInString(text[:start])
	e.Delete(charStart, charStart+(wsEnd-start))
	e.Insert(charStart, want)
}

// locate returns the byte range of the line's leading whitespace.
func (a SetIndent) locate(text string) (int, int, bool) {
	if a.Line < 1 {
		return 0, 0, false
	}
	start := 0
	for i := 1; i < a.Line; i++ {
		nl := strings.IndexByte(text[start:], '\n')
		if nl < 0 {
			return 0, 0, false
		}
		start += nl + 1
	}
	end := start
	for end < len(text) && (text[end] == ' ' || text[end] == '\t') {
		end++
	}
	return start, end, true
}

func (a Insert) String() string {
	return fmt.Sprintf("insert pos=%d text=%q", a.Pos, a.Text)
}

// Apply returns text with the action applied. Positions past the end
// append.
func (a Insert) Apply(text string) string {
	b := byteOffset(text, a.Pos)
	return text[:b] + a.Text + text[b:]
}

// ApplyTo applies the action to e.
func (a Insert) ApplyTo(e Editor) {
	e.Insert(a.Pos, a.Text)
}

func byteOffset(text string, pos int) int {
	if pos <= 0 {
		return 0
	}
	n := 0
	for i := range text {
		if n == pos {
			return i
		}
		n++
	}
	return len(text)
}
