package grammar

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Offsets converts between byte offsets and character offsets of one text
// and answers line queries. Tree-sitter and the line scanners work in bytes,
// spans are stored in characters.
type Offsets struct {
	text       string
	ascii      bool
	runeStarts []int // byte offset of every rune, only when !ascii
	lineStarts []int // byte offset of every line start
}

// NewOffsets indexes text.
func NewOffsets(text string) *Offsets {
	o := &Offsets{text: text, ascii: true}
	o.lineStarts = append(o.lineStarts, 0)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c >= utf8.RuneSelf {
			o.ascii = false
		}
		if c == '\n' {
			o.lineStarts = append(o.lineStarts, i+1)
		}
	}
	if !o.ascii {
		o.runeStarts = make([]int, 0, len(text))
		for i := range text {
			o.runeStarts = append(o.runeStarts, i)
		}
	}
	return o
}

// Text returns the indexed text.
func (o *Offsets) Text() string {
	return o.text
}

// CharLen returns the text length in characters.
func (o *Offsets) CharLen() int {
	if o.ascii {
		return len(o.text)
	}
	return len(o.runeStarts)
}

// ByteToChar converts a byte offset to a character offset. Offsets inside a
// multi-byte rune map to that rune.
func (o *Offsets) ByteToChar(b int) int {
	if b <= 0 {
		return 0
	}
	if b >= len(o.text) {
		return o.CharLen()
	}
	if o.ascii {
		return b
	}
	i := sort.SearchInts(o.runeStarts, b)
	if i < len(o.runeStarts) && o.runeStarts[i] == b {
		return i
	}
	return i - 1
}

// CharToByte converts a character offset to a byte offset.
func (o *Offsets) CharToByte(c int) int {
	if c <= 0 {
		return 0
	}
	if c >= o.CharLen() {
		return len(o.text)
	}
	if o.ascii {
		return c
	}
	return o.runeStarts[c]
}

// LineCount returns the number of lines. A trailing newline starts an empty
// last line.
func (o *Offsets) LineCount() int {
	return len(o.lineStarts)
}

// LineStart returns the byte offset of the first byte of a 0-based line.
func (o *Offsets) LineStart(line int) int {
	if line <= 0 {
		return 0
	}
	if line >= len(o.lineStarts) {
		return len(o.text)
	}
	return o.lineStarts[line]
}

// LineEnd returns the byte offset of the line's newline, or the text end.
func (o *Offsets) LineEnd(line int) int {
	if line+1 < len(o.lineStarts) {
		return o.lineStarts[line+1] - 1
	}
	return len(o.text)
}

// Line returns the text of a 0-based line without its newline.
func (o *Offsets) Line(line int) string {
	if line < 0 || line >= len(o.lineStarts) {
		return ""
	}
	return o.text[o.LineStart(line):o.LineEnd(line)]
}

// LineOf returns the 0-based line holding byte offset b.
func (o *Offsets) LineOf(b int) int {
	i := sort.SearchInts(o.lineStarts, b+1)
	return max(0, i-1)
}

// LeadingWhitespace returns the run of spaces and tabs starting s.
func LeadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
