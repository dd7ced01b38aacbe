package pattern

import (
	"strings"
	"unicode/utf8"
)

// Fence describes multi-line fenced regions: a line starting with a run of
// at least MinRun identical delimiter characters opens a region, and a line
// starting with a run of the same character at least as long closes it.
type Fence struct {
	Delims string
	MinRun int
	Face   string
	// MaxIndent is the most leading spaces an opening or closing line may
	// carry.
	MaxIndent int
}

// Zone is a fenced region. Lines are 0-based and inclusive, Start and End
// are character offsets with End exclusive.
type Zone struct {
	StartLine int
	EndLine   int
	Start     int
	End       int
	Closed    bool
	Info      string
}

// Contains reports whether character offset pos lies in z.
func (z Zone) Contains(pos int) bool {
	return pos >= z.Start && pos < z.End
}

// Inside reports whether the 0-based line is fenced content, that is after
// the opening line and before the closing one. An unclosed zone has no
// closing line.
func (z Zone) Inside(line int) bool {
	if line <= z.StartLine {
		return false
	}
	return line < z.EndLine || (!z.Closed && line <= z.EndLine)
}

func (f *Fence) minRun() int {
	if f.MinRun < 3 {
		return 3
	}
	return f.MinRun
}

// run returns the delimiter, run length and trailing text of a fence line.
// A zero length means line is not a fence line.
func (f *Fence) run(line string) (byte, int, string) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > f.MaxIndent {
		return 0, 0, ""
	}
	if trimmed == "" || !strings.ContainsRune(f.Delims, rune(trimmed[0])) {
		return 0, 0, ""
	}
	c := trimmed[0]
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < f.minRun() {
		return 0, 0, ""
	}
	return c, n, strings.TrimSpace(trimmed[n:])
}

// Zones scans text for fenced regions. An unterminated fence runs to the end
// of the text.
func (f *Fence) Zones(text string) []Zone {
	if f == nil || f.Delims == "" {
		return nil
	}

	var zones []Zone
	var open *Zone
	var openChar byte
	var openRun int

	pos := 0
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lineLen := utf8.RuneCountInString(line)
		lineEnd := pos + lineLen
		if i < len(lines)-1 {
			lineEnd++
		}

		c, n, rest := f.run(line)
		switch {
		case open == nil && n > 0:
			open = &Zone{StartLine: i, Start: pos, Info: rest}
			openChar, openRun = c, n
		case open != nil && c == openChar && n >= openRun && rest == "":
			open.EndLine = i
			open.End = lineEnd
			open.Closed = true
			zones = append(zones, *open)
			open = nil
		}
		pos = lineEnd
	}

	if open != nil {
		open.EndLine = len(lines) - 1
		open.End = pos
		zones = append(zones, *open)
	}
	return zones
}

// inZone reports whether pos lies in any of zones. Zones are sorted.
func inZone(zones []Zone, pos int) bool {
	for _, z := range zones {
		if pos < z.Start {
			return false
		}
		if z.Contains(pos) {
			return true
		}
	}
	return false
}
