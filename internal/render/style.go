package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"facet/internal/face"
)

// Styler renders lines with the faces of a registry.
type Styler struct {
	Faces *face.Registry
	Theme face.Theme
	// Gutter prefixes lines with their 1-based number.
	Gutter bool
	// GutterWidth is the width of the number column. Zero fits the line.
	GutterWidth int
	TabWidth    int
}

func (s Styler) base(selected bool) lipgloss.Style {
	style := lipgloss.NewStyle()
	if s.Theme.Text != "" {
		style = style.Foreground(lipgloss.Color(s.Theme.Text))
	}
	if selected && s.Theme.Selection != "" {
		style = style.Background(lipgloss.Color(s.Theme.Selection))
	}
	return style
}

// Style merges faces in order onto the base style. Unknown faces are
// skipped.
func (s Styler) Style(faces []string, selected bool) lipgloss.Style {
	style := s.base(selected)
	if s.Faces == nil {
		return style
	}
	for _, name := range faces {
		f, ok := s.Faces.Get(name)
		if !ok {
			continue
		}
		if f.Foreground != nil {
			style = style.Foreground(lipgloss.Color(f.Foreground.String()))
		}
		if f.Background != nil && !selected {
			style = style.Background(lipgloss.Color(f.Background.String()))
		}
		if f.Bold {
			style = style.Bold(true)
		}
		if f.Italic {
			style = style.Italic(true)
		}
		if f.Underline {
			style = style.Underline(true)
		}
		if f.Strikethrough {
			style = style.Strikethrough(true)
		}
	}
	return style
}

// Options adjust a single rendered line.
type Options struct {
	Selected bool
	// Emphasis lists character offsets within the line drawn bold and
	// underlined, such as search matches.
	Emphasis []int
	// Width truncates the output to this many cells. Zero disables it.
	Width int
}

// Render returns the styled line.
func (s Styler) Render(l Line, opts Options) string {
	var b strings.Builder
	if s.Gutter {
		b.WriteString(s.gutter(l.Number))
	}

	mask := buildEmphasisMask(len([]rune(l.Text)), opts.Emphasis)
	for _, seg := range l.Segments {
		runes := []rune(seg.Text)
		for i := 0; i < len(runes); {
			emph := emphasisAt(mask, seg.Start+i)
			j := i + 1
			for j < len(runes) && emphasisAt(mask, seg.Start+j) == emph {
				j++
			}
			style := s.Style(seg.Faces, opts.Selected)
			if emph {
				style = style.Bold(true).Underline(true)
			}
			b.WriteString(style.Render(s.expandTabs(string(runes[i:j]))))
			i = j
		}
	}

	out := b.String()
	if opts.Width > 0 && ansi.StringWidth(out) > opts.Width {
		out = ansi.Truncate(out, opts.Width, "")
	}
	return out
}

func (s Styler) gutter(n int) string {
	num := fmt.Sprintf("%*d ", s.GutterWidth, n+1)
	style := lipgloss.NewStyle()
	if s.Theme.Muted != "" {
		style = style.Foreground(lipgloss.Color(s.Theme.Muted))
	}
	return style.Render(num)
}

func (s Styler) expandTabs(text string) string {
	if !strings.Contains(text, "\t") {
		return text
	}
	w := s.TabWidth
	if w <= 0 {
		w = 4
	}
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", w))
}

func buildEmphasisMask(runeLen int, positions []int) []bool {
	if runeLen <= 0 || len(positions) == 0 {
		return nil
	}
	mask := make([]bool, runeLen)
	for _, pos := range positions {
		if pos >= 0 && pos < runeLen {
			mask[pos] = true
		}
	}
	return mask
}

func emphasisAt(mask []bool, idx int) bool {
	return idx >= 0 && idx < len(mask) && mask[idx]
}

// Matches returns the character offsets within line covered by
// case-insensitive occurrences of query.
func Matches(line, query string) []int {
	if query == "" {
		return nil
	}
	hay := []rune(strings.ToLower(line))
	needle := []rune(strings.ToLower(query))
	if len(hay) != len([]rune(line)) {
		return nil
	}
	var out []int
	for i := 0; i+len(needle) <= len(hay); i++ {
		if string(hay[i:i+len(needle)]) == string(needle) {
			for k := range needle {
				out = append(out, i+k)
			}
			i += len(needle) - 1
		}
	}
	return out
}
