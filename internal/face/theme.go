package face

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// Theme is a chroma style projected onto the face set plus the colors the
// viewer needs around the text.
type Theme struct {
	Name       string
	Text       string
	Background string
	Muted      string
	Selection  string
	Faces      []Face
}

// DefaultTheme is used when no theme is configured.
const DefaultTheme = "nord"

// LoadTheme resolves a chroma style by name.
func LoadTheme(name string) (Theme, error) {
	requested := strings.TrimSpace(name)
	if requested == "" {
		requested = DefaultTheme
	}

	lookup := normalizeThemeName(requested)
	names := styles.Names()
	available := make(map[string]struct{}, len(names))
	for _, n := range names {
		available[n] = struct{}{}
	}
	unknownThemeErr := func() error {
		sort.Strings(names)
		return fmt.Errorf("unknown theme %q. try one of: %s", requested, strings.Join(topThemeHints(names), ", "))
	}
	if _, ok := available[lookup]; !ok {
		return Theme{}, unknownThemeErr()
	}

	style := styles.Get(lookup)
	if style == nil {
		return Theme{}, unknownThemeErr()
	}

	baseBG := pickBackground(style, "#2E3440", chroma.Background, chroma.LineHighlight)
	baseFG := pickForeground(style, "#D8DEE9", chroma.Text, chroma.Background)
	comment := pickForeground(style, adjustTone(baseFG, -60), chroma.Comment)

	th := Theme{
		Name:       lookup,
		Text:       baseFG,
		Background: baseBG,
		Muted:      pickForeground(style, adjustTone(baseFG, -48), chroma.LineNumbers, chroma.Comment),
		Selection:  pickBackground(style, adjustTone(baseBG, autoDelta(baseBG, 18, -18)), chroma.LineHighlight),
	}

	fg := func(name string, fallback string, types ...chroma.TokenType) Face {
		f := New(name).WithForeground(MustColor(pickForeground(style, fallback, types...)))
		if len(types) > 0 {
			entry := style.Get(types[0])
			f.Bold = entry.Bold == chroma.Yes
			f.Italic = entry.Italic == chroma.Yes
			f.Underline = entry.Underline == chroma.Yes
		}
		return f
	}

	th.Faces = []Face{
		fg(Keyword, baseFG, chroma.Keyword),
		fg(String, baseFG, chroma.LiteralString),
		New(Comment).WithForeground(MustColor(comment)).WithItalic(style.Get(chroma.Comment).Italic == chroma.Yes),
		fg(Function, baseFG, chroma.NameFunction, chroma.Name),
		fg(Type, baseFG, chroma.KeywordType, chroma.NameClass),
		fg(Constant, baseFG, chroma.KeywordConstant, chroma.LiteralNumber),
		fg(Number, baseFG, chroma.LiteralNumber),
		fg(Variable, baseFG, chroma.NameVariable, chroma.Name),
		fg(Operator, baseFG, chroma.Operator),
		fg(Punctuation, baseFG, chroma.Punctuation, chroma.Operator),
		fg(Macro, baseFG, chroma.NameDecorator, chroma.CommentPreproc),
		fg(Error, "#BF616A", chroma.Error).WithUnderline(true),
		fg(Heading, baseFG, chroma.GenericHeading, chroma.Keyword).WithBold(true),
		fg(Code, baseFG, chroma.LiteralStringBacktick, chroma.LiteralString),
		fg(CodeBlock, baseFG, chroma.LiteralStringBacktick, chroma.LiteralString),
		fg(Link, baseFG, chroma.NameAttribute, chroma.NameClass).WithUnderline(true),
		New(Quote).WithForeground(MustColor(comment)).WithItalic(true),
		fg(ListMarker, baseFG, chroma.Keyword),
		New(Rule).WithForeground(MustColor(th.Muted)),
	}

	return th, nil
}

// ApplyTheme loads a theme and defines its faces in r. Faces the theme does
// not mention (rainbow slots, warning) keep their current definition.
func ApplyTheme(r *Registry, name string) (Theme, error) {
	th, err := LoadTheme(name)
	if err != nil {
		return Theme{}, err
	}
	for _, f := range th.Faces {
		r.Define(f)
	}
	return th, nil
}

// FallbackTheme is the theme used when no chroma style can be loaded.
func FallbackTheme() Theme {
	return Theme{
		Name:       "fallback",
		Text:       "#D8DEE9",
		Background: "#2E3440",
		Muted:      "#4C566A",
		Selection:  "#434C5E",
	}
}

func normalizeThemeName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "solarized":
		return "solarized-dark"
	case "one-dark":
		return "onedark"
	default:
		return n
	}
}

func pickForeground(style *chroma.Style, fallback string, types ...chroma.TokenType) string {
	for _, tt := range types {
		entry := style.Get(tt)
		if entry.Colour.IsSet() {
			return entry.Colour.String()
		}
	}
	return fallback
}

func pickBackground(style *chroma.Style, fallback string, types ...chroma.TokenType) string {
	for _, tt := range types {
		entry := style.Get(tt)
		if entry.Background.IsSet() {
			return entry.Background.String()
		}
	}
	return fallback
}

func topThemeHints(all []string) []string {
	wanted := []string{"nord", "dracula", "monokai", "github", "github-dark", "solarized-dark", "solarized-light", "gruvbox", "onedark"}
	set := map[string]bool{}
	for _, n := range all {
		set[n] = true
	}
	out := make([]string, 0, len(wanted))
	for _, name := range wanted {
		if set[name] {
			out = append(out, name)
		}
	}
	if len(out) == 0 {
		limit := min(8, len(all))
		return all[:limit]
	}
	return out
}

func autoDelta(bg string, darkDelta int, lightDelta int) int {
	r, g, b, ok := parseHexRGB(bg)
	if !ok {
		return darkDelta
	}
	l := 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
	if l < 128 {
		return darkDelta
	}
	return lightDelta
}

func adjustTone(hex string, delta int) string {
	r, g, b, ok := parseHexRGB(hex)
	if !ok {
		return hex
	}
	return fmt.Sprintf("#%02X%02X%02X", clamp8(r+delta), clamp8(g+delta), clamp8(b+delta))
}

func parseHexRGB(hex string) (int, int, int, bool) {
	h := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(h) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int((v >> 16) & 0xFF), int((v >> 8) & 0xFF), int(v & 0xFF), true
}

func clamp8(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
