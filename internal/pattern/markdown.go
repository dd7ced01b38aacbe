package pattern

import (
	"context"
	"strings"

	"github.com/dlclark/regexp2"

	"facet/internal/face"
	"facet/internal/grammar"
	"facet/internal/indent"
)

// MarkdownFence is the code fence of Markdown: ``` or ~~~ runs.
var MarkdownFence = Fence{Delims: "`~", MinRun: 3, Face: face.CodeBlock, MaxIndent: 3}

// MarkdownRules is the Markdown rule list. Block constructs come first so
// inline constructs layer over them.
var MarkdownRules = []Rule{
	{Name: "atx-heading", Face: face.Heading, Pattern: `^ {0,3}#{1,6}(?:[ \t]+[^\n]*)?$`},
	{Name: "setext-heading", Face: face.Heading, Pattern: `^ {0,3}(?![-*+>#]|\d+[.)])[^\n]*\S[^\n]*(?=\n {0,3}(?:=+|-+)[ \t]*$)`},
	{Name: "setext-underline", Face: face.Heading, Pattern: `^ {0,3}=+[ \t]*$`},
	{Name: "rule", Face: face.Rule, Pattern: `^ {0,3}(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,}|(?:_[ \t]*){3,})$`},
	{Name: "block-quote", Face: face.Quote, Pattern: `^ {0,3}>[^\n]*$`},
	{Name: "list-marker", Face: face.ListMarker, Pattern: `^[ \t]*(?:[-*+]|\d{1,9}[.)])(?=[ \t])`},
	{Name: "strong", Face: face.Strong, Pattern: `(\*\*|__)(?=\S)[^\n]+?(?<=\S)\1`},
	{Name: "emphasis-star", Face: face.Emphasis, Pattern: `(?<![*\\])\*(?![\s*])[^*\n]+?(?<!\s)\*(?!\*)`},
	{Name: "emphasis-underscore", Face: face.Emphasis, Pattern: `(?<![\w_\\])_(?![\s_])[^_\n]+?(?<!\s)_(?![\w_])`},
	{Name: "inline-code", Face: face.Code, Pattern: "(`+)(?!`)[^\\n]*?(?<!`)\\1(?!`)"},
	{Name: "image", Face: face.Link, Pattern: `!\[[^\]\n]*\]\([^)\n]+\)`},
	{Name: "link", Face: face.Link, Pattern: `(?<!!)\[[^\]\n]+\]\([^)\n]+\)`},
	{Name: "autolink", Face: face.Link, Pattern: `<(?:https?|mailto):[^>\s]+>`},
}

// NewMarkdown returns the Markdown adapter.
func NewMarkdown() *Adapter {
	fence := MarkdownFence
	return MustNew("markdown", &fence, MarkdownRules...)
}

var (
	listItem    = regexp2.MustCompile(`^([ \t]*)([-*+]|\d{1,9}[.)])[ \t]`, regexp2.None)
	quotePrefix = regexp2.MustCompile(`^[ \t]*>(?:[ \t]*>)*[ \t]?`, regexp2.None)
)

// Continuation indents from the preceding line only: list items continue
// past their marker, block quotes repeat their prefix and lines inside a
// fence keep their own leading whitespace. Anything else gets no indent.
type Continuation struct {
	Fence    *Fence
	TabWidth int
}

var (
	_ indent.Indenter = Continuation{}
	_ indent.Prefixer = Continuation{}
	_ indent.Verbatim = Continuation{}
)

// Indent returns the column of a 1-based line.
func (c Continuation) Indent(ctx context.Context, text string, line int) int {
	col, _ := c.compute(text, line)
	return col
}

// Prefix returns the block-quote prefix a new line at the 1-based line
// should start with.
func (c Continuation) Prefix(ctx context.Context, text string, line int) (string, bool) {
	_, prefix := c.compute(text, line)
	return prefix, prefix != ""
}

// Verbatim returns the leading whitespace of a 1-based line inside a
// fenced block, which is kept exactly as written.
func (c Continuation) Verbatim(ctx context.Context, text string, line int) (string, bool) {
	lines := strings.Split(text, "\n")
	if line < 1 || line > len(lines) {
		return "", false
	}
	return c.fenced(text, lines, line-1)
}

func (c Continuation) fenced(text string, lines []string, idx int) (string, bool) {
	if c.Fence == nil {
		return "", false
	}
	for _, z := range c.Fence.Zones(text) {
		if z.Inside(idx) {
			return grammar.LeadingWhitespace(lines[idx]), true
		}
	}
	return "", false
}

func (c Continuation) compute(text string, line int) (int, string) {
	lines := strings.Split(text, "\n")
	if line < 1 || line > len(lines) {
		return 0, ""
	}
	idx := line - 1

	if ws, ok := c.fenced(text, lines, idx); ok {
		return indent.Width(ws, c.TabWidth), ""
	}

	if idx == 0 {
		return 0, ""
	}
	prev := lines[idx-1]

	if m, _ := listItem.FindStringMatch(prev); m != nil {
		ws := m.GroupByNumber(1).String()
		marker := m.GroupByNumber(2).String()
		return indent.Width(ws, c.TabWidth) + len([]rune(marker)) + 1, ""
	}
	if m, _ := quotePrefix.FindStringMatch(prev); m != nil {
		prefix := m.String()
		if !strings.HasSuffix(prefix, " ") {
			prefix += " "
		}
		return indent.Width(grammar.LeadingWhitespace(prefix), c.TabWidth), strings.TrimLeft(prefix, " \t")
	}
	return 0, ""
}
