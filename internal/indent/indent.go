// Package indent computes the indentation column of a line and turns it
// into edit actions.
//
// Lines are 1-based. Positions are character offsets. Every computation is
// a pure function of the text passed in.
package indent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"facet/internal/grammar"
	"facet/internal/logger"
	"facet/internal/treesit"
)

// ErrLineRange reports a line number outside the text.
var ErrLineRange = errors.New("line out of range")

// DefaultUnit is the indent width used when none is configured.
const DefaultUnit = 4

// Indenter computes the column a 1-based line should be indented to.
type Indenter interface {
	Indent(ctx context.Context, text string, line int) int
}

// Prefixer is implemented by indenters whose new lines start with marker
// text after the indentation, such as a repeated block-quote prefix.
type Prefixer interface {
	Prefix(ctx context.Context, text string, line int) (string, bool)
}

// Verbatim is implemented by indenters that keep some lines' whitespace
// exactly as written, tabs included.
type Verbatim interface {
	Verbatim(ctx context.Context, text string, line int) (string, bool)
}

// Parser yields a tree answering nesting-depth queries.
type Parser interface {
	Parse(ctx context.Context, text string) (*treesit.Tree, error)
}

// Calculator indents from the nesting depth of a parse tree.
type Calculator struct {
	Tree Parser
	// Unit is the width of one level in spaces.
	Unit int
	// Dedent lists the keywords that pull their line back one level when
	// they start it.
	Dedent []string
}

// ForTree returns a calculator using the grammar's own unit and dedent
// keywords.
func ForTree(a *treesit.Adapter) *Calculator {
	lang := a.Language()
	return &Calculator{Tree: a, Unit: lang.IndentUnit, Dedent: lang.Dedent}
}

// Result is a computed indentation with its intermediate steps.
type Result struct {
	Line      int
	Depth     int
	Candidate int
	Column    int
	Dedented  bool
}

func (r Result) String() string {
	return fmt.Sprintf("line=%d depth=%d candidate=%d column=%d dedented=%t",
		r.Line, r.Depth, r.Candidate, r.Column, r.Dedented)
}

func (c *Calculator) unit() int {
	if c.Unit <= 0 {
		return DefaultUnit
	}
	return c.Unit
}

// Compute returns the indentation of a 1-based line.
func (c *Calculator) Compute(ctx context.Context, text string, line int) (Result, error) {
	res := Result{Line: line}
	if c.Tree == nil {
		return res, fmt.Errorf("%w: no tree parser", grammar.ErrUnavailable)
	}

	tree, err := c.Tree.Parse(ctx, text)
	if err != nil {
		return res, err
	}
	defer tree.Close()

	offsets := tree.Offsets()
	if line < 1 || line > offsets.LineCount() {
		return res, fmt.Errorf("%w: %d of %d", ErrLineRange, line, offsets.LineCount())
	}

	res.Depth = tree.Depth(offsets.LineStart(line - 1))
	res.Candidate = res.Depth * c.unit()
	res.Column = res.Candidate
	if StartsWithDedent(offsets.Line(line-1), c.Dedent) {
		res.Dedented = true
		res.Column = max(0, res.Candidate-c.unit())
	}
	return res, nil
}

// Indent returns the column of a 1-based line, or 0 when the text does not
// parse.
func (c *Calculator) Indent(ctx context.Context, text string, line int) int {
	res, err := c.Compute(ctx, text, line)
	if err != nil {
		logger.L(ctx).Debug("indent fell back to column 0", zap.Int("line", line), zap.Error(err))
		return 0
	}
	return res.Column
}

// StartsWithDedent reports whether the line's first non-blank token is one
// of keywords or its first non-blank character is a closing bracket.
func StartsWithDedent(line string, keywords []string) bool {
	rest := strings.TrimLeft(line, " \t")
	if rest == "" {
		return false
	}
	switch rest[0] {
	case ')', ']', '}':
		return true
	}

	word := firstWord(rest)
	if word == "" {
		return false
	}
	for _, kw := range keywords {
		if word == kw {
			return true
		}
	}
	return false
}

func firstWord(s string) string {
	end := 0
	for end < len(s) {
		r, size := utf8.DecodeRuneInString(s[end:])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		end += size
	}
	return s[:end]
}

// IndentLine returns the action setting a 1-based line to its computed
// column.
func IndentLine(ctx context.Context, ind Indenter, text string, line int) SetIndent {
	act := SetIndent{Line: line, Column: ind.Indent(ctx, text, line)}
	if v, ok := ind.(Verbatim); ok {
		if ws, ok := v.Verbatim(ctx, text, line); ok {
			act.Whitespace = ws
		}
	}
	return act
}

// NewlineAndIndent splits the text at cursor without touching the buffer,
// indents the new line against the split text and returns the single
// insertion producing both.
func NewlineAndIndent(ctx context.Context, ind Indenter, text string, cursor int) Insert {
	b := byteOffset(text, cursor)
	cursor = utf8.RuneCountInString(text[:b])
	split := text[:b] + "\n" + text[b:]
	line := strings.Count(text[:b], "\n") + 2

	if v, ok := ind.(Verbatim); ok {
		if _, ok := v.Verbatim(ctx, split, line); ok {
			// The new line already starts with its own whitespace.
			return Insert{Pos: cursor, Text: "\n"}
		}
	}

	col := ind.Indent(ctx, split, line)
	ins := "\n" + strings.Repeat(" ", max(0, col))
	if p, ok := ind.(Prefixer); ok {
		if prefix, ok := p.Prefix(ctx, split, line); ok {
			ins += prefix
		}
	}
	return Insert{Pos: cursor, Text: ins}
}

// IndentLine is IndentLine with c as the indenter.
func (c *Calculator) IndentLine(ctx context.Context, text string, line int) SetIndent {
	return IndentLine(ctx, c, text, line)
}

// NewlineAndIndent is NewlineAndIndent with c as the indenter.
func (c *Calculator) NewlineAndIndent(ctx context.Context, text string, cursor int) Insert {
	return NewlineAndIndent(ctx, c, text, cursor)
}

// Keep indents a line like the nearest non-blank line above it. Modes
// without a tree grammar use it.
type Keep struct {
	// TabWidth is the column width of a tab. Zero means DefaultUnit.
	TabWidth int
}

// Indent implements Indenter.
func (k Keep) Indent(_ context.Context, text string, line int) int {
	lines := strings.Split(text, "\n")
	if line < 2 || line > len(lines) {
		return 0
	}
	for i := line - 2; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		return Width(grammar.LeadingWhitespace(lines[i]), k.TabWidth)
	}
	return 0
}

// Width returns the column width of a whitespace prefix.
func Width(ws string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultUnit
	}
	col := 0
	for _, r := range ws {
		if r == '\t' {
			col += tabWidth - col%tabWidth
			continue
		}
		col++
	}
	return col
}
