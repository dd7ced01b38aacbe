package indent

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"facet/internal/grammar"
	"facet/internal/treesit"
)

func calculator(t *testing.T, lang string) *Calculator {
	t.Helper()
	a, err := treesit.ForName(lang)
	require.NoError(t, err)
	return ForTree(a)
}

func TestRubyEndToEnd(t *testing.T) {
	c := calculator(t, "ruby")
	ctx := context.Background()
	text := "if x\n  y\nend"

	line2, err := c.Compute(ctx, text, 2)
	require.NoError(t, err)
	require.Equal(t, Result{Line: 2, Depth: 1, Candidate: 2, Column: 2}, line2)

	line3, err := c.Compute(ctx, text, 3)
	require.NoError(t, err)
	require.Equal(t, 2, line3.Candidate, "one unit before the dedent rule")
	require.True(t, line3.Dedented)
	require.Equal(t, 0, line3.Column)

	require.Equal(t, 0, c.Indent(ctx, text, 1))
}

func TestIndentIsIdempotent(t *testing.T) {
	c := calculator(t, "ruby")
	ctx := context.Background()
	text := "class A\n  def f\n    1\n  end\nend"
	for line := 1; line <= 5; line++ {
		first := c.Indent(ctx, text, line)
		require.Equal(t, first, c.Indent(ctx, text, line), "line %d", line)
	}
}

func TestIndentLineOnCorrectLineIsNoop(t *testing.T) {
	c := calculator(t, "ruby")
	ctx := context.Background()
	text := "class A\n  def f\n    1\n  end\nend"
	for line := 1; line <= 5; line++ {
		act := c.IndentLine(ctx, text, line)
		require.Equal(t, text, act.Apply(text), "line %d", line)
	}
}

func TestIndentLineFixesIndentation(t *testing.T) {
	c := calculator(t, "go")
	ctx := context.Background()
	text := "package p\n\nfunc f() {\nx()\n        }"

	act := c.IndentLine(ctx, text, 4)
	require.Equal(t, SetIndent{Line: 4, Column: 4}, act)
	text = act.Apply(text)
	text = c.IndentLine(ctx, text, 5).Apply(text)
	require.Equal(t, "package p\n\nfunc f() {\n    x()\n}", text)
}

func TestNewlineRoundTrip(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		lang   string
		text   string
		cursor string
	}{
		{"ruby", "if x\n  y\nend", "if x"},
		{"ruby", "if x\n  y\nend", "  y"},
		{"go", "package p\n\nfunc f() {\n}", "{"},
		{"go", "package p\n\nfunc f() {\n\tif ok {\n\t\tg()\n\t}\n}", "ok {"},
		{"json", "{\n  \"a\": [1, 2]\n}", "{"},
		{"lua", "function f()\n  x()\nend", "function f()"},
		{"lua", "function f()\n  x()\nend", "x()"},
		{"lua", "local t = {\n  1,\n}", "{"},
	}
	for _, tc := range cases {
		c := calculator(t, tc.lang)
		cursor := strings.Index(tc.text, tc.cursor) + len(tc.cursor)

		act := c.NewlineAndIndent(ctx, tc.text, cursor)
		require.Equal(t, cursor, act.Pos)
		require.True(t, strings.HasPrefix(act.Text, "\n"))

		applied := act.Apply(tc.text)
		newLine := strings.Count(tc.text[:cursor], "\n") + 2
		require.Equal(t, len(act.Text)-1, c.Indent(ctx, applied, newLine), "%s %q", tc.lang, tc.text)
	}
}

func TestNewlineInsideRubyBlock(t *testing.T) {
	c := calculator(t, "ruby")
	text := "if x\n  y\nend"
	act := c.NewlineAndIndent(context.Background(), text, strings.Index(text, "y")+1)
	require.Equal(t, Insert{Pos: 8, Text: "\n  "}, act)
}

func TestParseFailureIndentsToZero(t *testing.T) {
	c := calculator(t, "json")
	require.Equal(t, 0, c.Indent(context.Background(), "{\n  \"a\": \n}", 2))

	_, err := c.Compute(context.Background(), "{\n  \"a\": \n}", 2)
	require.ErrorIs(t, err, grammar.ErrParse)
}

func TestLineOutOfRange(t *testing.T) {
	c := calculator(t, "ruby")
	_, err := c.Compute(context.Background(), "x", 3)
	require.ErrorIs(t, err, ErrLineRange)
	require.Equal(t, 0, c.Indent(context.Background(), "x", 0))
}

func TestCalculatorWithoutTree(t *testing.T) {
	c := &Calculator{}
	_, err := c.Compute(context.Background(), "x", 1)
	require.ErrorIs(t, err, grammar.ErrUnavailable)
}

func TestStartsWithDedent(t *testing.T) {
	kws := []string{"end", "else"}
	require.True(t, StartsWithDedent("  end", kws))
	require.True(t, StartsWithDedent("else:", kws))
	require.True(t, StartsWithDedent("\t}", nil))
	require.True(t, StartsWithDedent(") + 1", nil))
	require.False(t, StartsWithDedent("  ending", kws))
	require.False(t, StartsWithDedent("x = end", kws))
	require.False(t, StartsWithDedent("   ", kws))
}

func TestKeep(t *testing.T) {
	ctx := context.Background()
	text := "a\n    b\n\n\tc\nd"
	k := Keep{}
	require.Equal(t, 0, k.Indent(ctx, text, 1))
	require.Equal(t, 0, k.Indent(ctx, text, 2))
	require.Equal(t, 4, k.Indent(ctx, text, 3))
	require.Equal(t, 4, k.Indent(ctx, text, 4), "blank line skipped")
	require.Equal(t, 4, k.Indent(ctx, text, 5), "tab expands to the tab width")
	require.Equal(t, 2, Keep{TabWidth: 2}.Indent(ctx, text, 5))
	require.Equal(t, 0, k.Indent(ctx, text, 9))
}

func TestProperty_KeepNewlineRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lines := rapid.SliceOfN(rapid.StringMatching(`[ \t]{0,3}[a-z]{0,4}`), 1, 6).Draw(rt, "lines")
		text := strings.Join(lines, "\n")
		cursor := rapid.IntRange(0, len(text)).Draw(rt, "cursor")

		ctx := context.Background()
		act := NewlineAndIndent(ctx, Keep{}, text, cursor)
		applied := act.Apply(text)
		newLine := strings.Count(text[:cursor], "\n") + 2

		require.Equal(rt, len(act.Text)-1, Keep{}.Indent(ctx, applied, newLine))
		require.Equal(rt, act.Text[0:1], "\n")
	})
}

func TestProperty_IndentIdempotent(t *testing.T) {
	c := calculator(t, "ruby")
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 4).Draw(rt, "nesting")
		var b strings.Builder
		for i := 0; i < n; i++ {
			b.WriteString("if x\n")
		}
		b.WriteString("y\n")
		for i := 0; i < n; i++ {
			b.WriteString("end\n")
		}
		text := b.String()
		line := rapid.IntRange(1, 2*n+1).Draw(rt, "line")

		ctx := context.Background()
		first := c.Indent(ctx, text, line)
		require.Equal(rt, first, c.Indent(ctx, text, line))
		once := IndentLine(ctx, c, text, line).Apply(text)
		twice := IndentLine(ctx, c, once, line).Apply(once)
		require.Equal(rt, once, twice)
	})
}

type recorder struct {
	text string
}

func (r *recorder) Content() string { return r.text }

func (r *recorder) Insert(pos int, text string) {
	r.text = Insert{Pos: pos, Text: text}.Apply(r.text)
}

func (r *recorder) Delete(start, end int) {
	runes := []rune(r.text)
	r.text = string(runes[:start]) + string(runes[end:])
}

func TestActionsApplyToEditor(t *testing.T) {
	e := &recorder{text: "é\n\t  x\ny"}
	SetIndent{Line: 2, Column: 4}.ApplyTo(e)
	require.Equal(t, "é\n    x\ny", e.text)

	Insert{Pos: 1, Text: "!"}.ApplyTo(e)
	require.Equal(t, "é!\n    x\ny", e.text)

	SetIndent{Line: 9, Column: 4}.ApplyTo(e)
	require.Equal(t, "é!\n    x\ny", e.text)
}

func TestSetIndentWhitespaceIsVerbatim(t *testing.T) {
	act := SetIndent{Line: 2, Column: 4, Whitespace: "\t"}
	require.Equal(t, "a\n\tb", act.Apply("a\n    b"))
	require.Equal(t, "a\n\tb", act.Apply("a\n\tb"))
	require.Equal(t, `set-indent line=2 column=4 whitespace="\t"`, act.String())

	e := &recorder{text: "a\n\tb"}
	act.ApplyTo(e)
	require.Equal(t, "a\n\tb", e.text)
}

func TestInsertApplyPastEnd(t *testing.T) {
	require.Equal(t, "ab\n", Insert{Pos: 10, Text: "\n"}.Apply("ab"))
	require.Equal(t, "\nab", Insert{Pos: -1, Text: "\n"}.Apply("ab"))
}

func TestResultString(t *testing.T) {
	r := Result{Line: 3, Depth: 1, Candidate: 2, Column: 0, Dedented: true}
	require.Equal(t, "line=3 depth=1 candidate=2 column=0 dedented=true", r.String())
}
