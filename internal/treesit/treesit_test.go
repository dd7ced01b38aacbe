package treesit

import (
	"context"
	"strings"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/require"

	"facet/internal/face"
	"facet/internal/grammar"
	"facet/internal/span"
)

func mustAdapter(t *testing.T, name string) *Adapter {
	t.Helper()
	a, err := ForName(name)
	require.NoError(t, err)
	return a
}

func lineDepths(t *testing.T, a *Adapter, text string) []int {
	t.Helper()
	tree, err := a.Parse(context.Background(), text)
	require.NoError(t, err)
	defer tree.Close()

	depths := make([]int, tree.Offsets().LineCount())
	for i := range depths {
		depths[i] = tree.LineDepth(i)
	}
	return depths
}

func TestRubyIfBlock(t *testing.T) {
	a := mustAdapter(t, "ruby")
	require.Equal(t, []int{0, 1, 1}, lineDepths(t, a, "if x\n  y\nend"))
}

func TestRubyNestedMethod(t *testing.T) {
	a := mustAdapter(t, "ruby")
	text := "class A\n  def f\n    1\n  end\nend"
	require.Equal(t, []int{0, 1, 2, 2, 1}, lineDepths(t, a, text))
}

func TestLuaFunctionBody(t *testing.T) {
	a := mustAdapter(t, "lua")
	require.Equal(t, []int{0, 1, 1}, lineDepths(t, a, "function f()\n  x()\nend"))
	require.Equal(t, []int{0, 1, 2, 2, 1}, lineDepths(t, a, "local g = function()\n  if y then\n    z()\n  end\nend"))
}

func TestLuaTableConstructor(t *testing.T) {
	a := mustAdapter(t, "lua")
	require.Equal(t, []int{0, 1, 1}, lineDepths(t, a, "local t = {\n  1,\n}"))
}

// Every kind named in a classification table must be a symbol of the
// linked grammar, otherwise the entry can never match.
func TestTableKindsExistInGrammar(t *testing.T) {
	for _, name := range Languages() {
		t.Run(name, func(t *testing.T) {
			lang, ok := Lookup(name)
			require.True(t, ok)
			tsl := lang.load()
			require.NotNil(t, tsl)

			symbols := make(map[string]bool)
			for i := uint32(0); i < tsl.SymbolCount(); i++ {
				symbols[tsl.SymbolName(sitter.Symbol(i))] = true
			}

			tables := map[string][]NodeKind{
				"class":            mapKeys(lang.Classes),
				"comment":          setKeys(lang.Comments),
				"function context": setKeys(lang.FunctionContext),
				"type context":     setKeys(lang.TypeContext),
			}
			for table, ks := range tables {
				for _, k := range ks {
					require.True(t, symbols[string(k)], "%s kind %q not in %s grammar", table, k, name)
				}
			}
		})
	}
}

func mapKeys(c Classes) []NodeKind {
	out := make([]NodeKind, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	return out
}

func setKeys(s KindSet) []NodeKind {
	out := make([]NodeKind, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	return out
}

func TestGoBlocks(t *testing.T) {
	a := mustAdapter(t, "go")
	text := strings.Join([]string{
		"package p",
		"",
		"func f() {",
		"\tif ok {",
		"\t\ty()",
		"\t}",
		"}",
	}, "\n")
	require.Equal(t, []int{0, 0, 0, 1, 2, 2, 1}, lineDepths(t, a, text))
}

func TestGoContinuationCountsStartLineOnce(t *testing.T) {
	a := mustAdapter(t, "go")
	text := strings.Join([]string{
		"package p",
		"",
		"func g() {",
		"\tx := f(",
		"\t\ta,",
		"\t\tb)",
		"}",
	}, "\n")
	depths := lineDepths(t, a, text)
	require.Equal(t, 2, depths[4])
	require.Equal(t, 2, depths[5])
}

func TestGoSingleLineContinuationDoesNotIndent(t *testing.T) {
	a := mustAdapter(t, "go")
	text := "package p\n\nfunc g() {\n\tx := f(a, b)\n\ty()\n}"
	require.Equal(t, 1, lineDepths(t, a, text)[4])
}

func TestJSONObjectDepth(t *testing.T) {
	a := mustAdapter(t, "json")
	text := "{\n  \"a\": [1,\n    2]\n}"
	require.Equal(t, []int{0, 1, 2, 1}, lineDepths(t, a, text))
}

func TestStrictGrammarRejectsErrors(t *testing.T) {
	a := mustAdapter(t, "json")
	_, err := a.Parse(context.Background(), `{"a": }`)
	require.ErrorIs(t, err, grammar.ErrParse)

	spans, err := a.Highlight(context.Background(), `{"a": }`)
	require.ErrorIs(t, err, grammar.ErrParse)
	require.Empty(t, spans)
}

func TestUnknownGrammar(t *testing.T) {
	_, err := ForName("cobol")
	require.ErrorIs(t, err, grammar.ErrUnavailable)
}

func TestLanguagesListsBuiltins(t *testing.T) {
	names := Languages()
	for _, want := range []string{"go", "python", "ruby", "rust", "json", "yaml", "toml", "bash", "c", "cpp", "javascript", "typescript", "tsx", "lua"} {
		require.Contains(t, names, want)
	}
}

func facesAt(spans []span.Span, start, end int) []string {
	var out []string
	for _, sp := range spans {
		if sp.Start == start && sp.End == end {
			out = append(out, sp.Face)
		}
	}
	return out
}

func TestHighlightGo(t *testing.T) {
	a := mustAdapter(t, "go")
	text := "package main\n\n// hi\nfunc main() {\n\treturn\n}"
	spans, err := a.Highlight(context.Background(), text)
	require.NoError(t, err)

	at := func(needle string) []string {
		i := strings.Index(text, needle)
		return facesAt(spans, i, i+len(needle))
	}
	require.Contains(t, at("package"), face.Keyword)
	require.Contains(t, at("func"), face.Keyword)
	require.Contains(t, at("return"), face.Keyword)
	require.Contains(t, at("// hi"), face.Comment)

	fn := strings.Index(text, "main()")
	require.Contains(t, facesAt(spans, fn, fn+4), face.Function)
}

func TestHighlightUsesCharacterOffsets(t *testing.T) {
	a := mustAdapter(t, "go")
	text := "package p\n\nvar s = \"é\"\nvar n = 1"
	spans, err := a.Highlight(context.Background(), text)
	require.NoError(t, err)

	runes := []rune(text)
	str := strings.Index(text, "\"é\"")
	require.Contains(t, facesAt(spans, str, str+3), face.String)
	require.Contains(t, facesAt(spans, len(runes)-1, len(runes)), face.Number)
	for _, sp := range spans {
		require.LessOrEqual(t, sp.End, len(runes))
	}
}

func TestHighlightJSONKeys(t *testing.T) {
	a := mustAdapter(t, "json")
	text := `{"a": "b"}`
	spans, err := a.Highlight(context.Background(), text)
	require.NoError(t, err)
	require.Contains(t, facesAt(spans, 1, 4), face.Type)
	require.Contains(t, facesAt(spans, 6, 9), face.String)
}

func TestHighlightEmpty(t *testing.T) {
	spans, err := mustAdapter(t, "go").Highlight(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, spans)
}

func TestClassString(t *testing.T) {
	require.Equal(t, "block", Block.String())
	require.Equal(t, "continuation", Continuation.String())
	require.Equal(t, "neutral", Neutral.String())
	require.Equal(t, Neutral, Classes{}.Of("anything"))
}

func TestDepthSharesAdapterAcrossCalls(t *testing.T) {
	a := mustAdapter(t, "ruby")
	for i := 0; i < 3; i++ {
		d, err := a.Depth(context.Background(), "if x\n  y\nend", 5)
		require.NoError(t, err)
		require.Equal(t, 1, d)
	}
}
