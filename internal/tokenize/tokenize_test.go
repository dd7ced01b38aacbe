package tokenize

import (
	"context"
	"strings"
	"testing"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"facet/internal/face"
	"facet/internal/grammar"
	"facet/internal/span"
)

func bracketTokens(text string) []Token {
	var out []Token
	for i, r := range []rune(text) {
		kind := Identifier
		if isBracket(r) {
			kind = Bracket
		}
		out = append(out, Token{Start: i, End: i + 1, Kind: kind, Value: string(r)})
	}
	return out
}

func TestRainbowPairsShareColor(t *testing.T) {
	palette := face.RainbowPalette(6)
	got := Rainbow{Palette: palette}.Color(bracketTokens("a(b(c)d)e"))

	want := []span.Span{
		{Start: 1, End: 2, Face: palette[0]},
		{Start: 3, End: 4, Face: palette[1]},
		{Start: 5, End: 6, Face: palette[1]},
		{Start: 7, End: 8, Face: palette[0]},
	}
	require.Equal(t, want, got)
}

func TestRainbowFamiliesAreIndependent(t *testing.T) {
	palette := []string{"p0", "p1", "p2"}
	got := Rainbow{Palette: palette}.Color(bracketTokens("([{}])"))
	faces := make([]string, len(got))
	for i, sp := range got {
		faces[i] = sp.Face
	}
	require.Equal(t, []string{"p0", "p0", "p0", "p0", "p0", "p0"}, faces)
}

func TestRainbowUnmatchedCloserClampsAtZero(t *testing.T) {
	palette := []string{"p0", "p1"}
	got := Rainbow{Palette: palette}.Color(bracketTokens("))()"))
	faces := make([]string, len(got))
	for i, sp := range got {
		faces[i] = sp.Face
	}
	require.Equal(t, []string{"p0", "p0", "p0", "p0"}, faces)
}

func TestRainbowCyclesPalette(t *testing.T) {
	palette := []string{"p0", "p1"}
	got := Rainbow{Palette: palette}.Color(bracketTokens("((()))"))
	faces := make([]string, len(got))
	for i, sp := range got {
		faces[i] = sp.Face
	}
	require.Equal(t, []string{"p0", "p1", "p0", "p0", "p1", "p0"}, faces)
}

func TestProperty_RainbowMatchedPairsShareColor(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var b strings.Builder
		var stack []rune
		steps := rapid.IntRange(0, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if len(stack) > 0 && rapid.Bool().Draw(rt, "close") {
				open := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				b.WriteRune(map[rune]rune{'(': ')', '[': ']', '{': '}'}[open])
				continue
			}
			open := rapid.SampledFrom([]rune{'(', '[', '{'}).Draw(rt, "open")
			stack = append(stack, open)
			b.WriteRune(open)
		}
		for len(stack) > 0 {
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			b.WriteRune(map[rune]rune{'(': ')', '[': ']', '{': '}'}[open])
		}

		text := b.String()
		spans := Rainbow{Palette: face.RainbowPalette(4)}.Color(bracketTokens(text))
		runes := []rune(text)
		var openers []span.Span
		for _, sp := range spans {
			r := runes[sp.Start]
			if r == '(' || r == '[' || r == '{' {
				openers = append(openers, sp)
				continue
			}
			opener := openers[len(openers)-1]
			openers = openers[:len(openers)-1]
			require.Equal(rt, opener.Face, sp.Face, "pair at %d/%d in %q", opener.Start, sp.Start, text)
		}
	})
}

func TestSplitBrackets(t *testing.T) {
	got := splitBrackets(nil, "){.", 10, Punctuation)
	require.Equal(t, []Token{
		{Start: 10, End: 11, Kind: Bracket, Value: ")"},
		{Start: 11, End: 12, Kind: Bracket, Value: "{"},
		{Start: 12, End: 13, Kind: Punctuation, Value: "."},
	}, got)

	got = splitBrackets(nil, ":=", 0, Operator)
	require.Equal(t, []Token{{Start: 0, End: 2, Kind: Operator, Value: ":="}}, got)
}

func TestClassify(t *testing.T) {
	tests := map[chroma.TokenType]Kind{
		chroma.Keyword:            Keyword,
		chroma.KeywordDeclaration: Keyword,
		chroma.KeywordConstant:    Constant,
		chroma.LiteralString:      String,
		chroma.LiteralStringChar:  String,
		chroma.LiteralNumberFloat: Number,
		chroma.CommentSingle:      Comment,
		chroma.CommentPreproc:     MacroPrefix,
		chroma.NameDecorator:      MacroPrefix,
		chroma.Operator:           Operator,
		chroma.OperatorWord:       Keyword,
		chroma.Punctuation:        Punctuation,
		chroma.Name:               Identifier,
		chroma.Text:               Text,
	}
	for tt, want := range tests {
		require.Equal(t, want, classify(tt), tt.String())
	}
}

func TestKindFaceTable(t *testing.T) {
	require.Equal(t, "", DefaultFaces.Face(Identifier))
	require.Equal(t, face.Keyword, DefaultFaces.Face(Keyword))
	require.Equal(t, "", DefaultFaces.Face(Kind(99)))
	require.Equal(t, "keyword", Keyword.String())
}

func TestAdapterHighlightsGo(t *testing.T) {
	a := New(Config{Lexer: "go", Palette: face.RainbowPalette(6)})
	text := "func f() { // note\n\treturn\n}"
	spans, err := a.Highlight(context.Background(), text)
	require.NoError(t, err)

	faceAt := func(needle string) []string {
		start := strings.Index(text, needle)
		var faces []string
		for _, sp := range spans {
			if sp.Start == start && sp.End == start+len(needle) {
				faces = append(faces, sp.Face)
			}
		}
		return faces
	}
	require.Contains(t, faceAt("func"), face.Keyword)
	require.Contains(t, faceAt("return"), face.Keyword)
	require.Contains(t, faceAt("// note"), face.Comment)

	var rainbow []span.Span
	for _, sp := range spans {
		if strings.HasPrefix(sp.Face, "rainbow-") {
			rainbow = append(rainbow, sp)
		}
		require.LessOrEqual(t, sp.End, len(text))
	}
	require.Len(t, rainbow, 4)
	require.Equal(t, rainbow[0].Face, rainbow[1].Face, "( and ) share a color")
	require.Equal(t, rainbow[2].Face, rainbow[3].Face, "{ and } share a color")
}

func TestAdapterBracketPairingThroughLexer(t *testing.T) {
	palette := face.RainbowPalette(6)
	a := New(Config{Lexer: "go", Palette: palette})
	spans, err := a.Highlight(context.Background(), "a(b(c)d)e")
	require.NoError(t, err)

	got := map[int]string{}
	for _, sp := range spans {
		if strings.HasPrefix(sp.Face, "rainbow-") {
			got[sp.Start] = sp.Face
		}
	}
	require.Equal(t, map[int]string{1: palette[0], 3: palette[1], 5: palette[1], 7: palette[0]}, got)
}

func TestAdapterWithoutPaletteUsesBracketFace(t *testing.T) {
	a := New(Config{Lexer: "go"})
	spans, err := a.Highlight(context.Background(), "f()")
	require.NoError(t, err)
	for _, sp := range spans {
		require.NotContains(t, sp.Face, "rainbow")
	}
}

func TestAdapterUnknownLexer(t *testing.T) {
	a := New(Config{Lexer: "definitely-not-a-lexer"})
	spans, err := a.Highlight(context.Background(), "x")
	require.ErrorIs(t, err, grammar.ErrUnavailable)
	require.Empty(t, spans)
}

func TestTokensCoverMultibyteText(t *testing.T) {
	a := New(Config{Lexer: "go"})
	text := `s := "héllo"`
	tokens, err := a.Tokens(context.Background(), text)
	require.NoError(t, err)
	require.NotEmpty(t, tokens)
	last := tokens[len(tokens)-1]
	require.Equal(t, len([]rune(text)), last.End)
}
