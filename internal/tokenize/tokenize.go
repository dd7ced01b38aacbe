// Package tokenize highlights text from a flat token stream produced by a
// chroma lexer, with rainbow coloring for brackets.
package tokenize

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	chroma "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"go.uber.org/zap"

	"facet/internal/grammar"
	"facet/internal/logger"
	"facet/internal/span"
)

// Token is a lexeme with its character range.
type Token struct {
	Start int
	End   int
	Kind  Kind
	Value string
}

// Config describes a tokenizing adapter.
type Config struct {
	// Lexer is a chroma lexer name or alias ("go", "julia", "clojure").
	Lexer string
	// Faces overrides DefaultFaces.
	Faces *FaceTable
	// Palette enables rainbow brackets when non-empty.
	Palette []string
}

// Adapter is a grammar.Adapter backed by a chroma lexer.
type Adapter struct {
	name    string
	faces   FaceTable
	rainbow Rainbow
	lexer   *grammar.Probe[chroma.Lexer]

	mu sync.Mutex
}

// New returns an adapter. The lexer is resolved on first use.
func New(cfg Config) *Adapter {
	faces := DefaultFaces
	if cfg.Faces != nil {
		faces = *cfg.Faces
	}
	name := cfg.Lexer
	return &Adapter{
		name:    "tokens:" + name,
		faces:   faces,
		rainbow: Rainbow{Palette: append([]string(nil), cfg.Palette...)},
		lexer: grammar.NewProbe("chroma/"+name, func() (chroma.Lexer, error) {
			l := lexers.Get(name)
			if l == nil {
				return nil, fmt.Errorf("no chroma lexer named %q", name)
			}
			return chroma.Coalesce(l), nil
		}),
	}
}

func (a *Adapter) Name() string { return a.name }

// Tokens lexes the whole text. Bracket characters are split out of
// punctuation and operator tokens so each one is its own token.
func (a *Adapter) Tokens(ctx context.Context, text string) ([]Token, error) {
	lexer, err := a.lexer.Get(ctx)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	raw, err := chroma.Tokenise(lexer, &chroma.TokeniseOptions{State: "root"}, text)
	a.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", grammar.ErrParse, a.name, err)
	}

	limit := utf8.RuneCountInString(text)
	tokens := make([]Token, 0, len(raw))
	pos := 0
	for _, tok := range raw {
		if tok.Type == chroma.EOFType || pos >= limit {
			break
		}
		kind := classify(tok.Type)
		n := utf8.RuneCountInString(tok.Value)
		if kind == Operator || kind == Punctuation {
			tokens = splitBrackets(tokens, tok.Value, pos, kind)
		} else {
			tokens = append(tokens, Token{Start: pos, End: pos + n, Kind: kind, Value: tok.Value})
		}
		pos += n
	}

	return clip(tokens, limit), nil
}

// Highlight maps tokens to faces. Tokenizer failures yield no spans; the
// error is logged and returned for callers that care.
func (a *Adapter) Highlight(ctx context.Context, text string) ([]span.Span, error) {
	tokens, err := a.Tokens(ctx, text)
	if err != nil {
		logger.L(ctx).Debug("tokenize failed", zap.String("adapter", a.name), zap.Error(err))
		return nil, err
	}

	spans := make([]span.Span, 0, len(tokens))
	useRainbow := len(a.rainbow.Palette) > 0
	for _, tok := range tokens {
		if tok.Kind == Bracket && useRainbow {
			continue
		}
		name := a.faces.Face(tok.Kind)
		if name == "" || tok.Start >= tok.End {
			continue
		}
		spans = append(spans, span.Span{Start: tok.Start, End: tok.End, Face: name})
	}
	if useRainbow {
		spans = append(spans, a.rainbow.Color(tokens)...)
	}
	return spans, nil
}

func splitBrackets(tokens []Token, value string, pos int, kind Kind) []Token {
	runStart := pos
	var run []rune
	flush := func(at int) {
		if len(run) > 0 {
			tokens = append(tokens, Token{Start: runStart, End: at, Kind: kind, Value: string(run)})
			run = run[:0]
		}
	}

	at := pos
	for _, r := range value {
		if isBracket(r) {
			flush(at)
			tokens = append(tokens, Token{Start: at, End: at + 1, Kind: Bracket, Value: string(r)})
			runStart = at + 1
		} else {
			if len(run) == 0 {
				runStart = at
			}
			run = append(run, r)
		}
		at++
	}
	flush(at)
	return tokens
}

// clip drops the newline chroma appends to unterminated input.
func clip(tokens []Token, limit int) []Token {
	out := tokens[:0]
	for _, tok := range tokens {
		if tok.Start >= limit {
			break
		}
		if tok.End > limit {
			tok.End = limit
			tok.Value = string([]rune(tok.Value)[:limit-tok.Start])
		}
		out = append(out, tok)
	}
	return out
}
