// Package treesit highlights text from a tree-sitter parse and answers the
// nesting-depth queries the indentation calculator is built on.
package treesit

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"go.uber.org/zap"

	"facet/internal/grammar"
	"facet/internal/logger"
	"facet/internal/span"
)

// Adapter is a grammar.Adapter backed by one tree-sitter grammar. The
// parser is built on first use and shared by every buffer of the mode, so
// parses are serialized.
type Adapter struct {
	lang  *Language
	probe *grammar.Probe[*sitter.Language]

	mu     sync.Mutex
	parser *sitter.Parser
}

// New returns an adapter for lang.
func New(lang *Language) *Adapter {
	return &Adapter{
		lang: lang,
		probe: grammar.NewProbe("tree-sitter/"+lang.Name, func() (*sitter.Language, error) {
			if lang.load == nil {
				return nil, errors.New("no grammar linked")
			}
			l := lang.load()
			if l == nil {
				return nil, errors.New("grammar returned nil")
			}
			return l, nil
		}),
	}
}

// ForName returns an adapter for the built-in grammar called name.
func ForName(name string) (*Adapter, error) {
	lang, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: no tree-sitter grammar %q", grammar.ErrUnavailable, name)
	}
	return New(lang), nil
}

func (a *Adapter) Name() string { return "tree:" + a.lang.Name }

// Language returns the adapter's grammar description.
func (a *Adapter) Language() *Language { return a.lang }

// Parse parses the whole text. The caller closes the returned tree.
func (a *Adapter) Parse(ctx context.Context, text string) (*Tree, error) {
	language, err := a.probe.Get(ctx)
	if err != nil {
		return nil, err
	}

	src := []byte(text)

	a.mu.Lock()
	if a.parser == nil {
		a.parser = sitter.NewParser()
		a.parser.SetLanguage(language)
	}
	tree, err := a.parser.ParseCtx(ctx, nil, src)
	a.mu.Unlock()

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", grammar.ErrParse, a.lang.Name, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("%w: %s: no tree", grammar.ErrParse, a.lang.Name)
	}
	root := tree.RootNode()
	switch {
	case root == nil:
		tree.Close()
		return nil, fmt.Errorf("%w: %s: no root", grammar.ErrParse, a.lang.Name)
	case NodeKind(root.Type()) == kindError:
		tree.Close()
		return nil, fmt.Errorf("%w: %s: nothing recovered", grammar.ErrParse, a.lang.Name)
	case a.lang.Strict && root.HasError():
		tree.Close()
		return nil, fmt.Errorf("%w: %s: syntax error", grammar.ErrParse, a.lang.Name)
	}

	return &Tree{
		lang:    a.lang,
		tree:    tree,
		root:    root,
		src:     src,
		offsets: grammar.NewOffsets(text),
	}, nil
}

// Highlight classifies every leaf of the parse. A failed parse yields no
// spans.
func (a *Adapter) Highlight(ctx context.Context, text string) ([]span.Span, error) {
	if text == "" {
		return nil, nil
	}
	tree, err := a.Parse(ctx, text)
	if err != nil {
		logger.L(ctx).Debug("parse failed", zap.String("adapter", a.Name()), zap.Error(err))
		return nil, err
	}
	defer tree.Close()

	leaves := make([]leaf, 0, 64)
	collectLeaves(tree.root, tree.src, a.lang, "", "", &leaves)

	spans := make([]span.Span, 0, len(leaves))
	for _, l := range leaves {
		start := tree.offsets.ByteToChar(l.start)
		end := tree.offsets.ByteToChar(l.end)
		if end <= start {
			continue
		}
		spans = append(spans, span.Span{Start: start, End: end, Face: l.face})
	}
	return spans, nil
}

// Depth parses text and returns the nesting depth at byte offset pos.
func (a *Adapter) Depth(ctx context.Context, text string, pos int) (int, error) {
	tree, err := a.Parse(ctx, text)
	if err != nil {
		return 0, err
	}
	defer tree.Close()
	return tree.Depth(pos), nil
}
