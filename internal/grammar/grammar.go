// Package grammar defines the contract shared by the highlighting adapters.
//
// An adapter maps the whole buffer text to a set of spans. Every call is a
// full pass over the text; adapters keep no per-buffer state between calls.
package grammar

import (
	"context"
	"errors"

	"facet/internal/span"
)

var (
	// ErrParse reports malformed input. The pass produced no spans.
	ErrParse = errors.New("parse failure")
	// ErrUnavailable reports that the backing grammar support could not be
	// loaded. The adapter degrades to no highlighting.
	ErrUnavailable = errors.New("grammar unavailable")
)

// Adapter produces highlight spans for one language.
type Adapter interface {
	Name() string
	Highlight(ctx context.Context, text string) ([]span.Span, error)
}

// None is the adapter of modes without highlighting.
type None struct{}

func (None) Name() string { return "none" }

func (None) Highlight(context.Context, string) ([]span.Span, error) {
	return nil, nil
}
