// Package mode binds file names to major modes and drives a buffer's
// highlighting lifecycle.
package mode

import (
	"context"
	"errors"

	"facet/internal/grammar"
	"facet/internal/indent"
)

// ErrHookFailure wraps an error or panic raised by a mode hook. It is
// logged and never returned to the host.
var ErrHookFailure = errors.New("mode hook failed")

// Fundamental is the name of the fallback mode.
const Fundamental = "fundamental"

// Hook runs when a buffer is activated in a mode.
type Hook func(ctx context.Context, s *Session) error

// ChangeHook runs after a buffer edit, before the re-highlight.
type ChangeHook func(ctx context.Context, s *Session, ch Change) error

// Change describes one edit in character offsets: [Start, OldEnd) was
// replaced by text now spanning [Start, NewEnd).
type Change struct {
	Start  int
	OldEnd int
	NewEnd int
}

// Properties are display settings applied on activation.
type Properties struct {
	ShowGutter bool
}

// Mode is a named bundle of a highlighter, an indenter and lifecycle hooks.
type Mode struct {
	Name       string
	Extensions []string
	// Files are exact base names bound to the mode, like "Makefile".
	Files []string
	// Interpreters are shebang interpreter names, like "python3".
	Interpreters []string

	Init        Hook
	AfterChange ChangeHook
	Properties  Properties

	Highlighter grammar.Adapter
	Indenter    indent.Indenter
}

func (m *Mode) highlighter() grammar.Adapter {
	if m.Highlighter == nil {
		return grammar.None{}
	}
	return m.Highlighter
}

func (m *Mode) indenter() indent.Indenter {
	if m.Indenter == nil {
		return indent.Keep{}
	}
	return m.Indenter
}

func fundamental() *Mode {
	return &Mode{Name: Fundamental, Highlighter: grammar.None{}, Indenter: indent.Keep{}}
}
