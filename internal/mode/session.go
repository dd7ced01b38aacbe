package mode

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"facet/internal/face"
	"facet/internal/indent"
	"facet/internal/logger"
	"facet/internal/span"
)

// Buffer is the host text buffer. Offsets are 0-based characters and ranges
// are end exclusive.
type Buffer interface {
	Content() string
	Line(i int) string
	LineCount() int
	CharCount() int
	Substring(start, end int) string
	Insert(pos int, text string)
	Delete(start, end int)
	MajorModeName() string
	ShowGutter() bool
	SetShowGutter(show bool)
}

// ModeNamer is implemented by buffers that record their bound mode.
type ModeNamer interface {
	SetMajorModeName(name string)
}

// State is a session's place in the highlighting lifecycle.
type State int

const (
	// Unbound sessions have no mode yet.
	Unbound State = iota
	// Ready sessions hold the spans of the current text.
	Ready
	// Stale sessions were edited and await the re-highlight.
	Stale
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Stale:
		return "stale"
	default:
		return "unbound"
	}
}

// Session is one buffer's binding to a mode and its span store. A session
// is used from one goroutine at a time.
type Session struct {
	ID string

	buf   Buffer
	path  string
	mode  string
	bound *Mode
	state State
	spans *span.Store
	faces *face.Registry
	log   *zap.Logger
}

// NewSession returns an unbound session for buf.
func NewSession(buf Buffer, path string) *Session {
	s := &Session{
		ID:    uuid.NewString(),
		buf:   buf,
		path:  path,
		spans: span.NewStore(),
	}
	s.resetLogger()
	return s
}

// resetLogger derives the session logger from the process logger, so
// repeated activations do not stack fields.
func (s *Session) resetLogger(fields ...zap.Field) {
	base := []zap.Field{zap.String("session", s.ID), zap.String("path", s.path)}
	s.log = logger.Root().With(append(base, fields...)...)
}

func (s *Session) Buffer() Buffer     { return s.buf }
func (s *Session) Path() string       { return s.path }
func (s *Session) Mode() string       { return s.mode }
func (s *Session) State() State       { return s.state }
func (s *Session) Spans() *span.Store { return s.spans }

// Logger returns the session logger.
func (s *Session) Logger() *zap.Logger { return s.log }

func (s *Session) ctx(ctx context.Context) context.Context {
	return logger.NewContext(ctx, s.log)
}

// Open resolves the mode of the session's path and activates it. Opening an
// already bound session is the only way to rebind it.
func (r *Registry) Open(ctx context.Context, s *Session) string {
	name := r.ResolveContent(s.path, firstLine(s.buf))
	r.OnBufferActivated(ctx, name, s)
	return name
}

// Reopen is Open for a session whose path changed.
func (r *Registry) Reopen(ctx context.Context, s *Session, path string) string {
	s.path = path
	s.resetLogger()
	return r.Open(ctx, s)
}

func firstLine(b Buffer) string {
	if b == nil || b.LineCount() == 0 {
		return ""
	}
	return b.Line(0)
}

// OnBufferActivated binds s to the mode called name, applies its
// properties, runs its init hook and highlights the buffer.
func (r *Registry) OnBufferActivated(ctx context.Context, name string, s *Session) {
	m := r.Lookup(name)
	s.mode = m.Name
	s.bound = m
	s.faces = r.faceRegistry()
	s.resetLogger(zap.String("mode", m.Name))
	ctx = s.ctx(ctx)

	if n, ok := s.buf.(ModeNamer); ok {
		n.SetMajorModeName(m.Name)
	}
	s.buf.SetShowGutter(m.Properties.ShowGutter)

	if m.Init != nil {
		s.runHook(ctx, "init", func() error { return m.Init(ctx, s) })
	}
	s.rehighlight(ctx, m)
}

// OnBufferChanged marks s stale, shifts its spans over the edit, runs the
// after-change hook and re-highlights the whole buffer. A bound session keeps
// its mode even when name differs.
func (r *Registry) OnBufferChanged(ctx context.Context, name string, s *Session, ch Change) {
	if s.state == Unbound {
		r.OnBufferActivated(ctx, name, s)
		return
	}
	m := s.bound
	ctx = s.ctx(ctx)
	if name != m.Name {
		s.log.Debug("change reported for another mode", zap.String("reported", name))
	}

	s.state = Stale
	if ch.OldEnd > ch.Start {
		s.spans.AdjustForDelete(ch.Start, ch.OldEnd)
	}
	if ch.NewEnd > ch.Start {
		s.spans.AdjustForInsert(ch.Start, ch.NewEnd-ch.Start)
	}

	if m.AfterChange != nil {
		s.runHook(ctx, "after-change", func() error { return m.AfterChange(ctx, s, ch) })
	}
	s.rehighlight(ctx, m)
}

// Rehighlight replaces the session's spans with a full pass of its mode's
// highlighter over the current text. The store is cleared even when the
// pass fails.
func (s *Session) Rehighlight(ctx context.Context) error {
	return s.rehighlight(s.ctx(ctx), s.modeOrFundamental())
}

func (s *Session) modeOrFundamental() *Mode {
	if s.bound == nil {
		return fundamental()
	}
	return s.bound
}

func (s *Session) rehighlight(ctx context.Context, m *Mode) error {
	s.spans.Clear()
	s.state = Ready

	spans, err := m.highlighter().Highlight(ctx, s.buf.Content())
	if err != nil {
		s.log.Debug("highlight pass failed", zap.String("adapter", m.highlighter().Name()), zap.Error(err))
		return err
	}
	known := s.knownFaces(spans)
	if undefined := len(spans) - len(known); undefined > 0 {
		s.log.Debug("dropped spans with undefined faces", zap.Int("dropped", undefined))
	}
	added := s.spans.AddBatch(known)
	if skipped := len(known) - added; skipped > 0 {
		s.log.Debug("skipped invalid spans", zap.Int("skipped", skipped))
	}
	return nil
}

// knownFaces filters spans down to faces defined in the session's face
// registry.
func (s *Session) knownFaces(spans []span.Span) []span.Span {
	if s.faces == nil {
		return spans
	}
	out := spans[:0:0]
	for _, sp := range spans {
		if s.faces.Exists(sp.Face) {
			out = append(out, sp)
		}
	}
	return out
}

func (s *Session) runHook(ctx context.Context, hook string, fn func() error) {
	err := func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("panic: %v", p)
			}
		}()
		return fn()
	}()
	if err != nil {
		err = fmt.Errorf("%w: %s: %v", ErrHookFailure, hook, err)
		logger.L(ctx).Warn("mode hook failed", zap.String("hook", hook), zap.Error(err))
	}
}

// IndentLine computes the indent action for a 1-based line of the buffer.
func (s *Session) IndentLine(ctx context.Context, line int) indent.SetIndent {
	ind := s.modeOrFundamental().indenter()
	return indent.IndentLine(s.ctx(ctx), ind, s.buf.Content(), line)
}

// NewlineAndIndent computes the newline insertion for a cursor position.
func (s *Session) NewlineAndIndent(ctx context.Context, cursor int) indent.Insert {
	ind := s.modeOrFundamental().indenter()
	return indent.NewlineAndIndent(s.ctx(ctx), ind, s.buf.Content(), cursor)
}
