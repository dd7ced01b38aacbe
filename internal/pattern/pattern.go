// Package pattern highlights text with an ordered list of regular
// expression rules, excluding fenced regions from every rule but the fence's
// own.
package pattern

import (
	"context"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"

	"facet/internal/grammar"
	"facet/internal/logger"
	"facet/internal/span"
)

// MatchTimeout bounds a single rule match.
const MatchTimeout = 250 * time.Millisecond

// Rule styles every match of Pattern with Face. When Group is non-zero
// only that capture group is styled.
type Rule struct {
	Name    string
	Face    string
	Pattern string
	Group   int
}

type compiled struct {
	Rule
	re *regexp2.Regexp
}

// Adapter is a grammar.Adapter running rules in order. Matches may overlap;
// later rules are emitted after earlier ones.
type Adapter struct {
	name  string
	fence *Fence
	rules []compiled
}

// New compiles rules. Patterns use multiline mode: ^ and $ match at line
// boundaries.
func New(name string, fence *Fence, rules ...Rule) (*Adapter, error) {
	a := &Adapter{name: name, fence: fence, rules: make([]compiled, 0, len(rules))}
	for _, r := range rules {
		re, err := regexp2.Compile(r.Pattern, regexp2.Multiline)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		re.MatchTimeout = MatchTimeout
		a.rules = append(a.rules, compiled{Rule: r, re: re})
	}
	return a, nil
}

// MustNew is New that panics on a bad pattern.
func MustNew(name string, fence *Fence, rules ...Rule) *Adapter {
	a, err := New(name, fence, rules...)
	if err != nil {
		panic(err)
	}
	return a
}

func (a *Adapter) Name() string { return "pattern:" + a.name }

// Fence returns the adapter's fence description, or nil.
func (a *Adapter) Fence() *Fence { return a.fence }

// Rules returns the rule list in priority order.
func (a *Adapter) Rules() []Rule {
	out := make([]Rule, len(a.rules))
	for i, r := range a.rules {
		out[i] = r.Rule
	}
	return out
}

// Highlight computes fenced zones first, emits one span per zone, then runs
// every rule and drops matches starting inside a zone. A rule that fails
// (a match timeout) ends the pass with no spans.
func (a *Adapter) Highlight(ctx context.Context, text string) ([]span.Span, error) {
	if text == "" {
		return nil, nil
	}

	zones := a.fence.Zones(text)
	spans := make([]span.Span, 0, len(zones)+16)
	if a.fence != nil && a.fence.Face != "" {
		for _, z := range zones {
			if z.End > z.Start {
				spans = append(spans, span.Span{Start: z.Start, End: z.End, Face: a.fence.Face})
			}
		}
	}

	for _, r := range a.rules {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var err error
		spans, err = r.collect(text, zones, spans)
		if err != nil {
			err = fmt.Errorf("%w: %s rule %q: %v", grammar.ErrParse, a.name, r.Name, err)
			logger.L(ctx).Debug("pattern pass failed", zap.String("adapter", a.Name()), zap.Error(err))
			return nil, err
		}
	}
	return spans, nil
}

func (r compiled) collect(text string, zones []Zone, out []span.Span) ([]span.Span, error) {
	m, err := r.re.FindStringMatch(text)
	for m != nil {
		if !inZone(zones, m.Index) {
			start, length := m.Index, m.Length
			if r.Group > 0 {
				g := m.GroupByNumber(r.Group)
				if g == nil || len(g.Captures) == 0 {
					start, length = 0, 0
				} else {
					start, length = g.Index, g.Length
				}
			}
			if length > 0 {
				out = append(out, span.Span{Start: start, End: start + length, Face: r.Face})
			}
		}
		m, err = r.re.FindNextMatch(m)
	}
	return out, err
}
