// Package builtin registers the shipped faces and major modes, with the
// overrides from the user's configuration applied.
package builtin

import (
	"fmt"
	"sort"

	"facet/internal/config"
	"facet/internal/face"
	"facet/internal/grammar"
	"facet/internal/indent"
	"facet/internal/lang"
	"facet/internal/mode"
	"facet/internal/pattern"
	"facet/internal/tokenize"
	"facet/internal/treesit"
)

// tokenModes are languages without a linked tree-sitter grammar, highlighted
// from chroma tokens instead.
var tokenModes = []lang.ID{lang.Julia}

// Faces defines the default faces in r, a bracket palette of the configured
// size and then the faces of the configured theme. An empty theme keeps the
// defaults.
func Faces(r *face.Registry, cfg config.Config) (face.Theme, error) {
	face.RegisterDefaults(r)
	face.DefineRainbow(r, cfg.RainbowSize)
	theme := cfg.Theme
	if theme == "" {
		return face.FallbackTheme(), nil
	}
	th, err := face.ApplyTheme(r, theme)
	if err != nil {
		return face.FallbackTheme(), fmt.Errorf("theme %q: %w", theme, err)
	}
	return th, nil
}

// Register registers every built-in mode in r, then the configured modes,
// and sets the default mode.
func Register(r *mode.Registry, cfg config.Config) error {
	modes, err := Modes(cfg)
	if err != nil {
		return err
	}
	for _, m := range modes {
		if err := r.Register(m); err != nil {
			return err
		}
	}
	r.SetDefault(cfg.DefaultMode)
	return nil
}

// Modes returns the built-in modes with cfg applied, sorted by name.
func Modes(cfg config.Config) ([]mode.Mode, error) {
	byName := map[string]mode.Mode{}
	for _, name := range treesit.Languages() {
		m, err := build(name, config.ModeConfig{Highlighter: config.HighlighterTree}, cfg)
		if err != nil {
			return nil, err
		}
		byName[name] = m
	}
	for _, id := range tokenModes {
		m, err := build(string(id), config.ModeConfig{Highlighter: config.HighlighterTokens}, cfg)
		if err != nil {
			return nil, err
		}
		byName[string(id)] = m
	}
	md, err := build(string(lang.Markdown), config.ModeConfig{Highlighter: config.HighlighterPattern}, cfg)
	if err != nil {
		return nil, err
	}
	byName[md.Name] = md
	fund, err := build(mode.Fundamental, config.ModeConfig{Highlighter: config.HighlighterNone}, cfg)
	if err != nil {
		return nil, err
	}
	byName[fund.Name] = fund

	for name, mc := range cfg.Modes {
		base, ok := byName[name]
		if !ok {
			if mc.Highlighter == "" {
				return nil, fmt.Errorf("mode %s: highlighter is required for a new mode", name)
			}
			m, err := build(name, mc, cfg)
			if err != nil {
				return nil, err
			}
			byName[name] = override(m, mc)
			continue
		}
		if mc.Highlighter != "" || mc.Grammar != "" || mc.IndentUnit != 0 || mc.Dedent != nil {
			kind := mc
			if kind.Highlighter == "" {
				kind.Highlighter = builtinKind(base)
			}
			rebuilt, err := build(name, kind, cfg)
			if err != nil {
				return nil, err
			}
			base = rebuilt
		}
		byName[name] = override(base, mc)
	}

	out := make([]mode.Mode, 0, len(byName))
	for _, m := range byName {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func builtinKind(m mode.Mode) string {
	switch m.Highlighter.(type) {
	case *treesit.Adapter:
		return config.HighlighterTree
	case *tokenize.Adapter:
		return config.HighlighterTokens
	case *pattern.Adapter:
		return config.HighlighterPattern
	default:
		return config.HighlighterNone
	}
}

func override(m mode.Mode, mc config.ModeConfig) mode.Mode {
	if len(mc.Extensions) > 0 {
		m.Extensions = append([]string(nil), mc.Extensions...)
	}
	if mc.ShowGutter != nil {
		m.Properties.ShowGutter = *mc.ShowGutter
	}
	return m
}

// build makes the mode called name with the highlighter kind of mc.
func build(name string, mc config.ModeConfig, cfg config.Config) (mode.Mode, error) {
	id := lang.ID(name)
	m := mode.Mode{
		Name:         name,
		Extensions:   lang.Extensions(id),
		Files:        lang.Files(id),
		Interpreters: lang.Interpreters(id),
	}
	gram := mc.Grammar
	if gram == "" {
		gram = name
	}
	keep := indent.Keep{TabWidth: cfg.TabWidth}

	switch mc.Highlighter {
	case config.HighlighterTree:
		a, err := treesit.ForName(gram)
		if err != nil {
			return m, fmt.Errorf("mode %s: %w", name, err)
		}
		calc := indent.ForTree(a)
		if mc.IndentUnit > 0 {
			calc.Unit = mc.IndentUnit
		}
		if mc.Dedent != nil {
			calc.Dedent = append([]string(nil), mc.Dedent...)
		}
		m.Highlighter = a
		m.Indenter = calc
		m.Properties.ShowGutter = true

	case config.HighlighterTokens:
		m.Highlighter = tokenize.New(tokenize.Config{
			Lexer:   gram,
			Palette: face.RainbowPalette(cfg.RainbowSize),
		})
		m.Indenter = keep
		m.Properties.ShowGutter = true

	case config.HighlighterPattern:
		if gram != string(lang.Markdown) {
			return m, fmt.Errorf("mode %s: %w: no pattern set %q", name, grammar.ErrUnavailable, gram)
		}
		fence := pattern.MarkdownFence
		m.Highlighter = pattern.NewMarkdown()
		m.Indenter = pattern.Continuation{Fence: &fence, TabWidth: cfg.TabWidth}

	case config.HighlighterNone:
		m.Highlighter = grammar.None{}
		m.Indenter = keep

	default:
		return m, fmt.Errorf("mode %s: unknown highlighter %q", name, mc.Highlighter)
	}
	return m, nil
}
