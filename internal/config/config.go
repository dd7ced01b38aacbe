// Package config provides configuration types, defaults and persistence for
// facet.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides: FACET_THEME, FACET_DEBUG, ...
const EnvPrefix = "FACET"

// Overlap policies accepted by the overlap key.
const (
	OverlapLastWins  = "last-wins"
	OverlapFirstWins = "first-wins"
	OverlapLayered   = "layered"
)

// Highlighter kinds accepted by modes.<name>.highlighter.
const (
	HighlighterTree    = "tree"
	HighlighterTokens  = "tokens"
	HighlighterPattern = "pattern"
	HighlighterNone    = "none"
)

// Config is the full facet configuration.
type Config struct {
	Theme       string                `mapstructure:"theme" yaml:"theme"`
	DefaultMode string                `mapstructure:"default_mode" yaml:"default_mode"`
	Overlap     string                `mapstructure:"overlap" yaml:"overlap"`
	RainbowSize int                   `mapstructure:"rainbow_size" yaml:"rainbow_size"`
	TabWidth    int                   `mapstructure:"tab_width" yaml:"tab_width"`
	Debug       bool                  `mapstructure:"debug" yaml:"debug"`
	LogFile     string                `mapstructure:"log_file" yaml:"log_file,omitempty"`
	Modes       map[string]ModeConfig `mapstructure:"modes" yaml:"modes,omitempty"`
}

// ModeConfig overrides a built-in mode or defines one from an existing
// grammar. Zero fields keep the built-in value.
type ModeConfig struct {
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`
	IndentUnit int      `mapstructure:"indent_unit" yaml:"indent_unit,omitempty"`
	Dedent     []string `mapstructure:"dedent" yaml:"dedent,omitempty"`
	ShowGutter *bool    `mapstructure:"show_gutter" yaml:"show_gutter,omitempty"`
	// Highlighter is one of tree, tokens, pattern or none.
	Highlighter string `mapstructure:"highlighter" yaml:"highlighter,omitempty"`
	// Grammar names the tree-sitter grammar or chroma lexer; it defaults to
	// the mode name.
	Grammar string `mapstructure:"grammar" yaml:"grammar,omitempty"`
}

// Defaults returns a Config with the built-in values.
func Defaults() Config {
	return Config{
		Theme:       "",
		DefaultMode: "fundamental",
		Overlap:     OverlapLastWins,
		RainbowSize: 6,
		TabWidth:    4,
	}
}

// SetDefaults registers the default values with v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("theme", d.Theme)
	v.SetDefault("default_mode", d.DefaultMode)
	v.SetDefault("overlap", d.Overlap)
	v.SetDefault("rainbow_size", d.RainbowSize)
	v.SetDefault("tab_width", d.TabWidth)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_file", d.LogFile)
}

// SearchPaths returns the config files tried in order when no explicit path
// is given.
func SearchPaths() []string {
	paths := []string{filepath.Join(".facet", "config.yaml")}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "facet", "config.yaml"))
	}
	return paths
}

// Load reads the config into v. An explicit path must exist; otherwise the
// first existing search path is used, and no file at all yields the
// defaults. It returns the file used, or "".
func Load(v *viper.Viper, path string) (Config, string, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		for _, p := range SearchPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Defaults(), "", fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Defaults(), path, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, path, err
	}
	return cfg, path, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Overlap {
	case "", OverlapLastWins, OverlapFirstWins, OverlapLayered:
	default:
		return fmt.Errorf("overlap: unknown policy %q", c.Overlap)
	}
	if c.RainbowSize < 0 {
		return errors.New("rainbow_size: must not be negative")
	}
	if c.TabWidth < 0 {
		return errors.New("tab_width: must not be negative")
	}
	for name, m := range c.Modes {
		if strings.TrimSpace(name) == "" {
			return errors.New("modes: empty mode name")
		}
		switch m.Highlighter {
		case "", HighlighterTree, HighlighterTokens, HighlighterPattern, HighlighterNone:
		default:
			return fmt.Errorf("modes.%s.highlighter: unknown kind %q", name, m.Highlighter)
		}
		if m.IndentUnit < 0 {
			return fmt.Errorf("modes.%s.indent_unit: must not be negative", name)
		}
	}
	return nil
}

// Marshal returns cfg as YAML.
func Marshal(cfg Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	return string(data), nil
}

// DefaultTemplate returns the default config as YAML with a comment header.
func DefaultTemplate() (string, error) {
	data, err := Marshal(Defaults())
	if err != nil {
		return "", err
	}
	const header = `# facet configuration
#
# Mode overrides, for example:
# modes:
#   ruby:
#     indent_unit: 2
#     show_gutter: true
#   cue:
#     highlighter: tokens
#     grammar: go
#     extensions: [.cue]

`
	return header + data, nil
}

// WriteDefault creates a config file at path with the defaults, creating
// its parent directory. An existing file is left alone.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	tmpl, err := DefaultTemplate()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(tmpl), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
