package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestLoad_NoFileGivesDefaults(t *testing.T) {
	isolate(t)
	cfg, used, err := Load(viper.New(), "")
	require.NoError(t, err)
	require.Empty(t, used)
	require.Equal(t, Defaults(), cfg)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "facet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
theme: monokai
overlap: layered
modes:
  ruby:
    indent_unit: 3
    show_gutter: true
    dedent: [end, else]
  cue:
    highlighter: tokens
    grammar: go
    extensions: [.cue]
`), 0o600))

	cfg, used, err := Load(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, path, used)
	require.Equal(t, "monokai", cfg.Theme)
	require.Equal(t, OverlapLayered, cfg.Overlap)
	require.Equal(t, 6, cfg.RainbowSize, "unset keys keep their default")

	ruby := cfg.Modes["ruby"]
	require.Equal(t, 3, ruby.IndentUnit)
	require.NotNil(t, ruby.ShowGutter)
	require.True(t, *ruby.ShowGutter)
	require.Equal(t, []string{"end", "else"}, ruby.Dedent)
	require.Equal(t, ModeConfig{Highlighter: HighlighterTokens, Grammar: "go", Extensions: []string{".cue"}}, cfg.Modes["cue"])
}

func TestLoad_SearchPath(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, WriteDefault(filepath.Join(dir, ".facet", "config.yaml")))

	cfg, used, err := Load(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(".facet", "config.yaml"), used)
	require.Equal(t, Defaults(), cfg)
}

func TestLoad_EnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv("FACET_THEME", "dracula")
	cfg, _, err := Load(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, "dracula", cfg.Theme)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, _, err := Load(viper.New(), filepath.Join(dir, "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidOverlap(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("overlap: sideways\n"), 0o600))
	_, _, err := Load(viper.New(), path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "sideways")
}

func TestValidate(t *testing.T) {
	require.NoError(t, Defaults().Validate())

	cfg := Defaults()
	cfg.Modes = map[string]ModeConfig{"x": {Highlighter: "magic"}}
	require.ErrorContains(t, cfg.Validate(), "modes.x.highlighter")

	cfg.Modes = map[string]ModeConfig{"x": {IndentUnit: -1}}
	require.ErrorContains(t, cfg.Validate(), "indent_unit")

	cfg = Defaults()
	cfg.RainbowSize = -1
	require.Error(t, cfg.Validate())
}

func TestWriteDefault(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "sub", "config.yaml")
	require.NoError(t, WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# facet configuration")
	require.Contains(t, string(data), "overlap: last-wins")

	require.Error(t, WriteDefault(path), "existing files are kept")
}
