// Package lang is the catalog of built-in languages: the file extensions,
// exact file names and shebang interpreters each one claims.
package lang

import (
	"path/filepath"
	"sort"
	"strings"
)

type ID string

const (
	Plain      ID = "fundamental"
	Go         ID = "go"
	Rust       ID = "rust"
	Python     ID = "python"
	Ruby       ID = "ruby"
	Lua        ID = "lua"
	JavaScript ID = "javascript"
	TypeScript ID = "typescript"
	TSX        ID = "tsx"
	YAML       ID = "yaml"
	TOML       ID = "toml"
	JSON       ID = "json"
	Bash       ID = "bash"
	C          ID = "c"
	CPP        ID = "cpp"
	Julia      ID = "julia"
	Markdown   ID = "markdown"
)

var extMap = map[string]ID{
	".go":    Go,
	".rs":    Rust,
	".py":    Python,
	".pyi":   Python,
	".rb":    Ruby,
	".rake":  Ruby,
	".lua":   Lua,
	".js":    JavaScript,
	".jsx":   JavaScript,
	".mjs":   JavaScript,
	".cjs":   JavaScript,
	".ts":    TypeScript,
	".mts":   TypeScript,
	".tsx":   TSX,
	".yaml":  YAML,
	".yml":   YAML,
	".toml":  TOML,
	".json":  JSON,
	".sh":    Bash,
	".bash":  Bash,
	".zsh":   Bash,
	".c":     C,
	".h":     C,
	".cpp":   CPP,
	".cc":    CPP,
	".cxx":   CPP,
	".hpp":   CPP,
	".hh":    CPP,
	".jl":    Julia,
	".md":    Markdown,
	".mdown": Markdown,

	".txt":  Plain,
	".ini":  Plain,
	".conf": Plain,
}

var fileMap = map[string]ID{
	"Makefile":          Plain,
	"Dockerfile":        Plain,
	".bashrc":           Bash,
	".zshrc":            Bash,
	".bash_profile":     Bash,
	"Gemfile":           Ruby,
	"Rakefile":          Ruby,
	".gitignore":        Plain,
	".editorconfig":     Plain,
	"Cargo.toml":        TOML,
	"Cargo.lock":        TOML,
	"Pipfile":           TOML,
	"package-lock.json": JSON,
	"go.mod":            Plain,
	"go.sum":            Plain,
	"README":            Markdown,
}

var interpMap = map[string]ID{
	"python": Python,
	"ruby":   Ruby,
	"lua":    Lua,
	"luajit": Lua,
	"node":   JavaScript,
	"deno":   TypeScript,
	"bash":   Bash,
	"sh":     Bash,
	"zsh":    Bash,
	"dash":   Bash,
	"julia":  Julia,
}

// All returns every built-in ID, sorted.
func All() []ID {
	seen := map[ID]bool{Plain: true}
	for _, id := range extMap {
		seen[id] = true
	}
	for _, id := range fileMap {
		seen[id] = true
	}
	out := make([]ID, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Extensions returns the extensions claimed by id, sorted.
func Extensions(id ID) []string {
	return keysOf(extMap, id)
}

// Files returns the exact base names claimed by id, sorted.
func Files(id ID) []string {
	return keysOf(fileMap, id)
}

// Interpreters returns the shebang interpreters claimed by id, sorted.
func Interpreters(id ID) []string {
	return keysOf(interpMap, id)
}

func keysOf(m map[string]ID, id ID) []string {
	var out []string
	for k, v := range m {
		if v == id {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Detect maps a path to its built-in language without consulting a mode
// registry.
func Detect(path string) ID {
	base := filepath.Base(path)
	if id, ok := fileMap[base]; ok {
		return id
	}
	ext := strings.ToLower(filepath.Ext(base))
	if id, ok := extMap[ext]; ok {
		return id
	}
	return Plain
}
