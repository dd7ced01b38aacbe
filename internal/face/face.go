// Package face holds named visual styles and the process-wide face registry.
package face

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Color is either an RGB triple or a named color resolved by the renderer.
type Color struct {
	Name    string
	R, G, B uint8
}

// RGB returns an RGB color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Named returns a color resolved by name at render time ("red", "4", ...).
func Named(name string) Color {
	return Color{Name: name}
}

// ParseColor accepts "#rrggbb", "#rgb" or a bare color name.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty color")
	}
	if !strings.HasPrefix(s, "#") {
		return Named(s), nil
	}

	hex := s[1:]
	switch len(hex) {
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	case 3:
		v, err := strconv.ParseUint(hex, 16, 16)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		r := uint8((v>>8)&0xF) * 17
		g := uint8((v>>4)&0xF) * 17
		b := uint8(v&0xF) * 17
		return RGB(r, g, b), nil
	default:
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
}

// MustColor is ParseColor for literals known to be valid.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsNamed reports whether the color is resolved by name.
func (c Color) IsNamed() bool {
	return c.Name != ""
}

// String returns the name of a named color or "#RRGGBB".
func (c Color) String() string {
	if c.IsNamed() {
		return c.Name
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Face is a named style. A nil color inherits the renderer default.
type Face struct {
	Name          string
	Foreground    *Color
	Background    *Color
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
}

// New returns a face with default attributes.
func New(name string) Face {
	return Face{Name: name}
}

func (f Face) WithForeground(c Color) Face {
	f.Foreground = &c
	return f
}

func (f Face) WithBackground(c Color) Face {
	f.Background = &c
	return f
}

func (f Face) WithBold(v bool) Face {
	f.Bold = v
	return f
}

func (f Face) WithItalic(v bool) Face {
	f.Italic = v
	return f
}

func (f Face) WithUnderline(v bool) Face {
	f.Underline = v
	return f
}

// Registry maps face names to faces. Define replaces a face as a whole.
type Registry struct {
	mu    sync.RWMutex
	faces map[string]Face
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{faces: make(map[string]Face)}
}

// Define inserts or overwrites the face under f.Name.
func (r *Registry) Define(f Face) {
	if f.Name == "" {
		return
	}
	r.mu.Lock()
	r.faces[f.Name] = f
	r.mu.Unlock()
}

// Exists reports whether a face named name is defined.
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.faces[name]
	return ok
}

// Get returns the face named name.
func (r *Registry) Get(name string) (Face, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.faces[name]
	return f, ok
}

// Names returns the defined face names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.faces))
	for name := range r.faces {
		names = append(names, name)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Len returns the number of defined faces.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.faces)
}

// Reset removes every face.
func (r *Registry) Reset() {
	r.mu.Lock()
	r.faces = make(map[string]Face)
	r.mu.Unlock()
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry, populated with the default
// faces on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry()
		RegisterDefaults(defaultReg)
	})
	return defaultReg
}

// DefineFace defines f in the process-wide registry.
func DefineFace(f Face) {
	Default().Define(f)
}

// FaceExists reports whether name is defined in the process-wide registry.
func FaceExists(name string) bool {
	return Default().Exists(name)
}
