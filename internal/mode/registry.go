package mode

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"facet/internal/face"
)

// Registry maps file names to modes. The zero value is not usable; call
// NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	modes   map[string]*Mode
	exts    map[string]string
	files   map[string]string
	interps map[string]string
	def     string
	faces   *face.Registry
}

// NewRegistry returns an empty registry whose default mode is Fundamental.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Reset()
	return r
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry()
	})
	return defaultReg
}

// Reset drops every mode and binding and restores the Fundamental default.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modes = map[string]*Mode{}
	r.exts = map[string]string{}
	r.files = map[string]string{}
	r.interps = map[string]string{}
	r.def = Fundamental
}

// SetFaces makes sessions activated from r drop spans whose face is not
// defined in faces. A nil registry accepts every face. Reset keeps it.
func (r *Registry) SetFaces(faces *face.Registry) {
	r.mu.Lock()
	r.faces = faces
	r.mu.Unlock()
}

func (r *Registry) faceRegistry() *face.Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.faces
}

// NormalizeExt lowercases ext and gives it a leading dot.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// Register stores m under its name, replacing any previous definition and
// its bindings. Extensions already bound to another mode move to m.
func (r *Registry) Register(m Mode) error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("mode name is empty")
	}
	mode := m
	mode.Extensions = append([]string(nil), m.Extensions...)
	mode.Files = append([]string(nil), m.Files...)
	mode.Interpreters = append([]string(nil), m.Interpreters...)

	r.mu.Lock()
	defer r.mu.Unlock()

	unbind(r.exts, m.Name)
	unbind(r.files, m.Name)
	unbind(r.interps, m.Name)

	for _, ext := range mode.Extensions {
		if ext = NormalizeExt(ext); ext != "" {
			r.exts[ext] = m.Name
		}
	}
	for _, f := range mode.Files {
		r.files[f] = m.Name
	}
	for _, in := range mode.Interpreters {
		r.interps[strings.ToLower(in)] = m.Name
	}
	r.modes[m.Name] = &mode
	return nil
}

func unbind(index map[string]string, name string) {
	for k, v := range index {
		if v == name {
			delete(index, k)
		}
	}
}

// Bind maps ext to an already registered mode.
func (r *Registry) Bind(ext, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.modes[name]; !ok {
		return fmt.Errorf("unknown mode %q", name)
	}
	r.exts[NormalizeExt(ext)] = name
	return nil
}

// SetDefault sets the mode unmatched files resolve to.
func (r *Registry) SetDefault(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name == "" {
		name = Fundamental
	}
	r.def = name
}

// DefaultMode returns the name unmatched files resolve to.
func (r *Registry) DefaultMode() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.def
}

// Resolve returns the mode of path: an exact file-name binding, then the
// extension compared case-insensitively, then the default mode.
func (r *Registry) Resolve(path string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name, ok := r.lookupPath(path); ok {
		return name
	}
	return r.def
}

// ResolveContent is Resolve falling back to the interpreter named on a
// "#!" first line before the default mode.
func (r *Registry) ResolveContent(path, firstLine string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name, ok := r.lookupPath(path); ok {
		return name
	}
	if in := Interpreter(firstLine); in != "" {
		if name, ok := r.interps[in]; ok {
			return name
		}
		trimmed := strings.TrimRightFunc(in, func(c rune) bool { return c == '.' || (c >= '0' && c <= '9') })
		if name, ok := r.interps[trimmed]; ok {
			return name
		}
	}
	return r.def
}

func (r *Registry) lookupPath(path string) (string, bool) {
	base := filepath.Base(path)
	if name, ok := r.files[base]; ok {
		return name, true
	}
	if name, ok := r.exts[NormalizeExt(filepath.Ext(base))]; ok {
		return name, true
	}
	return "", false
}

// Interpreter returns the lowercased interpreter named by a "#!" line:
// "#!/usr/bin/env python3" gives "python3".
func Interpreter(firstLine string) string {
	if !strings.HasPrefix(firstLine, "#!") {
		return ""
	}
	fields := strings.Fields(strings.TrimPrefix(firstLine, "#!"))
	if len(fields) == 0 {
		return ""
	}
	prog := filepath.Base(fields[0])
	if prog == "env" {
		prog = ""
		for _, f := range fields[1:] {
			if !strings.HasPrefix(f, "-") {
				prog = filepath.Base(f)
				break
			}
		}
	}
	return strings.ToLower(prog)
}

// Lookup returns the mode called name. Unknown names yield the Fundamental
// mode, which is never an error.
func (r *Registry) Lookup(name string) *Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.modes[name]; ok {
		return m
	}
	if m, ok := r.modes[Fundamental]; ok {
		return m
	}
	return fundamental()
}

// Get returns the mode called name, if registered.
func (r *Registry) Get(name string) (Mode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modes[name]
	if !ok {
		return Mode{}, false
	}
	return *m, true
}

// Names returns the registered mode names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modes))
	for name := range r.modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extensions returns the extensions bound to name, sorted.
func (r *Registry) Extensions(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for ext, n := range r.exts {
		if n == name {
			out = append(out, ext)
		}
	}
	sort.Strings(out)
	return out
}
