package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"facet/internal/builtin"
	"facet/internal/face"
	"facet/internal/mode"
	"facet/internal/render"
	"facet/internal/textbuf"
)

// env holds the registries one command runs against. They are the
// process-wide registries, reset and repopulated from the configuration.
type env struct {
	modes  *mode.Registry
	faces  *face.Registry
	theme  face.Theme
	policy render.Policy
	force  string
}

func (o *rootOptions) env() (*env, error) {
	policy, err := render.ParsePolicy(o.cfg.Overlap)
	if err != nil {
		return nil, err
	}
	faces := face.Default()
	faces.Reset()
	theme, err := builtin.Faces(faces, o.cfg)
	if err != nil {
		return nil, err
	}
	modes := mode.Default()
	modes.Reset()
	modes.SetFaces(faces)
	if err := builtin.Register(modes, o.cfg); err != nil {
		return nil, err
	}
	if o.mode != "" {
		if _, ok := modes.Get(o.mode); !ok {
			return nil, fmt.Errorf("unknown mode %q", o.mode)
		}
	}
	return &env{modes: modes, faces: faces, theme: theme, policy: policy, force: o.mode}, nil
}

// open loads path, or stdin for "-", and activates its mode.
func (e *env) open(ctx context.Context, path string, stdin io.Reader) (*mode.Session, *textbuf.Buffer, error) {
	var (
		buf *textbuf.Buffer
		err error
	)
	if path == "-" {
		data, rerr := io.ReadAll(stdin)
		if rerr != nil {
			return nil, nil, fmt.Errorf("reading stdin: %w", rerr)
		}
		buf = textbuf.New(string(data))
	} else {
		buf, err = textbuf.Load(path)
		if err != nil {
			return nil, nil, err
		}
	}

	s := mode.NewSession(buf, path)
	if e.force != "" {
		e.modes.OnBufferActivated(ctx, e.force, s)
	} else {
		e.modes.Open(ctx, s)
	}
	return s, buf, nil
}

func (e *env) styler(gutter bool, lines int) render.Styler {
	return render.Styler{
		Faces:       e.faces,
		Theme:       e.theme,
		Gutter:      gutter,
		GutterWidth: len(fmt.Sprint(lines)),
	}
}

func writeFile(path, text string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), info.Mode().Perm())
}
