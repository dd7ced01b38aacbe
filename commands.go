package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"facet/internal/config"
	"facet/internal/indent"
	"facet/internal/mode"
	"facet/internal/render"
	"facet/internal/textbuf"
)

// apply performs an edit action on buf and reports it to the session's
// mode, so its spans follow the text.
func (e *env) apply(ctx context.Context, s *mode.Session, buf *textbuf.Buffer, a indent.Action) {
	start, oldEnd, newEnd := buf.Sync(a.Apply(buf.Content()))
	if start == oldEnd && start == newEnd {
		return
	}
	e.modes.OnBufferChanged(ctx, s.Mode(), s, mode.Change{Start: start, OldEnd: oldEnd, NewEnd: newEnd})
}

func newHighlightCmd(opts *rootOptions) *cobra.Command {
	var (
		spans  bool
		gutter string
		first  int
		count  int
	)
	cmd := &cobra.Command{
		Use:   "highlight FILE",
		Short: "Print a file with its highlighting, or its spans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.env()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			s, buf, err := e.open(ctx, args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if spans {
				for _, sp := range s.Spans().All() {
					fmt.Fprintf(out, "%d\t%d\t%s\t%q\n", sp.Start, sp.End, sp.Face, buf.Substring(sp.Start, sp.End))
				}
				return nil
			}

			show := buf.ShowGutter()
			switch gutter {
			case "on":
				show = true
			case "off":
				show = false
			}
			if count <= 0 {
				count = buf.LineCount()
			}
			st := e.styler(show, buf.LineCount())
			for _, line := range render.Lines(buf.Content(), s.Spans().All(), first, count, e.policy) {
				fmt.Fprintln(out, st.Render(line, render.Options{}))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&spans, "spans", false, "print spans as start, end, face and text")
	cmd.Flags().StringVar(&gutter, "gutter", "auto", "line numbers: auto (mode default), on or off")
	cmd.Flags().IntVar(&first, "first", 0, "first line to print, 0-based")
	cmd.Flags().IntVar(&count, "count", 0, "number of lines to print (0: all)")
	return cmd
}

func newIndentCmd(opts *rootOptions) *cobra.Command {
	var (
		line    int
		write   bool
		explain bool
	)
	cmd := &cobra.Command{
		Use:   "indent FILE",
		Short: "Re-indent a file, or one line of it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.env()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			s, buf, err := e.open(ctx, args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			first, last := 1, buf.LineCount()
			if line > 0 {
				if line > last {
					return fmt.Errorf("%w: %d of %d", indent.ErrLineRange, line, last)
				}
				first, last = line, line
			}

			if explain {
				return explainIndent(ctx, out, e, s, first, last)
			}
			for l := first; l <= last; l++ {
				e.apply(ctx, s, buf, s.IndentLine(ctx, l))
			}
			if write && args[0] != "-" {
				return writeFile(args[0], buf.Content())
			}
			_, err = io.WriteString(out, buf.Content())
			return err
		},
	}
	cmd.Flags().IntVarP(&line, "line", "l", 0, "1-based line to indent (0: every line)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file")
	cmd.Flags().BoolVar(&explain, "explain", false, "print the depth and column computation instead of the text")
	return cmd
}

func explainIndent(ctx context.Context, out io.Writer, e *env, s *mode.Session, first, last int) error {
	m, _ := e.modes.Get(s.Mode())
	calc, ok := m.Indenter.(*indent.Calculator)
	text := s.Buffer().Content()
	for l := first; l <= last; l++ {
		if !ok {
			fmt.Fprintf(out, "line=%d column=%d\n", l, s.IndentLine(ctx, l).Column)
			continue
		}
		res, err := calc.Compute(ctx, text, l)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, res.String())
	}
	return nil
}

func newNewlineCmd(opts *rootOptions) *cobra.Command {
	var (
		pos   int
		apply bool
	)
	cmd := &cobra.Command{
		Use:   "newline FILE",
		Short: "Show the newline-and-indent insertion at a character offset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.env()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			s, buf, err := e.open(ctx, args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			if pos < 0 || pos > buf.CharCount() {
				pos = buf.CharCount()
			}
			ins := s.NewlineAndIndent(ctx, pos)
			if !apply {
				fmt.Fprintln(cmd.OutOrStdout(), ins.String())
				return nil
			}
			e.apply(ctx, s, buf, ins)
			_, err = io.WriteString(cmd.OutOrStdout(), buf.Content())
			return err
		},
	}
	cmd.Flags().IntVarP(&pos, "pos", "p", -1, "character offset of the cursor (default: end of text)")
	cmd.Flags().BoolVar(&apply, "apply", false, "print the text with the insertion applied")
	return cmd
}

func newModesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "modes [FILE...]",
		Short: "List the major modes, or the mode each file resolves to",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.env()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) > 0 {
				for _, path := range args {
					fmt.Fprintf(out, "%s\t%s\n", path, e.modes.Resolve(path))
				}
				return nil
			}
			for _, name := range e.modes.Names() {
				m, _ := e.modes.Get(name)
				hl := "none"
				if m.Highlighter != nil {
					hl = m.Highlighter.Name()
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", name, hl, strings.Join(e.modes.Extensions(name), " "))
			}
			return nil
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [PATH]",
		Short: "Write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(".facet", "config.yaml")
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			tmpl, err := config.Marshal(opts.cfg)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), tmpl)
			return err
		},
	})
	return cmd
}
