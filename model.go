package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"facet/internal/grammar"
	"facet/internal/mode"
	"facet/internal/readfile"
	"facet/internal/render"
	"facet/internal/textbuf"
	"facet/internal/watcher"
)

type viewConfig struct {
	Path      string
	EditorCmd string
	Follow    bool
}

type model struct {
	cfg viewConfig
	env *env
	ctx context.Context

	width  int
	height int

	buf     *textbuf.Buffer
	session *mode.Session

	input     textinput.Model
	searching bool
	query     string

	cursor int
	offset int

	changes <-chan struct{}

	status string
	errMsg string
}

type fileChangedMsg struct{}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

func newModel(ctx context.Context, cfg viewConfig, e *env, s *mode.Session, buf *textbuf.Buffer) model {
	input := textinput.New()
	input.Prompt = "search> "
	input.CharLimit = 256
	input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(e.theme.Text))

	return model{
		cfg:     cfg,
		env:     e,
		ctx:     ctx,
		buf:     buf,
		session: s,
		input:   input,
	}
}

func (m model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(16, m.width-16)
		m.ensureCursor()

	case fileChangedMsg:
		m.reload()
		return m, waitForChange(m.changes)

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k", "ctrl+p":
			m.moveCursor(-1)
		case "down", "j", "ctrl+n":
			m.moveCursor(1)
		case "pgup", "ctrl+u":
			m.moveCursor(-m.rowsPerPage())
		case "pgdown", "ctrl+d":
			m.moveCursor(m.rowsPerPage())
		case "home", "g":
			m.cursor = 0
			m.ensureCursor()
		case "end", "G":
			m.cursor = m.buf.LineCount() - 1
			m.ensureCursor()
		case "/":
			m.searching = true
			m.input.Focus()
			return m, textinput.Blink
		case "n":
			m.jumpToMatch(1)
		case "N":
			m.jumpToMatch(-1)
		case "tab":
			m.buf.SetShowGutter(!m.buf.ShowGutter())
		case "=":
			m.env.apply(m.ctx, m.session, m.buf, m.session.IndentLine(m.ctx, m.cursor+1))
			m.status = fmt.Sprintf("indented line %d", m.cursor+1)
		case "o":
			pos := m.lineEnd(m.cursor)
			m.env.apply(m.ctx, m.session, m.buf, m.session.NewlineAndIndent(m.ctx, pos))
			m.moveCursor(1)
		case "ctrl+s":
			if err := writeFile(m.cfg.Path, m.buf.Content()); err != nil {
				m.errMsg = "save failed: " + err.Error()
			} else {
				m.status = "saved " + m.cfg.Path
			}
		case "y":
			if err := copyToClipboard(m.buf.Line(m.cursor)); err != nil {
				m.status = "copy failed: " + err.Error()
			} else {
				m.status = fmt.Sprintf("copied line %d", m.cursor+1)
			}
		case "enter":
			abs, _ := filepath.Abs(m.cfg.Path)
			col := len([]rune(grammar.LeadingWhitespace(m.buf.Line(m.cursor)))) + 1
			if err := openLocation(location{Path: abs, Line: m.cursor + 1, Col: col}, m.cfg.EditorCmd); err != nil {
				m.status = "open failed: " + err.Error()
				return m, nil
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.input.Blur()
		return m, nil
	case "enter":
		m.searching = false
		m.input.Blur()
		m.jumpToMatch(0)
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.query = m.input.Value()
	return m, cmd
}

func (m *model) reload() {
	text, err := readfile.Text(m.cfg.Path)
	if err != nil {
		m.errMsg = "reload failed: " + err.Error()
		return
	}
	start, oldEnd, newEnd := m.buf.Sync(text)
	if start == oldEnd && start == newEnd {
		return
	}
	m.env.modes.OnBufferChanged(m.ctx, m.session.Mode(), m.session, mode.Change{Start: start, OldEnd: oldEnd, NewEnd: newEnd})
	m.status = "reloaded"
	m.ensureCursor()
}

func (m *model) lineEnd(line int) int {
	pos := 0
	for i := 0; i <= line; i++ {
		pos += len([]rune(m.buf.Line(i)))
		if i < line {
			pos++
		}
	}
	return pos
}

func (m *model) jumpToMatch(dir int) {
	if m.query == "" {
		return
	}
	n := m.buf.LineCount()
	start := m.cursor
	if dir == 0 {
		dir = 1
		start--
	}
	for step := 1; step <= n; step++ {
		i := ((start+dir*step)%n + n) % n
		if len(render.Matches(m.buf.Line(i), m.query)) > 0 {
			m.cursor = i
			m.ensureCursor()
			m.status = ""
			return
		}
	}
	m.status = fmt.Sprintf("no match for %q", m.query)
}

func (m *model) moveCursor(delta int) {
	m.cursor += delta
	m.ensureCursor()
}

func (m *model) ensureCursor() {
	lines := m.buf.LineCount()
	m.cursor = clamp(m.cursor, 0, lines-1)

	page := m.rowsPerPage()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	m.offset = clamp(m.offset, 0, max(0, lines-page))
}

func (m model) rowsPerPage() int {
	return max(1, m.height-3)
}

func newViewCmd(opts *rootOptions) *cobra.Command {
	var cfg viewConfig
	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "Browse a highlighted file in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := opts.env()
			if err != nil {
				return err
			}
			cfg.Path = args[0]
			ctx := cmd.Context()
			s, buf, err := e.open(ctx, cfg.Path, cmd.InOrStdin())
			if err != nil {
				return err
			}

			m := newModel(ctx, cfg, e, s, buf)
			if cfg.Follow {
				w, err := watcher.New(watcher.Config{Path: cfg.Path})
				if err != nil {
					return err
				}
				defer func() { _ = w.Stop() }()
				if m.changes, err = w.Start(); err != nil {
					return err
				}
			}

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().BoolVarP(&cfg.Follow, "follow", "f", false, "reload the file when it changes on disk")
	cmd.Flags().StringVar(&cfg.EditorCmd, "editor-cmd", "", "open command for enter, supports {file} {line} {col} {target}")
	return cmd
}
