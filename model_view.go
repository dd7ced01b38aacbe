package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"facet/internal/render"
)

func (m model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	header := m.renderHeader()
	body := m.renderBody(m.width, m.rowsPerPage())
	footer := m.renderFooter()
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m model) renderHeader() string {
	th := m.env.theme
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Text)).Bold(true)
	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Muted))
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#f44747"))

	status := fmt.Sprintf("%s | %s | line %d/%d", m.session.Mode(), m.session.State(), m.cursor+1, m.buf.LineCount())
	if m.status != "" {
		status += " | " + m.status
	}
	line := titleStyle.Render(m.cfg.Path) + "  " + statusStyle.Render(flatten.Replace(status))
	if m.errMsg != "" {
		line += "  " + errStyle.Render(flatten.Replace(m.errMsg))
	}
	return truncateStyled(line, m.width)
}

func (m model) renderFooter() string {
	if m.searching {
		return m.input.View()
	}
	footerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.env.theme.Muted))
	text := "up/down move  / search  n/N next  = indent  o open line  tab gutter  y copy  enter edit  ctrl+s save  q quit"
	return footerStyle.Render(truncatePlain(text, m.width))
}

func (m model) renderBody(width, height int) string {
	st := m.env.styler(m.buf.ShowGutter(), m.buf.LineCount())
	visible := render.Lines(m.buf.Content(), m.session.Spans().All(), m.offset, height, m.env.policy)

	rows := make([]string, 0, height)
	for _, line := range visible {
		selected := line.Number == m.cursor
		out := st.Render(line, render.Options{
			Selected: selected,
			Emphasis: render.Matches(line.Text, m.query),
			Width:    width,
		})
		if selected {
			out = padRight(out, width)
		}
		rows = append(rows, out)
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}
