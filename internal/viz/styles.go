package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	canvas  lipgloss.Style
	panel   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
	failed  lipgloss.Style
	graph   lipgloss.Style
	help    lipgloss.Style
}

func newStyles(th Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Padding(1, 2),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(th.Muted).
			Padding(1, 2).
			Width(44),
		header:  lipgloss.NewStyle().Foreground(th.Primary).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(th.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(th.Text),
		running: lipgloss.NewStyle().Bold(true).Foreground(th.Accent),
		paused:  lipgloss.NewStyle().Bold(true).Foreground(th.Warning),
		failed:  lipgloss.NewStyle().Bold(true).Foreground(th.Error),
		graph:   lipgloss.NewStyle().Foreground(th.Secondary).Padding(1, 0),
		help:    lipgloss.NewStyle().Foreground(th.Muted).Italic(true).MarginTop(1),
	}
}

// separator draws a muted rule with a centre mark.
func (s styles) separator(width int) string {
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.label.UnsetWidth().Render(left + " ◆ " + right)
}
