package summary

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	header   lipgloss.Style
	label    lipgloss.Style
	detail   lipgloss.Style
	section  lipgloss.Style
	heading  lipgloss.Style
	peer     lipgloss.Style
	peerID   lipgloss.Style
	blocked  lipgloss.Style
	empty    lipgloss.Style
	action   lipgloss.Style
	truncate lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		header:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		section:  lipgloss.NewStyle().MarginTop(1),
		heading:  lipgloss.NewStyle().Bold(true),
		peer:     lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		peerID:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		blocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		empty:    lipgloss.NewStyle().Faint(true),
		action:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		truncate: lipgloss.NewStyle().Faint(true).Italic(true),
	}
}
