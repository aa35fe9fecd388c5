// Package render turns error events and model replies into styled,
// width-bounded terminal panels.
package render

import "github.com/charmbracelet/lipgloss"

// Theme groups the lipgloss styles used by the panel and frame renderers.
type Theme struct {
	Error    lipgloss.Style // error type names, header rule labels
	Title    lipgloss.Style // panel titles
	Subtitle lipgloss.Style // panel subtitles
	Dim      lipgloss.Style // rules, separators, elision notes
	Function lipgloss.Style // frame function identity
	Location lipgloss.Style // frame file:line
	Message  lipgloss.Style // error message body
	Answer   lipgloss.Style // AI-help panel body background
}

// DefaultTheme returns the standard color theme. Colors are ANSI-256 so the
// output degrades cleanly on 16-color terminals.
func DefaultTheme() Theme {
	return Theme{
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		Subtitle: lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("7")),
		Dim:      lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("8")),
		Function: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Message:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		Answer:   lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("15")),
	}
}
