package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// colorEnabled reports whether stdout is a terminal that can render
// ANSI styling. Piped output (CI logs, `| tee`) gets plain text.
var colorEnabled = isatty.IsTerminal(os.Stdout.Fd())

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// style applies s to text when color output is enabled, otherwise
// returns text unchanged.
func style(s lipgloss.Style, text string) string {
	if !colorEnabled {
		return text
	}
	return s.Render(text)
}
