package terminal

import "github.com/charmbracelet/lipgloss"

// Status line palette. Muted so the overlay reads as chrome, not as
// command output.
var (
	colorStatus = lipgloss.Color("#06B6D4") // cyan
)

// StatusStyle is the style applied to the status line when color is
// requested.
func StatusStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(colorStatus).
		Bold(true)
}
