package tui

import "github.com/charmbracelet/lipgloss"

// Highlight attributes layered at draw time. Reverse video marks the
// focus position; it is dimmed when the owning pane lacks focus. Bold
// marks rows bound to new items.
var (
	focusRowStyle   = lipgloss.NewStyle().Reverse(true)
	dimFocusStyle   = lipgloss.NewStyle().Reverse(true).Faint(true)
	boldRowStyle    = lipgloss.NewStyle().Bold(true)
	statusBarStyle  = lipgloss.NewStyle().Reverse(true)
	tickStyle       = lipgloss.NewStyle().Reverse(true)
	dimTickStyle    = lipgloss.NewStyle().Reverse(true).Faint(true)
	trackStyle      = lipgloss.NewStyle()
	dimTrackStyle   = lipgloss.NewStyle().Faint(true)
	promptTextStyle = lipgloss.NewStyle().Reverse(true)
)
