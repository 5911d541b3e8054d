package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Welcome banner at session start
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#4F4FB7")).
			Padding(0, 1)

	// Status style for hint lines
	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#959595"))

	// Error style for evaluation diagnostics
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))

	// Result style for the evaluated value
	ResultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	// Command style for the pending colon command
	CommandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#626262"))
)
