package ui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	plainStyle = lipgloss.NewStyle()

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#444444"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	searchLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#ffaa00"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff00"))

	matchStyle = lipgloss.NewStyle().
			Underline(true).
			Foreground(lipgloss.Color("#ffaa00"))

	sparkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00aaff"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff0000")).
			Bold(true)
)
