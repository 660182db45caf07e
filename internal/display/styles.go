package display

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	stoppedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	ringingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)

	primaryButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#18181b")).
				Background(lipgloss.Color("#bae6fd")).
				Padding(0, 2).
				Width(12).
				Align(lipgloss.Center)

	secondaryButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#d4d4d8")).
				Background(lipgloss.Color("#3f3f46")).
				Padding(0, 2).
				Width(12).
				Align(lipgloss.Center)

	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#52525b")).
				Background(lipgloss.Color("#27272a")).
				Padding(0, 2).
				Width(12).
				Align(lipgloss.Center)

	// Edit mode fields.
	fieldActiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#18181b")).
				Background(lipgloss.Color("#bbf7d0"))

	fieldSetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	fieldUnsetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Italic(true)
)
