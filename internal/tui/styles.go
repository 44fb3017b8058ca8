package tui

import "github.com/charmbracelet/lipgloss"

var (
	// promptStyle renders the prompt before the command line and past commands.
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"})

	replyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"})

	// failedStyle renders rejected input and not-found replies.
	failedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"})
)
