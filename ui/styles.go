package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/videonormalizer/video"
)

// Styling functions using lipgloss
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Bold(true).
			Padding(0, 2).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	ProcessingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// OutcomeSymbol is the one-glyph marker shown next to a file
func OutcomeSymbol(o video.Outcome) string {
	switch {
	case o == video.OutcomeConverted:
		return "✓"
	case o.IsSkipped():
		return "⏭"
	default:
		return "✗"
	}
}

// OutcomeStyle picks the color for an outcome
func OutcomeStyle(o video.Outcome) lipgloss.Style {
	switch {
	case o == video.OutcomeConverted:
		return SuccessStyle
	case o.IsSkipped():
		return MutedStyle
	default:
		return ErrorStyle
	}
}
