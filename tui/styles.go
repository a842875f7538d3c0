// ABOUTME: Defines lipgloss styles for the TUI panels, endpoint highlighting, and diagnostic severities.
// ABOUTME: Provides StyleForSeverity to map lint severities to their display styles.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/flowtrace/diagram/validator"
)

var (
	// Panel borders
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
	FocusedBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62"))

	// Title styling
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	// Component tree
	GroupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	IDStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	MutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	// Path endpoints
	StartStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	EndStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true)

	// Diagnostics
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	InfoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
)

// StyleForSeverity returns the style for a diagnostic severity.
func StyleForSeverity(severity string) lipgloss.Style {
	switch severity {
	case validator.SeverityWarning:
		return WarningStyle
	default:
		return InfoStyle
	}
}
