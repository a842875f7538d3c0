// ABOUTME: Single-line status bar for the bottom of the TUI showing diagram and analysis state.
// ABOUTME: Displays the diagram name, node and edge counts, path totals, and key hints.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// StatusBarModel displays diagram status in a single line.
type StatusBarModel struct {
	name       string
	nodes      int
	edges      int
	totalPaths int
	average    string
	analyzed   bool
	truncated  bool
	width      int
}

// NewStatusBarModel creates a StatusBarModel for a diagram with the given counts.
func NewStatusBarModel(name string, nodes, edges int) StatusBarModel {
	return StatusBarModel{name: name, nodes: nodes, edges: edges}
}

// SetPaths records the outcome of a path analysis.
func (m *StatusBarModel) SetPaths(total int, average string, truncated bool) {
	m.analyzed = true
	m.totalPaths = total
	m.average = average
	m.truncated = truncated
}

// SetWidth sets the bar width for rendering.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// View renders the status bar as a single styled line.
func (m StatusBarModel) View() string {
	paths := "not analyzed"
	if m.analyzed {
		paths = fmt.Sprintf("%d (avg %s)", m.totalPaths, m.average)
		if m.truncated {
			paths += " limit reached"
		}
	}

	content := fmt.Sprintf("Diagram: %s | %d nodes | %d edges | Paths: %s | p analyze  tab switch  q quit",
		m.name, m.nodes, m.edges, paths)

	style := StatusBarStyle.Width(m.width)

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, style.Render(content))
}
