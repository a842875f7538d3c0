// ABOUTME: Bubble Tea message types and commands used in the TUI message loop.
// ABOUTME: Path analysis runs as a tea.Cmd so the UI stays responsive on large diagrams.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/flowtrace/analysis"
	"github.com/2389-research/flowtrace/diagram"
)

// PathsResultMsg carries a finished path analysis.
type PathsResultMsg struct {
	Report analysis.PathReport
}

// AnalyzePathsCmd returns a tea.Cmd that runs path analysis over edges with a
// fresh analyzer built from opts.
func AnalyzePathsCmd(edges []diagram.Edge, opts ...analysis.Option) tea.Cmd {
	return func() tea.Msg {
		return PathsResultMsg{Report: analysis.New(opts...).ExtractPaths(edges)}
	}
}
