// ABOUTME: Scrollable path report panel built on the bubbles viewport.
// ABOUTME: Shows a prompt until analysis runs, then the per-end-point path summary.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/flowtrace/analysis"
)

// PathsPanelModel shows the most recent path analysis.
type PathsPanelModel struct {
	viewport viewport.Model
	report   *analysis.PathReport
	running  bool
	focused  bool
	width    int
	height   int
}

// NewPathsPanelModel creates an empty paths panel.
func NewPathsPanelModel() PathsPanelModel {
	return PathsPanelModel{viewport: viewport.New(40, 10)}
}

// SetRunning marks an analysis as in flight.
func (m *PathsPanelModel) SetRunning() {
	m.running = true
}

// SetReport replaces the displayed report and scrolls to the top.
func (m *PathsPanelModel) SetReport(r analysis.PathReport) {
	m.report = &r
	m.running = false
	m.viewport.SetContent(renderReport(r))
	m.viewport.GotoTop()
}

// Report returns the displayed report, or nil before the first analysis.
func (m PathsPanelModel) Report() *analysis.PathReport {
	return m.report
}

// SetFocused sets whether this panel accepts scroll keys.
func (m *PathsPanelModel) SetFocused(focused bool) {
	m.focused = focused
}

// IsFocused returns whether the panel is focused.
func (m PathsPanelModel) IsFocused() bool {
	return m.focused
}

// SetSize sets the outer dimensions and resizes the viewport inside the border.
func (m *PathsPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = max(w-2, 1)
	m.viewport.Height = max(h-3, 1)
}

// Update forwards scroll keys to the viewport.
func (m PathsPanelModel) Update(msg tea.Msg) (PathsPanelModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the panel.
func (m PathsPanelModel) View() string {
	var body string
	switch {
	case m.running:
		body = MutedStyle.Render("Analyzing paths...")
	case m.report == nil:
		body = MutedStyle.Render("Press p to analyze paths")
	default:
		body = m.viewport.View()
	}

	style := BorderStyle
	if m.focused {
		style = FocusedBorderStyle
	}
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	if m.height > 2 {
		style = style.Height(m.height - 2)
	}
	return style.Render(TitleStyle.Render("PATHS") + "\n" + body)
}

// renderReport styles the endpoint lines and appends the path summary.
func renderReport(r analysis.PathReport) string {
	var lines []string
	lines = append(lines, StartStyle.Render("Start: ")+joinOrNone(r.Endpoints.Starts))
	lines = append(lines, EndStyle.Render("End:   ")+joinOrNone(r.Endpoints.Ends))
	lines = append(lines, "")
	notice := analysis.PathNotice(r)
	if notice.Level == analysis.LevelWarning {
		lines = append(lines, WarningStyle.Render(notice.Message), "")
	}
	lines = append(lines, strings.TrimRight(analysis.FormatSummary(r), "\n"))
	return strings.Join(lines, "\n")
}

func joinOrNone(ids []string) string {
	if len(ids) == 0 {
		return MutedStyle.Render("none")
	}
	return strings.Join(ids, ", ")
}
