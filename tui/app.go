// ABOUTME: Top-level Bubble Tea AppModel that lays out the components and paths panels.
// ABOUTME: Parses on load; path analysis runs only when the user presses p.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/flowtrace/analysis"
)

// FocusTarget indicates which panel currently has keyboard focus.
type FocusTarget int

const (
	FocusComponents FocusTarget = iota
	FocusPaths
)

// AppModel is the top-level Bubble Tea model for exploring one diagram.
type AppModel struct {
	components ComponentsPanelModel
	paths      PathsPanelModel
	statusBar  StatusBarModel

	result    analysis.ParseResult
	opts      []analysis.Option
	focus     FocusTarget
	analyzing bool
	width     int
	height    int
}

// NewAppModel parses text and builds the initial layout. name labels the
// diagram in the status bar; opts configure every analyzer the model creates.
func NewAppModel(name, text string, opts ...analysis.Option) AppModel {
	res := analysis.New(opts...).ParseDiagram(text)
	g := res.Graph()

	m := AppModel{
		components: NewComponentsPanelModel(res),
		paths:      NewPathsPanelModel(),
		statusBar:  NewStatusBarModel(name, len(g.Nodes), len(g.Edges)),
		result:     res,
		opts:       opts,
		focus:      FocusComponents,
	}
	m.components.SetFocused(true)
	return m
}

// Result returns the parse result shown in the components panel.
func (m AppModel) Result() analysis.ParseResult {
	return m.result
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case PathsResultMsg:
		m.analyzing = false
		m.paths.SetReport(msg.Report)
		st := msg.Report.Stats
		m.statusBar.SetPaths(st.TotalPaths, st.AverageDisplay(), st.Truncated)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m AppModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "p":
		if m.analyzing {
			return m, nil
		}
		m.analyzing = true
		m.paths.SetRunning()
		return m, AnalyzePathsCmd(m.result.Edges, m.opts...)
	case "tab":
		m.focus = m.nextFocus()
		m.components.SetFocused(m.focus == FocusComponents)
		m.paths.SetFocused(m.focus == FocusPaths)
		return m, nil
	}

	// Remaining keys scroll the focused panel.
	var cmd tea.Cmd
	if m.focus == FocusPaths {
		m.paths, cmd = m.paths.Update(msg)
	} else {
		m.components, cmd = m.components.Update(msg)
	}
	return m, cmd
}

// nextFocus cycles the focus target between the two panels.
func (m AppModel) nextFocus() FocusTarget {
	if m.focus == FocusComponents {
		return FocusPaths
	}
	return FocusComponents
}

// layout sizes the panels to the terminal. The status bar takes one line and
// the components panel 45% of the width.
func (m *AppModel) layout() {
	panelHeight := m.height - 1
	leftWidth := m.width * 45 / 100

	m.components.SetSize(leftWidth, panelHeight)
	m.paths.SetSize(m.width-leftWidth, panelHeight)
	m.statusBar.SetWidth(m.width)
}

// View implements tea.Model.
func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.width < 40 || m.height < 10 {
		return fmt.Sprintf("Terminal too small (%dx%d). Minimum: 40x10.", m.width, m.height)
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.components.View(), m.paths.View()))
	b.WriteString("\n")
	b.WriteString(m.statusBar.View())
	return b.String()
}
