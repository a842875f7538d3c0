// ABOUTME: Tests for the top-level AppModel that lays out the components and paths panels.
// ABOUTME: Covers initial parse, the p key analysis flow, focus switching, quitting, and view rendering.
package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/flowtrace/analysis"
)

const testDiagram = `flowchart LR
    DP1["Main Intake"]
    MC1["Canal 1"]
    F1["Field North"]
    DP1 --> MC1 --> F1
    DP1 --> F1
`

func testAppModel() AppModel {
	return NewAppModel("farm.mmd", testDiagram)
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewAppModel(t *testing.T) {
	m := testAppModel()

	if len(m.Result().Edges) != 3 {
		t.Errorf("edges = %d, want 3", len(m.Result().Edges))
	}
	if m.focus != FocusComponents {
		t.Errorf("initial focus = %d, want FocusComponents (%d)", m.focus, FocusComponents)
	}
	if !m.components.IsFocused() || m.paths.IsFocused() {
		t.Error("components panel should start focused")
	}
	if m.paths.Report() != nil {
		t.Error("paths should not be analyzed before p is pressed")
	}
	if m.Init() != nil {
		t.Error("Init should not start any command")
	}
}

func TestAppModelAnalyzeFlow(t *testing.T) {
	m := testAppModel()

	updated, cmd := m.Update(keyMsg("p"))
	m = updated.(AppModel)
	if !m.analyzing {
		t.Fatal("p should start analysis")
	}
	if cmd == nil {
		t.Fatal("p should return an analysis command")
	}

	// A second p while running is ignored.
	_, again := m.Update(keyMsg("p"))
	if again != nil {
		t.Error("p during analysis should not start another run")
	}

	msg := cmd()
	res, ok := msg.(PathsResultMsg)
	if !ok {
		t.Fatalf("command returned %T, want PathsResultMsg", msg)
	}
	if res.Report.Stats.TotalPaths != 2 {
		t.Errorf("total paths = %d, want 2", res.Report.Stats.TotalPaths)
	}

	updated, _ = m.Update(res)
	m = updated.(AppModel)
	if m.analyzing {
		t.Error("analysis should be finished")
	}
	if m.paths.Report() == nil {
		t.Fatal("paths panel should hold the report")
	}
	if !strings.Contains(m.statusBar.View(), "Paths: 2 (avg 1.5)") {
		t.Errorf("status bar = %q", m.statusBar.View())
	}
}

func TestAppModelAnalyzeUsesOptions(t *testing.T) {
	m := NewAppModel("farm.mmd", testDiagram, analysis.WithPathLimit(1))
	_, cmd := m.Update(keyMsg("p"))
	res := cmd().(PathsResultMsg)
	if !res.Report.Stats.Truncated {
		t.Errorf("stats = %+v, want truncated", res.Report.Stats)
	}
}

func TestAppModelTabSwitchesFocus(t *testing.T) {
	m := testAppModel()

	updated, _ := m.Update(keyMsg("tab"))
	m = updated.(AppModel)
	if m.focus != FocusPaths || !m.paths.IsFocused() || m.components.IsFocused() {
		t.Errorf("after tab focus = %d", m.focus)
	}

	updated, _ = m.Update(keyMsg("tab"))
	m = updated.(AppModel)
	if m.focus != FocusComponents {
		t.Errorf("second tab should return to components, got %d", m.focus)
	}
}

func TestAppModelQuit(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			_, cmd := testAppModel().Update(keyMsg(key))
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Errorf("%s should quit", key)
			}
		})
	}
}

func TestAppModelView(t *testing.T) {
	m := testAppModel()
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View before size = %q", got)
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	if got := updated.View(); !strings.Contains(got, "Terminal too small") {
		t.Errorf("small view = %q", got)
	}

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	view := updated.View()
	for _, want := range []string{"COMPONENTS", "PATHS", "Press p to analyze paths", "Diagram: farm.mmd", "Canal"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
