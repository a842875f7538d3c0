// ABOUTME: Scrollable component tree panel built on the bubbles viewport.
// ABOUTME: Lists registered groups with labels, untyped identifiers, and lint diagnostics.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/flowtrace/analysis"
)

// ComponentsPanelModel shows the parsed component groups.
type ComponentsPanelModel struct {
	viewport viewport.Model
	content  string
	focused  bool
	width    int
	height   int
}

// NewComponentsPanelModel renders res into a new panel.
func NewComponentsPanelModel(res analysis.ParseResult) ComponentsPanelModel {
	m := ComponentsPanelModel{viewport: viewport.New(40, 10)}
	m.content = renderComponents(res)
	m.viewport.SetContent(m.content)
	return m
}

// SetFocused sets whether this panel accepts scroll keys.
func (m *ComponentsPanelModel) SetFocused(focused bool) {
	m.focused = focused
}

// IsFocused returns whether the panel is focused.
func (m ComponentsPanelModel) IsFocused() bool {
	return m.focused
}

// SetSize sets the outer dimensions and resizes the viewport inside the border.
func (m *ComponentsPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = max(w-2, 1)
	m.viewport.Height = max(h-3, 1)
	m.viewport.SetContent(m.content)
}

// Update forwards scroll keys to the viewport.
func (m ComponentsPanelModel) Update(msg tea.Msg) (ComponentsPanelModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// Content returns the unstyled panel body.
func (m ComponentsPanelModel) Content() string {
	return m.content
}

// View renders the panel.
func (m ComponentsPanelModel) View() string {
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
	return style.Render(TitleStyle.Render("COMPONENTS") + "\n" + m.viewport.View())
}

func renderComponents(res analysis.ParseResult) string {
	var lines []string

	tree := res.Tree()
	if len(tree) == 0 {
		lines = append(lines, MutedStyle.Render("No registered components found"))
	}
	for _, g := range tree {
		lines = append(lines, GroupStyle.Render(fmt.Sprintf("%s (Total: %d)", g.Name, len(g.Items))))
		for _, it := range g.Items {
			line := "  " + IDStyle.Render(it.ID)
			if d := it.Details(); d != "" {
				line += " " + MutedStyle.Render(d)
			}
			lines = append(lines, line)
		}
	}

	if len(res.Unregistered) > 0 {
		lines = append(lines, "", GroupStyle.Render("Untyped"))
		lines = append(lines, "  "+MutedStyle.Render(strings.Join(res.Unregistered, ", ")))
	}

	if len(res.Diagnostics) > 0 {
		lines = append(lines, "", GroupStyle.Render("Diagnostics"))
		for _, d := range res.Diagnostics {
			lines = append(lines, "  "+StyleForSeverity(d.Severity).Render(d.Severity+": "+d.Message))
		}
	}

	return strings.Join(lines, "\n")
}
