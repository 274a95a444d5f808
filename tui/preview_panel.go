// ABOUTME: PreviewPanelModel shows the project's preview in a scrollable viewport.
// ABOUTME: Markdown renders through glamour; other projects show the composed HTML document.
package tui

import (
	"strings"

	"github.com/2389-research/stackrush/compose"
	"github.com/2389-research/stackrush/project"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// PreviewPanelModel renders the current preview.
type PreviewPanelModel struct {
	viewport viewport.Model
	style    string
	content  string
	focused  bool
	width    int
	height   int
}

// NewPreviewPanelModel creates a preview panel. theme selects the glamour
// style: "light" renders with the light style, anything else with dark.
func NewPreviewPanelModel(theme string) PreviewPanelModel {
	style := "dark"
	if theme == "light" {
		style = "light"
	}
	return PreviewPanelModel{
		viewport: viewport.New(80, 10),
		style:    style,
	}
}

// Refresh recomposes the preview from p.
func (m *PreviewPanelModel) Refresh(p *project.Project) {
	if p.ActiveKind() == project.KindDocument {
		m.content = m.renderMarkdown(compose.Pick(p.Files()).Document)
	} else {
		m.content = compose.Project(p)
	}
	m.viewport.SetContent(m.content)
}

// Content returns the rendered preview text.
func (m PreviewPanelModel) Content() string {
	return m.content
}

func (m PreviewPanelModel) renderMarkdown(src string) string {
	wrap := m.viewport.Width
	if wrap < 20 {
		wrap = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(m.style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return src
	}
	out, err := renderer.Render(src)
	if err != nil {
		return src
	}
	return strings.TrimRight(out, "\n")
}

// SetFocused sets whether this panel accepts scroll keys.
func (m *PreviewPanelModel) SetFocused(focused bool) {
	m.focused = focused
}

// SetSize sets the available dimensions and updates the viewport.
func (m *PreviewPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	// Reserve space for the border (2 lines top/bottom) and title (1 line)
	vpWidth := w - 2
	vpHeight := h - 3
	if vpWidth < 1 {
		vpWidth = 1
	}
	if vpHeight < 1 {
		vpHeight = 1
	}
	m.viewport.Width = vpWidth
	m.viewport.Height = vpHeight
}

// Update forwards scroll keys to the viewport.
func (m PreviewPanelModel) Update(msg tea.Msg) (PreviewPanelModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the preview inside a bordered panel.
func (m PreviewPanelModel) View() string {
	return borderFor(m.focused).Render(TitleStyle.Render("Preview") + "\n" + m.viewport.View())
}
