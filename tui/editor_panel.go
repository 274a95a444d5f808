// ABOUTME: EditorPanelModel wraps a bubbles textarea bound to the project's active file.
// ABOUTME: Tracks which file is loaded so edits are written back to the right file with untouched lines kept byte for byte.
package tui

import (
	"strings"

	"github.com/2389-research/stackrush/project"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// EditorPanelModel is the text editing surface.
type EditorPanelModel struct {
	textarea textarea.Model
	fileName string
	kind     project.Kind

	// The textarea expands tabs and folds \r\n and \r into \n. original,
	// lines and endings hold the file as loaded; loadedValue and baseline
	// are the textarea's rendering of it.
	original    string
	loadedValue string
	lines       []string
	endings     []string
	baseline    []string
	eol         string

	focused bool
	width   int
	height  int
}

// NewEditorPanelModel creates an editor with no file loaded.
func NewEditorPanelModel() EditorPanelModel {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.Placeholder = "Select a file to edit."
	return EditorPanelModel{textarea: ta}
}

// Load replaces the buffer with f's content.
func (m *EditorPanelModel) Load(f project.File) {
	m.fileName = f.Name
	m.kind = f.Kind
	m.textarea.SetValue(f.Content)

	m.original = f.Content
	m.loadedValue = m.textarea.Value()
	m.lines, m.endings = splitLines(f.Content)
	m.baseline = strings.Split(m.loadedValue, "\n")
	m.eol = "\n"
	if strings.Contains(f.Content, "\r\n") {
		m.eol = "\r\n"
	}
	if len(m.baseline) != len(m.lines) {
		m.lines, m.endings, m.baseline = nil, nil, nil
	}
}

// Clear unloads the current file.
func (m *EditorPanelModel) Clear() {
	m.fileName = ""
	m.kind = ""
	m.original, m.loadedValue = "", ""
	m.lines, m.endings, m.baseline = nil, nil, nil
	m.textarea.Reset()
}

// FileName returns the name of the loaded file, or "" when none is loaded.
func (m EditorPanelModel) FileName() string {
	return m.fileName
}

// Value returns the buffer content.
func (m EditorPanelModel) Value() string {
	return m.textarea.Value()
}

// Content returns the file content the buffer represents. Lines before and
// after the edited region keep their loaded bytes; edited lines take the
// buffer text and the file's line ending.
func (m EditorPanelModel) Content() string {
	value := m.textarea.Value()
	if m.fileName != "" && value == m.loadedValue {
		return m.original
	}
	if m.baseline == nil {
		return value
	}
	edited := strings.Split(value, "\n")

	limit := min(len(edited), len(m.baseline))
	prefix := 0
	for prefix < limit && edited[prefix] == m.baseline[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < limit-prefix && edited[len(edited)-1-suffix] == m.baseline[len(m.baseline)-1-suffix] {
		suffix++
	}

	var b strings.Builder
	for i := 0; i < prefix; i++ {
		b.WriteString(m.lines[i])
		if i < len(edited)-1 {
			if m.endings[i] == "" {
				b.WriteString(m.eol)
			} else {
				b.WriteString(m.endings[i])
			}
		}
	}
	for i := prefix; i < len(edited)-suffix; i++ {
		b.WriteString(edited[i])
		if i < len(edited)-1 {
			b.WriteString(m.eol)
		}
	}
	for i := len(m.lines) - suffix; i < len(m.lines); i++ {
		b.WriteString(m.lines[i])
		b.WriteString(m.endings[i])
	}
	return b.String()
}

// splitLines splits s at \r\n, \n and \r, returning each line and the
// terminator that followed it. The last line's terminator is empty.
func splitLines(s string) (lines, endings []string) {
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, s[start:i])
			endings = append(endings, "\n")
			start = i + 1
		case '\r':
			lines = append(lines, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				endings = append(endings, "\r\n")
				i++
			} else {
				endings = append(endings, "\r")
			}
			start = i + 1
		}
	}
	return append(lines, s[start:]), append(endings, "")
}

// SetFocused focuses or blurs the textarea.
func (m *EditorPanelModel) SetFocused(focused bool) tea.Cmd {
	m.focused = focused
	if focused {
		return m.textarea.Focus()
	}
	m.textarea.Blur()
	return nil
}

// SetSize sets the available dimensions, reserving the border and title.
func (m *EditorPanelModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	if w > 2 {
		m.textarea.SetWidth(w - 2)
	}
	if h > 3 {
		m.textarea.SetHeight(h - 3)
	}
}

// Update forwards key events to the textarea.
func (m EditorPanelModel) Update(msg tea.Msg) (EditorPanelModel, tea.Cmd) {
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// View renders the editor inside a bordered panel.
func (m EditorPanelModel) View() string {
	title := "Editor"
	if m.fileName != "" {
		title = m.fileName + " " + StyleForKind(m.kind).Render(m.kind.Label())
	}
	return borderFor(m.focused).Render(TitleStyle.Render(title) + "\n" + m.textarea.View())
}
