// ABOUTME: FileListModel renders the project's files with a cursor and active-file marker.
// ABOUTME: Keeps the cursor within bounds as files are added, renamed, and deleted.
package tui

import (
	"fmt"
	"strings"

	"github.com/2389-research/stackrush/project"
)

// FileListModel is the left-hand file browser.
type FileListModel struct {
	files   []project.File
	active  string
	cursor  int
	focused bool
	width   int
	height  int
}

// NewFileListModel creates an empty file list.
func NewFileListModel() FileListModel {
	return FileListModel{}
}

// SetFiles replaces the listed files and clamps the cursor.
func (m *FileListModel) SetFiles(files []project.File, active string) {
	m.files = files
	m.active = active
	if m.cursor >= len(files) {
		m.cursor = len(files) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// SelectName moves the cursor onto the named file when it is listed.
func (m *FileListModel) SelectName(name string) {
	for i, f := range m.files {
		if f.Name == name {
			m.cursor = i
			return
		}
	}
}

// MoveUp moves the cursor up one row.
func (m *FileListModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// MoveDown moves the cursor down one row.
func (m *FileListModel) MoveDown() {
	if m.cursor < len(m.files)-1 {
		m.cursor++
	}
}

// Selected returns the file under the cursor.
func (m FileListModel) Selected() (project.File, bool) {
	if m.cursor < 0 || m.cursor >= len(m.files) {
		return project.File{}, false
	}
	return m.files[m.cursor], true
}

// SetFocused sets whether this panel accepts keyboard input.
func (m *FileListModel) SetFocused(focused bool) {
	m.focused = focused
}

// SetSize sets the available dimensions.
func (m *FileListModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// View renders the file list inside a bordered panel.
func (m FileListModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Files"))
	b.WriteString("\n")

	if len(m.files) == 0 {
		b.WriteString(UnknownStyle.Render("no files (ctrl+n)"))
	}
	for i, f := range m.files {
		marker := "  "
		if f.Name == m.active {
			marker = ActiveMarker.Render("* ")
		}
		row := fmt.Sprintf("%s %s", f.Name, StyleForKind(f.Kind).Render(f.Kind.Label()))
		if i == m.cursor && m.focused {
			row = SelectedStyle.Render(row)
		}
		b.WriteString(marker + row)
		if i < len(m.files)-1 {
			b.WriteString("\n")
		}
	}

	style := borderFor(m.focused)
	if m.width > 2 {
		style = style.Width(m.width - 2)
	}
	if m.height > 2 {
		style = style.Height(m.height - 2)
	}
	return style.Render(b.String())
}
