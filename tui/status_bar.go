// ABOUTME: Implements a single-line status bar for the bottom of the TUI showing project state.
// ABOUTME: Displays project name, file count, active file, and the latest notice or error.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// StatusBarModel displays project status in a single line.
type StatusBarModel struct {
	projectName string
	fileCount   int
	activeFile  string
	message     string
	isError     bool
	width       int
}

// NewStatusBarModel creates a new StatusBarModel for the named project.
func NewStatusBarModel(projectName string) StatusBarModel {
	return StatusBarModel{projectName: projectName}
}

// SetProject updates the file count and active file name.
func (m *StatusBarModel) SetProject(fileCount int, activeFile string) {
	m.fileCount = fileCount
	m.activeFile = activeFile
}

// SetMessage shows a notice, or an error when isError is set.
func (m *StatusBarModel) SetMessage(msg string, isError bool) {
	m.message = msg
	m.isError = isError
}

// Message returns the current notice text.
func (m StatusBarModel) Message() string {
	return m.message
}

// SetWidth sets the bar width for rendering.
func (m *StatusBarModel) SetWidth(w int) {
	m.width = w
}

// View renders the status bar as a single styled line.
func (m StatusBarModel) View() string {
	active := m.activeFile
	if active == "" {
		active = "none"
	}

	content := fmt.Sprintf("Project: %s | %d files | Active: %s",
		m.projectName, m.fileCount, active)
	if m.message != "" {
		style := NoticeStyle
		if m.isError {
			style = ErrorStyle
		}
		content += " | " + style.Render(m.message)
	}

	style := StatusBarStyle.Width(m.width)

	return lipgloss.PlaceHorizontal(m.width, lipgloss.Left, style.Render(content))
}
