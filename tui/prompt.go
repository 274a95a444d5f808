// ABOUTME: PromptModel is a single-line text input dialog for naming new and renamed files.
// ABOUTME: Renders a styled dialog around a bubbles textinput while active.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PromptMode identifies what a submitted prompt value is used for.
type PromptMode int

const (
	PromptNone PromptMode = iota
	PromptNewFile
	PromptRename
)

// PromptModel asks the user for a file name.
type PromptModel struct {
	textInput textinput.Model
	mode      PromptMode
	question  string
	target    string
}

// NewPromptModel creates an inactive prompt.
func NewPromptModel() PromptModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 128
	return PromptModel{textInput: ti}
}

// Open activates the prompt. target is the file being renamed, if any.
func (m *PromptModel) Open(mode PromptMode, question, target, initial string) tea.Cmd {
	m.mode = mode
	m.question = question
	m.target = target
	m.textInput.SetValue(initial)
	m.textInput.CursorEnd()
	return m.textInput.Focus()
}

// Close deactivates the prompt and clears its input.
func (m *PromptModel) Close() {
	m.mode = PromptNone
	m.question = ""
	m.target = ""
	m.textInput.Reset()
	m.textInput.Blur()
}

// IsActive returns whether the prompt is visible.
func (m PromptModel) IsActive() bool {
	return m.mode != PromptNone
}

// Mode returns the active prompt mode.
func (m PromptModel) Mode() PromptMode {
	return m.mode
}

// Target returns the file the prompt acts on.
func (m PromptModel) Target() string {
	return m.target
}

// Value returns the typed text.
func (m PromptModel) Value() string {
	return m.textInput.Value()
}

// Update forwards key events to the text input.
func (m PromptModel) Update(msg tea.Msg) PromptModel {
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	_ = cmd // textinput cmds (cursor blink) are ignored in sub-model updates
	return m
}

// View renders the dialog, or "" when inactive.
func (m PromptModel) View() string {
	if !m.IsActive() {
		return ""
	}
	return PromptStyle.Render("[?] " + m.question + "\n" + m.textInput.View())
}
