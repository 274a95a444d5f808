// ABOUTME: Top-level Bubble Tea AppModel that edits a project in the terminal.
// ABOUTME: Implements tea.Model (Init, Update, View) and routes keys to the file list, editor, preview, and prompt.
package tui

import (
	"fmt"
	"strings"

	"github.com/2389-research/stackrush/project"
	"github.com/2389-research/stackrush/share"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FocusTarget indicates which panel currently has keyboard focus.
type FocusTarget int

const (
	FocusFiles FocusTarget = iota
	FocusEditor
	FocusPreview
)

// ExportFunc writes files somewhere and reports where.
type ExportFunc func(files []project.File) (string, error)

// Options configures an AppModel.
type Options struct {
	ProjectName string
	BaseURL     string
	Theme       string
	Export      ExportFunc
}

// AppModel is the top-level Bubble Tea model that composes all TUI sub-panels
// around one project.
type AppModel struct {
	files     FileListModel
	editor    EditorPanelModel
	preview   PreviewPanelModel
	prompt    PromptModel
	statusBar StatusBarModel

	project  *project.Project
	opts     Options
	shareURL string

	focus  FocusTarget
	width  int
	height int
}

// NewAppModel creates an AppModel editing p.
func NewAppModel(p *project.Project, opts Options) AppModel {
	m := AppModel{
		files:     NewFileListModel(),
		editor:    NewEditorPanelModel(),
		preview:   NewPreviewPanelModel(opts.Theme),
		prompt:    NewPromptModel(),
		statusBar: NewStatusBarModel(opts.ProjectName),
		project:   p,
		opts:      opts,
		focus:     FocusFiles,
	}
	m.files.SetFocused(true)
	m.sync()
	m.files.SelectName(p.ActiveName())
	return m
}

// Project returns the project being edited.
func (m AppModel) Project() *project.Project {
	return m.project
}

// ShareURL returns the last share link generated with ctrl+s.
func (m AppModel) ShareURL() string {
	return m.shareURL
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Routes incoming messages to the appropriate
// sub-panel and returns the updated model with any follow-up commands.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case ExportDoneMsg:
		if msg.Err != nil {
			m.statusBar.SetMessage(fmt.Sprintf("export failed: %v", msg.Err), true)
		} else {
			m.statusBar.SetMessage("exported "+msg.Path, false)
		}
		return m, nil

	case StatusMsg:
		m.statusBar.SetMessage(msg.Text, msg.Error)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// View implements tea.Model. Renders the full TUI layout with all panels.
func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	// Minimum terminal size guard to prevent layout overflow
	if m.width < 60 || m.height < 12 {
		return fmt.Sprintf("Terminal too small (%dx%d). Minimum: 60x12.", m.width, m.height)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, m.files.View(), m.editor.View(), m.preview.View())

	var b strings.Builder
	b.WriteString(main)
	b.WriteString("\n")
	if m.prompt.IsActive() {
		b.WriteString(m.prompt.View())
		b.WriteString("\n")
	}
	b.WriteString(m.statusBar.View())
	return b.String()
}

// handleWindowSize splits the width between the three panels.
func (m AppModel) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	statusBarHeight := 1
	bodyHeight := m.height - statusBarHeight - 1
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	listWidth := m.width * 20 / 100
	if listWidth < 16 {
		listWidth = 16
	}
	editorWidth := (m.width - listWidth) / 2
	previewWidth := m.width - listWidth - editorWidth

	m.files.SetSize(listWidth, bodyHeight)
	m.editor.SetSize(editorWidth, bodyHeight)
	m.preview.SetSize(previewWidth, bodyHeight)
	m.preview.Refresh(m.project)
	m.statusBar.SetWidth(m.width)
	return m, nil
}

// handleKeyMsg processes keyboard input, routing to the prompt, app-level
// shortcuts, or the focused panel.
func (m AppModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// When the prompt is active, route keys there
	if m.prompt.IsActive() {
		switch msg.Type {
		case tea.KeyEnter:
			return m.submitPrompt()
		case tea.KeyEsc:
			m.prompt.Close()
			return m, nil
		}
		m.prompt = m.prompt.Update(msg)
		return m, nil
	}

	// App-level key bindings
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m.setFocus(m.nextFocus())
	case "esc":
		return m.setFocus(FocusFiles)
	case "ctrl+n":
		cmd := m.prompt.Open(PromptNewFile, "New file name (.html, .css, .js or .md)", "", "")
		return m, cmd
	case "ctrl+r":
		if target := m.targetName(); target != "" {
			cmd := m.prompt.Open(PromptRename, "Rename "+target, target, target)
			return m, cmd
		}
		return m, nil
	case "ctrl+d":
		return m.deleteTarget()
	case "ctrl+p":
		return m.setFocus(FocusPreview)
	case "ctrl+s":
		return m.shareProject()
	case "ctrl+e":
		return m.exportProject()
	}

	switch m.focus {
	case FocusFiles:
		return m.handleFileKeys(msg)
	case FocusEditor:
		return m.handleEditorKeys(msg)
	case FocusPreview:
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m AppModel) handleFileKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.files.MoveUp()
	case "down", "j":
		m.files.MoveDown()
	case "enter":
		f, ok := m.files.Selected()
		if !ok {
			return m, nil
		}
		m.project.SetActive(f.Name)
		m.sync()
		return m.setFocus(FocusEditor)
	}
	return m, nil
}

// handleEditorKeys forwards keys to the textarea and writes changes back to
// the loaded file.
func (m AppModel) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editor.FileName() == "" {
		return m, nil
	}
	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		if err := m.project.SetContent(m.editor.FileName(), m.editor.Content()); err != nil {
			m.statusBar.SetMessage(err.Error(), true)
		}
		m.preview.Refresh(m.project)
	}
	return m, cmd
}

func (m AppModel) submitPrompt() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.prompt.Value())
	mode := m.prompt.Mode()
	target := m.prompt.Target()
	m.prompt.Close()

	switch mode {
	case PromptNewFile:
		kind, ok := project.KindFromName(value)
		if !ok {
			m.statusBar.SetMessage("use a .html, .css, .js or .md extension", true)
			return m, nil
		}
		f, err := m.project.CreateFile(value, kind)
		if err != nil {
			m.statusBar.SetMessage(err.Error(), true)
			return m, nil
		}
		m.sync()
		m.files.SelectName(f.Name)
		m.statusBar.SetMessage("created "+f.Name, false)
		return m.setFocus(FocusEditor)

	case PromptRename:
		if err := m.project.RenameFile(target, value); err != nil {
			m.statusBar.SetMessage(err.Error(), true)
			return m, nil
		}
		m.sync()
		m.files.SelectName(value)
		return m, nil
	}
	return m, nil
}

func (m AppModel) deleteTarget() (tea.Model, tea.Cmd) {
	target := m.targetName()
	if target == "" {
		return m, nil
	}
	if err := m.project.DeleteFile(target); err != nil {
		m.statusBar.SetMessage(err.Error(), true)
		return m, nil
	}
	m.sync()
	m.statusBar.SetMessage("deleted "+target, false)
	return m, nil
}

func (m AppModel) shareProject() (tea.Model, tea.Cmd) {
	link, err := share.URL(m.opts.BaseURL, m.project)
	if err != nil {
		m.statusBar.SetMessage(err.Error(), true)
		return m, nil
	}
	m.shareURL = link
	m.statusBar.SetMessage("share link ready (printed on exit)", false)
	return m, nil
}

func (m AppModel) exportProject() (tea.Model, tea.Cmd) {
	if m.opts.Export == nil {
		m.statusBar.SetMessage("export is not configured", true)
		return m, nil
	}
	fn := m.opts.Export
	files := m.project.Files()
	m.statusBar.SetMessage("exporting...", false)
	return m, func() tea.Msg {
		path, err := fn(files)
		return ExportDoneMsg{Path: path, Err: err}
	}
}

// targetName is the file under the cursor when the file list has focus, and
// the active file otherwise.
func (m AppModel) targetName() string {
	if m.focus == FocusFiles {
		if f, ok := m.files.Selected(); ok {
			return f.Name
		}
		return ""
	}
	return m.project.ActiveName()
}

// sync pushes project state into every panel.
func (m *AppModel) sync() {
	active, ok := m.project.Active()
	m.files.SetFiles(m.project.Files(), active.Name)
	m.statusBar.SetProject(m.project.Len(), active.Name)
	if !ok {
		m.editor.Clear()
	} else if m.editor.FileName() != active.Name || m.editor.Content() != active.Content {
		m.editor.Load(active)
	}
	m.preview.Refresh(m.project)
}

func (m AppModel) setFocus(target FocusTarget) (tea.Model, tea.Cmd) {
	m.focus = target
	m.files.SetFocused(target == FocusFiles)
	m.preview.SetFocused(target == FocusPreview)
	cmd := m.editor.SetFocused(target == FocusEditor)
	return m, cmd
}

// nextFocus cycles the focus target between files, editor, and preview.
func (m AppModel) nextFocus() FocusTarget {
	switch m.focus {
	case FocusFiles:
		return FocusEditor
	case FocusEditor:
		return FocusPreview
	default:
		return FocusFiles
	}
}
