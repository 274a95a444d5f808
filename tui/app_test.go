// ABOUTME: Tests for the top-level AppModel that edits a project in the terminal.
// ABOUTME: Covers initialization, focus management, file operations, live editing, share, export, and view rendering.
package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/2389-research/stackrush/project"
	"github.com/2389-research/stackrush/share"
	tea "github.com/charmbracelet/bubbletea"
)

// testAppModel creates an AppModel over the sample project.
func testAppModel() AppModel {
	return NewAppModel(project.NewDefault(), Options{
		ProjectName: "MyWebsite",
		BaseURL:     "https://play.example.com/",
		Theme:       "vs-dark",
	})
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T, want AppModel", next)
	}
	return am, cmd
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typeText(t *testing.T, m AppModel, s string) AppModel {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestNewAppModel(t *testing.T) {
	m := testAppModel()

	if m.focus != FocusFiles {
		t.Errorf("initial focus = %d, want FocusFiles (%d)", m.focus, FocusFiles)
	}
	if m.editor.FileName() != "index.html" {
		t.Errorf("editor file = %q, want index.html", m.editor.FileName())
	}
	if !strings.Contains(m.editor.Value(), "Welcome to stack-rush!") {
		t.Errorf("editor value = %q", m.editor.Value())
	}
	if !strings.Contains(m.preview.Content(), "Welcome to stack-rush!") {
		t.Error("expected preview to show the composed document")
	}
	if sel, _ := m.files.Selected(); sel.Name != "index.html" {
		t.Errorf("cursor on %q, want index.html", sel.Name)
	}
}

func TestAppModelInitReturnsNil(t *testing.T) {
	if cmd := testAppModel().Init(); cmd != nil {
		t.Error("expected no initial command")
	}
}

func TestAppModelQuitKeys(t *testing.T) {
	m := testAppModel()

	_, cmd := update(t, m, key(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("expected quit command for ctrl+c")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command for q in the file list")
	}
}

func TestAppModelFocusCycle(t *testing.T) {
	m := testAppModel()

	want := []FocusTarget{FocusEditor, FocusPreview, FocusFiles}
	for _, w := range want {
		m, _ = update(t, m, key(tea.KeyTab))
		if m.focus != w {
			t.Fatalf("focus = %d, want %d", m.focus, w)
		}
	}

	m, _ = update(t, m, key(tea.KeyTab))
	m, _ = update(t, m, key(tea.KeyEsc))
	if m.focus != FocusFiles {
		t.Errorf("esc should return focus to the file list, got %d", m.focus)
	}
}

func TestAppModelActivateFile(t *testing.T) {
	m := testAppModel()

	m, _ = update(t, m, key(tea.KeyDown))
	m, _ = update(t, m, key(tea.KeyDown))
	m, _ = update(t, m, key(tea.KeyDown))
	m, _ = update(t, m, key(tea.KeyEnter))

	if m.project.ActiveName() != "README.md" {
		t.Fatalf("active = %q, want README.md", m.project.ActiveName())
	}
	if m.focus != FocusEditor {
		t.Error("expected focus to move to the editor")
	}
	if m.editor.FileName() != "README.md" {
		t.Errorf("editor file = %q", m.editor.FileName())
	}
	if !strings.Contains(m.preview.Content(), "Export") {
		t.Errorf("expected markdown preview, got %q", m.preview.Content())
	}
	if strings.Contains(m.preview.Content(), "<!DOCTYPE") {
		t.Error("markdown preview should render through glamour, not as HTML")
	}
}

func TestAppModelLiveEdit(t *testing.T) {
	m := testAppModel()
	m, _ = update(t, m, key(tea.KeyTab))

	m = typeText(t, m, "<p>hi</p>")

	f, _ := m.project.Lookup("index.html")
	if !strings.Contains(f.Content, "<p>hi</p>") {
		t.Fatalf("expected edit written to project, got %q", f.Content)
	}
	if !strings.Contains(m.preview.Content(), "<p>hi</p>") {
		t.Error("expected preview refreshed after edit")
	}
}

func TestAppModelLiveEditKeepsTabsAndCRLF(t *testing.T) {
	original := "function f() {\r\n\treturn 1;\r\n}\r\n"
	m := NewAppModel(project.New(project.File{Name: "app.js", Content: original, Kind: project.KindScript}), Options{})
	m, _ = update(t, m, key(tea.KeyTab))

	m = typeText(t, m, "x")

	f, _ := m.project.Lookup("app.js")
	if f.Content != original+"x" {
		t.Errorf("content = %q, want %q", f.Content, original+"x")
	}
}

func TestAppModelCreateFile(t *testing.T) {
	m := testAppModel()

	m, _ = update(t, m, key(tea.KeyCtrlN))
	if !m.prompt.IsActive() {
		t.Fatal("expected prompt to open")
	}
	m = typeText(t, m, "about.md")
	m, _ = update(t, m, key(tea.KeyEnter))

	if m.prompt.IsActive() {
		t.Error("expected prompt closed after submit")
	}
	if m.project.Len() != 5 {
		t.Fatalf("expected 5 files, got %d", m.project.Len())
	}
	if m.project.ActiveName() != "about.md" || m.editor.FileName() != "about.md" {
		t.Errorf("expected new file active and loaded, got %q / %q", m.project.ActiveName(), m.editor.FileName())
	}
	if m.focus != FocusEditor {
		t.Error("expected focus on the editor")
	}
}

func TestAppModelCreateFileErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no extension", "notes", "extension"},
		{"unsupported", "logo.svg", "extension"},
		{"duplicate", "index.html", "already exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := testAppModel()
			m, _ = update(t, m, key(tea.KeyCtrlN))
			m = typeText(t, m, tt.input)
			m, _ = update(t, m, key(tea.KeyEnter))

			if m.project.Len() != 4 {
				t.Errorf("expected project unchanged, got %d files", m.project.Len())
			}
			if !m.statusBar.isError || !strings.Contains(m.statusBar.Message(), tt.want) {
				t.Errorf("status = %q (error=%v), want error containing %q", m.statusBar.Message(), m.statusBar.isError, tt.want)
			}
		})
	}
}

func TestAppModelPromptEscCancels(t *testing.T) {
	m := testAppModel()
	m, _ = update(t, m, key(tea.KeyCtrlN))
	m = typeText(t, m, "x.css")
	m, _ = update(t, m, key(tea.KeyEsc))

	if m.prompt.IsActive() {
		t.Error("expected prompt closed")
	}
	if m.project.Len() != 4 {
		t.Error("expected no file created")
	}
}

func TestAppModelRenameFile(t *testing.T) {
	m := testAppModel()
	m, _ = update(t, m, key(tea.KeyDown))

	m, _ = update(t, m, key(tea.KeyCtrlR))
	if m.prompt.Value() != "styles.css" {
		t.Fatalf("expected prompt prefilled with styles.css, got %q", m.prompt.Value())
	}
	for range "styles.css" {
		m, _ = update(t, m, key(tea.KeyBackspace))
	}
	m = typeText(t, m, "main.css")
	m, _ = update(t, m, key(tea.KeyEnter))

	if _, ok := m.project.Lookup("main.css"); !ok {
		t.Fatal("expected styles.css renamed to main.css")
	}
	if sel, _ := m.files.Selected(); sel.Name != "main.css" {
		t.Errorf("cursor on %q, want main.css", sel.Name)
	}
}

func TestAppModelDeleteFile(t *testing.T) {
	m := testAppModel()

	m, _ = update(t, m, key(tea.KeyCtrlD))
	if _, ok := m.project.Lookup("index.html"); ok {
		t.Fatal("expected index.html deleted")
	}
	if m.project.ActiveName() != "styles.css" {
		t.Errorf("active = %q, want styles.css", m.project.ActiveName())
	}
	if m.editor.FileName() != "styles.css" {
		t.Errorf("editor file = %q, want styles.css", m.editor.FileName())
	}
}

func TestAppModelDeleteLastFileClearsEditor(t *testing.T) {
	m := NewAppModel(project.New(project.File{Name: "a.css", Kind: project.KindStyle}), Options{})
	m, _ = update(t, m, key(tea.KeyCtrlD))

	if m.project.Len() != 0 {
		t.Fatal("expected empty project")
	}
	if m.editor.FileName() != "" {
		t.Errorf("expected editor cleared, got %q", m.editor.FileName())
	}
	// Deleting again is a no-op on an empty list.
	m, _ = update(t, m, key(tea.KeyCtrlD))
	if m.statusBar.isError {
		t.Errorf("unexpected error %q", m.statusBar.Message())
	}
}

func TestAppModelShare(t *testing.T) {
	m := testAppModel()
	m, _ = update(t, m, key(tea.KeyCtrlS))

	link := m.ShareURL()
	if !strings.HasPrefix(link, "https://play.example.com/?project=") {
		t.Fatalf("unexpected share link %q", link)
	}
	p, err := share.FromURL(link)
	if err != nil {
		t.Fatalf("FromURL: %v", err)
	}
	if p.Len() != 4 {
		t.Errorf("expected 4 files in shared project, got %d", p.Len())
	}
}

func TestAppModelExport(t *testing.T) {
	var got []project.File
	m := NewAppModel(project.NewDefault(), Options{
		Export: func(files []project.File) (string, error) {
			got = files
			return "/tmp/MyWebsite.zip", nil
		},
	})

	m, cmd := update(t, m, key(tea.KeyCtrlE))
	if cmd == nil {
		t.Fatal("expected export command")
	}
	m, _ = update(t, m, cmd())

	if len(got) != 4 {
		t.Errorf("expected 4 exported files, got %d", len(got))
	}
	if !strings.Contains(m.statusBar.Message(), "/tmp/MyWebsite.zip") {
		t.Errorf("status = %q", m.statusBar.Message())
	}

	m, _ = update(t, m, ExportDoneMsg{Err: errors.New("disk full")})
	if !m.statusBar.isError || !strings.Contains(m.statusBar.Message(), "disk full") {
		t.Errorf("expected export error in status, got %q", m.statusBar.Message())
	}
}

func TestAppModelExportUnconfigured(t *testing.T) {
	m := testAppModel()
	m, cmd := update(t, m, key(tea.KeyCtrlE))
	if cmd != nil {
		t.Error("expected no command without an export function")
	}
	if !m.statusBar.isError {
		t.Error("expected an error notice")
	}
}

func TestAppModelView(t *testing.T) {
	m := testAppModel()
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View() before sizing = %q", got)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 30, Height: 8})
	if !strings.Contains(m.View(), "too small") {
		t.Error("expected size guard message")
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 40})
	view := m.View()
	for _, want := range []string{"Files", "index.html", "Preview", "Project: MyWebsite"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}

	m, _ = update(t, m, key(tea.KeyCtrlN))
	if !strings.Contains(m.View(), "New file name") {
		t.Error("expected prompt in view")
	}
}
