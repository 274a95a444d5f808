// ABOUTME: Session struct wrapping one playground project with undo/redo and a recomposed preview
// ABOUTME: Serializes project mutations under a lock and recomputes the preview after each change

package editor

import (
	"fmt"
	"sync"
	"time"

	"github.com/2389-research/stackrush/compose"
	"github.com/2389-research/stackrush/project"
	"github.com/2389-research/stackrush/share"
)

// DefaultTheme is the editor theme for new sessions.
const DefaultTheme = "vs-dark"

const maxHistory = 50

// historyEntry is a project snapshot: the share-encoded file list plus the
// active file, which the share format does not carry.
type historyEntry struct {
	files  string
	active string
}

// Session is one browser editing session around a project.
type Session struct {
	mu         sync.RWMutex
	ID         string
	Project    *project.Project
	Preview    string
	Theme      string
	CreatedAt  time.Time
	LastAccess time.Time

	undoStack []historyEntry
	redoStack []historyEntry
	flash     []string
}

// View is a consistent copy of session state for rendering.
type View struct {
	ID         string
	Files      []project.File
	Active     project.File
	HasActive  bool
	ActiveKind project.Kind
	Preview    string
	Revision   string
	Theme      string
	CanUndo    bool
	CanRedo    bool
}

func newSession(id string, p *project.Project, theme string) *Session {
	now := time.Now()
	sess := &Session{
		ID:         id,
		Project:    p,
		Theme:      theme,
		CreatedAt:  now,
		LastAccess: now,
		undoStack:  make([]historyEntry, 0, maxHistory),
		redoStack:  make([]historyEntry, 0, maxHistory),
	}
	p.OnRecompute(sess.recompute)
	return sess
}

// recompute runs inside project mutations, which always hold sess.mu.
func (sess *Session) recompute(p *project.Project) {
	sess.Preview = compose.Project(p)
}

func (sess *Session) touch() {
	sess.mu.Lock()
	sess.LastAccess = time.Now()
	sess.mu.Unlock()
}

func (sess *Session) lastAccess() time.Time {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return sess.LastAccess
}

// View returns a snapshot of the session for templates and handlers.
func (sess *Session) View() View {
	sess.mu.RLock()
	defer sess.mu.RUnlock()

	active, ok := sess.Project.Active()
	return View{
		ID:         sess.ID,
		Files:      sess.Project.Files(),
		Active:     active,
		HasActive:  ok,
		ActiveKind: sess.Project.ActiveKind(),
		Preview:    sess.Preview,
		Revision:   sess.Project.Revision().String(),
		Theme:      sess.Theme,
		CanUndo:    len(sess.undoStack) > 0,
		CanRedo:    len(sess.redoStack) > 0,
	}
}

// Files returns a copy of the project's files.
func (sess *Session) Files() []project.File {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return sess.Project.Files()
}

// Flash queues a one-shot notice shown on the next full page render.
func (sess *Session) Flash(msg string) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.flash = append(sess.flash, msg)
}

// TakeFlash returns and clears queued notices.
func (sess *Session) TakeFlash() []string {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	msgs := sess.flash
	sess.flash = nil
	return msgs
}

// mutate applies op under the write lock and records an undo entry when the
// project actually changed.
func (sess *Session) mutate(op func(p *project.Project) error) error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	before := sess.snapshot()
	rev := sess.Project.Revision()
	if err := op(sess.Project); err != nil {
		return err
	}
	if sess.Project.Revision() != rev {
		sess.pushUndo(before)
	}
	return nil
}

// CreateFile adds an empty file and makes it active.
func (sess *Session) CreateFile(name string, kind project.Kind) (project.File, error) {
	var created project.File
	err := sess.mutate(func(p *project.Project) error {
		f, err := p.CreateFile(name, kind)
		created = f
		return err
	})
	return created, err
}

// RenameFile renames a file; see project.Project.RenameFile.
func (sess *Session) RenameFile(oldName, newName string) error {
	return sess.mutate(func(p *project.Project) error {
		return p.RenameFile(oldName, newName)
	})
}

// DeleteFile removes a file; see project.Project.DeleteFile.
func (sess *Session) DeleteFile(name string) error {
	return sess.mutate(func(p *project.Project) error {
		return p.DeleteFile(name)
	})
}

// SetContent replaces a file's content. Empty text is ignored.
func (sess *Session) SetContent(name, text string) error {
	return sess.mutate(func(p *project.Project) error {
		return p.SetContent(name, text)
	})
}

// UpdateActive applies an editor change event to the active file.
func (sess *Session) UpdateActive(text string) error {
	return sess.mutate(func(p *project.Project) error {
		name := p.ActiveName()
		if name == "" {
			return &project.NotFoundError{Name: name}
		}
		return p.SetContent(name, text)
	})
}

// SetActive switches the edited file. Unknown names are ignored.
func (sess *Session) SetActive(name string) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.Project.SetActive(name)
}

// Ingest appends dropped files in order; rejected files are reported in the result.
func (sess *Session) Ingest(files []project.Dropped) project.IngestResult {
	var res project.IngestResult
	_ = sess.mutate(func(p *project.Project) error {
		res = p.IngestAll(files)
		return nil
	})
	return res
}

// Load replaces the whole project, as when a shared link is opened.
func (sess *Session) Load(files []project.File) {
	_ = sess.mutate(func(p *project.Project) error {
		p.Replace(files, "")
		return nil
	})
}

// SetTheme switches the editor theme.
func (sess *Session) SetTheme(theme string) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.Theme = theme
}

// Undo restores the previous project state
func (sess *Session) Undo() error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if len(sess.undoStack) == 0 {
		return fmt.Errorf("nothing to undo")
	}

	prev := sess.undoStack[len(sess.undoStack)-1]
	if err := sess.restore(prev); err != nil {
		return fmt.Errorf("failed to restore previous state: %w", err)
	}
	sess.undoStack = sess.undoStack[:len(sess.undoStack)-1]
	return nil
}

// Redo restores a previously undone state
func (sess *Session) Redo() error {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if len(sess.redoStack) == 0 {
		return fmt.Errorf("nothing to redo")
	}

	next := sess.redoStack[len(sess.redoStack)-1]
	if err := sess.restoreForward(next); err != nil {
		return fmt.Errorf("failed to restore next state: %w", err)
	}
	sess.redoStack = sess.redoStack[:len(sess.redoStack)-1]
	return nil
}

// restore swaps in entry and moves the current state onto the redo stack.
func (sess *Session) restore(entry historyEntry) error {
	current := sess.snapshot()
	if err := sess.apply(entry); err != nil {
		return err
	}
	sess.redoStack = append(sess.redoStack, current)
	return nil
}

// restoreForward swaps in entry and moves the current state onto the undo stack.
func (sess *Session) restoreForward(entry historyEntry) error {
	current := sess.snapshot()
	if err := sess.apply(entry); err != nil {
		return err
	}
	sess.undoStack = append(sess.undoStack, current)
	if len(sess.undoStack) > maxHistory {
		sess.undoStack = sess.undoStack[1:]
	}
	return nil
}

func (sess *Session) apply(entry historyEntry) error {
	files, err := share.DecodeFiles(entry.files)
	if err != nil {
		return err
	}
	sess.Project.Replace(files, entry.active)
	return nil
}

func (sess *Session) snapshot() historyEntry {
	return historyEntry{
		files:  share.EncodeFiles(sess.Project.Files()),
		active: sess.Project.ActiveName(),
	}
}

// pushUndo saves a state to the undo stack and clears the redo stack
func (sess *Session) pushUndo(entry historyEntry) {
	sess.undoStack = append(sess.undoStack, entry)
	if len(sess.undoStack) > maxHistory {
		sess.undoStack = sess.undoStack[1:]
	}
	sess.redoStack = nil
}

// ShareURL builds the share link for the current project rooted at base.
func (sess *Session) ShareURL(base string) (string, error) {
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	return share.URL(base, sess.Project)
}
