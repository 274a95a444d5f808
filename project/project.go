// ABOUTME: Project store: an ordered set of named, typed text files with an active file.
// ABOUTME: Every mutation bumps a ULID revision and runs the registered recompute hook.
package project

import (
	"crypto/rand"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
)

// File is one named text file in a project.
type File struct {
	Name    string `json:"name"`
	Content string `json:"content"`
	Kind    Kind   `json:"type"`
}

// RecomputeFunc is invoked after every successful mutation.
type RecomputeFunc func(p *Project)

// Project is the single source of truth for a playground's files. It is not
// safe for concurrent use; callers serialize access (see editor.Session).
type Project struct {
	files     []File
	active    string
	revision  ulid.ULID
	recompute RecomputeFunc
}

// New creates a project holding a copy of files, with the first file active.
func New(files ...File) *Project {
	p := &Project{}
	p.files = append([]File(nil), files...)
	if len(p.files) > 0 {
		p.active = p.files[0].Name
	}
	p.revision = newRevision()
	return p
}

func newRevision() ulid.ULID {
	return ulid.MustNew(ulid.Now(), rand.Reader)
}

// OnRecompute registers fn to run after each mutation and runs it once immediately.
func (p *Project) OnRecompute(fn RecomputeFunc) {
	p.recompute = fn
	if fn != nil {
		fn(p)
	}
}

// changed records a new revision and triggers recomposition.
func (p *Project) changed() {
	p.revision = newRevision()
	if p.recompute != nil {
		p.recompute(p)
	}
}

// Revision identifies the current state; it changes on every mutation.
func (p *Project) Revision() ulid.ULID {
	return p.revision
}

// Files returns a copy of the files in project order.
func (p *Project) Files() []File {
	return append([]File(nil), p.files...)
}

// Len returns the number of files.
func (p *Project) Len() int {
	return len(p.files)
}

// ActiveName returns the active file's name, or "" when the project is empty.
func (p *Project) ActiveName() string {
	return p.active
}

// Active returns the active file.
func (p *Project) Active() (File, bool) {
	return p.Lookup(p.active)
}

// ActiveKind returns the active file's kind, or "" when there is none.
func (p *Project) ActiveKind() Kind {
	f, ok := p.Active()
	if !ok {
		return ""
	}
	return f.Kind
}

// Lookup returns the first file named name.
func (p *Project) Lookup(name string) (File, bool) {
	if i := p.index(name); i >= 0 {
		return p.files[i], true
	}
	return File{}, false
}

func (p *Project) index(name string) int {
	for i := range p.files {
		if p.files[i].Name == name {
			return i
		}
	}
	return -1
}

// CreateFile appends an empty file and makes it active. The kind's canonical
// extension is appended when name lacks it; the collision check uses the final name.
func (p *Project) CreateFile(name string, kind Kind) (File, error) {
	if !kind.Valid() {
		return File{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return File{}, ErrEmptyName
	}
	name = withExtension(name, kind)
	if p.index(name) >= 0 {
		return File{}, &DuplicateNameError{Name: name}
	}

	f := File{Name: name, Kind: kind}
	p.files = append(p.files, f)
	p.active = name
	p.changed()
	return f, nil
}

// RenameFile renames oldName to newName. A blank newName is ignored. The new
// name is not checked against existing files.
func (p *Project) RenameFile(oldName, newName string) error {
	i := p.index(oldName)
	if i < 0 {
		return &NotFoundError{Name: oldName}
	}
	if strings.TrimSpace(newName) == "" || newName == oldName {
		return nil
	}

	p.files[i].Name = newName
	if p.active == oldName {
		p.active = newName
	}
	p.changed()
	return nil
}

// DeleteFile removes name. If it was active, the first remaining file becomes
// active, or none when the project is empty.
func (p *Project) DeleteFile(name string) error {
	i := p.index(name)
	if i < 0 {
		return &NotFoundError{Name: name}
	}

	p.files = append(p.files[:i], p.files[i+1:]...)
	if p.active == name {
		p.active = ""
		if len(p.files) > 0 {
			p.active = p.files[0].Name
		}
	}
	p.changed()
	return nil
}

// SetContent replaces the content of name. Empty text is ignored so that
// spurious empty change events from an editor never clear a file.
func (p *Project) SetContent(name, text string) error {
	i := p.index(name)
	if i < 0 {
		return &NotFoundError{Name: name}
	}
	if text == "" || p.files[i].Content == text {
		return nil
	}

	p.files[i].Content = text
	p.changed()
	return nil
}

// SetActive targets name for editing. Unknown names are ignored.
func (p *Project) SetActive(name string) {
	if p.index(name) < 0 || p.active == name {
		return
	}
	p.active = name
	p.changed()
}

// Append adds a fully formed file without changing the active file, used for
// ingestion. An empty project gets the new file as its active file.
func (p *Project) Append(f File) error {
	if !f.Kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, f.Kind)
	}
	if p.index(f.Name) >= 0 {
		return &DuplicateNameError{Name: f.Name}
	}

	p.files = append(p.files, f)
	if p.active == "" {
		p.active = f.Name
	}
	p.changed()
	return nil
}

// Replace swaps in a whole new file set. active must name one of files; when
// it does not, the first file becomes active.
func (p *Project) Replace(files []File, active string) {
	p.files = append([]File(nil), files...)
	p.active = ""
	if p.index(active) >= 0 {
		p.active = active
	} else if len(p.files) > 0 {
		p.active = p.files[0].Name
	}
	p.changed()
}
