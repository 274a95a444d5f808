// ABOUTME: Drag-and-drop ingestion: derives kinds from extensions and appends dropped files.
// ABOUTME: Files are processed in drop order; one rejected file never blocks the rest.
package project

import (
	"fmt"
	"io"
)

// Dropped is a file handed to the project by a drop or upload.
type Dropped struct {
	Name string
	Body io.Reader
}

// IngestResult reports what happened to each dropped file.
type IngestResult struct {
	Added    []string
	Rejected []error
}

// Ingest reads one dropped file and appends it. Unsupported extensions fail
// with UnsupportedFileTypeError before the body is read.
func (p *Project) Ingest(name string, body io.Reader) error {
	kind, ok := KindFromName(name)
	if !ok {
		return &UnsupportedFileTypeError{Name: name}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	return p.Append(File{Name: name, Content: string(data), Kind: kind})
}

// IngestAll ingests files one at a time in order and collects per-file failures.
func (p *Project) IngestAll(files []Dropped) IngestResult {
	var res IngestResult
	for _, f := range files {
		if err := p.Ingest(f.Name, f.Body); err != nil {
			res.Rejected = append(res.Rejected, err)
			continue
		}
		res.Added = append(res.Added, f.Name)
	}
	return res
}
