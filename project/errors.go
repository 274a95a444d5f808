// ABOUTME: Error taxonomy for project store operations and file ingestion.
// ABOUTME: Typed errors carry the offending name; sentinels support errors.Is matching.
package project

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateName is matched by DuplicateNameError.
	ErrDuplicateName = errors.New("file name already exists")

	// ErrNotFound is matched by NotFoundError.
	ErrNotFound = errors.New("file not found")

	// ErrUnsupportedFileType is matched by UnsupportedFileTypeError.
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrEmptyName is returned when a file is created with a blank name.
	ErrEmptyName = errors.New("file name must not be empty")

	// ErrInvalidKind is returned when a kind outside html/css/js/md is requested.
	ErrInvalidKind = errors.New("invalid file kind")
)

// DuplicateNameError reports a create or ingest that collides with an existing file.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("file %q already exists", e.Name)
}

func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// NotFoundError reports an operation that targets a missing file.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file %q not found", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UnsupportedFileTypeError reports an ingested file whose extension is not html, css, js or md.
type UnsupportedFileTypeError struct {
	Name string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.Name)
}

func (e *UnsupportedFileTypeError) Is(target error) bool {
	return target == ErrUnsupportedFileType
}
