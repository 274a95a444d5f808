// ABOUTME: Resolves command arguments into a project: a share link, local files, or the samples.
// ABOUTME: Local files go through the same ingestion rules as drag-and-drop in the editor.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/2389-research/stackrush/project"
	"github.com/2389-research/stackrush/share"
)

// errNoFiles is returned when none of the given files could be ingested.
var errNoFiles = errors.New("no supported files (.html, .css, .js, .md) given")

func looksLikeURL(arg string) bool {
	return strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://")
}

// loadProject builds a project from args. One http(s) argument is decoded as a
// share link; otherwise every argument is read as a local file. Rejected files
// are reported on warn and skipped.
func loadProject(args []string, warn io.Writer) (*project.Project, error) {
	if len(args) == 1 && looksLikeURL(args[0]) {
		p, err := share.FromURL(args[0])
		if err != nil {
			return nil, fmt.Errorf("opening share link: %w", err)
		}
		return p, nil
	}
	return readLocalFiles(args, warn)
}

func readLocalFiles(paths []string, warn io.Writer) (*project.Project, error) {
	dropped := make([]project.Dropped, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		dropped = append(dropped, project.Dropped{Name: filepath.Base(path), Body: f})
	}

	p := project.New()
	res := p.IngestAll(dropped)
	for _, err := range res.Rejected {
		fmt.Fprintf(warn, "warning: skipped: %v\n", err)
	}
	if len(res.Added) == 0 {
		return nil, errNoFiles
	}
	return p, nil
}
