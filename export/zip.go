// ABOUTME: Zip archive export with one entry per project file, content written verbatim.
// ABOUTME: Also derives a safe "<ProjectName>.zip" download name.
package export

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/2389-research/stackrush/project"
)

// DefaultProjectName names archives when no project name is configured.
const DefaultProjectName = "MyWebsite"

// WriteZip streams a zip archive of files to w. Entries keep project order
// and names; modification times are fixed at modTime.
func WriteZip(w io.Writer, files []project.File, modTime time.Time) error {
	zw := zip.NewWriter(w)
	for _, f := range files {
		header := &zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: modTime,
		}
		entry, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("creating zip entry %s: %w", f.Name, err)
		}
		if _, err := io.WriteString(entry, f.Content); err != nil {
			return fmt.Errorf("writing zip entry %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing zip: %w", err)
	}
	return nil
}

// ArchiveName strips path separators, control chars, and quotes from a project
// name and appends ".zip". Falls back to DefaultProjectName when nothing is left.
func ArchiveName(projectName string) string {
	var b strings.Builder
	for _, r := range projectName {
		if r == '/' || r == '\\' || r == '"' || r == '\'' || r < 32 || r == 127 {
			continue
		}
		b.WriteRune(r)
	}

	name := strings.TrimSpace(b.String())
	name = strings.TrimSuffix(name, ".zip")
	if name == "" {
		name = DefaultProjectName
	}
	return name + ".zip"
}
