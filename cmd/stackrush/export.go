// ABOUTME: The export subcommand: writes a project from files or a share link as a ZIP archive.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/2389-research/stackrush/export"
	"github.com/2389-research/stackrush/project"
	"github.com/spf13/cobra"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export FILE...|LINK",
		Short: "Write a project as a ready-to-deploy ZIP archive",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := loadProject(args, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if output == "" {
				output = export.ArchiveName(opts.cfg.ProjectName)
			}
			if err := writeArchive(output, p.Files()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Archive path (default: <project_name>.zip)")
	return cmd
}

// writeArchive creates path and writes files into it as a zip archive.
func writeArchive(path string, files []project.File) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	if err := export.WriteZip(f, files, time.Now()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
