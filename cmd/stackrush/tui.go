// ABOUTME: The tui subcommand: edits a project in the terminal with a live preview.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/2389-research/stackrush/export"
	"github.com/2389-research/stackrush/project"
	"github.com/2389-research/stackrush/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newTUICmd(opts *rootOptions) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "tui [FILE...|LINK]",
		Short: "Edit a project in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := project.NewDefault()
			if len(args) > 0 {
				loaded, err := loadProject(args, cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				p = loaded
			}

			archive := filepath.Join(outDir, export.ArchiveName(opts.cfg.ProjectName))
			model := tui.NewAppModel(p, tui.Options{
				ProjectName: opts.cfg.ProjectName,
				BaseURL:     opts.cfg.BaseURL,
				Theme:       opts.cfg.Theme,
				Export: func(files []project.File) (string, error) {
					return archive, writeArchive(archive, files)
				},
			})

			final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("running tui: %w", err)
			}
			if m, ok := final.(tui.AppModel); ok && m.ShareURL() != "" {
				fmt.Fprintln(cmd.OutOrStdout(), m.ShareURL())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", ".", "Directory for exported archives")
	return cmd
}
