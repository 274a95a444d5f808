// ABOUTME: Entry point for the stackrush CLI: browser playground server, terminal editor, and share tooling.
// ABOUTME: Builds the cobra command tree and loads configuration, .env and logging before each command.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/2389-research/stackrush/config"
	"github.com/2389-research/stackrush/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions carries the persistent flags and the state every subcommand
// shares once PersistentPreRunE has run.
type rootOptions struct {
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "stackrush",
		Short: "stackrush - a live HTML/CSS/JS/Markdown playground",
		Long: `stackrush edits small web projects with a live preview, shares them as
self-contained links, and exports them as deployable ZIP archives.

Run "stackrush serve" for the browser editor or "stackrush tui" for the
terminal editor.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loadDotEnvAuto()

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg

			logger, err := logging.New(opts.verbose)
			if err != nil {
				return err
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/stackrush/config.yaml)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newServeCmd(opts),
		newTUICmd(opts),
		newShareCmd(opts),
		newEmbedCmd(opts),
		newInspectCmd(opts),
		newExportCmd(opts),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// Skips config loading so a broken config never hides the version.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stackrush %s\n", version)
		},
	}
}
