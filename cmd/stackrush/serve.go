// ABOUTME: The serve subcommand: runs the browser playground until interrupted.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/2389-research/stackrush/web"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr, baseURL string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the browser editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if addr != "" {
				cfg.Addr = addr
			}
			if baseURL != "" {
				cfg.BaseURL = baseURL
			}

			srv, err := web.NewServer(cfg, opts.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Public root for share links (overrides config)")
	return cmd
}
