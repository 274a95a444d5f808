// ABOUTME: The share, embed and inspect subcommands for working with share links from the shell.
// ABOUTME: inspect prints a Markdown summary of a shared project's files.
package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/2389-research/stackrush/project"
	"github.com/2389-research/stackrush/share"
	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"
)

func newShareCmd(opts *rootOptions) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "share FILE...",
		Short: "Print a share link for local files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := readLocalFiles(args, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			link, err := share.URL(pick(baseURL, opts.cfg.BaseURL), p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Root for the link (overrides config)")
	return cmd
}

func newEmbedCmd(opts *rootOptions) *cobra.Command {
	var baseURL, github string

	cmd := &cobra.Command{
		Use:   "embed [FILE...|LINK]",
		Short: "Print an iframe snippet, or a Cloudflare deploy button with --github",
		RunE: func(cmd *cobra.Command, args []string) error {
			if github != "" {
				user, repo, _ := strings.Cut(github, "/")
				snippet, _, err := share.DeployButton(user, repo)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), snippet)
				return nil
			}

			if len(args) == 0 {
				return fmt.Errorf("embed needs files or a share link")
			}
			p, err := loadProject(args, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			link, err := share.URL(pick(baseURL, opts.cfg.BaseURL), p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), share.EmbedSnippet(link))
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Root for the link (overrides config)")
	cmd.Flags().StringVar(&github, "github", "", "Print a deploy button for github.com/USER/REPO instead")
	return cmd
}

func newInspectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect LINK",
		Short: "Describe the files inside a share link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := share.FromURL(args[0])
			if err != nil {
				return err
			}
			return writeInspection(cmd.OutOrStdout(), p)
		},
	}
}

// writeInspection renders a Markdown table describing p's files.
func writeInspection(w io.Writer, p *project.Project) error {
	md := markdown.NewMarkdown(w)
	md.H1("Shared project")
	md.PlainText("")

	rows := make([][]string, 0, p.Len())
	for _, f := range p.Files() {
		active := ""
		if f.Name == p.ActiveName() {
			active = "yes"
		}
		rows = append(rows, []string{
			"`" + f.Name + "`",
			f.Kind.Label(),
			strconv.Itoa(len(f.Content)),
			strconv.Itoa(lineCount(f.Content)),
			active,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"File", "Type", "Bytes", "Lines", "Active"},
		Rows:   rows,
	})
	md.PlainText("")
	md.PlainText(fmt.Sprintf("%d files", p.Len()))
	return md.Build()
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

func pick(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}
