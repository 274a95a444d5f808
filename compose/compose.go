// ABOUTME: Preview compositor that merges per-kind file contents into one standalone HTML document.
// ABOUTME: Markdown-active projects render through goldmark; others inline CSS and JS around the markup.
package compose

import (
	"bytes"
	"html"
	"strings"

	"github.com/2389-research/stackrush/project"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// TailwindCDN is the utility-CSS framework loaded by every composed document.
const TailwindCDN = "https://cdn.tailwindcss.com"

// markdownStyles is the default typography for rendered markdown documents.
const markdownStyles = `
      body { font-family: sans-serif; padding: 20px; }
      h1, h2, h3, h4, h5, h6 { font-weight: bold; margin-top: 1em; }
      pre { background: #f3f4f6; padding: 10px; border-radius: 6px; }
      code { background: #e5e7eb; padding: 2px 4px; border-radius: 4px; }
`

// Sources holds the content picked for each kind.
type Sources struct {
	Markup   string
	Style    string
	Script   string
	Document string
}

// Pick returns the content of the first file of each kind in project order.
// Kinds with no file yield the empty string; later files of a kind are ignored.
func Pick(files []project.File) Sources {
	var src Sources
	seen := make(map[project.Kind]bool, 4)
	for _, f := range files {
		if seen[f.Kind] {
			continue
		}
		seen[f.Kind] = true
		switch f.Kind {
		case project.KindMarkup:
			src.Markup = f.Content
		case project.KindStyle:
			src.Style = f.Content
		case project.KindScript:
			src.Script = f.Content
		case project.KindDocument:
			src.Document = f.Content
		}
	}
	return src
}

// Compose builds the preview document for files given the active file's kind.
// File contents are inserted verbatim; the preview frame's sandbox is the only
// isolation boundary.
func Compose(files []project.File, active project.Kind) string {
	src := Pick(files)
	if active == project.KindDocument {
		return documentShell(RenderMarkdown(src.Document))
	}
	return siteShell(src)
}

// Project composes p's current files against its active kind.
func Project(p *project.Project) string {
	return Compose(p.Files(), p.ActiveKind())
}

func siteShell(src Sources) string {
	var buf strings.Builder
	buf.WriteString("<!DOCTYPE html>\n<html>\n  <head>\n")
	buf.WriteString("    <meta charset=\"UTF-8\" />\n")
	buf.WriteString("    <script src=\"" + TailwindCDN + "\"></script>\n")
	buf.WriteString("    <style>" + src.Style + "</style>\n")
	buf.WriteString("  </head>\n  <body>\n")
	buf.WriteString("    " + src.Markup + "\n")
	buf.WriteString("    <script>" + src.Script + "</script>\n")
	buf.WriteString("  </body>\n</html>\n")
	return buf.String()
}

func documentShell(body string) string {
	var buf strings.Builder
	buf.WriteString("<!DOCTYPE html>\n<html>\n  <head>\n")
	buf.WriteString("    <meta charset=\"UTF-8\" />\n")
	buf.WriteString("    <script src=\"" + TailwindCDN + "\"></script>\n")
	buf.WriteString("    <style>" + markdownStyles + "    </style>\n")
	buf.WriteString("  </head>\n  <body>\n")
	buf.WriteString(body)
	buf.WriteString("  </body>\n</html>\n")
	return buf.String()
}

// RenderMarkdown converts markdown to HTML with GitHub-flavored extensions.
// Raw HTML passes through, matching how the rest of the preview trusts content.
func RenderMarkdown(input string) string {
	var buf bytes.Buffer
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
	if err := md.Convert([]byte(input), &buf); err != nil {
		return "<pre>" + html.EscapeString(input) + "</pre>\n"
	}
	return buf.String()
}
