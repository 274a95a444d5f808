// ABOUTME: File kinds (markup, style, script, document) and their canonical extensions.
// ABOUTME: Maps file names to kinds for ingestion and derives default extensions on create.
package project

import (
	"path"
	"strings"
)

// Kind is the logical role of a file, independent of its literal name.
// The string values double as the wire form used in share links.
type Kind string

const (
	KindMarkup   Kind = "html"
	KindStyle    Kind = "css"
	KindScript   Kind = "js"
	KindDocument Kind = "md"
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindMarkup, KindStyle, KindScript, KindDocument}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindMarkup, KindStyle, KindScript, KindDocument:
		return true
	}
	return false
}

// Extension returns the canonical file extension for the kind, including the dot.
func (k Kind) Extension() string {
	if !k.Valid() {
		return ""
	}
	return "." + string(k)
}

// Label returns a human-readable name for the kind.
func (k Kind) Label() string {
	switch k {
	case KindMarkup:
		return "HTML"
	case KindStyle:
		return "CSS"
	case KindScript:
		return "JavaScript"
	case KindDocument:
		return "Markdown"
	}
	return "unknown"
}

// ParseKind accepts either the wire value ("html") or the role name ("markup").
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html", "markup":
		return KindMarkup, true
	case "css", "style":
		return KindStyle, true
	case "js", "script":
		return KindScript, true
	case "md", "document", "markdown":
		return KindDocument, true
	}
	return "", false
}

// KindFromName derives a kind from a file name's extension (case-insensitive).
func KindFromName(name string) (Kind, bool) {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return "", false
	}
	k := Kind(strings.TrimPrefix(ext, "."))
	if !k.Valid() {
		return "", false
	}
	return k, true
}

// withExtension appends the kind's canonical extension unless name already ends with it.
func withExtension(name string, k Kind) string {
	ext := k.Extension()
	if strings.HasSuffix(strings.ToLower(name), ext) {
		return name
	}
	return name + ext
}
