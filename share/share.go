// ABOUTME: Share codec that turns a project into a percent-encoded query value and back.
// ABOUTME: Also builds share URLs and the copy-paste iframe embed fragment.
package share

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/2389-research/stackrush/project"
)

// QueryParam is the query-string key that carries a shared project.
const QueryParam = "project"

// ErrDecode is matched by every DecodeError.
var ErrDecode = errors.New("invalid shared project")

// DecodeError reports a malformed shared-project payload.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid shared project: %s: %v", e.Reason, e.Err)
	}
	return "invalid shared project: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// payload is the wire form. Files is a pointer so a missing field is
// distinguishable from an empty list.
type payload struct {
	Files *[]project.File `json:"files"`
}

// Encode serializes the project's files (name, content, type) as JSON and
// percent-encodes the result for use as a single query value.
func Encode(p *project.Project) string {
	return EncodeFiles(p.Files())
}

// EncodeFiles is Encode for a bare file list.
func EncodeFiles(files []project.File) string {
	if files == nil {
		files = []project.File{}
	}
	// HTML characters stay literal so links match JSON.stringify output.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload{Files: &files}); err != nil {
		// A struct of strings cannot fail to marshal.
		panic(fmt.Sprintf("share: marshal files: %v", err))
	}
	return EscapeComponent(strings.TrimSuffix(buf.String(), "\n"))
}

// EscapeComponent percent-encodes s so it survives as a query value. Spaces
// become %20 rather than '+'.
func EscapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Decode reverses Encode. The returned project holds the decoded files in
// order with the first one active.
func Decode(value string) (*project.Project, error) {
	files, err := DecodeFiles(value)
	if err != nil {
		return nil, err
	}
	return project.New(files...), nil
}

// DecodeFiles reverses EncodeFiles.
func DecodeFiles(value string) ([]project.File, error) {
	raw, err := url.QueryUnescape(value)
	if err != nil {
		return nil, &DecodeError{Reason: "bad percent-encoding", Err: err}
	}

	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, &DecodeError{Reason: "bad JSON", Err: err}
	}
	if p.Files == nil {
		return nil, &DecodeError{Reason: "missing files field"}
	}
	for i, f := range *p.Files {
		if !f.Kind.Valid() {
			return nil, &DecodeError{Reason: fmt.Sprintf("file %d (%q) has unknown type %q", i, f.Name, f.Kind)}
		}
	}
	return *p.Files, nil
}

// URL builds the share link for p rooted at base. Any query already on base
// is replaced.
func URL(base string, p *project.Project) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base URL: %w", err)
	}
	u.RawQuery = QueryParam + "=" + Encode(p)
	u.Fragment = ""
	return u.String(), nil
}

// ValueFromRawQuery extracts the still-encoded project value from a raw query
// string, so it is decoded exactly once.
func ValueFromRawQuery(rawQuery string) (string, bool) {
	for _, part := range strings.Split(rawQuery, "&") {
		key, value, _ := strings.Cut(part, "=")
		if key == QueryParam {
			return value, true
		}
	}
	return "", false
}

// FromURL decodes the project carried by a share link.
func FromURL(link string) (*project.Project, error) {
	u, err := url.Parse(link)
	if err != nil {
		return nil, &DecodeError{Reason: "bad URL", Err: err}
	}
	value, ok := ValueFromRawQuery(u.RawQuery)
	if !ok {
		return nil, &DecodeError{Reason: "no " + QueryParam + " parameter"}
	}
	return Decode(value)
}

// EmbedSnippet returns an iframe fragment pointing at shareURL for pasting
// into other pages.
func EmbedSnippet(shareURL string) string {
	return `<!-- stack-rush -->
<iframe
  src="` + html.EscapeString(shareURL) + `"
  style="width: 100%; height: 500px; border: 0; border-radius: 4px; overflow: hidden;"
  title="stack-rush"
  loading="lazy"
></iframe>
<!-- stack-rush -->`
}
