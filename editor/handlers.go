// ABOUTME: HTTP handler methods for all playground endpoints
// ABOUTME: Covers landing, file CRUD, content edits, uploads, undo/redo, preview, share, embed, deploy and export

package editor

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/2389-research/stackrush/config"
	"github.com/2389-research/stackrush/export"
	"github.com/2389-research/stackrush/project"
	"github.com/2389-research/stackrush/share"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// handleLanding starts a new session from the shared project in ?project=,
// or from the sample files when there is none or it cannot be decoded. An
// empty value counts as none.
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	var notice string
	p := project.NewDefault()

	if value, ok := share.ValueFromRawQuery(r.URL.RawQuery); ok && value != "" {
		shared, err := share.Decode(value)
		if err != nil {
			s.logger.Warn("failed to open shared project", zap.Error(err))
			notice = "Could not open the shared project; starting from the sample files."
		} else {
			p = shared
		}
	}

	sess := s.store.Create(p)
	if notice != "" {
		sess.Flash(notice)
	}
	http.Redirect(w, r, "/s/"+sess.ID, http.StatusSeeOther)
}

// handleEditorPage renders the editor for an existing session.
func (s *Server) handleEditorPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	data := s.templateData(sess)
	data.Notices = sess.TakeFlash()

	var buf bytes.Buffer
	if err := s.editorTmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		http.Error(w, fmt.Sprintf("template error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handlePreview serves the composed document for the preview frame. The
// revision doubles as an ETag.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	view := sessionFrom(r).View()
	etag := `"` + view.Revision + `"`

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Security-Policy", "sandbox allow-scripts")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(view.Preview))
}

// handleCreateFile adds an empty file of the posted kind.
func (s *Server) handleCreateFile(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	kind, ok := project.ParseKind(r.FormValue("kind"))
	if !ok {
		s.renderError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Unknown file type %q", r.FormValue("kind")))
		return
	}
	if _, err := sess.CreateFile(r.FormValue("name"), kind); err != nil {
		s.renderMutationError(w, err)
		return
	}
	s.renderWorkspace(w, sess, nil)
}

// handleRenameFile renames a file. A blank new name leaves it unchanged.
func (s *Server) handleRenameFile(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	if err := sess.RenameFile(r.FormValue("old"), strings.TrimSpace(r.FormValue("new"))); err != nil {
		s.renderMutationError(w, err)
		return
	}
	s.renderWorkspace(w, sess, nil)
}

// handleDeleteFile removes a file.
func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	if err := sess.DeleteFile(r.FormValue("name")); err != nil {
		s.renderMutationError(w, err)
		return
	}
	s.renderWorkspace(w, sess, nil)
}

// handleSetContent applies an editor change. The target is the posted name,
// or the active file when none is given. Only the preview is re-rendered so
// the editor keeps its cursor.
func (s *Server) handleSetContent(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.renderError(w, http.StatusRequestEntityTooLarge, "Content too large")
			return
		}
		s.renderError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	var err error
	if name := r.FormValue("name"); name != "" {
		err = sess.SetContent(name, r.FormValue("content"))
	} else {
		err = sess.UpdateActive(r.FormValue("content"))
	}
	if err != nil {
		s.renderMutationError(w, err)
		return
	}
	s.renderPartial(w, "preview", s.templateData(sess), http.StatusOK)
}

// handleSetActive switches the edited file.
func (s *Server) handleSetActive(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	sess.SetActive(r.FormValue("name"))
	s.renderWorkspace(w, sess, nil)
}

// handleUpload ingests dropped or picked files. Each rejected file becomes a
// notice; accepted files are kept even when others fail.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.renderError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Upload too large (max %d bytes)", s.maxUploadBytes))
			return
		}
		s.renderError(w, http.StatusBadRequest, "failed to parse upload")
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	dropped := make([]project.Dropped, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			s.renderError(w, http.StatusBadRequest, fmt.Sprintf("failed to read %s", fh.Filename))
			return
		}
		opened = append(opened, f)
		dropped = append(dropped, project.Dropped{Name: fh.Filename, Body: f})
	}

	res := sess.Ingest(dropped)
	notices := make([]string, 0, len(res.Rejected))
	for _, err := range res.Rejected {
		s.logger.Debug("upload rejected", zap.String("session", sess.ID), zap.Error(err))
		notices = append(notices, rejectionNotice(err))
	}
	s.renderWorkspace(w, sess, notices)
}

// handleOpenLink replaces the session's files with those of a pasted share
// link. The replacement is undoable.
func (s *Server) handleOpenLink(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	link := strings.TrimSpace(r.FormValue("link"))
	var (
		p   *project.Project
		err error
	)
	if strings.Contains(link, "?") {
		p, err = share.FromURL(link)
	} else {
		p, err = share.Decode(link)
	}
	if err != nil {
		s.logger.Warn("failed to open shared project", zap.String("session", sess.ID), zap.Error(err))
		s.renderError(w, http.StatusUnprocessableEntity, "Could not open that share link")
		return
	}
	sess.Load(p.Files())
	s.renderWorkspace(w, sess, nil)
}

// handleUndo reverts the last change.
func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := sess.Undo(); err != nil {
		s.renderError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Undo failed: %v", err))
		return
	}
	s.renderWorkspace(w, sess, nil)
}

// handleRedo re-applies the last undone change.
func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := sess.Redo(); err != nil {
		s.renderError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Redo failed: %v", err))
		return
	}
	s.renderWorkspace(w, sess, nil)
}

// handleTheme switches the editor theme.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := r.ParseForm(); err != nil {
		s.renderError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	theme := r.FormValue("theme")
	if !config.ValidTheme(theme) {
		s.renderError(w, http.StatusUnprocessableEntity, fmt.Sprintf("Unknown theme %q", theme))
		return
	}
	sess.SetTheme(theme)
	w.Header().Set("HX-Refresh", "true")
	w.WriteHeader(http.StatusNoContent)
}

// handleShare renders the share link for the current project.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	link, err := sess.ShareURL(s.shareBase(r))
	if err != nil {
		s.logger.Error("failed to build share link", zap.Error(err))
		s.renderError(w, http.StatusInternalServerError, "Could not build a share link")
		return
	}

	data := s.templateData(sess)
	data.ShareURL = link
	s.renderPartial(w, "share", data, http.StatusOK)
}

// handleEmbed renders an iframe snippet for the share link.
func (s *Server) handleEmbed(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	link, err := sess.ShareURL(s.shareBase(r))
	if err != nil {
		s.logger.Error("failed to build share link", zap.Error(err))
		s.renderError(w, http.StatusInternalServerError, "Could not build a share link")
		return
	}

	data := s.templateData(sess)
	data.ShareURL = link
	data.Snippet = share.EmbedSnippet(link)
	s.renderPartial(w, "embed", data, http.StatusOK)
}

// handleDeployButton renders a Cloudflare deploy button for ?user=&repo=.
func (s *Server) handleDeployButton(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	snippet, deployURL, err := share.DeployButton(r.URL.Query().Get("user"), r.URL.Query().Get("repo"))
	if err != nil {
		s.renderError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	data := s.templateData(sess)
	data.Snippet = snippet
	data.DeployURL = deployURL
	s.renderPartial(w, "deploy", data, http.StatusOK)
}

// handleExport returns the project as a zip archive. ?name= overrides the
// configured archive name.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	name := r.URL.Query().Get("name")
	if name == "" {
		name = s.projectName
	}

	var buf bytes.Buffer
	if err := export.WriteZip(&buf, sess.Files(), time.Now()); err != nil {
		s.logger.Error("failed to build archive", zap.String("session", sess.ID), zap.Error(err))
		http.Error(w, "failed to build archive", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.ArchiveName(name)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// shareBase returns the configured base URL, or one built from the request.
func (s *Server) shareBase(r *http.Request) string {
	if s.baseURL != "" {
		return s.baseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/"
}

// statusFor maps project errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, project.ErrDuplicateName):
		return http.StatusConflict
	case errors.Is(err, project.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, project.ErrUnsupportedFileType),
		errors.Is(err, project.ErrEmptyName),
		errors.Is(err, project.ErrInvalidKind):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func rejectionNotice(err error) string {
	var unsupported *project.UnsupportedFileTypeError
	var duplicate *project.DuplicateNameError
	switch {
	case errors.As(err, &unsupported):
		return fmt.Sprintf("Skipped %s: only .html, .css, .js and .md files are supported", unsupported.Name)
	case errors.As(err, &duplicate):
		return fmt.Sprintf("Skipped %s: a file with that name already exists", duplicate.Name)
	default:
		return err.Error()
	}
}

func (s *Server) templateData(sess *Session) TemplateData {
	return TemplateData{
		View:   sess.View(),
		Kinds:  project.Kinds,
		Themes: config.Themes,
	}
}

// renderWorkspace renders the file list, editor and preview after a mutation.
func (s *Server) renderWorkspace(w http.ResponseWriter, sess *Session, notices []string) {
	data := s.templateData(sess)
	data.Notices = notices
	s.renderPartial(w, "workspace", data, http.StatusOK)
}

func (s *Server) renderMutationError(w http.ResponseWriter, err error) {
	s.renderError(w, statusFor(err), err.Error())
}

// renderPartial renders a single named template partial.
func (s *Server) renderPartial(w http.ResponseWriter, name string, data interface{}, status int) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if status > 0 {
		w.WriteHeader(status)
	}
	w.Write(buf.Bytes())
}

// renderError renders the notice partial retargeted at the page's notice area.
func (s *Server) renderError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("HX-Retarget", "#notice")
	w.Header().Set("HX-Reswap", "innerHTML")

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "notice", TemplateData{Error: msg}); err != nil {
		w.WriteHeader(status)
		w.Write([]byte(msg))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
