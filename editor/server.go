// ABOUTME: HTTP server struct with chi router, session store, embedded templates, and options
// ABOUTME: Configures the playground routes, static file serving, and wires handler methods via functional options

package editor

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/2389-research/stackrush/export"
	"github.com/2389-research/stackrush/project"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TemplateData holds the data passed to HTML templates for rendering pages and partials.
type TemplateData struct {
	View    View
	Kinds   []project.Kind
	Themes  []string
	Notices []string
	Error   string

	ShareURL  string
	Snippet   string
	DeployURL string
}

// ServerOption configures optional Server behavior.
type ServerOption func(*Server)

// WithBaseURL sets the root that share links point at. When empty, links are
// derived from the incoming request's host.
func WithBaseURL(base string) ServerOption {
	return func(s *Server) {
		s.baseURL = base
	}
}

// WithProjectName sets the default archive name for exports.
func WithProjectName(name string) ServerOption {
	return func(s *Server) {
		s.projectName = name
	}
}

// WithMaxUploadBytes caps the size of an upload request body.
func WithMaxUploadBytes(n int64) ServerOption {
	return func(s *Server) {
		s.maxUploadBytes = n
	}
}

// WithLogger sets the logger for handler warnings.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// Server holds the chi router, session store, and parsed templates.
// The templates field holds the shared partials; editorTmpl adds the page that
// defines the "content" block.
type Server struct {
	router         chi.Router
	store          *Store
	templates      *template.Template
	editorTmpl     *template.Template
	logger         *zap.Logger
	baseURL        string
	projectName    string
	maxUploadBytes int64
}

type sessionKey struct{}

// NewServer creates a Server with all routes configured and templates parsed.
func NewServer(store *Store, opts ...ServerOption) *Server {
	s := &Server{
		store:          store,
		logger:         zap.NewNop(),
		projectName:    export.DefaultProjectName,
		maxUploadBytes: 10 << 20,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Parse shared templates: layout + partials
	shared := template.Must(template.New("").Funcs(templateFuncs()).ParseFS(ContentFS,
		"templates/partials/*.html", "templates/layout.html"))
	s.templates = shared

	editorClone := template.Must(shared.Clone())
	template.Must(editorClone.ParseFS(ContentFS, "templates/editor.html"))
	s.editorTmpl = editorClone

	// Build router
	r := chi.NewRouter()

	staticFS, err := fs.Sub(ContentFS, "static")
	if err != nil {
		panic(err)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	r.Get("/", s.handleLanding)
	r.Route("/s/{id}", func(r chi.Router) {
		r.Get("/", s.handleEditorPage)

		r.Group(func(r chi.Router) {
			r.Use(s.sessionCtx)

			r.Get("/preview", s.handlePreview)
			r.Get("/share", s.handleShare)
			r.Get("/embed", s.handleEmbed)
			r.Get("/export", s.handleExport)
			r.Get("/deploy-button", s.handleDeployButton)

			// Mutation handlers
			r.Post("/files", s.handleCreateFile)
			r.Post("/files/rename", s.handleRenameFile)
			r.Post("/files/delete", s.handleDeleteFile)
			r.Post("/files/content", s.handleSetContent)
			r.Post("/active", s.handleSetActive)
			r.Post("/upload", s.handleUpload)
			r.Post("/open", s.handleOpenLink)
			r.Post("/undo", s.handleUndo)
			r.Post("/redo", s.handleRedo)
			r.Post("/theme", s.handleTheme)
		})
	})

	s.router = r
	return s
}

// ServeHTTP implements the http.Handler interface, delegating to the chi router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Store returns the session store backing the server.
func (s *Server) Store() *Store {
	return s.store
}

// sessionCtx resolves {id} to a live session or answers 404.
func (s *Server) sessionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := s.store.Get(chi.URLParam(r, "id"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), sessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *Session {
	return r.Context().Value(sessionKey{}).(*Session)
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"label": func(k project.Kind) string { return k.Label() },
	}
}
