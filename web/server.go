// ABOUTME: Top-level stackrush HTTP server mounting the browser editor behind a single chi router.
// ABOUTME: Owns middleware, the health endpoint, session cleanup and graceful shutdown.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/2389-research/stackrush/config"
	"github.com/2389-research/stackrush/editor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 10 * time.Second

// Server is the stackrush HTTP server.
type Server struct {
	cfg    config.Config
	logger *zap.Logger
	store  *editor.Store
	editor *editor.Server
	router chi.Router
}

// NewServer builds a Server from a validated configuration.
func NewServer(cfg config.Config, logger *zap.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	store := editor.NewStore(cfg.MaxSessions, cfg.SessionTTL)
	store.SetDefaultTheme(cfg.Theme)

	s := &Server{
		cfg:    cfg,
		logger: logger,
		store:  store,
		editor: editor.NewServer(store,
			editor.WithBaseURL(cfg.BaseURL),
			editor.WithProjectName(cfg.ProjectName),
			editor.WithMaxUploadBytes(cfg.MaxUploadBytes),
			editor.WithLogger(logger.Named("editor")),
		),
	}
	s.router = s.buildRouter()
	return s, nil
}

// ServeHTTP delegates to the chi router, satisfying http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Store exposes the session store.
func (s *Server) Store() *editor.Store {
	return s.store
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger.Named("http")))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Mount("/", s.editor)

	return r
}

// handleHealth reports liveness and the number of open sessions.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":   "ok",
		"sessions": s.store.Len(),
	})
}

// ListenAndServe listens on the configured address until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln with timeouts that protect against slow
// clients, runs session cleanup alongside, and shuts down gracefully when ctx
// is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}

	stopCleanup := s.store.StartCleanup(s.cfg.CleanupInterval)
	defer stopCleanup()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})
	return g.Wait()
}
