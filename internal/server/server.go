// Package server exposes the planner and board store over HTTP.
//
// Routes:
//
//	POST   /v1/check                    check a board for overlaps and overflow
//	POST   /v1/place                    find a free slot on a board
//	POST   /v1/repair                   relocate overflowing widgets
//	POST   /v1/snap                     rank cells nearest a pixel
//	GET    /v1/boards                   list stored boards
//	GET    /v1/boards/{name}            fetch a board
//	PUT    /v1/boards/{name}            check and store a board
//	DELETE /v1/boards/{name}            delete a board
//	POST   /v1/boards/{name}/widgets    place a new widget on a stored board
//	GET    /healthz                     liveness
//
// Errors are JSON objects {"error": message, "code": CODE} with the status
// given by [apperrors.HTTPStatus].
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/gridpack/pkg/planner"
	"github.com/matzehuels/gridpack/pkg/store"
)

// Server timeouts.
const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 30 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second

	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 1 << 20
)

// Server serves the HTTP API.
type Server struct {
	runner *planner.Runner
	store  store.Store
	logger *log.Logger
	policy string
}

// Option configures a Server.
type Option func(*Server)

// WithPolicy sets the unplaceable-widget policy used when a repair request
// names none.
func WithPolicy(policy string) Option {
	return func(s *Server) { s.policy = policy }
}

// New creates a server. A nil logger falls back to log.Default().
func New(runner *planner.Runner, st store.Store, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		store:  st,
		logger: logger,
		policy: planner.DefaultPolicy,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/check", s.handleCheck)
		r.Post("/place", s.handlePlace)
		r.Post("/repair", s.handleRepair)
		r.Post("/snap", s.handleSnap)

		r.Route("/boards", func(r chi.Router) {
			r.Get("/", s.handleListBoards)
			r.Get("/{name}", s.handleGetBoard)
			r.Put("/{name}", s.handlePutBoard)
			r.Delete("/{name}", s.handleDeleteBoard)
			r.Post("/{name}/widgets", s.handleAddWidget)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
