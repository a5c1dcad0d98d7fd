// Package server exposes maze generation over HTTP.
//
// # Routes
//
//	GET /healthz          liveness and build information
//	GET /v1/algorithms    available generation algorithms
//	GET /v1/maze          a rendered maze (one format per request)
//	GET /v1/maze/stats    the maze's shape statistics as JSON
//
// /v1/maze and /v1/maze/stats accept the query parameters width, height,
// algorithm and seed. /v1/maze also takes format (default txt), cell_size,
// stroke, stroke_width, margin, scale and refresh. When seed is omitted a
// fresh one is drawn; it is returned in the X-Maze-Seed header so the maze
// can be requested again.
//
// Errors are JSON objects of the form {"error": {"code": ..., "message": ...}}.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/labyrinth/pkg/pipeline"
)

// Config configures a Server. Zero timeouts select the defaults.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Defaults supplies the algorithm, dimensions and render options used
	// when a request omits them.
	Defaults pipeline.Options

	Runner *pipeline.Runner
	Logger *log.Logger
}

type Server struct {
	cfg    Config
	router chi.Router
}

// New builds a server. A nil Runner gets an uncached runner.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 10 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Defaults.Algorithm == "" {
		cfg.Defaults.Algorithm = pipeline.DefaultAlgorithm
	}
	if cfg.Defaults.Width == 0 && cfg.Defaults.Height == 0 {
		cfg.Defaults.Width = pipeline.DefaultWidth
		cfg.Defaults.Height = pipeline.DefaultHeight
	}

	s := &Server{cfg: cfg}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(s.recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/algorithms", s.handleAlgorithms)
		r.Get("/maze", s.handleMaze)
		r.Get("/maze/stats", s.handleMazeStats)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound(r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("METHOD_NOT_ALLOWED", r.Method+" not allowed"))
	})
	return r
}

// Handler returns the root handler, for tests or embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.cfg.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
