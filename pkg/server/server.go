// Package server exposes registered charts over HTTP.
//
// Browsers embed a chart by loading its page (or its options) once and then
// polling the data endpoint every refresh period. Every endpoint goes
// through a [pipeline.Runner], so polling clients are served from the
// cache until the data expires.
//
// # Routes
//
//	GET /healthz                       build info
//	GET /api/charts                    registered chart names
//	GET /api/charts/{name}/options     ApexCharts options (JSON)
//	GET /api/charts/{name}/data        {id, refresh, data}
//	GET /charts/{name}                 standalone HTML page
//
// All chart routes accept a key query parameter that selects the chart
// instance.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/apexkit/pkg/chart"
	"github.com/matzehuels/apexkit/pkg/pipeline"
)

// Default timeouts applied when Options leave them zero.
const (
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// Options configures the listening HTTP server.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server serves the charts of a registry.
type Server struct {
	Registry *chart.Registry
	Runner   *pipeline.Runner
	Config   chart.Config
	Logger   *log.Logger

	router chi.Router
}

// New creates a server for the charts in reg. Every chart is built with
// cfg unless its definition overrides parts of it.
func New(reg *chart.Registry, runner *pipeline.Runner, cfg chart.Config, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		Registry: reg,
		Runner:   runner,
		Config:   cfg,
		Logger:   logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.logRequests)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/charts", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Get("/{name}/options", s.handleOptions)
		r.Get("/{name}/data", s.handleData)
	})
	r.Get("/charts/{name}", s.handlePage)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errNotFound(r.URL.Path))
	})
	return r
}

// Handler returns the HTTP handler serving all routes.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on opts.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context, opts Options) error {
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = DefaultWriteTimeout
	}
	srv := &http.Server{
		Addr:              opts.Addr,
		Handler:           s.router,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadTimeout,
		WriteTimeout:      opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", opts.Addr, "charts", s.Registry.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
