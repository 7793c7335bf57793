// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz            liveness and build version
//	POST /v1/render          render the project in the body, store and return it
//	GET  /v1/renders         list stored renders, newest first
//	GET  /v1/renders/{id}    fetch one stored render
//
// The request body of POST /v1/render is a project in JSON
// (Content-Type: application/json), TOML (application/toml) or the text
// notation (anything else). Query parameters select the output:
// format (svg, png, pdf, json, dot), viz (diagram, nodelink), highlight
// and refresh.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/blockgraph/pkg/pipeline"
	"github.com/matzehuels/blockgraph/pkg/render/diagram"
	"github.com/matzehuels/blockgraph/pkg/store"
)

// MaxBodySize caps the size of a submitted project.
const MaxBodySize = 1 << 20

// DefaultRenderTimeout bounds one render request.
const DefaultRenderTimeout = 30 * time.Second

// Options configures a Server.
type Options struct {
	Runner *pipeline.Runner
	Store  store.Store
	Logger *log.Logger

	// Config is the geometry used for every render.
	Config diagram.Config

	// RenderTimeout bounds one POST /v1/render. Zero means DefaultRenderTimeout.
	RenderTimeout time.Duration
}

// Server serves the render API.
type Server struct {
	runner  *pipeline.Runner
	store   store.Store
	logger  *log.Logger
	config  diagram.Config
	timeout time.Duration
	router  chi.Router
}

// New creates a Server. A nil Runner renders without caching.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	if opts.Config == (diagram.Config{}) {
		opts.Config = diagram.DefaultConfig()
	}
	if opts.RenderTimeout <= 0 {
		opts.RenderTimeout = DefaultRenderTimeout
	}

	s := &Server{
		runner:  opts.Runner,
		store:   opts.Store,
		logger:  opts.Logger,
		config:  opts.Config,
		timeout: opts.RenderTimeout,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Get("/renders", s.handleListRenders)
		r.Get("/renders/{id}", s.handleGetRender)
	})
	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
