// Package server exposes the preview pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz
//	GET  /api/catalog?category=Books
//	GET  /api/catalog/categories
//	GET  /api/reference/tiers
//	POST /api/preview/estimate   {"items":[{"productId":101,"quantity":2}]}
//	POST /api/preview/scene      {"placements":[...]} or a bare array
//	POST /api/preview/manual     {"lengthCm":30,"widthCm":20,"heightCm":10,"weightG":500}
//	POST /api/preview/cart       {"items":[...]}; ?format=svg returns an image
//
// Errors are JSON {"code","message","requestId"} with the status taken from
// errors.HTTPStatus.
package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/parcelview/pkg/catalog"
	"github.com/matzehuels/parcelview/pkg/pipeline"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Config holds the server's dependencies.
type Config struct {
	Catalog *catalog.Catalog
	Runner  *pipeline.Runner
	Logger  *log.Logger
	Version string
}

// Server is the HTTP API server.
type Server struct {
	catalog *catalog.Catalog
	runner  *pipeline.Runner
	logger  *log.Logger
	version string
	router  chi.Router
}

// New creates a server. A nil logger uses log.Default().
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, cfg.Logger, pipeline.DefaultOptions())
	}
	s := &Server{
		catalog: cfg.Catalog,
		runner:  cfg.Runner,
		logger:  cfg.Logger,
		version: cfg.Version,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog(s.logger))
	r.Use(middleware.Recoverer)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFound(r.URL.Path))
	})

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/catalog/categories", s.handleCategories)
		r.Get("/reference/tiers", s.handleTiers)

		r.Route("/preview", func(r chi.Router) {
			r.Post("/estimate", s.handleEstimate)
			r.Post("/scene", s.handleScene)
			r.Post("/manual", s.handleManual)
			r.Post("/cart", s.handleCart)
		})
	})

	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readTimeout,
		ReadTimeout:       readTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", addr, "engine", s.runner.Engine != nil)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
