// Package api provides the HTTP API server and handlers for the Shelfline catalog.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/shelfline/shelfline-server/internal/catalog"
	"github.com/shelfline/shelfline-server/internal/config"
	"github.com/shelfline/shelfline-server/internal/metrics"
	"github.com/shelfline/shelfline-server/internal/ratelimit"
	"github.com/shelfline/shelfline-server/internal/store"
	"github.com/shelfline/shelfline-server/internal/validation"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	catalog   *catalog.Catalog
	store     *store.Store
	remote    catalog.Remote
	validator *validation.Validator
	metrics   *metrics.Registry
	limiter   *ratelimit.KeyedRateLimiter
	router    *chi.Mux
	api       huma.API
	logger    *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cat *catalog.Catalog, st *store.Store, remote catalog.Remote, v *validation.Validator, reg *metrics.Registry, cfg config.ServerConfig, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	humaConfig := huma.DefaultConfig("Shelfline API", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s := &Server{
		catalog:   cat,
		store:     st,
		remote:    remote,
		validator: v,
		metrics:   reg,
		limiter:   ratelimit.New(clientRPS, clientBurst),
		router:    router,
		logger:    logger,
	}

	RegisterErrorHandler()

	s.setupMiddleware(cfg)
	s.api = humachi.New(router, humaConfig)
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(cfg config.ServerConfig) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(rateLimitMiddleware(s.limiter, s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes registers all operations plus the non-huma endpoints.
func (s *Server) setupRoutes() {
	s.registerHealthRoutes()
	s.registerCatalogRoutes()
	s.registerBookRoutes()
	s.registerSelectionRoutes()
	s.registerCartRoutes()

	s.router.Handle("/metrics", s.metrics.Handler())
}

// MessageResponse is a simple acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message" doc:"Human-readable result"`
}

// MessageOutput wraps a message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}
