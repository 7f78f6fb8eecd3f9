// Package api provides the HTTP API server and handlers for the ReadNest application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/readnestapp/readnest-server/internal/auth"
	"github.com/readnestapp/readnest-server/internal/ratelimit"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	services           *Services
	router             *chi.Mux
	api                huma.API
	logger             *slog.Logger
	catalogRateLimiter *ratelimit.KeyedRateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(services *Services, verifier auth.TokenVerifier, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		services: services,
		router:   router,
		logger:   logger,
		// 30 catalog lookups per minute per client IP.
		catalogRateLimiter: ratelimit.New(0.5, 10),
	}

	s.setupMiddleware(verifier)

	humaConfig := huma.DefaultConfig("ReadNest API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerShelfRoutes()
	s.registerLibraryRoutes()
	s.registerProfileRoutes()
	s.registerReviewRoutes()
	s.registerCatalogRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources.
func (s *Server) Close() {
	s.catalogRateLimiter.Stop()
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware(verifier auth.TokenVerifier) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(authMiddleware(verifier))
	s.router.Use(catalogRateLimitMiddleware(s.catalogRateLimiter, s.logger))
}
