package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/prn-tf/hearth/internal/auth"
	"github.com/prn-tf/hearth/internal/service"
)

// Router assembles the HTTP API.
type Router struct {
	facade  *service.Facade
	tokens  *auth.TokenManager
	metrics *Metrics
	logger  zerolog.Logger

	tokenTTLSeconds int
}

// RouterConfig contains configuration for the router.
type RouterConfig struct {
	Facade          *service.Facade
	Tokens          *auth.TokenManager
	Metrics         *Metrics
	TokenTTLSeconds int
	Logger          zerolog.Logger
}

// NewRouter creates a new Router.
func NewRouter(config RouterConfig) *Router {
	return &Router{
		facade:          config.Facade,
		tokens:          config.Tokens,
		metrics:         config.Metrics,
		tokenTTLSeconds: config.TokenTTLSeconds,
		logger:          config.Logger.With().Str("component", "router").Logger(),
	}
}

// Handler returns the main HTTP handler. Reads are public; mutations
// require a bearer token. Account creation and amenity maintenance are
// additionally admin-gated.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(rt.logger))
	if rt.metrics != nil {
		r.Use(rt.metrics.Middleware)
	}

	r.Get("/health", rt.handleHealth)
	if rt.metrics != nil {
		r.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	authHandler := NewAuthHandler(rt.facade, rt.tokens, rt.tokenTTLSeconds, rt.logger)
	accountHandler := NewAccountHandler(rt.facade, rt.logger)
	listingHandler := NewListingHandler(rt.facade, rt.logger)
	amenityHandler := NewAmenityHandler(rt.facade, rt.logger)
	reviewHandler := NewReviewHandler(rt.facade, rt.logger)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		authHandler.RegisterRoutes(r)
		listingHandler.RegisterRoutes(r)
		amenityHandler.RegisterRoutes(r)
		reviewHandler.RegisterRoutes(r)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(rt.tokens.Middleware)
			accountHandler.RegisterRoutes(r)
			listingHandler.RegisterProtectedRoutes(r)
			amenityHandler.RegisterProtectedRoutes(r)
			reviewHandler.RegisterProtectedRoutes(r)
		})
	})

	return r
}

// handleHealth handles health check requests.
func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
