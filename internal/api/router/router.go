package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/wolfman30/paramount-detail-site/internal/http/middleware"
	"github.com/wolfman30/paramount-detail-site/internal/site"
	"github.com/wolfman30/paramount-detail-site/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	Site               *site.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Submit endpoints are limited per client IP. Zero RPS disables the limiter.
	RateLimitRPS   float64
	RateLimitBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	submitLimit := func(next http.Handler) http.Handler { return next }
	if cfg.RateLimitRPS > 0 {
		submitLimit = httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	// Ops endpoints
	r.Get("/health", site.Health)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}
	r.Handle("/static/*", site.Static())

	h := cfg.Site
	if h == nil {
		return r
	}

	// Page (HTML, post/redirect/get)
	r.Get("/", h.Index)
	r.With(submitLimit).Post("/booking", h.SubmitBooking)
	r.Post("/toast/close", h.CloseToast)
	r.Post("/menu", h.Menu)

	// Page-view JSON API used by site.js
	r.Route("/api/views", func(api chi.Router) {
		api.Post("/", h.CreateView)
		api.Route("/{id}", func(view chi.Router) {
			view.Get("/", h.GetView)
			view.Patch("/fields", h.UpdateField)
			view.With(submitLimit).Post("/submit", h.Submit)
			view.Delete("/toast", h.DismissToast)
		})
	})

	return r
}
