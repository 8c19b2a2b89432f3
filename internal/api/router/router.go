package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clinicops/backoffice/internal/http/handlers"
	httpmiddleware "github.com/clinicops/backoffice/internal/http/middleware"
	"github.com/clinicops/backoffice/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger    *logging.Logger
	Health    *handlers.HealthHandler
	Directory *handlers.DirectoryHandler
	Schedule  *handlers.ScheduleHandler
	Intake    *handlers.IntakeHandler
	Stats     *handlers.StatsHandler

	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
	RateLimitPerSec    float64
	RateLimitBurst     int
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
	if cfg.RateLimitPerSec > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSec, cfg.RateLimitBurst))
	}

	// Public endpoints (health, metrics)
	r.Group(func(public chi.Router) {
		if cfg.Health != nil {
			public.Get("/health", cfg.Health.Check)
		}
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// API endpoints. The inbound bearer token is forwarded to the clinic
	// backend, which does the actual accept/reject.
	r.Route("/api", func(api chi.Router) {
		api.Use(httpmiddleware.BearerToken)

		if cfg.Directory != nil {
			api.Get("/locations", cfg.Directory.ListLocations)
			api.Get("/doctors", cfg.Directory.ListDoctors)
			api.Get("/staff", cfg.Directory.ListStaff)
		}

		if cfg.Schedule != nil {
			api.Get("/calendar", cfg.Schedule.GetMonth)
			api.Route("/schedules", func(r chi.Router) {
				r.Post("/", cfg.Schedule.CreateEntry)
				r.Put("/{entryID}", cfg.Schedule.UpdateEntry)
				r.Delete("/{entryID}", cfg.Schedule.DeleteEntry)
			})
		}

		if cfg.Intake != nil {
			api.Route("/intake", func(r chi.Router) {
				r.Post("/", cfg.Intake.StartSession)
				r.Route("/{sessionID}", func(r chi.Router) {
					r.Get("/", cfg.Intake.GetSession)
					r.Post("/search", cfg.Intake.Search)
					r.Post("/confirm", cfg.Intake.Confirm)
					r.Post("/back", cfg.Intake.Back)
					r.Post("/queue", cfg.Intake.Queue)
				})
			})
		}

		if cfg.Stats != nil {
			api.Get("/stats/revenue", cfg.Stats.Revenue)
		}
	})

	return r
}
