package main

import (
	"context"
	"crypto/tls"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/clinicops/backoffice/internal/api/router"
	"github.com/clinicops/backoffice/internal/backend"
	appconfig "github.com/clinicops/backoffice/internal/config"
	"github.com/clinicops/backoffice/internal/http/handlers"
	"github.com/clinicops/backoffice/internal/intake"
	"github.com/clinicops/backoffice/internal/observability/metrics"
	"github.com/clinicops/backoffice/internal/schedule"
	"github.com/clinicops/backoffice/internal/stats"
	"github.com/clinicops/backoffice/pkg/logging"
)

func main() {
	// Load .env in development; ignored when absent.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic backoffice API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if cfg.BackendBaseURL == "" {
		logger.Error("BACKEND_BASE_URL is required")
		os.Exit(1)
	}

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	backendMetrics := metrics.NewBackendMetrics(registry)
	intakeMetrics := metrics.NewIntakeMetrics(registry)

	// Clinic backend client. Per-request bearer tokens come off the inbound
	// request context; the configured token is the service-account fallback.
	api := backend.NewClient(backend.Config{
		BaseURL: cfg.BackendBaseURL,
		Tokens:  backend.ContextToken{Fallback: cfg.BackendToken},
		Timeout: cfg.BackendTimeout,
		Logger:  logger.With("component", "backend"),
		Metrics: backendMetrics,
	})

	// Walk-in session storage
	var sessionStore intake.SessionStore
	switch cfg.SessionStore {
	case "redis":
		opts := &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
		}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		client := redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := client.Ping(pingCtx).Err(); err != nil {
			logger.Error("redis unreachable", "addr", cfg.RedisAddr, "error", err)
			cancel()
			os.Exit(1)
		}
		cancel()
		sessionStore = intake.NewRedisStore(client, cfg.SessionTTL)
		logger.Info("using redis session store", "addr", cfg.RedisAddr)
	default:
		sessionStore = intake.NewMemoryStore(cfg.SessionTTL)
		logger.Info("using in-memory session store")
	}

	// Services
	scheduleSvc := schedule.NewService(api, cfg.ClinicTimezone, logger.With("component", "schedule"))
	intakeSvc := intake.NewService(sessionStore, api, logger.With("component", "intake"), intakeMetrics)
	statsSvc := stats.NewService(api, logger.With("component", "stats"))

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		Health:             handlers.NewHealthHandler(cfg.Env),
		Directory:          handlers.NewDirectoryHandler(api, logger),
		Schedule:           handlers.NewScheduleHandler(scheduleSvc, logger),
		Intake:             handlers.NewIntakeHandler(intakeSvc, logger),
		Stats:              handlers.NewStatsHandler(statsSvc, logger),
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSec:    cfg.RateLimitPerSec,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
