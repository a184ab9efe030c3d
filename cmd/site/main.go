package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/paramount-detail-site/cmd/mainconfig"
	"github.com/wolfman30/paramount-detail-site/internal/api/router"
	"github.com/wolfman30/paramount-detail-site/internal/app/bootstrap"
	appconfig "github.com/wolfman30/paramount-detail-site/internal/config"
	"github.com/wolfman30/paramount-detail-site/internal/content"
	"github.com/wolfman30/paramount-detail-site/internal/observability/metrics"
	"github.com/wolfman30/paramount-detail-site/internal/session"
	"github.com/wolfman30/paramount-detail-site/internal/site"
	"github.com/wolfman30/paramount-detail-site/pkg/logging"
)

func main() {
	// A local .env is optional.
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.NewWithOptions(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.Info("starting paramount-detail-site",
		"env", cfg.Env,
		"port", cfg.Port,
		"session_store", cfg.SessionStore,
		"embedded_scheduler", cfg.UseEmbeddedScheduler(),
	)

	handler, cleanup, err := buildHandler(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.BookingSubmitTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
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

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// buildHandler wires every dependency behind the router. cleanup releases the
// session store.
func buildHandler(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (http.Handler, func(), error) {
	siteContent, err := content.Load(cfg.ContentFile, cfg.BookingDefaultPackage)
	if err != nil {
		return nil, nil, fmt.Errorf("load content: %w", err)
	}

	store, closer, err := bootstrap.BuildSessionStore(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := closer.Close(); err != nil {
			logger.Warn("failed to close session store", "error", err)
		}
	}

	metricsHandler, bookingMetrics := setupMetrics()

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithMetrics(bookingMetrics),
	}
	if cfg.UseEmbeddedScheduler() {
		logger.Info("booking form disabled, scheduler embedded", "url", cfg.BookingEmbedURL)
	} else {
		opts = append(opts, bootstrap.BuildForwarder(cfg, logger))
		if cfg.BookingSubmitEndpoint == "" {
			logger.Info("no submission endpoint configured, requests are recorded locally only")
		}
	}

	sender, err := bootstrap.BuildEmailSender(ctx, cfg, mainconfig.LoadAWSConfig, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if notifier := bootstrap.BuildNotifier(sender, cfg, siteContent.Brand.Name, logger); notifier != nil {
		opts = append(opts, session.WithNotifier(notifier))
	}

	defaultPackage := cfg.BookingDefaultPackage
	if p, ok := siteContent.Package(defaultPackage); ok {
		defaultPackage = p.Name
	}
	views := session.NewService(store, defaultPackage, opts...)

	renderer, err := site.NewRenderer()
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	r := router.New(&router.Config{
		Logger:             logger,
		Site:               site.NewHandler(views, siteContent, renderer, cfg.BookingEmbedURL, logger),
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	})
	return r, cleanup, nil
}

func setupMetrics() (http.Handler, *metrics.BookingMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics.NewBookingMetrics(reg)
}
