package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"fieldpulse/internal/config"
	"fieldpulse/internal/dataprocessing"
	"fieldpulse/internal/errors"
	"fieldpulse/internal/infrastructure"
	customMiddleware "fieldpulse/internal/middleware"
	"fieldpulse/internal/services"
	handlers "fieldpulse/internal/transport/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"
)

const (
	VERSION = "1.2.0"
	AppName = "FieldPulse - Field Sales Performance Dashboard"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.Metrics
	ReportService *services.ReportService
	HealthService *services.HealthService
	TemplatesFS   fs.FS
}

// NewApplication creates a new application instance with dependency injection
func NewApplication(templatesFS fs.FS) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", AppName),
		slog.String("version", VERSION))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       infrastructure.NewMetrics(),
		TemplatesFS:   templatesFS,
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() error {
	loader := dataprocessing.NewLoader(a.Config.Data, a.Logger, a.Metrics)
	resolver := dataprocessing.NewResolver(a.Logger, a.Metrics)
	summarizer := dataprocessing.NewSummarizer(a.Logger, dataprocessing.SummarizerConfig{
		CurrencySymbol: a.Config.Data.CurrencySymbol,
	})

	a.ReportService = services.NewReportService(a.Config, a.Logger, loader, resolver, summarizer)

	// Eager load so the first request does not pay the parse cost. A
	// failed load is not fatal: the dashboard degrades to an advisory
	// message and the loader usually falls back to synthetic data
	// anyway.
	if err := a.ReportService.Reload(context.Background()); err != nil {
		a.Logger.Warn("initial data load failed, dashboard will degrade",
			slog.String("error", err.Error()))
	}

	a.HealthService = services.NewHealthService(VERSION, a.Config, a.ReportService, a.Logger)

	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.Tracing(a.OTelProviders))
	r.Use(customMiddleware.RequestMetrics(a.Metrics))
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.Server.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Server.RateLimit.RPS,
			a.Config.Server.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	a.setupAPIRoutes(r)
	a.setupHTMLRoutes(r)

	// Prometheus endpoint stays outside the JSON content-type group
	r.Handle("/metrics", a.Metrics.Handler())

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := errors.NewErrorHandler(a.Logger, false)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		reportHandler := handlers.NewReportHandler(a.ReportService, a.Logger, errorHandler)
		r.Mount("/", reportHandler.Routes())
	})
}

// setupHTMLRoutes configures the server-rendered dashboard page
func (a *Application) setupHTMLRoutes(r chi.Router) {
	if a.TemplatesFS == nil {
		a.Logger.Warn("Templates filesystem not available, HTML dashboard disabled")
		return
	}

	r.Get("/dashboard", handlers.DashboardPage(a.ReportService, a.TemplatesFS, a.Logger))
	r.Get("/", handlers.RedirectToDashboard)
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.InfoContext(ctx, "Application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)),
		slog.String("level", a.Config.Logging.Level))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return a.Stop(context.Background())
	})

	return g.Wait()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry",
				slog.String("error", err.Error()))
		}
	}

	infrastructure.CloseLogFile()

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}
