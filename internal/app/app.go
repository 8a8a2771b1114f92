// Package app wires configuration, logging, observability, services and the
// HTTP router into a runnable application.
package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"sinandash/internal/config"
	"sinandash/internal/dataset"
	"sinandash/internal/errors"
	"sinandash/internal/infrastructure"
	customMiddleware "sinandash/internal/middleware"
	"sinandash/internal/services"
	handlers "sinandash/internal/transport/http"
)

const (
	// Version identifies the running build.
	Version = "v1.2.0"
	// AppName is the human-readable service name.
	AppName = "SINAN Violence Surveillance Dashboard"
)

// Application is the dependency container for the running service.
type Application struct {
	Config           *config.Config
	Router           *chi.Mux
	Server           *http.Server
	Store            *dataset.Store
	DashboardService *services.DashboardService
	HealthService    *services.HealthService
	Logger           *slog.Logger
	OTelProviders    *infrastructure.OTelProviders
	WebFS            fs.FS
}

// NewApplication builds the application: configuration, logger, telemetry,
// the dataset store and the router. The workbook itself is not touched here;
// its single load happens lazily on first dashboard access.
func NewApplication(webFS fs.FS) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	logger.Info("application starting",
		slog.String("name", AppName),
		slog.String("version", Version),
		slog.String("workbook", cfg.Dataset.WorkbookPath))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(Version), logger)
	if err != nil {
		return nil, fmt.Errorf("initialize OpenTelemetry: %w", err)
	}

	store := dataset.NewStore(cfg.Dataset.WorkbookPath, cfg.Dataset.SheetName, logger)

	a := &Application{
		Config:           cfg,
		Store:            store,
		DashboardService: services.NewDashboardService(store, logger),
		HealthService:    services.NewHealthService(store, AppName, Version, logger),
		Logger:           logger,
		OTelProviders:    otelProviders,
		WebFS:            webFS,
	}

	a.setupRouter()
	a.createServer()

	return a, nil
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Middleware ordering: RequestID -> RealIP -> Logger -> Recoverer ->
	// SecurityHeaders -> RateLimit.
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(customMiddleware.Recoverer(a.Logger))
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.Security.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.Security.RateLimit.RPS,
			a.Config.Security.RateLimit.Burst,
			a.Logger,
		).Handler)
	}

	a.setupAPIRoutes(r)
	a.setupWebRoutes(r)

	a.Router = r
}

func (a *Application) setupAPIRoutes(r chi.Router) {
	errorHandler := errors.NewErrorHandler(a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/ready", healthHandler.ReadinessCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		dashboardHandler := handlers.NewDashboardHandler(a.DashboardService, a.Logger, errorHandler)
		r.Mount("/dashboard", dashboardHandler.Routes())
	})

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}
}

func (a *Application) setupWebRoutes(r chi.Router) {
	if a.WebFS == nil {
		return
	}
	webHandler := handlers.NewWebHandler(a.WebFS, a.Logger)
	r.With(customMiddleware.Compress(5)).Get("/", webHandler.Index)
	r.With(customMiddleware.Compress(5)).Handle("/static/*", http.StripPrefix("/static", webHandler.Static()))
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Run starts the HTTP server and blocks until a shutdown signal arrives or
// the server fails.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.Info("http server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		return a.shutdown()
	})

	return g.Wait()
}

func (a *Application) shutdown() error {
	a.Logger.Info("shutting down",
		slog.Duration("timeout", a.Config.Server.ShutdownTimeout))

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	err := a.Server.Shutdown(ctx)

	if a.OTelProviders != nil {
		otelCtx, otelCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer otelCancel()
		if shutdownErr := a.OTelProviders.Shutdown(otelCtx); shutdownErr != nil {
			a.Logger.Warn("telemetry shutdown failed", slog.String("error", shutdownErr.Error()))
		}
	}

	infrastructure.CloseLogFile()
	return err
}
