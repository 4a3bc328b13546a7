package app

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"supstats/internal/config"
	"supstats/internal/errors"
	"supstats/internal/files"
	"supstats/internal/infrastructure"
	"supstats/internal/metrics"
	customMiddleware "supstats/internal/middleware"
	"supstats/internal/services"
	handlers "supstats/internal/transport/http"
	"supstats/internal/validation"
)

var (
	// BuildTime is set at compile time via ldflags; the default covers
	// plain go build.
	BuildTime = time.Now().Format(time.RFC3339)
	// BuildID is a unique identifier for this build
	BuildID = generateBuildID()
)

func generateBuildID() string {
	h := sha256.New()
	h.Write([]byte(config.AppVersion))
	h.Write([]byte(time.Now().Format("2006-01-02")))
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Router        *chi.Mux
	Server        *http.Server
	Metrics       *metrics.Collector
	ReportService *services.ReportService
	HealthService *services.HealthService
	FileManager   *files.Manager
	Logger        *slog.Logger
}

// NewApplication creates a new application instance with dependency
// injection: configuration, logger, paths, services, router, server,
// in that order.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion),
		slog.String("build_id", BuildID))

	paths, err := config.GetPaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution()

	app := &Application{
		Config:  cfg,
		Paths:   paths,
		Metrics: metrics.NewCollector(),
		Logger:  logger,
	}

	app.initializeServices()
	app.setupRouter()
	app.createServer()

	// A read-only output directory would fail every generation with the
	// same storage error; catch it while there is still someone watching
	// the console.
	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateOutputDirectory(app.webOutputDir()); err != nil {
		logger.Warn("report output directory check failed",
			slog.String("directory", app.webOutputDir()),
			slog.String("error", err.Error()))
	}

	return app, nil
}

// initializeServices builds the service layer.
func (a *Application) initializeServices() {
	a.ReportService = services.NewReportService(a.Config, a.Paths, a.Metrics, a.Logger)
	a.HealthService = services.NewHealthServiceWithBuildInfo(
		config.AppVersion, BuildTime, BuildID, a.Paths, a.Logger)
	a.FileManager = files.NewManager(a.Logger)
}

// webOutputDir is where web generated reports land: the configured
// output dir when set, else the server's reports directory so listings
// and downloads find them.
func (a *Application) webOutputDir() string {
	if a.Config.Report.OutputDir != "" {
		return a.Config.Report.OutputDir
	}
	return a.Paths.ReportsDir
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()
	errorHandler := errors.NewErrorHandler(a.Logger, a.Config.Logging.Development)

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	// Unknown routes and wrong verbs get problem documents too.
	r.NotFound(errorHandler.NotFound)
	r.MethodNotAllowed(errorHandler.MethodNotAllowed)

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)
		r.Use(customMiddleware.Compress(5))

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(a.corsConfig()))
		}
		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r, errorHandler)
	})

	// Prometheus endpoint outside the middleware group: probes should
	// not consume the rate limit budget.
	r.Handle("/metrics", a.Metrics.Handler())

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router, errorHandler *errors.ErrorHandler) {
	validation := customMiddleware.NewValidationMiddleware(
		a.Logger, errorHandler, a.Config.Report.MaxUploadSize)

	r.Route("/api", func(r chi.Router) {
		r.Use(customMiddleware.Timeout(a.Config.Server.OperationTimeout, a.Logger))
		r.Use(validation.ValidateRequest)

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.Version)

		// MaxBodySize mirrors the middleware's request cap so the
		// multipart reader and the early size check agree.
		reportHandler := handlers.NewReportHandler(
			a.ReportService,
			validation,
			a.webOutputDir(),
			validation.MaxBodySize(),
			a.Logger,
			errorHandler,
		)
		r.Mount("/reports", reportHandler.Routes())
	})
}

// corsConfig derives the CORS policy from configuration.
func (a *Application) corsConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		Logger:         a.Logger,
	}
}

// createServer configures the HTTP server from config timeouts.
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start runs the HTTP server and blocks until the context is cancelled
// or the server fails. A background sweep keeps the uploads directory
// from accumulating stale workbook copies.
func (a *Application) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(ctx, "HTTP server listening",
			slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return a.sweepUploads(ctx)
	})

	g.Go(func() error {
		<-ctx.Done()
		return a.Stop(context.Background())
	})

	return g.Wait()
}

// sweepUploads periodically removes uploaded workbooks older than the
// retention window. Sweep failures are logged, never fatal.
func (a *Application) sweepUploads(ctx context.Context) error {
	ticker := time.NewTicker(config.UploadSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := a.FileManager.RemoveOlderThan(
				a.Paths.UploadsDir, config.UploadRetention, time.Now()); err != nil {
				a.Logger.Warn("upload sweep failed",
					slog.String("dir", a.Paths.UploadsDir),
					slog.String("error", err.Error()))
			}
		}
	}
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	infrastructure.CloseLogFile()
	return nil
}

// Run runs the application until interrupted
func (a *Application) Run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return a.Start(ctx)
}
