package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gator2000/WeblogChallenge/internal/analyzers"
	internalhttp "github.com/gator2000/WeblogChallenge/internal/http"
	"github.com/gator2000/WeblogChallenge/internal/ingestors"
	"github.com/gator2000/WeblogChallenge/internal/parsers"
	"github.com/gator2000/WeblogChallenge/internal/sessions"
	"github.com/gator2000/WeblogChallenge/internal/shared/blobstores"
	"github.com/gator2000/WeblogChallenge/internal/shared/configs"
	"github.com/gator2000/WeblogChallenge/internal/shared/loggers"
	"github.com/gator2000/WeblogChallenge/internal/stores"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "weblog-sessions").
		Logger()

	// Initialize blob store
	blobStore, err := blobstores.NewBlobStore(config.BlobStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize analysis service
	sessionizer := sessions.NewSessionizer(config.Sessionization.GapThresholdMinutes)
	reportStore := stores.NewReportStore(blobStore)
	analysisService := analyzers.NewAnalysisService(sessionizer, reportStore, config.Sessionization)

	// Initialize ingestion service
	logParser := parsers.NewELBLogParser()
	batchStore := stores.NewEventBatchStore(blobStore)
	ingestionService := ingestors.NewIngestionService(logParser, batchStore, analysisService)

	// Initialize http router
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(ingestionService, analysisService, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:    config,
		appLogger: appLogger,
		server:    server,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting weblog-sessions service on port %d (log_level=%s, blob_storage_root_dir=%s, gap_threshold=%dm)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.BlobStorage.RootDir,
			app.config.Sessionization.GapThresholdMinutes)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")

	return nil
}
