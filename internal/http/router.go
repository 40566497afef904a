package http

import (
	"net/http"

	"github.com/gator2000/WeblogChallenge/internal/analyzers"
	"github.com/gator2000/WeblogChallenge/internal/ingestors"
	"github.com/gator2000/WeblogChallenge/internal/shared/loggers"
	"github.com/gator2000/WeblogChallenge/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(ingestionService ingestors.IngestionService, analysisService analyzers.AnalysisService, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	// Initialize handlers
	analyzeHandler := NewAnalyzeHandler(ingestionService)
	reportHandler := NewReportHandler(analysisService)

	// Routes
	router.Post("/analyses", errorHandlingAdapter(analyzeHandler))
	router.Get("/reports/{jobID}", errorHandlingAdapter(reportHandler))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
