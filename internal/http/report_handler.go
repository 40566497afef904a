package http

import (
	"encoding/json"
	"net/http"

	"github.com/gator2000/WeblogChallenge/internal/analyzers"

	"github.com/go-chi/chi/v5"
)

type reportHandler struct {
	analysisService analyzers.AnalysisService
}

func NewReportHandler(analysisService analyzers.AnalysisService) AppHttpHandler {
	return &reportHandler{
		analysisService: analysisService,
	}
}

// Handle processes GET /reports/{jobID} requests.
func (h *reportHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	jobID := chi.URLParam(r, "jobID")

	report, err := h.analysisService.GetReport(r.Context(), jobID)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(report)
}
