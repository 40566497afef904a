package http

import (
	"encoding/json"
	"net/http"

	"github.com/gator2000/WeblogChallenge/internal/ingestors"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type analyzeHandler struct {
	ingestionService ingestors.IngestionService
}

func NewAnalyzeHandler(ingestionService ingestors.IngestionService) AppHttpHandler {
	return &analyzeHandler{
		ingestionService: ingestionService,
	}
}

// Handle processes POST /analyses requests: the body is either a JSON array
// of cleaned events or raw ELB log lines, selected by content type. The
// finished sessionization report is returned inline; batch jobs this size
// complete within the request.
func (h *analyzeHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	report, err := h.ingestionService.IngestEvents(r.Context(), idempotencyKey(r), contentType(r), r.Body)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(report)
}
