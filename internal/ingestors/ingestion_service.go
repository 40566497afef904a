package ingestors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gator2000/WeblogChallenge/internal/analyzers"
	"github.com/gator2000/WeblogChallenge/internal/models"
	"github.com/gator2000/WeblogChallenge/internal/parsers"
	"github.com/gator2000/WeblogChallenge/internal/shared/loggers"
	"github.com/gator2000/WeblogChallenge/internal/shared/metrics"
	"github.com/gator2000/WeblogChallenge/internal/shared/ulid"
	"github.com/gator2000/WeblogChallenge/internal/stores"
)

const (
	maxBatchBytes = 16 * 1024 * 1024
	maxURLLen     = 4096
	maxClientLen  = 256
)

const (
	FormatJSON      = "json"
	FormatPlainText = "text"
)

//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	// IngestEvents accepts a batch of access-log data, either a JSON array
	// of cleaned events or raw ELB log lines, persists the cleaned batch,
	// and runs a full sessionization pass over it.
	IngestEvents(ctx context.Context, idempotencyKey string, format string, r io.Reader) (*models.Report, error)
}

type ingestionService struct {
	logParser       parsers.LogParser
	batchStore      stores.EventBatchStore
	analysisService analyzers.AnalysisService
}

func NewIngestionService(logParser parsers.LogParser, batchStore stores.EventBatchStore, analysisService analyzers.AnalysisService) IngestionService {
	return &ingestionService{
		logParser:       logParser,
		batchStore:      batchStore,
		analysisService: analysisService,
	}
}

func (s *ingestionService) IngestEvents(ctx context.Context, idempotencyKey string, format string, r io.Reader) (*models.Report, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Msgf("started ingesting events with idempotency key: %s, format: %s", idempotencyKey, format)

	events, err := s.validateEventBatch(ctx, format, r)
	if err != nil {
		metricBatchIngestedTotal.WithLabelValues(codeValidationFailed).Inc()
		return nil, err
	}

	jobID := strings.TrimSpace(idempotencyKey)
	if jobID == "" {
		jobID = ulid.NewULID()
	}

	batch := &models.EventBatch{
		JobID:  jobID,
		Events: events,
	}

	// Persist the raw batch; an atomic create-if-not-exists rejects replays.
	if err := s.batchStore.Put(ctx, batch); err != nil {
		if errors.Is(err, stores.ErrEventBatchAlreadyExist) {
			svcErr := errJobAlreadyIngested(err)
			metricBatchIngestedTotal.WithLabelValues(svcErr.Code).Inc()
			return nil, svcErr
		}
		svcErr := errInternalEventBatchStoreFailed(err)
		metricBatchIngestedTotal.WithLabelValues(svcErr.Code).Inc()
		return nil, svcErr
	}

	report, err := s.analysisService.Analyze(ctx, jobID, events)
	if err != nil {
		return nil, err
	}

	metricBatchIngestedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	metricEventsIngestedTotal.WithLabelValues().Add(float64(len(events)))
	return report, nil
}

func (s *ingestionService) validateEventBatch(ctx context.Context, format string, r io.Reader) ([]*models.Event, error) {
	if r == nil {
		return nil, errValidationFailed("empty request body", nil)
	}

	buf, err := s.readWithLimit(r, maxBatchBytes)
	if err != nil {
		return nil, err
	}

	formatLower := strings.ToLower(format)

	var events []*models.Event
	switch {
	case strings.Contains(formatLower, FormatJSON):
		events, err = s.parseJSONEvents(buf)
		if err != nil {
			return nil, err
		}
	case strings.Contains(formatLower, FormatPlainText):
		events, err = s.parseRawLogLines(ctx, buf)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errValidationFailed(fmt.Sprintf("unsupported input format: %q", format), nil)
	}

	if len(events) == 0 {
		return nil, errValidationFailed("event batch cannot be empty", nil)
	}

	return events, nil
}

// readWithLimit reads up to max+1 bytes from r and checks if it exceeds max.
func (s *ingestionService) readWithLimit(r io.Reader, max int) ([]byte, error) {
	buf, err := io.ReadAll(io.LimitReader(r, int64(max+1)))
	if err != nil {
		return nil, errValidationFailed("failed to read request body", err)
	}
	if len(buf) > max {
		return nil, errValidationFailed("batch too large: must be <= 16MB", nil)
	}
	return buf, nil
}

// parseJSONEvents parses buf as a JSON array of cleaned event objects.
func (s *ingestionService) parseJSONEvents(buf []byte) ([]*models.Event, error) {
	var events []*models.Event
	if err := json.Unmarshal(buf, &events); err != nil {
		return nil, errValidationFailed("invalid json", err)
	}

	for i, event := range events {
		if event == nil {
			return nil, errValidationFailed(fmt.Sprintf("item at index %d: null event", i), nil)
		}
		s.normalizeEvent(event)
		if err := s.validateEvent(event, i); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// parseRawLogLines feeds raw ELB log lines through the parser. Malformed
// lines were already filtered and counted there; only a batch with zero
// usable lines is an error.
func (s *ingestionService) parseRawLogLines(ctx context.Context, buf []byte) ([]*models.Event, error) {
	events, stats, err := s.logParser.Parse(bytes.NewReader(buf))
	if err != nil {
		return nil, errValidationFailed("failed to parse log lines", err)
	}

	loggers.Ctx(ctx).Debug().
		Int64("lines", stats.Lines).
		Int64("parsed", stats.Parsed).
		Int64("rejected", stats.Rejected).
		Msg("parsed raw log lines")

	return events, nil
}

func (s *ingestionService) normalizeEvent(event *models.Event) {
	event.ClientID = strings.TrimSpace(event.ClientID)
	event.URL = strings.TrimSpace(event.URL)
	event.UserAgent = strings.TrimSpace(event.UserAgent)
}

func (s *ingestionService) validateEvent(event *models.Event, index int) error {
	if event.ClientID == "" {
		return errValidationFailed(fmt.Sprintf("item at index %d: missing clientId", index), nil)
	}
	if len(event.ClientID) > maxClientLen {
		return errValidationFailed(fmt.Sprintf("item at index %d: clientId too long: max %d characters", index, maxClientLen), nil)
	}
	if event.Timestamp < 0 {
		return errValidationFailed(fmt.Sprintf("item at index %d: negative timestamp", index), nil)
	}
	if event.URL == "" {
		return errValidationFailed(fmt.Sprintf("item at index %d: missing url", index), nil)
	}
	if len(event.URL) > maxURLLen {
		return errValidationFailed(fmt.Sprintf("item at index %d: url too long: max %d characters", index, maxURLLen), nil)
	}
	return nil
}
