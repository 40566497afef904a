package ingestors_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/gator2000/WeblogChallenge/internal/ingestors"
	"github.com/gator2000/WeblogChallenge/internal/models"
	"github.com/gator2000/WeblogChallenge/internal/parsers"
	parsermocks "github.com/gator2000/WeblogChallenge/internal/parsers/mocks"
	"github.com/gator2000/WeblogChallenge/internal/shared/svcerrors"
	"github.com/gator2000/WeblogChallenge/internal/stores"
	storemocks "github.com/gator2000/WeblogChallenge/internal/stores/mocks"

	analyzermocks "github.com/gator2000/WeblogChallenge/internal/analyzers/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type serviceMocks struct {
	logParser       *parsermocks.MockLogParser
	batchStore      *storemocks.MockEventBatchStore
	analysisService *analyzermocks.MockAnalysisService
}

func newService(t *testing.T) (ingestors.IngestionService, *serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &serviceMocks{
		logParser:       parsermocks.NewMockLogParser(ctrl),
		batchStore:      storemocks.NewMockEventBatchStore(ctrl),
		analysisService: analyzermocks.NewMockAnalysisService(ctrl),
	}
	return ingestors.NewIngestionService(m.logParser, m.batchStore, m.analysisService), m
}

func TestIngestEvents_JSONBatch(t *testing.T) {
	t.Parallel()

	service, m := newService(t)

	body := bytes.NewReader([]byte(`[
		{"clientId":"1.2.3.4","timestamp":100,"url":"/home"},
		{"clientId":"1.2.3.4","timestamp":105,"url":"/shop"}
	]`))

	expectedReport := &models.Report{JobID: "key-1", SessionCount: 1}

	m.batchStore.EXPECT().
		Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, batch *models.EventBatch) error {
			assert.Equal(t, "key-1", batch.JobID)
			require.Len(t, batch.Events, 2)
			assert.Equal(t, "1.2.3.4", batch.Events[0].ClientID)
			return nil
		})
	m.analysisService.EXPECT().
		Analyze(gomock.Any(), "key-1", gomock.Len(2)).
		Return(expectedReport, nil)

	report, err := service.IngestEvents(context.Background(), "key-1", "application/json", body)
	require.NoError(t, err)
	assert.Equal(t, expectedReport, report)
}

func TestIngestEvents_GeneratesJobIDWhenKeyMissing(t *testing.T) {
	t.Parallel()

	service, m := newService(t)

	body := bytes.NewReader([]byte(`[{"clientId":"1.2.3.4","timestamp":100,"url":"/"}]`))

	var jobID string
	m.batchStore.EXPECT().
		Put(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, batch *models.EventBatch) error {
			jobID = batch.JobID
			assert.NotEmpty(t, jobID)
			return nil
		})
	m.analysisService.EXPECT().
		Analyze(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, gotJobID string, _ []*models.Event) (*models.Report, error) {
			assert.Equal(t, jobID, gotJobID)
			return &models.Report{JobID: gotJobID}, nil
		})

	_, err := service.IngestEvents(context.Background(), "", "application/json", body)
	require.NoError(t, err)
}

func TestIngestEvents_PlainTextGoesThroughParser(t *testing.T) {
	t.Parallel()

	service, m := newService(t)

	parsed := []*models.Event{{ClientID: "1.2.3.4", Timestamp: 100, URL: "/"}}
	m.logParser.EXPECT().
		Parse(gomock.Any()).
		Return(parsed, &parsers.ParseStats{Lines: 2, Parsed: 1, Rejected: 1}, nil)
	m.batchStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)
	m.analysisService.EXPECT().
		Analyze(gomock.Any(), "key-1", parsed).
		Return(&models.Report{JobID: "key-1"}, nil)

	body := strings.NewReader("raw elb log lines")
	_, err := service.IngestEvents(context.Background(), "key-1", "text/plain", body)
	require.NoError(t, err)
}

func TestIngestEvents_ErrValidationFailed_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	service, _ := newService(t)

	body := bytes.NewReader([]byte(`{}`))
	_, err := service.IngestEvents(context.Background(), "key-1", "application/xml", body)

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ING_1000", svcErr.Code)
	assert.Equal(t, "invalid_argument", svcErr.Category)
}

func TestIngestEvents_ErrValidationFailed_InvalidJSON(t *testing.T) {
	t.Parallel()

	service, _ := newService(t)

	body := bytes.NewReader([]byte(`{not json}`))
	_, err := service.IngestEvents(context.Background(), "key-1", "application/json", body)

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ING_1000", svcErr.Code)
}

func TestIngestEvents_ErrValidationFailed_EventValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
	}{
		{
			name: "empty batch",
			json: `[]`,
		},
		{
			name: "missing clientId",
			json: `[{"timestamp":100,"url":"/"}]`,
		},
		{
			name: "negative timestamp",
			json: `[{"clientId":"1.2.3.4","timestamp":-1,"url":"/"}]`,
		},
		{
			name: "missing url",
			json: `[{"clientId":"1.2.3.4","timestamp":100}]`,
		},
		{
			name: "null event",
			json: `[null]`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			service, _ := newService(t)

			_, err := service.IngestEvents(context.Background(), "key-1", "application/json", bytes.NewReader([]byte(tt.json)))
			require.Error(t, err)
			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok)
			assert.Equal(t, "ING_1000", svcErr.Code)
		})
	}
}

func TestIngestEvents_ErrValidationFailed_BatchTooLarge(t *testing.T) {
	t.Parallel()

	service, _ := newService(t)

	largeBody := make([]byte, 16*1024*1024+1)
	_, err := service.IngestEvents(context.Background(), "key-1", "application/json", bytes.NewReader(largeBody))

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ING_1000", svcErr.Code)
	assert.Equal(t, "batch too large: must be <= 16MB", svcErr.Message)
}

func TestIngestEvents_ErrJobAlreadyIngested(t *testing.T) {
	t.Parallel()

	service, m := newService(t)

	body := bytes.NewReader([]byte(`[{"clientId":"1.2.3.4","timestamp":100,"url":"/"}]`))
	m.batchStore.EXPECT().Put(gomock.Any(), gomock.Any()).Return(stores.ErrEventBatchAlreadyExist)

	_, err := service.IngestEvents(context.Background(), "key-1", "application/json", body)

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, "ING_1001", svcErr.Code)
	assert.Equal(t, "resource_conflict", svcErr.Category)
	assert.Equal(t, 409, svcErr.HttpStatusCode)
}
