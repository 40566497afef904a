package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/gator2000/WeblogChallenge/internal/models"
	"github.com/gator2000/WeblogChallenge/internal/shared/blobstores"
	"github.com/gator2000/WeblogChallenge/internal/shared/blobstores/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReportStore_Put_OverwritesExisting(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBlobStore := mocks.NewMockBlobStore(ctrl)
	store := NewReportStore(mockBlobStore)

	report := &models.Report{JobID: "job-123", SessionCount: 2}

	mockBlobStore.EXPECT().
		Put(gomock.Any(), "reports/job-123.json", gomock.Any(), blobstores.PutOptions{AllowOverwrite: true}).
		Return(&blobstores.PutResult{Key: "reports/job-123.json"}, nil)

	err := store.Put(context.Background(), report)
	assert.NoError(t, err)
}

func TestReportStore_Get_Success(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBlobStore := mocks.NewMockBlobStore(ctrl)
	store := NewReportStore(mockBlobStore)

	stored := &models.Report{JobID: "job-123", SessionCount: 5}
	jsonData, err := json.Marshal(stored)
	require.NoError(t, err)

	mockBlobStore.EXPECT().
		Get(gomock.Any(), "reports/job-123.json").
		Return(io.NopCloser(bytes.NewReader(jsonData)), nil)

	report, err := store.Get(context.Background(), "job-123")
	require.NoError(t, err)
	assert.Equal(t, "job-123", report.JobID)
	assert.Equal(t, int64(5), report.SessionCount)
}

func TestReportStore_Get_NotFound(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBlobStore := mocks.NewMockBlobStore(ctrl)
	store := NewReportStore(mockBlobStore)

	mockBlobStore.EXPECT().
		Get(gomock.Any(), "reports/missing.json").
		Return(nil, blobstores.ErrBlobNotFound)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrReportNotFound)
}
