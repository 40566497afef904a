package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gator2000/WeblogChallenge/internal/models"
	"github.com/gator2000/WeblogChallenge/internal/shared/blobstores"
)

var (
	ErrReportNotFound = errors.New("report not found")
)

// ReportStore persists finished analysis reports keyed by job id. Re-running
// a job overwrites its previous report; the computation is deterministic, so
// the replacement is equivalent.
//
//go:generate mockgen -source=report_store.go -destination=./mocks/report_store_mock.go -package=mocks
type ReportStore interface {
	Put(ctx context.Context, report *models.Report) error
	Get(ctx context.Context, jobID string) (*models.Report, error)
}

type reportStore struct {
	blobStore blobstores.BlobStore
	dir       string
}

func NewReportStore(blobStore blobstores.BlobStore) ReportStore {
	return &reportStore{blobStore: blobStore, dir: "reports"}
}

func (s *reportStore) Put(ctx context.Context, report *models.Report) error {
	jsonData, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	key := s.getKey(report.JobID)
	_, err = s.blobStore.Put(ctx, key, bytes.NewReader(jsonData), blobstores.PutOptions{AllowOverwrite: true})
	if err != nil {
		return fmt.Errorf("failed to put report: %w", err)
	}
	return nil
}

func (s *reportStore) Get(ctx context.Context, jobID string) (*models.Report, error) {
	readCloser, err := s.blobStore.Get(ctx, s.getKey(jobID))
	if err != nil {
		if errors.Is(err, blobstores.ErrBlobNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}

func (s *reportStore) getKey(jobID string) string {
	return fmt.Sprintf("%s/%s.json", s.dir, jobID)
}
