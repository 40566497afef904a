package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gator2000/WeblogChallenge/internal/models"
	"github.com/gator2000/WeblogChallenge/internal/shared/blobstores"
)

var (
	ErrEventBatchAlreadyExist = errors.New("event batch already exists")
)

// EventBatchStore persists raw ingested batches with create-if-not-exists
// semantics. Two concurrent ingests of the same job id race on the atomic
// no-overwrite Put; the loser gets ErrEventBatchAlreadyExist, which is how
// duplicate submissions are rejected.
//
//go:generate mockgen -source=event_batch_store.go -destination=./mocks/event_batch_store_mock.go -package=mocks
type EventBatchStore interface {
	Put(ctx context.Context, batch *models.EventBatch) error
}

type eventBatchStore struct {
	blobStore blobstores.BlobStore
	dir       string
}

func NewEventBatchStore(blobStore blobstores.BlobStore) EventBatchStore {
	return &eventBatchStore{blobStore: blobStore, dir: "raw-batches"}
}

func (s *eventBatchStore) Put(ctx context.Context, batch *models.EventBatch) error {
	jsonData, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal event batch: %w", err)
	}

	key := fmt.Sprintf("%s/%s.json", s.dir, batch.JobID)

	_, err = s.blobStore.Put(ctx, key, bytes.NewReader(jsonData), blobstores.PutOptions{AllowOverwrite: false})
	if err != nil {
		if errors.Is(err, blobstores.ErrBlobAlreadyExists) {
			return ErrEventBatchAlreadyExist
		}
		return fmt.Errorf("failed to put event batch: %w", err)
	}
	return nil
}
