package ingestors

import (
	"fmt"

	"github.com/gator2000/WeblogChallenge/internal/shared/svcerrors"
)

// IngestionService errors
const (
	codeValidationFailed   = "ING_1000"
	codeJobAlreadyIngested = "ING_1001"

	codeInternalEventBatchStoreFailed = "ING_9000"
)

// errValidationFailed returns an error for validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

// errJobAlreadyIngested returns an error when a job id has already been ingested.
func errJobAlreadyIngested(cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeJobAlreadyIngested, "job already ingested", cause)
}

// errInternalEventBatchStoreFailed returns an error when the raw batch cannot be persisted.
func errInternalEventBatchStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalEventBatchStoreFailed, fmt.Errorf("eventBatchStoreFailed: %w", cause))
}
