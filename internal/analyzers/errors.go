package analyzers

import (
	"fmt"

	"github.com/gator2000/WeblogChallenge/internal/shared/svcerrors"
)

const (
	codeEmptyInput         = "ANA_1000"
	codeClientGroupInvalid = "ANA_1001"
	codeReportNotFound     = "ANA_1002"

	codeInternalReportStoreFailed = "ANA_9000"
)

// errEmptyInput returns an error for an analysis request with zero events.
func errEmptyInput() *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeEmptyInput, "no events to analyze", nil)
}

// errClientGroupInvalid returns an error when a client group fails
// sessionization in strict mode.
func errClientGroupInvalid(clientID string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeClientGroupInvalid, fmt.Sprintf("client %q has invalid events", clientID), cause)
}

// errReportNotFound returns an error for a lookup of a job that never ran.
func errReportNotFound(jobID string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeReportNotFound, fmt.Sprintf("no report for job %q", jobID), cause)
}

// errInternalReportStoreFailed returns an error when persisting the report fails.
func errInternalReportStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReportStoreFailed, fmt.Errorf("reportStoreFailed: %w", cause))
}
