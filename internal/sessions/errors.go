package sessions

import (
	"github.com/gator2000/WeblogChallenge/internal/shared/svcerrors"
)

const (
	codeInvalidEvent     = "SESS_1000"
	codeEmptyClientGroup = "SESS_1001"
)

// errInvalidEvent returns an error for an event that should have been
// filtered upstream (negative timestamp, empty client id).
func errInvalidEvent(msg string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidEvent, msg, nil)
}

// errEmptyClientGroup returns an error for a client group with no events.
func errEmptyClientGroup() *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeEmptyClientGroup, "client group has no events", nil)
}
