package sessions

import (
	"errors"

	"github.com/gator2000/WeblogChallenge/internal/models"
)

// ErrNoSessions is returned when a global reduction runs over zero sessions.
// The average duration of an empty set is undefined, not zero.
var ErrNoSessions = errors.New("no sessions to aggregate")

// SummarizeSession reduces one session to its metrics. Duration is max-min
// timestamp; a single-event session has duration 0. The distinct URL count
// only looks at literal URL strings, set semantics.
func SummarizeSession(session *models.Session) *models.SessionMetrics {
	urls := make(map[string]struct{}, len(session.Events))
	for _, event := range session.Events {
		urls[event.URL] = struct{}{}
	}

	return &models.SessionMetrics{
		ClientID:         session.ClientID,
		SessionID:        session.SessionID,
		Duration:         session.Duration(),
		DistinctURLCount: len(urls),
	}
}

// SummarizeClient reduces a client's session metrics to the client's longest
// single session duration.
func SummarizeClient(clientID string, sessionMetrics []*models.SessionMetrics) *models.ClientMetrics {
	var maxDuration int64
	for _, m := range sessionMetrics {
		if m.Duration > maxDuration {
			maxDuration = m.Duration
		}
	}
	return &models.ClientMetrics{ClientID: clientID, MaxDuration: maxDuration}
}

// AverageDuration computes the arithmetic mean of all session durations,
// unweighted by session size. Returns ErrNoSessions for an empty input.
func AverageDuration(sessionMetrics []*models.SessionMetrics) (float64, error) {
	if len(sessionMetrics) == 0 {
		return 0, ErrNoSessions
	}

	var total int64
	for _, m := range sessionMetrics {
		total += m.Duration
	}
	return float64(total) / float64(len(sessionMetrics)), nil
}
