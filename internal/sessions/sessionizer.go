package sessions

import (
	"fmt"
	"sort"

	"github.com/gator2000/WeblogChallenge/internal/models"
)

// DefaultGapThresholdMinutes is the minimum idle gap that starts a new
// session. The comparison is inclusive: an event exactly this many minutes
// after the previous one for the same client opens a new session.
const DefaultGapThresholdMinutes = int64(15)

// Sessionizer segments one client's events into sessions using the idle-gap
// rule. It holds no mutable state, so a single instance is safe to use
// concurrently across client groups.
//
//go:generate mockgen -source=sessionizer.go -destination=./mocks/sessionizer_mock.go -package=mocks
type Sessionizer interface {
	// Sessionize orders the events of a single client by timestamp and
	// splits them into sessions. Every input event appears in exactly one
	// returned session. Session ids start at 0 and follow first-event time.
	Sessionize(events []*models.Event) ([]*models.Session, error)
}

type sessionizer struct {
	gapThreshold int64 // minutes
}

func NewSessionizer(gapThresholdMinutes int64) Sessionizer {
	return &sessionizer{gapThreshold: gapThresholdMinutes}
}

func (s *sessionizer) Sessionize(events []*models.Event) ([]*models.Session, error) {
	if len(events) == 0 {
		return nil, errEmptyClientGroup()
	}

	clientID := events[0].ClientID
	for i, event := range events {
		if event.ClientID == "" {
			return nil, errInvalidEvent(fmt.Sprintf("event at index %d: empty client id", i))
		}
		if event.ClientID != clientID {
			return nil, errInvalidEvent(fmt.Sprintf("event at index %d: client id %q does not match group %q", i, event.ClientID, clientID))
		}
		if event.Timestamp < 0 {
			return nil, errInvalidEvent(fmt.Sprintf("event at index %d: negative timestamp %d", i, event.Timestamp))
		}
	}

	// Stable sort keeps arrival order for same-minute events, so re-running
	// on identical input yields identical session membership.
	ordered := make([]*models.Event, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp < ordered[j].Timestamp
	})

	// Single scan with a running session counter. Each event whose gap from
	// the previous one reaches the threshold closes the current session.
	var result []*models.Session
	current := &models.Session{ClientID: clientID, SessionID: 0}
	previousTimestamp := ordered[0].Timestamp

	for _, event := range ordered {
		if event.Timestamp-previousTimestamp >= s.gapThreshold {
			result = append(result, current)
			current = &models.Session{ClientID: clientID, SessionID: current.SessionID + 1}
		}
		current.Events = append(current.Events, event)
		previousTimestamp = event.Timestamp
	}
	result = append(result, current)

	return result, nil
}
