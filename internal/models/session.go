package models

// Session is a maximal run of one client's time-ordered events with no
// internal idle gap reaching the configured threshold. SessionID is unique
// only within the owning client, starting at 0 and assigned in nondecreasing
// order of first-event time.
type Session struct {
	ClientID  string   `json:"clientId"`
	SessionID int      `json:"sessionId"`
	Events    []*Event `json:"events"`
}

// Duration returns max-min timestamp over the session's events in minutes.
// Events are kept sorted by the sessionizer, so the extremes are the ends.
func (s *Session) Duration() int64 {
	if len(s.Events) == 0 {
		return 0
	}
	return s.Events[len(s.Events)-1].Timestamp - s.Events[0].Timestamp
}

// SessionMetrics is the per-session reduction consumed by reporting.
type SessionMetrics struct {
	ClientID         string `json:"clientId"`
	SessionID        int    `json:"sessionId"`
	Duration         int64  `json:"duration"`
	DistinctURLCount int    `json:"distinctUrlCount"`
}

// ClientMetrics carries a client's longest single session duration.
type ClientMetrics struct {
	ClientID    string `json:"clientId"`
	MaxDuration int64  `json:"maxDuration"`
}
