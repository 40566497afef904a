package models

// SkippedClient records a client group that failed validation during a
// non-strict analysis run. The rest of the batch still produces results.
type SkippedClient struct {
	ClientID string `json:"clientId"`
	Reason   string `json:"reason"`
}

// Report is the result of one full sessionization pass over a batch of
// events. AvgSessionDuration is nil when the run produced zero sessions
// (the average is undefined, never coerced to 0).
type Report struct {
	JobID              string            `json:"jobId"`
	EventCount         int64             `json:"eventCount"`
	SessionCount       int64             `json:"sessionCount"`
	AvgSessionDuration *float64          `json:"avgSessionDuration,omitempty"`
	Sessions           []*SessionMetrics `json:"sessions"`
	TopClients         []*ClientMetrics  `json:"topClients"`
	SkippedClients     []SkippedClient   `json:"skippedClients,omitempty"`
	RequestsByAgent    map[string]int64  `json:"requestsByAgent,omitempty"`
}
