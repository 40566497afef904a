package models

// EventBatch is one ingested batch of cleaned events, persisted as-is so a
// run can be replayed or audited. JobID doubles as the idempotency key.
type EventBatch struct {
	JobID  string   `json:"jobId"`
	Events []*Event `json:"events"`
}
