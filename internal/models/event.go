package models

// Event is one cleaned access-log record. Timestamp is expressed in whole
// minutes since the Unix epoch; two events inside the same minute are
// indistinguishable for session segmentation.
type Event struct {
	ClientID  string `json:"clientId"`
	Timestamp int64  `json:"timestamp"`
	URL       string `json:"url"`
	UserAgent string `json:"userAgent,omitempty"`
}
