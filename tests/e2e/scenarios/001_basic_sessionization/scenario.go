package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	clientCount       = 50 // Number of distinct clients
	sessionsPerClient = 4  // Sessions generated per client
	eventsPerSession  = 5  // Events inside each session
	intraSessionGap   = 5  // Minutes between events inside a session (< idle threshold)
	interSessionGap   = 20 // Minutes between sessions (>= idle threshold)
)

var urls = []string{"/", "/shop", "/shop/cart", "/checkout", "/account"}

// ### End - fixed configs

type event struct {
	ClientID  string `json:"clientId"`
	Timestamp int64  `json:"timestamp"`
	URL       string `json:"url"`
	UserAgent string `json:"userAgent,omitempty"`
}

type sessionMetrics struct {
	ClientID         string `json:"clientId"`
	SessionID        int    `json:"sessionId"`
	Duration         int64  `json:"duration"`
	DistinctURLCount int    `json:"distinctUrlCount"`
}

type clientMetrics struct {
	ClientID    string `json:"clientId"`
	MaxDuration int64  `json:"maxDuration"`
}

type report struct {
	JobID              string            `json:"jobId"`
	EventCount         int64             `json:"eventCount"`
	SessionCount       int64             `json:"sessionCount"`
	AvgSessionDuration *float64          `json:"avgSessionDuration,omitempty"`
	Sessions           []*sessionMetrics `json:"sessions"`
	TopClients         []*clientMetrics  `json:"topClients"`
}

// main runs the e2e scenario: 001_basic_sessionization
//
// This scenario tests the end-to-end flow of event ingestion and idle-gap
// sessionization. It posts a deterministic batch of events to the analysis
// API and verifies the returned report, then replays the same batch to test
// idempotency handling.
//
// What it tests:
//   - Event batch ingestion via POST /analyses endpoint
//   - Idempotency key handling for duplicate batch detection (409 on replay)
//   - Idle-gap session splitting (gaps of 20 minutes open a new session,
//     gaps of 5 minutes do not)
//   - Session count, average duration and distinct URL counting
//   - Most-engaged client ranking by longest single session
//   - Report retrieval via GET /reports/{jobID}
//
// Expected results:
//   - First POST returns 200 with sessionCount = clientCount * sessionsPerClient
//   - Every session has duration = (eventsPerSession-1) * intraSessionGap
//   - avgSessionDuration equals that same value (all sessions identical)
//   - Replayed POST returns 409 Conflict
//   - GET /reports/{jobID} returns the stored report
func main() {
	baseURL := getEnv("BASE_URL", "http://localhost:8080")
	jobID := getEnv("JOB_ID", fmt.Sprintf("e2e-%d", time.Now().Unix()))

	expectedSessions := int64(clientCount * sessionsPerClient)
	expectedDuration := int64((eventsPerSession - 1) * intraSessionGap)

	fmt.Println("Starting e2e scenario: 001_basic_sessionization")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("JOB_ID: %s\n", jobID)
	fmt.Printf("CLIENT_COUNT: %d\n", clientCount)
	fmt.Printf("SESSIONS_PER_CLIENT: %d\n", sessionsPerClient)
	fmt.Printf("EVENTS_PER_SESSION: %d\n", eventsPerSession)
	fmt.Printf("EXPECTED_SESSIONS: %d\n", expectedSessions)
	fmt.Printf("EXPECTED_DURATION: %d\n", expectedDuration)
	fmt.Println()

	events := generateEvents()
	fmt.Printf("Generated %d events\n", len(events))

	jsonData, err := json.Marshal(events)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to marshal events: %v\n", err)
		os.Exit(1)
	}

	// First send: expect 200 with the full report
	statusCode, body, err := postBatch(baseURL, jobID, jsonData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: First batch send failed: %v\n", err)
		os.Exit(1)
	}
	if statusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "ERROR: Expected 200 on first send, got %d: %s\n", statusCode, body)
		os.Exit(1)
	}
	fmt.Printf("First send completed (status %d)\n", statusCode)

	var rpt report
	if err := json.Unmarshal(body, &rpt); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to decode report: %v\n", err)
		os.Exit(1)
	}
	verifyReport(&rpt, jobID, int64(len(events)), expectedSessions, expectedDuration)
	fmt.Println("Report verified")

	// Replay: expect 409 Conflict
	statusCode, _, err = postBatch(baseURL, jobID, jsonData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Replay send failed: %v\n", err)
		os.Exit(1)
	}
	if statusCode != http.StatusConflict {
		fmt.Fprintf(os.Stderr, "ERROR: Expected 409 on replay, got %d\n", statusCode)
		os.Exit(1)
	}
	fmt.Printf("Replay rejected as expected (status %d)\n", statusCode)

	// Fetch the stored report back
	stored, err := getReport(baseURL, jobID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Report fetch failed: %v\n", err)
		os.Exit(1)
	}
	verifyReport(stored, jobID, int64(len(events)), expectedSessions, expectedDuration)
	fmt.Println("Stored report verified")

	fmt.Println()
	fmt.Println("=== Statistics ===")
	fmt.Printf("Events sent: %d\n", len(events))
	fmt.Printf("Sessions computed: %d\n", rpt.SessionCount)
	fmt.Printf("Average session duration: %v\n", *rpt.AvgSessionDuration)
	fmt.Printf("Top clients returned: %d\n", len(rpt.TopClients))
	fmt.Println("Scenario completed successfully")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// generateEvents builds clientCount * sessionsPerClient * eventsPerSession
// events. Inside a session consecutive events are intraSessionGap minutes
// apart; sessions are separated by interSessionGap minutes. Clients are
// staggered so their timelines do not align.
func generateEvents() []event {
	events := make([]event, 0, clientCount*sessionsPerClient*eventsPerSession)
	base := int64(29_000_000) // arbitrary minutes-since-epoch origin

	for c := 0; c < clientCount; c++ {
		clientID := fmt.Sprintf("10.0.%d.%d", c/256, c%256)
		ts := base + int64(c) // stagger per client

		for s := 0; s < sessionsPerClient; s++ {
			for e := 0; e < eventsPerSession; e++ {
				events = append(events, event{
					ClientID:  clientID,
					Timestamp: ts,
					URL:       urls[(s+e)%len(urls)],
					UserAgent: "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
				})
				ts += intraSessionGap
			}
			ts += interSessionGap - intraSessionGap
		}
	}

	return events
}

func verifyReport(rpt *report, jobID string, eventCount, expectedSessions, expectedDuration int64) {
	fail := func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, "ERROR: "+format+"\n", args...)
		os.Exit(1)
	}

	if rpt.JobID != jobID {
		fail("jobId mismatch: want %s, got %s", jobID, rpt.JobID)
	}
	if rpt.EventCount != eventCount {
		fail("eventCount mismatch: want %d, got %d", eventCount, rpt.EventCount)
	}
	if rpt.SessionCount != expectedSessions {
		fail("sessionCount mismatch: want %d, got %d", expectedSessions, rpt.SessionCount)
	}
	if rpt.AvgSessionDuration == nil {
		fail("avgSessionDuration missing")
	}
	if *rpt.AvgSessionDuration != float64(expectedDuration) {
		fail("avgSessionDuration mismatch: want %d, got %v", expectedDuration, *rpt.AvgSessionDuration)
	}
	if int64(len(rpt.Sessions)) != expectedSessions {
		fail("sessions length mismatch: want %d, got %d", expectedSessions, len(rpt.Sessions))
	}
	for _, s := range rpt.Sessions {
		if s.Duration != expectedDuration {
			fail("session %s/%d duration mismatch: want %d, got %d", s.ClientID, s.SessionID, expectedDuration, s.Duration)
		}
		if s.DistinctURLCount != eventsPerSession {
			fail("session %s/%d distinct url count mismatch: want %d, got %d", s.ClientID, s.SessionID, eventsPerSession, s.DistinctURLCount)
		}
	}
	if len(rpt.TopClients) == 0 {
		fail("topClients empty")
	}
	for _, c := range rpt.TopClients {
		if c.MaxDuration != expectedDuration {
			fail("client %s maxDuration mismatch: want %d, got %d", c.ClientID, expectedDuration, c.MaxDuration)
		}
	}
}

func postBatch(baseURL, jobID string, jsonData []byte) (int, []byte, error) {
	req, err := http.NewRequest("POST", baseURL+"/analyses", bytes.NewReader(jsonData))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("idempotency-key", jobID)

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusConflict {
		return resp.StatusCode, buf.Bytes(), fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return resp.StatusCode, buf.Bytes(), nil
}

func getReport(baseURL, jobID string) (*report, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(baseURL + "/reports/" + jobID)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d (want 200), job %s", resp.StatusCode, strconv.Quote(jobID))
	}

	var rpt report
	if err := json.NewDecoder(resp.Body).Decode(&rpt); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}

	return &rpt, nil
}
