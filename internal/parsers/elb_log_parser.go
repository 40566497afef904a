package parsers

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gator2000/WeblogChallenge/internal/models"

	"github.com/mileusna/useragent"
)

// An ELB access-log record has exactly 15 space-separated fields, with the
// request and user-agent fields quoted:
//
//	timestamp elb client:port backend:port request_processing_time
//	backend_processing_time response_processing_time elb_status_code
//	backend_status_code received_bytes sent_bytes "request" "user_agent"
//	ssl_cipher ssl_protocol
const elbFieldCount = 15

const (
	fieldTimestamp             = 0
	fieldClient                = 2
	fieldBackendProcessingTime = 5
	fieldRequest               = 11
	fieldUserAgent             = 12
)

const (
	rejectFieldCount     = "field_count"
	rejectTimestamp      = "timestamp"
	rejectProcessingTime = "processing_time"
	rejectRequest        = "request"
)

const maxLineBytes = 64 * 1024

// ParseStats reports what happened to each line of a parsed stream.
// Malformed lines are counted and skipped, never fatal; cleaning is this
// layer's job, the session engine only ever sees valid events.
type ParseStats struct {
	Lines    int64
	Parsed   int64
	Rejected int64
}

//go:generate mockgen -source=elb_log_parser.go -destination=./mocks/elb_log_parser_mock.go -package=mocks
type LogParser interface {
	// Parse converts raw log lines into cleaned events. The returned stats
	// account for every input line.
	Parse(r io.Reader) ([]*models.Event, *ParseStats, error)
}

type elbLogParser struct{}

func NewELBLogParser() LogParser {
	return &elbLogParser{}
}

func (p *elbLogParser) Parse(r io.Reader) ([]*models.Event, *ParseStats, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, maxLineBytes), maxLineBytes)

	var events []*models.Event
	stats := &ParseStats{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.Lines++

		event, reason := p.parseLine(line)
		if event == nil {
			stats.Rejected++
			metricLinesRejectedTotal.WithLabelValues(reason).Inc()
			continue
		}
		stats.Parsed++
		metricLinesParsedTotal.WithLabelValues().Inc()
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	return events, stats, nil
}

// parseLine converts one log line to an event, or returns a rejection reason.
func (p *elbLogParser) parseLine(line string) (*models.Event, string) {
	fields := splitLogLine(line)
	if len(fields) != elbFieldCount {
		return nil, rejectFieldCount
	}

	ts, err := time.Parse("2006-01-02T15:04:05.999999Z07:00", fields[fieldTimestamp])
	if err != nil {
		return nil, rejectTimestamp
	}

	// A non-positive backend processing time marks a request the backend
	// never answered; such records are dropped as invalid.
	processingTime, err := strconv.ParseFloat(fields[fieldBackendProcessingTime], 64)
	if err != nil || processingTime <= 0 {
		return nil, rejectProcessingTime
	}

	url, ok := requestURL(fields[fieldRequest])
	if !ok {
		return nil, rejectRequest
	}

	return &models.Event{
		ClientID:  stripPort(fields[fieldClient]),
		Timestamp: ts.Unix() / 60,
		URL:       url,
		UserAgent: normalizeUserAgent(fields[fieldUserAgent]),
	}, ""
}

// splitLogLine tokenizes a log line on spaces, keeping quoted fields (the
// request and user-agent) as single tokens with the quotes removed.
func splitLogLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false
	hasToken := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			hasToken = true
		case r == ' ' && !inQuotes:
			if hasToken {
				fields = append(fields, current.String())
				current.Reset()
				hasToken = false
			}
		default:
			current.WriteRune(r)
			hasToken = true
		}
	}
	if hasToken {
		fields = append(fields, current.String())
	}
	return fields
}

// stripPort drops the ":port" suffix of a client address; the stable client
// identity is the bare IP.
func stripPort(addr string) string {
	if idx := strings.LastIndexByte(addr, ':'); idx >= 0 {
		return addr[:idx]
	}
	return addr
}

// requestURL extracts the URL token from the compound "METHOD url PROTOCOL"
// request field.
func requestURL(request string) (string, bool) {
	parts := strings.Fields(request)
	if len(parts) < 2 {
		return "", false
	}
	return parts[1], true
}

// normalizeUserAgent reduces a raw user-agent string to its browser family,
// falling back to the raw string when the parser finds nothing.
func normalizeUserAgent(ua string) string {
	if ua == "" || ua == "-" {
		return ""
	}
	parsed := useragent.Parse(ua)
	if parsed.Name != "" {
		return parsed.Name
	}
	return ua
}
