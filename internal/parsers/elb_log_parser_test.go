package parsers

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validLine = `2015-07-22T09:00:28.019143Z marketpalce-shop 123.242.248.130:54635 10.0.6.158:80 0.000022 0.026109 0.00002 200 200 0 699 "GET https://paytm.com:443/shop/authresponse?code=f2405b05 HTTP/1.1" "Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/43.0.2357.134 Safari/537.36" ECDHE-RSA-AES128-GCM-SHA256 TLSv1.2`

func TestParse_ValidLine(t *testing.T) {
	t.Parallel()

	parser := NewELBLogParser()

	events, stats, err := parser.Parse(strings.NewReader(validLine))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(1), stats.Lines)
	assert.Equal(t, int64(1), stats.Parsed)
	assert.Equal(t, int64(0), stats.Rejected)

	e := events[0]
	assert.Equal(t, "123.242.248.130", e.ClientID, "port must be stripped")
	assert.Equal(t, "https://paytm.com:443/shop/authresponse?code=f2405b05", e.URL)
	assert.Equal(t, "Chrome", e.UserAgent)

	expectedMinutes := time.Date(2015, 7, 22, 9, 0, 28, 19143000, time.UTC).Unix() / 60
	assert.Equal(t, expectedMinutes, e.Timestamp)
}

func TestParse_SameMinuteEventsShareTimestamp(t *testing.T) {
	t.Parallel()

	parser := NewELBLogParser()

	lines := strings.ReplaceAll(validLine, "09:00:28.019143", "09:00:01.000000") + "\n" +
		strings.ReplaceAll(validLine, "09:00:28.019143", "09:00:59.999999")

	events, _, err := parser.Parse(strings.NewReader(lines))
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, events[0].Timestamp, events[1].Timestamp, "sub-minute precision is coarsened away")
}

func TestParse_RejectsWrongFieldCount(t *testing.T) {
	t.Parallel()

	parser := NewELBLogParser()

	events, stats, err := parser.Parse(strings.NewReader("too few fields here"))
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, int64(1), stats.Rejected)
}

func TestParse_RejectsBadTimestamp(t *testing.T) {
	t.Parallel()

	parser := NewELBLogParser()

	line := strings.Replace(validLine, "2015-07-22T09:00:28.019143Z", "not-a-timestamp", 1)
	events, stats, err := parser.Parse(strings.NewReader(line))
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, int64(1), stats.Rejected)
}

func TestParse_RejectsNonPositiveProcessingTime(t *testing.T) {
	t.Parallel()

	parser := NewELBLogParser()

	// ELB writes -1 for requests the backend never answered.
	line := strings.Replace(validLine, " 0.026109 ", " -1 ", 1)
	events, stats, err := parser.Parse(strings.NewReader(line))
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, int64(1), stats.Rejected)
}

func TestParse_RejectsMalformedRequestField(t *testing.T) {
	t.Parallel()

	parser := NewELBLogParser()

	line := strings.Replace(validLine, `"GET https://paytm.com:443/shop/authresponse?code=f2405b05 HTTP/1.1"`, `"- "`, 1)
	events, stats, err := parser.Parse(strings.NewReader(line))
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, int64(1), stats.Rejected)
}

func TestParse_MalformedLinesAreSkippedNotFatal(t *testing.T) {
	t.Parallel()

	parser := NewELBLogParser()

	input := validLine + "\n" + "garbage line" + "\n" + validLine + "\n"
	events, stats, err := parser.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, events, 2)
	assert.Equal(t, int64(3), stats.Lines)
	assert.Equal(t, int64(2), stats.Parsed)
	assert.Equal(t, int64(1), stats.Rejected)
}

func TestParse_SkipsBlankLines(t *testing.T) {
	t.Parallel()

	parser := NewELBLogParser()

	events, stats, err := parser.Parse(strings.NewReader("\n\n" + validLine + "\n\n"))
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, int64(1), stats.Lines, "blank lines are not counted")
}

func TestParse_EmptyInput(t *testing.T) {
	t.Parallel()

	parser := NewELBLogParser()

	events, stats, err := parser.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, int64(0), stats.Lines)
}

func TestSplitLogLine_QuotedFields(t *testing.T) {
	t.Parallel()

	fields := splitLogLine(`a b "c d e" f "g h" i`)
	assert.Equal(t, []string{"a", "b", "c d e", "f", "g h", "i"}, fields)
}

func TestStripPort(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "10.0.0.1", stripPort("10.0.0.1:8080"))
	assert.Equal(t, "10.0.0.1", stripPort("10.0.0.1"))
}
