package sessions

import (
	"testing"

	"github.com/gator2000/WeblogChallenge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeSession_DurationAndDistinctURLs(t *testing.T) {
	t.Parallel()

	session := &models.Session{
		ClientID:  "A",
		SessionID: 2,
		Events: []*models.Event{
			{ClientID: "A", Timestamp: 10, URL: "/home"},
			{ClientID: "A", Timestamp: 12, URL: "/shop"},
			{ClientID: "A", Timestamp: 15, URL: "/home"},
		},
	}

	m := SummarizeSession(session)

	assert.Equal(t, "A", m.ClientID)
	assert.Equal(t, 2, m.SessionID)
	assert.Equal(t, int64(5), m.Duration)
	assert.Equal(t, 2, m.DistinctURLCount, "repeated /home counts once")
}

func TestSummarizeSession_SingleEvent(t *testing.T) {
	t.Parallel()

	session := &models.Session{
		ClientID:  "B",
		SessionID: 0,
		Events:    []*models.Event{{ClientID: "B", Timestamp: 100, URL: "/"}},
	}

	m := SummarizeSession(session)

	assert.Equal(t, int64(0), m.Duration)
	assert.Equal(t, 1, m.DistinctURLCount)
}

func TestSummarizeClient_MaxDuration(t *testing.T) {
	t.Parallel()

	sessionMetrics := []*models.SessionMetrics{
		{ClientID: "A", SessionID: 0, Duration: 5},
		{ClientID: "A", SessionID: 1, Duration: 34},
		{ClientID: "A", SessionID: 2, Duration: 1},
	}

	m := SummarizeClient("A", sessionMetrics)

	assert.Equal(t, "A", m.ClientID)
	assert.Equal(t, int64(34), m.MaxDuration)
}

func TestSummarizeClient_NoSessions(t *testing.T) {
	t.Parallel()

	m := SummarizeClient("A", nil)
	assert.Equal(t, int64(0), m.MaxDuration)
}

func TestAverageDuration(t *testing.T) {
	t.Parallel()

	sessionMetrics := []*models.SessionMetrics{
		{Duration: 5},
		{Duration: 1},
		{Duration: 0},
		{Duration: 34},
	}

	avg, err := AverageDuration(sessionMetrics)
	require.NoError(t, err)
	assert.Equal(t, 10.0, avg)
}

func TestAverageDuration_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := AverageDuration(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSessions)
}
