package sessions

import (
	"testing"

	"github.com/gator2000/WeblogChallenge/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByClient_PartitionsByClientID(t *testing.T) {
	t.Parallel()

	events := []*models.Event{
		{ClientID: "A", Timestamp: 1, URL: "/a"},
		{ClientID: "B", Timestamp: 2, URL: "/b"},
		{ClientID: "A", Timestamp: 3, URL: "/c"},
		{ClientID: "C", Timestamp: 4, URL: "/d"},
		{ClientID: "B", Timestamp: 5, URL: "/e"},
	}

	groups := GroupByClient(events)

	require.Len(t, groups, 3)
	assert.Len(t, groups["A"], 2)
	assert.Len(t, groups["B"], 2)
	assert.Len(t, groups["C"], 1)
}

func TestGroupByClient_PreservesTotalCount(t *testing.T) {
	t.Parallel()

	events := []*models.Event{
		{ClientID: "A", Timestamp: 1, URL: "/"},
		{ClientID: "A", Timestamp: 1, URL: "/"},
		{ClientID: "B", Timestamp: 2, URL: "/"},
	}

	groups := GroupByClient(events)

	total := 0
	for _, group := range groups {
		total += len(group)
	}
	assert.Equal(t, len(events), total)
}

func TestGroupByClient_EmptyInput(t *testing.T) {
	t.Parallel()

	groups := GroupByClient(nil)
	assert.Empty(t, groups)
}
