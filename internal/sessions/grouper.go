package sessions

import (
	"github.com/gator2000/WeblogChallenge/internal/models"
)

// GroupByClient partitions events by client id. Every input event lands in
// exactly one group; relative order inside a group follows input order, but
// callers must not rely on it (ordering is the sessionizer's job).
func GroupByClient(events []*models.Event) map[string][]*models.Event {
	groups := make(map[string][]*models.Event)
	for _, event := range events {
		groups[event.ClientID] = append(groups[event.ClientID], event)
	}
	return groups
}
