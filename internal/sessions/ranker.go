package sessions

import (
	"sort"

	"github.com/gator2000/WeblogChallenge/internal/models"
)

// RankClients orders clients by their longest session duration, descending.
// Ties break on ascending client id so the ranking is reproducible. The
// input slice is not mutated. A positive topK truncates the result.
func RankClients(clients []*models.ClientMetrics, topK int) []*models.ClientMetrics {
	ranked := make([]*models.ClientMetrics, len(clients))
	copy(ranked, clients)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].MaxDuration != ranked[j].MaxDuration {
			return ranked[i].MaxDuration > ranked[j].MaxDuration
		}
		return ranked[i].ClientID < ranked[j].ClientID
	})

	if topK > 0 && topK < len(ranked) {
		ranked = ranked[:topK]
	}
	return ranked
}
