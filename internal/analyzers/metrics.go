package analyzers

import (
	"github.com/gator2000/WeblogChallenge/internal/shared/metrics"
)

var (
	// metricAnalysisRunsTotal counts full sessionization passes by outcome.
	metricAnalysisRunsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAnalysis,
			Name:      "runs_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricSessionsComputedTotal counts sessions produced across all runs.
	metricSessionsComputedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSessionization,
			Name:      "sessions_computed_total",
		},
		[]string{},
	)

	// metricClientGroupsSkippedTotal counts client groups dropped from a
	// non-strict run because their events failed validation.
	metricClientGroupsSkippedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubSessionization,
			Name:      "client_groups_skipped_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
