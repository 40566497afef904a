package ingestors

import (
	"github.com/gator2000/WeblogChallenge/internal/shared/metrics"
)

var (
	// metricBatchIngestedTotal counts ingest attempts by outcome.
	metricBatchIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "batch_ingested_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	// metricEventsIngestedTotal counts events accepted into analysis runs.
	metricEventsIngestedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "events_ingested_total",
		},
		[]string{},
	)
)
