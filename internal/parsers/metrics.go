package parsers

import (
	"github.com/gator2000/WeblogChallenge/internal/shared/metrics"
)

var (
	metricLinesParsedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubParsing,
			Name:      "lines_parsed_total",
		},
		[]string{},
	)

	// metricLinesRejectedTotal counts malformed lines by rejection reason.
	metricLinesRejectedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubParsing,
			Name:      "lines_rejected_total",
		},
		[]string{"reason"},
	)
)
