package analyzers

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"

	"github.com/gator2000/WeblogChallenge/internal/models"
	"github.com/gator2000/WeblogChallenge/internal/sessions"
	"github.com/gator2000/WeblogChallenge/internal/shared/configs"
	"github.com/gator2000/WeblogChallenge/internal/shared/loggers"
	"github.com/gator2000/WeblogChallenge/internal/shared/metrics"
	"github.com/gator2000/WeblogChallenge/internal/shared/svcerrors"
	"github.com/gator2000/WeblogChallenge/internal/stores"
	"github.com/gator2000/WeblogChallenge/internal/streams"
)

//go:generate mockgen -source=analysis_service.go -destination=./mocks/analysis_service_mock.go -package=mocks
type AnalysisService interface {
	// Analyze runs one full sessionization pass over a batch of events and
	// persists the resulting report under jobID.
	Analyze(ctx context.Context, jobID string, events []*models.Event) (*models.Report, error)

	// GetReport fetches the persisted report of an earlier run.
	GetReport(ctx context.Context, jobID string) (*models.Report, error)
}

type analysisService struct {
	sessionizer sessions.Sessionizer
	reportStore stores.ReportStore

	workers int
	topK    int
	strict  bool
}

func NewAnalysisService(sessionizer sessions.Sessionizer, reportStore stores.ReportStore, cfg configs.SessionizationConfig) AnalysisService {
	return &analysisService{
		sessionizer: sessionizer,
		reportStore: reportStore,
		workers:     cfg.Workers,
		topK:        cfg.TopK,
		strict:      cfg.Strict,
	}
}

// clientGroup is one client's unordered event set, the unit of scatter.
type clientGroup struct {
	clientID string
	events   []*models.Event
}

// clientResult is the unit of gather: one client's per-session metrics, or
// the error that disqualified the group.
type clientResult struct {
	clientID       string
	sessionMetrics []*models.SessionMetrics
	err            error
}

func (s *analysisService) Analyze(ctx context.Context, jobID string, events []*models.Event) (*models.Report, error) {
	logger := loggers.Ctx(ctx)
	logger.Debug().Str(loggers.FieldJobID, jobID).Int("event_count", len(events)).Msg("started analysis run")

	if len(events) == 0 {
		svcErr := errEmptyInput()
		metricAnalysisRunsTotal.WithLabelValues(svcErr.Code).Inc()
		return nil, svcErr
	}

	groups := sessions.GroupByClient(events)
	results := s.scatterGather(ctx, groups)

	report, svcErr := s.buildReport(ctx, jobID, events, results)
	if svcErr != nil {
		metricAnalysisRunsTotal.WithLabelValues(svcErr.Code).Inc()
		return nil, svcErr
	}

	if err := s.reportStore.Put(ctx, report); err != nil {
		svcErr := errInternalReportStoreFailed(err)
		metricAnalysisRunsTotal.WithLabelValues(svcErr.Code).Inc()
		return nil, svcErr
	}

	metricAnalysisRunsTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return report, nil
}

func (s *analysisService) GetReport(ctx context.Context, jobID string) (*models.Report, error) {
	report, err := s.reportStore.Get(ctx, jobID)
	if err != nil {
		if errors.Is(err, stores.ErrReportNotFound) {
			return nil, errReportNotFound(jobID, err)
		}
		return nil, errInternalReportStoreFailed(err)
	}
	return report, nil
}

// scatterGather fans client groups out over a partitioned queue keyed by
// client id and collects one result per group. Keying by client id keeps
// each client's scan on a single worker; sessionization never crosses client
// boundaries, so workers share no state.
func (s *analysisService) scatterGather(ctx context.Context, groups map[string][]*models.Event) []clientResult {
	queue := streams.NewPartitionedQueue[clientGroup](s.workers)
	resultCh := make(chan clientResult, len(groups))

	var wg sync.WaitGroup
	for i := 0; i < queue.PartitionCount(); i++ {
		ch := queue.Partition(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.runPartitionWorker(ctx, ch, resultCh)
		}()
	}

	for clientID, groupEvents := range groups {
		queue.Publish(clientID, clientGroup{clientID: clientID, events: groupEvents})
	}
	queue.Close()

	// Synchronization barrier: the global reductions need every per-client
	// result before they can run.
	wg.Wait()
	close(resultCh)

	results := make([]clientResult, 0, len(groups))
	for result := range resultCh {
		results = append(results, result)
	}
	return results
}

func (s *analysisService) runPartitionWorker(ctx context.Context, ch <-chan clientGroup, resultCh chan<- clientResult) {
	for group := range ch {
		if ctx.Err() != nil {
			resultCh <- clientResult{clientID: group.clientID, err: ctx.Err()}
			continue
		}
		resultCh <- s.processClientGroup(ctx, group)
	}
}

// processClientGroup sessionizes and summarizes one client's events.
// Panics are contained to the failing group so one bad client cannot take
// down the whole batch.
func (s *analysisService) processClientGroup(ctx context.Context, group clientGroup) (result clientResult) {
	result.clientID = group.clientID

	defer func() {
		if r := recover(); r != nil {
			loggers.Ctx(ctx).Error().
				Str(loggers.FieldClientID, group.clientID).
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("worker panic recovered")

			panicErr, ok := r.(error)
			if !ok {
				panicErr = fmt.Errorf("%v", r)
			}
			result.sessionMetrics = nil
			result.err = svcerrors.NewInternalErrorPanic(panicErr)
		}
	}()

	clientSessions, err := s.sessionizer.Sessionize(group.events)
	if err != nil {
		return clientResult{clientID: group.clientID, err: err}
	}

	sessionMetrics := make([]*models.SessionMetrics, 0, len(clientSessions))
	for _, session := range clientSessions {
		sessionMetrics = append(sessionMetrics, sessions.SummarizeSession(session))
	}
	return clientResult{clientID: group.clientID, sessionMetrics: sessionMetrics}
}

// buildReport runs the global reductions over the gathered per-client
// results: the unweighted session duration mean and the top-K ranking.
func (s *analysisService) buildReport(ctx context.Context, jobID string, events []*models.Event, results []clientResult) (*models.Report, *svcerrors.ServiceError) {
	logger := loggers.Ctx(ctx)

	var allSessionMetrics []*models.SessionMetrics
	var clientMetrics []*models.ClientMetrics
	var skipped []models.SkippedClient

	for _, result := range results {
		if result.err != nil {
			if s.strict {
				return nil, errClientGroupInvalid(result.clientID, result.err)
			}

			errorCode := ""
			if svcErr, ok := svcerrors.AsServiceError(result.err); ok {
				errorCode = svcErr.Code
			}
			metricClientGroupsSkippedTotal.WithLabelValues(errorCode).Inc()
			logger.Warn().
				Str(loggers.FieldClientID, result.clientID).
				Err(result.err).
				Msg("skipping client group")
			skipped = append(skipped, models.SkippedClient{ClientID: result.clientID, Reason: result.err.Error()})
			continue
		}

		allSessionMetrics = append(allSessionMetrics, result.sessionMetrics...)
		clientMetrics = append(clientMetrics, sessions.SummarizeClient(result.clientID, result.sessionMetrics))
	}

	// Gather order depends on worker scheduling; sort for a reproducible report.
	sort.Slice(allSessionMetrics, func(i, j int) bool {
		if allSessionMetrics[i].ClientID != allSessionMetrics[j].ClientID {
			return allSessionMetrics[i].ClientID < allSessionMetrics[j].ClientID
		}
		return allSessionMetrics[i].SessionID < allSessionMetrics[j].SessionID
	})
	sort.Slice(skipped, func(i, j int) bool {
		return skipped[i].ClientID < skipped[j].ClientID
	})

	report := &models.Report{
		JobID:           jobID,
		EventCount:      int64(len(events)),
		SessionCount:    int64(len(allSessionMetrics)),
		Sessions:        allSessionMetrics,
		TopClients:      sessions.RankClients(clientMetrics, s.topK),
		SkippedClients:  skipped,
		RequestsByAgent: countRequestsByAgent(events),
	}

	// The average over zero sessions is undefined; the field stays absent
	// rather than reporting 0.
	if avg, err := sessions.AverageDuration(allSessionMetrics); err == nil {
		report.AvgSessionDuration = &avg
	}

	metricSessionsComputedTotal.WithLabelValues().Add(float64(len(allSessionMetrics)))
	return report, nil
}

func countRequestsByAgent(events []*models.Event) map[string]int64 {
	counts := make(map[string]int64)
	for _, event := range events {
		if event.UserAgent != "" {
			counts[event.UserAgent]++
		}
	}
	if len(counts) == 0 {
		return nil
	}
	return counts
}
