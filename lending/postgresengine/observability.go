package postgresengine

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

const (
	operationCheckout = "checkout"
	operationReturn   = "return"
	operationQuery    = "query"

	queryActiveAll        = "active_all"
	queryActiveByBorrower = "active_by_borrower"
	queryHistoryByBook    = "history_by_book"
	queryActiveByBook     = "active_by_book"

	spanNameCheckout = "lending.checkout"
	spanNameReturn   = "lending.return"
	spanNameQuery    = "lending.query"

	spanAttrOperation     = "operation"
	spanAttrQueryKind     = "query.kind"
	spanAttrBookID        = "book.id"
	spanAttrCheckoutID    = "checkout.id"
	spanAttrBorrowerID    = "borrower.id"
	spanAttrErrorType     = "error_type"
	spanAttrDurationMS    = "duration_ms"
	spanAttrCheckoutCount = "checkout.count"
	spanAttrConsistency   = "consistency_level"

	metricCheckoutDuration    = "lending_checkout_duration_seconds"
	metricReturnDuration      = "lending_return_duration_seconds"
	metricQueryDuration       = "lending_query_duration_seconds"
	metricConflicts           = "lending_conflicts_total"
	metricWriteAnomalies      = "lending_write_anomalies_total"
	metricTransactionFailures = "lending_transaction_failures_total"
	metricDatabaseErrors      = "lending_database_errors_total"
	metricCheckoutsQueried    = "lending_checkouts_queried"

	statusSuccess = "success"
	statusError   = "error"

	labelStatus = "status"
)

func (s *Store) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

func (s *Store) logOperation(ctx context.Context, action string, args ...any) {
	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

func (s *Store) logWarn(ctx context.Context, message string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if s.logger != nil {
		s.logger.Warn(message, allArgs...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, message, allArgs...)
	}
}

func (s *Store) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := append([]any{logAttrError, err.Error()}, args...)

	if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.2f", toMilliseconds(d))
}

func (s *Store) recordDuration(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextual, ok := s.metricsCollector.(lending.ContextualMetricsCollector); ok {
		contextual.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	s.metricsCollector.RecordDuration(metric, duration, labels)
}

func (s *Store) incrementCounter(ctx context.Context, metric string, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextual, ok := s.metricsCollector.(lending.ContextualMetricsCollector); ok {
		contextual.IncrementCounterContext(ctx, metric, labels)
		return
	}

	s.metricsCollector.IncrementCounter(metric, labels)
}

func (s *Store) recordValue(ctx context.Context, metric string, value float64, labels map[string]string) {
	if s.metricsCollector == nil {
		return
	}

	if contextual, ok := s.metricsCollector.(lending.ContextualMetricsCollector); ok {
		contextual.RecordValueContext(ctx, metric, value, labels)
		return
	}

	s.metricsCollector.RecordValue(metric, value, labels)
}

// === Tracing Observer Pattern ===

// tracingObserver owns the span of one checkout, return, or query.
type tracingObserver struct {
	s    *Store
	span lending.SpanContext
}

func (s *Store) startTracing(ctx context.Context, spanName string, attrs map[string]string) (*tracingObserver, context.Context) {
	if s.tracingCollector == nil {
		return &tracingObserver{s: s}, ctx
	}

	attrs[spanAttrConsistency] = lending.GetConsistencyLevel(ctx).String()
	newCtx, span := s.tracingCollector.StartSpan(ctx, spanName, attrs)

	return &tracingObserver{s: s, span: span}, newCtx
}

func (to *tracingObserver) finishSuccess(duration time.Duration, attrs map[string]string) {
	if to.span == nil {
		return
	}

	if attrs == nil {
		attrs = map[string]string{}
	}
	attrs[spanAttrDurationMS] = formatDuration(duration)

	to.s.tracingCollector.FinishSpan(to.span, statusSuccess, attrs)
}

func (to *tracingObserver) finishError(err error, duration time.Duration) {
	if to.span == nil {
		return
	}

	to.s.tracingCollector.FinishSpan(to.span, statusError, map[string]string{
		spanAttrErrorType:  errorKindLabel(err),
		spanAttrDurationMS: formatDuration(duration),
	})
}

// === Metrics Observer Pattern ===

// metricsObserver records the metrics of one checkout, return, or query.
type metricsObserver struct {
	s              *Store
	ctx            context.Context
	operation      string
	durationMetric string
	extraLabels    map[string]string
}

func (s *Store) startMetrics(ctx context.Context, operation string, durationMetric string) *metricsObserver {
	return &metricsObserver{
		s:              s,
		ctx:            ctx,
		operation:      operation,
		durationMetric: durationMetric,
		extraLabels:    map[string]string{},
	}
}

func (mo *metricsObserver) withLabel(key, value string) *metricsObserver {
	mo.extraLabels[key] = value
	return mo
}

func (mo *metricsObserver) labels(status string) map[string]string {
	labels := map[string]string{
		spanAttrOperation: mo.operation,
		labelStatus:       status,
	}

	for k, v := range mo.extraLabels {
		labels[k] = v
	}

	return labels
}

func (mo *metricsObserver) recordSuccess(duration time.Duration) {
	mo.s.recordDuration(mo.ctx, mo.durationMetric, duration, mo.labels(statusSuccess))
}

func (mo *metricsObserver) recordQuerySuccess(checkoutCount int, duration time.Duration) {
	mo.recordSuccess(duration)
	mo.s.recordValue(mo.ctx, metricCheckoutsQueried, float64(checkoutCount), mo.labels(statusSuccess))
}

// recordError records the duration and one counter matching the error kind.
// Not-found outcomes count as neither a conflict nor a database error.
func (mo *metricsObserver) recordError(err error, duration time.Duration) {
	mo.s.recordDuration(mo.ctx, mo.durationMetric, duration, mo.labels(statusError))

	kind := errorKindLabel(err)
	labels := mo.labels(statusError)
	labels[spanAttrErrorType] = kind

	switch kind {
	case "not_found":
		return
	case "conflict":
		mo.s.incrementCounter(mo.ctx, metricConflicts, labels)
	case "write_anomaly":
		mo.s.incrementCounter(mo.ctx, metricWriteAnomalies, labels)
	case "transaction_failure":
		mo.s.incrementCounter(mo.ctx, metricTransactionFailures, labels)
	default:
		mo.s.incrementCounter(mo.ctx, metricDatabaseErrors, labels)
	}
}

func countAttr(n int) map[string]string {
	return map[string]string{spanAttrCheckoutCount: strconv.Itoa(n)}
}
