package postgresengine

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending"
	"github.com/AntonStoeckl/library-lending-go/testutil/spies"
)

func Test_Checkout_EmitsLogsMetricsAndSpan_OnSuccess(t *testing.T) {
	// arrange
	bookID := uuid.New()
	tx := &fakeTx{
		queryResults: []*fakeRows{stateRows(bookID, nil, nil)},
		execResults:  []int64{1},
	}
	logSpy := spies.NewLogHandlerSpy(false)
	metricsSpy := spies.NewMetricsCollectorSpy()
	tracingSpy := spies.NewTracingCollectorSpy()
	s := newTestStore(t, &fakeDB{tx: tx},
		WithLogger(slog.New(logSpy)),
		WithMetrics(metricsSpy),
		WithTracing(tracingSpy),
	)

	// act
	err := s.Checkout(context.Background(), lending.BuildCreateCheckout(bookID, uuid.New(), time.Now()))

	// assert
	require.NoError(t, err)

	assert.True(t, logSpy.HasLog(slog.LevelDebug, logMsgSQLExecuted+logActionReadState).WithDurationMS().Assert())
	assert.True(t, logSpy.HasLog(slog.LevelDebug, logMsgSQLExecuted+logActionInsertCheckout).WithDurationMS().Assert())
	assert.True(t, logSpy.HasLog(slog.LevelInfo, logMsgOperation+logMsgCheckoutCompleted).
		WithAttr(logAttrBookID, bookID.String()).
		WithAttrKey(logAttrCheckoutID).
		WithDurationMS().
		Assert())

	assert.True(t, metricsSpy.Has(spies.KindDuration, metricCheckoutDuration).
		WithLabel(spanAttrOperation, operationCheckout).
		WithLabel(labelStatus, statusSuccess).
		Assert())

	span, found := tracingSpy.SpanNamed(spanNameCheckout)
	require.True(t, found)
	assert.True(t, span.Finished)
	assert.Equal(t, statusSuccess, span.Status)
	assert.Equal(t, bookID.String(), span.StartAttributes[spanAttrBookID])
	assert.Equal(t, lending.StrongConsistency.String(), span.StartAttributes[spanAttrConsistency])
	assert.Contains(t, span.EndAttributes, spanAttrCheckoutID)
}

func Test_Checkout_CountsAConflict_WhenTheBookIsAlreadyCheckedOut(t *testing.T) {
	// arrange
	bookID, activeID, borrowerID := uuid.New(), uuid.New(), uuid.New()
	tx := &fakeTx{queryResults: []*fakeRows{stateRows(bookID, &activeID, &borrowerID)}}
	logSpy := spies.NewLogHandlerSpy(false)
	metricsSpy := spies.NewMetricsCollectorSpy()
	tracingSpy := spies.NewTracingCollectorSpy()
	s := newTestStore(t, &fakeDB{tx: tx},
		WithContextualLogger(slog.New(logSpy)),
		WithMetrics(metricsSpy),
		WithTracing(tracingSpy),
	)

	// act
	err := s.Checkout(context.Background(), lending.BuildCreateCheckout(bookID, uuid.New(), time.Now()))

	// assert
	require.ErrorIs(t, err, lending.ErrConflict)

	assert.True(t, logSpy.HasLog(slog.LevelInfo, logMsgOperation+logMsgAlreadyCheckedOut).
		WithAttr(logAttrActiveCheckoutID, activeID.String()).
		Assert())
	assert.Equal(t, 1, metricsSpy.Count(spies.KindCounter, metricConflicts))
	assert.Equal(t, 0, metricsSpy.Count(spies.KindCounter, metricDatabaseErrors))

	span, found := tracingSpy.SpanNamed(spanNameCheckout)
	require.True(t, found)
	assert.Equal(t, statusError, span.Status)
	assert.Equal(t, "conflict", span.EndAttributes[spanAttrErrorType])
}

func Test_Return_CountsAWriteAnomaly_AndLogsItAsError(t *testing.T) {
	// arrange
	bookID, borrowerID, checkoutID := uuid.New(), uuid.New(), uuid.New()
	tx := &fakeTx{
		queryResults: []*fakeRows{stateRows(bookID, &checkoutID, &borrowerID)},
		execResults:  []int64{1, 0},
	}
	logSpy := spies.NewLogHandlerSpy(false)
	metricsSpy := spies.NewMetricsCollectorSpy()
	s := newTestStore(t, &fakeDB{tx: tx}, WithLogger(slog.New(logSpy)), WithMetrics(metricsSpy))

	// act
	err := s.Return(context.Background(), lending.BuildReturnCheckout(checkoutID, bookID, borrowerID, time.Now()))

	// assert
	require.ErrorIs(t, err, lending.ErrWriteAnomaly)
	assert.True(t, logSpy.HasLog(slog.LevelError, logMsgWriteAnomaly).WithAttrKey(logAttrQuery).Assert())
	assert.True(t, metricsSpy.Has(spies.KindCounter, metricWriteAnomalies).
		WithLabel(spanAttrOperation, operationReturn).
		Assert())
	assert.True(t, metricsSpy.Has(spies.KindDuration, metricReturnDuration).WithLabel(labelStatus, statusError).Assert())
}

func Test_Queries_RecordTheNumberOfCheckouts(t *testing.T) {
	// arrange
	bookID := uuid.New()
	db := &fakeDB{rows: &fakeRows{rows: [][]any{
		{uuid.New(), uuid.New(), time.Now().UTC(), bookID, "Dune", "Frank Herbert", "9780441013593"},
		{uuid.New(), uuid.New(), time.Now().UTC(), bookID, "Dune", "Frank Herbert", "9780441013593"},
	}}}
	metricsSpy := spies.NewMetricsCollectorSpy()
	tracingSpy := spies.NewTracingCollectorSpy()
	s := newTestStore(t, db, WithMetrics(metricsSpy), WithTracing(tracingSpy))

	// act
	checkouts, err := s.FindUnreturnedAll(lending.WithEventualConsistency(context.Background()))

	// assert
	require.NoError(t, err)
	require.Len(t, checkouts, 2)

	records := metricsSpy.Records()
	var queried []spies.MetricRecord
	for _, r := range records {
		if r.Metric == metricCheckoutsQueried {
			queried = append(queried, r)
		}
	}
	require.Len(t, queried, 1)
	assert.InDelta(t, 2.0, queried[0].Value, 0.0001)
	assert.Equal(t, queryActiveAll, queried[0].Labels[spanAttrQueryKind])

	span, found := tracingSpy.SpanNamed(spanNameQuery)
	require.True(t, found)
	assert.Equal(t, lending.EventualConsistency.String(), span.StartAttributes[spanAttrConsistency])
	assert.Equal(t, "2", span.EndAttributes[spanAttrCheckoutCount])
}

func Test_Queries_PassTheCallerContextToTheContextualLogger(t *testing.T) {
	// arrange
	db := &fakeDB{rows: &fakeRows{}}
	contextualSpy := spies.NewContextualLoggerSpy()
	s := newTestStore(t, db, WithContextualLogger(contextualSpy))
	ctx := lending.WithEventualConsistency(context.Background())

	// act
	_, err := s.FindUnreturnedAll(ctx)

	// assert
	require.NoError(t, err)

	record, found := contextualSpy.Find(slog.LevelDebug, logMsgSQLExecuted+logActionQueryActive)
	require.True(t, found)
	assert.Equal(t, lending.EventualConsistency, lending.GetConsistencyLevel(record.Context))
}
