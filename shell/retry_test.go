package shell

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/lending"
	"github.com/AntonStoeckl/library-lending-go/testutil/spies"
)

func Test_RetryWithExponentialBackoff_Success_NoRetries(t *testing.T) {
	// arrange
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		return nil
	}

	// act
	meta, err := RetryWithExponentialBackoff(context.Background(), fn)

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, 1, meta.Attempts)
	assert.Equal(t, time.Duration(0), meta.TotalDelay)
	assert.Equal(t, "none", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_RetriesOnTransactionFailure(t *testing.T) {
	// arrange
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		if callCount < 3 {
			return errors.Join(lending.ErrTransactionFailure, errors.New("could not serialize access"))
		}
		return nil
	}

	// act
	meta, err := RetryWithExponentialBackoff(context.Background(), fn, WithBaseDelay(time.Millisecond))

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 3, callCount)
	assert.Equal(t, 3, meta.Attempts)
	assert.Greater(t, meta.TotalDelay, time.Duration(0))
	assert.Equal(t, "none", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_DoesNotRetryOutcomes(t *testing.T) {
	testCases := []struct {
		name string
		err  error
	}{
		{name: "conflict", err: lending.ErrConflict},
		{name: "not found", err: lending.ErrNotFound},
		{name: "write anomaly", err: lending.ErrWriteAnomaly},
		{name: "store unavailable", err: lending.ErrStoreUnavailable},
		{name: "deadline", err: errors.Join(lending.ErrTransactionFailure, context.DeadlineExceeded)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			callCount := 0
			fn := func(_ context.Context) error {
				callCount++
				return tc.err
			}

			// act
			meta, err := RetryWithExponentialBackoff(context.Background(), fn)

			// assert
			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, 1, callCount)
			assert.Equal(t, 1, meta.Attempts)
		})
	}
}

func Test_RetryWithExponentialBackoff_GivesUp_AfterMaxAttempts(t *testing.T) {
	// arrange
	metricsSpy := spies.NewMetricsCollectorSpy()
	callCount := 0
	fn := func(_ context.Context) error {
		callCount++
		return lending.ErrTransactionFailure
	}

	// act
	meta, err := RetryWithExponentialBackoff(context.Background(), fn,
		WithMaxAttempts(3),
		WithBaseDelay(time.Millisecond),
		WithJitterFactor(0),
		WithMetrics(metricsSpy, "checkout"),
	)

	// assert
	assert.ErrorIs(t, err, lending.ErrTransactionFailure)
	assert.Equal(t, 3, callCount)
	assert.Equal(t, 3, meta.Attempts)
	assert.Equal(t, "transaction_failure", meta.LastErrorType)
	assert.Equal(t, 2, metricsSpy.Count(spies.KindCounter, RetriesMetric))
	assert.Equal(t, 2, metricsSpy.Count(spies.KindDuration, RetryDelayMetric))
	assert.True(t, metricsSpy.Has(spies.KindCounter, MaxRetriesReachedMetric).
		WithLabel("operation", "checkout").
		WithLabel("final_error_type", "transaction_failure").
		Assert())
}

func Test_RetryWithExponentialBackoff_StopsWaiting_WhenTheContextIsCanceled(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(context.Background())
	fn := func(_ context.Context) error {
		cancel()
		return lending.ErrTransactionFailure
	}

	// act
	meta, err := RetryWithExponentialBackoff(ctx, fn, WithBaseDelay(time.Second))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, meta.Attempts)
	assert.Equal(t, "context_canceled", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_InvalidOptions(t *testing.T) {
	fn := func(_ context.Context) error { return nil }

	_, err := RetryWithExponentialBackoff(context.Background(), fn, WithMaxAttempts(0))
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)

	_, err = RetryWithExponentialBackoff(context.Background(), fn, WithBaseDelay(-1*time.Second))
	assert.ErrorIs(t, err, ErrNegativeBaseDelay)

	_, err = RetryWithExponentialBackoff(context.Background(), fn, WithJitterFactor(1.5))
	assert.ErrorIs(t, err, ErrInvalidJitterFactor)

	_, err = RetryWithExponentialBackoff(context.Background(), fn, WithMetrics(nil, "checkout"))
	assert.ErrorIs(t, err, ErrNilMetricsCollector)

	_, err = RetryWithExponentialBackoff(context.Background(), fn, WithMetrics(spies.NewMetricsCollectorSpy(), ""))
	assert.ErrorIs(t, err, ErrEmptyOperation)
}
