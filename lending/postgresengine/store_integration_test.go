package postgresengine_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending"
	"github.com/AntonStoeckl/library-lending-go/lending/postgresengine"
	. "github.com/AntonStoeckl/library-lending-go/testutil/postgresengine/helper" //nolint:revive
	"github.com/AntonStoeckl/library-lending-go/testutil/postgresengine/helper/postgreswrapper"
	"github.com/AntonStoeckl/library-lending-go/testutil/spies"
)

func setUpWrapper(t *testing.T, options ...postgresengine.Option) postgreswrapper.Wrapper {
	t.Helper()

	if testing.Short() {
		t.Skip("integration test")
	}

	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t, options...)
	t.Cleanup(wrapper.Close)
	postgreswrapper.CleanUp(t, wrapper)

	return wrapper
}

func activeCheckoutOf(t *testing.T, ctx context.Context, store *postgresengine.Store, bookID uuid.UUID) lending.Checkout { //nolint:revive
	t.Helper()

	history, err := store.FindHistoryByBook(ctx, bookID)
	require.NoError(t, err, "error in arranging test data")
	require.NotEmpty(t, history, "error in arranging test data")
	require.True(t, history[0].IsActive(), "error in arranging test data")

	return history[0]
}

func Test_Store_ScenarioA_SecondCheckoutOfSameBookConflicts(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := setUpWrapper(t)
	store := wrapper.GetStore()

	// arrange
	owner := GivenUserExists(t, ctx, wrapper)
	userX := GivenUserExists(t, ctx, wrapper)
	userY := GivenUserExists(t, ctx, wrapper)
	bookID := GivenBookExists(t, ctx, wrapper, owner)
	t1 := FakeClock()

	// act
	firstErr := store.Checkout(ctx, lending.BuildCreateCheckout(bookID, userX, t1))
	secondErr := store.Checkout(ctx, lending.BuildCreateCheckout(bookID, userY, t1.Add(time.Minute)))

	// assert
	assert.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, lending.ErrConflict)
	assert.Equal(t, 1, CountActiveCheckouts(t, ctx, wrapper, bookID))

	active := activeCheckoutOf(t, ctx, store, bookID)
	assert.Equal(t, userX, active.CheckedOutBy)
	assert.True(t, t1.Equal(active.CheckedOutAt))
}

func Test_Store_ScenarioB_ReturnWithWrongCheckoutIDConflictsAndChangesNothing(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := setUpWrapper(t)
	store := wrapper.GetStore()

	// arrange
	owner := GivenUserExists(t, ctx, wrapper)
	userX := GivenUserExists(t, ctx, wrapper)
	bookID := GivenBookExists(t, ctx, wrapper, owner)
	t1 := FakeClock()
	require.NoError(t, store.Checkout(ctx, lending.BuildCreateCheckout(bookID, userX, t1)))
	before := activeCheckoutOf(t, ctx, store, bookID)

	// act
	err := store.Return(ctx, lending.BuildReturnCheckout(GivenUniqueID(t), bookID, userX, t1.Add(time.Hour)))

	// assert
	assert.ErrorIs(t, err, lending.ErrConflict)
	assert.Equal(t, 1, CountActiveCheckouts(t, ctx, wrapper, bookID))
	assert.Equal(t, 0, CountReturnedCheckouts(t, ctx, wrapper, bookID))
	assert.Equal(t, before, activeCheckoutOf(t, ctx, store, bookID))
}

func Test_Store_ReturnWithMismatchedTriple_AlwaysConflicts(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := setUpWrapper(t)
	store := wrapper.GetStore()

	// arrange
	owner := GivenUserExists(t, ctx, wrapper)
	userX := GivenUserExists(t, ctx, wrapper)
	otherUser := GivenUserExists(t, ctx, wrapper)
	bookID := GivenBookExists(t, ctx, wrapper, owner)
	otherBookID := GivenBookExists(t, ctx, wrapper, owner)
	t1 := FakeClock()
	require.NoError(t, store.Checkout(ctx, lending.BuildCreateCheckout(bookID, userX, t1)))
	active := activeCheckoutOf(t, ctx, store, bookID)

	testCases := []struct {
		description string
		command     lending.ReturnCheckout
	}{
		{
			description: "wrong borrower",
			command:     lending.BuildReturnCheckout(active.ID, bookID, otherUser, t1.Add(time.Hour)),
		},
		{
			description: "wrong book",
			command:     lending.BuildReturnCheckout(active.ID, otherBookID, userX, t1.Add(time.Hour)),
		},
		{
			description: "book without active checkout",
			command:     lending.BuildReturnCheckout(GivenUniqueID(t), otherBookID, userX, t1.Add(time.Hour)),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			err := store.Return(ctx, tc.command)

			// assert
			assert.ErrorIs(t, err, lending.ErrConflict)
			assert.Equal(t, 1, CountActiveCheckouts(t, ctx, wrapper, bookID))
			assert.Equal(t, 0, CountReturnedCheckouts(t, ctx, wrapper, bookID))
			assert.Equal(t, 0, CountReturnedCheckouts(t, ctx, wrapper, otherBookID))
		})
	}
}

func Test_Store_ScenarioC_ReturnMovesCheckoutIntoHistory(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := setUpWrapper(t)
	store := wrapper.GetStore()

	// arrange
	owner := GivenUserExists(t, ctx, wrapper)
	userX := GivenUserExists(t, ctx, wrapper)
	bookID := GivenBookExists(t, ctx, wrapper, owner)
	t1 := FakeClock()
	t3 := t1.Add(72 * time.Hour)
	require.NoError(t, store.Checkout(ctx, lending.BuildCreateCheckout(bookID, userX, t1)))
	active := activeCheckoutOf(t, ctx, store, bookID)

	// act
	err := store.Return(ctx, lending.BuildReturnCheckout(active.ID, bookID, userX, t3))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, CountActiveCheckouts(t, ctx, wrapper, bookID))
	assert.Equal(t, 1, CountReturnedCheckouts(t, ctx, wrapper, bookID))
	assert.Equal(t, 1, CountCheckoutRows(t, ctx, wrapper, active.ID))

	history, err := store.FindHistoryByBook(ctx, bookID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, active.ID, history[0].ID)
	assert.Equal(t, userX, history[0].CheckedOutBy)
	assert.True(t, t1.Equal(history[0].CheckedOutAt))
	require.NotNil(t, history[0].ReturnedAt)
	assert.True(t, t3.Equal(*history[0].ReturnedAt))

	unreturned, err := store.FindUnreturnedAll(ctx)
	require.NoError(t, err)
	for _, checkout := range unreturned {
		assert.NotEqual(t, bookID, checkout.Book.ID)
	}
}

func Test_Store_ScenarioD_BookIsAvailableAgainAfterReturn(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := setUpWrapper(t)
	store := wrapper.GetStore()

	// arrange
	owner := GivenUserExists(t, ctx, wrapper)
	userX := GivenUserExists(t, ctx, wrapper)
	userZ := GivenUserExists(t, ctx, wrapper)
	bookID := GivenBookExists(t, ctx, wrapper, owner)
	t1 := FakeClock()
	require.NoError(t, store.Checkout(ctx, lending.BuildCreateCheckout(bookID, userX, t1)))
	active := activeCheckoutOf(t, ctx, store, bookID)
	require.NoError(t, store.Return(ctx, lending.BuildReturnCheckout(active.ID, bookID, userX, t1.Add(time.Hour))))

	// act
	err := store.Checkout(ctx, lending.BuildCreateCheckout(bookID, userZ, t1.Add(2*time.Hour)))

	// assert
	require.NoError(t, err)
	mine, err := store.FindUnreturnedByBorrower(ctx, userZ)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, bookID, mine[0].Book.ID)
	assert.NotEqual(t, active.ID, mine[0].ID)
}

func Test_Store_ConcurrentCheckouts_ExactlyOneSucceeds(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := setUpWrapper(t)
	store := wrapper.GetStore()

	// arrange
	const contenders = 10
	owner := GivenUserExists(t, ctx, wrapper)
	bookID := GivenBookExists(t, ctx, wrapper, owner)
	borrowers := make([]uuid.UUID, contenders)
	for i := range borrowers {
		borrowers[i] = GivenUserExists(t, ctx, wrapper)
	}

	errs := make([]error, contenders)
	var wg sync.WaitGroup
	start := make(chan struct{})

	// act
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = store.Checkout(ctx, lending.BuildCreateCheckout(bookID, borrowers[i], FakeClock()))
		}(i)
	}
	close(start)
	wg.Wait()

	// assert
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}

		failedAsExpected := assert.True(t,
			errorIsOneOf(err, lending.ErrConflict, lending.ErrTransactionFailure),
			"unexpected error: %v", err)
		if !failedAsExpected {
			return
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, CountActiveCheckouts(t, ctx, wrapper, bookID))
}

func Test_Store_History_ListsActiveCheckoutFirstThenReturnedAscending(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := setUpWrapper(t)
	store := wrapper.GetStore()

	// arrange
	owner := GivenUserExists(t, ctx, wrapper)
	reader := GivenUserExists(t, ctx, wrapper)
	bookID := GivenBookExists(t, ctx, wrapper, owner)
	base := FakeClock()

	checkOutAndReturn := func(checkedOutAt time.Time) {
		require.NoError(t, store.Checkout(ctx, lending.BuildCreateCheckout(bookID, reader, checkedOutAt)))
		active := activeCheckoutOf(t, ctx, store, bookID)
		require.NoError(t, store.Return(ctx, lending.BuildReturnCheckout(active.ID, bookID, reader, checkedOutAt.Add(time.Hour))))
	}
	checkOutAndReturn(base.Add(4 * time.Hour))
	checkOutAndReturn(base.Add(2 * time.Hour))
	require.NoError(t, store.Checkout(ctx, lending.BuildCreateCheckout(bookID, reader, base)))

	// act
	history, err := store.FindHistoryByBook(ctx, bookID)

	// assert
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.True(t, history[0].IsActive())
	assert.True(t, base.Equal(history[0].CheckedOutAt))
	assert.True(t, base.Add(2*time.Hour).Equal(history[1].CheckedOutAt))
	assert.True(t, base.Add(4*time.Hour).Equal(history[2].CheckedOutAt))
	assert.False(t, history[1].IsActive())
	assert.False(t, history[2].IsActive())
}

func Test_Store_Reads_AreIdempotentWithoutWrites(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := setUpWrapper(t)
	store := wrapper.GetStore()

	// arrange
	owner := GivenUserExists(t, ctx, wrapper)
	reader := GivenUserExists(t, ctx, wrapper)
	bookID := GivenBookExists(t, ctx, wrapper, owner)
	otherBookID := GivenBookExists(t, ctx, wrapper, owner)
	require.NoError(t, store.Checkout(ctx, lending.BuildCreateCheckout(bookID, reader, FakeClock())))
	require.NoError(t, store.Checkout(ctx, lending.BuildCreateCheckout(otherBookID, reader, FakeClock())))

	// act
	firstList, errFirstList := store.FindUnreturnedAll(ctx)
	secondList, errSecondList := store.FindUnreturnedAll(ctx)
	firstHistory, errFirstHistory := store.FindHistoryByBook(ctx, bookID)
	secondHistory, errSecondHistory := store.FindHistoryByBook(ctx, bookID)

	// assert
	require.NoError(t, errFirstList)
	require.NoError(t, errSecondList)
	require.NoError(t, errFirstHistory)
	require.NoError(t, errSecondHistory)
	assert.Len(t, firstList, 2)
	assert.Equal(t, firstList, secondList)
	assert.Equal(t, firstHistory, secondHistory)
}

func Test_Store_Checkout_OfUnknownBook_IsNotFound(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := setUpWrapper(t)
	store := wrapper.GetStore()

	// arrange
	reader := GivenUserExists(t, ctx, wrapper)

	// act
	err := store.Checkout(ctx, lending.BuildCreateCheckout(GivenUniqueID(t), reader, FakeClock()))

	// assert
	assert.ErrorIs(t, err, lending.ErrNotFound)
}

func Test_Store_Return_OfUnknownBook_IsNotFound(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := setUpWrapper(t)
	store := wrapper.GetStore()

	// arrange
	reader := GivenUserExists(t, ctx, wrapper)
	bookID := GivenUniqueID(t)

	// act
	err := store.Return(ctx, lending.BuildReturnCheckout(GivenUniqueID(t), bookID, reader, FakeClock()))

	// assert
	assert.ErrorIs(t, err, lending.ErrNotFound)
	assert.Equal(t, 0, CountReturnedCheckouts(t, ctx, wrapper, bookID))
}

func Test_Store_Return_DatedBeforeTheCheckout_ConflictsAndChangesNothing(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := setUpWrapper(t)
	store := wrapper.GetStore()

	// arrange
	owner := GivenUserExists(t, ctx, wrapper)
	userX := GivenUserExists(t, ctx, wrapper)
	bookID := GivenBookExists(t, ctx, wrapper, owner)
	t1 := FakeClock()
	require.NoError(t, store.Checkout(ctx, lending.BuildCreateCheckout(bookID, userX, t1)))
	active := activeCheckoutOf(t, ctx, store, bookID)

	// act
	err := store.Return(ctx, lending.BuildReturnCheckout(active.ID, bookID, userX, t1.Add(-time.Minute)))

	// assert
	assert.ErrorIs(t, err, lending.ErrConflict)
	assert.Equal(t, 1, CountActiveCheckouts(t, ctx, wrapper, bookID))
	assert.Equal(t, 0, CountReturnedCheckouts(t, ctx, wrapper, bookID))
}

func Test_Store_FindUnreturnedByBook(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := setUpWrapper(t)
	store := wrapper.GetStore()

	// arrange
	owner := GivenUserExists(t, ctx, wrapper)
	userX := GivenUserExists(t, ctx, wrapper)
	availableBookID := GivenBookExists(t, ctx, wrapper, owner)
	checkedOutBookID := GivenBookExists(t, ctx, wrapper, owner)
	t1 := FakeClock()
	require.NoError(t, store.Checkout(ctx, lending.BuildCreateCheckout(checkedOutBookID, userX, t1)))

	// act
	available, availableErr := store.FindUnreturnedByBook(ctx, availableBookID)
	checkedOut, checkedOutErr := store.FindUnreturnedByBook(ctx, checkedOutBookID)
	unknown, unknownErr := store.FindUnreturnedByBook(ctx, GivenUniqueID(t))

	// assert
	require.NoError(t, availableErr)
	assert.Nil(t, available)

	require.NoError(t, checkedOutErr)
	require.NotNil(t, checkedOut)
	assert.Equal(t, activeCheckoutOf(t, ctx, store, checkedOutBookID).ID, checkedOut.ID)
	assert.Equal(t, userX, checkedOut.CheckedOutBy)
	assert.True(t, t1.Equal(checkedOut.CheckedOutAt))
	assert.Equal(t, checkedOutBookID, checkedOut.Book.ID)

	assert.ErrorIs(t, unknownErr, lending.ErrNotFound)
	assert.Nil(t, unknown)
}

func Test_Store_Checkout_ByUnknownBorrower_IsNotFound(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := setUpWrapper(t)
	store := wrapper.GetStore()

	// arrange
	owner := GivenUserExists(t, ctx, wrapper)
	bookID := GivenBookExists(t, ctx, wrapper, owner)

	// act
	err := store.Checkout(ctx, lending.BuildCreateCheckout(bookID, GivenUniqueID(t), FakeClock()))

	// assert
	assert.ErrorIs(t, err, lending.ErrNotFound)
	assert.Equal(t, 0, CountActiveCheckouts(t, ctx, wrapper, bookID))
}

func Test_Store_HistoryOfUnknownBook_IsEmpty(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := setUpWrapper(t)

	// act
	history, err := wrapper.GetStore().FindHistoryByBook(ctx, GivenUniqueID(t))

	// assert
	require.NoError(t, err)
	assert.NotNil(t, history)
	assert.Empty(t, history)
}

func Test_Store_Checkout_WithCanceledContext_LeavesNoRows(t *testing.T) {
	// setup
	wrapper := setUpWrapper(t)
	store := wrapper.GetStore()
	ctx := context.Background()

	// arrange
	owner := GivenUserExists(t, ctx, wrapper)
	reader := GivenUserExists(t, ctx, wrapper)
	bookID := GivenBookExists(t, ctx, wrapper, owner)
	canceledCtx, cancel := context.WithCancel(ctx)
	cancel()

	// act
	err := store.Checkout(canceledCtx, lending.BuildCreateCheckout(bookID, reader, FakeClock()))

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, CountActiveCheckouts(t, ctx, wrapper, bookID))
}

func Test_Store_Checkout_LogsOperationAndSQL(t *testing.T) {
	// setup
	logs := spies.NewLogHandlerSpy(false)
	metrics := spies.NewMetricsCollectorSpy()
	tracing := spies.NewTracingCollectorSpy()
	wrapper := setUpWrapper(t,
		postgresengine.WithLogger(slog.New(logs)),
		postgresengine.WithMetrics(metrics),
		postgresengine.WithTracing(tracing),
	)
	store := wrapper.GetStore()
	ctx := context.Background()

	// arrange
	owner := GivenUserExists(t, ctx, wrapper)
	reader := GivenUserExists(t, ctx, wrapper)
	bookID := GivenBookExists(t, ctx, wrapper, owner)

	// act
	err := store.Checkout(ctx, lending.BuildCreateCheckout(bookID, reader, FakeClock()))

	// assert
	require.NoError(t, err)
	assert.True(t, logs.HasLog(slog.LevelDebug, "executed sql for: read checkout state").WithDurationMS().Assert())
	assert.True(t, logs.HasLog(slog.LevelInfo, "lending operation: checkout completed").WithAttr("book_id", bookID.String()).Assert())
	assert.True(t, metrics.Has(spies.KindDuration, "lending_checkout_duration_seconds").WithLabel("status", "success").Assert())

	span, found := tracing.SpanNamed("lending.checkout")
	require.True(t, found)
	assert.True(t, span.Finished)
	assert.Equal(t, "success", span.Status)
}

func Test_Store_HealthCheck_Succeeds(t *testing.T) {
	// setup
	wrapper := setUpWrapper(t)

	// act
	err := wrapper.GetStore().HealthCheck(context.Background())

	// assert
	assert.NoError(t, err)
}

func errorIsOneOf(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
