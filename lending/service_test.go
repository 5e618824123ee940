package lending_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-lending-go/lending"
	"github.com/AntonStoeckl/library-lending-go/lending/mocks"
)

func Test_Service_Checkout_ForwardsNormalizedCommand(t *testing.T) {
	// setup
	ctrl := gomock.NewController(t)
	checkouts := mocks.NewMockCheckoutStore(ctrl)
	queries := mocks.NewMockQueryStore(ctrl)
	service := lending.NewService(checkouts, queries)
	ctx := context.Background()

	// arrange
	bookID, borrowerID := uuid.New(), uuid.New()
	checkedOutAt := time.Date(2025, 3, 1, 10, 0, 0, 123456789, time.FixedZone("CET", 3600))
	expected := lending.CreateCheckout{
		BookID:       bookID,
		BorrowerID:   borrowerID,
		CheckedOutAt: time.Date(2025, 3, 1, 9, 0, 0, 123456000, time.UTC),
	}
	checkouts.EXPECT().Checkout(ctx, expected).Return(nil)

	// act
	err := service.Checkout(ctx, bookID, borrowerID, checkedOutAt)

	// assert
	assert.NoError(t, err)
}

func Test_Service_Checkout_ForwardsErrorsUnchanged(t *testing.T) {
	// setup
	ctrl := gomock.NewController(t)
	checkouts := mocks.NewMockCheckoutStore(ctrl)
	service := lending.NewService(checkouts, mocks.NewMockQueryStore(ctrl))
	ctx := context.Background()

	// arrange
	storeErr := errors.Join(lending.ErrConflict, errors.New("already checked out"))
	checkouts.EXPECT().Checkout(ctx, gomock.Any()).Return(storeErr)

	// act
	err := service.Checkout(ctx, uuid.New(), uuid.New(), time.Now())

	// assert
	assert.Same(t, storeErr, err)
	assert.ErrorIs(t, err, lending.ErrConflict)
}

func Test_Service_ReturnBook_ForwardsNormalizedCommand(t *testing.T) {
	// setup
	ctrl := gomock.NewController(t)
	checkouts := mocks.NewMockCheckoutStore(ctrl)
	service := lending.NewService(checkouts, mocks.NewMockQueryStore(ctrl))
	ctx := context.Background()

	// arrange
	checkoutID, bookID, borrowerID := uuid.New(), uuid.New(), uuid.New()
	returnedAt := time.Date(2025, 3, 2, 8, 30, 0, 999, time.UTC)
	expected := lending.ReturnCheckout{
		CheckoutID: checkoutID,
		BookID:     bookID,
		BorrowerID: borrowerID,
		ReturnedAt: time.Date(2025, 3, 2, 8, 30, 0, 0, time.UTC),
	}
	checkouts.EXPECT().Return(ctx, expected).Return(lending.ErrNotFound)

	// act
	err := service.ReturnBook(ctx, checkoutID, bookID, borrowerID, returnedAt)

	// assert
	assert.ErrorIs(t, err, lending.ErrNotFound)
}

func Test_Service_Queries_ForwardToQueryStore(t *testing.T) {
	// setup
	ctrl := gomock.NewController(t)
	queries := mocks.NewMockQueryStore(ctrl)
	service := lending.NewService(mocks.NewMockCheckoutStore(ctrl), queries)
	ctx := context.Background()

	// arrange
	bookID, borrowerID := uuid.New(), uuid.New()
	all := []lending.Checkout{{ID: uuid.New()}, {ID: uuid.New()}}
	byBorrower := []lending.Checkout{{ID: uuid.New(), CheckedOutBy: borrowerID}}
	history := []lending.Checkout{{ID: uuid.New(), Book: lending.CheckoutBook{ID: bookID}}}

	queries.EXPECT().FindUnreturnedAll(ctx).Return(all, nil)
	queries.EXPECT().FindUnreturnedByBorrower(ctx, borrowerID).Return(byBorrower, nil)
	queries.EXPECT().FindHistoryByBook(ctx, bookID).Return(history, nil)

	// act
	gotAll, errAll := service.ListActiveCheckouts(ctx)
	gotByBorrower, errByBorrower := service.ListActiveCheckoutsForBorrower(ctx, borrowerID)
	gotHistory, errHistory := service.HistoryForBook(ctx, bookID)

	// assert
	assert.NoError(t, errAll)
	assert.NoError(t, errByBorrower)
	assert.NoError(t, errHistory)
	assert.Equal(t, all, gotAll)
	assert.Equal(t, byBorrower, gotByBorrower)
	assert.Equal(t, history, gotHistory)
}

func Test_Service_CurrentCheckoutForBook_ForwardsToQueryStore(t *testing.T) {
	// setup
	ctrl := gomock.NewController(t)
	queries := mocks.NewMockQueryStore(ctrl)
	service := lending.NewService(mocks.NewMockCheckoutStore(ctrl), queries)
	ctx := context.Background()

	// arrange
	checkedOutBookID, availableBookID, unknownBookID := uuid.New(), uuid.New(), uuid.New()
	active := &lending.Checkout{ID: uuid.New(), Book: lending.CheckoutBook{ID: checkedOutBookID}}

	queries.EXPECT().FindUnreturnedByBook(ctx, checkedOutBookID).Return(active, nil)
	queries.EXPECT().FindUnreturnedByBook(ctx, availableBookID).Return(nil, nil)
	queries.EXPECT().FindUnreturnedByBook(ctx, unknownBookID).Return(nil, lending.ErrNotFound)

	// act
	gotActive, errActive := service.CurrentCheckoutForBook(ctx, checkedOutBookID)
	gotAvailable, errAvailable := service.CurrentCheckoutForBook(ctx, availableBookID)
	_, errUnknown := service.CurrentCheckoutForBook(ctx, unknownBookID)

	// assert
	assert.NoError(t, errActive)
	assert.Equal(t, active, gotActive)
	assert.NoError(t, errAvailable)
	assert.Nil(t, gotAvailable)
	assert.ErrorIs(t, errUnknown, lending.ErrNotFound)
}
