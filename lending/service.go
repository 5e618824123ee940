package lending

import (
	"context"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mocks/mock_stores.go -package=mocks . CheckoutStore,QueryStore

// CheckoutStore performs the lending writes. Implementations must run each call in one
// serializable transaction and roll back on every failure.
type CheckoutStore interface {
	Checkout(ctx context.Context, command CreateCheckout) error
	Return(ctx context.Context, command ReturnCheckout) error
}

// QueryStore provides the read-only projections over active and returned checkouts.
type QueryStore interface {
	FindUnreturnedAll(ctx context.Context) ([]Checkout, error)
	FindUnreturnedByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]Checkout, error)
	FindUnreturnedByBook(ctx context.Context, bookID uuid.UUID) (*Checkout, error)
	FindHistoryByBook(ctx context.Context, bookID uuid.UUID) ([]Checkout, error)
}

// Service exposes the lending operations to the application layer.
// It holds no state besides the injected stores and forwards errors unchanged.
type Service struct {
	checkouts CheckoutStore
	queries   QueryStore
}

// NewService creates a Service.
func NewService(checkouts CheckoutStore, queries QueryStore) Service {
	return Service{
		checkouts: checkouts,
		queries:   queries,
	}
}

// Checkout lends the book to the borrower.
func (s Service) Checkout(ctx context.Context, bookID, borrowerID uuid.UUID, checkedOutAt time.Time) error {
	return s.checkouts.Checkout(ctx, BuildCreateCheckout(bookID, borrowerID, checkedOutAt))
}

// ReturnBook returns the book. The triple of checkoutID, bookID and borrowerID must match
// the book's active checkout, otherwise ErrConflict is returned.
func (s Service) ReturnBook(
	ctx context.Context,
	checkoutID uuid.UUID,
	bookID uuid.UUID,
	borrowerID uuid.UUID,
	returnedAt time.Time,
) error {
	return s.checkouts.Return(ctx, BuildReturnCheckout(checkoutID, bookID, borrowerID, returnedAt))
}

// ListActiveCheckouts returns all active checkouts, oldest first.
func (s Service) ListActiveCheckouts(ctx context.Context) ([]Checkout, error) {
	return s.queries.FindUnreturnedAll(ctx)
}

// ListActiveCheckoutsForBorrower returns the borrower's active checkouts, oldest first.
func (s Service) ListActiveCheckoutsForBorrower(ctx context.Context, borrowerID uuid.UUID) ([]Checkout, error) {
	return s.queries.FindUnreturnedByBorrower(ctx, borrowerID)
}

// CurrentCheckoutForBook returns the book's active checkout, or nil when the book is available.
func (s Service) CurrentCheckoutForBook(ctx context.Context, bookID uuid.UUID) (*Checkout, error) {
	return s.queries.FindUnreturnedByBook(ctx, bookID)
}

// HistoryForBook returns the book's active checkout, if any, followed by its returned checkouts.
func (s Service) HistoryForBook(ctx context.Context, bookID uuid.UUID) ([]Checkout, error) {
	return s.queries.FindHistoryByBook(ctx, bookID)
}
