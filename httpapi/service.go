package httpapi

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks . LendingService,HealthChecker

// LendingService is the part of lending.Service the handlers use.
type LendingService interface {
	Checkout(ctx context.Context, bookID, borrowerID uuid.UUID, checkedOutAt time.Time) error
	ReturnBook(ctx context.Context, checkoutID, bookID, borrowerID uuid.UUID, returnedAt time.Time) error
	ListActiveCheckouts(ctx context.Context) ([]lending.Checkout, error)
	ListActiveCheckoutsForBorrower(ctx context.Context, borrowerID uuid.UUID) ([]lending.Checkout, error)
	HistoryForBook(ctx context.Context, bookID uuid.UUID) ([]lending.Checkout, error)
	CurrentCheckoutForBook(ctx context.Context, bookID uuid.UUID) (*lending.Checkout, error)
}

// HealthChecker reports whether the database answers.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Clock returns the current time. Checkouts and returns are stamped with it.
type Clock func() time.Time
