package lending

import (
	"time"

	"github.com/google/uuid"
)

// Checkout is the read model for a lending record. ReturnedAt is nil while the checkout is active.
type Checkout struct {
	ID           uuid.UUID
	CheckedOutBy uuid.UUID
	CheckedOutAt time.Time
	ReturnedAt   *time.Time
	Book         CheckoutBook
}

// IsActive reports whether the checkout has not been returned yet.
func (c Checkout) IsActive() bool {
	return c.ReturnedAt == nil
}

// CheckoutBook holds the book details shown with a Checkout.
type CheckoutBook struct {
	ID     uuid.UUID
	Title  string
	Author string
	ISBN   string
}

// CheckoutState is the lending state of one book as read before a write.
// CheckoutID, BorrowerID and CheckedOutAt are nil when the book has no active checkout.
type CheckoutState struct {
	BookID       uuid.UUID
	CheckoutID   *uuid.UUID
	BorrowerID   *uuid.UUID
	CheckedOutAt *time.Time
}

// HasActiveCheckout reports whether an active checkout is attached to the book.
func (s CheckoutState) HasActiveCheckout() bool {
	return s.CheckoutID != nil
}

// Matches reports whether the active checkout was made with checkoutID by borrowerID.
// A state without an active checkout never matches.
func (s CheckoutState) Matches(checkoutID, borrowerID uuid.UUID) bool {
	if s.CheckoutID == nil || s.BorrowerID == nil {
		return false
	}

	return *s.CheckoutID == checkoutID && *s.BorrowerID == borrowerID
}

// ReturnPrecedesCheckout reports whether returnedAt lies before the active checkout was made.
func (s CheckoutState) ReturnPrecedesCheckout(returnedAt time.Time) bool {
	return s.CheckedOutAt != nil && returnedAt.Before(*s.CheckedOutAt)
}

// CreateCheckout is the command to check out a book.
type CreateCheckout struct {
	BookID       uuid.UUID
	BorrowerID   uuid.UUID
	CheckedOutAt time.Time
}

// BuildCreateCheckout creates a CreateCheckout with a normalized timestamp.
func BuildCreateCheckout(bookID, borrowerID uuid.UUID, checkedOutAt time.Time) CreateCheckout {
	return CreateCheckout{
		BookID:       bookID,
		BorrowerID:   borrowerID,
		CheckedOutAt: ToStoredTime(checkedOutAt),
	}
}

// ReturnCheckout is the command to return a checked-out book.
type ReturnCheckout struct {
	CheckoutID uuid.UUID
	BookID     uuid.UUID
	BorrowerID uuid.UUID
	ReturnedAt time.Time
}

// BuildReturnCheckout creates a ReturnCheckout with a normalized timestamp.
func BuildReturnCheckout(checkoutID, bookID, borrowerID uuid.UUID, returnedAt time.Time) ReturnCheckout {
	return ReturnCheckout{
		CheckoutID: checkoutID,
		BookID:     bookID,
		BorrowerID: borrowerID,
		ReturnedAt: ToStoredTime(returnedAt),
	}
}

// ToStoredTime converts t to UTC with microsecond precision, which is what Postgres stores.
func ToStoredTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
