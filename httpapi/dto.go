package httpapi

import (
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

type bookPathParams struct {
	BookID string `param:"book_id" validate:"required,lending_id"`
}

type returnPathParams struct {
	BookID     string `param:"book_id" validate:"required,lending_id"`
	CheckoutID string `param:"checkout_id" validate:"required,lending_id"`
}

// CheckoutsResponse is the body of every checkout listing.
type CheckoutsResponse struct {
	Items []CheckoutResponse `json:"items"`
}

// CheckoutResponse is one active or returned checkout. ReturnedAt is null while the book is checked out.
type CheckoutResponse struct {
	ID           string               `json:"id"`
	CheckedOutBy string               `json:"checkedOutBy"`
	CheckedOutAt time.Time            `json:"checkedOutAt"`
	ReturnedAt   *time.Time           `json:"returnedAt"`
	Book         CheckoutBookResponse `json:"book"`
}

// CheckoutBookResponse holds the book details of a checkout.
type CheckoutBookResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// BookCheckoutResponse is the current lending status of one book. Checkout is null while the book is available.
type BookCheckoutResponse struct {
	BookID    string            `json:"bookId"`
	Available bool              `json:"available"`
	Checkout  *CheckoutResponse `json:"checkout"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
}

func toCheckoutsResponse(checkouts []lending.Checkout) CheckoutsResponse {
	items := make([]CheckoutResponse, 0, len(checkouts))
	for _, checkout := range checkouts {
		items = append(items, toCheckoutResponse(checkout))
	}

	return CheckoutsResponse{Items: items}
}

func toBookCheckoutResponse(bookID uuid.UUID, checkout *lending.Checkout) BookCheckoutResponse {
	response := BookCheckoutResponse{
		BookID:    lending.FormatID(bookID),
		Available: checkout == nil,
	}

	if checkout != nil {
		item := toCheckoutResponse(*checkout)
		response.Checkout = &item
	}

	return response
}

func toCheckoutResponse(checkout lending.Checkout) CheckoutResponse {
	return CheckoutResponse{
		ID:           lending.FormatID(checkout.ID),
		CheckedOutBy: lending.FormatID(checkout.CheckedOutBy),
		CheckedOutAt: checkout.CheckedOutAt,
		ReturnedAt:   checkout.ReturnedAt,
		Book: CheckoutBookResponse{
			ID:     lending.FormatID(checkout.Book.ID),
			Title:  checkout.Book.Title,
			Author: checkout.Book.Author,
			ISBN:   checkout.Book.ISBN,
		},
	}
}
