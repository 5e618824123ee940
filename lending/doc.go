// Package lending provides the core types and contracts for lending book copies to borrowers.
//
// A book has at most one active checkout at any time. Returning a book moves its active checkout
// into the append-only history of returned checkouts. The rules are enforced by a CheckoutStore
// implementation (see the postgresengine package) inside serializable transactions, so no
// in-process locking is involved.
//
// Key types:
//   - Service: stateless façade that forwards lending operations to the stores
//   - CheckoutStore / QueryStore: capabilities implemented by a storage engine
//   - CreateCheckout / ReturnCheckout: write commands with normalized timestamps
//   - Checkout: read model for active and returned checkouts
//
// Errors are reported as sentinel kinds (ErrNotFound, ErrConflict, ErrWriteAnomaly,
// ErrTransactionFailure, ErrStoreUnavailable) joined with their cause, so callers
// can use errors.Is to decide on retries or on the response to a client.
//
// Usage example:
//
//	store, _ := postgresengine.NewStoreFromPGXPool(pool)
//	service := lending.NewService(store, store)
//
//	err := service.Checkout(ctx, bookID, borrowerID, time.Now())
//	if errors.Is(err, lending.ErrConflict) {
//		// the book is already checked out
//	}
package lending
