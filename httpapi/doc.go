// Package httpapi exposes the lending operations over HTTP with echo.
//
// Routes:
//
//	POST /api/v1/books/:book_id/checkouts                        check out a book (201)
//	PUT  /api/v1/books/:book_id/checkouts/:checkout_id/returned  return a book (200)
//	GET  /api/v1/books/checkouts                                 all active checkouts
//	GET  /api/v1/books/:book_id/checkout                         current checkout of one book
//	GET  /api/v1/books/:book_id/checkout-history                 history of one book
//	GET  /api/v1/users/me/checkouts                              active checkouts of the caller
//	GET  /health                                                 process health
//	GET  /health/db                                              database health
//
// The caller is identified by the X-User-ID header, which an authenticating gateway sets.
// Writes are retried with shell.RetryWithExponentialBackoff while the store reports
// lending.ErrTransactionFailure.
package httpapi
