package helper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/testutil/postgresengine/helper/postgreswrapper"
)

const (
	sqlInsertUser = `INSERT INTO users (user_id, name, email, role) VALUES ($1, $2, $3, 'user')`
	sqlInsertBook = `INSERT INTO books (book_id, title, author, isbn, description, user_id)
		VALUES ($1, 'Learning Domain-Driven Design', 'Vlad Khononov', '978-1-098-10013-1', '', $2)`

	sqlCountActive   = `SELECT count(*) FROM checkouts WHERE book_id = $1`
	sqlCountReturned = `SELECT count(*) FROM returned_checkouts WHERE book_id = $1`
	sqlCountBoth     = `SELECT (SELECT count(*) FROM checkouts WHERE checkout_id = $1)
		+ (SELECT count(*) FROM returned_checkouts WHERE checkout_id = $1)`
)

// GivenUniqueID generates a unique UUID for testing.
func GivenUniqueID(t testing.TB) uuid.UUID {
	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id
}

// FakeClock returns a fixed point in time, at Postgres precision.
func FakeClock() time.Time {
	return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
}

// GivenUserExists inserts a user and returns its id.
func GivenUserExists(t testing.TB, ctx context.Context, wrapper postgreswrapper.Wrapper) uuid.UUID { //nolint:revive
	userID := GivenUniqueID(t)

	err := wrapper.Exec(ctx, sqlInsertUser, userID.String(), "Reader "+userID.String()[:8], userID.String()+"@example.com")
	require.NoError(t, err, "error in arranging test data")

	return userID
}

// GivenBookExists inserts a book owned by ownerID and returns its id.
func GivenBookExists(t testing.TB, ctx context.Context, wrapper postgreswrapper.Wrapper, ownerID uuid.UUID) uuid.UUID { //nolint:revive
	bookID := GivenUniqueID(t)

	err := wrapper.Exec(ctx, sqlInsertBook, bookID.String(), ownerID.String())
	require.NoError(t, err, "error in arranging test data")

	return bookID
}

// CountActiveCheckouts counts the active checkout rows of a book.
func CountActiveCheckouts(t testing.TB, ctx context.Context, wrapper postgreswrapper.Wrapper, bookID uuid.UUID) int { //nolint:revive
	n, err := wrapper.QueryInt(ctx, sqlCountActive, bookID.String())
	require.NoError(t, err, "error in asserting test data")

	return n
}

// CountReturnedCheckouts counts the history rows of a book.
func CountReturnedCheckouts(t testing.TB, ctx context.Context, wrapper postgreswrapper.Wrapper, bookID uuid.UUID) int { //nolint:revive
	n, err := wrapper.QueryInt(ctx, sqlCountReturned, bookID.String())
	require.NoError(t, err, "error in asserting test data")

	return n
}

// CountCheckoutRows counts the rows carrying checkoutID across active and returned checkouts.
func CountCheckoutRows(t testing.TB, ctx context.Context, wrapper postgreswrapper.Wrapper, checkoutID uuid.UUID) int { //nolint:revive
	n, err := wrapper.QueryInt(ctx, sqlCountBoth, checkoutID.String())
	require.NoError(t, err, "error in asserting test data")

	return n
}
