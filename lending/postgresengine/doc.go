// Package postgresengine provides a PostgreSQL implementation of the lending stores.
//
// Checkouts and returns each run as one serializable transaction: the book's lending state is read,
// the lending rules are checked against it, and the writes follow in the same transaction. Concurrent
// transactions on the same book can therefore not both succeed, the loser fails with
// lending.ErrTransactionFailure (or lending.ErrConflict) and may be retried as a whole.
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX)
//   - Optional read replica, selected per call with lending.WithEventualConsistency
//   - Optional schema qualification of all tables
//   - Dual-logger support plus metrics and tracing hooks
//
// Usage examples:
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewStoreFromPGXPool(
//		db,
//		postgresengine.WithLogger(slog.Default()),
//	)
//
//	err := store.Checkout(ctx, lending.BuildCreateCheckout(bookID, borrowerID, time.Now()))
//	active, _ := store.FindUnreturnedByBorrower(ctx, borrowerID)
package postgresengine
