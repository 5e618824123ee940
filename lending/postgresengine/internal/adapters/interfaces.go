package adapters

import "context"

// DBAdapter defines the database operations needed by the lending store.
type DBAdapter interface {
	// Query runs a read statement. It uses the replica, if one is configured and the
	// context allows eventual consistency, otherwise the primary.
	Query(ctx context.Context, query string, args ...any) (DBRows, error)

	// Exec runs a statement on the primary outside a transaction.
	Exec(ctx context.Context, query string, args ...any) (DBResult, error)

	// BeginSerializable starts a transaction with SERIALIZABLE isolation on the primary.
	BeginSerializable(ctx context.Context) (DBTx, error)
}

// DBTx is a transaction handle. Rollback after Commit is a no-op.
type DBTx interface {
	Query(ctx context.Context, query string, args ...any) (DBRows, error)
	Exec(ctx context.Context, query string, args ...any) (DBResult, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
