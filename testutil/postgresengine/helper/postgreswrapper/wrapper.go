package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/lending/postgresengine"
	"github.com/AntonStoeckl/library-lending-go/migrations"
	"github.com/AntonStoeckl/library-lending-go/testutil/postgresengine/config"
)

// Engine type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

const sqlTruncate = "TRUNCATE TABLE returned_checkouts, checkouts, books, users"

var migrateOnce sync.Once

// Wrapper abstracts over the driver a store was built on.
type Wrapper interface {
	GetStore() *postgresengine.Store
	Exec(ctx context.Context, query string, args ...any) error
	QueryInt(ctx context.Context, query string, args ...any) (int, error)
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool  *pgxpool.Pool
	store *postgresengine.Store
}

func (w *PGXPoolWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *PGXPoolWrapper) Exec(ctx context.Context, query string, args ...any) error {
	_, err := w.pool.Exec(ctx, query, args...)
	return err
}

func (w *PGXPoolWrapper) QueryInt(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	err := w.pool.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db    *sql.DB
	store *postgresengine.Store
}

func (w *SQLDBWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *SQLDBWrapper) Exec(ctx context.Context, query string, args ...any) error {
	_, err := w.db.ExecContext(ctx, query, args...)
	return err
}

func (w *SQLDBWrapper) QueryInt(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	err := w.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db    *sqlx.DB
	store *postgresengine.Store
}

func (w *SQLXWrapper) GetStore() *postgresengine.Store {
	return w.store
}

func (w *SQLXWrapper) Exec(ctx context.Context, query string, args ...any) error {
	_, err := w.db.ExecContext(ctx, query, args...)
	return err
}

func (w *SQLXWrapper) QueryInt(ctx context.Context, query string, args ...any) (int, error) {
	var n int
	err := w.db.GetContext(ctx, &n, query, args...)
	return n, err
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapperWithTestConfig creates the wrapper for the ADAPTER_TYPE environment variable.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresengine.Option) Wrapper {
	t.Helper()

	engineTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	switch engineTypeFromEnv {
	case typePGXPool, "":
		pool := config.PostgresPGXPoolTestConfig()
		migrate(t, stdlib.OpenDBFromPool(pool))

		store, err := postgresengine.NewStoreFromPGXPool(pool, options...)
		require.NoError(t, err, "error creating store")

		return &PGXPoolWrapper{pool: pool, store: store}

	case typeSQLDB:
		db := config.PostgresSQLDBTestConfig()
		migrate(t, db)

		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		require.NoError(t, err, "error creating store")

		return &SQLDBWrapper{db: db, store: store}

	case typeSQLXDB:
		db := config.PostgresSQLXTestConfig()
		migrate(t, db.DB)

		store, err := postgresengine.NewStoreFromSQLX(db, options...)
		require.NoError(t, err, "error creating store")

		return &SQLXWrapper{db: db, store: store}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", engineTypeFromEnv))
	}
}

// CleanUp empties all lending tables.
func CleanUp(t testing.TB, wrapper Wrapper) {
	t.Helper()

	err := wrapper.Exec(context.Background(), sqlTruncate)
	require.NoError(t, err, "error cleaning up the lending tables")
}

func migrate(t testing.TB, db *sql.DB) {
	t.Helper()

	var err error
	migrateOnce.Do(func() {
		err = migrations.Up(context.Background(), db)
	})

	require.NoError(t, err, "error applying migrations")
}
