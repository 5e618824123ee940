package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-lending-go/lending"
	"github.com/AntonStoeckl/library-lending-go/lending/postgresengine/internal/adapters"
)

const (
	tableBooks             = "books"
	tableCheckouts         = "checkouts"
	tableReturnedCheckouts = "returned_checkouts"

	colBookID       = "book_id"
	colCheckoutID   = "checkout_id"
	colUserID       = "user_id"
	colCheckedOutAt = "checked_out_at"
	colReturnedAt   = "returned_at"
	colTitle        = "title"
	colAuthor       = "author"
	colISBN         = "isbn"

	aliasBooks             = "b"
	aliasCheckouts         = "c"
	aliasReturnedCheckouts = "rc"
	aliasHistory           = "h"

	dialectPostgres = "postgres"
	castTimestamp   = "?::timestamp with time zone"
	nullTimestamp   = "NULL::timestamp with time zone"
	isNotNull       = "? IS NOT NULL"
	sqlHealthCheck  = "SELECT 1"
)

const (
	logMsgBuildQueryFailed     = "failed to build query"
	logMsgDBQueryFailed        = "database query execution failed"
	logMsgDBExecFailed         = "database execution failed"
	logMsgRowsAffectedFailed   = "failed to get rows affected count"
	logMsgCloseRowsFailed      = "failed to close database rows"
	logMsgScanRowFailed        = "failed to scan database row"
	logMsgBeginTxFailed        = "failed to begin serializable transaction"
	logMsgCommitTxFailed       = "failed to commit transaction"
	logMsgRollbackTxFailed     = "failed to roll back transaction"
	logMsgGenerateIDFailed     = "failed to generate checkout id"
	logMsgWriteAnomaly         = "write affected no rows"
	logMsgHealthCheckFailed    = "health check failed"
	logMsgSQLExecuted          = "executed sql for: "
	logMsgOperation            = "lending operation: "
	logMsgCheckoutCompleted    = "checkout completed"
	logMsgReturnCompleted      = "return completed"
	logMsgQueryCompleted       = "query completed"
	logMsgAlreadyCheckedOut    = "book already checked out"
	logMsgNoActiveCheckout     = "no active checkout to return"
	logMsgMismatchedCheckout   = "return does not match active checkout"
	logMsgBookNotFound         = "book not found"
	logMsgReturnBeforeCheckout = "return precedes checkout"
	logAttrError               = "error"
	logAttrQuery               = "query"
	logAttrOperation           = "operation"
	logAttrBookID              = "book_id"
	logAttrCheckoutID          = "checkout_id"
	logAttrBorrowerID          = "borrower_id"
	logAttrActiveCheckoutID    = "active_checkout_id"
	logAttrCheckoutCount       = "checkout_count"
	logAttrDurationMS          = "duration_ms"
	logAttrRowsAffected        = "rows_affected"
	logAttrCheckedOutAt        = "checked_out_at"
	logAttrReturnedAt          = "returned_at"
	logAttrAction              = "action"
	logActionReadState         = "read checkout state"
	logActionInsertCheckout    = "insert checkout"
	logActionInsertReturned    = "insert returned checkout"
	logActionDeleteCheckout    = "delete checkout"
	logActionQueryActive       = "query active checkouts"
	logActionQueryHistory      = "query checkout history"
	logActionQueryBook         = "query book checkout"
	logActionHealthCheck       = "health check"
)

// IDGenerator produces identities for new checkouts.
type IDGenerator func() (uuid.UUID, error)

type tableNames struct {
	books             exp.IdentifierExpression
	checkouts         exp.IdentifierExpression
	returnedCheckouts exp.IdentifierExpression
}

func unqualifiedTables() tableNames {
	return tableNames{
		books:             goqu.T(tableBooks),
		checkouts:         goqu.T(tableCheckouts),
		returnedCheckouts: goqu.T(tableReturnedCheckouts),
	}
}

func schemaTables(schema string) tableNames {
	return tableNames{
		books:             goqu.S(schema).Table(tableBooks),
		checkouts:         goqu.S(schema).Table(tableCheckouts),
		returnedCheckouts: goqu.S(schema).Table(tableReturnedCheckouts),
	}
}

// Store implements lending.CheckoutStore and lending.QueryStore on PostgreSQL.
// Checkouts and returns run in serializable transactions, queries run at the default isolation level.
type Store struct {
	db               adapters.DBAdapter
	tables           tableNames
	idGenerator      IDGenerator
	logger           lending.Logger
	contextualLogger lending.ContextualLogger
	metricsCollector lending.MetricsCollector
	tracingCollector lending.TracingCollector
}

var (
	_ lending.CheckoutStore = (*Store)(nil)
	_ lending.QueryStore    = (*Store)(nil)
)

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil {
		return nil, lending.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options...)
}

// NewStoreFromPGXPoolAndReplica creates a new Store using a primary and a replica pgx Pool.
// Queries go to the replica when the context carries lending.WithEventualConsistency.
func NewStoreFromPGXPoolAndReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (*Store, error) {
	if db == nil || replica == nil {
		return nil, lending.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(db, replica), options...)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, lending.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options...)
}

// NewStoreFromSQLDBAndReplica creates a new Store using a primary and a replica sql.DB.
func NewStoreFromSQLDBAndReplica(db *sql.DB, replica *sql.DB, options ...Option) (*Store, error) {
	if db == nil || replica == nil {
		return nil, lending.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapterWithReplica(db, replica), options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil {
		return nil, lending.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options...)
}

// NewStoreFromSQLXAndReplica creates a new Store using a primary and a replica sqlx.DB.
func NewStoreFromSQLXAndReplica(db *sqlx.DB, replica *sqlx.DB, options ...Option) (*Store, error) {
	if db == nil || replica == nil {
		return nil, lending.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapterWithReplica(db, replica), options...)
}

func newStore(db adapters.DBAdapter, options ...Option) (*Store, error) {
	s := &Store{
		db:          db,
		tables:      unqualifiedTables(),
		idGenerator: uuid.NewRandom,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// HealthCheck verifies that the primary database answers a trivial statement.
func (s *Store) HealthCheck(ctx context.Context) error {
	start := time.Now()
	_, err := s.db.Exec(ctx, sqlHealthCheck)
	s.logQueryWithDuration(ctx, sqlHealthCheck, logActionHealthCheck, time.Since(start))

	if err != nil {
		s.logError(ctx, logMsgHealthCheckFailed, err)
		return errors.Join(lending.ErrStoreUnavailable, err)
	}

	return nil
}
