package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AntonStoeckl/library-lending-go/lending"
	"github.com/AntonStoeckl/library-lending-go/lending/postgresengine/internal/adapters"
)

// executor is satisfied by both the adapter and a running transaction.
type executor interface {
	Query(ctx context.Context, query string, args ...any) (adapters.DBRows, error)
	Exec(ctx context.Context, query string, args ...any) (adapters.DBResult, error)
}

// withSerializableTx runs fn inside one serializable transaction and commits when fn succeeds.
// Every other path ends in a rollback, also when fn panics or ctx is already canceled.
func (s *Store) withSerializableTx(ctx context.Context, operation string, fn func(tx adapters.DBTx) error) error {
	tx, err := s.db.BeginSerializable(ctx)
	if err != nil {
		s.logError(ctx, logMsgBeginTxFailed, err, logAttrOperation, operation)
		return classifyDBError(err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}

		if rollbackErr := tx.Rollback(context.WithoutCancel(ctx)); rollbackErr != nil {
			s.logWarn(ctx, logMsgRollbackTxFailed, rollbackErr, logAttrOperation, operation)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		s.logError(ctx, logMsgCommitTxFailed, err, logAttrOperation, operation)

		return classifyCommitError(err)
	}

	committed = true

	return nil
}

// classifyCommitError maps a failed commit. When the connection broke or ctx ended while the commit
// was in flight, the outcome is unknown, so the error must not be one that callers retry.
func classifyCommitError(err error) error {
	if errors.Is(err, pgx.ErrTxCommitRollback) {
		return errors.Join(lending.ErrTransactionFailure, err)
	}

	classified := classifyDBError(err)

	switch {
	case errors.Is(classified, lending.ErrStoreUnavailable),
		errors.Is(classified, lending.ErrTransactionFailure),
		errors.Is(classified, context.Canceled),
		errors.Is(classified, context.DeadlineExceeded):
		return classified
	default:
		return errors.Join(lending.ErrTransactionFailure, err)
	}
}

// execExpectingRows executes a write and reports a write anomaly when it touched no row.
func (s *Store) execExpectingRows(ctx context.Context, db executor, sqlQuery string, args []any, action string) error {
	start := time.Now()
	result, err := db.Exec(ctx, sqlQuery, args...)
	s.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if err != nil {
		s.logError(ctx, logMsgDBExecFailed, err, logAttrQuery, sqlQuery)
		return classifyDBError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, err, logAttrQuery, sqlQuery)
		return errors.Join(lending.ErrDatabaseOperationFailed, err)
	}

	if rowsAffected < 1 {
		anomaly := errors.Join(lending.ErrWriteAnomaly, errors.New(action+" affected no rows"))
		s.logError(ctx, logMsgWriteAnomaly, anomaly, logAttrQuery, sqlQuery, logAttrRowsAffected, rowsAffected)

		return anomaly
	}

	return nil
}

// closeRows closes rows and logs a failure, reads are complete at this point.
func (s *Store) closeRows(ctx context.Context, rows adapters.DBRows) {
	if err := rows.Close(); err != nil {
		s.logWarn(ctx, logMsgCloseRowsFailed, err)
	}
}
