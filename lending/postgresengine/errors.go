package postgresengine

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

// classifyDBError maps a driver error onto one of the lending error kinds.
// The original error stays in the chain, so callers can still inspect it with errors.As.
func classifyDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	code, ok := sqlStateOf(err)
	if !ok {
		// no answer from the server at all
		return errors.Join(lending.ErrStoreUnavailable, err)
	}

	switch {
	case code == pgerrcode.SerializationFailure, code == pgerrcode.DeadlockDetected:
		return errors.Join(lending.ErrTransactionFailure, err)

	case code == pgerrcode.UniqueViolation, code == pgerrcode.CheckViolation:
		return errors.Join(lending.ErrConflict, err)

	case code == pgerrcode.ForeignKeyViolation:
		return errors.Join(lending.ErrNotFound, err)

	case pgerrcode.IsConnectionException(code),
		pgerrcode.IsInsufficientResources(code),
		pgerrcode.IsOperatorIntervention(code):
		return errors.Join(lending.ErrStoreUnavailable, err)

	default:
		return errors.Join(lending.ErrDatabaseOperationFailed, err)
	}
}

// sqlStateOf extracts the SQLSTATE from a pgx or a lib/pq error.
func sqlStateOf(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code), true
	}

	return "", false
}

// errorKindLabel names the error kind for metrics and span attributes.
func errorKindLabel(err error) string {
	switch {
	case errors.Is(err, lending.ErrNotFound):
		return "not_found"
	case errors.Is(err, lending.ErrConflict):
		return "conflict"
	case errors.Is(err, lending.ErrWriteAnomaly):
		return "write_anomaly"
	case errors.Is(err, lending.ErrTransactionFailure):
		return "transaction_failure"
	case errors.Is(err, lending.ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, lending.ErrBuildingQueryFailed):
		return "build_query_error"
	case errors.Is(err, lending.ErrScanningDBRowFailed):
		return "scan_error"
	default:
		return "database_error"
	}
}
