package lending

import (
	"errors"
)

// Error kinds reported by lending operations.
var (
	// ErrNotFound is returned when the referenced book (or a referenced borrower) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a checkout or return violates the lending rules:
	// the book is already checked out, or the return does not match the active checkout.
	ErrConflict = errors.New("lending conflict")

	// ErrWriteAnomaly is returned when a write that must affect exactly one row affected none.
	ErrWriteAnomaly = errors.New("write anomaly, no rows were affected")

	// ErrTransactionFailure is returned when the store could not commit a transaction,
	// including aborts caused by serializable isolation. Retrying the whole operation is safe.
	ErrTransactionFailure = errors.New("transaction failure")

	// ErrStoreUnavailable is returned when the store can not be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Errors for invalid input and store construction.
var (
	ErrInvalidID               = errors.New("invalid identifier")
	ErrNilDatabaseConnection   = errors.New("database connection must not be nil")
	ErrEmptySchemaName         = errors.New("empty schema name supplied")
	ErrNilIDGenerator          = errors.New("id generator must not be nil")
	ErrGeneratingIDFailed      = errors.New("generating checkout id failed")
	ErrBuildingQueryFailed     = errors.New("building query failed")
	ErrScanningDBRowFailed     = errors.New("scanning db row failed")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
