package postgresengine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/lending/postgresengine/internal/adapters"
)

type recordedStatement struct {
	query string
	args  []any
}

type fakeRows struct {
	rows   [][]any
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++

	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	if len(row) != len(dest) {
		return fmt.Errorf("expected %d destinations, got %d", len(row), len(dest))
	}

	for i, value := range row {
		if err := assign(dest[i], value); err != nil {
			return err
		}
	}

	return nil
}

func (r *fakeRows) Err() error {
	return r.err
}

func (r *fakeRows) Close() error {
	r.closed = true
	return nil
}

func assign(dest any, value any) error {
	switch d := dest.(type) {
	case *uuid.UUID:
		*d = value.(uuid.UUID)
	case *uuid.NullUUID:
		if value == nil {
			*d = uuid.NullUUID{}
		} else {
			*d = uuid.NullUUID{UUID: value.(uuid.UUID), Valid: true}
		}
	case *string:
		*d = value.(string)
	case *time.Time:
		*d = value.(time.Time)
	case **time.Time:
		if value == nil {
			*d = nil
		} else {
			t := value.(time.Time)
			*d = &t
		}
	default:
		return fmt.Errorf("unsupported scan destination %T", dest)
	}

	return nil
}

type fakeResult struct {
	rowsAffected int64
}

func (r fakeResult) RowsAffected() (int64, error) {
	return r.rowsAffected, nil
}

// fakeTx hands out scripted results in call order.
type fakeTx struct {
	queryResults []*fakeRows
	queryErr     error
	execResults  []int64
	execErr      error
	commitErr    error

	queries    []recordedStatement
	execs      []recordedStatement
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Query(_ context.Context, query string, args ...any) (adapters.DBRows, error) {
	tx.queries = append(tx.queries, recordedStatement{query: query, args: args})
	if tx.queryErr != nil {
		return nil, tx.queryErr
	}

	rows := tx.queryResults[0]
	tx.queryResults = tx.queryResults[1:]

	return rows, nil
}

func (tx *fakeTx) Exec(_ context.Context, query string, args ...any) (adapters.DBResult, error) {
	tx.execs = append(tx.execs, recordedStatement{query: query, args: args})
	if tx.execErr != nil {
		return nil, tx.execErr
	}

	affected := tx.execResults[0]
	tx.execResults = tx.execResults[1:]

	return fakeResult{rowsAffected: affected}, nil
}

func (tx *fakeTx) Commit(_ context.Context) error {
	if tx.commitErr != nil {
		return tx.commitErr
	}
	tx.committed = true

	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	tx.rolledBack = true

	return nil
}

type fakeDB struct {
	tx       *fakeTx
	beginErr error
	rows     *fakeRows
	queryErr error
	execErr  error

	queries []recordedStatement
}

func (db *fakeDB) Query(_ context.Context, query string, args ...any) (adapters.DBRows, error) {
	db.queries = append(db.queries, recordedStatement{query: query, args: args})
	if db.queryErr != nil {
		return nil, db.queryErr
	}

	return db.rows, nil
}

func (db *fakeDB) Exec(_ context.Context, _ string, _ ...any) (adapters.DBResult, error) {
	if db.execErr != nil {
		return nil, db.execErr
	}

	return fakeResult{rowsAffected: 1}, nil
}

func (db *fakeDB) BeginSerializable(_ context.Context) (adapters.DBTx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}

	return db.tx, nil
}

// stateCheckedOutAt is the checkout time of every active checkout built by stateRows.
var stateCheckedOutAt = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func stateRows(bookID uuid.UUID, checkoutID, borrowerID *uuid.UUID) *fakeRows {
	return stateRowsCheckedOutAt(bookID, checkoutID, borrowerID, stateCheckedOutAt)
}

func stateRowsCheckedOutAt(bookID uuid.UUID, checkoutID, borrowerID *uuid.UUID, checkedOutAt time.Time) *fakeRows {
	row := []any{bookID, nil, nil, nil}
	if checkoutID != nil {
		row[1] = *checkoutID
		row[3] = checkedOutAt
	}
	if borrowerID != nil {
		row[2] = *borrowerID
	}

	return &fakeRows{rows: [][]any{row}}
}
