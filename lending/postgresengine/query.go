package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-lending-go/lending"
	"github.com/AntonStoeckl/library-lending-go/lending/postgresengine/internal/adapters"
)

// FindUnreturnedAll returns all active checkouts, oldest first.
//
// Reads are not transactional. With lending.WithEventualConsistency on ctx they go to the replica, if one is configured.
func (s *Store) FindUnreturnedAll(ctx context.Context) ([]lending.Checkout, error) {
	return s.observeQuery(ctx, queryActiveAll, nil, func(ctx context.Context) ([]lending.Checkout, error) {
		return s.queryActive(ctx, nil)
	})
}

// FindUnreturnedByBorrower returns the active checkouts of one borrower, oldest first.
func (s *Store) FindUnreturnedByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]lending.Checkout, error) {
	attrs := map[string]string{spanAttrBorrowerID: borrowerID.String()}

	return s.observeQuery(ctx, queryActiveByBorrower, attrs, func(ctx context.Context) ([]lending.Checkout, error) {
		return s.queryActive(ctx, &activeFilter{column: colUserID, id: borrowerID})
	})
}

// FindHistoryByBook returns the lending history of a book.
// The active checkout, if any, comes first, followed by the returned checkouts, oldest first.
// An unknown book has an empty history.
func (s *Store) FindHistoryByBook(ctx context.Context, bookID uuid.UUID) ([]lending.Checkout, error) {
	attrs := map[string]string{spanAttrBookID: bookID.String()}

	return s.observeQuery(ctx, queryHistoryByBook, attrs, func(ctx context.Context) ([]lending.Checkout, error) {
		return s.queryHistory(ctx, bookID)
	})
}

// FindUnreturnedByBook returns the active checkout of a book, or nil when the book is available.
// It fails with lending.ErrNotFound when the book does not exist.
func (s *Store) FindUnreturnedByBook(ctx context.Context, bookID uuid.UUID) (*lending.Checkout, error) {
	attrs := map[string]string{spanAttrBookID: bookID.String()}

	var active *lending.Checkout
	_, err := s.observeQuery(ctx, queryActiveByBook, attrs, func(ctx context.Context) ([]lending.Checkout, error) {
		checkout, err := s.queryBookCheckout(ctx, bookID)
		if err != nil {
			return nil, err
		}

		if checkout == nil {
			return []lending.Checkout{}, nil
		}

		active = checkout

		return []lending.Checkout{*checkout}, nil
	})
	if err != nil {
		return nil, err
	}

	return active, nil
}

func (s *Store) observeQuery(
	ctx context.Context,
	kind string,
	attrs map[string]string,
	run func(ctx context.Context) ([]lending.Checkout, error),
) ([]lending.Checkout, error) {
	spanAttrs := map[string]string{
		spanAttrOperation: operationQuery,
		spanAttrQueryKind: kind,
	}
	for k, v := range attrs {
		spanAttrs[k] = v
	}

	tracing, ctx := s.startTracing(ctx, spanNameQuery, spanAttrs)
	metrics := s.startMetrics(ctx, operationQuery, metricQueryDuration).withLabel(spanAttrQueryKind, kind)
	start := time.Now()

	checkouts, err := run(ctx)

	duration := time.Since(start)
	if err != nil {
		tracing.finishError(err, duration)
		metrics.recordError(err, duration)

		return nil, err
	}

	tracing.finishSuccess(duration, countAttr(len(checkouts)))
	metrics.recordQuerySuccess(len(checkouts), duration)
	s.logOperation(ctx, logMsgQueryCompleted,
		spanAttrQueryKind, kind,
		logAttrCheckoutCount, len(checkouts),
		logAttrDurationMS, toMilliseconds(duration),
	)

	return checkouts, nil
}

func (s *Store) queryActive(ctx context.Context, filter *activeFilter) ([]lending.Checkout, error) {
	sqlQuery, args, err := s.buildActiveCheckoutsQuery(filter)
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err, logAttrAction, logActionQueryActive)
		return nil, errors.Join(lending.ErrBuildingQueryFailed, err)
	}

	return s.queryCheckouts(ctx, sqlQuery, args, logActionQueryActive, func(rows adapters.DBRows) (lending.Checkout, error) {
		var c lending.Checkout
		err := rows.Scan(&c.ID, &c.CheckedOutBy, &c.CheckedOutAt, &c.Book.ID, &c.Book.Title, &c.Book.Author, &c.Book.ISBN)

		return c, err
	})
}

func (s *Store) queryHistory(ctx context.Context, bookID uuid.UUID) ([]lending.Checkout, error) {
	sqlQuery, args, err := s.buildHistoryForBookQuery(bookID)
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err, logAttrAction, logActionQueryHistory)
		return nil, errors.Join(lending.ErrBuildingQueryFailed, err)
	}

	return s.queryCheckouts(ctx, sqlQuery, args, logActionQueryHistory, func(rows adapters.DBRows) (lending.Checkout, error) {
		var c lending.Checkout
		err := rows.Scan(&c.ID, &c.CheckedOutBy, &c.CheckedOutAt, &c.ReturnedAt, &c.Book.ID, &c.Book.Title, &c.Book.Author, &c.Book.ISBN)

		return c, err
	})
}

func (s *Store) queryBookCheckout(ctx context.Context, bookID uuid.UUID) (*lending.Checkout, error) {
	sqlQuery, args, err := s.buildBookCheckoutQuery(bookID)
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err, logAttrAction, logActionQueryBook)
		return nil, errors.Join(lending.ErrBuildingQueryFailed, err)
	}

	start := time.Now()
	rows, err := s.db.Query(ctx, sqlQuery, args...)
	s.logQueryWithDuration(ctx, sqlQuery, logActionQueryBook, time.Since(start))

	if err != nil {
		s.logError(ctx, logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
		return nil, classifyDBError(err)
	}
	defer s.closeRows(ctx, rows)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			s.logError(ctx, logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
			return nil, classifyDBError(err)
		}

		s.logOperation(ctx, logMsgBookNotFound, logAttrBookID, bookID.String())

		return nil, errors.Join(lending.ErrNotFound, fmt.Errorf("book %s does not exist", bookID))
	}

	var (
		c            lending.Checkout
		checkoutID   uuid.NullUUID
		borrowerID   uuid.NullUUID
		checkedOutAt *time.Time
	)

	err = rows.Scan(&checkoutID, &borrowerID, &checkedOutAt, &c.Book.ID, &c.Book.Title, &c.Book.Author, &c.Book.ISBN)
	if err != nil {
		s.logError(ctx, logMsgScanRowFailed, err, logAttrQuery, sqlQuery)
		return nil, errors.Join(lending.ErrScanningDBRowFailed, err)
	}

	if !checkoutID.Valid || !borrowerID.Valid || checkedOutAt == nil {
		return nil, nil //nolint:nilnil // an available book has no active checkout
	}

	c.ID = checkoutID.UUID
	c.CheckedOutBy = borrowerID.UUID
	c.CheckedOutAt = checkedOutAt.UTC()

	return &c, nil
}

func (s *Store) queryCheckouts(
	ctx context.Context,
	sqlQuery string,
	args []any,
	action string,
	scan func(rows adapters.DBRows) (lending.Checkout, error),
) ([]lending.Checkout, error) {
	start := time.Now()
	rows, err := s.db.Query(ctx, sqlQuery, args...)
	s.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if err != nil {
		s.logError(ctx, logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
		return nil, classifyDBError(err)
	}
	defer s.closeRows(ctx, rows)

	checkouts := make([]lending.Checkout, 0)
	for rows.Next() {
		c, scanErr := scan(rows)
		if scanErr != nil {
			s.logError(ctx, logMsgScanRowFailed, scanErr, logAttrQuery, sqlQuery)
			return nil, errors.Join(lending.ErrScanningDBRowFailed, scanErr)
		}

		c.CheckedOutAt = c.CheckedOutAt.UTC()
		if c.ReturnedAt != nil {
			returnedAt := c.ReturnedAt.UTC()
			c.ReturnedAt = &returnedAt
		}

		checkouts = append(checkouts, c)
	}

	if err = rows.Err(); err != nil {
		s.logError(ctx, logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
		return nil, classifyDBError(err)
	}

	return checkouts, nil
}
