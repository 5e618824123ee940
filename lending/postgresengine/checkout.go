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

// Checkout creates an active checkout for the book in a serializable transaction.
//
// It fails with lending.ErrNotFound when the book does not exist, with lending.ErrConflict when the book
// is already checked out, and with lending.ErrTransactionFailure when the transaction could not commit.
// A concurrent checkout of the same book surfaces as one of the last two.
func (s *Store) Checkout(ctx context.Context, command lending.CreateCheckout) error {
	tracing, ctx := s.startTracing(ctx, spanNameCheckout, map[string]string{
		spanAttrOperation:  operationCheckout,
		spanAttrBookID:     command.BookID.String(),
		spanAttrBorrowerID: command.BorrowerID.String(),
	})
	metrics := s.startMetrics(ctx, operationCheckout, metricCheckoutDuration)
	start := time.Now()

	var checkoutID uuid.UUID
	err := s.withSerializableTx(ctx, operationCheckout, func(tx adapters.DBTx) error {
		state, err := s.readCheckoutState(ctx, tx, command.BookID)
		if err != nil {
			return err
		}

		if state.HasActiveCheckout() {
			s.logOperation(ctx, logMsgAlreadyCheckedOut,
				logAttrBookID, command.BookID.String(),
				logAttrActiveCheckoutID, state.CheckoutID.String(),
			)

			return errors.Join(lending.ErrConflict, fmt.Errorf("book %s is already checked out", command.BookID))
		}

		checkoutID, err = s.idGenerator()
		if err != nil {
			s.logError(ctx, logMsgGenerateIDFailed, err)
			return errors.Join(lending.ErrGeneratingIDFailed, err)
		}

		sqlQuery, args, err := s.buildInsertCheckoutQuery(checkoutID, command)
		if err != nil {
			s.logError(ctx, logMsgBuildQueryFailed, err, logAttrOperation, operationCheckout)
			return errors.Join(lending.ErrBuildingQueryFailed, err)
		}

		return s.execExpectingRows(ctx, tx, sqlQuery, args, logActionInsertCheckout)
	})

	duration := time.Since(start)
	if err != nil {
		tracing.finishError(err, duration)
		metrics.recordError(err, duration)

		return err
	}

	tracing.finishSuccess(duration, map[string]string{spanAttrCheckoutID: checkoutID.String()})
	metrics.recordSuccess(duration)
	s.logOperation(ctx, logMsgCheckoutCompleted,
		logAttrCheckoutID, checkoutID.String(),
		logAttrBookID, command.BookID.String(),
		logAttrBorrowerID, command.BorrowerID.String(),
		logAttrDurationMS, toMilliseconds(duration),
	)

	return nil
}

// readCheckoutState reads the book together with its active checkout, if any, inside tx.
func (s *Store) readCheckoutState(ctx context.Context, tx executor, bookID uuid.UUID) (lending.CheckoutState, error) {
	sqlQuery, args, err := s.buildCheckoutStateQuery(bookID)
	if err != nil {
		s.logError(ctx, logMsgBuildQueryFailed, err, logAttrAction, logActionReadState)
		return lending.CheckoutState{}, errors.Join(lending.ErrBuildingQueryFailed, err)
	}

	start := time.Now()
	rows, err := tx.Query(ctx, sqlQuery, args...)
	s.logQueryWithDuration(ctx, sqlQuery, logActionReadState, time.Since(start))

	if err != nil {
		s.logError(ctx, logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
		return lending.CheckoutState{}, classifyDBError(err)
	}
	defer s.closeRows(ctx, rows)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			s.logError(ctx, logMsgDBQueryFailed, err, logAttrQuery, sqlQuery)
			return lending.CheckoutState{}, classifyDBError(err)
		}

		s.logOperation(ctx, logMsgBookNotFound, logAttrBookID, bookID.String())

		return lending.CheckoutState{}, errors.Join(lending.ErrNotFound, fmt.Errorf("book %s does not exist", bookID))
	}

	var (
		state        lending.CheckoutState
		checkoutID   uuid.NullUUID
		borrowerID   uuid.NullUUID
		checkedOutAt *time.Time
	)

	if err = rows.Scan(&state.BookID, &checkoutID, &borrowerID, &checkedOutAt); err != nil {
		s.logError(ctx, logMsgScanRowFailed, err, logAttrQuery, sqlQuery)
		return lending.CheckoutState{}, errors.Join(lending.ErrScanningDBRowFailed, err)
	}

	if checkoutID.Valid {
		state.CheckoutID = &checkoutID.UUID
	}

	if borrowerID.Valid {
		state.BorrowerID = &borrowerID.UUID
	}

	if checkedOutAt != nil {
		at := checkedOutAt.UTC()
		state.CheckedOutAt = &at
	}

	return state, nil
}
