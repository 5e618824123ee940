package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-lending-go/lending"
	"github.com/AntonStoeckl/library-lending-go/lending/postgresengine/internal/adapters"
)

// Return moves the active checkout of the book into the returned checkouts in a serializable transaction.
//
// The checkout must be the active checkout of the book and must have been made by the borrower,
// otherwise Return fails with lending.ErrConflict. A book without an active checkout is a conflict as well,
// and so is a return dated before the checkout. An unknown book fails with lending.ErrNotFound.
func (s *Store) Return(ctx context.Context, command lending.ReturnCheckout) error {
	tracing, ctx := s.startTracing(ctx, spanNameReturn, map[string]string{
		spanAttrOperation:  operationReturn,
		spanAttrBookID:     command.BookID.String(),
		spanAttrCheckoutID: command.CheckoutID.String(),
		spanAttrBorrowerID: command.BorrowerID.String(),
	})
	metrics := s.startMetrics(ctx, operationReturn, metricReturnDuration)
	start := time.Now()

	err := s.withSerializableTx(ctx, operationReturn, func(tx adapters.DBTx) error {
		state, err := s.readCheckoutState(ctx, tx, command.BookID)
		if err != nil {
			return err
		}

		if !state.HasActiveCheckout() {
			s.logOperation(ctx, logMsgNoActiveCheckout,
				logAttrBookID, command.BookID.String(),
				logAttrCheckoutID, command.CheckoutID.String(),
			)

			return errors.Join(lending.ErrConflict, fmt.Errorf("book %s has no active checkout", command.BookID))
		}

		if !state.Matches(command.CheckoutID, command.BorrowerID) {
			s.logOperation(ctx, logMsgMismatchedCheckout,
				logAttrBookID, command.BookID.String(),
				logAttrCheckoutID, command.CheckoutID.String(),
				logAttrActiveCheckoutID, state.CheckoutID.String(),
			)

			return errors.Join(
				lending.ErrConflict,
				fmt.Errorf("checkout %s by %s is not the active checkout of book %s",
					command.CheckoutID, command.BorrowerID, command.BookID),
			)
		}

		if state.ReturnPrecedesCheckout(command.ReturnedAt) {
			s.logOperation(ctx, logMsgReturnBeforeCheckout,
				logAttrBookID, command.BookID.String(),
				logAttrCheckoutID, command.CheckoutID.String(),
				logAttrCheckedOutAt, state.CheckedOutAt.Format(time.RFC3339Nano),
				logAttrReturnedAt, command.ReturnedAt.Format(time.RFC3339Nano),
			)

			return errors.Join(
				lending.ErrConflict,
				fmt.Errorf("return at %s precedes checkout %s at %s",
					command.ReturnedAt.Format(time.RFC3339Nano), command.CheckoutID, state.CheckedOutAt.Format(time.RFC3339Nano)),
			)
		}

		sqlQuery, args, err := s.buildInsertReturnedCheckoutQuery(command)
		if err != nil {
			s.logError(ctx, logMsgBuildQueryFailed, err, logAttrOperation, operationReturn)
			return errors.Join(lending.ErrBuildingQueryFailed, err)
		}

		if err = s.execExpectingRows(ctx, tx, sqlQuery, args, logActionInsertReturned); err != nil {
			return err
		}

		sqlQuery, args, err = s.buildDeleteCheckoutQuery(command.CheckoutID)
		if err != nil {
			s.logError(ctx, logMsgBuildQueryFailed, err, logAttrOperation, operationReturn)
			return errors.Join(lending.ErrBuildingQueryFailed, err)
		}

		return s.execExpectingRows(ctx, tx, sqlQuery, args, logActionDeleteCheckout)
	})

	duration := time.Since(start)
	if err != nil {
		tracing.finishError(err, duration)
		metrics.recordError(err, duration)

		return err
	}

	tracing.finishSuccess(duration, nil)
	metrics.recordSuccess(duration)
	s.logOperation(ctx, logMsgReturnCompleted,
		logAttrCheckoutID, command.CheckoutID.String(),
		logAttrBookID, command.BookID.String(),
		logAttrBorrowerID, command.BorrowerID.String(),
		logAttrDurationMS, toMilliseconds(duration),
	)

	return nil
}
