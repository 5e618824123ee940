package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

// errorStatus maps a lending error kind to the HTTP status and the message for the client.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, lending.ErrInvalidID):
		return http.StatusBadRequest, "invalid id"
	case errors.Is(err, lending.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, lending.ErrConflict):
		return http.StatusUnprocessableEntity, "book is not available for this operation"
	case errors.Is(err, lending.ErrTransactionFailure):
		return http.StatusConflict, "concurrent update, try again"
	case errors.Is(err, lending.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "service unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
