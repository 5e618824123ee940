package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/library-lending-go/lending"
	"github.com/AntonStoeckl/library-lending-go/shell"
)

const (
	operationCheckout = "checkout"
	operationReturn   = "return"
)

// Handler serves the lending routes.
type Handler struct {
	Svc    LendingService
	Health HealthChecker
	Log    *slog.Logger
	Clock  Clock

	// RetryMaxAttempts bounds the calls of a write that keeps failing with lending.ErrTransactionFailure.
	// Zero means the default of shell.RetryWithExponentialBackoff.
	RetryMaxAttempts int

	// Metrics is optional. When set, write retries are recorded.
	Metrics lending.MetricsCollector
}

// Checkout handles POST /api/v1/books/:book_id/checkouts.
func (h *Handler) Checkout(c echo.Context) error {
	var params bookPathParams
	if err := bindPath(c, &params); err != nil {
		return err
	}

	bookID, err := parsePathID(params.BookID)
	if err != nil {
		return err
	}

	borrowerID := borrowerFrom(c)

	meta, err := h.retry(c.Request().Context(), operationCheckout, func(ctx context.Context) error {
		return h.Svc.Checkout(ctx, bookID, borrowerID, h.Clock())
	})
	if err != nil {
		return h.fail(c, "checkout", err, slog.Int("attempts", meta.Attempts))
	}

	return c.NoContent(http.StatusCreated)
}

// Return handles PUT /api/v1/books/:book_id/checkouts/:checkout_id/returned.
func (h *Handler) Return(c echo.Context) error {
	var params returnPathParams
	if err := bindPath(c, &params); err != nil {
		return err
	}

	bookID, err := parsePathID(params.BookID)
	if err != nil {
		return err
	}

	checkoutID, err := parsePathID(params.CheckoutID)
	if err != nil {
		return err
	}

	borrowerID := borrowerFrom(c)

	meta, err := h.retry(c.Request().Context(), operationReturn, func(ctx context.Context) error {
		return h.Svc.ReturnBook(ctx, checkoutID, bookID, borrowerID, h.Clock())
	})
	if err != nil {
		return h.fail(c, "return", err, slog.Int("attempts", meta.Attempts))
	}

	return c.NoContent(http.StatusOK)
}

// ActiveCheckouts handles GET /api/v1/books/checkouts.
// The listing may be served by a replica.
func (h *Handler) ActiveCheckouts(c echo.Context) error {
	ctx := lending.WithEventualConsistency(c.Request().Context())

	checkouts, err := h.Svc.ListActiveCheckouts(ctx)
	if err != nil {
		return h.fail(c, "active checkouts", err)
	}

	return c.JSON(http.StatusOK, toCheckoutsResponse(checkouts))
}

// History handles GET /api/v1/books/:book_id/checkout-history.
func (h *Handler) History(c echo.Context) error {
	var params bookPathParams
	if err := bindPath(c, &params); err != nil {
		return err
	}

	bookID, err := parsePathID(params.BookID)
	if err != nil {
		return err
	}

	checkouts, err := h.Svc.HistoryForBook(c.Request().Context(), bookID)
	if err != nil {
		return h.fail(c, "checkout history", err)
	}

	return c.JSON(http.StatusOK, toCheckoutsResponse(checkouts))
}

// BookCheckout handles GET /api/v1/books/:book_id/checkout.
// An available book answers with a null checkout.
func (h *Handler) BookCheckout(c echo.Context) error {
	var params bookPathParams
	if err := bindPath(c, &params); err != nil {
		return err
	}

	bookID, err := parsePathID(params.BookID)
	if err != nil {
		return err
	}

	checkout, err := h.Svc.CurrentCheckoutForBook(c.Request().Context(), bookID)
	if err != nil {
		return h.fail(c, "book checkout", err)
	}

	return c.JSON(http.StatusOK, toBookCheckoutResponse(bookID, checkout))
}

// MyCheckouts handles GET /api/v1/users/me/checkouts.
func (h *Handler) MyCheckouts(c echo.Context) error {
	checkouts, err := h.Svc.ListActiveCheckoutsForBorrower(c.Request().Context(), borrowerFrom(c))
	if err != nil {
		return h.fail(c, "my checkouts", err)
	}

	return c.JSON(http.StatusOK, toCheckoutsResponse(checkouts))
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// HealthCheckDB handles GET /health/db.
func (h *Handler) HealthCheckDB(c echo.Context) error {
	if err := h.Health.HealthCheck(c.Request().Context()); err != nil {
		h.Log.Error("health check db", "err", err)
		return c.NoContent(http.StatusServiceUnavailable)
	}

	return c.NoContent(http.StatusOK)
}

func (h *Handler) retry(ctx context.Context, operation string, fn shell.RetryableFunc) (shell.RetryMeta, error) {
	options := make([]shell.RetryOption, 0, 2)

	if h.RetryMaxAttempts > 0 {
		options = append(options, shell.WithMaxAttempts(h.RetryMaxAttempts))
	}

	if h.Metrics != nil {
		options = append(options, shell.WithMetrics(h.Metrics, operation))
	}

	return shell.RetryWithExponentialBackoff(ctx, fn, options...)
}

func (h *Handler) fail(c echo.Context, action string, err error, attrs ...any) error {
	status, message := errorStatus(err)

	args := append([]any{"err", err, "status", status}, attrs...)
	if status >= http.StatusInternalServerError {
		h.Log.Error(action, args...)
	} else {
		h.Log.Info(action, args...)
	}

	return c.JSON(status, ErrorResponse{Message: message})
}

func bindPath(c echo.Context, params interface{}) error {
	if err := (&echo.DefaultBinder{}).BindPathParams(c, params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid path").SetInternal(err)
	}

	if err := c.Validate(params); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id").SetInternal(err)
	}

	return nil
}

func parsePathID(raw string) (uuid.UUID, error) {
	id, err := lending.ParseID(raw)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id").SetInternal(err)
	}

	return id, nil
}
