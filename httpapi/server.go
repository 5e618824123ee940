package httpapi

import (
	"log/slog"

	"github.com/labstack/echo/v4"
)

const (
	pathHealth   = "/health"
	pathHealthDB = "/health/db"
)

// Options configures New.
type Options struct {
	Logger       *slog.Logger
	RateLimitRPS float64
}

// New creates an echo instance with the middlewares, serializer, and validator installed,
// and the routes of h registered.
func New(h *Handler, options Options) *echo.Echo {
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = NewJSONSerializer()
	e.Validator = NewValidator()

	RegisterMiddlewares(e, options.Logger, options.RateLimitRPS)
	Register(e, h)

	return e
}

// Register adds the lending and health routes.
func Register(e *echo.Echo, h *Handler) {
	e.GET(pathHealth, h.HealthCheck)
	e.GET(pathHealthDB, h.HealthCheckDB)

	v1 := e.Group("/api/v1", BorrowerIdentity())

	v1.POST("/books/:book_id/checkouts", h.Checkout)
	v1.PUT("/books/:book_id/checkouts/:checkout_id/returned", h.Return)
	v1.GET("/books/checkouts", h.ActiveCheckouts)
	v1.GET("/books/:book_id/checkout", h.BookCheckout)
	v1.GET("/books/:book_id/checkout-history", h.History)
	v1.GET("/users/me/checkouts", h.MyCheckouts)
}
