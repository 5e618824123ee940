package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/AntonStoeckl/library-lending-go/lending"
)

const (
	// HeaderUserID carries the authenticated user id, set by the gateway in front of the service.
	HeaderUserID = "X-User-ID"

	contextKeyBorrowerID = "borrower_id"
)

// RegisterMiddlewares installs panic recovery, request ids, access logging, and,
// when rps is positive, a per-IP rate limiter.
func RegisterMiddlewares(e *echo.Echo, logger *slog.Logger, rps float64) {
	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(Slog(logger))

	if rps > 0 {
		e.Use(RateLimiter(rps))
	}
}

// Slog writes one access log record per request.
func Slog(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			logger.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
				"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			)

			return nil
		}
	}
}

// RateLimiter limits requests per client IP with an in-memory token bucket.
func RateLimiter(rps float64) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == pathHealth || c.Path() == pathHealthDB
		},
		Store: middleware.NewRateLimiterMemoryStore(rate.Limit(rps)),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			return c.JSON(http.StatusForbidden, ErrorResponse{Message: "forbidden"})
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, ErrorResponse{Message: "too many requests"})
		},
	})
}

// BorrowerIdentity reads the caller's id from the X-User-ID header.
func BorrowerIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get(HeaderUserID)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
			}

			borrowerID, err := lending.ParseID(raw)
			if err != nil {
				return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid user id"})
			}

			c.Set(contextKeyBorrowerID, borrowerID)

			return next(c)
		}
	}
}

func borrowerFrom(c echo.Context) uuid.UUID {
	borrowerID, _ := c.Get(contextKeyBorrowerID).(uuid.UUID)

	return borrowerID
}
