package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fieldops/dispatch-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. The auth errors keep
	// their own messages so remaining attempts / lockout time reach the user.
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, "work order not found"
	case errors.Is(err, domain.ErrTechnicianNotFound):
		return http.StatusNotFound, "technician not found"
	case errors.Is(err, domain.ErrNoAvailableTechnician):
		// An anticipated outcome: the order stays pending and the caller may
		// retry, so 409 rather than a 5xx.
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrOrderNotPending):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrAccountLocked):
		return http.StatusLocked, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
