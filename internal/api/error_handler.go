package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the user.
//   - Renders the error page; a plain-text fallback covers render failures.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		data := map[string]any{
			"Title":   errorTitle(code),
			"Message": msg,
		}
		if rerr := c.Render(code, "error", data); rerr != nil {
			_ = c.String(code, fmt.Sprintf("%s: %s", errorTitle(code), msg))
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from the router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code == http.StatusNotFound {
			return he.Code, "The page you're looking for doesn't exist."
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic status codes.
	switch {
	case errors.Is(err, domain.ErrVehicleNotFound):
		return http.StatusNotFound, "Sorry, we couldn't find that vehicle."
	case errors.Is(err, domain.ErrClassificationNotFound):
		return http.StatusNotFound, "Sorry, we couldn't find that classification."
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "Sorry, we couldn't find that account."
	}

	// Unexpected error: log the real cause, show a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Something went wrong on our end."
}

func errorTitle(code int) string {
	if code == http.StatusNotFound {
		return "404 Not Found"
	}
	return "Server Error"
}
