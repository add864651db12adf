package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/core/token"
)

// ctxClaims extracts the identity resolved by the Session middleware.
// Presence proves both that the middleware ran and that the guard admitted
// the request; a miss here means a route was wired without its guard.
func ctxClaims(c echo.Context) (*token.Claims, error) {
	claims, ok := c.Get(middleware.ClaimsKey).(*token.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
