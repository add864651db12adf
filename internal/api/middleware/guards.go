package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/api/flash"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/token"
)

// RequireLogin rejects anonymous requests with a redirect to the login page.
// It only inspects the identity resolved by Session; it never touches the
// store.
func RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := c.Get(ClaimsKey).(*token.Claims); !ok {
			flash.Set(c, "Please log in.")
			return c.Redirect(http.StatusSeeOther, "/account/login")
		}
		return next(c)
	}
}

// RequireStaff additionally restricts a route to the Employee and Admin
// roles. Anonymous callers get the login redirect; authenticated callers
// with the wrong role get a distinct notice.
func RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(ClaimsKey).(*token.Claims)
		if !ok {
			flash.Set(c, "Please log in.")
			return c.Redirect(http.StatusSeeOther, "/account/login")
		}
		if claims.Role != domain.RoleEmployee && claims.Role != domain.RoleAdmin {
			flash.Set(c, "You must be an Employee or Admin to access that page.")
			return c.Redirect(http.StatusSeeOther, "/account/login")
		}
		return next(c)
	}
}
