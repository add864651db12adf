package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/core/token"
)

const (
	// ClaimsKey is the echo context key under which Session stores the
	// resolved caller identity.
	ClaimsKey = "claims"

	// CookieName is the session cookie carrying the signed token.
	CookieName = "jwt"
)

// Session resolves the caller's identity from the session cookie, once per
// request. No cookie means an anonymous request and the chain simply
// continues; a cookie that fails verification clears the stale credential
// and redirects to the login page.
func Session(verifier *token.Issuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			claims, err := verifier.Verify(cookie.Value)
			if err != nil {
				ClearSessionCookie(c)
				return c.Redirect(http.StatusSeeOther, "/account/login")
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// SetSessionCookie attaches a freshly issued token to the response. maxAge
// should match the token TTL.
func SetSessionCookie(c echo.Context, tok string, maxAgeSeconds int) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    tok,
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie drops the client-held credential. Safe to call when no
// cookie is present.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
