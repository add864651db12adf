// Package flash carries one-shot notices across a redirect using a short
// lived cookie, read and cleared on the next page render.
package flash

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

const cookieName = "notice"

// Set stores a notice to be shown on the next rendered page.
func Set(c echo.Context, message string) {
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    url.QueryEscape(message),
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
	})
}

// Take returns the pending notice, if any, and clears it.
func Take(c echo.Context) string {
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}
