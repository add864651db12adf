package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/dealership/internal/core/token"
)

func sessionRequest(t *testing.T, cookie string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true
		return c.NoContent(http.StatusOK)
	}
}

func TestSession_NoCookieIsAnonymous(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)
	c, _ := sessionRequest(t, "")

	var called bool
	if err := Session(issuer)(okHandler(&called))(c); err != nil {
		t.Fatalf("middleware failed: %v", err)
	}
	if !called {
		t.Fatalf("anonymous request should reach the handler")
	}
	if _, ok := c.Get(ClaimsKey).(*token.Claims); ok {
		t.Fatalf("anonymous request must carry no claims")
	}
}

func TestSession_ValidCookieSetsClaims(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)
	raw, err := issuer.Issue(token.Claims{AccountID: "acct_1", Email: "alice@example.com", Role: "Client"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, _ := sessionRequest(t, raw)
	var called bool
	if err := Session(issuer)(okHandler(&called))(c); err != nil {
		t.Fatalf("middleware failed: %v", err)
	}
	if !called {
		t.Fatalf("authenticated request should reach the handler")
	}
	claims, ok := c.Get(ClaimsKey).(*token.Claims)
	if !ok || claims.AccountID != "acct_1" {
		t.Fatalf("expected resolved claims, got %+v", c.Get(ClaimsKey))
	}
}

func TestSession_InvalidCookieClearsAndRedirects(t *testing.T) {
	issuer := token.NewIssuer("secret", time.Hour)
	forged, err := token.NewIssuer("other-secret", time.Hour).Issue(token.Claims{AccountID: "acct_1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	c, rec := sessionRequest(t, forged)
	var called bool
	if err := Session(issuer)(okHandler(&called))(c); err != nil {
		t.Fatalf("middleware failed: %v", err)
	}
	if called {
		t.Fatalf("a bad cookie must not reach the handler")
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/account/login" {
		t.Fatalf("expected redirect to login, got %d %s", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	cleared := false
	for _, sc := range rec.Result().Cookies() {
		if sc.Name == CookieName && sc.Value == "" && sc.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected the stale session cookie to be cleared, got %v", rec.Header().Values("Set-Cookie"))
	}
}

func TestSetSessionCookie(t *testing.T) {
	c, rec := sessionRequest(t, "")
	SetSessionCookie(c, "signed-token", 3600)

	var found *http.Cookie
	for _, sc := range rec.Result().Cookies() {
		if sc.Name == CookieName {
			found = sc
		}
	}
	if found == nil {
		t.Fatalf("expected a session cookie, got %v", rec.Header().Values("Set-Cookie"))
	}
	if found.Value != "signed-token" || !found.HttpOnly || found.Path != "/" || found.MaxAge != 3600 {
		t.Fatalf("unexpected cookie attributes: %+v", found)
	}
	if !strings.Contains(rec.Header().Get("Set-Cookie"), "SameSite=Lax") {
		t.Fatalf("expected SameSite=Lax, got %q", rec.Header().Get("Set-Cookie"))
	}
}
