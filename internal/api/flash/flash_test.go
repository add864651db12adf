package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestSetAndTake(t *testing.T) {
	e := echo.New()

	// Set on the first response.
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	Set(c, "Account unlocked.")

	var notice *http.Cookie
	for _, sc := range rec.Result().Cookies() {
		if sc.Name == cookieName {
			notice = sc
		}
	}
	if notice == nil {
		t.Fatalf("expected a notice cookie")
	}

	// Take on the next request.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(notice)
	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(req, rec2)

	if got := Take(c2); got != "Account unlocked." {
		t.Fatalf("expected the notice back, got %q", got)
	}

	cleared := false
	for _, sc := range rec2.Result().Cookies() {
		if sc.Name == cookieName && sc.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("taking the notice should clear the cookie")
	}
}

func TestTake_NoNotice(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if got := Take(c); got != "" {
		t.Fatalf("expected no notice, got %q", got)
	}
}
