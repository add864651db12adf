package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/api/view"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

// stubAccounts implements ports.AccountService with overridable behavior per
// test.
type stubAccounts struct {
	loginFn    func(ctx context.Context, email, password string) (string, *domain.Account, error)
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.Account, error)
	unlockFn   func(ctx context.Context, id string) error
	lockedFn   func(ctx context.Context) ([]*domain.Account, error)
}

func (s *stubAccounts) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAccounts) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAccounts) Account(context.Context, string) (*domain.Account, error) {
	return nil, domain.ErrAccountNotFound
}

func (s *stubAccounts) UpdateProfile(context.Context, string, ports.ProfileInput) (string, *domain.Account, error) {
	return "", nil, domain.ErrAccountNotFound
}

func (s *stubAccounts) UpdatePassword(context.Context, string, string) (string, error) {
	return "", domain.ErrAccountNotFound
}

func (s *stubAccounts) LockedAccounts(ctx context.Context) ([]*domain.Account, error) {
	if s.lockedFn != nil {
		return s.lockedFn(ctx)
	}
	return nil, nil
}

func (s *stubAccounts) Unlock(ctx context.Context, id string) error {
	return s.unlockFn(ctx, id)
}

type stubNav struct{}

func (stubNav) Nav(context.Context) ([]*domain.Classification, error) {
	return []*domain.Classification{{ID: "class_1", Name: "SUV"}}, nil
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = renderer
	return e
}

func newAccountHandler(accounts ports.AccountService) *AccountHandler {
	return NewAccountHandler(accounts, stubNav{}, NewFormValidator(), time.Hour, zerolog.Nop())
}

func postForm(e *echo.Echo, target string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func loginValues(email, password string) url.Values {
	return url.Values{
		"account_email":    {email},
		"account_password": {password},
	}
}

func TestAccountHandler_Login_Success(t *testing.T) {
	e := newTestEcho(t)
	h := newAccountHandler(&stubAccounts{
		loginFn: func(_ context.Context, email, password string) (string, *domain.Account, error) {
			if email != "alice@example.com" || password != "Sup3r$ecretPass" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return "signed-token", &domain.Account{ID: "acct_1"}, nil
		},
	})

	c, rec := postForm(e, "/account/login", loginValues("alice@example.com", "Sup3r$ecretPass"))
	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/account/" {
		t.Fatalf("expected redirect to account home, got %d %s", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	var session *http.Cookie
	for _, sc := range rec.Result().Cookies() {
		if sc.Name == middleware.CookieName {
			session = sc
		}
	}
	if session == nil || session.Value != "signed-token" || !session.HttpOnly {
		t.Fatalf("expected an httpOnly session cookie, got %+v", session)
	}
}

func TestAccountHandler_Login_RemainingAttempts(t *testing.T) {
	e := newTestEcho(t)

	cases := []struct {
		remaining int
		want      string
	}{
		{4, "Invalid credentials. (4 attempts left)"},
		{1, "Invalid credentials. (1 attempt left)"},
	}
	for _, tc := range cases {
		h := newAccountHandler(&stubAccounts{
			loginFn: func(context.Context, string, string) (string, *domain.Account, error) {
				return "", nil, &domain.AttemptsRemainingError{Remaining: tc.remaining}
			},
		})

		c, rec := postForm(e, "/account/login", loginValues("alice@example.com", "wrong"))
		if err := h.Login(c); err != nil {
			t.Fatalf("login failed: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), tc.want) {
			t.Fatalf("page should show %q, got:\n%s", tc.want, rec.Body.String())
		}
		// Sticky email on a failed attempt.
		if !strings.Contains(rec.Body.String(), "alice@example.com") {
			t.Fatalf("page should keep the submitted email")
		}
	}
}

func TestAccountHandler_Login_Locked(t *testing.T) {
	e := newTestEcho(t)
	until := time.Date(2026, 8, 30, 15, 4, 0, 0, time.UTC)
	h := newAccountHandler(&stubAccounts{
		loginFn: func(context.Context, string, string) (string, *domain.Account, error) {
			return "", nil, &domain.AccountLockedError{Until: until}
		},
	})

	c, rec := postForm(e, "/account/login", loginValues("alice@example.com", "Sup3r$ecretPass"))
	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusLocked {
		t.Fatalf("expected 423, got %d", rec.Code)
	}
	if want := "Account locked. Try again after Aug 30, 2026 3:04 PM."; !strings.Contains(rec.Body.String(), want) {
		t.Fatalf("page should show %q, got:\n%s", want, rec.Body.String())
	}
}

func TestAccountHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho(t)
	h := newAccountHandler(&stubAccounts{
		loginFn: func(context.Context, string, string) (string, *domain.Account, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	})

	c, rec := postForm(e, "/account/login", loginValues("ghost@example.com", "whatever"))
	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "Invalid credentials.") {
		t.Fatalf("expected the generic failure message, got %d:\n%s", rec.Code, rec.Body.String())
	}
}

func TestAccountHandler_Login_ValidationFailure(t *testing.T) {
	e := newTestEcho(t)
	h := newAccountHandler(&stubAccounts{
		loginFn: func(context.Context, string, string) (string, *domain.Account, error) {
			t.Fatalf("service must not be called on a validation failure")
			return "", nil, nil
		},
	})

	c, rec := postForm(e, "/account/login", loginValues("not-an-email", "pw"))
	if err := h.Login(c); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "must be a valid email address") {
		t.Fatalf("expected a field error, got:\n%s", rec.Body.String())
	}
}

func registerValues() url.Values {
	return url.Values{
		"account_firstname": {"Alice"},
		"account_lastname":  {"Anderson"},
		"account_email":     {"alice@example.com"},
		"account_password":  {"Sup3r$ecretPass"},
	}
}

func TestAccountHandler_Register_Success(t *testing.T) {
	e := newTestEcho(t)
	h := newAccountHandler(&stubAccounts{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*domain.Account, error) {
			return &domain.Account{ID: "acct_1", FirstName: in.FirstName, Email: in.Email}, nil
		},
	})

	c, rec := postForm(e, "/account/register", registerValues())
	if err := h.Register(c); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/account/login" {
		t.Fatalf("expected redirect to login, got %d %s", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	notice := ""
	for _, sc := range rec.Result().Cookies() {
		if sc.Name == "notice" {
			notice, _ = url.QueryUnescape(sc.Value)
		}
	}
	if notice != "Welcome Alice, please log in." {
		t.Fatalf("unexpected flash notice: %q", notice)
	}
}

func TestAccountHandler_Register_DuplicateEmail(t *testing.T) {
	e := newTestEcho(t)
	h := newAccountHandler(&stubAccounts{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.Account, error) {
			return nil, domain.ErrEmailExists
		},
	})

	c, rec := postForm(e, "/account/register", registerValues())
	if err := h.Register(c); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "email exists, please log in or use a different email") {
		t.Fatalf("expected the duplicate-email message, got:\n%s", body)
	}
	// Sticky fields, but never the password.
	if !strings.Contains(body, "Alice") || !strings.Contains(body, "alice@example.com") {
		t.Fatalf("expected sticky form values, got:\n%s", body)
	}
	if strings.Contains(body, "Sup3r$ecretPass") {
		t.Fatalf("the password must never be echoed back")
	}
}

func TestAccountHandler_Register_WeakPassword(t *testing.T) {
	e := newTestEcho(t)
	h := newAccountHandler(&stubAccounts{
		registerFn: func(context.Context, ports.RegisterInput) (*domain.Account, error) {
			t.Fatalf("service must not be called on a validation failure")
			return nil, nil
		},
	})

	form := registerValues()
	form.Set("account_password", "weakpassword")
	c, rec := postForm(e, "/account/register", form)
	if err := h.Register(c); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "password must be 12 to 72 characters") {
		t.Fatalf("expected the password-policy message, got %d:\n%s", rec.Code, rec.Body.String())
	}
}

func TestAccountHandler_Unlock(t *testing.T) {
	e := newTestEcho(t)

	var unlocked string
	h := newAccountHandler(&stubAccounts{
		unlockFn: func(_ context.Context, id string) error {
			unlocked = id
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/account/unlock/acct_9", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("acct_9")

	if err := h.Unlock(c); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
	if unlocked != "acct_9" {
		t.Fatalf("expected unlock of acct_9, got %q", unlocked)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/account/locked" {
		t.Fatalf("expected redirect back to the locked list, got %d %s", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestAccountHandler_Unlock_NotFound(t *testing.T) {
	e := newTestEcho(t)
	h := newAccountHandler(&stubAccounts{
		unlockFn: func(context.Context, string) error {
			return domain.ErrAccountNotFound
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/account/unlock/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Unlock(c); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/account/locked" {
		t.Fatalf("expected redirect back to the locked list, got %d", rec.Code)
	}

	notice := ""
	for _, sc := range rec.Result().Cookies() {
		if sc.Name == "notice" {
			notice, _ = url.QueryUnescape(sc.Value)
		}
	}
	if notice != "Account not found." {
		t.Fatalf("unexpected flash notice: %q", notice)
	}
}

func TestAccountHandler_Logout(t *testing.T) {
	e := newTestEcho(t)
	h := newAccountHandler(&stubAccounts{})

	req := httptest.NewRequest(http.MethodGet, "/account/logout", nil)
	rec := httptest.NewRecorder()
	if err := h.Logout(e.NewContext(req, rec)); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("expected redirect home, got %d %s", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	cleared := false
	for _, sc := range rec.Result().Cookies() {
		if sc.Name == middleware.CookieName && sc.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("expected the session cookie to be cleared, got %v", rec.Header().Values("Set-Cookie"))
	}
}
