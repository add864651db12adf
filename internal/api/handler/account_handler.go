package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/csemotors/dealership/internal/api/flash"
	"github.com/csemotors/dealership/internal/api/metrics"
	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
)

const lockTimeFormat = "Jan 2, 2006 3:04 PM"

// AccountHandler serves the account pages: login, registration, account
// home, profile and password updates, and the staff lockout views.
type AccountHandler struct {
	accounts ports.AccountService
	pages    *pageBuilder
	valid    *FormValidator
	ttl      time.Duration
}

func NewAccountHandler(accounts ports.AccountService, nav NavProvider, valid *FormValidator, ttl time.Duration, log zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		pages:    &pageBuilder{nav: nav, log: log},
		valid:    valid,
		ttl:      ttl,
	}
}

// ShowLogin renders the login page.
func (h *AccountHandler) ShowLogin(c echo.Context) error {
	return h.renderLogin(c, http.StatusOK, "", nil, "")
}

// Login authenticates the submitted credentials under the lockout policy
// and, on success, attaches a fresh session cookie.
func (h *AccountHandler) Login(c echo.Context) error {
	start := time.Now()

	var form loginForm
	if err := c.Bind(&form); err != nil {
		return h.renderLogin(c, http.StatusBadRequest, "", []string{"invalid form submission"}, "")
	}
	if msgs := h.valid.Check(&form); len(msgs) > 0 {
		return h.renderLogin(c, http.StatusBadRequest, form.Email, msgs, "")
	}

	tok, _, err := h.accounts.Login(c.Request().Context(), form.Email, form.Password)
	if err == nil {
		observeLogin("success", start)
		middleware.SetSessionCookie(c, tok, int(h.ttl.Seconds()))
		return c.Redirect(http.StatusSeeOther, "/account/")
	}

	var locked *domain.AccountLockedError
	var remaining *domain.AttemptsRemainingError
	switch {
	case errors.As(err, &locked):
		observeLogin("locked", start)
		msg := fmt.Sprintf("Account locked. Try again after %s.", locked.Until.Format(lockTimeFormat))
		return h.renderLogin(c, http.StatusLocked, form.Email, nil, msg)
	case errors.As(err, &remaining):
		observeLogin("invalid", start)
		return h.renderLogin(c, http.StatusBadRequest, form.Email, nil, remainingMessage(remaining.Remaining))
	case errors.Is(err, domain.ErrInvalidCredentials):
		observeLogin("invalid", start)
		return h.renderLogin(c, http.StatusBadRequest, form.Email, nil, "Invalid credentials.")
	default:
		observeLogin("error", start)
		return err
	}
}

func observeLogin(result string, start time.Time) {
	metrics.LoginAttemptsTotal.WithLabelValues(result).Inc()
	metrics.LoginDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
}

func remainingMessage(n int) string {
	if n == 1 {
		return "Invalid credentials. (1 attempt left)"
	}
	return fmt.Sprintf("Invalid credentials. (%d attempts left)", n)
}

func (h *AccountHandler) renderLogin(c echo.Context, status int, email string, errs []string, notice string) error {
	data := h.pages.data(c, "Login")
	data["Email"] = email
	if len(errs) > 0 {
		data["Errors"] = errs
	}
	if notice != "" {
		data["Notice"] = notice
	}
	return c.Render(status, "login", data)
}

// ShowRegister renders the registration page.
func (h *AccountHandler) ShowRegister(c echo.Context) error {
	return h.renderRegister(c, http.StatusOK, registerForm{}, nil)
}

// Register creates a Client account. Validation failures re-render the form
// with field-level errors and sticky values; the password is never echoed.
func (h *AccountHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		return h.renderRegister(c, http.StatusBadRequest, registerForm{}, []string{"invalid form submission"})
	}
	if msgs := h.valid.Check(&form); len(msgs) > 0 {
		return h.renderRegister(c, http.StatusBadRequest, form, msgs)
	}

	created, err := h.accounts.Register(c.Request().Context(), ports.RegisterInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return h.renderRegister(c, http.StatusBadRequest, form, []string{"email exists, please log in or use a different email"})
		}
		return err
	}

	metrics.RegistrationsTotal.Inc()
	flash.Set(c, fmt.Sprintf("Welcome %s, please log in.", created.FirstName))
	return c.Redirect(http.StatusSeeOther, "/account/login")
}

func (h *AccountHandler) renderRegister(c echo.Context, status int, form registerForm, errs []string) error {
	data := h.pages.data(c, "Register")
	data["FirstName"] = form.FirstName
	data["LastName"] = form.LastName
	data["Email"] = form.Email
	if len(errs) > 0 {
		data["Errors"] = errs
	}
	return c.Render(status, "register", data)
}

// Home renders the account landing page from the session claims alone.
func (h *AccountHandler) Home(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	data := h.pages.data(c, "Account Management")
	data["IsStaff"] = claims.Role == domain.RoleEmployee || claims.Role == domain.RoleAdmin
	return c.Render(http.StatusOK, "account", data)
}

// ShowUpdate renders the profile and password forms prefilled from the
// stored account, not the token, so stale claims never mask a concurrent
// change.
func (h *AccountHandler) ShowUpdate(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	acct, err := h.accounts.Account(c.Request().Context(), claims.AccountID)
	if err != nil {
		return err
	}
	return h.renderUpdate(c, http.StatusOK, acct.FirstName, acct.LastName, acct.Email, nil)
}

// UpdateProfile persists new identity fields and swaps in the reissued
// session cookie so the displayed name stays fresh without a re-login.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var form profileForm
	if err := c.Bind(&form); err != nil {
		return h.renderUpdate(c, http.StatusBadRequest, "", "", "", []string{"invalid form submission"})
	}
	if msgs := h.valid.Check(&form); len(msgs) > 0 {
		return h.renderUpdate(c, http.StatusBadRequest, form.FirstName, form.LastName, form.Email, msgs)
	}

	tok, _, err := h.accounts.UpdateProfile(c.Request().Context(), claims.AccountID, ports.ProfileInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return h.renderUpdate(c, http.StatusBadRequest, form.FirstName, form.LastName, form.Email,
				[]string{"email exists, please use a different email"})
		}
		return err
	}

	middleware.SetSessionCookie(c, tok, int(h.ttl.Seconds()))
	flash.Set(c, "Account information updated.")
	return c.Redirect(http.StatusSeeOther, "/account/")
}

// UpdatePassword rehashes and stores a new password. The old password is not
// required; the change rides on the session alone.
func (h *AccountHandler) UpdatePassword(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var form passwordForm
	if err := c.Bind(&form); err != nil {
		return h.renderUpdate(c, http.StatusBadRequest, claims.FirstName, claims.LastName, claims.Email, []string{"invalid form submission"})
	}
	if msgs := h.valid.Check(&form); len(msgs) > 0 {
		return h.renderUpdate(c, http.StatusBadRequest, claims.FirstName, claims.LastName, claims.Email, msgs)
	}

	tok, err := h.accounts.UpdatePassword(c.Request().Context(), claims.AccountID, form.Password)
	if err != nil {
		return err
	}

	middleware.SetSessionCookie(c, tok, int(h.ttl.Seconds()))
	flash.Set(c, "Password updated.")
	return c.Redirect(http.StatusSeeOther, "/account/")
}

func (h *AccountHandler) renderUpdate(c echo.Context, status int, firstName, lastName, email string, errs []string) error {
	data := h.pages.data(c, "Update Account")
	data["FirstName"] = firstName
	data["LastName"] = lastName
	data["Email"] = email
	if len(errs) > 0 {
		data["Errors"] = errs
	}
	return c.Render(status, "update", data)
}

// Logout clears the client-held credential. Calling it without a session is
// not an error.
func (h *AccountHandler) Logout(c echo.Context) error {
	middleware.ClearSessionCookie(c)
	flash.Set(c, "You have been logged out.")
	return c.Redirect(http.StatusSeeOther, "/")
}

// LockedList renders the operator triage table of currently locked accounts,
// most recently locked first.
func (h *AccountHandler) LockedList(c echo.Context) error {
	accounts, err := h.accounts.LockedAccounts(c.Request().Context())
	if err != nil {
		return err
	}

	data := h.pages.data(c, "Locked Accounts")
	data["Accounts"] = accounts
	return c.Render(http.StatusOK, "locked", data)
}

// Unlock is the operator override clearing an account's lockout state.
func (h *AccountHandler) Unlock(c echo.Context) error {
	id := c.Param("id")
	if err := h.accounts.Unlock(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			flash.Set(c, "Account not found.")
			return c.Redirect(http.StatusSeeOther, "/account/locked")
		}
		return err
	}

	metrics.AdminUnlocksTotal.Inc()
	flash.Set(c, "Account unlocked.")
	return c.Redirect(http.StatusSeeOther, "/account/locked")
}
