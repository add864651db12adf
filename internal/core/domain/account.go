package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	RoleClient   = "Client"
	RoleEmployee = "Employee"
	RoleAdmin    = "Admin"
)

// Account models a registered dealership user, including the lockout
// bookkeeping mutated by failed logins.
type Account struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           string    `json:"role"`
	FailedAttempts int       `json:"failed_attempts"`
	LockedUntil    *time.Time `json:"locked_until,omitempty"` // nil = not locked
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsStaff reports whether the account may reach inventory-management and
// lockout-administration pages.
func (a *Account) IsStaff() bool {
	return a.Role == RoleEmployee || a.Role == RoleAdmin
}

// LockState extracts the lockout counters for policy decisions.
func (a *Account) LockState() LockState {
	return LockState{FailedAttempts: a.FailedAttempts, LockedUntil: a.LockedUntil}
}

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password, so a caller cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already in use")
	ErrAccountNotFound    = errors.New("account not found")
)

// AccountLockedError refuses a login while a lock is in force, regardless of
// password correctness.
type AccountLockedError struct {
	Until time.Time
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account locked, try again after %s", e.Until.Format(time.RFC1123))
}

// AttemptsRemainingError is a failed login that has not yet triggered a lock.
type AttemptsRemainingError struct {
	Remaining int
}

func (e *AttemptsRemainingError) Error() string {
	if e.Remaining == 1 {
		return "invalid credentials (1 attempt left)"
	}
	return fmt.Sprintf("invalid credentials (%d attempts left)", e.Remaining)
}

func (e *AttemptsRemainingError) Unwrap() error { return ErrInvalidCredentials }
