package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewLockoutPolicy_Defaults(t *testing.T) {
	p := NewLockoutPolicy(0, 0)
	if p.MaxAttempts != DefaultMaxAttempts {
		t.Fatalf("expected %d max attempts, got %d", DefaultMaxAttempts, p.MaxAttempts)
	}
	if p.LockDuration != DefaultLockDuration {
		t.Fatalf("expected %s lock duration, got %s", DefaultLockDuration, p.LockDuration)
	}
}

func TestLockState_Active(t *testing.T) {
	now := time.Now()

	if (LockState{}).Active(now) {
		t.Fatalf("no lock expiry should never be active")
	}

	future := now.Add(10 * time.Minute)
	if !(LockState{LockedUntil: &future}).Active(now) {
		t.Fatalf("future expiry should be active")
	}

	past := now.Add(-time.Minute)
	if (LockState{LockedUntil: &past}).Active(now) {
		t.Fatalf("expired lock should not be active")
	}
}

func TestLockoutPolicy_Remaining(t *testing.T) {
	p := NewLockoutPolicy(5, 15*time.Minute)

	cases := []struct {
		failed int
		want   int
	}{
		{0, 5},
		{1, 4},
		{4, 1},
		{5, 0},
		{9, 0}, // never negative
	}
	for _, tc := range cases {
		if got := p.Remaining(tc.failed); got != tc.want {
			t.Fatalf("Remaining(%d) = %d, want %d", tc.failed, got, tc.want)
		}
	}
}

func TestLockoutPolicy_FailureError_Remaining(t *testing.T) {
	p := NewLockoutPolicy(5, 15*time.Minute)
	now := time.Now()

	err := p.FailureError(LockState{FailedAttempts: 2}, now)
	var remaining *AttemptsRemainingError
	if !errors.As(err, &remaining) {
		t.Fatalf("expected AttemptsRemainingError, got %v", err)
	}
	if remaining.Remaining != 3 {
		t.Fatalf("expected 3 remaining, got %d", remaining.Remaining)
	}
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("a pre-lock failure should unwrap to ErrInvalidCredentials")
	}
}

func TestLockoutPolicy_FailureError_Locked(t *testing.T) {
	p := NewLockoutPolicy(5, 15*time.Minute)
	now := time.Now()
	until := now.Add(15 * time.Minute)

	err := p.FailureError(LockState{FailedAttempts: 5, LockedUntil: &until}, now)
	var locked *AccountLockedError
	if !errors.As(err, &locked) {
		t.Fatalf("expected AccountLockedError, got %v", err)
	}
	if !locked.Until.Equal(until.UTC()) {
		t.Fatalf("expected unlock time %s, got %s", until.UTC(), locked.Until)
	}
	if errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("a lock refusal must not read as invalid credentials")
	}
}

func TestAttemptsRemainingError_SingularPlural(t *testing.T) {
	if got := (&AttemptsRemainingError{Remaining: 1}).Error(); got != "invalid credentials (1 attempt left)" {
		t.Fatalf("unexpected singular message: %q", got)
	}
	if got := (&AttemptsRemainingError{Remaining: 3}).Error(); got != "invalid credentials (3 attempts left)" {
		t.Fatalf("unexpected plural message: %q", got)
	}
}

func TestAccount_IsStaff(t *testing.T) {
	for role, want := range map[string]bool{
		RoleClient:   false,
		RoleEmployee: true,
		RoleAdmin:    true,
	} {
		a := Account{Role: role}
		if a.IsStaff() != want {
			t.Fatalf("IsStaff(%s) = %v, want %v", role, a.IsStaff(), want)
		}
	}
}
