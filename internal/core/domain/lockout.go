package domain

import "time"

const (
	DefaultMaxAttempts  = 5
	DefaultLockDuration = 15 * time.Minute
)

// LockoutPolicy decides when repeated login failures lock an account and for
// how long. The counter increment itself happens at the store in one atomic
// step; the policy only interprets the resulting state.
type LockoutPolicy struct {
	MaxAttempts  int
	LockDuration time.Duration
}

func NewLockoutPolicy(maxAttempts int, lockDuration time.Duration) LockoutPolicy {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if lockDuration <= 0 {
		lockDuration = DefaultLockDuration
	}
	return LockoutPolicy{MaxAttempts: maxAttempts, LockDuration: lockDuration}
}

// LockState is the lockout bookkeeping carried on an account row.
type LockState struct {
	FailedAttempts int
	LockedUntil    *time.Time
}

// Active reports whether a lock is in force at now. An expired lock is
// treated as no lock; expiry is lazy, there is no timer clearing it.
func (s LockState) Active(now time.Time) bool {
	return s.LockedUntil != nil && s.LockedUntil.After(now)
}

// Remaining returns how many more failed attempts the account can absorb
// before the lock triggers. Never negative.
func (p LockoutPolicy) Remaining(failedAttempts int) int {
	r := p.MaxAttempts - failedAttempts
	if r < 0 {
		return 0
	}
	return r
}

// FailureError translates the post-increment state of a failed login into
// the error shown to the caller: the unlock time when this attempt triggered
// the lock, otherwise the number of attempts left.
func (p LockoutPolicy) FailureError(s LockState, now time.Time) error {
	if s.Active(now) {
		return &AccountLockedError{Until: s.LockedUntil.UTC()}
	}
	return &AttemptsRemainingError{Remaining: p.Remaining(s.FailedAttempts)}
}
