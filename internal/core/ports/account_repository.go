package ports

import (
	"context"
	"time"

	"github.com/csemotors/dealership/internal/core/domain"
)

// AccountRepository is the persistence boundary for accounts and their
// lockout counters. Implementations map store-specific errors to the domain
// sentinels; no store vocabulary leaks upward.
type AccountRepository interface {
	Create(ctx context.Context, acct *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, id, firstName, lastName, email string) (*domain.Account, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	EmailInUseByOther(ctx context.Context, email, excludingID string) (bool, error)

	// IncrementFailedAndMaybeLock bumps the failure counter and, when the
	// new count reaches maxAttempts, sets the lock expiry to now + lockFor.
	// The increment and the lock decision must execute as one atomic
	// read-modify-write at the store, so concurrent failures cannot both
	// slip under the threshold. Returns the post-increment state.
	IncrementFailedAndMaybeLock(ctx context.Context, id string, maxAttempts int, lockFor time.Duration) (domain.LockState, error)

	// ResetFailedAttempts zeroes the counter and clears any lock. Called on
	// successful login only.
	ResetFailedAttempts(ctx context.Context, id string) error

	// ListLocked returns accounts whose lock is still in force, most
	// recently locked first.
	ListLocked(ctx context.Context) ([]*domain.Account, error)

	// ForceUnlock is the operator override: counter to zero, lock cleared,
	// whatever the current state.
	ForceUnlock(ctx context.Context, id string) error
}
