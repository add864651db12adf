package ports

import (
	"context"

	"github.com/csemotors/dealership/internal/core/domain"
)

// RegisterInput carries a validated registration form. The password arrives
// in plaintext and is hashed inside the service.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// ProfileInput carries a validated profile-update form.
type ProfileInput struct {
	FirstName string
	LastName  string
	Email     string
}

type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, error)

	// Login verifies credentials under the lockout policy and, on success,
	// returns a fresh session token alongside the account.
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)

	Account(ctx context.Context, id string) (*domain.Account, error)

	// UpdateProfile persists new identity fields and reissues the session
	// token so the displayed claims stay fresh without a re-login.
	UpdateProfile(ctx context.Context, id string, in ProfileInput) (string, *domain.Account, error)

	// UpdatePassword rehashes and stores the new password, then reissues
	// the session token.
	UpdatePassword(ctx context.Context, id, password string) (string, error)

	LockedAccounts(ctx context.Context) ([]*domain.Account, error)
	Unlock(ctx context.Context, id string) error
}
