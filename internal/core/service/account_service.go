package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/csemotors/dealership/internal/core/domain"
	"github.com/csemotors/dealership/internal/core/ports"
	"github.com/csemotors/dealership/internal/core/token"
)

// AccountService implements registration, login under the lockout policy,
// profile and password updates, and the operator unlock actions.
type AccountService struct {
	repo   ports.AccountRepository
	issuer *token.Issuer
	policy domain.LockoutPolicy
	audit  ports.AuditRecorder
	cost   int
	log    zerolog.Logger
	now    func() time.Time
}

func NewAccountService(
	repo ports.AccountRepository,
	issuer *token.Issuer,
	policy domain.LockoutPolicy,
	audit ports.AuditRecorder,
	bcryptCost int,
	log zerolog.Logger,
) *AccountService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AccountService{
		repo:   repo,
		issuer: issuer,
		policy: policy,
		audit:  audit,
		cost:   bcryptCost,
		log:    log,
		now:    time.Now,
	}
}

// Register creates a Client account. Input shape (names, email syntax,
// password strength) has already been validated at the edge; uniqueness is
// enforced here via the store.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	acct := &domain.Account{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        normalizeEmail(in.Email),
		PasswordHash: string(hash),
		Role:         domain.RoleClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, acct)
	if err != nil {
		return nil, err
	}

	s.audit.Record(domain.SecurityEvent{
		AccountID: created.ID,
		Email:     created.Email,
		Kind:      domain.EventRegistered,
		At:        now,
	})
	return created, nil
}

// Login verifies credentials under the lockout state machine and issues a
// session token on success.
//
// The order is fixed: unknown email first (generic failure), then the lock
// check, and only then the password comparison. A locked account refuses
// even a correct password.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	acct, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		// A store fault must never read as "credentials invalid" or
		// "not locked"; it propagates as a failure.
		return "", nil, fmt.Errorf("find account: %w", err)
	}

	now := s.now()
	if st := acct.LockState(); st.Active(now) {
		return "", nil, &domain.AccountLockedError{Until: st.LockedUntil.UTC()}
	}

	switch err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); {
	case err == nil:
		// fall through to the success path
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return "", nil, s.recordFailure(ctx, acct, now)
	default:
		// Corrupt stored hash or resource exhaustion, not a wrong
		// password. Do not count it against the account.
		return "", nil, fmt.Errorf("verify password: %w", err)
	}

	// The only path that clears the counter.
	if err := s.repo.ResetFailedAttempts(ctx, acct.ID); err != nil {
		return "", nil, fmt.Errorf("reset failed attempts: %w", err)
	}
	acct.FailedAttempts = 0
	acct.LockedUntil = nil

	tok, err := s.issuer.Issue(claimsFor(acct))
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return tok, acct, nil
}

// recordFailure bumps the failure counter in one atomic store step and turns
// the post-increment state into the caller-facing error.
func (s *AccountService) recordFailure(ctx context.Context, acct *domain.Account, now time.Time) error {
	st, err := s.repo.IncrementFailedAndMaybeLock(ctx, acct.ID, s.policy.MaxAttempts, s.policy.LockDuration)
	if err != nil {
		return fmt.Errorf("record failed attempt: %w", err)
	}

	kind := domain.EventLoginFailed
	if st.Active(now) {
		kind = domain.EventLockoutTriggered
		s.log.Warn().Str("account_id", acct.ID).Time("locked_until", *st.LockedUntil).Msg("account locked after repeated failures")
	}
	s.audit.Record(domain.SecurityEvent{
		AccountID: acct.ID,
		Email:     acct.Email,
		Kind:      kind,
		At:        now.UTC(),
	})

	return s.policy.FailureError(st, now)
}

func (s *AccountService) Account(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateProfile persists new identity fields after checking the email is not
// claimed by another account, then reissues the session token with fresh
// claims.
func (s *AccountService) UpdateProfile(ctx context.Context, id string, in ports.ProfileInput) (string, *domain.Account, error) {
	email := normalizeEmail(in.Email)
	taken, err := s.repo.EmailInUseByOther(ctx, email, id)
	if err != nil {
		return "", nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return "", nil, domain.ErrEmailExists
	}

	acct, err := s.repo.UpdateProfile(ctx, id, strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName), email)
	if err != nil {
		return "", nil, err
	}

	tok, err := s.issuer.Issue(claimsFor(acct))
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return tok, acct, nil
}

// UpdatePassword rehashes and stores the new password and reissues the
// session token. It deliberately does not demand the old password; the
// change is authorized by the session alone.
func (s *AccountService) UpdatePassword(ctx context.Context, id, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return "", err
	}

	acct, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	tok, err := s.issuer.Issue(claimsFor(acct))
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return tok, nil
}

func (s *AccountService) LockedAccounts(ctx context.Context) ([]*domain.Account, error) {
	return s.repo.ListLocked(ctx)
}

// Unlock is the operator override: counter zeroed, lock cleared. Idempotent.
func (s *AccountService) Unlock(ctx context.Context, id string) error {
	if err := s.repo.ForceUnlock(ctx, id); err != nil {
		return err
	}
	s.audit.Record(domain.SecurityEvent{
		AccountID: id,
		Kind:      domain.EventAdminUnlock,
		At:        s.now().UTC(),
	})
	return nil
}

func claimsFor(acct *domain.Account) token.Claims {
	return token.Claims{
		AccountID: acct.ID,
		FirstName: acct.FirstName,
		LastName:  acct.LastName,
		Email:     acct.Email,
		Role:      acct.Role,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
