package token

import (
	"errors"
	"testing"
	"time"
)

func testClaims() Claims {
	return Claims{
		AccountID: "acct_1",
		FirstName: "Alice",
		LastName:  "Anderson",
		Email:     "alice@example.com",
		Role:      "Client",
	}
}

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	raw, err := issuer.Issue(testClaims())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	got, err := issuer.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	want := testClaims()
	if got.AccountID != want.AccountID ||
		got.FirstName != want.FirstName ||
		got.LastName != want.LastName ||
		got.Email != want.Email ||
		got.Role != want.Role {
		t.Fatalf("claims did not round-trip: %+v", got)
	}
}

func TestIssuer_Expiry(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	base := time.Now()
	issuer.now = func() time.Time { return base }

	raw, err := issuer.Issue(testClaims())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Still valid just inside the TTL.
	issuer.now = func() time.Time { return base.Add(59 * time.Minute) }
	if _, err := issuer.Verify(raw); err != nil {
		t.Fatalf("token should still verify before expiry: %v", err)
	}

	// Rejected after the TTL.
	issuer.now = func() time.Time { return base.Add(61 * time.Minute) }
	if _, err := issuer.Verify(raw); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid after expiry, got %v", err)
	}
}

func TestIssuer_WrongSecret(t *testing.T) {
	raw, err := NewIssuer("secret-a", time.Hour).Issue(testClaims())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewIssuer("secret-b", time.Hour).Verify(raw); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid for wrong secret, got %v", err)
	}
}

func TestIssuer_Malformed(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := issuer.Verify(raw); !errors.Is(err, ErrInvalid) {
			t.Fatalf("expected ErrInvalid for %q, got %v", raw, err)
		}
	}
}

func TestNewIssuer_DefaultTTL(t *testing.T) {
	if got := NewIssuer("secret", 0).TTL(); got != time.Hour {
		t.Fatalf("expected 1h default TTL, got %s", got)
	}
}
