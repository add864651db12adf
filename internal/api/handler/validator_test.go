package handler

import (
	"strings"
	"testing"
)

func TestFormValidator_StrongPassword(t *testing.T) {
	fv := NewFormValidator()

	cases := []struct {
		name     string
		password string
		valid    bool
	}{
		{"meets policy", "Sup3r$ecretPass", true},
		{"too short", "Ab1$efgh", false},
		{"no uppercase", "sup3r$ecretpass", false},
		{"no lowercase", "SUP3R$ECRETPASS", false},
		{"no digit", "Super$ecretPass", false},
		{"no symbol", "Sup3rSecretPass", false},
		{"long but plain", "justlowercaseletters", false},
		{"at bcrypt input limit", strings.Repeat("Ab1$", 18), true},
		{"over bcrypt input limit", strings.Repeat("Ab1$", 19), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := passwordForm{Password: tc.password}
			msgs := fv.Check(&form)
			if tc.valid && len(msgs) != 0 {
				t.Fatalf("expected %q to pass, got %v", tc.password, msgs)
			}
			if !tc.valid && len(msgs) == 0 {
				t.Fatalf("expected %q to fail", tc.password)
			}
		})
	}
}

func TestFormValidator_LoginForm(t *testing.T) {
	fv := NewFormValidator()

	msgs := fv.Check(&loginForm{Email: "not-an-email", Password: "x"})
	if len(msgs) != 1 || !strings.Contains(msgs[0], "valid email address") {
		t.Fatalf("unexpected messages: %v", msgs)
	}

	msgs = fv.Check(&loginForm{})
	if len(msgs) != 2 {
		t.Fatalf("expected one message per missing field, got %v", msgs)
	}

	if msgs := fv.Check(&loginForm{Email: "alice@example.com", Password: "pw"}); msgs != nil {
		t.Fatalf("expected a valid form, got %v", msgs)
	}
}

func TestFormValidator_Validate(t *testing.T) {
	fv := NewFormValidator()

	if err := fv.Validate(&loginForm{Email: "alice@example.com", Password: "pw"}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	err := fv.Validate(&loginForm{})
	if err == nil || !strings.Contains(err.Error(), "; ") {
		t.Fatalf("expected joined field errors, got %v", err)
	}
}
