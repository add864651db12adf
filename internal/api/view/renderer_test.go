package view

import (
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestNewRenderer_ParsesAllPages(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	for _, name := range []string{"home", "login", "register", "account", "update", "locked", "classification", "detail", "management"} {
		if _, ok := r.pages[name]; !ok {
			t.Fatalf("missing page template %q", name)
		}
	}
}

func TestRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	if err := r.Render(&strings.Builder{}, "no-such-page", nil, nil); err == nil {
		t.Fatalf("expected an error for an unknown template")
	}
}

func TestRenderer_LoginPage(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	var buf strings.Builder
	data := echo.Map{
		"Title":  "Login",
		"Email":  "alice@example.com",
		"Notice": "Please log in.",
	}
	if err := r.Render(&buf, "login", data, nil); err != nil {
		t.Fatalf("render login: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "alice@example.com") {
		t.Fatalf("expected the sticky email in the page:\n%s", out)
	}
	if !strings.Contains(out, "Please log in.") {
		t.Fatalf("expected the notice in the page:\n%s", out)
	}
}
