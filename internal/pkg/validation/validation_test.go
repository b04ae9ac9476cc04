package validation

import (
	"strings"
	"testing"
)

type form struct {
	Email string `validate:"required,email"`
	Role  string `validate:"required,oneof=donor ngo"`
	Pass  string `validate:"required,min=6"`
}

func TestValidate_OK(t *testing.T) {
	if err := New().Validate(&form{Email: "a@b.com", Role: "ngo", Pass: "secret1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Messages(t *testing.T) {
	err := New().Validate(&form{Email: "nope", Role: "guest"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"email must be a valid email", "role must be one of: donor ngo", "pass is required"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}
