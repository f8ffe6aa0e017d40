package handler

import (
	"errors"
	"strings"
	"testing"

	"github.com/storerate/rating-api/internal/core/domain"
)

func TestValidator_PasswordRule(t *testing.T) {
	v := NewValidator()
	cases := map[string]bool{
		"Passw0rd!":         true,
		"A!bcdefg":          true,
		"Abcdefghijklmno#":  true,
		"A!bcdef":           false,
		"Abcdefghijklmnop#": false,
		"password!":         false,
		"Password1":         false,
		"PASSWORD WITH":     false,
	}
	for pw, want := range cases {
		err := v.Validate(&changePasswordRequest{OldPassword: "x", NewPassword: pw})
		if (err == nil) != want {
			t.Errorf("password %q: valid=%v, want %v (err=%v)", pw, err == nil, want, err)
		}
	}
}

func TestValidator_MessagesUseJSONNames(t *testing.T) {
	err := NewValidator().Validate(&rateRequest{Rating: 9})
	if !errors.Is(err, domain.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "storeId is required") || !strings.Contains(msg, "rating must be at most 5") {
		t.Fatalf("unexpected message %q", msg)
	}
}
