package apperror

import (
	"errors"
	"testing"
)

func TestSentinelMatching(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{"NotFound wraps ErrNotFound", NotFound("item", "abc"), ErrNotFound, true},
		{"Validation wraps ErrValidation", Validation(map[string]string{"title": "is required"}), ErrValidation, true},
		{"Declined wraps ErrDeclined", Declined("wrong code"), ErrDeclined, true},
		{"Forbidden wraps ErrForbidden", Forbidden("not the owner"), ErrForbidden, true},
		{"Unauthorized wraps ErrUnauthorized", Unauthorized(""), ErrUnauthorized, true},
		{"Conflict wraps ErrConflict", Conflict("user", "mail@example.com"), ErrConflict, true},
		{"Declined is not NotFound", Declined("wrong code"), ErrNotFound, false},
		{"NotFound is not Declined", NotFound("item", "abc"), ErrDeclined, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestMessages(t *testing.T) {
	if got := NotFound("item", "42").Error(); got != "item not found: 42" {
		t.Errorf("unexpected message: %q", got)
	}
	if got := Unauthorized("").Error(); got != "unauthorized" {
		t.Errorf("unexpected default message: %q", got)
	}
	ae := Validation(map[string]string{"email": "must be a valid email"})
	details, ok := ae.Details.(map[string]string)
	if !ok || details["email"] == "" {
		t.Errorf("validation details lost: %#v", ae.Details)
	}
}
