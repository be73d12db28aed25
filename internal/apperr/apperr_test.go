package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	err := NotFoundf("recipe %s not found", "abc")
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected NotFoundf to match ErrNotFound")
	}
	if errors.Is(err, ErrForbidden) {
		t.Error("NotFound should not match ErrForbidden")
	}
	if err.Error() != "recipe abc not found" {
		t.Errorf("Error() = %q, want %q", err.Error(), "recipe abc not found")
	}
}

func TestIsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("toggle item: %w", Validation("invalid item index"))
	if !errors.Is(wrapped, ErrValidation) {
		t.Error("expected wrapped validation error to match ErrValidation")
	}
	if CodeOf(wrapped) != CodeValidation {
		t.Errorf("CodeOf = %q, want %q", CodeOf(wrapped), CodeValidation)
	}
}

func TestCodeOfForeignError(t *testing.T) {
	if got := CodeOf(errors.New("disk full")); got != CodeInternal {
		t.Errorf("CodeOf = %q, want %q", got, CodeInternal)
	}
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("database is locked")
	err := Internal("failed to save recipe", cause)
	if !errors.Is(err, cause) {
		t.Error("expected Internal to unwrap to its cause")
	}
	if err.Message != "failed to save recipe" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeForbidden, http.StatusForbidden},
		{CodeValidation, http.StatusBadRequest},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeConflict, http.StatusConflict},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestWithDetails(t *testing.T) {
	details := map[string]string{"title": "title is required"}
	err := ErrValidation.WithDetails(details)
	if err.Details == nil {
		t.Fatal("expected details")
	}
	if ErrValidation.Details != nil {
		t.Error("WithDetails must not mutate the sentinel")
	}
}
