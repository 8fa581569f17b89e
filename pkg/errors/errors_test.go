package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	originalErr := errors.New("badger closed")
	wrapped := Wrap(originalErr, CodeInternal, "internal error", http.StatusInternalServerError)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if !errors.Is(wrapped, originalErr) {
		t.Errorf("errors.Is should see through AppError")
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   NotFound("offer"),
			expected: "NOT_FOUND: offer not found",
		},
		{
			name:     "with underlying error",
			appErr:   Internal("internal error", errors.New("relay unreachable")),
			expected: "INTERNAL_ERROR: internal error (caused by: relay unreachable)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("booking"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("invalid", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad json"), CodeInvalidInput, http.StatusBadRequest},
		{"conflict", Conflict("in progress"), CodeConflict, http.StatusConflict},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("slow"), CodeTimeout, http.StatusGatewayTimeout},
		{"unavailable", Unavailable("lead store"), CodeUnavailable, http.StatusServiceUnavailable},
		{"rate limited", RateLimited("slow down"), CodeRateLimited, http.StatusTooManyRequests},
		{"payload too large", PayloadTooLarge(1024), CodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{"unsupported media type", UnsupportedMediaType("json only"), CodeUnsupportedMediaType, http.StatusUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode() = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestValidation_Details(t *testing.T) {
	err := Validation("validation failed", map[string]any{"field": "email"})
	if err.Details["field"] != "email" {
		t.Errorf("expected field 'email', got %v", err.Details["field"])
	}
}

func TestUnavailable_Message(t *testing.T) {
	if got := Unavailable("Lead store").Message; got != "Lead store is temporarily unavailable" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("offer")
	regularErr := errors.New("regular error")

	if result := AsAppError(appErr); result != appErr {
		t.Errorf("AsAppError() should return same AppError")
	}

	if result := AsAppError(fmt.Errorf("handler: %w", appErr)); result != appErr {
		t.Errorf("AsAppError() should find AppError in the chain")
	}

	result := AsAppError(regularErr)
	if result.Code != CodeInternal {
		t.Errorf("AsAppError() should wrap regular error as internal error")
	}
	if result.Err != regularErr {
		t.Errorf("AsAppError() should wrap the original error")
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(fmt.Errorf("wrapped: %w", Conflict("dup"))) {
		t.Errorf("IsAppError() should return true for wrapped AppError")
	}
	if IsAppError(errors.New("regular error")) {
		t.Errorf("IsAppError() should return false for regular error")
	}
}

func TestAppError_ToJSON(t *testing.T) {
	err := Internal("boom", errors.New("secret cause")).WithDetails(map[string]any{"id": "12345"})
	jsonStr := string(err.ToJSON())

	for _, want := range []string{`"code":"INTERNAL_ERROR"`, `"message":"boom"`, `"id":"12345"`} {
		if !strings.Contains(jsonStr, want) {
			t.Errorf("ToJSON() = %s, missing %s", jsonStr, want)
		}
	}
	if strings.Contains(jsonStr, "secret cause") {
		t.Errorf("ToJSON() leaked wrapped cause: %s", jsonStr)
	}
}
