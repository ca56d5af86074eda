package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "with wrapped error",
			err:  &AppError{Code: CodeNetwork, Message: "network error", Err: errors.New("connection refused")},
			want: "network error: connection refused",
		},
		{
			name: "without wrapped error",
			err:  &AppError{Code: CodeNotFound, Message: "attraction not found"},
			want: "attraction not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.want {
				t.Errorf("Error() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("inner error")
	appErr := &AppError{Code: CodeServer, Message: "something failed", Err: inner}

	if !errors.Is(appErr, inner) {
		t.Error("Unwrap() should allow errors.Is to find wrapped error")
	}

	appErr2 := &AppError{Code: CodeServer, Message: "no wrap"}
	if appErr2.Unwrap() != nil {
		t.Error("Unwrap() should return nil when Err is nil")
	}
}

func TestCodeForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   int
	}{
		{http.StatusUnauthorized, CodeUnauthorized},
		{http.StatusForbidden, CodeForbidden},
		{http.StatusNotFound, CodeNotFound},
		{http.StatusInternalServerError, CodeServer},
		{http.StatusBadGateway, CodeServer},
		{http.StatusBadRequest, CodeBusiness},
		{http.StatusConflict, CodeBusiness},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			if got := CodeForStatus(tt.status); got != tt.want {
				t.Errorf("CodeForStatus(%d) = %d; want %d", tt.status, got, tt.want)
			}
		})
	}
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"unauthorized sentinel", ErrUnauthorized, IsUnauthorized, true},
		{"forbidden from status", NewStatusError(http.StatusForbidden, "nope"), IsForbidden, true},
		{"not found wrapped", fmt.Errorf("load: %w", NewStatusError(http.StatusNotFound, "gone")), IsNotFound, true},
		{"server", NewStatusError(http.StatusServiceUnavailable, "down"), IsServer, true},
		{"network", NewAppError(CodeNetwork, "offline", errors.New("dial")), IsNetwork, true},
		{"request", ErrRequest, IsRequest, true},
		{"business", NewAppError(CodeBusiness, "username taken", nil), IsBusiness, true},
		{"validation", ErrValidation, IsValidation, true},
		{"plain error", errors.New("x"), IsNotFound, false},
		{"nil", nil, IsServer, false},
		{"code mismatch", ErrForbidden, IsUnauthorized, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("check(%v) = %v; want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestStatusCode(t *testing.T) {
	if got := StatusCode(NewStatusError(http.StatusTeapot, "tea")); got != http.StatusTeapot {
		t.Errorf("StatusCode() = %d; want %d", got, http.StatusTeapot)
	}
	if got := StatusCode(ErrNetwork); got != 0 {
		t.Errorf("StatusCode(network) = %d; want 0", got)
	}
	if got := StatusCode(errors.New("plain")); got != 0 {
		t.Errorf("StatusCode(plain) = %d; want 0", got)
	}
}
