package domain

import (
	"errors"
	"net/http"
)

// Error codes for client-side failures.
const (
	CodeUnauthorized = 1
	CodeForbidden    = 2
	CodeNotFound     = 3
	CodeServer       = 4
	CodeNetwork      = 5
	CodeRequest      = 6
	CodeBusiness     = 7
	CodeValidation   = 8
)

// AppError represents a failed API call with a category code, the HTTP status
// that produced it (zero when no response was received), a user-facing message,
// and an optional wrapped error.
type AppError struct {
	Code    int               `json:"code"`
	Status  int               `json:"status,omitempty"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped error for use with errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined errors.
//
// Use the Is* helpers rather than errors.Is to test categories; they compare
// codes, so freshly constructed and wrapped errors match as well.
var (
	ErrUnauthorized = &AppError{Code: CodeUnauthorized, Status: http.StatusUnauthorized, Message: "unauthorized"}
	ErrForbidden    = &AppError{Code: CodeForbidden, Status: http.StatusForbidden, Message: "you do not have permission to access this resource"}
	ErrNotFound     = &AppError{Code: CodeNotFound, Status: http.StatusNotFound, Message: "the requested resource does not exist"}
	ErrServer       = &AppError{Code: CodeServer, Status: http.StatusInternalServerError, Message: "internal server error"}
	ErrNetwork      = &AppError{Code: CodeNetwork, Message: "network error, please check your connection"}
	ErrRequest      = &AppError{Code: CodeRequest, Message: "request configuration error"}
	ErrValidation   = &AppError{Code: CodeValidation, Message: "validation error"}
)

// NewAppError creates a new AppError with the given code, message, and wrapped error.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewStatusError creates an AppError for an HTTP status, choosing the code
// with CodeForStatus.
func NewStatusError(status int, message string) *AppError {
	return &AppError{
		Code:    CodeForStatus(status),
		Status:  status,
		Message: message,
	}
}

// CodeForStatus maps an HTTP status code to an error code. Statuses outside the
// explicitly handled set are treated as request failures reported by the server.
func CodeForStatus(status int) int {
	switch {
	case status == http.StatusUnauthorized:
		return CodeUnauthorized
	case status == http.StatusForbidden:
		return CodeForbidden
	case status == http.StatusNotFound:
		return CodeNotFound
	case status >= http.StatusInternalServerError:
		return CodeServer
	default:
		return CodeBusiness
	}
}

// IsUnauthorized reports whether err is or wraps an AppError with CodeUnauthorized.
func IsUnauthorized(err error) bool {
	return hasCode(err, CodeUnauthorized)
}

// IsForbidden reports whether err is or wraps an AppError with CodeForbidden.
func IsForbidden(err error) bool {
	return hasCode(err, CodeForbidden)
}

// IsNotFound reports whether err is or wraps an AppError with CodeNotFound.
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsServer reports whether err is or wraps an AppError with CodeServer.
func IsServer(err error) bool {
	return hasCode(err, CodeServer)
}

// IsNetwork reports whether err is or wraps an AppError with CodeNetwork.
func IsNetwork(err error) bool {
	return hasCode(err, CodeNetwork)
}

// IsRequest reports whether err is or wraps an AppError with CodeRequest.
func IsRequest(err error) bool {
	return hasCode(err, CodeRequest)
}

// IsBusiness reports whether err is or wraps an AppError with CodeBusiness.
func IsBusiness(err error) bool {
	return hasCode(err, CodeBusiness)
}

// IsValidation reports whether err is or wraps an AppError with CodeValidation.
func IsValidation(err error) bool {
	return hasCode(err, CodeValidation)
}

// hasCode checks whether err is or wraps an *AppError with the given code.
func hasCode(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an
// *AppError or no response was received.
func StatusCode(err error) int {
	var appErr *AppError
	if err != nil && errors.As(err, &appErr) {
		return appErr.Status
	}
	return 0
}
