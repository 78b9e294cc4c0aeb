package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors. The OTP sentinels specialize the generic access errors so
// callers can match either level.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource already exists")
	ErrValidation   = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrOTPInvalid   = fmt.Errorf("invalid or expired otp: %w", ErrUnauthorized)
	ErrNotActive    = fmt.Errorf("account not active: %w", ErrForbidden)
)

// AppError represents an application error with an HTTP status.
// Field names the offending column for conflict errors.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation reports a malformed or missing input field. Validation runs
// before any transaction is opened.
func Validation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "validation_error", message, ErrValidation)
}

// Conflict reports a uniqueness violation naming the offending field.
func Conflict(field, message string) *AppError {
	e := NewAppError(http.StatusConflict, "conflict", message, ErrConflict)
	e.Field = field
	return e
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "not_found", message, ErrNotFound)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "unauthorized", message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, "forbidden", message, ErrForbidden)
}

// OTPInvalid reports a missing, wrong, or expired one-time code.
func OTPInvalid() *AppError {
	return NewAppError(http.StatusUnauthorized, "unauthorized", "Invalid or expired OTP", ErrOTPInvalid)
}

// NotActive reports a login attempt against a non-active identity.
func NotActive() *AppError {
	return NewAppError(http.StatusForbidden, "forbidden", "Account is not active", ErrNotActive)
}

// Internal wraps any other store or infrastructure failure. The detail stays
// server-side; callers see a generic message.
func Internal(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal_error", "internal server error", err)
}

// ConflictField returns the offending field name if err is a conflict error.
func ConflictField(err error) (string, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) && errors.Is(appErr.Err, ErrConflict) {
		return appErr.Field, true
	}
	return "", false
}
