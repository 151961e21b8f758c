package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrUserNotFound         = NewError(ErrCodeNotFound, "user not found")
	ErrSessionNotFound      = NewError(ErrCodeNotFound, "session not found")
	ErrNotificationNotFound = NewError(ErrCodeNotFound, "notification not found")
	ErrInternshipNotFound   = NewError(ErrCodeNotFound, "internship not found")
	ErrApplicationNotFound  = NewError(ErrCodeNotFound, "application not found")
	ErrEventNotFound        = NewError(ErrCodeNotFound, "event not found")
	ErrUniversityNotFound   = NewError(ErrCodeNotFound, "university not found")
	ErrUnauthorized         = NewError(ErrCodeUnauthorized, "unauthorized")
	ErrForbidden            = NewError(ErrCodeForbidden, "forbidden")
	ErrInvalidPayload       = NewError(ErrCodeInvalid, "invalid payload")

	// SessionCorrupt marks a persisted session payload that failed to
	// decode. Callers treat the session as absent after the store has
	// discarded the broken value.
	ErrSessionCorrupt = NewError(ErrCodeInternal, "session payload corrupt")

	// Login rejections. The message depends on the shape of the identifier
	// the caller typed, not on which account exists.
	ErrAccountNotAvailable = NewError(ErrCodeUnauthorized, "account not available")
	ErrEmailNeedsCom       = NewError(ErrCodeInvalid, "please enter a valid email with .com")
	ErrInvalidCredentials  = NewError(ErrCodeUnauthorized, "invalid email or password")

	// Registration is closed unless account provisioning is configured.
	ErrRegistrationClosed = NewError(ErrCodeForbidden, "registration requires backend integration")

	ErrEmailTaken            = NewError(ErrCodeConflict, "email already registered")
	ErrApplicationDuplicate  = NewError(ErrCodeConflict, "application already submitted")
	ErrInternshipClosed      = NewError(ErrCodeConflict, "internship is closed")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}
