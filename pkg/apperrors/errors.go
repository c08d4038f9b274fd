package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the application error carried from services up to handlers.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError without an underlying cause.
func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying error to a new AppError.
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// MarshalJSON hides the wrapped error and HTTP code from clients.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code     ErrorCode   `json:"code"`
		Domain   string      `json:"domain"`
		Message  string      `json:"message"`
		Category string      `json:"category"`
		Details  interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:     e.Code,
		Domain:   e.Domain,
		Message:  e.Message,
		Category: e.Code.Category(),
		Details:  e.Details,
	})
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// =========================================================================
// Factories for the common cases
// =========================================================================

// NotFound reports an absent entity id (404).
func NotFound(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}

// Duplicate reports a uniqueness violation at the business level (409),
// e.g. a user applying twice for the same animal.
func Duplicate(domain, message string) *AppError {
	return New(CodeAlreadyExists, domain, message, http.StatusConflict)
}

// Conflict reports a state-machine precondition violation (409).
func Conflict(domain, message string) *AppError {
	return New(CodeConflict, domain, message, http.StatusConflict)
}

// ValidationError reports missing or malformed input (400).
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest).
		WithDetails(details)
}

// StorageError wraps a file or blob store failure (500).
func StorageError(err error, message string) *AppError {
	return Wrap(err, CodeStorageError, "storage", message, http.StatusInternalServerError)
}

// DatabaseError wraps a persistence failure (500). The client-facing
// message is always the generic retry-later text.
func DatabaseError(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "database",
		"A database error occurred. Please try again later.",
		http.StatusInternalServerError)
}

// InternalError wraps any unexpected failure (500).
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error",
		http.StatusInternalServerError)
}

// =========================================================================
// Predefined auth errors
// =========================================================================

var (
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth",
		"Cannot authenticate with the provided login and password", http.StatusUnauthorized)
	ErrUnauthorized = New(CodeUnauthorized, "auth",
		"Authentication required", http.StatusUnauthorized)
	ErrForbidden = New(CodeForbidden, "auth",
		"Insufficient permissions for this action", http.StatusForbidden)
	ErrInvalidToken = New(CodeInvalidToken, "auth",
		"Invalid or expired token", http.StatusUnauthorized)
)
