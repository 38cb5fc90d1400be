package apperror

import (
	"errors"
	"net/http"
)

// Kind tags an AppError with the pipeline stage that produced it.
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindValidation    Kind = "validation"
	KindPersistence   Kind = "persistence"
	KindDispatch      Kind = "dispatch"
	KindInternal      Kind = "internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Every webhook failure surfaces as a server error; the kind is kept for logs and tests.
func newKind(kind Kind, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    http.StatusInternalServerError,
		Message: message,
		Err:     err,
	}
}

// NewConfigurationError reports a required setting that is absent.
func NewConfigurationError(message string) *AppError {
	return newKind(KindConfiguration, message, nil)
}

// NewValidationError reports a malformed or incomplete request body.
func NewValidationError(message string) *AppError {
	return newKind(KindValidation, message, nil)
}

// NewPersistenceError wraps a rejected or unreachable store write.
func NewPersistenceError(err error) *AppError {
	return newKind(KindPersistence, err.Error(), err)
}

// NewDispatchError wraps a failed push to the messaging API.
func NewDispatchError(err error) *AppError {
	return newKind(KindDispatch, err.Error(), err)
}

// Wrap returns err unchanged when it already is an AppError, otherwise tags it with kind.
func Wrap(kind Kind, err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return newKind(kind, err.Error(), err)
}

// IsKind reports whether err carries an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return newKind(KindInternal, err.Error(), err)
}
