package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that an attempt was made to create a resource that already exists.
var ErrConflict = errors.New("resource already exists")

// ErrDuplicate is kept as an alias of ErrConflict for repository code.
var ErrDuplicate = ErrConflict

// ErrInternal indicates a broken invariant or an unexpected persistence failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish code, a caller-facing message and the cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match an AppError against the kind implied by its code.
func (e *AppError) Is(target error) bool {
	kind := kindForCode(e.Code)
	return kind != nil && kind == target
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewNotFoundError(message string) error {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

func NewValidationError(message string) error {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

func NewConflictError(message string) error {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrConflict}
}

// NewInternalError marks err as fatal. The cause stays reachable through errors.Unwrap
// but Kind reports ErrInternal.
func NewInternalError(message string, err error) error {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Err: err}
}

// Kind returns the sentinel describing err. The outermost AppError wins so that an
// internal failure wrapping a not-found cause is still reported as internal.
func Kind(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		if kind := kindForCode(appErr.Code); kind != nil {
			return kind
		}
	}
	for _, kind := range []error{ErrNotFound, ErrValidation, ErrConflict} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrInternal
}

// Message returns the caller-facing message of err.
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func kindForCode(code int) error {
	switch code {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusConflict:
		return ErrConflict
	case http.StatusInternalServerError:
		return ErrInternal
	}
	return nil
}
