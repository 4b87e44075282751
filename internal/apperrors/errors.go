package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the request carries no authenticated actor.
var ErrUnauthorized = errors.New("authentication required")

// ErrForbidden indicates that the authenticated actor lacks the role or
// organization access required for the operation.
var ErrForbidden = errors.New("permission denied")

// ErrInvalidTransition indicates a state machine operation that is illegal
// from the entity's current state.
var ErrInvalidTransition = errors.New("invalid state transition")

// AppError wraps an underlying error with an HTTP status code and a message
// safe to surface to API clients.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a generic AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError wrapping ErrNotFound, naming the
// entity kind and identifier that could not be found.
func NewNotFoundError(entity, id string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s %q not found", entity, id),
		Err:     ErrNotFound,
	}
}

// NewConflictError creates an AppError wrapping ErrDuplicate.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrDuplicate}
}

// NewValidationFailedError creates an AppError wrapping ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewForbiddenError creates an AppError wrapping ErrForbidden.
func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message, Err: ErrForbidden}
}

// PermissionDeniedError is a forbidden error that names the permission the
// actor was missing, so handlers can surface it in the response body.
type PermissionDeniedError struct {
	Resource string
	Action   string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("missing permission %s:%s", e.Resource, e.Action)
}

func (e *PermissionDeniedError) Unwrap() error {
	return ErrForbidden
}

// NewPermissionDeniedError creates a PermissionDeniedError for the given
// resource/action pair.
func NewPermissionDeniedError(resource, action string) *PermissionDeniedError {
	return &PermissionDeniedError{Resource: resource, Action: action}
}

// NewInvalidTransitionError creates an AppError wrapping ErrInvalidTransition,
// naming both the current state and the attempted transition.
func NewInvalidTransitionError(entity, current, attempted string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("%s cannot transition from %q via %q", entity, current, attempted),
		Err:     ErrInvalidTransition,
	}
}
