package errors

import "fmt"

// ErrorCode represents a service error code.
type ErrorCode string

const (
	ErrValidation ErrorCode = "VALIDATION_ERROR" // 400
	ErrNotFound   ErrorCode = "NOT_FOUND"        // 404
	ErrInternal   ErrorCode = "INTERNAL"         // 500
)

// ServiceError represents a structured error with code, status, and details.
type ServiceError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewValidation creates a 400 error for caller input that violates a
// precondition. Never retried; the caller corrects the input.
func NewValidation(msg string) *ServiceError {
	return &ServiceError{
		Code:    ErrValidation,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for an id that does not resolve to a
// visible (non-deleted) note.
func NewNotFound(id string) *ServiceError {
	return &ServiceError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("no note with id %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewInternal creates a 500 error for store-layer failures. The cause is
// carried in the message unchanged; nothing is reinterpreted or retried
// here.
func NewInternal(err error) *ServiceError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ServiceError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a ServiceError with the given code.
func Is(err error, code ErrorCode) bool {
	if sErr, ok := err.(*ServiceError); ok {
		return sErr.Code == code
	}
	return false
}
