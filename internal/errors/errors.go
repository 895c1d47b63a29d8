package errors

import "fmt"

// Error codes
const (
	ErrCodeFetch      = "FETCH_ERROR"
	ErrCodeDecode     = "DECODE_ERROR"
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// AppError represents an application error with an error code and, where the
// asset server reports it, an HTTP status.
type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a FETCH_ERROR for a failed resource fetch.
func NewFetchError(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeFetch,
		Message: fmt.Sprintf("failed to fetch %s", resource),
		Status:  502,
		Err:     err,
	}
}

// NewDecodeError creates a DECODE_ERROR for malformed content.
func NewDecodeError(what string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeDecode,
		Message: fmt.Sprintf("failed to decode %s", what),
		Status:  502,
		Err:     err,
	}
}

// NewNotFoundError creates a NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates an INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal error",
		Status:  500,
		Err:     err,
	}
}
