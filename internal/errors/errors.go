package errors

import "fmt"

// ErrorCode represents a Stoic error code.
type ErrorCode string

const (
	ErrInvalidRequest   ErrorCode = "INVALID_REQUEST"    // 400
	ErrNotFound         ErrorCode = "NOT_FOUND"          // 404
	ErrDuplicateDateKey ErrorCode = "DUPLICATE_DATE_KEY" // 409
	ErrSourceUnreadable ErrorCode = "SOURCE_UNREADABLE"  // 422
	ErrInternal         ErrorCode = "INTERNAL"           // 500
)

// StoicError represents a structured error with code, status, and details.
type StoicError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
	cause   error
}

// Error implements the error interface.
func (e *StoicError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *StoicError) Unwrap() error {
	return e.cause
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *StoicError {
	return &StoicError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for when a meditation cannot be found.
func NewNotFound(dateKey string) *StoicError {
	return &StoicError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("meditation not found: %s", dateKey),
		Details: map[string]any{"date_key": dateKey},
	}
}

// NewDuplicateDateKey creates a 409 error for a row whose date_key is already stored.
func NewDuplicateDateKey(dateKey string, cause error) *StoicError {
	return &StoicError{
		Code:    ErrDuplicateDateKey,
		Status:  409,
		Message: fmt.Sprintf("meditation with date_key %q already exists", dateKey),
		Details: map[string]any{"date_key": dateKey},
		cause:   cause,
	}
}

// NewSourceUnreadable creates a 422 error when the book text cannot be read.
func NewSourceUnreadable(path string, cause error) *StoicError {
	return &StoicError{
		Code:    ErrSourceUnreadable,
		Status:  422,
		Message: fmt.Sprintf("cannot read source %s: %v", path, cause),
		Details: map[string]any{"path": path},
		cause:   cause,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *StoicError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &StoicError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
		cause:   err,
	}
}

// Is checks if an error is a StoicError with the given code.
func Is(err error, code ErrorCode) bool {
	if sErr, ok := err.(*StoicError); ok {
		return sErr.Code == code
	}
	return false
}
