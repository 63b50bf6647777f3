package errors

import "fmt"

// Error codes returned in API error bodies.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeUpstreamFailure = "UPSTREAM_FAILURE"
	CodePartialFailure  = "PARTIAL_FAILURE"
	CodeInternal        = "INTERNAL_ERROR"
)

// AppError carries an HTTP status and API error code alongside the
// underlying error, for mapping at the request boundary.
type AppError struct {
	Err        error
	Message    string
	StatusCode int
	Code       string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates a new application error.
func NewAppError(err error, message string, statusCode int, code string) *AppError {
	return &AppError{Err: err, Message: message, StatusCode: statusCode, Code: code}
}
