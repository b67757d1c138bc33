package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Student errors
var (
	ErrStudentNotFound       = errors.New("student not found")
	ErrStudentAlreadyMatched = errors.New("student already has an approved match")
	ErrEmailAlreadyExists    = errors.New("email already exists")
)

// Volunteer errors
var (
	ErrVolunteerNotFound   = errors.New("volunteer not found")
	ErrVolunteerAtCapacity = errors.New("volunteer has reached full capacity")
	ErrVolunteerInactive   = errors.New("volunteer is not active")
)

// Match errors
var (
	ErrMatchNotFound        = errors.New("match not found")
	ErrMatchAlreadyExists   = errors.New("a match for this student and volunteer already exists")
	ErrMatchAlreadyApproved = errors.New("match has already been approved")
	ErrMatchAlreadyRejected = errors.New("match has already been rejected")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// Details extracts the context details from an error, if it carries any
func Details(err error) map[string]interface{} {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Details
	}
	return nil
}
