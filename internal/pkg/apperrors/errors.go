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
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Student errors
var (
	ErrStudentNotFound = errors.New("student not found")
)

// Vaccine errors
var (
	ErrVaccineNotFound   = errors.New("vaccine not found")
	ErrVaccineNameExists = errors.New("vaccine with this name already exists")
	ErrVaccineInUse      = errors.New("vaccine is referenced by vaccination records and cannot be deleted")
)

// Drive scheduling errors
var (
	ErrDriveNotFound      = errors.New("vaccination drive not found")
	ErrDriveLeadTime      = errors.New("vaccination drive must be scheduled at least 15 days in advance")
	ErrDriveConflict      = errors.New("vaccination drive overlaps with an existing drive")
	ErrPastDriveImmutable = errors.New("cannot modify past drives")
)

// Vaccination record errors
var (
	ErrRecordNotFound          = errors.New("vaccination record not found")
	ErrDuplicateDose           = errors.New("this dose number already exists for this student and drive")
	ErrDoseSequence            = errors.New("invalid dose number sequence")
	ErrFutureVaccinationDate   = errors.New("vaccination date cannot be in the future")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidDateFormat       = errors.New("invalid date format")
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

// NewValidationError wraps a validation sentinel with a request-specific message.
func NewValidationError(err error, message string) error {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
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

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
