// Package error defines domain-specific errors for the rental marketplace core.
package error

// User domain errors.
var (
	// ErrUserNotFound is returned when a user is not found in the system.
	ErrUserNotFound = newKind(ErrNotFound, "user not found")

	// ErrInvalidUserField is returned when a profile attribute fails validation.
	ErrInvalidUserField = newKind(ErrValidation, "invalid user field")

	// ErrUnderage is returned when the date of birth puts the user under 18.
	ErrUnderage = newKind(ErrValidation, "user must be at least 18 years old")

	// ErrInvalidRole is returned for an unknown role.
	ErrInvalidRole = newKind(ErrValidation, "invalid role")

	// ErrCannotRemoveLastRole is returned when removing the only role a user holds.
	ErrCannotRemoveLastRole = newKind(ErrInvariantViolation, "cannot remove the only remaining role")

	// ErrNotHost is returned when host-only operations are invoked on a non-host.
	ErrNotHost = newKind(ErrInvalidTransition, "user is not a host")

	// ErrInvalidUserTransition is returned when an account status transition is not allowed.
	ErrInvalidUserTransition = newKind(ErrInvalidTransition, "invalid user status transition")

	// ErrUserReasonRequired is returned when suspending or banning without a reason.
	ErrUserReasonRequired = newKind(ErrValidation, "reason is required")

	// ErrEmailAlreadyExists is returned when registering an email that is taken.
	ErrEmailAlreadyExists = newKind(ErrAlreadyExists, "email already exists")
)

// UserErrorCode defines error codes for user errors.
// Format: USR-XXYYYY where XX is category and YYYY is specific error.
type UserErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidUserField   UserErrorCode = "USR-010001"
	ErrCodeUnderage           UserErrorCode = "USR-010002"
	ErrCodeInvalidRole        UserErrorCode = "USR-010003"
	ErrCodeUserReasonRequired UserErrorCode = "USR-010004"

	// Role and status errors (02XXXX)
	ErrCodeCannotRemoveLastRole  UserErrorCode = "USR-020001"
	ErrCodeNotHost               UserErrorCode = "USR-020002"
	ErrCodeInvalidUserTransition UserErrorCode = "USR-020003"

	// Lookup errors (03XXXX)
	ErrCodeUserNotFound       UserErrorCode = "USR-030001"
	ErrCodeEmailAlreadyExists UserErrorCode = "USR-030002"
)

// UserError represents a user error with code and message.
type UserError struct {
	Code    UserErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *UserError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new UserError with the given code and message.
func NewUserError(code UserErrorCode, message string, err error) *UserError {
	return &UserError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
