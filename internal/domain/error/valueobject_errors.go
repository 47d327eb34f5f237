// Package error defines domain-specific errors for the rental marketplace core.
package error

// Value object errors.
var (
	// ErrInvalidAmount is returned when a money amount is negative.
	ErrInvalidAmount = newKind(ErrValidation, "invalid amount")

	// ErrInvalidCurrency is returned when a currency is not a 3-letter code.
	ErrInvalidCurrency = newKind(ErrValidation, "invalid currency")

	// ErrMoneyCurrencyMismatch is returned when combining or comparing different currencies.
	ErrMoneyCurrencyMismatch = newKind(ErrCurrencyMismatch, "currencies do not match")

	// ErrNegativeResult is returned when a subtraction would go below zero.
	ErrNegativeResult = newKind(ErrValidation, "result would be negative")

	// ErrInvalidFactor is returned for negative multipliers or non-positive divisors.
	ErrInvalidFactor = newKind(ErrValidation, "invalid factor")

	// ErrInvalidDate is returned when a date is missing or cannot be parsed.
	ErrInvalidDate = newKind(ErrValidation, "invalid date")

	// ErrInvalidRange is returned when a range does not start strictly before it ends.
	ErrInvalidRange = newKind(ErrValidation, "invalid date range")

	// ErrAddressFieldRequired is returned when street, city or country is blank.
	ErrAddressFieldRequired = newKind(ErrValidation, "address field required")

	// ErrInvalidCoordinates is returned when latitude or longitude is out of bounds.
	ErrInvalidCoordinates = newKind(ErrValidation, "invalid coordinates")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = newKind(ErrValidation, "invalid email")

	// ErrInvalidPhoneNumber is returned when a phone number does not have 7 to 15 digits.
	ErrInvalidPhoneNumber = newKind(ErrValidation, "invalid phone number")
)

// ValueObjectErrorCode defines error codes for value object errors.
// Format: VO-XXYYYY where XX is the value object and YYYY is specific error.
type ValueObjectErrorCode string

const (
	// Money (01XXXX)
	ErrCodeInvalidAmount    ValueObjectErrorCode = "VO-010001"
	ErrCodeInvalidCurrency  ValueObjectErrorCode = "VO-010002"
	ErrCodeCurrencyMismatch ValueObjectErrorCode = "VO-010003"
	ErrCodeNegativeResult   ValueObjectErrorCode = "VO-010004"
	ErrCodeInvalidFactor    ValueObjectErrorCode = "VO-010005"

	// DateRange (02XXXX)
	ErrCodeInvalidDate  ValueObjectErrorCode = "VO-020001"
	ErrCodeInvalidRange ValueObjectErrorCode = "VO-020002"

	// Address (03XXXX)
	ErrCodeAddressFieldRequired ValueObjectErrorCode = "VO-030001"
	ErrCodeInvalidCoordinates   ValueObjectErrorCode = "VO-030002"

	// Contact (04XXXX)
	ErrCodeInvalidEmail       ValueObjectErrorCode = "VO-040001"
	ErrCodeInvalidPhoneNumber ValueObjectErrorCode = "VO-040002"
)

// ValueObjectError represents a value object error with code and message.
type ValueObjectError struct {
	Code    ValueObjectErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValueObjectError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ValueObjectError) Unwrap() error {
	return e.Err
}

// NewValueObjectError creates a new ValueObjectError with the given code and message.
func NewValueObjectError(code ValueObjectErrorCode, message string, err error) *ValueObjectError {
	return &ValueObjectError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
