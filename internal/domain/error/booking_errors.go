// Package error defines domain-specific errors for the rental marketplace core.
package error

// Booking domain errors.
var (
	// ErrBookingNotFound is returned when a booking is not found in the system.
	ErrBookingNotFound = newKind(ErrNotFound, "booking not found")

	// ErrInvalidBookingField is returned when a booking attribute fails creation validation.
	ErrInvalidBookingField = newKind(ErrValidation, "invalid booking field")

	// ErrBookingDatesNotInFuture is returned when a new booking does not start in the future.
	ErrBookingDatesNotInFuture = newKind(ErrValidation, "booking dates must be in the future")

	// ErrBookingTooFarInAdvance is returned when check-in is more than 730 days away.
	ErrBookingTooFarInAdvance = newKind(ErrValidation, "booking too far in advance")

	// ErrInvalidBookingTransition is returned when a lifecycle transition is not allowed.
	ErrInvalidBookingTransition = newKind(ErrInvalidTransition, "invalid booking status transition")

	// ErrBookingPastDates is returned when confirming a booking whose stay has already ended.
	ErrBookingPastDates = newKind(ErrInvalidTransition, "booking dates are in the past")

	// ErrBookingNotYetEnded is returned when completing a booking whose stay has not ended.
	ErrBookingNotYetEnded = newKind(ErrInvalidTransition, "booking has not ended yet")

	// ErrReasonRequired is returned when rejecting or cancelling without a reason.
	ErrReasonRequired = newKind(ErrValidation, "reason is required")

	// ErrInvalidCancellationPolicy is returned for an unknown cancellation policy.
	ErrInvalidCancellationPolicy = newKind(ErrValidation, "invalid cancellation policy")

	// ErrInvalidCanceller is returned when cancelledBy is neither guest nor host.
	ErrInvalidCanceller = newKind(ErrValidation, "invalid canceller")

	// ErrDatesUnavailable is returned when the property is already booked for the dates.
	ErrDatesUnavailable = newKind(ErrAlreadyExists, "property is not available for the selected dates")

	// ErrNotBookingParticipant is returned when a user acts on a booking they are not part of.
	ErrNotBookingParticipant = newKind(ErrValidation, "user is not a participant of this booking")

	// ErrCannotBookOwnProperty is returned when a host tries to book their own listing.
	ErrCannotBookOwnProperty = newKind(ErrValidation, "cannot book your own property")

	// ErrGuestNotAllowedToBook is returned when an inactive or non-guest account tries to book.
	ErrGuestNotAllowedToBook = newKind(ErrValidation, "user is not allowed to book")

	// ErrBookingLockNotAcquired is returned when the property lock could not be taken in time.
	ErrBookingLockNotAcquired = newKind(ErrAlreadyExists, "another booking for this property is in progress")
)

// BookingErrorCode defines error codes for booking errors.
// Format: BKG-XXYYYY where XX is category and YYYY is specific error.
type BookingErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBookingField       BookingErrorCode = "BKG-010001"
	ErrCodeBookingDatesNotInFuture   BookingErrorCode = "BKG-010002"
	ErrCodeBookingTooFarInAdvance    BookingErrorCode = "BKG-010003"
	ErrCodeReasonRequired            BookingErrorCode = "BKG-010004"
	ErrCodeInvalidCancellationPolicy BookingErrorCode = "BKG-010005"
	ErrCodeInvalidCanceller          BookingErrorCode = "BKG-010006"
	ErrCodeMissingBookingFields      BookingErrorCode = "BKG-010007"
	ErrCodeCannotBookOwnProperty     BookingErrorCode = "BKG-010008"

	// Lifecycle errors (02XXXX)
	ErrCodeInvalidBookingTransition BookingErrorCode = "BKG-020001"
	ErrCodeBookingPastDates         BookingErrorCode = "BKG-020002"
	ErrCodeBookingNotYetEnded       BookingErrorCode = "BKG-020003"

	// Availability errors (03XXXX)
	ErrCodeDatesUnavailable       BookingErrorCode = "BKG-030001"
	ErrCodeBookingLockNotAcquired BookingErrorCode = "BKG-030002"

	// Access errors (04XXXX)
	ErrCodeBookingNotFound       BookingErrorCode = "BKG-040001"
	ErrCodeNotBookingParticipant BookingErrorCode = "BKG-040002"
	ErrCodeGuestNotAllowedToBook BookingErrorCode = "BKG-040003"
)

// BookingError represents a booking error with code and message.
type BookingError struct {
	Code    BookingErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BookingError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BookingError) Unwrap() error {
	return e.Err
}

// NewBookingError creates a new BookingError with the given code and message.
func NewBookingError(code BookingErrorCode, message string, err error) *BookingError {
	return &BookingError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
