// Package error defines domain-specific errors for the rental marketplace core.
package error

// Property domain errors.
var (
	// ErrPropertyNotFound is returned when a property is not found in the system.
	ErrPropertyNotFound = newKind(ErrNotFound, "property not found")

	// ErrInvalidPropertyField is returned when a property attribute fails validation.
	ErrInvalidPropertyField = newKind(ErrValidation, "invalid property field")

	// ErrInvalidGuestCount is returned when fewer than one guest is requested.
	ErrInvalidGuestCount = newKind(ErrValidation, "invalid guest count")

	// ErrGuestCountExceeded is returned when more guests are requested than the property allows.
	ErrGuestCountExceeded = newKind(ErrValidation, "guest count exceeded")

	// ErrStayTooShort is returned when the stay is shorter than the minimum stay.
	ErrStayTooShort = newKind(ErrValidation, "stay too short")

	// ErrStayTooLong is returned when the stay is longer than the maximum stay.
	ErrStayTooLong = newKind(ErrValidation, "stay too long")

	// ErrInvalidPropertyTransition is returned when a publish lifecycle transition is not allowed.
	ErrInvalidPropertyTransition = newKind(ErrInvalidTransition, "invalid property status transition")

	// ErrPublishRequirementsNotMet is returned when publishing without images or a long enough description.
	ErrPublishRequirementsNotMet = newKind(ErrInvariantViolation, "publish requirements not met")

	// ErrPropertyInvariant is returned when a change would break a published listing.
	ErrPropertyInvariant = newKind(ErrInvariantViolation, "property invariant violated")

	// ErrAmenityExists is returned when adding an amenity the property already has.
	ErrAmenityExists = newKind(ErrAlreadyExists, "amenity already exists")

	// ErrAmenityNotFound is returned when removing an amenity the property does not have.
	ErrAmenityNotFound = newKind(ErrNotFound, "amenity not found")

	// ErrImageExists is returned when adding an image URL the property already has.
	ErrImageExists = newKind(ErrAlreadyExists, "image already exists")

	// ErrImageNotFound is returned when removing an image URL the property does not have.
	ErrImageNotFound = newKind(ErrNotFound, "image not found")

	// ErrPriceCurrencyMismatch is returned when the cleaning fee and base price differ in currency.
	ErrPriceCurrencyMismatch = newKind(ErrCurrencyMismatch, "cleaning fee currency differs from base price")

	// ErrNotPropertyHost is returned when a user acts on a property they do not host.
	ErrNotPropertyHost = newKind(ErrValidation, "user is not the host of this property")

	// ErrPropertyNotBookable is returned when booking a property that is not published.
	ErrPropertyNotBookable = newKind(ErrInvalidTransition, "property is not bookable")
)

// PropertyErrorCode defines error codes for property errors.
// Format: PRP-XXYYYY where XX is category and YYYY is specific error.
type PropertyErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPropertyField  PropertyErrorCode = "PRP-010001"
	ErrCodeInvalidGuestCount     PropertyErrorCode = "PRP-010002"
	ErrCodeGuestCountExceeded    PropertyErrorCode = "PRP-010003"
	ErrCodeStayTooShort          PropertyErrorCode = "PRP-010004"
	ErrCodeStayTooLong           PropertyErrorCode = "PRP-010005"
	ErrCodePriceCurrencyMismatch PropertyErrorCode = "PRP-010006"
	ErrCodeMissingPropertyFields PropertyErrorCode = "PRP-010007"

	// Lifecycle errors (02XXXX)
	ErrCodeInvalidPropertyTransition PropertyErrorCode = "PRP-020001"
	ErrCodePublishRequirementsNotMet PropertyErrorCode = "PRP-020002"
	ErrCodePropertyInvariant         PropertyErrorCode = "PRP-020003"
	ErrCodePropertyNotBookable       PropertyErrorCode = "PRP-020004"

	// Collection errors (03XXXX)
	ErrCodeAmenityExists   PropertyErrorCode = "PRP-030001"
	ErrCodeAmenityNotFound PropertyErrorCode = "PRP-030002"
	ErrCodeImageExists     PropertyErrorCode = "PRP-030003"
	ErrCodeImageNotFound   PropertyErrorCode = "PRP-030004"

	// Access errors (04XXXX)
	ErrCodePropertyNotFound PropertyErrorCode = "PRP-040001"
	ErrCodeNotPropertyHost  PropertyErrorCode = "PRP-040002"
)

// PropertyError represents a property error with code and message.
type PropertyError struct {
	Code    PropertyErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PropertyError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PropertyError) Unwrap() error {
	return e.Err
}

// NewPropertyError creates a new PropertyError with the given code and message.
func NewPropertyError(code PropertyErrorCode, message string, err error) *PropertyError {
	return &PropertyError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
