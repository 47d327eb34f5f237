// Package error defines domain-specific errors for the rental marketplace core.
package error

// Favorite domain errors.
var (
	// ErrFavoriteExists is returned when a property is already in the user's favorites.
	ErrFavoriteExists = newKind(ErrAlreadyExists, "property already in favorites")

	// ErrFavoriteNotFound is returned when removing a favorite that does not exist.
	ErrFavoriteNotFound = newKind(ErrNotFound, "favorite not found")

	// ErrInvalidFavorite is returned when the user or property id is missing.
	ErrInvalidFavorite = newKind(ErrValidation, "invalid favorite")
)

// FavoriteErrorCode defines error codes for favorite errors.
type FavoriteErrorCode string

const (
	ErrCodeFavoriteExists   FavoriteErrorCode = "FAV-010001"
	ErrCodeFavoriteNotFound FavoriteErrorCode = "FAV-010002"
	ErrCodeInvalidFavorite  FavoriteErrorCode = "FAV-010003"
)

// FavoriteError represents a favorite error with code and message.
type FavoriteError struct {
	Code    FavoriteErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *FavoriteError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *FavoriteError) Unwrap() error {
	return e.Err
}

// NewFavoriteError creates a new FavoriteError with the given code and message.
func NewFavoriteError(code FavoriteErrorCode, message string, err error) *FavoriteError {
	return &FavoriteError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
