package error

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"booking validation", NewBookingError(ErrCodeInvalidBookingField, "bad", ErrInvalidBookingField), ErrValidation},
		{"booking transition", NewBookingError(ErrCodeInvalidBookingTransition, "bad", ErrInvalidBookingTransition), ErrInvalidTransition},
		{"dates taken", NewBookingError(ErrCodeDatesUnavailable, "taken", ErrDatesUnavailable), ErrAlreadyExists},
		{"publish requirements", NewPropertyError(ErrCodePublishRequirementsNotMet, "no images", ErrPublishRequirementsNotMet), ErrInvariantViolation},
		{"cleaning fee currency", NewPropertyError(ErrCodePriceCurrencyMismatch, "usd", ErrPriceCurrencyMismatch), ErrCurrencyMismatch},
		{"missing user", NewUserError(ErrCodeUserNotFound, "missing", ErrUserNotFound), ErrNotFound},
		{"wrapped favorite", fmt.Errorf("failed to add favorite: %w", NewFavoriteError(ErrCodeFavoriteExists, "dup", ErrFavoriteExists)), ErrAlreadyExists},
		{"infrastructure error", errors.New("connection refused"), nil},
		{"nil", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}

func TestCodedErrorMessages(t *testing.T) {
	err := NewBookingError(ErrCodeReasonRequired, "a reason is required", ErrReasonRequired)
	assert.Equal(t, "a reason is required: reason is required", err.Error())
	assert.ErrorIs(t, err, ErrReasonRequired)
	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrInvalidTransition)

	bare := &BookingError{Code: ErrCodeBookingNotFound, Message: "booking not found"}
	assert.Equal(t, "booking not found", bare.Error())
}
