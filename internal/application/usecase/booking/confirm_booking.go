// Package booking contains booking-related use cases.
package booking

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
)

// ConfirmBookingInput represents the input for booking confirmation.
type ConfirmBookingInput struct {
	BookingID uuid.UUID
	HostID    uuid.UUID
}

// ConfirmBookingOutput represents the output of booking confirmation.
type ConfirmBookingOutput struct {
	Booking *entity.Booking
}

// ConfirmBookingUseCase lets a host accept a pending booking.
type ConfirmBookingUseCase struct {
	bookingRepo adapter.BookingRepository
}

// NewConfirmBookingUseCase creates a new ConfirmBookingUseCase instance.
func NewConfirmBookingUseCase(bookingRepo adapter.BookingRepository) *ConfirmBookingUseCase {
	return &ConfirmBookingUseCase{bookingRepo: bookingRepo}
}

// Execute performs the confirmation.
func (uc *ConfirmBookingUseCase) Execute(ctx context.Context, input ConfirmBookingInput) (*ConfirmBookingOutput, error) {
	booking, err := loadBooking(ctx, uc.bookingRepo, input.BookingID)
	if err != nil {
		return nil, err
	}
	if err := requireHost(booking, input.HostID); err != nil {
		return nil, err
	}

	if err := booking.Confirm(); err != nil {
		return nil, err
	}

	if err := uc.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	slog.Info("Booking confirmed", "bookingID", booking.ID(), "hostID", input.HostID)

	return &ConfirmBookingOutput{Booking: booking}, nil
}
