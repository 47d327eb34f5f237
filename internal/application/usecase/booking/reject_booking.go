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

// RejectBookingInput represents the input for booking rejection.
type RejectBookingInput struct {
	BookingID uuid.UUID
	HostID    uuid.UUID
	Reason    string
}

// RejectBookingOutput represents the output of booking rejection.
type RejectBookingOutput struct {
	Booking *entity.Booking
}

// RejectBookingUseCase lets a host decline a pending booking.
type RejectBookingUseCase struct {
	bookingRepo adapter.BookingRepository
}

// NewRejectBookingUseCase creates a new RejectBookingUseCase instance.
func NewRejectBookingUseCase(bookingRepo adapter.BookingRepository) *RejectBookingUseCase {
	return &RejectBookingUseCase{bookingRepo: bookingRepo}
}

// Execute performs the rejection.
func (uc *RejectBookingUseCase) Execute(ctx context.Context, input RejectBookingInput) (*RejectBookingOutput, error) {
	booking, err := loadBooking(ctx, uc.bookingRepo, input.BookingID)
	if err != nil {
		return nil, err
	}
	if err := requireHost(booking, input.HostID); err != nil {
		return nil, err
	}

	if err := booking.Reject(input.Reason); err != nil {
		return nil, err
	}

	if err := uc.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	slog.Info("Booking rejected", "bookingID", booking.ID(), "hostID", input.HostID)

	return &RejectBookingOutput{Booking: booking}, nil
}
