// Package booking contains booking-related use cases.
package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
)

// GetBookingInput represents the input for fetching a booking.
type GetBookingInput struct {
	BookingID uuid.UUID
	ActorID   uuid.UUID
}

// GetBookingOutput represents the output of fetching a booking.
type GetBookingOutput struct {
	Booking *entity.Booking
}

// GetBookingUseCase returns a booking to one of its participants.
type GetBookingUseCase struct {
	bookingRepo adapter.BookingRepository
}

// NewGetBookingUseCase creates a new GetBookingUseCase instance.
func NewGetBookingUseCase(bookingRepo adapter.BookingRepository) *GetBookingUseCase {
	return &GetBookingUseCase{bookingRepo: bookingRepo}
}

// Execute fetches the booking.
func (uc *GetBookingUseCase) Execute(ctx context.Context, input GetBookingInput) (*GetBookingOutput, error) {
	booking, err := loadBooking(ctx, uc.bookingRepo, input.BookingID)
	if err != nil {
		return nil, err
	}
	if err := requireParticipant(booking, input.ActorID); err != nil {
		return nil, err
	}
	return &GetBookingOutput{Booking: booking}, nil
}
