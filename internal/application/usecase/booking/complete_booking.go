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

// CompleteBookingInput represents the input for booking completion.
type CompleteBookingInput struct {
	BookingID uuid.UUID
}

// CompleteBookingOutput represents the output of booking completion.
type CompleteBookingOutput struct {
	Booking *entity.Booking
}

// CompleteBookingUseCase closes a confirmed booking after check-out.
type CompleteBookingUseCase struct {
	bookingRepo adapter.BookingRepository
}

// NewCompleteBookingUseCase creates a new CompleteBookingUseCase instance.
func NewCompleteBookingUseCase(bookingRepo adapter.BookingRepository) *CompleteBookingUseCase {
	return &CompleteBookingUseCase{bookingRepo: bookingRepo}
}

// Execute performs the completion.
func (uc *CompleteBookingUseCase) Execute(ctx context.Context, input CompleteBookingInput) (*CompleteBookingOutput, error) {
	booking, err := loadBooking(ctx, uc.bookingRepo, input.BookingID)
	if err != nil {
		return nil, err
	}

	if err := booking.Complete(); err != nil {
		return nil, err
	}

	if err := uc.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	slog.Info("Booking completed", "bookingID", booking.ID())

	return &CompleteBookingOutput{Booking: booking}, nil
}
