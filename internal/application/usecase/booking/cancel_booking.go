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

// CancelBookingInput represents the input for booking cancellation.
type CancelBookingInput struct {
	BookingID uuid.UUID
	ActorID   uuid.UUID
	Reason    string
}

// CancelBookingOutput represents the output of booking cancellation.
// Refund is what the guest is owed. Paying it out is left to the payment collaborator.
type CancelBookingOutput struct {
	Booking *entity.Booking
	Refund  entity.RefundResult
}

// CancelBookingUseCase lets the guest or the host cancel a booking.
type CancelBookingUseCase struct {
	bookingRepo adapter.BookingRepository
}

// NewCancelBookingUseCase creates a new CancelBookingUseCase instance.
func NewCancelBookingUseCase(bookingRepo adapter.BookingRepository) *CancelBookingUseCase {
	return &CancelBookingUseCase{bookingRepo: bookingRepo}
}

// Execute performs the cancellation. The cancelling party is derived from the actor.
func (uc *CancelBookingUseCase) Execute(ctx context.Context, input CancelBookingInput) (*CancelBookingOutput, error) {
	booking, err := loadBooking(ctx, uc.bookingRepo, input.BookingID)
	if err != nil {
		return nil, err
	}
	if err := requireParticipant(booking, input.ActorID); err != nil {
		return nil, err
	}

	cancelledBy := entity.CancelledByGuest
	if input.ActorID == booking.HostID() {
		cancelledBy = entity.CancelledByHost
	}

	refund, err := booking.Cancel(input.Reason, cancelledBy)
	if err != nil {
		return nil, err
	}

	if err := uc.bookingRepo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	slog.Info("Booking cancelled",
		"bookingID", booking.ID(),
		"cancelledBy", cancelledBy,
		"refundPercentage", refund.RefundPercentage,
		"refundAmount", refund.RefundAmount.String(),
	)

	return &CancelBookingOutput{
		Booking: booking,
		Refund:  refund,
	}, nil
}
