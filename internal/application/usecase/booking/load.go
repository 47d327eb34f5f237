// Package booking contains booking-related use cases.
package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

// loadBooking fetches a booking, passing domain not-found errors through untouched.
func loadBooking(ctx context.Context, repo adapter.BookingRepository, id uuid.UUID) (*entity.Booking, error) {
	booking, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrBookingNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return booking, nil
}

// requireHost checks that actorID hosts the booking.
func requireHost(booking *entity.Booking, actorID uuid.UUID) error {
	if booking.HostID() != actorID {
		return domainerror.NewBookingError(
			domainerror.ErrCodeNotBookingParticipant,
			"only the host can perform this action",
			domainerror.ErrNotBookingParticipant,
		)
	}
	return nil
}

// requireParticipant checks that actorID is the guest or the host of the booking.
func requireParticipant(booking *entity.Booking, actorID uuid.UUID) error {
	if !booking.IsParticipant(actorID) {
		return domainerror.NewBookingError(
			domainerror.ErrCodeNotBookingParticipant,
			"booking does not belong to user",
			domainerror.ErrNotBookingParticipant,
		)
	}
	return nil
}
