// Package booking contains booking-related use cases.
package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

// ListBookingsInput represents the input for listing bookings.
// As selects the side of the booking: RoleGuest lists trips, RoleHost lists reservations.
type ListBookingsInput struct {
	UserID uuid.UUID
	As     entity.Role
	Status *entity.BookingStatus // Optional
}

// ListBookingsOutput represents the output of listing bookings.
type ListBookingsOutput struct {
	Bookings []*entity.Booking
}

// ListBookingsUseCase lists a user's bookings as guest or host.
type ListBookingsUseCase struct {
	bookingRepo adapter.BookingRepository
}

// NewListBookingsUseCase creates a new ListBookingsUseCase instance.
func NewListBookingsUseCase(bookingRepo adapter.BookingRepository) *ListBookingsUseCase {
	return &ListBookingsUseCase{bookingRepo: bookingRepo}
}

// Execute lists the bookings.
func (uc *ListBookingsUseCase) Execute(ctx context.Context, input ListBookingsInput) (*ListBookingsOutput, error) {
	var (
		bookings []*entity.Booking
		err      error
	)
	switch input.As {
	case entity.RoleGuest:
		bookings, err = uc.bookingRepo.FindByGuestID(ctx, input.UserID)
	case entity.RoleHost:
		bookings, err = uc.bookingRepo.FindByHostID(ctx, input.UserID)
	default:
		return nil, domainerror.NewBookingError(
			domainerror.ErrCodeInvalidBookingField,
			"bookings can be listed as guest or host",
			domainerror.ErrInvalidBookingField,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	if input.Status != nil {
		filtered := make([]*entity.Booking, 0, len(bookings))
		for _, b := range bookings {
			if b.Status() == *input.Status {
				filtered = append(filtered, b)
			}
		}
		bookings = filtered
	}

	return &ListBookingsOutput{Bookings: bookings}, nil
}
