// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/domain/entity"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
)

// BookingRepository defines the interface for booking persistence operations.
// Availability lookups apply entity.Booking.Overlaps semantics: only PENDING, CONFIRMED
// and COMPLETED bookings occupy dates, and touching ranges do not overlap.
type BookingRepository interface {
	// Create creates a new booking in the database without checking availability.
	Create(ctx context.Context, booking *entity.Booking) error

	// CreateIfAvailable re-checks availability and inserts the booking in one transaction.
	// It returns domainerror.ErrDatesUnavailable when the dates are taken.
	CreateIfAvailable(ctx context.Context, booking *entity.Booking) error

	// FindByID retrieves a booking by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)

	// FindByGuestID retrieves all bookings made by a guest, newest first.
	FindByGuestID(ctx context.Context, guestID uuid.UUID) ([]*entity.Booking, error)

	// FindByHostID retrieves all bookings on a host's properties, newest first.
	FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*entity.Booking, error)

	// FindByPropertyID retrieves all bookings of a property ordered by check-in.
	FindByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*entity.Booking, error)

	// FindByStatus retrieves all bookings in the given status.
	FindByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error)

	// FindOverlappingBookings retrieves the date-occupying bookings of a property that overlap the range.
	FindOverlappingBookings(ctx context.Context, propertyID uuid.UUID, dateRange valueobject.DateRange) ([]*entity.Booking, error)

	// IsPropertyAvailable reports whether no date-occupying booking overlaps the range.
	// excludeBookingID, when set, is ignored by the check.
	IsPropertyAvailable(ctx context.Context, propertyID uuid.UUID, dateRange valueobject.DateRange, excludeBookingID *uuid.UUID) (bool, error)

	// FindConfirmedEndedBefore retrieves up to limit CONFIRMED bookings whose stay ended before the given time.
	FindConfirmedEndedBefore(ctx context.Context, before time.Time, limit int) ([]*entity.Booking, error)

	// Update updates an existing booking in the database.
	Update(ctx context.Context, booking *entity.Booking) error

	// Delete removes a booking from the database (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error
}

// BookingLock serializes booking attempts per property across service instances.
type BookingLock interface {
	// Acquire blocks until the property lock is held or ctx is done.
	// The returned release func must be called once the booking has been stored.
	Acquire(ctx context.Context, propertyID uuid.UUID) (release func(context.Context) error, err error)
}
