// Package booking contains booking-related use cases.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
)

// CreateBookingInput represents the input for booking creation.
type CreateBookingInput struct {
	GuestID            uuid.UUID
	PropertyID         uuid.UUID
	StartDate          time.Time
	EndDate            time.Time
	GuestCount         int
	CancellationPolicy entity.CancellationPolicy // Optional, defaults to the configured policy
	SpecialRequests    string
}

// CreateBookingOutput represents the output of booking creation.
type CreateBookingOutput struct {
	Booking *entity.Booking
	Quote   entity.PriceQuote
}

// CreateBookingUseCase handles booking creation logic.
type CreateBookingUseCase struct {
	bookingRepo   adapter.BookingRepository
	propertyRepo  adapter.PropertyRepository
	userRepo      adapter.UserRepository
	lock          adapter.BookingLock
	defaultPolicy entity.CancellationPolicy
	entityOpts    []entity.Option
}

// NewCreateBookingUseCase creates a new CreateBookingUseCase instance.
func NewCreateBookingUseCase(
	bookingRepo adapter.BookingRepository,
	propertyRepo adapter.PropertyRepository,
	userRepo adapter.UserRepository,
	lock adapter.BookingLock,
	defaultPolicy entity.CancellationPolicy,
	opts ...entity.Option,
) *CreateBookingUseCase {
	if !defaultPolicy.IsValid() {
		defaultPolicy = entity.CancellationPolicyModerate
	}
	return &CreateBookingUseCase{
		bookingRepo:   bookingRepo,
		propertyRepo:  propertyRepo,
		userRepo:      userRepo,
		lock:          lock,
		defaultPolicy: defaultPolicy,
		entityOpts:    opts,
	}
}

// Execute prices the stay, builds the booking and stores it if the dates are still free.
// Properties with instant booking enabled produce a CONFIRMED booking.
func (uc *CreateBookingUseCase) Execute(ctx context.Context, input CreateBookingInput) (*CreateBookingOutput, error) {
	dateRange, err := valueobject.NewDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	guest, err := uc.userRepo.FindByID(ctx, input.GuestID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find guest: %w", err)
	}
	if !guest.CanBook() {
		return nil, domainerror.NewBookingError(
			domainerror.ErrCodeGuestNotAllowedToBook,
			"account is not allowed to make bookings",
			domainerror.ErrGuestNotAllowedToBook,
		)
	}

	property, err := uc.propertyRepo.FindByID(ctx, input.PropertyID)
	if err != nil {
		if errors.Is(err, domainerror.ErrPropertyNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	if property.IsOwnedBy(guest.ID()) {
		return nil, domainerror.NewBookingError(
			domainerror.ErrCodeCannotBookOwnProperty,
			"hosts cannot book their own property",
			domainerror.ErrCannotBookOwnProperty,
		)
	}
	if !property.IsBookable() {
		return nil, domainerror.NewPropertyError(
			domainerror.ErrCodePropertyNotBookable,
			"property is not accepting bookings",
			domainerror.ErrPropertyNotBookable,
		)
	}

	quote, err := property.CalculateTotalPrice(dateRange, input.GuestCount)
	if err != nil {
		return nil, err
	}

	policy := input.CancellationPolicy
	if policy == "" {
		policy = uc.defaultPolicy
	}

	booking, err := entity.NewBooking(entity.CreateBookingParams{
		PropertyID:         property.ID(),
		GuestID:            guest.ID(),
		HostID:             property.HostID(),
		DateRange:          dateRange,
		PricePerNight:      property.BasePrice(),
		GuestCount:         input.GuestCount,
		CancellationPolicy: policy,
		SpecialRequests:    input.SpecialRequests,
	}, uc.entityOpts...)
	if err != nil {
		return nil, err
	}

	if property.InstantBooking() {
		if err := booking.Confirm(); err != nil {
			return nil, err
		}
	}

	release, err := uc.lock.Acquire(ctx, property.ID())
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("Failed to release booking lock", "propertyID", property.ID(), "error", err)
		}
	}()

	if err := uc.bookingRepo.CreateIfAvailable(ctx, booking); err != nil {
		if errors.Is(err, domainerror.ErrDatesUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	slog.Info("Booking created",
		"bookingID", booking.ID(),
		"propertyID", property.ID(),
		"guestID", guest.ID(),
		"status", booking.Status(),
	)

	return &CreateBookingOutput{
		Booking: booking,
		Quote:   quote,
	}, nil
}
