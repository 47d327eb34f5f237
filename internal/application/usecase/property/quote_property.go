// Package property contains property-related use cases.
package property

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
)

// QuoteInput represents the input for pricing a stay.
type QuoteInput struct {
	PropertyID uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	GuestCount int
}

// QuoteOutput represents a priced stay and whether the dates are free.
type QuoteOutput struct {
	Quote     entity.PriceQuote
	Available bool
}

// QuotePropertyUseCase prices a stay without booking it.
type QuotePropertyUseCase struct {
	propertyRepo adapter.PropertyRepository
	bookingRepo  adapter.BookingRepository
}

// NewQuotePropertyUseCase creates a new QuotePropertyUseCase instance.
func NewQuotePropertyUseCase(propertyRepo adapter.PropertyRepository, bookingRepo adapter.BookingRepository) *QuotePropertyUseCase {
	return &QuotePropertyUseCase{
		propertyRepo: propertyRepo,
		bookingRepo:  bookingRepo,
	}
}

// Execute computes the quote and checks availability.
func (uc *QuotePropertyUseCase) Execute(ctx context.Context, input QuoteInput) (*QuoteOutput, error) {
	dateRange, err := valueobject.NewDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	property, err := loadProperty(ctx, uc.propertyRepo, input.PropertyID)
	if err != nil {
		return nil, err
	}

	quote, err := property.CalculateTotalPrice(dateRange, input.GuestCount)
	if err != nil {
		return nil, err
	}

	available, err := uc.bookingRepo.IsPropertyAvailable(ctx, property.ID(), dateRange, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check availability: %w", err)
	}

	return &QuoteOutput{
		Quote:     quote,
		Available: available && property.IsBookable(),
	}, nil
}
