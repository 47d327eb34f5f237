package entity

import (
	"fmt"

	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
)

// PriceLineItem is one row of a price breakdown.
type PriceLineItem struct {
	Label  string            `json:"label"`
	Amount valueobject.Money `json:"amount"`
}

// PriceQuote is the computed price of a stay.
type PriceQuote struct {
	Nights      int               `json:"nights"`
	NightlyRate valueobject.Money `json:"nightlyRate"`
	NightsPrice valueobject.Money `json:"nightsPrice"`
	CleaningFee valueobject.Money `json:"cleaningFee"`
	TotalPrice  valueobject.Money `json:"totalPrice"`
	Breakdown   []PriceLineItem   `json:"breakdown"`
}

// CanBeBookedBy reports whether guestCount fits the listing and the listing is bookable.
func (p *Property) CanBeBookedBy(guestCount int) bool {
	return p.IsBookable() && p.CanAccommodate(guestCount)
}

// CalculateTotalPrice prices a stay: basePrice × nights plus the cleaning fee.
func (p *Property) CalculateTotalPrice(dateRange valueobject.DateRange, guestCount int) (PriceQuote, error) {
	if guestCount < 1 {
		return PriceQuote{}, domainerror.NewPropertyError(
			domainerror.ErrCodeInvalidGuestCount,
			"at least one guest is required",
			domainerror.ErrInvalidGuestCount,
		)
	}
	if guestCount > p.maxGuests {
		return PriceQuote{}, domainerror.NewPropertyError(
			domainerror.ErrCodeGuestCountExceeded,
			fmt.Sprintf("%d guests requested but the property allows %d", guestCount, p.maxGuests),
			domainerror.ErrGuestCountExceeded,
		)
	}

	nights := dateRange.NumberOfNights()
	if nights < p.minimumStay {
		return PriceQuote{}, domainerror.NewPropertyError(
			domainerror.ErrCodeStayTooShort,
			fmt.Sprintf("minimum stay is %d nights, got %d", p.minimumStay, nights),
			domainerror.ErrStayTooShort,
		)
	}
	if p.maximumStay != nil && nights > *p.maximumStay {
		return PriceQuote{}, domainerror.NewPropertyError(
			domainerror.ErrCodeStayTooLong,
			fmt.Sprintf("maximum stay is %d nights, got %d", *p.maximumStay, nights),
			domainerror.ErrStayTooLong,
		)
	}

	nightsPrice, err := p.basePrice.MultiplyInt(nights)
	if err != nil {
		return PriceQuote{}, err
	}

	cleaningFee, err := valueobject.Zero(p.basePrice.Currency())
	if err != nil {
		return PriceQuote{}, err
	}
	if p.cleaningFee != nil {
		cleaningFee = *p.cleaningFee
	}

	total, err := nightsPrice.Add(cleaningFee)
	if err != nil {
		return PriceQuote{}, err
	}

	unit := "nights"
	if nights == 1 {
		unit = "night"
	}
	breakdown := []PriceLineItem{
		{Label: fmt.Sprintf("%s x %d %s", p.basePrice.String(), nights, unit), Amount: nightsPrice},
	}
	if p.cleaningFee != nil {
		breakdown = append(breakdown, PriceLineItem{Label: "Cleaning fee", Amount: cleaningFee})
	}

	return PriceQuote{
		Nights:      nights,
		NightlyRate: p.basePrice,
		NightsPrice: nightsPrice,
		CleaningFee: cleaningFee,
		TotalPrice:  total,
		Breakdown:   breakdown,
	}, nil
}
