package dto

import (
	"github.com/shopspring/decimal"

	"github.com/rental-marketplace/backend/internal/application/usecase/property"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
)

// AddressRequest represents a postal address in requests.
type AddressRequest struct {
	Street     string   `json:"street" binding:"required"`
	City       string   `json:"city" binding:"required"`
	State      string   `json:"state"`
	Country    string   `json:"country" binding:"required"`
	PostalCode string   `json:"postal_code"`
	Latitude   *float64 `json:"lat,omitempty"`
	Longitude  *float64 `json:"lng,omitempty" binding:"required_with=Latitude"`
}

// CreatePropertyRequest represents the request body for listing creation.
type CreatePropertyRequest struct {
	Title          string                `json:"title" binding:"required"`
	Description    string                `json:"description" binding:"required"`
	Type           string                `json:"type" binding:"required"`
	Address        AddressRequest        `json:"address" binding:"required"`
	BasePrice      decimal.Decimal       `json:"base_price"`
	CleaningFee    *decimal.Decimal      `json:"cleaning_fee,omitempty"`
	Currency       string                `json:"currency,omitempty"`
	MaxGuests      int                   `json:"max_guests" binding:"required,gte=1"`
	Bedrooms       int                   `json:"bedrooms" binding:"gte=0"`
	Bathrooms      int                   `json:"bathrooms" binding:"gte=0"`
	Beds           int                   `json:"beds" binding:"gte=0"`
	Rules          *entity.PropertyRules `json:"rules,omitempty"`
	MinimumStay    int                   `json:"minimum_stay,omitempty" binding:"gte=0"`
	MaximumStay    *int                  `json:"maximum_stay,omitempty"`
	InstantBooking bool                  `json:"instant_booking"`
	Amenities      []entity.Amenity      `json:"amenities,omitempty"`
	Images         []string              `json:"images,omitempty"`
}

// AddImageRequest represents the request body for adding a listing image.
type AddImageRequest struct {
	URL string `json:"url" binding:"required"`
}

// QuoteRequest represents the query parameters of a price quote.
type QuoteRequest struct {
	StartDate  string `form:"start_date" binding:"required"`
	EndDate    string `form:"end_date" binding:"required"`
	GuestCount int    `form:"guests" binding:"required,gte=1"`
}

// SearchPropertiesRequest represents the query parameters for browsing listings.
type SearchPropertiesRequest struct {
	City      string `form:"city"`
	Country   string `form:"country"`
	Type      string `form:"type"`
	MinGuests int    `form:"guests" binding:"gte=0"`
	Limit     int    `form:"limit" binding:"gte=0,lte=100"`
	Offset    int    `form:"offset" binding:"gte=0"`
}

// PropertyResponse represents a single listing in API responses.
type PropertyResponse struct {
	entity.PropertyJSON
	FavoritesCount *int64 `json:"favoritesCount,omitempty"`
}

// PropertyListResponse represents the response for listing properties.
type PropertyListResponse struct {
	Properties []entity.PropertyJSON `json:"properties"`
}

// QuoteResponse represents a priced stay.
type QuoteResponse struct {
	Quote     entity.PriceQuote `json:"quote"`
	Available bool              `json:"available"`
}

// ToAddressInput converts the request address to the value object input.
func (r AddressRequest) ToAddressInput() (valueobject.AddressInput, error) {
	input := valueobject.AddressInput{
		Street:     r.Street,
		City:       r.City,
		State:      r.State,
		Country:    r.Country,
		PostalCode: r.PostalCode,
	}
	if r.Latitude != nil && r.Longitude != nil {
		coords, err := valueobject.NewCoordinates(*r.Latitude, *r.Longitude)
		if err != nil {
			return valueobject.AddressInput{}, err
		}
		input.Coordinates = &coords
	}
	return input, nil
}

// ToPropertyResponse converts a GetPropertyOutput to its response DTO.
func ToPropertyResponse(output *property.GetPropertyOutput) PropertyResponse {
	count := output.FavoritesCount
	return PropertyResponse{
		PropertyJSON:   output.Property.ToJSON(),
		FavoritesCount: &count,
	}
}

// ToPropertyListResponse converts a list of properties to its response DTO.
func ToPropertyListResponse(properties []*entity.Property) PropertyListResponse {
	items := make([]entity.PropertyJSON, 0, len(properties))
	for _, p := range properties {
		items = append(items, p.ToJSON())
	}
	return PropertyListResponse{Properties: items}
}
