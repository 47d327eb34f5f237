package dto

import (
	"github.com/rental-marketplace/backend/internal/application/usecase/booking"
	"github.com/rental-marketplace/backend/internal/domain/entity"
)

// CreateBookingRequest represents the request body for booking creation.
// Dates are calendar days in YYYY-MM-DD form.
type CreateBookingRequest struct {
	PropertyID         string `json:"property_id" binding:"required,uuid"`
	StartDate          string `json:"start_date" binding:"required"`
	EndDate            string `json:"end_date" binding:"required"`
	GuestCount         int    `json:"guest_count" binding:"required,gte=1"`
	CancellationPolicy string `json:"cancellation_policy,omitempty" binding:"omitempty,oneof=FLEXIBLE MODERATE STRICT"`
	SpecialRequests    string `json:"special_requests,omitempty"`
}

// ReasonRequest carries the reason for a rejection or cancellation.
type ReasonRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CreateBookingResponse represents the response for booking creation.
type CreateBookingResponse struct {
	Booking entity.BookingJSON `json:"booking"`
	Quote   entity.PriceQuote  `json:"quote"`
}

// CancelBookingResponse represents the response for booking cancellation.
type CancelBookingResponse struct {
	Booking entity.BookingJSON `json:"booking"`
	Refund  RefundResponse     `json:"refund"`
}

// RefundResponse is the refund owed after a cancellation.
type RefundResponse struct {
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	Percentage int    `json:"percentage"`
}

// BookingListResponse represents the response for listing bookings.
type BookingListResponse struct {
	Bookings []entity.BookingJSON `json:"bookings"`
}

// ToCreateBookingResponse converts a CreateBookingOutput to its response DTO.
func ToCreateBookingResponse(output *booking.CreateBookingOutput) CreateBookingResponse {
	return CreateBookingResponse{
		Booking: output.Booking.ToJSON(),
		Quote:   output.Quote,
	}
}

// ToCancelBookingResponse converts a CancelBookingOutput to its response DTO.
func ToCancelBookingResponse(output *booking.CancelBookingOutput) CancelBookingResponse {
	return CancelBookingResponse{
		Booking: output.Booking.ToJSON(),
		Refund: RefundResponse{
			Amount:     output.Refund.RefundAmount.Amount().StringFixed(2),
			Currency:   output.Refund.RefundAmount.Currency(),
			Percentage: output.Refund.RefundPercentage,
		},
	}
}

// ToBookingListResponse converts a list of bookings to its response DTO.
func ToBookingListResponse(bookings []*entity.Booking) BookingListResponse {
	items := make([]entity.BookingJSON, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, b.ToJSON())
	}
	return BookingListResponse{Bookings: items}
}
