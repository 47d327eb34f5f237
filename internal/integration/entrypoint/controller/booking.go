// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/usecase/booking"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
	"github.com/rental-marketplace/backend/internal/integration/entrypoint/dto"
	"github.com/rental-marketplace/backend/internal/integration/entrypoint/middleware"
)

// BookingController handles booking endpoints.
type BookingController struct {
	createUseCase  *booking.CreateBookingUseCase
	getUseCase     *booking.GetBookingUseCase
	listUseCase    *booking.ListBookingsUseCase
	confirmUseCase *booking.ConfirmBookingUseCase
	rejectUseCase  *booking.RejectBookingUseCase
	cancelUseCase  *booking.CancelBookingUseCase
}

// NewBookingController creates a new booking controller instance.
func NewBookingController(
	createUseCase *booking.CreateBookingUseCase,
	getUseCase *booking.GetBookingUseCase,
	listUseCase *booking.ListBookingsUseCase,
	confirmUseCase *booking.ConfirmBookingUseCase,
	rejectUseCase *booking.RejectBookingUseCase,
	cancelUseCase *booking.CancelBookingUseCase,
) *BookingController {
	return &BookingController{
		createUseCase:  createUseCase,
		getUseCase:     getUseCase,
		listUseCase:    listUseCase,
		confirmUseCase: confirmUseCase,
		rejectUseCase:  rejectUseCase,
		cancelUseCase:  cancelUseCase,
	}
}

// Create handles POST /bookings requests.
func (c *BookingController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	var req dto.CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	dateRange, err := valueobject.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		handleError(ctx, err)
		return
	}

	input := booking.CreateBookingInput{
		GuestID:            userID,
		PropertyID:         uuid.MustParse(req.PropertyID),
		StartDate:          dateRange.Start(),
		EndDate:            dateRange.End(),
		GuestCount:         req.GuestCount,
		CancellationPolicy: entity.CancellationPolicy(req.CancellationPolicy),
		SpecialRequests:    req.SpecialRequests,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCreateBookingResponse(output))
}

// Get handles GET /bookings/:id requests.
func (c *BookingController) Get(ctx *gin.Context) {
	userID, bookingID, ok := bookingRequestIDs(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), booking.GetBookingInput{
		BookingID: bookingID,
		ActorID:   userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output.Booking.ToJSON())
}

// List handles GET /bookings requests. ?as=host lists reservations on the caller's listings.
func (c *BookingController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	input := booking.ListBookingsInput{
		UserID: userID,
		As:     entity.RoleGuest,
	}
	if as := ctx.Query("as"); as != "" {
		role, err := entity.ParseRole(as)
		if err != nil {
			handleError(ctx, err)
			return
		}
		input.As = role
	}
	if status := ctx.Query("status"); status != "" {
		s := entity.BookingStatus(status)
		input.Status = &s
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBookingListResponse(output.Bookings))
}

// Confirm handles POST /bookings/:id/confirm requests.
func (c *BookingController) Confirm(ctx *gin.Context) {
	userID, bookingID, ok := bookingRequestIDs(ctx)
	if !ok {
		return
	}

	output, err := c.confirmUseCase.Execute(ctx.Request.Context(), booking.ConfirmBookingInput{
		BookingID: bookingID,
		HostID:    userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output.Booking.ToJSON())
}

// Reject handles POST /bookings/:id/reject requests.
func (c *BookingController) Reject(ctx *gin.Context) {
	userID, bookingID, ok := bookingRequestIDs(ctx)
	if !ok {
		return
	}

	var req dto.ReasonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.rejectUseCase.Execute(ctx.Request.Context(), booking.RejectBookingInput{
		BookingID: bookingID,
		HostID:    userID,
		Reason:    req.Reason,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output.Booking.ToJSON())
}

// Cancel handles POST /bookings/:id/cancel requests from either the guest or the host.
func (c *BookingController) Cancel(ctx *gin.Context) {
	userID, bookingID, ok := bookingRequestIDs(ctx)
	if !ok {
		return
	}

	var req dto.ReasonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.cancelUseCase.Execute(ctx.Request.Context(), booking.CancelBookingInput{
		BookingID: bookingID,
		ActorID:   userID,
		Reason:    req.Reason,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCancelBookingResponse(output))
}

// bookingRequestIDs reads the caller and the :id path parameter, writing the error response on failure.
func bookingRequestIDs(ctx *gin.Context) (userID, bookingID uuid.UUID, ok bool) {
	userID, ok = middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return uuid.Nil, uuid.Nil, false
	}

	bookingID, ok = pathID(ctx, "Invalid booking ID format")
	return userID, bookingID, ok
}
