package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
	"github.com/rental-marketplace/backend/internal/integration/entrypoint/dto"
)

// codedError extracts the stable code and message from any area error.
func codedError(err error) (code, message string, ok bool) {
	var (
		bookingErr  *domainerror.BookingError
		propertyErr *domainerror.PropertyError
		userErr     *domainerror.UserError
		favoriteErr *domainerror.FavoriteError
		voErr       *domainerror.ValueObjectError
	)
	switch {
	case errors.As(err, &bookingErr):
		return string(bookingErr.Code), bookingErr.Message, true
	case errors.As(err, &propertyErr):
		return string(propertyErr.Code), propertyErr.Message, true
	case errors.As(err, &userErr):
		return string(userErr.Code), userErr.Message, true
	case errors.As(err, &favoriteErr):
		return string(favoriteErr.Code), favoriteErr.Message, true
	case errors.As(err, &voErr):
		return string(voErr.Code), voErr.Message, true
	}
	return "", "", false
}

// statusCodeForError maps a domain error kind to an HTTP status code.
func statusCodeForError(err error) int {
	for _, forbidden := range []error{
		domainerror.ErrNotBookingParticipant,
		domainerror.ErrNotPropertyHost,
		domainerror.ErrNotHost,
	} {
		if errors.Is(err, forbidden) {
			return http.StatusForbidden
		}
	}
	switch domainerror.Kind(err) {
	case domainerror.ErrNotFound:
		return http.StatusNotFound
	case domainerror.ErrAlreadyExists:
		return http.StatusConflict
	case domainerror.ErrValidation, domainerror.ErrCurrencyMismatch:
		return http.StatusBadRequest
	case domainerror.ErrInvalidTransition, domainerror.ErrInvariantViolation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes the HTTP response for a use case error.
func handleError(ctx *gin.Context, err error) {
	status := statusCodeForError(err)
	code, message, ok := codedError(err)
	if !ok || status == http.StatusInternalServerError {
		slog.Error("Request failed", "method", ctx.Request.Method, "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func badRequest(ctx *gin.Context, message string, err error) {
	response := dto.ErrorResponse{Error: message}
	if err != nil {
		response.Details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, response)
}

func unauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
	})
}

// pathID parses the :id path parameter.
func pathID(ctx *gin.Context, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: message,
		})
		return uuid.Nil, false
	}
	return id, true
}
