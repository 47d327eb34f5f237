package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/application/usecase/property"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
	"github.com/rental-marketplace/backend/internal/integration/entrypoint/dto"
	"github.com/rental-marketplace/backend/internal/integration/entrypoint/middleware"
)

// PropertyController handles listing endpoints.
type PropertyController struct {
	createUseCase   *property.CreatePropertyUseCase
	getUseCase      *property.GetPropertyUseCase
	listUseCase     *property.ListPropertiesUseCase
	publishUseCase  *property.PublishPropertyUseCase
	unlistUseCase   *property.UnlistPropertyUseCase
	addImageUseCase *property.AddImageUseCase
	quoteUseCase    *property.QuotePropertyUseCase
	defaultCurrency string
}

// NewPropertyController creates a new property controller instance.
func NewPropertyController(
	createUseCase *property.CreatePropertyUseCase,
	getUseCase *property.GetPropertyUseCase,
	listUseCase *property.ListPropertiesUseCase,
	publishUseCase *property.PublishPropertyUseCase,
	unlistUseCase *property.UnlistPropertyUseCase,
	addImageUseCase *property.AddImageUseCase,
	quoteUseCase *property.QuotePropertyUseCase,
	defaultCurrency string,
) *PropertyController {
	return &PropertyController{
		createUseCase:   createUseCase,
		getUseCase:      getUseCase,
		listUseCase:     listUseCase,
		publishUseCase:  publishUseCase,
		unlistUseCase:   unlistUseCase,
		addImageUseCase: addImageUseCase,
		quoteUseCase:    quoteUseCase,
		defaultCurrency: defaultCurrency,
	}
}

// Create handles POST /properties requests.
func (c *PropertyController) Create(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	var req dto.CreatePropertyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = c.defaultCurrency
	}

	basePrice, err := valueobject.NewMoney(req.BasePrice, currency)
	if err != nil {
		handleError(ctx, err)
		return
	}

	address, err := req.Address.ToAddressInput()
	if err != nil {
		handleError(ctx, err)
		return
	}

	input := property.CreatePropertyInput{
		HostID:         userID,
		Title:          req.Title,
		Description:    req.Description,
		Type:           entity.PropertyType(req.Type),
		Address:        address,
		BasePrice:      basePrice,
		MaxGuests:      req.MaxGuests,
		Bedrooms:       req.Bedrooms,
		Bathrooms:      req.Bathrooms,
		Beds:           req.Beds,
		Rules:          req.Rules,
		MinimumStay:    req.MinimumStay,
		MaximumStay:    req.MaximumStay,
		InstantBooking: req.InstantBooking,
		Amenities:      req.Amenities,
		Images:         req.Images,
	}

	if req.CleaningFee != nil {
		fee, err := valueobject.NewMoney(*req.CleaningFee, currency)
		if err != nil {
			handleError(ctx, err)
			return
		}
		input.CleaningFee = &fee
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, output.Property.ToJSON())
}

// Get handles GET /properties/:id requests.
func (c *PropertyController) Get(ctx *gin.Context) {
	propertyID, ok := pathID(ctx, "Invalid property ID format")
	if !ok {
		return
	}

	input := property.GetPropertyInput{PropertyID: propertyID}
	if viewerID, ok := middleware.GetUserIDFromContext(ctx); ok {
		input.ViewerID = viewerID
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPropertyResponse(output))
}

// Search handles GET /properties requests, browsing published listings.
func (c *PropertyController) Search(ctx *gin.Context) {
	var req dto.SearchPropertiesRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		badRequest(ctx, "Invalid query parameters", err)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), property.ListPropertiesInput{
		Filter: adapter.PropertyFilter{
			City:      req.City,
			Country:   req.Country,
			Type:      entity.PropertyType(req.Type),
			MinGuests: req.MinGuests,
			Limit:     req.Limit,
			Offset:    req.Offset,
		},
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPropertyListResponse(output.Properties))
}

// ListMine handles GET /host/properties requests.
func (c *PropertyController) ListMine(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), property.ListPropertiesInput{
		HostID: &userID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPropertyListResponse(output.Properties))
}

// Publish handles POST /properties/:id/publish requests.
func (c *PropertyController) Publish(ctx *gin.Context) {
	input, ok := changeStatusInput(ctx)
	if !ok {
		return
	}

	output, err := c.publishUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output.Property.ToJSON())
}

// Unlist handles POST /properties/:id/unlist requests.
func (c *PropertyController) Unlist(ctx *gin.Context) {
	input, ok := changeStatusInput(ctx)
	if !ok {
		return
	}

	output, err := c.unlistUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output.Property.ToJSON())
}

// AddImage handles POST /properties/:id/images requests.
func (c *PropertyController) AddImage(ctx *gin.Context) {
	input, ok := changeStatusInput(ctx)
	if !ok {
		return
	}

	var req dto.AddImageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.addImageUseCase.Execute(ctx.Request.Context(), property.AddImageInput{
		PropertyID: input.PropertyID,
		HostID:     input.HostID,
		URL:        req.URL,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, output.Property.ToJSON())
}

// Quote handles GET /properties/:id/quote requests.
func (c *PropertyController) Quote(ctx *gin.Context) {
	propertyID, ok := pathID(ctx, "Invalid property ID format")
	if !ok {
		return
	}

	var req dto.QuoteRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		badRequest(ctx, "Invalid query parameters", err)
		return
	}

	dateRange, err := valueobject.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.quoteUseCase.Execute(ctx.Request.Context(), property.QuoteInput{
		PropertyID: propertyID,
		StartDate:  dateRange.Start(),
		EndDate:    dateRange.End(),
		GuestCount: req.GuestCount,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.QuoteResponse{
		Quote:     output.Quote,
		Available: output.Available,
	})
}

func changeStatusInput(ctx *gin.Context) (property.ChangeStatusInput, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return property.ChangeStatusInput{}, false
	}

	propertyID, ok := pathID(ctx, "Invalid property ID format")
	if !ok {
		return property.ChangeStatusInput{}, false
	}

	return property.ChangeStatusInput{PropertyID: propertyID, HostID: userID}, true
}
