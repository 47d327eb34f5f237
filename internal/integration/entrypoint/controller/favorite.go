package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rental-marketplace/backend/internal/application/usecase/favorite"
	"github.com/rental-marketplace/backend/internal/integration/entrypoint/dto"
	"github.com/rental-marketplace/backend/internal/integration/entrypoint/middleware"
)

// FavoriteController handles saved-property endpoints.
type FavoriteController struct {
	addUseCase    *favorite.AddFavoriteUseCase
	removeUseCase *favorite.RemoveFavoriteUseCase
	listUseCase   *favorite.ListFavoritesUseCase
}

// NewFavoriteController creates a new favorite controller instance.
func NewFavoriteController(
	addUseCase *favorite.AddFavoriteUseCase,
	removeUseCase *favorite.RemoveFavoriteUseCase,
	listUseCase *favorite.ListFavoritesUseCase,
) *FavoriteController {
	return &FavoriteController{
		addUseCase:    addUseCase,
		removeUseCase: removeUseCase,
		listUseCase:   listUseCase,
	}
}

// List handles GET /favorites requests.
func (c *FavoriteController) List(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), favorite.ListFavoritesInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFavoriteListResponse(output))
}

// Add handles PUT /favorites/:id requests, where :id is the property.
func (c *FavoriteController) Add(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}
	propertyID, ok := pathID(ctx, "Invalid property ID format")
	if !ok {
		return
	}

	output, err := c.addUseCase.Execute(ctx.Request.Context(), favorite.AddFavoriteInput{
		UserID:     userID,
		PropertyID: propertyID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, output.Favorite.ToJSON())
}

// Remove handles DELETE /favorites/:id requests, where :id is the property.
func (c *FavoriteController) Remove(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		unauthenticated(ctx)
		return
	}
	propertyID, ok := pathID(ctx, "Invalid property ID format")
	if !ok {
		return
	}

	if err := c.removeUseCase.Execute(ctx.Request.Context(), favorite.RemoveFavoriteInput{
		UserID:     userID,
		PropertyID: propertyID,
	}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
