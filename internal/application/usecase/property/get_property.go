// Package property contains property-related use cases.
package property

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

// GetPropertyInput represents the input for fetching a property.
type GetPropertyInput struct {
	PropertyID uuid.UUID
	ViewerID   uuid.UUID // Optional
}

// GetPropertyOutput represents the output of fetching a property.
type GetPropertyOutput struct {
	Property       *entity.Property
	FavoritesCount int64
}

// GetPropertyUseCase returns a listing. Non-published listings are only visible to their host.
type GetPropertyUseCase struct {
	propertyRepo adapter.PropertyRepository
	favoriteRepo adapter.FavoriteRepository
}

// NewGetPropertyUseCase creates a new GetPropertyUseCase instance.
func NewGetPropertyUseCase(propertyRepo adapter.PropertyRepository, favoriteRepo adapter.FavoriteRepository) *GetPropertyUseCase {
	return &GetPropertyUseCase{
		propertyRepo: propertyRepo,
		favoriteRepo: favoriteRepo,
	}
}

// Execute fetches the property.
func (uc *GetPropertyUseCase) Execute(ctx context.Context, input GetPropertyInput) (*GetPropertyOutput, error) {
	property, err := loadProperty(ctx, uc.propertyRepo, input.PropertyID)
	if err != nil {
		return nil, err
	}
	if !property.IsBookable() && !property.IsOwnedBy(input.ViewerID) {
		return nil, domainerror.NewPropertyError(
			domainerror.ErrCodePropertyNotFound,
			"property not found",
			domainerror.ErrPropertyNotFound,
		)
	}

	count, err := uc.favoriteRepo.CountByPropertyID(ctx, property.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	return &GetPropertyOutput{
		Property:       property,
		FavoritesCount: count,
	}, nil
}
