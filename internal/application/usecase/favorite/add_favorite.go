// Package favorite contains favorite-related use cases.
package favorite

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

// AddFavoriteInput represents the input for saving a property.
type AddFavoriteInput struct {
	UserID     uuid.UUID
	PropertyID uuid.UUID
}

// AddFavoriteOutput represents the output of saving a property.
type AddFavoriteOutput struct {
	Favorite *entity.Favorite
}

// AddFavoriteUseCase saves a published property to a user's favorites.
type AddFavoriteUseCase struct {
	favoriteRepo adapter.FavoriteRepository
	propertyRepo adapter.PropertyRepository
	entityOpts   []entity.Option
}

// NewAddFavoriteUseCase creates a new AddFavoriteUseCase instance.
func NewAddFavoriteUseCase(favoriteRepo adapter.FavoriteRepository, propertyRepo adapter.PropertyRepository, opts ...entity.Option) *AddFavoriteUseCase {
	return &AddFavoriteUseCase{
		favoriteRepo: favoriteRepo,
		propertyRepo: propertyRepo,
		entityOpts:   opts,
	}
}

// Execute saves the favorite.
func (uc *AddFavoriteUseCase) Execute(ctx context.Context, input AddFavoriteInput) (*AddFavoriteOutput, error) {
	property, err := uc.propertyRepo.FindByID(ctx, input.PropertyID)
	if err != nil {
		if errors.Is(err, domainerror.ErrPropertyNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	if !property.IsBookable() {
		return nil, domainerror.NewPropertyError(
			domainerror.ErrCodePropertyNotFound,
			"property not found",
			domainerror.ErrPropertyNotFound,
		)
	}

	favorite, err := entity.NewFavorite(input.UserID, property.ID(), uc.entityOpts...)
	if err != nil {
		return nil, err
	}

	if err := uc.favoriteRepo.Add(ctx, favorite); err != nil {
		if errors.Is(err, domainerror.ErrFavoriteExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	return &AddFavoriteOutput{Favorite: favorite}, nil
}
