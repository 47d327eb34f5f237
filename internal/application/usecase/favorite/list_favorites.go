// Package favorite contains favorite-related use cases.
package favorite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

// ListFavoritesInput represents the input for listing saved properties.
type ListFavoritesInput struct {
	UserID uuid.UUID
}

// FavoriteWithProperty pairs a favorite with its property.
type FavoriteWithProperty struct {
	Favorite *entity.Favorite
	Property *entity.Property
}

// ListFavoritesOutput represents the output of listing saved properties.
type ListFavoritesOutput struct {
	Favorites []FavoriteWithProperty
}

// ListFavoritesUseCase lists a user's saved properties.
type ListFavoritesUseCase struct {
	favoriteRepo adapter.FavoriteRepository
	propertyRepo adapter.PropertyRepository
}

// NewListFavoritesUseCase creates a new ListFavoritesUseCase instance.
func NewListFavoritesUseCase(favoriteRepo adapter.FavoriteRepository, propertyRepo adapter.PropertyRepository) *ListFavoritesUseCase {
	return &ListFavoritesUseCase{
		favoriteRepo: favoriteRepo,
		propertyRepo: propertyRepo,
	}
}

// Execute lists the favorites. Favorites of deleted properties are skipped.
func (uc *ListFavoritesUseCase) Execute(ctx context.Context, input ListFavoritesInput) (*ListFavoritesOutput, error) {
	favorites, err := uc.favoriteRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	out := &ListFavoritesOutput{Favorites: make([]FavoriteWithProperty, 0, len(favorites))}
	for _, fav := range favorites {
		property, err := uc.propertyRepo.FindByID(ctx, fav.PropertyID())
		if err != nil {
			if errors.Is(err, domainerror.ErrPropertyNotFound) {
				slog.Debug("Skipping favorite of missing property", "propertyID", fav.PropertyID(), "userID", input.UserID)
				continue
			}
			return nil, fmt.Errorf("failed to find property: %w", err)
		}
		out.Favorites = append(out.Favorites, FavoriteWithProperty{Favorite: fav, Property: property})
	}
	return out, nil
}
