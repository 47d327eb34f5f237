// Package favorite contains favorite-related use cases.
package favorite

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

// RemoveFavoriteInput represents the input for removing a saved property.
type RemoveFavoriteInput struct {
	UserID     uuid.UUID
	PropertyID uuid.UUID
}

// RemoveFavoriteUseCase removes a property from a user's favorites.
type RemoveFavoriteUseCase struct {
	favoriteRepo adapter.FavoriteRepository
}

// NewRemoveFavoriteUseCase creates a new RemoveFavoriteUseCase instance.
func NewRemoveFavoriteUseCase(favoriteRepo adapter.FavoriteRepository) *RemoveFavoriteUseCase {
	return &RemoveFavoriteUseCase{favoriteRepo: favoriteRepo}
}

// Execute removes the favorite.
func (uc *RemoveFavoriteUseCase) Execute(ctx context.Context, input RemoveFavoriteInput) error {
	if err := uc.favoriteRepo.Remove(ctx, input.UserID, input.PropertyID); err != nil {
		if errors.Is(err, domainerror.ErrFavoriteNotFound) {
			return err
		}
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}
