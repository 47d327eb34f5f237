// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/domain/entity"
)

// FavoriteRepository defines the interface for favorite persistence operations.
type FavoriteRepository interface {
	// Add stores a favorite. It returns domainerror.ErrFavoriteExists for a duplicate pair.
	Add(ctx context.Context, favorite *entity.Favorite) error

	// Remove deletes the favorite of a user for a property.
	Remove(ctx context.Context, userID, propertyID uuid.UUID) error

	// FindByUserID retrieves the favorites of a user, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Favorite, error)

	// Exists checks whether the user saved the property.
	Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)

	// CountByPropertyID counts how many users saved a property.
	CountByPropertyID(ctx context.Context, propertyID uuid.UUID) (int64, error)
}
