// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
	"github.com/rental-marketplace/backend/internal/integration/persistence/model"
)

// favoriteRepository implements the adapter.FavoriteRepository interface.
type favoriteRepository struct {
	db         *gorm.DB
	entityOpts []entity.Option
}

// NewFavoriteRepository creates a new favorite repository instance.
func NewFavoriteRepository(db *gorm.DB, opts ...entity.Option) adapter.FavoriteRepository {
	return &favoriteRepository{
		db:         db,
		entityOpts: opts,
	}
}

// Add stores a favorite unless the user already saved the property.
func (r *favoriteRepository) Add(ctx context.Context, favorite *entity.Favorite) error {
	exists, err := r.Exists(ctx, favorite.UserID(), favorite.PropertyID())
	if err != nil {
		return err
	}
	if exists {
		return favoriteExistsError()
	}

	result := r.db.WithContext(ctx).Create(model.FavoriteFromEntity(favorite))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return favoriteExistsError()
		}
		return result.Error
	}
	return nil
}

// Remove deletes the favorite of a user for a property.
func (r *favoriteRepository) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&model.FavoriteModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.NewFavoriteError(
			domainerror.ErrCodeFavoriteNotFound,
			"favorite not found",
			domainerror.ErrFavoriteNotFound,
		)
	}
	return nil
}

// FindByUserID retrieves the favorites of a user.
func (r *favoriteRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Favorite, error) {
	var favoriteModels []model.FavoriteModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favoriteModels)
	if result.Error != nil {
		return nil, result.Error
	}

	favorites := make([]*entity.Favorite, len(favoriteModels))
	for i := range favoriteModels {
		favorites[i] = favoriteModels[i].ToEntity(r.entityOpts...)
	}
	return favorites, nil
}

// Exists checks whether the user saved the property.
func (r *favoriteRepository) Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.FavoriteModel{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// CountByPropertyID counts how many users saved a property.
func (r *favoriteRepository) CountByPropertyID(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.FavoriteModel{}).
		Where("property_id = ?", propertyID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func favoriteExistsError() error {
	return domainerror.NewFavoriteError(
		domainerror.ErrCodeFavoriteExists,
		"property already in favorites",
		domainerror.ErrFavoriteExists,
	)
}
