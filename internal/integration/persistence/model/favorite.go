// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/domain/entity"
)

// FavoriteModel represents the favorites table in the database.
type FavoriteModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_property,priority:1"`
	PropertyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_user_property,priority:2;index"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the FavoriteModel.
func (FavoriteModel) TableName() string {
	return "favorites"
}

// ToEntity converts a FavoriteModel to a domain Favorite entity.
func (m *FavoriteModel) ToEntity(opts ...entity.Option) *entity.Favorite {
	return entity.RestoreFavorite(m.ID, m.UserID, m.PropertyID, m.CreatedAt, opts...)
}

// FavoriteFromEntity creates a FavoriteModel from a domain Favorite entity.
func FavoriteFromEntity(favorite *entity.Favorite) *FavoriteModel {
	return &FavoriteModel{
		ID:         favorite.ID(),
		UserID:     favorite.UserID(),
		PropertyID: favorite.PropertyID(),
		CreatedAt:  favorite.CreatedAt(),
	}
}

// AllModels lists every model managed by auto-migration.
func AllModels() []any {
	return []any{
		&UserModel{},
		&PropertyModel{},
		&BookingModel{},
		&FavoriteModel{},
	}
}
