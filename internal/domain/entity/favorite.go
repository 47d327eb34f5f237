package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

// Favorite records that a user saved a property. A (user, property) pair is unique.
type Favorite struct {
	Base
	userID     uuid.UUID
	propertyID uuid.UUID
}

// NewFavorite creates a favorite for the given user and property.
func NewFavorite(userID, propertyID uuid.UUID, opts ...Option) (*Favorite, error) {
	if userID == uuid.Nil || propertyID == uuid.Nil {
		return nil, domainerror.NewFavoriteError(
			domainerror.ErrCodeInvalidFavorite,
			"user id and property id are required",
			domainerror.ErrInvalidFavorite,
		)
	}
	return &Favorite{
		Base:       newBase(buildConfig(opts)),
		userID:     userID,
		propertyID: propertyID,
	}, nil
}

// RestoreFavorite rebuilds a favorite from persisted state.
func RestoreFavorite(id, userID, propertyID uuid.UUID, createdAt time.Time, opts ...Option) *Favorite {
	return &Favorite{
		Base:       restoreBase(id, createdAt, createdAt, opts),
		userID:     userID,
		propertyID: propertyID,
	}
}

func (f *Favorite) UserID() uuid.UUID     { return f.userID }
func (f *Favorite) PropertyID() uuid.UUID { return f.propertyID }

// FavoriteJSON is the plain projection of a Favorite.
type FavoriteJSON struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	PropertyID string `json:"propertyId"`
	CreatedAt  string `json:"createdAt"`
}

// ToJSON returns the plain projection of the favorite.
func (f *Favorite) ToJSON() FavoriteJSON {
	return FavoriteJSON{
		ID:         f.id.String(),
		UserID:     f.userID.String(),
		PropertyID: f.propertyID.String(),
		CreatedAt:  formatTime(f.createdAt),
	}
}

// MarshalJSON implements json.Marshaler.
func (f *Favorite) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.ToJSON())
}
