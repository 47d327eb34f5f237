package dto

import (
	"github.com/rental-marketplace/backend/internal/application/usecase/favorite"
	"github.com/rental-marketplace/backend/internal/domain/entity"
)

// FavoriteResponse represents a saved property.
type FavoriteResponse struct {
	ID        string               `json:"id"`
	CreatedAt string               `json:"createdAt"`
	Property  *entity.PropertyJSON `json:"property,omitempty"`
}

// FavoriteListResponse represents the response for listing saved properties.
type FavoriteListResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
}

// ToFavoriteListResponse converts a ListFavoritesOutput to its response DTO.
func ToFavoriteListResponse(output *favorite.ListFavoritesOutput) FavoriteListResponse {
	items := make([]FavoriteResponse, 0, len(output.Favorites))
	for _, f := range output.Favorites {
		fav := f.Favorite.ToJSON()
		item := FavoriteResponse{ID: fav.ID, CreatedAt: fav.CreatedAt}
		if f.Property != nil {
			p := f.Property.ToJSON()
			item.Property = &p
		}
		items = append(items, item)
	}
	return FavoriteListResponse{Favorites: items}
}
