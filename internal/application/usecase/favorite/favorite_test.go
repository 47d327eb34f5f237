package favorite_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/application/usecase/favorite"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
	"github.com/rental-marketplace/backend/internal/integration/persistence"
	"github.com/rental-marketplace/backend/internal/integration/persistence/persistencetest"
)

func clock() time.Time { return time.Date(2030, time.March, 1, 9, 0, 0, 0, time.UTC) }

func setup(t *testing.T) (adapter.FavoriteRepository, adapter.PropertyRepository) {
	t.Helper()
	db := persistencetest.NewDB(t)
	return persistence.NewFavoriteRepository(db, entity.WithClock(clock)),
		persistence.NewPropertyRepository(db, entity.WithClock(clock))
}

func addProperty(t *testing.T, repo adapter.PropertyRepository, publish bool) *entity.Property {
	t.Helper()
	address, err := valueobject.NewAddress(valueobject.AddressInput{Street: "5 Souq Waqif", City: "Doha", Country: "Qatar"})
	require.NoError(t, err)
	price, err := valueobject.NewMoney(decimal.NewFromInt(250), "QAR")
	require.NoError(t, err)
	p, err := entity.NewProperty(entity.CreatePropertyParams{
		HostID:      uuid.New(),
		Title:       "Old town house",
		Description: "Restored courtyard house a short walk from the souq and the corniche.",
		Type:        entity.PropertyTypeHouse,
		Address:     address,
		BasePrice:   price,
		MaxGuests:   5,
		Bedrooms:    2,
		Bathrooms:   2,
		Beds:        3,
		Images:      []string{"https://cdn.example.com/house.jpg"},
	}, entity.WithClock(clock))
	require.NoError(t, err)
	if publish {
		require.NoError(t, p.Publish())
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestAddFavoriteUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	favorites, properties := setup(t)
	uc := favorite.NewAddFavoriteUseCase(favorites, properties, entity.WithClock(clock))
	userID := uuid.New()
	published := addProperty(t, properties, true)
	draft := addProperty(t, properties, false)

	out, err := uc.Execute(ctx, favorite.AddFavoriteInput{UserID: userID, PropertyID: published.ID()})
	require.NoError(t, err)
	assert.Equal(t, userID, out.Favorite.UserID())
	assert.Equal(t, published.ID(), out.Favorite.PropertyID())

	_, err = uc.Execute(ctx, favorite.AddFavoriteInput{UserID: userID, PropertyID: published.ID()})
	assert.ErrorIs(t, err, domainerror.ErrFavoriteExists)

	_, err = uc.Execute(ctx, favorite.AddFavoriteInput{UserID: userID, PropertyID: draft.ID()})
	assert.ErrorIs(t, err, domainerror.ErrPropertyNotFound)

	_, err = uc.Execute(ctx, favorite.AddFavoriteInput{UserID: userID, PropertyID: uuid.New()})
	assert.ErrorIs(t, err, domainerror.ErrPropertyNotFound)

	count, err := favorites.CountByPropertyID(ctx, published.ID())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestListFavoritesUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	favorites, properties := setup(t)
	userID := uuid.New()
	kept := addProperty(t, properties, true)
	removed := addProperty(t, properties, true)

	add := favorite.NewAddFavoriteUseCase(favorites, properties, entity.WithClock(clock))
	for _, id := range []uuid.UUID{kept.ID(), removed.ID()} {
		_, err := add.Execute(ctx, favorite.AddFavoriteInput{UserID: userID, PropertyID: id})
		require.NoError(t, err)
	}
	require.NoError(t, properties.Delete(ctx, removed.ID()))

	out, err := favorite.NewListFavoritesUseCase(favorites, properties).Execute(ctx, favorite.ListFavoritesInput{UserID: userID})
	require.NoError(t, err)
	require.Len(t, out.Favorites, 1)
	assert.Equal(t, kept.ID(), out.Favorites[0].Property.ID())

	other, err := favorite.NewListFavoritesUseCase(favorites, properties).Execute(ctx, favorite.ListFavoritesInput{UserID: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, other.Favorites)
}

func TestRemoveFavoriteUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	favorites, properties := setup(t)
	userID := uuid.New()
	listing := addProperty(t, properties, true)

	_, err := favorite.NewAddFavoriteUseCase(favorites, properties).Execute(ctx, favorite.AddFavoriteInput{UserID: userID, PropertyID: listing.ID()})
	require.NoError(t, err)

	uc := favorite.NewRemoveFavoriteUseCase(favorites)
	require.NoError(t, uc.Execute(ctx, favorite.RemoveFavoriteInput{UserID: userID, PropertyID: listing.ID()}))

	exists, err := favorites.Exists(ctx, userID, listing.ID())
	require.NoError(t, err)
	assert.False(t, exists)

	err = uc.Execute(ctx, favorite.RemoveFavoriteInput{UserID: userID, PropertyID: listing.ID()})
	assert.ErrorIs(t, err, domainerror.ErrFavoriteNotFound)
}
