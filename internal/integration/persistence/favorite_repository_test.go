package persistence_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
	"github.com/rental-marketplace/backend/internal/integration/persistence"
	"github.com/rental-marketplace/backend/internal/integration/persistence/persistencetest"
)

func TestFavoriteRepository(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewFavoriteRepository(persistencetest.NewDB(t))
	userID, propertyID := uuid.New(), uuid.New()

	favorite, err := entity.NewFavorite(userID, propertyID, entity.WithClock(fixedClock))
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, favorite))

	t.Run("duplicate pair is refused", func(t *testing.T) {
		dup, err := entity.NewFavorite(userID, propertyID)
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Add(ctx, dup), domainerror.ErrFavoriteExists)
	})

	t.Run("lookups", func(t *testing.T) {
		other, err := entity.NewFavorite(uuid.New(), propertyID)
		require.NoError(t, err)
		require.NoError(t, repo.Add(ctx, other))

		exists, err := repo.Exists(ctx, userID, propertyID)
		require.NoError(t, err)
		assert.True(t, exists)

		count, err := repo.CountByPropertyID(ctx, propertyID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		mine, err := repo.FindByUserID(ctx, userID)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, favorite.ToJSON(), mine[0].ToJSON())
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, repo.Remove(ctx, userID, propertyID))
		assert.ErrorIs(t, repo.Remove(ctx, userID, propertyID), domainerror.ErrFavoriteNotFound)

		exists, err := repo.Exists(ctx, userID, propertyID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
