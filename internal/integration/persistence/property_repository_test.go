package persistence_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
	"github.com/rental-marketplace/backend/internal/integration/persistence"
	"github.com/rental-marketplace/backend/internal/integration/persistence/persistencetest"
)

func TestPropertyRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewPropertyRepository(persistencetest.NewDB(t), entity.WithClock(fixedClock))

	property := newProperty(t, uuid.New(), "Doha", 4, true)
	require.NoError(t, repo.Create(ctx, property))

	found, err := repo.FindByID(ctx, property.ID())
	require.NoError(t, err)
	assert.Equal(t, property.ToJSON(), found.ToJSON())
	require.NotNil(t, found.CleaningFee())
	assert.True(t, found.CleaningFee().Equals(qar(t, 20)))
	assert.Equal(t, []entity.Amenity{{ID: "wifi", Name: "Wifi"}}, found.Amenities())

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrPropertyNotFound)
}

func TestPropertyRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewPropertyRepository(persistencetest.NewDB(t), entity.WithClock(fixedClock))

	property := newProperty(t, uuid.New(), "Doha", 4, false)
	require.NoError(t, repo.Create(ctx, property))

	require.NoError(t, property.UpdatePricing(qar(t, 500), nil))
	require.NoError(t, property.Publish())
	require.NoError(t, repo.Update(ctx, property))

	found, err := repo.FindByID(ctx, property.ID())
	require.NoError(t, err)
	assert.Equal(t, entity.PropertyStatusPublished, found.Status())
	assert.True(t, found.BasePrice().Equals(qar(t, 500)))
	assert.Nil(t, found.CleaningFee())
	assert.NotNil(t, found.PublishedAt())
}

func TestPropertyRepository_FindPublished(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewPropertyRepository(persistencetest.NewDB(t), entity.WithClock(fixedClock))
	hostID := uuid.New()

	small := newProperty(t, hostID, "Doha", 2, true)
	large := newProperty(t, hostID, "Doha", 8, true)
	lusail := newProperty(t, uuid.New(), "Lusail", 6, true)
	draft := newProperty(t, hostID, "Doha", 8, false)
	for _, p := range []*entity.Property{small, large, lusail, draft} {
		require.NoError(t, repo.Create(ctx, p))
	}

	tests := []struct {
		name   string
		filter adapter.PropertyFilter
		want   []uuid.UUID
	}{
		{"city is case insensitive", adapter.PropertyFilter{City: "doha"}, []uuid.UUID{small.ID(), large.ID()}},
		{"capacity", adapter.PropertyFilter{MinGuests: 5}, []uuid.UUID{large.ID(), lusail.ID()}},
		{"city and capacity", adapter.PropertyFilter{City: "Doha", MinGuests: 5}, []uuid.UUID{large.ID()}},
		{"type", adapter.PropertyFilter{Type: entity.PropertyTypeVilla}, nil},
		{"country", adapter.PropertyFilter{Country: "QATAR"}, []uuid.UUID{small.ID(), large.ID(), lusail.ID()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindPublished(ctx, tt.filter)
			require.NoError(t, err)
			ids := make([]uuid.UUID, 0, len(found))
			for _, p := range found {
				ids = append(ids, p.ID())
			}
			assert.ElementsMatch(t, tt.want, ids)
		})
	}

	t.Run("pagination", func(t *testing.T) {
		page, err := repo.FindPublished(ctx, adapter.PropertyFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, page, 2)

		rest, err := repo.FindPublished(ctx, adapter.PropertyFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Len(t, rest, 1)
	})

	t.Run("by host and status", func(t *testing.T) {
		mine, err := repo.FindByHostID(ctx, hostID)
		require.NoError(t, err)
		assert.Len(t, mine, 3)

		drafts, err := repo.FindByStatus(ctx, entity.PropertyStatusDraft)
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, draft.ID(), drafts[0].ID())
	})
}

func TestPropertyRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewPropertyRepository(persistencetest.NewDB(t))

	property := newProperty(t, uuid.New(), "Doha", 4, true)
	require.NoError(t, repo.Create(ctx, property))
	require.NoError(t, repo.Delete(ctx, property.ID()))

	_, err := repo.FindByID(ctx, property.ID())
	assert.ErrorIs(t, err, domainerror.ErrPropertyNotFound)
}
