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

func TestUserRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewUserRepository(persistencetest.NewDB(t), entity.WithClock(fixedClock))

	user := newUser(t, "omar@example.com", entity.RoleGuest, entity.RoleHost)
	require.NoError(t, repo.Create(ctx, user))

	found, err := repo.FindByID(ctx, user.ID())
	require.NoError(t, err)
	assert.Equal(t, user.ToJSON(), found.ToJSON())
	assert.True(t, found.IsHost())
	require.NotNil(t, found.HostProfile())

	byEmail, err := repo.FindByEmail(ctx, " OMAR@example.com ")
	require.NoError(t, err)
	assert.Equal(t, user.ID(), byEmail.ID())

	exists, err := repo.ExistsByEmail(ctx, "omar@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewUserRepository(persistencetest.NewDB(t))

	require.NoError(t, repo.Create(ctx, newUser(t, "sara@example.com")))
	err := repo.Create(ctx, newUser(t, "Sara@Example.com"))
	assert.ErrorIs(t, err, domainerror.ErrEmailAlreadyExists)
}

func TestUserRepository_Update(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewUserRepository(persistencetest.NewDB(t), entity.WithClock(fixedClock))

	user := newUser(t, "omar@example.com")
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, user.AddRole(entity.RoleHost))
	require.NoError(t, user.UpdateHostMetrics(entity.HostMetrics{ResponseRate: 97, ResponseTimeHours: 1, TotalBookings: 12}))
	require.True(t, user.VerifyEmail())
	require.NoError(t, repo.Update(ctx, user))

	found, err := repo.FindByID(ctx, user.ID())
	require.NoError(t, err)
	assert.Equal(t, entity.VerificationEmailVerified, found.VerificationStatus())
	require.NotNil(t, found.HostProfile())
	assert.True(t, found.HostProfile().IsSuperhost)
	assert.Equal(t, user.ToJSON(), found.ToJSON())
}

func TestUserRepository_FindByRoleAndStatus(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewUserRepository(persistencetest.NewDB(t))

	guest := newUser(t, "guest@example.com")
	host := newUser(t, "host@example.com", entity.RoleGuest, entity.RoleHost)
	admin := newUser(t, "admin@example.com", entity.RoleAdmin)
	require.NoError(t, admin.Suspend("audit"))
	for _, u := range []*entity.User{guest, host, admin} {
		require.NoError(t, repo.Create(ctx, u))
	}

	hosts, err := repo.FindByRole(ctx, entity.RoleHost)
	require.NoError(t, err)
	require.Len(t, hosts, 1)
	assert.Equal(t, host.ID(), hosts[0].ID())

	guests, err := repo.FindByRole(ctx, entity.RoleGuest)
	require.NoError(t, err)
	assert.Len(t, guests, 2)

	suspended, err := repo.FindByStatus(ctx, entity.UserStatusSuspended)
	require.NoError(t, err)
	require.Len(t, suspended, 1)
	assert.Equal(t, admin.ID(), suspended[0].ID())

	require.NoError(t, repo.Delete(ctx, guest.ID()))
	_, err = repo.FindByID(ctx, guest.ID())
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
}
