package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/application/usecase/user"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
	"github.com/rental-marketplace/backend/internal/integration/persistence"
	"github.com/rental-marketplace/backend/internal/integration/persistence/persistencetest"
)

func clock() time.Time { return time.Date(2030, time.March, 1, 9, 0, 0, 0, time.UTC) }

func newRepo(t *testing.T) adapter.UserRepository {
	t.Helper()
	return persistence.NewUserRepository(persistencetest.NewDB(t), entity.WithClock(clock))
}

func register(t *testing.T, repo adapter.UserRepository, email string, asHost bool) *entity.User {
	t.Helper()
	out, err := user.NewRegisterUserUseCase(repo, entity.WithClock(clock)).Execute(context.Background(), user.RegisterUserInput{
		Email:     email,
		FirstName: "Mariam",
		LastName:  "Haddad",
		Languages: []string{"ar", "en"},
		AsHost:    asHost,
	})
	require.NoError(t, err)
	return out.User
}

func TestRegisterUserUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	uc := user.NewRegisterUserUseCase(repo, entity.WithClock(clock))

	t.Run("guest account", func(t *testing.T) {
		out, err := uc.Execute(ctx, user.RegisterUserInput{
			Email:       "  Mariam@Example.com ",
			PhoneNumber: "+974 5555 0000",
			FirstName:   "Mariam",
			LastName:    "Haddad",
		})
		require.NoError(t, err)
		assert.Equal(t, "mariam@example.com", out.User.Email().String())
		assert.Equal(t, []entity.Role{entity.RoleGuest}, out.User.Roles())
		assert.Equal(t, entity.VerificationUnverified, out.User.VerificationStatus())
		assert.Nil(t, out.User.HostProfile())
		require.NotNil(t, out.User.PhoneNumber())

		stored, err := repo.FindByID(ctx, out.User.ID())
		require.NoError(t, err)
		assert.Equal(t, out.User.ToJSON(), stored.ToJSON())
	})

	t.Run("host account", func(t *testing.T) {
		out, err := uc.Execute(ctx, user.RegisterUserInput{
			Email:     "host@example.com",
			FirstName: "Yousef",
			LastName:  "Nasser",
			AsHost:    true,
		})
		require.NoError(t, err)
		assert.True(t, out.User.IsHost())
		assert.NotNil(t, out.User.HostProfile())
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := uc.Execute(ctx, user.RegisterUserInput{
			Email:     "MARIAM@example.com",
			FirstName: "Other",
			LastName:  "Person",
		})
		assert.ErrorIs(t, err, domainerror.ErrEmailAlreadyExists)
		assert.ErrorIs(t, err, domainerror.ErrAlreadyExists)
	})

	t.Run("invalid email", func(t *testing.T) {
		_, err := uc.Execute(ctx, user.RegisterUserInput{Email: "not-an-email", FirstName: "A", LastName: "B"})
		assert.ErrorIs(t, err, domainerror.ErrInvalidEmail)
	})

	t.Run("underage", func(t *testing.T) {
		dob := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
		_, err := uc.Execute(ctx, user.RegisterUserInput{
			Email:       "young@example.com",
			FirstName:   "Young",
			LastName:    "Person",
			DateOfBirth: &dob,
		})
		assert.ErrorIs(t, err, domainerror.ErrUnderage)
	})
}

func TestBecomeHostUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	uc := user.NewBecomeHostUseCase(repo)

	guest := register(t, repo, "guest@example.com", false)
	out, err := uc.Execute(ctx, user.BecomeHostInput{UserID: guest.ID()})
	require.NoError(t, err)
	assert.True(t, out.User.IsHost())

	stored, err := repo.FindByID(ctx, guest.ID())
	require.NoError(t, err)
	assert.True(t, stored.CanHost())
	assert.NotNil(t, stored.HostProfile())

	out, err = uc.Execute(ctx, user.BecomeHostInput{UserID: guest.ID()})
	require.NoError(t, err)
	assert.True(t, out.User.IsHost())

	suspended := register(t, repo, "suspended@example.com", false)
	require.NoError(t, suspended.Suspend("chargeback"))
	require.NoError(t, repo.Update(ctx, suspended))
	_, err = uc.Execute(ctx, user.BecomeHostInput{UserID: suspended.ID()})
	assert.ErrorIs(t, err, domainerror.ErrInvalidUserTransition)

	_, err = uc.Execute(ctx, user.BecomeHostInput{UserID: uuid.New()})
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
}

func TestVerifyUserUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	uc := user.NewVerifyUserUseCase(repo)
	registered, err := user.NewRegisterUserUseCase(repo, entity.WithClock(clock)).Execute(ctx, user.RegisterUserInput{
		Email:       "ladder@example.com",
		PhoneNumber: "+974 5555 4321",
		FirstName:   "Huda",
		LastName:    "Karim",
	})
	require.NoError(t, err)
	u := registered.User

	steps := []struct {
		step     user.VerificationStep
		advanced bool
		want     entity.VerificationStatus
	}{
		{user.VerificationStepPhone, false, entity.VerificationUnverified},
		{user.VerificationStepEmail, true, entity.VerificationEmailVerified},
		{user.VerificationStepEmail, false, entity.VerificationEmailVerified},
		{user.VerificationStepID, false, entity.VerificationEmailVerified},
		{user.VerificationStepPhone, true, entity.VerificationPhoneVerified},
		{user.VerificationStepID, true, entity.VerificationIDVerified},
		{user.VerificationStepFull, true, entity.VerificationFullyVerified},
	}
	for _, s := range steps {
		out, err := uc.Execute(ctx, user.VerifyUserInput{UserID: u.ID(), Step: s.step})
		require.NoError(t, err, s.step)
		assert.Equal(t, s.advanced, out.Advanced, s.step)

		stored, err := repo.FindByID(ctx, u.ID())
		require.NoError(t, err)
		assert.Equal(t, s.want, stored.VerificationStatus(), s.step)
	}

	_, err = uc.Execute(ctx, user.VerifyUserInput{UserID: u.ID(), Step: "passport"})
	assert.ErrorIs(t, err, domainerror.ErrInvalidUserField)
}

func TestGetUserUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	u := register(t, repo, "someone@example.com", true)

	out, err := user.NewGetUserUseCase(repo).Execute(ctx, user.GetUserInput{UserID: u.ID()})
	require.NoError(t, err)
	assert.Equal(t, u.ID(), out.User.ID())
	assert.Equal(t, "Mariam Haddad", out.User.Profile().FullName())

	_, err = user.NewGetUserUseCase(repo).Execute(ctx, user.GetUserInput{UserID: uuid.New()})
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
}
