package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

// BecomeHostInput represents the input for granting the host role.
type BecomeHostInput struct {
	UserID uuid.UUID
}

// BecomeHostOutput represents the output of granting the host role.
type BecomeHostOutput struct {
	User *entity.User
}

// BecomeHostUseCase lets an active account start listing properties.
type BecomeHostUseCase struct {
	userRepo adapter.UserRepository
}

// NewBecomeHostUseCase creates a new BecomeHostUseCase instance.
func NewBecomeHostUseCase(userRepo adapter.UserRepository) *BecomeHostUseCase {
	return &BecomeHostUseCase{userRepo: userRepo}
}

// Execute adds the HOST role. Users that already host are returned unchanged.
func (uc *BecomeHostUseCase) Execute(ctx context.Context, input BecomeHostInput) (*BecomeHostOutput, error) {
	user, err := loadUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsHost() {
		return &BecomeHostOutput{User: user}, nil
	}
	if !user.IsActive() {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeInvalidUserTransition,
			fmt.Sprintf("a %s account cannot become a host", user.Status()),
			domainerror.ErrInvalidUserTransition,
		)
	}

	if err := user.AddRole(entity.RoleHost); err != nil {
		return nil, err
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	slog.Info("User became host", "userID", user.ID())

	return &BecomeHostOutput{User: user}, nil
}

func loadUser(ctx context.Context, repo adapter.UserRepository, id uuid.UUID) (*entity.User, error) {
	user, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
