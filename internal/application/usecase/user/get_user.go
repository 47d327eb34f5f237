package user

import (
	"context"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
)

// GetUserInput represents the input for fetching a user.
type GetUserInput struct {
	UserID uuid.UUID
}

// GetUserOutput represents the output of fetching a user.
type GetUserOutput struct {
	User *entity.User
}

// GetUserUseCase returns a single account.
type GetUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetUserUseCase creates a new GetUserUseCase instance.
func NewGetUserUseCase(userRepo adapter.UserRepository) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo}
}

// Execute loads the user.
func (uc *GetUserUseCase) Execute(ctx context.Context, input GetUserInput) (*GetUserOutput, error) {
	user, err := loadUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetUserOutput{User: user}, nil
}
