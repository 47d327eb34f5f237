// Package user contains account-related use cases.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Email       string
	PhoneNumber string // Optional
	FirstName   string
	LastName    string
	DateOfBirth *time.Time // Optional
	Languages   []string
	AsHost      bool
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	User *entity.User
}

// RegisterUserUseCase handles account creation.
type RegisterUserUseCase struct {
	userRepo   adapter.UserRepository
	entityOpts []entity.Option
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(userRepo adapter.UserRepository, opts ...entity.Option) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:   userRepo,
		entityOpts: opts,
	}
}

// Execute performs the user registration.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	email, err := valueobject.NewEmail(input.Email)
	if err != nil {
		return nil, err
	}

	var phone *valueobject.PhoneNumber
	if input.PhoneNumber != "" {
		p, err := valueobject.NewPhoneNumber(input.PhoneNumber)
		if err != nil {
			return nil, err
		}
		phone = &p
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, email.String())
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeEmailAlreadyExists,
			"an account with this email already exists",
			domainerror.ErrEmailAlreadyExists,
		)
	}

	roles := []entity.Role{entity.RoleGuest}
	if input.AsHost {
		roles = append(roles, entity.RoleHost)
	}

	user, err := entity.NewUser(entity.CreateUserParams{
		Email:       email,
		PhoneNumber: phone,
		Profile: entity.UserProfile{
			FirstName:   input.FirstName,
			LastName:    input.LastName,
			DateOfBirth: input.DateOfBirth,
			Languages:   input.Languages,
		},
		Roles: roles,
	}, uc.entityOpts...)
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User registered", "userID", user.ID(), "email", email.Masked(), "host", user.IsHost())

	return &RegisterUserOutput{User: user}, nil
}
