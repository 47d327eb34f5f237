package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

// VerificationStep names a rung a user can be advanced to.
type VerificationStep string

const (
	VerificationStepEmail VerificationStep = "email"
	VerificationStepPhone VerificationStep = "phone"
	VerificationStepID    VerificationStep = "id"
	VerificationStepFull  VerificationStep = "full"
)

// VerifyUserInput represents the input for a verification step.
type VerifyUserInput struct {
	UserID uuid.UUID
	Step   VerificationStep
}

// VerifyUserOutput represents the output of a verification step.
// Advanced is false when the step was out of order and nothing changed.
type VerifyUserOutput struct {
	User     *entity.User
	Advanced bool
}

// VerifyUserUseCase records a completed identity verification step.
type VerifyUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewVerifyUserUseCase creates a new VerifyUserUseCase instance.
func NewVerifyUserUseCase(userRepo adapter.UserRepository) *VerifyUserUseCase {
	return &VerifyUserUseCase{userRepo: userRepo}
}

// Execute advances the user one rung when the step matches the next rung.
func (uc *VerifyUserUseCase) Execute(ctx context.Context, input VerifyUserInput) (*VerifyUserOutput, error) {
	user, err := loadUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	var advanced bool
	switch input.Step {
	case VerificationStepEmail:
		advanced = user.VerifyEmail()
	case VerificationStepPhone:
		advanced = user.VerifyPhone()
	case VerificationStepID:
		advanced = user.VerifyID()
	case VerificationStepFull:
		advanced = user.MarkFullyVerified()
	default:
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeInvalidUserField,
			fmt.Sprintf("unknown verification step %q", input.Step),
			domainerror.ErrInvalidUserField,
		)
	}

	if !advanced {
		return &VerifyUserOutput{User: user}, nil
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	slog.Info("User verification advanced", "userID", user.ID(), "verificationStatus", user.VerificationStatus())

	return &VerifyUserOutput{User: user, Advanced: true}, nil
}
