// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
	"github.com/rental-marketplace/backend/internal/integration/persistence/model"
)

// userRepository implements the adapter.UserRepository interface.
type userRepository struct {
	db         *gorm.DB
	entityOpts []entity.Option
}

// NewUserRepository creates a new user repository instance.
func NewUserRepository(db *gorm.DB, opts ...entity.Option) adapter.UserRepository {
	return &userRepository{
		db:         db,
		entityOpts: opts,
	}
}

// Create creates a new user in the database.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	exists, err := r.ExistsByEmail(ctx, user.Email().String())
	if err != nil {
		return err
	}
	if exists {
		return domainerror.NewUserError(
			domainerror.ErrCodeEmailAlreadyExists,
			"email already registered",
			domainerror.ErrEmailAlreadyExists,
		)
	}

	result := r.db.WithContext(ctx).Create(model.UserFromEntity(user))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a user by their ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// FindByEmail retrieves a user by their email address.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.first(r.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))))
}

// FindByRole retrieves all users holding the given role.
func (r *userRepository) FindByRole(ctx context.Context, role entity.Role) ([]*entity.User, error) {
	return r.find(r.db.WithContext(ctx).
		Where("roles LIKE ?", `%"`+role.String()+`"%`).
		Order("created_at ASC"))
}

// FindByStatus retrieves all users in the given account status.
func (r *userRepository) FindByStatus(ctx context.Context, status entity.UserStatus) ([]*entity.User, error) {
	return r.find(r.db.WithContext(ctx).Where("status = ?", string(status)).Order("created_at ASC"))
}

// Update updates an existing user in the database.
func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Save(model.UserFromEntity(user))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a user from the database (soft delete).
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.UserModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// ExistsByEmail checks if a user with the given email exists.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *userRepository) first(query *gorm.DB) (*entity.User, error) {
	var userModel model.UserModel
	if result := query.First(&userModel); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewUserError(
				domainerror.ErrCodeUserNotFound,
				"user not found",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, result.Error
	}
	return userModel.ToEntity(r.entityOpts...)
}

func (r *userRepository) find(query *gorm.DB) ([]*entity.User, error) {
	var userModels []model.UserModel
	if result := query.Find(&userModels); result.Error != nil {
		return nil, result.Error
	}

	users := make([]*entity.User, 0, len(userModels))
	for i := range userModels {
		user, err := userModels[i].ToEntity(r.entityOpts...)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}
