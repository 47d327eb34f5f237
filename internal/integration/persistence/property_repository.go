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

const defaultPropertyPageSize = 20

// propertyRepository implements the adapter.PropertyRepository interface.
type propertyRepository struct {
	db         *gorm.DB
	entityOpts []entity.Option
}

// NewPropertyRepository creates a new property repository instance.
func NewPropertyRepository(db *gorm.DB, opts ...entity.Option) adapter.PropertyRepository {
	return &propertyRepository{
		db:         db,
		entityOpts: opts,
	}
}

// Create creates a new property in the database.
func (r *propertyRepository) Create(ctx context.Context, property *entity.Property) error {
	result := r.db.WithContext(ctx).Create(model.PropertyFromEntity(property))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a property by its ID.
func (r *propertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	var propertyModel model.PropertyModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&propertyModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewPropertyError(
				domainerror.ErrCodePropertyNotFound,
				"property not found",
				domainerror.ErrPropertyNotFound,
			)
		}
		return nil, result.Error
	}
	return propertyModel.ToEntity(r.entityOpts...)
}

// FindByHostID retrieves all properties of a host.
func (r *propertyRepository) FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*entity.Property, error) {
	return r.find(r.db.WithContext(ctx).Where("host_id = ?", hostID).Order("created_at DESC"))
}

// FindByStatus retrieves all properties in the given status.
func (r *propertyRepository) FindByStatus(ctx context.Context, status entity.PropertyStatus) ([]*entity.Property, error) {
	return r.find(r.db.WithContext(ctx).Where("status = ?", string(status)).Order("created_at DESC"))
}

// FindPublished retrieves published properties matching the filter, most recently published first.
func (r *propertyRepository) FindPublished(ctx context.Context, filter adapter.PropertyFilter) ([]*entity.Property, error) {
	query := r.db.WithContext(ctx).Where("status = ?", string(entity.PropertyStatusPublished))

	if city := strings.TrimSpace(filter.City); city != "" {
		query = query.Where("LOWER(city) = ?", strings.ToLower(city))
	}
	if country := strings.TrimSpace(filter.Country); country != "" {
		query = query.Where("LOWER(country) = ?", strings.ToLower(country))
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}
	if filter.MinGuests > 0 {
		query = query.Where("max_guests >= ?", filter.MinGuests)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPropertyPageSize
	}
	query = query.Order("published_at DESC").Limit(limit)
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	return r.find(query)
}

// Update updates an existing property in the database.
func (r *propertyRepository) Update(ctx context.Context, property *entity.Property) error {
	result := r.db.WithContext(ctx).Save(model.PropertyFromEntity(property))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a property from the database (soft delete).
func (r *propertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.PropertyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *propertyRepository) find(query *gorm.DB) ([]*entity.Property, error) {
	var propertyModels []model.PropertyModel
	if result := query.Find(&propertyModels); result.Error != nil {
		return nil, result.Error
	}

	properties := make([]*entity.Property, 0, len(propertyModels))
	for i := range propertyModels {
		property, err := propertyModels[i].ToEntity(r.entityOpts...)
		if err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}
	return properties, nil
}
