// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/domain/entity"
)

// PropertyFilter narrows a listing lookup. Zero values are ignored.
type PropertyFilter struct {
	City      string
	Country   string
	Type      entity.PropertyType
	MinGuests int
	Limit     int
	Offset    int
}

// PropertyRepository defines the interface for property persistence operations.
type PropertyRepository interface {
	// Create creates a new property in the database.
	Create(ctx context.Context, property *entity.Property) error

	// FindByID retrieves a property by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error)

	// FindByHostID retrieves all properties of a host, newest first.
	FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*entity.Property, error)

	// FindByStatus retrieves all properties in the given status.
	FindByStatus(ctx context.Context, status entity.PropertyStatus) ([]*entity.Property, error)

	// FindPublished retrieves published properties matching the filter.
	FindPublished(ctx context.Context, filter PropertyFilter) ([]*entity.Property, error)

	// Update updates an existing property in the database.
	Update(ctx context.Context, property *entity.Property) error

	// Delete removes a property from the database (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error
}
