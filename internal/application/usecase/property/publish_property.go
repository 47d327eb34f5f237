// Package property contains property-related use cases.
package property

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
)

// ChangeStatusInput identifies a property and the host acting on it.
type ChangeStatusInput struct {
	PropertyID uuid.UUID
	HostID     uuid.UUID
}

// ChangeStatusOutput holds the property after a status change.
type ChangeStatusOutput struct {
	Property *entity.Property
}

// PublishPropertyUseCase makes a listing bookable.
type PublishPropertyUseCase struct {
	propertyRepo adapter.PropertyRepository
}

// NewPublishPropertyUseCase creates a new PublishPropertyUseCase instance.
func NewPublishPropertyUseCase(propertyRepo adapter.PropertyRepository) *PublishPropertyUseCase {
	return &PublishPropertyUseCase{propertyRepo: propertyRepo}
}

// Execute publishes the property.
func (uc *PublishPropertyUseCase) Execute(ctx context.Context, input ChangeStatusInput) (*ChangeStatusOutput, error) {
	property, err := loadOwnedProperty(ctx, uc.propertyRepo, input.PropertyID, input.HostID)
	if err != nil {
		return nil, err
	}

	if err := property.Publish(); err != nil {
		return nil, err
	}

	if err := uc.propertyRepo.Update(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	slog.Info("Property published", "propertyID", property.ID())

	return &ChangeStatusOutput{Property: property}, nil
}

// UnlistPropertyUseCase hides a published listing.
type UnlistPropertyUseCase struct {
	propertyRepo adapter.PropertyRepository
}

// NewUnlistPropertyUseCase creates a new UnlistPropertyUseCase instance.
func NewUnlistPropertyUseCase(propertyRepo adapter.PropertyRepository) *UnlistPropertyUseCase {
	return &UnlistPropertyUseCase{propertyRepo: propertyRepo}
}

// Execute unlists the property.
func (uc *UnlistPropertyUseCase) Execute(ctx context.Context, input ChangeStatusInput) (*ChangeStatusOutput, error) {
	property, err := loadOwnedProperty(ctx, uc.propertyRepo, input.PropertyID, input.HostID)
	if err != nil {
		return nil, err
	}

	if err := property.Unlist(); err != nil {
		return nil, err
	}

	if err := uc.propertyRepo.Update(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	slog.Info("Property unlisted", "propertyID", property.ID())

	return &ChangeStatusOutput{Property: property}, nil
}
