// Package property contains property-related use cases.
package property

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
)

// AddImageInput represents the input for adding a listing image.
type AddImageInput struct {
	PropertyID uuid.UUID
	HostID     uuid.UUID
	URL        string
}

// AddImageOutput represents the output of adding a listing image.
type AddImageOutput struct {
	Property *entity.Property
}

// AddImageUseCase appends an image to a listing.
type AddImageUseCase struct {
	propertyRepo adapter.PropertyRepository
}

// NewAddImageUseCase creates a new AddImageUseCase instance.
func NewAddImageUseCase(propertyRepo adapter.PropertyRepository) *AddImageUseCase {
	return &AddImageUseCase{propertyRepo: propertyRepo}
}

// Execute adds the image.
func (uc *AddImageUseCase) Execute(ctx context.Context, input AddImageInput) (*AddImageOutput, error) {
	property, err := loadOwnedProperty(ctx, uc.propertyRepo, input.PropertyID, input.HostID)
	if err != nil {
		return nil, err
	}

	if err := property.AddImage(input.URL); err != nil {
		return nil, err
	}

	if err := uc.propertyRepo.Update(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to update property: %w", err)
	}

	return &AddImageOutput{Property: property}, nil
}
