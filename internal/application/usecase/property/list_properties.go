// Package property contains property-related use cases.
package property

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
)

// ListPropertiesInput represents the input for listing properties.
// With HostID set, all of that host's listings are returned. Otherwise published listings matching Filter.
type ListPropertiesInput struct {
	HostID *uuid.UUID
	Filter adapter.PropertyFilter
}

// ListPropertiesOutput represents the output of listing properties.
type ListPropertiesOutput struct {
	Properties []*entity.Property
}

// ListPropertiesUseCase lists a host's listings or browses published ones.
type ListPropertiesUseCase struct {
	propertyRepo adapter.PropertyRepository
}

// NewListPropertiesUseCase creates a new ListPropertiesUseCase instance.
func NewListPropertiesUseCase(propertyRepo adapter.PropertyRepository) *ListPropertiesUseCase {
	return &ListPropertiesUseCase{propertyRepo: propertyRepo}
}

// Execute lists the properties.
func (uc *ListPropertiesUseCase) Execute(ctx context.Context, input ListPropertiesInput) (*ListPropertiesOutput, error) {
	var (
		properties []*entity.Property
		err        error
	)
	if input.HostID != nil {
		properties, err = uc.propertyRepo.FindByHostID(ctx, *input.HostID)
	} else {
		properties, err = uc.propertyRepo.FindPublished(ctx, input.Filter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return &ListPropertiesOutput{Properties: properties}, nil
}
