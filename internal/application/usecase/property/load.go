// Package property contains property-related use cases.
package property

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

func loadProperty(ctx context.Context, repo adapter.PropertyRepository, id uuid.UUID) (*entity.Property, error) {
	property, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrPropertyNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return property, nil
}

// loadOwnedProperty fetches a property and checks that hostID owns it.
func loadOwnedProperty(ctx context.Context, repo adapter.PropertyRepository, id, hostID uuid.UUID) (*entity.Property, error) {
	property, err := loadProperty(ctx, repo, id)
	if err != nil {
		return nil, err
	}
	if !property.IsOwnedBy(hostID) {
		return nil, domainerror.NewPropertyError(
			domainerror.ErrCodeNotPropertyHost,
			"property does not belong to user",
			domainerror.ErrNotPropertyHost,
		)
	}
	return property, nil
}
