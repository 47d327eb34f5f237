// Package property contains property-related use cases.
package property

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
)

// CreatePropertyInput represents the input for property creation.
type CreatePropertyInput struct {
	HostID         uuid.UUID
	Title          string
	Description    string
	Type           entity.PropertyType
	Address        valueobject.AddressInput
	BasePrice      valueobject.Money
	CleaningFee    *valueobject.Money
	MaxGuests      int
	Bedrooms       int
	Bathrooms      int
	Beds           int
	Rules          *entity.PropertyRules
	MinimumStay    int
	MaximumStay    *int
	InstantBooking bool
	Amenities      []entity.Amenity
	Images         []string
}

// CreatePropertyOutput represents the output of property creation.
type CreatePropertyOutput struct {
	Property *entity.Property
}

// CreatePropertyUseCase handles listing creation by hosts.
type CreatePropertyUseCase struct {
	propertyRepo adapter.PropertyRepository
	userRepo     adapter.UserRepository
	entityOpts   []entity.Option
}

// NewCreatePropertyUseCase creates a new CreatePropertyUseCase instance.
func NewCreatePropertyUseCase(propertyRepo adapter.PropertyRepository, userRepo adapter.UserRepository, opts ...entity.Option) *CreatePropertyUseCase {
	return &CreatePropertyUseCase{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
		entityOpts:   opts,
	}
}

// Execute creates a DRAFT property for an active host.
func (uc *CreatePropertyUseCase) Execute(ctx context.Context, input CreatePropertyInput) (*CreatePropertyOutput, error) {
	host, err := uc.userRepo.FindByID(ctx, input.HostID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find host: %w", err)
	}
	if !host.CanHost() {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeNotHost,
			"only active hosts can create properties",
			domainerror.ErrNotHost,
		)
	}

	address, err := valueobject.NewAddress(input.Address)
	if err != nil {
		return nil, err
	}

	property, err := entity.NewProperty(entity.CreatePropertyParams{
		HostID:         host.ID(),
		Title:          input.Title,
		Description:    input.Description,
		Type:           input.Type,
		Address:        address,
		BasePrice:      input.BasePrice,
		CleaningFee:    input.CleaningFee,
		MaxGuests:      input.MaxGuests,
		Bedrooms:       input.Bedrooms,
		Bathrooms:      input.Bathrooms,
		Beds:           input.Beds,
		Rules:          input.Rules,
		MinimumStay:    input.MinimumStay,
		MaximumStay:    input.MaximumStay,
		InstantBooking: input.InstantBooking,
		Amenities:      input.Amenities,
		Images:         input.Images,
	}, uc.entityOpts...)
	if err != nil {
		return nil, err
	}

	if err := uc.propertyRepo.Create(ctx, property); err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	slog.Info("Property created", "propertyID", property.ID(), "hostID", host.ID())

	return &CreatePropertyOutput{Property: property}, nil
}
