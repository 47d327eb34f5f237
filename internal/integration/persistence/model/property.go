// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/rental-marketplace/backend/internal/domain/entity"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
)

// PropertyModel represents the properties table in the database.
type PropertyModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	HostID           uuid.UUID `gorm:"type:uuid;not null;index"`
	Title            string    `gorm:"type:varchar(100);not null"`
	Description      string    `gorm:"type:text"`
	Type             string    `gorm:"type:varchar(20);not null"`
	Status           string    `gorm:"type:varchar(20);not null;index"`
	Street           string    `gorm:"type:varchar(255);not null"`
	City             string    `gorm:"type:varchar(100);not null;index"`
	State            string    `gorm:"type:varchar(100)"`
	Country          string    `gorm:"type:varchar(100);not null;index"`
	PostalCode       string    `gorm:"type:varchar(20)"`
	Latitude         *float64
	Longitude        *float64
	Currency         string               `gorm:"type:varchar(3);not null"`
	BasePrice        decimal.Decimal      `gorm:"type:decimal(15,2);not null"`
	CleaningFee      decimal.NullDecimal  `gorm:"type:decimal(15,2)"`
	MaxGuests        int                  `gorm:"not null"`
	Bedrooms         int                  `gorm:"not null;default:0"`
	Bathrooms        int                  `gorm:"not null;default:0"`
	Beds             int                  `gorm:"not null;default:0"`
	Amenities        []entity.Amenity     `gorm:"type:text;serializer:json"`
	Images           []string             `gorm:"type:text;serializer:json"`
	Rules            entity.PropertyRules `gorm:"type:text;serializer:json"`
	MinimumStay      int                  `gorm:"not null;default:1"`
	MaximumStay      *int
	InstantBooking   bool `gorm:"not null;default:false"`
	PublishedAt      *time.Time
	SuspensionReason string         `gorm:"type:text"`
	CreatedAt        time.Time      `gorm:"not null"`
	UpdatedAt        time.Time      `gorm:"not null"`
	DeletedAt        gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the PropertyModel.
func (PropertyModel) TableName() string {
	return "properties"
}

// ToEntity converts a PropertyModel to a domain Property entity.
func (m *PropertyModel) ToEntity(opts ...entity.Option) (*entity.Property, error) {
	input := valueobject.AddressInput{
		Street:     m.Street,
		City:       m.City,
		State:      m.State,
		Country:    m.Country,
		PostalCode: m.PostalCode,
	}
	if m.Latitude != nil && m.Longitude != nil {
		input.Coordinates = &valueobject.Coordinates{Latitude: *m.Latitude, Longitude: *m.Longitude}
	}
	address, err := valueobject.NewAddress(input)
	if err != nil {
		return nil, err
	}

	basePrice, err := valueobject.NewMoney(m.BasePrice, m.Currency)
	if err != nil {
		return nil, err
	}
	var cleaningFee *valueobject.Money
	if m.CleaningFee.Valid {
		fee, err := valueobject.NewMoney(m.CleaningFee.Decimal, m.Currency)
		if err != nil {
			return nil, err
		}
		cleaningFee = &fee
	}

	return entity.RestoreProperty(entity.PropertySnapshot{
		ID:               m.ID,
		HostID:           m.HostID,
		Title:            m.Title,
		Description:      m.Description,
		Type:             entity.PropertyType(m.Type),
		Status:           entity.PropertyStatus(m.Status),
		Address:          address,
		BasePrice:        basePrice,
		CleaningFee:      cleaningFee,
		MaxGuests:        m.MaxGuests,
		Bedrooms:         m.Bedrooms,
		Bathrooms:        m.Bathrooms,
		Beds:             m.Beds,
		Amenities:        m.Amenities,
		Images:           m.Images,
		Rules:            m.Rules,
		MinimumStay:      m.MinimumStay,
		MaximumStay:      m.MaximumStay,
		InstantBooking:   m.InstantBooking,
		PublishedAt:      m.PublishedAt,
		SuspensionReason: m.SuspensionReason,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}, opts...), nil
}

// PropertyFromEntity creates a PropertyModel from a domain Property entity.
func PropertyFromEntity(property *entity.Property) *PropertyModel {
	s := property.Snapshot()
	m := &PropertyModel{
		ID:               s.ID,
		HostID:           s.HostID,
		Title:            s.Title,
		Description:      s.Description,
		Type:             string(s.Type),
		Status:           string(s.Status),
		Street:           s.Address.Street(),
		City:             s.Address.City(),
		State:            s.Address.State(),
		Country:          s.Address.Country(),
		PostalCode:       s.Address.PostalCode(),
		Currency:         s.BasePrice.Currency(),
		BasePrice:        s.BasePrice.Amount(),
		MaxGuests:        s.MaxGuests,
		Bedrooms:         s.Bedrooms,
		Bathrooms:        s.Bathrooms,
		Beds:             s.Beds,
		Amenities:        s.Amenities,
		Images:           s.Images,
		Rules:            s.Rules,
		MinimumStay:      s.MinimumStay,
		MaximumStay:      s.MaximumStay,
		InstantBooking:   s.InstantBooking,
		PublishedAt:      s.PublishedAt,
		SuspensionReason: s.SuspensionReason,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
	if coords := s.Address.Coordinates(); coords != nil {
		m.Latitude = &coords.Latitude
		m.Longitude = &coords.Longitude
	}
	if s.CleaningFee != nil {
		m.CleaningFee = decimal.NewNullDecimal(s.CleaningFee.Amount())
	}
	return m
}
