// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rental-marketplace/backend/internal/domain/entity"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
)

// UserModel represents the user table in the database.
type UserModel struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Email              string              `gorm:"type:varchar(254);uniqueIndex;not null"`
	PhoneNumber        *string             `gorm:"type:varchar(15)"`
	Roles              []entity.Role       `gorm:"type:text;serializer:json;not null"`
	Status             string              `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	StatusReason       string              `gorm:"type:text"`
	VerificationStatus string              `gorm:"type:varchar(20);not null;default:'UNVERIFIED'"`
	FirstName          string              `gorm:"type:varchar(50);not null"`
	LastName           string              `gorm:"type:varchar(50);not null"`
	Bio                string              `gorm:"type:text"`
	DateOfBirth        *time.Time          `gorm:"type:date"`
	Languages          []string            `gorm:"type:text;serializer:json"`
	AvatarURL          string              `gorm:"type:varchar(500)"`
	HostProfile        *entity.HostProfile `gorm:"type:text;serializer:json"`
	LastLoginAt        *time.Time
	CreatedAt          time.Time      `gorm:"not null"`
	UpdatedAt          time.Time      `gorm:"not null"`
	DeletedAt          gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity(opts ...entity.Option) (*entity.User, error) {
	email, err := valueobject.NewEmail(m.Email)
	if err != nil {
		return nil, err
	}

	var phone *valueobject.PhoneNumber
	if m.PhoneNumber != nil {
		p, err := valueobject.NewPhoneNumber(*m.PhoneNumber)
		if err != nil {
			return nil, err
		}
		phone = &p
	}

	verification, err := entity.ParseVerificationStatus(m.VerificationStatus)
	if err != nil {
		return nil, err
	}

	return entity.RestoreUser(entity.UserSnapshot{
		ID:                 m.ID,
		Email:              email,
		PhoneNumber:        phone,
		Roles:              m.Roles,
		Status:             entity.UserStatus(m.Status),
		StatusReason:       m.StatusReason,
		VerificationStatus: verification,
		Profile: entity.UserProfile{
			FirstName:   m.FirstName,
			LastName:    m.LastName,
			Bio:         m.Bio,
			DateOfBirth: m.DateOfBirth,
			Languages:   m.Languages,
			AvatarURL:   m.AvatarURL,
		},
		HostProfile: m.HostProfile,
		LastLoginAt: m.LastLoginAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, opts...), nil
}

// UserFromEntity creates a UserModel from a domain User entity.
func UserFromEntity(user *entity.User) *UserModel {
	s := user.Snapshot()
	m := &UserModel{
		ID:                 s.ID,
		Email:              s.Email.String(),
		Roles:              s.Roles,
		Status:             string(s.Status),
		StatusReason:       s.StatusReason,
		VerificationStatus: s.VerificationStatus.String(),
		FirstName:          s.Profile.FirstName,
		LastName:           s.Profile.LastName,
		Bio:                s.Profile.Bio,
		DateOfBirth:        s.Profile.DateOfBirth,
		Languages:          s.Profile.Languages,
		AvatarURL:          s.Profile.AvatarURL,
		HostProfile:        s.HostProfile,
		LastLoginAt:        s.LastLoginAt,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
	if s.PhoneNumber != nil {
		digits := s.PhoneNumber.Digits()
		m.PhoneNumber = &digits
	}
	return m
}
