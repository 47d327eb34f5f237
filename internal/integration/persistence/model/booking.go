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

// BookingModel represents the bookings table in the database.
type BookingModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PropertyID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_bookings_property_dates,priority:1"`
	GuestID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	HostID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	StartDate          time.Time       `gorm:"not null;index:idx_bookings_property_dates,priority:2"`
	EndDate            time.Time       `gorm:"not null;index:idx_bookings_property_dates,priority:3"`
	Currency           string          `gorm:"type:varchar(3);not null"`
	PricePerNight      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalPrice         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	GuestCount         int             `gorm:"not null"`
	Status             string          `gorm:"type:varchar(20);not null;index"`
	CancellationPolicy string          `gorm:"type:varchar(20);not null"`
	SpecialRequests    string          `gorm:"type:text"`
	ConfirmedAt        *time.Time
	CancelledAt        *time.Time
	CompletedAt        *time.Time
	CancelledBy        string `gorm:"type:varchar(10)"`
	CancellationReason string `gorm:"type:text"`
	RejectionReason    string `gorm:"type:text"`
	RefundPercentage   *int
	RefundAmount       decimal.NullDecimal `gorm:"type:decimal(15,2)"`
	CreatedAt          time.Time           `gorm:"not null"`
	UpdatedAt          time.Time           `gorm:"not null"`
	DeletedAt          gorm.DeletedAt      `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the BookingModel.
func (BookingModel) TableName() string {
	return "bookings"
}

// ToEntity converts a BookingModel to a domain Booking entity.
func (m *BookingModel) ToEntity(opts ...entity.Option) (*entity.Booking, error) {
	dateRange, err := valueobject.NewDateRange(m.StartDate, m.EndDate)
	if err != nil {
		return nil, err
	}
	pricePerNight, err := valueobject.NewMoney(m.PricePerNight, m.Currency)
	if err != nil {
		return nil, err
	}
	totalPrice, err := valueobject.NewMoney(m.TotalPrice, m.Currency)
	if err != nil {
		return nil, err
	}

	snapshot := entity.BookingSnapshot{
		ID:                 m.ID,
		PropertyID:         m.PropertyID,
		GuestID:            m.GuestID,
		HostID:             m.HostID,
		DateRange:          dateRange,
		PricePerNight:      pricePerNight,
		TotalPrice:         totalPrice,
		GuestCount:         m.GuestCount,
		Status:             entity.BookingStatus(m.Status),
		CancellationPolicy: entity.CancellationPolicy(m.CancellationPolicy),
		SpecialRequests:    m.SpecialRequests,
		ConfirmedAt:        m.ConfirmedAt,
		CancelledAt:        m.CancelledAt,
		CompletedAt:        m.CompletedAt,
		CancelledBy:        entity.CancelledBy(m.CancelledBy),
		CancellationReason: m.CancellationReason,
		RejectionReason:    m.RejectionReason,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}

	if m.RefundPercentage != nil && m.RefundAmount.Valid {
		amount, err := valueobject.NewMoney(m.RefundAmount.Decimal, m.Currency)
		if err != nil {
			return nil, err
		}
		snapshot.Refund = &entity.RefundResult{
			RefundAmount:     amount,
			RefundPercentage: *m.RefundPercentage,
		}
	}

	return entity.RestoreBooking(snapshot, opts...), nil
}

// BookingFromEntity creates a BookingModel from a domain Booking entity.
func BookingFromEntity(booking *entity.Booking) *BookingModel {
	s := booking.Snapshot()
	m := &BookingModel{
		ID:                 s.ID,
		PropertyID:         s.PropertyID,
		GuestID:            s.GuestID,
		HostID:             s.HostID,
		StartDate:          s.DateRange.Start(),
		EndDate:            s.DateRange.End(),
		Currency:           s.PricePerNight.Currency(),
		PricePerNight:      s.PricePerNight.Amount(),
		TotalPrice:         s.TotalPrice.Amount(),
		GuestCount:         s.GuestCount,
		Status:             string(s.Status),
		CancellationPolicy: string(s.CancellationPolicy),
		SpecialRequests:    s.SpecialRequests,
		ConfirmedAt:        s.ConfirmedAt,
		CancelledAt:        s.CancelledAt,
		CompletedAt:        s.CompletedAt,
		CancelledBy:        string(s.CancelledBy),
		CancellationReason: s.CancellationReason,
		RejectionReason:    s.RejectionReason,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
	if s.Refund != nil {
		pct := s.Refund.RefundPercentage
		m.RefundPercentage = &pct
		m.RefundAmount = decimal.NewNullDecimal(s.Refund.RefundAmount.Amount())
	}
	return m
}
