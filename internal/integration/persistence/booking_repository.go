// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
	"github.com/rental-marketplace/backend/internal/integration/persistence/model"
)

// bookingRepository implements the adapter.BookingRepository interface.
type bookingRepository struct {
	db         *gorm.DB
	entityOpts []entity.Option
}

// NewBookingRepository creates a new booking repository instance.
// opts are applied to every booking read back from the database.
func NewBookingRepository(db *gorm.DB, opts ...entity.Option) adapter.BookingRepository {
	return &bookingRepository{
		db:         db,
		entityOpts: opts,
	}
}

// Create creates a new booking in the database.
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	result := r.db.WithContext(ctx).Create(model.BookingFromEntity(booking))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// CreateIfAvailable checks for overlapping bookings and inserts inside one transaction.
func (r *bookingRepository) CreateIfAvailable(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		result := overlapping(tx.Model(&model.BookingModel{}), booking.PropertyID(), booking.DateRange()).
			Count(&count)
		if result.Error != nil {
			return result.Error
		}
		if count > 0 {
			return domainerror.NewBookingError(
				domainerror.ErrCodeDatesUnavailable,
				"the property is already booked for some of these nights",
				domainerror.ErrDatesUnavailable,
			)
		}
		return tx.Create(model.BookingFromEntity(booking)).Error
	})
}

// FindByID retrieves a booking by its ID.
func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var bookingModel model.BookingModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&bookingModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewBookingError(
				domainerror.ErrCodeBookingNotFound,
				"booking not found",
				domainerror.ErrBookingNotFound,
			)
		}
		return nil, result.Error
	}
	return bookingModel.ToEntity(r.entityOpts...)
}

// FindByGuestID retrieves all bookings made by a guest.
func (r *bookingRepository) FindByGuestID(ctx context.Context, guestID uuid.UUID) ([]*entity.Booking, error) {
	return r.find(r.db.WithContext(ctx).Where("guest_id = ?", guestID).Order("created_at DESC"))
}

// FindByHostID retrieves all bookings on a host's properties.
func (r *bookingRepository) FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*entity.Booking, error) {
	return r.find(r.db.WithContext(ctx).Where("host_id = ?", hostID).Order("created_at DESC"))
}

// FindByPropertyID retrieves all bookings of a property ordered by check-in.
func (r *bookingRepository) FindByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*entity.Booking, error) {
	return r.find(r.db.WithContext(ctx).Where("property_id = ?", propertyID).Order("start_date ASC"))
}

// FindByStatus retrieves all bookings in the given status.
func (r *bookingRepository) FindByStatus(ctx context.Context, status entity.BookingStatus) ([]*entity.Booking, error) {
	return r.find(r.db.WithContext(ctx).Where("status = ?", string(status)).Order("start_date ASC"))
}

// FindOverlappingBookings retrieves the date-occupying bookings that overlap the range.
func (r *bookingRepository) FindOverlappingBookings(ctx context.Context, propertyID uuid.UUID, dateRange valueobject.DateRange) ([]*entity.Booking, error) {
	return r.find(overlapping(r.db.WithContext(ctx), propertyID, dateRange).Order("start_date ASC"))
}

// IsPropertyAvailable reports whether no date-occupying booking overlaps the range.
func (r *bookingRepository) IsPropertyAvailable(ctx context.Context, propertyID uuid.UUID, dateRange valueobject.DateRange, excludeBookingID *uuid.UUID) (bool, error) {
	query := overlapping(r.db.WithContext(ctx).Model(&model.BookingModel{}), propertyID, dateRange)
	if excludeBookingID != nil {
		query = query.Where("id <> ?", *excludeBookingID)
	}

	var count int64
	if result := query.Count(&count); result.Error != nil {
		return false, result.Error
	}
	return count == 0, nil
}

// FindConfirmedEndedBefore retrieves CONFIRMED bookings whose stay ended before the given time.
func (r *bookingRepository) FindConfirmedEndedBefore(ctx context.Context, before time.Time, limit int) ([]*entity.Booking, error) {
	query := r.db.WithContext(ctx).
		Where("status = ? AND end_date < ?", string(entity.BookingStatusConfirmed), before.UTC()).
		Order("end_date ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	return r.find(query)
}

// Update updates an existing booking in the database.
func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	result := r.db.WithContext(ctx).Save(model.BookingFromEntity(booking))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a booking from the database (soft delete).
func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.BookingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *bookingRepository) find(query *gorm.DB) ([]*entity.Booking, error) {
	var bookingModels []model.BookingModel
	if result := query.Find(&bookingModels); result.Error != nil {
		return nil, result.Error
	}

	bookings := make([]*entity.Booking, 0, len(bookingModels))
	for i := range bookingModels {
		booking, err := bookingModels[i].ToEntity(r.entityOpts...)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

// overlapping scopes a query to date-occupying bookings of a property that strictly intersect the range.
func overlapping(query *gorm.DB, propertyID uuid.UUID, dateRange valueobject.DateRange) *gorm.DB {
	statuses := make([]string, 0, 3)
	for _, s := range entity.OccupyingStatuses() {
		statuses = append(statuses, string(s))
	}
	return query.
		Where("property_id = ?", propertyID).
		Where("status IN ?", statuses).
		Where("start_date < ? AND end_date > ?", dateRange.End(), dateRange.Start())
}
