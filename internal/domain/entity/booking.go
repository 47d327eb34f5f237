package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
)

// Booking limits.
const (
	MaxBookingGuests         = 50
	MaxAdvanceBookingDays    = 730
	MaxSpecialRequestsLength = 1000
)

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
	BookingStatusRejected  BookingStatus = "REJECTED"
)

// OccupiesDates reports whether a booking in this status blocks the property calendar.
func (s BookingStatus) OccupiesDates() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusCancelled, BookingStatusCompleted, BookingStatusRejected:
		return true
	}
	return false
}

// OccupyingStatuses lists the statuses that block a property calendar.
func OccupyingStatuses() []BookingStatus {
	return []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted}
}

// CancellationPolicy is the refund schedule agreed at booking time.
type CancellationPolicy string

const (
	CancellationPolicyFlexible CancellationPolicy = "FLEXIBLE"
	CancellationPolicyModerate CancellationPolicy = "MODERATE"
	CancellationPolicyStrict   CancellationPolicy = "STRICT"
)

// IsValid reports whether p is a known policy.
func (p CancellationPolicy) IsValid() bool {
	switch p {
	case CancellationPolicyFlexible, CancellationPolicyModerate, CancellationPolicyStrict:
		return true
	}
	return false
}

// CancelledBy identifies the party that cancelled a booking.
type CancelledBy string

const (
	CancelledByGuest CancelledBy = "GUEST"
	CancelledByHost  CancelledBy = "HOST"
)

// IsValid reports whether c is guest or host.
func (c CancelledBy) IsValid() bool {
	return c == CancelledByGuest || c == CancelledByHost
}

// RefundPercentage applies the refund schedule. Host cancellations are always refunded in full.
func RefundPercentage(policy CancellationPolicy, cancelledBy CancelledBy, daysUntilCheckIn int) int {
	if cancelledBy == CancelledByHost {
		return 100
	}

	switch policy {
	case CancellationPolicyFlexible:
		if daysUntilCheckIn >= 1 {
			return 100
		}
	case CancellationPolicyModerate:
		switch {
		case daysUntilCheckIn >= 5:
			return 100
		case daysUntilCheckIn >= 1:
			return 50
		}
	case CancellationPolicyStrict:
		switch {
		case daysUntilCheckIn >= 14:
			return 100
		case daysUntilCheckIn >= 7:
			return 50
		}
	}
	return 0
}

// RefundResult is the refund owed after a cancellation. Disbursing it is up to the caller.
type RefundResult struct {
	RefundAmount     valueobject.Money `json:"refundAmount"`
	RefundPercentage int               `json:"refundPercentage"`
}

// CreateBookingParams holds the values needed to create a booking.
type CreateBookingParams struct {
	PropertyID         uuid.UUID
	GuestID            uuid.UUID
	HostID             uuid.UUID
	DateRange          valueobject.DateRange
	PricePerNight      valueobject.Money
	GuestCount         int
	CancellationPolicy CancellationPolicy // Optional, defaults to MODERATE
	SpecialRequests    string
}

// Booking is a guest's reservation of a property for a date range.
type Booking struct {
	Base
	propertyID         uuid.UUID
	guestID            uuid.UUID
	hostID             uuid.UUID
	dateRange          valueobject.DateRange
	pricePerNight      valueobject.Money
	totalPrice         valueobject.Money
	guestCount         int
	status             BookingStatus
	cancellationPolicy CancellationPolicy
	specialRequests    string
	confirmedAt        *time.Time
	cancelledAt        *time.Time
	completedAt        *time.Time
	cancelledBy        CancelledBy
	cancellationReason string
	rejectionReason    string
	refund             *RefundResult
}

// NewBooking validates the request and creates a PENDING booking.
// The total price is fixed at pricePerNight × nights and never recomputed.
func NewBooking(params CreateBookingParams, opts ...Option) (*Booking, error) {
	b := &Booking{
		Base:               newBase(buildConfig(opts)),
		propertyID:         params.PropertyID,
		guestID:            params.GuestID,
		hostID:             params.HostID,
		dateRange:          params.DateRange,
		pricePerNight:      params.PricePerNight,
		guestCount:         params.GuestCount,
		status:             BookingStatusPending,
		cancellationPolicy: params.CancellationPolicy,
		specialRequests:    strings.TrimSpace(params.SpecialRequests),
	}
	if b.cancellationPolicy == "" {
		b.cancellationPolicy = CancellationPolicyModerate
	}

	if err := b.validate(); err != nil {
		return nil, err
	}

	total, err := b.pricePerNight.MultiplyInt(b.dateRange.NumberOfNights())
	if err != nil {
		return nil, err
	}
	b.totalPrice = total

	return b, nil
}

func (b *Booking) validate() error {
	switch {
	case b.propertyID == uuid.Nil:
		return bookingFieldError(domainerror.ErrCodeMissingBookingFields, "property id is required")
	case b.guestID == uuid.Nil:
		return bookingFieldError(domainerror.ErrCodeMissingBookingFields, "guest id is required")
	case b.hostID == uuid.Nil:
		return bookingFieldError(domainerror.ErrCodeMissingBookingFields, "host id is required")
	}

	if b.guestCount < 1 || b.guestCount > MaxBookingGuests {
		return bookingFieldError(domainerror.ErrCodeInvalidBookingField,
			fmt.Sprintf("guest count must be between 1 and %d, got %d", MaxBookingGuests, b.guestCount))
	}
	if !b.cancellationPolicy.IsValid() {
		return domainerror.NewBookingError(
			domainerror.ErrCodeInvalidCancellationPolicy,
			fmt.Sprintf("unknown cancellation policy %q", b.cancellationPolicy),
			domainerror.ErrInvalidCancellationPolicy,
		)
	}
	if b.pricePerNight.Currency() == "" || !b.pricePerNight.Amount().IsPositive() {
		return bookingFieldError(domainerror.ErrCodeInvalidBookingField, "price per night must be greater than zero")
	}
	if utf8.RuneCountInString(b.specialRequests) > MaxSpecialRequestsLength {
		return bookingFieldError(domainerror.ErrCodeInvalidBookingField,
			fmt.Sprintf("special requests must be at most %d characters", MaxSpecialRequestsLength))
	}

	if b.dateRange.Start().IsZero() {
		return bookingFieldError(domainerror.ErrCodeMissingBookingFields, "date range is required")
	}
	now := b.now()
	if !b.dateRange.IsInFutureAt(now) {
		return domainerror.NewBookingError(
			domainerror.ErrCodeBookingDatesNotInFuture,
			"check-in must be in the future",
			domainerror.ErrBookingDatesNotInFuture,
		)
	}
	if b.dateRange.NumberOfNights() < 1 {
		return bookingFieldError(domainerror.ErrCodeInvalidBookingField, "a booking must cover at least one night")
	}
	if days := b.dateRange.DaysUntilStart(now); days > MaxAdvanceBookingDays {
		return domainerror.NewBookingError(
			domainerror.ErrCodeBookingTooFarInAdvance,
			fmt.Sprintf("check-in is %d days away, bookings open %d days in advance", days, MaxAdvanceBookingDays),
			domainerror.ErrBookingTooFarInAdvance,
		)
	}
	return nil
}

func (b *Booking) PropertyID() uuid.UUID                  { return b.propertyID }
func (b *Booking) GuestID() uuid.UUID                     { return b.guestID }
func (b *Booking) HostID() uuid.UUID                      { return b.hostID }
func (b *Booking) DateRange() valueobject.DateRange       { return b.dateRange }
func (b *Booking) PricePerNight() valueobject.Money       { return b.pricePerNight }
func (b *Booking) TotalPrice() valueobject.Money          { return b.totalPrice }
func (b *Booking) GuestCount() int                        { return b.guestCount }
func (b *Booking) Status() BookingStatus                  { return b.status }
func (b *Booking) CancellationPolicy() CancellationPolicy { return b.cancellationPolicy }
func (b *Booking) SpecialRequests() string                { return b.specialRequests }
func (b *Booking) ConfirmedAt() *time.Time                { return copyTime(b.confirmedAt) }
func (b *Booking) CancelledAt() *time.Time                { return copyTime(b.cancelledAt) }
func (b *Booking) CompletedAt() *time.Time                { return copyTime(b.completedAt) }
func (b *Booking) CancelledBy() CancelledBy               { return b.cancelledBy }
func (b *Booking) CancellationReason() string             { return b.cancellationReason }
func (b *Booking) RejectionReason() string                { return b.rejectionReason }

// NumberOfNights returns the nights covered by the booking.
func (b *Booking) NumberOfNights() int {
	return b.dateRange.NumberOfNights()
}

// Refund returns the refund recorded at cancellation, or nil.
func (b *Booking) Refund() *RefundResult {
	if b.refund == nil {
		return nil
	}
	r := *b.refund
	return &r
}

// IsParticipant reports whether userID is the guest or the host of the booking.
func (b *Booking) IsParticipant(userID uuid.UUID) bool {
	return userID != uuid.Nil && (userID == b.guestID || userID == b.hostID)
}

// CanBeCancelled reports whether the booking is PENDING or CONFIRMED.
func (b *Booking) CanBeCancelled() bool {
	return b.status == BookingStatusPending || b.status == BookingStatusConfirmed
}

// Confirm accepts a PENDING booking whose stay has not ended.
func (b *Booking) Confirm() error {
	if b.status != BookingStatusPending {
		return b.transitionError("confirm")
	}
	now := b.now()
	if b.dateRange.IsInPastAt(now) {
		return domainerror.NewBookingError(
			domainerror.ErrCodeBookingPastDates,
			"cannot confirm a booking whose stay has ended",
			domainerror.ErrBookingPastDates,
		)
	}
	b.status = BookingStatusConfirmed
	b.confirmedAt = &now
	b.updatedAt = now
	return nil
}

// Reject declines a PENDING booking.
func (b *Booking) Reject(reason string) error {
	if b.status != BookingStatusPending {
		return b.transitionError("reject")
	}
	reason, err := requireReason(reason)
	if err != nil {
		return err
	}
	b.status = BookingStatusRejected
	b.rejectionReason = reason
	b.touch()
	return nil
}

// Cancel cancels a PENDING or CONFIRMED booking and records the refund owed.
func (b *Booking) Cancel(reason string, cancelledBy CancelledBy) (RefundResult, error) {
	if !b.CanBeCancelled() {
		return RefundResult{}, b.transitionError("cancel")
	}
	reason, err := requireReason(reason)
	if err != nil {
		return RefundResult{}, err
	}
	if !cancelledBy.IsValid() {
		return RefundResult{}, domainerror.NewBookingError(
			domainerror.ErrCodeInvalidCanceller,
			fmt.Sprintf("cancelled by must be %s or %s, got %q", CancelledByGuest, CancelledByHost, cancelledBy),
			domainerror.ErrInvalidCanceller,
		)
	}

	percentage := b.CalculateRefundPercentage(cancelledBy)
	amount, err := b.totalPrice.Multiply(decimal.NewFromInt(int64(percentage)).Div(decimal.NewFromInt(100)))
	if err != nil {
		return RefundResult{}, err
	}
	result := RefundResult{RefundAmount: amount, RefundPercentage: percentage}

	now := b.touch()
	b.status = BookingStatusCancelled
	b.cancelledAt = &now
	b.cancelledBy = cancelledBy
	b.cancellationReason = reason
	b.refund = &result
	return result, nil
}

// Complete closes a CONFIRMED booking whose stay has ended.
func (b *Booking) Complete() error {
	if b.status != BookingStatusConfirmed {
		return b.transitionError("complete")
	}
	now := b.now()
	if !b.dateRange.IsInPastAt(now) {
		return domainerror.NewBookingError(
			domainerror.ErrCodeBookingNotYetEnded,
			"cannot complete a booking before check-out",
			domainerror.ErrBookingNotYetEnded,
		)
	}
	b.status = BookingStatusCompleted
	b.completedAt = &now
	b.updatedAt = now
	return nil
}

// CalculateRefundPercentage returns the refund percentage if the booking were cancelled now.
func (b *Booking) CalculateRefundPercentage(cancelledBy CancelledBy) int {
	return RefundPercentage(b.cancellationPolicy, cancelledBy, b.dateRange.DaysUntilStart(b.now()))
}

// Overlaps reports whether two bookings compete for the same property nights.
// Only bookings that occupy dates on both sides count.
func (b *Booking) Overlaps(other *Booking) bool {
	if other == nil || b.propertyID != other.propertyID {
		return false
	}
	if !b.status.OccupiesDates() || !other.status.OccupiesDates() {
		return false
	}
	return b.dateRange.Overlaps(other.dateRange)
}

func (b *Booking) transitionError(action string) error {
	return domainerror.NewBookingError(
		domainerror.ErrCodeInvalidBookingTransition,
		fmt.Sprintf("cannot %s a %s booking", action, strings.ToLower(string(b.status))),
		domainerror.ErrInvalidBookingTransition,
	)
}

func requireReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", domainerror.NewBookingError(
			domainerror.ErrCodeReasonRequired,
			"a reason is required",
			domainerror.ErrReasonRequired,
		)
	}
	return reason, nil
}

func bookingFieldError(code domainerror.BookingErrorCode, message string) error {
	return domainerror.NewBookingError(code, message, domainerror.ErrInvalidBookingField)
}

// RefundJSON is the plain projection of a RefundResult.
type RefundJSON struct {
	Amount     valueobject.MoneyJSON `json:"amount"`
	Percentage int                   `json:"percentage"`
}

// BookingJSON is the plain projection of a Booking.
type BookingJSON struct {
	ID                 string                    `json:"id"`
	PropertyID         string                    `json:"propertyId"`
	GuestID            string                    `json:"guestId"`
	HostID             string                    `json:"hostId"`
	DateRange          valueobject.DateRangeJSON `json:"dateRange"`
	PricePerNight      valueobject.MoneyJSON     `json:"pricePerNight"`
	TotalPrice         valueobject.MoneyJSON     `json:"totalPrice"`
	GuestCount         int                       `json:"guestCount"`
	Status             BookingStatus             `json:"status"`
	CancellationPolicy CancellationPolicy        `json:"cancellationPolicy"`
	SpecialRequests    string                    `json:"specialRequests,omitempty"`
	ConfirmedAt        *string                   `json:"confirmedAt,omitempty"`
	CancelledAt        *string                   `json:"cancelledAt,omitempty"`
	CompletedAt        *string                   `json:"completedAt,omitempty"`
	CancelledBy        CancelledBy               `json:"cancelledBy,omitempty"`
	CancellationReason string                    `json:"cancellationReason,omitempty"`
	RejectionReason    string                    `json:"rejectionReason,omitempty"`
	Refund             *RefundJSON               `json:"refund,omitempty"`
	CreatedAt          string                    `json:"createdAt"`
	UpdatedAt          string                    `json:"updatedAt"`
}

// ToJSON returns the plain projection of the booking.
func (b *Booking) ToJSON() BookingJSON {
	out := BookingJSON{
		ID:                 b.id.String(),
		PropertyID:         b.propertyID.String(),
		GuestID:            b.guestID.String(),
		HostID:             b.hostID.String(),
		DateRange:          b.dateRange.ToJSON(),
		PricePerNight:      b.pricePerNight.ToJSON(),
		TotalPrice:         b.totalPrice.ToJSON(),
		GuestCount:         b.guestCount,
		Status:             b.status,
		CancellationPolicy: b.cancellationPolicy,
		SpecialRequests:    b.specialRequests,
		ConfirmedAt:        formatOptionalTime(b.confirmedAt),
		CancelledAt:        formatOptionalTime(b.cancelledAt),
		CompletedAt:        formatOptionalTime(b.completedAt),
		CancelledBy:        b.cancelledBy,
		CancellationReason: b.cancellationReason,
		RejectionReason:    b.rejectionReason,
		CreatedAt:          formatTime(b.createdAt),
		UpdatedAt:          formatTime(b.updatedAt),
	}
	if b.refund != nil {
		out.Refund = &RefundJSON{
			Amount:     b.refund.RefundAmount.ToJSON(),
			Percentage: b.refund.RefundPercentage,
		}
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (b *Booking) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.ToJSON())
}

// BookingSnapshot exposes the full state of a Booking for the storage adapter.
type BookingSnapshot struct {
	ID                 uuid.UUID
	PropertyID         uuid.UUID
	GuestID            uuid.UUID
	HostID             uuid.UUID
	DateRange          valueobject.DateRange
	PricePerNight      valueobject.Money
	TotalPrice         valueobject.Money
	GuestCount         int
	Status             BookingStatus
	CancellationPolicy CancellationPolicy
	SpecialRequests    string
	ConfirmedAt        *time.Time
	CancelledAt        *time.Time
	CompletedAt        *time.Time
	CancelledBy        CancelledBy
	CancellationReason string
	RejectionReason    string
	Refund             *RefundResult
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Snapshot returns a copy of the booking state.
func (b *Booking) Snapshot() BookingSnapshot {
	return BookingSnapshot{
		ID:                 b.id,
		PropertyID:         b.propertyID,
		GuestID:            b.guestID,
		HostID:             b.hostID,
		DateRange:          b.dateRange,
		PricePerNight:      b.pricePerNight,
		TotalPrice:         b.totalPrice,
		GuestCount:         b.guestCount,
		Status:             b.status,
		CancellationPolicy: b.cancellationPolicy,
		SpecialRequests:    b.specialRequests,
		ConfirmedAt:        b.ConfirmedAt(),
		CancelledAt:        b.CancelledAt(),
		CompletedAt:        b.CompletedAt(),
		CancelledBy:        b.cancelledBy,
		CancellationReason: b.cancellationReason,
		RejectionReason:    b.rejectionReason,
		Refund:             b.Refund(),
		CreatedAt:          b.createdAt,
		UpdatedAt:          b.updatedAt,
	}
}

// RestoreBooking rebuilds a booking from persisted state without re-running creation rules.
func RestoreBooking(s BookingSnapshot, opts ...Option) *Booking {
	b := &Booking{
		Base:               restoreBase(s.ID, s.CreatedAt, s.UpdatedAt, opts),
		propertyID:         s.PropertyID,
		guestID:            s.GuestID,
		hostID:             s.HostID,
		dateRange:          s.DateRange,
		pricePerNight:      s.PricePerNight,
		totalPrice:         s.TotalPrice,
		guestCount:         s.GuestCount,
		status:             s.Status,
		cancellationPolicy: s.CancellationPolicy,
		specialRequests:    s.SpecialRequests,
		confirmedAt:        copyTime(s.ConfirmedAt),
		cancelledAt:        copyTime(s.CancelledAt),
		completedAt:        copyTime(s.CompletedAt),
		cancelledBy:        s.CancelledBy,
		cancellationReason: s.CancellationReason,
		rejectionReason:    s.RejectionReason,
	}
	if s.Refund != nil {
		r := *s.Refund
		b.refund = &r
	}
	return b
}
