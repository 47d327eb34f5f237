package entity

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
)

func TestRefundPercentage(t *testing.T) {
	tests := []struct {
		name        string
		policy      CancellationPolicy
		cancelledBy CancelledBy
		days        int
		want        int
	}{
		{"flexible one day out", CancellationPolicyFlexible, CancelledByGuest, 1, 100},
		{"flexible same day", CancellationPolicyFlexible, CancelledByGuest, 0, 0},
		{"moderate five days out", CancellationPolicyModerate, CancelledByGuest, 5, 100},
		{"moderate four days out", CancellationPolicyModerate, CancelledByGuest, 4, 50},
		{"moderate one day out", CancellationPolicyModerate, CancelledByGuest, 1, 50},
		{"moderate same day", CancellationPolicyModerate, CancelledByGuest, 0, 0},
		{"strict fourteen days out", CancellationPolicyStrict, CancelledByGuest, 14, 100},
		{"strict thirteen days out", CancellationPolicyStrict, CancelledByGuest, 13, 50},
		{"strict seven days out", CancellationPolicyStrict, CancelledByGuest, 7, 50},
		{"strict six days out", CancellationPolicyStrict, CancelledByGuest, 6, 0},
		{"stay already started", CancellationPolicyFlexible, CancelledByGuest, -2, 0},
		{"host cancels strict", CancellationPolicyStrict, CancelledByHost, 1, 100},
		{"host cancels after start", CancellationPolicyModerate, CancelledByHost, -1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RefundPercentage(tt.policy, tt.cancelledBy, tt.days))
		})
	}
}

func TestNewBooking(t *testing.T) {
	clock := newTestClock(day(2030, time.March, 1))
	start := day(2030, time.March, 11)

	t.Run("creates a pending booking priced per night", func(t *testing.T) {
		b := newTestBooking(t, clock, bookingParams(t, start, 3))

		assert.Equal(t, BookingStatusPending, b.Status())
		assert.Equal(t, CancellationPolicyModerate, b.CancellationPolicy())
		assert.Equal(t, 3, b.NumberOfNights())
		assert.True(t, b.TotalPrice().Equals(money(t, 300, "QAR")))
		assert.Nil(t, b.Refund())
		assert.Equal(t, clock.Now(), b.CreatedAt())
	})

	t.Run("uses injected identity", func(t *testing.T) {
		id := uuid.New()
		b, err := NewBooking(bookingParams(t, start, 2), WithClock(clock.Now), WithIDGenerator(func() uuid.UUID { return id }))
		require.NoError(t, err)
		assert.Equal(t, id, b.ID())
	})

	tests := []struct {
		name    string
		mutate  func(p *CreateBookingParams)
		wantErr error
		code    domainerror.BookingErrorCode
	}{
		{
			name:    "missing property",
			mutate:  func(p *CreateBookingParams) { p.PropertyID = uuid.Nil },
			wantErr: domainerror.ErrInvalidBookingField,
			code:    domainerror.ErrCodeMissingBookingFields,
		},
		{
			name:    "missing guest",
			mutate:  func(p *CreateBookingParams) { p.GuestID = uuid.Nil },
			wantErr: domainerror.ErrInvalidBookingField,
			code:    domainerror.ErrCodeMissingBookingFields,
		},
		{
			name:    "no guests",
			mutate:  func(p *CreateBookingParams) { p.GuestCount = 0 },
			wantErr: domainerror.ErrInvalidBookingField,
			code:    domainerror.ErrCodeInvalidBookingField,
		},
		{
			name:    "too many guests",
			mutate:  func(p *CreateBookingParams) { p.GuestCount = MaxBookingGuests + 1 },
			wantErr: domainerror.ErrInvalidBookingField,
			code:    domainerror.ErrCodeInvalidBookingField,
		},
		{
			name:    "unknown policy",
			mutate:  func(p *CreateBookingParams) { p.CancellationPolicy = "LENIENT" },
			wantErr: domainerror.ErrInvalidCancellationPolicy,
			code:    domainerror.ErrCodeInvalidCancellationPolicy,
		},
		{
			name: "zero price",
			mutate: func(p *CreateBookingParams) {
				zero, _ := valueobject.Zero("QAR")
				p.PricePerNight = zero
			},
			wantErr: domainerror.ErrInvalidBookingField,
			code:    domainerror.ErrCodeInvalidBookingField,
		},
		{
			name:    "special requests too long",
			mutate:  func(p *CreateBookingParams) { p.SpecialRequests = strings.Repeat("x", MaxSpecialRequestsLength+1) },
			wantErr: domainerror.ErrInvalidBookingField,
			code:    domainerror.ErrCodeInvalidBookingField,
		},
		{
			name:    "missing dates",
			mutate:  func(p *CreateBookingParams) { p.DateRange = valueobject.DateRange{} },
			wantErr: domainerror.ErrInvalidBookingField,
			code:    domainerror.ErrCodeMissingBookingFields,
		},
		{
			name:    "check-in already passed",
			mutate:  func(p *CreateBookingParams) { p.DateRange = dateRange(t, day(2030, time.February, 27), 3) },
			wantErr: domainerror.ErrBookingDatesNotInFuture,
			code:    domainerror.ErrCodeBookingDatesNotInFuture,
		},
		{
			name:    "check-in right now",
			mutate:  func(p *CreateBookingParams) { p.DateRange = dateRange(t, clock.Now(), 3) },
			wantErr: domainerror.ErrBookingDatesNotInFuture,
			code:    domainerror.ErrCodeBookingDatesNotInFuture,
		},
		{
			name: "too far in advance",
			mutate: func(p *CreateBookingParams) {
				p.DateRange = dateRange(t, clock.Now().AddDate(0, 0, MaxAdvanceBookingDays+1), 2)
			},
			wantErr: domainerror.ErrBookingTooFarInAdvance,
			code:    domainerror.ErrCodeBookingTooFarInAdvance,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := bookingParams(t, start, 3)
			tt.mutate(&params)

			_, err := NewBooking(params, WithClock(clock.Now))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domainerror.ErrValidation)

			var bookingErr *domainerror.BookingError
			require.True(t, errors.As(err, &bookingErr))
			assert.Equal(t, tt.code, bookingErr.Code)
		})
	}

	t.Run("accepts the last bookable day", func(t *testing.T) {
		params := bookingParams(t, clock.Now().AddDate(0, 0, MaxAdvanceBookingDays), 2)
		_, err := NewBooking(params, WithClock(clock.Now))
		assert.NoError(t, err)
	})
}

func TestBookingConfirm(t *testing.T) {
	start := day(2030, time.March, 11)

	t.Run("confirms a pending booking", func(t *testing.T) {
		clock := newTestClock(day(2030, time.March, 1))
		b := newTestBooking(t, clock, bookingParams(t, start, 3))
		clock.Advance(2 * time.Hour)

		require.NoError(t, b.Confirm())
		assert.Equal(t, BookingStatusConfirmed, b.Status())
		require.NotNil(t, b.ConfirmedAt())
		assert.Equal(t, clock.Now(), *b.ConfirmedAt())
		assert.Equal(t, clock.Now(), b.UpdatedAt())
	})

	t.Run("cannot confirm twice", func(t *testing.T) {
		clock := newTestClock(day(2030, time.March, 1))
		b := newTestBooking(t, clock, bookingParams(t, start, 3))
		require.NoError(t, b.Confirm())

		err := b.Confirm()
		assert.ErrorIs(t, err, domainerror.ErrInvalidBookingTransition)
		assert.ErrorIs(t, err, domainerror.ErrInvalidTransition)
	})

	t.Run("cannot confirm after the stay ended", func(t *testing.T) {
		clock := newTestClock(day(2030, time.March, 1))
		b := newTestBooking(t, clock, bookingParams(t, start, 3))
		clock.now = day(2030, time.March, 20)

		assert.ErrorIs(t, b.Confirm(), domainerror.ErrBookingPastDates)
		assert.Equal(t, BookingStatusPending, b.Status())
	})
}

func TestBookingReject(t *testing.T) {
	clock := newTestClock(day(2030, time.March, 1))
	b := newTestBooking(t, clock, bookingParams(t, day(2030, time.March, 11), 3))

	assert.ErrorIs(t, b.Reject("   "), domainerror.ErrReasonRequired)
	assert.Equal(t, BookingStatusPending, b.Status())

	require.NoError(t, b.Reject("  dates blocked  "))
	assert.Equal(t, BookingStatusRejected, b.Status())
	assert.Equal(t, "dates blocked", b.RejectionReason())
	assert.True(t, b.Status().IsTerminal())

	assert.ErrorIs(t, b.Reject("again"), domainerror.ErrInvalidBookingTransition)
	assert.ErrorIs(t, b.Confirm(), domainerror.ErrInvalidBookingTransition)
}

func TestBookingCancel(t *testing.T) {
	tests := []struct {
		name        string
		policy      CancellationPolicy
		daysOut     int
		confirm     bool
		cancelledBy CancelledBy
		wantPercent int
		wantAmount  int64
	}{
		{"flexible guest cancels the day after confirming", CancellationPolicyFlexible, 9, true, CancelledByGuest, 100, 300},
		{"strict guest cancels ten days out", CancellationPolicyStrict, 10, true, CancelledByGuest, 50, 150},
		{"strict guest cancels three days out", CancellationPolicyStrict, 3, true, CancelledByGuest, 0, 0},
		{"strict host cancels one day out", CancellationPolicyStrict, 1, true, CancelledByHost, 100, 300},
		{"moderate guest cancels pending booking", CancellationPolicyModerate, 3, false, CancelledByGuest, 50, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newTestClock(day(2030, time.March, 1))
			params := bookingParams(t, day(2030, time.March, 11), 3)
			params.CancellationPolicy = tt.policy
			b := newTestBooking(t, clock, params)
			if tt.confirm {
				require.NoError(t, b.Confirm())
			}
			clock.now = day(2030, time.March, 11).AddDate(0, 0, -tt.daysOut)

			assert.Equal(t, tt.wantPercent, b.CalculateRefundPercentage(tt.cancelledBy))

			refund, err := b.Cancel("change of plans", tt.cancelledBy)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPercent, refund.RefundPercentage)
			assert.True(t, refund.RefundAmount.Equals(money(t, tt.wantAmount, "QAR")), "refund %s", refund.RefundAmount)

			assert.Equal(t, BookingStatusCancelled, b.Status())
			assert.Equal(t, tt.cancelledBy, b.CancelledBy())
			assert.Equal(t, "change of plans", b.CancellationReason())
			require.NotNil(t, b.CancelledAt())
			assert.Equal(t, clock.Now(), *b.CancelledAt())
			require.NotNil(t, b.Refund())
			assert.Equal(t, refund, *b.Refund())
		})
	}

	t.Run("rejects an unknown canceller", func(t *testing.T) {
		clock := newTestClock(day(2030, time.March, 1))
		b := newTestBooking(t, clock, bookingParams(t, day(2030, time.March, 11), 3))

		_, err := b.Cancel("reason", "ADMIN")
		assert.ErrorIs(t, err, domainerror.ErrInvalidCanceller)
		assert.Equal(t, BookingStatusPending, b.Status())
	})

	t.Run("requires a reason", func(t *testing.T) {
		clock := newTestClock(day(2030, time.March, 1))
		b := newTestBooking(t, clock, bookingParams(t, day(2030, time.March, 11), 3))

		_, err := b.Cancel("", CancelledByGuest)
		assert.ErrorIs(t, err, domainerror.ErrReasonRequired)
	})

	t.Run("cannot cancel twice", func(t *testing.T) {
		clock := newTestClock(day(2030, time.March, 1))
		b := newTestBooking(t, clock, bookingParams(t, day(2030, time.March, 11), 3))
		_, err := b.Cancel("first", CancelledByGuest)
		require.NoError(t, err)

		_, err = b.Cancel("second", CancelledByHost)
		assert.ErrorIs(t, err, domainerror.ErrInvalidBookingTransition)
		assert.Equal(t, CancelledByGuest, b.CancelledBy())
	})
}

func TestBookingComplete(t *testing.T) {
	start := day(2030, time.March, 11)

	t.Run("completes a confirmed booking after check-out", func(t *testing.T) {
		clock := newTestClock(day(2030, time.March, 1))
		b := newTestBooking(t, clock, bookingParams(t, start, 3))
		require.NoError(t, b.Confirm())

		clock.now = day(2030, time.March, 15)
		require.NoError(t, b.Complete())
		assert.Equal(t, BookingStatusCompleted, b.Status())
		require.NotNil(t, b.CompletedAt())
		assert.False(t, b.CanBeCancelled())
	})

	t.Run("cannot complete during the stay", func(t *testing.T) {
		clock := newTestClock(day(2030, time.March, 1))
		b := newTestBooking(t, clock, bookingParams(t, start, 3))
		require.NoError(t, b.Confirm())

		clock.now = day(2030, time.March, 12)
		assert.ErrorIs(t, b.Complete(), domainerror.ErrBookingNotYetEnded)
	})

	t.Run("cannot complete a pending booking", func(t *testing.T) {
		clock := newTestClock(day(2030, time.March, 1))
		b := newTestBooking(t, clock, bookingParams(t, start, 3))

		clock.now = day(2030, time.March, 15)
		assert.ErrorIs(t, b.Complete(), domainerror.ErrInvalidBookingTransition)
	})
}

func TestBookingOverlaps(t *testing.T) {
	clock := newTestClock(day(2030, time.March, 1))
	propertyID := uuid.New()

	forProperty := func(start time.Time, nights int) *Booking {
		params := bookingParams(t, start, nights)
		params.PropertyID = propertyID
		return newTestBooking(t, clock, params)
	}

	t.Run("pending bookings on shared nights overlap until one is rejected", func(t *testing.T) {
		a := forProperty(day(2030, time.March, 10), 3)
		b := forProperty(day(2030, time.March, 12), 3)
		assert.True(t, a.Overlaps(b))
		assert.True(t, b.Overlaps(a))

		require.NoError(t, b.Reject("double booked"))
		assert.False(t, a.Overlaps(b))
		assert.False(t, b.Overlaps(a))
	})

	t.Run("back to back stays do not overlap", func(t *testing.T) {
		a := forProperty(day(2030, time.March, 10), 3)
		b := forProperty(day(2030, time.March, 13), 2)
		assert.False(t, a.Overlaps(b))
	})

	t.Run("different properties never overlap", func(t *testing.T) {
		a := forProperty(day(2030, time.March, 10), 3)
		b := newTestBooking(t, clock, bookingParams(t, day(2030, time.March, 10), 3))
		assert.False(t, a.Overlaps(b))
		assert.False(t, a.Overlaps(nil))
	})

	t.Run("cancelled bookings free the dates", func(t *testing.T) {
		a := forProperty(day(2030, time.March, 10), 3)
		b := forProperty(day(2030, time.March, 10), 3)
		_, err := a.Cancel("plans changed", CancelledByGuest)
		require.NoError(t, err)
		assert.False(t, a.Overlaps(b))
	})
}

func TestBookingParticipants(t *testing.T) {
	clock := newTestClock(day(2030, time.March, 1))
	params := bookingParams(t, day(2030, time.March, 11), 3)
	b := newTestBooking(t, clock, params)

	assert.True(t, b.IsParticipant(params.GuestID))
	assert.True(t, b.IsParticipant(params.HostID))
	assert.False(t, b.IsParticipant(uuid.New()))
}

func TestBookingJSON(t *testing.T) {
	clock := newTestClock(day(2030, time.March, 1))
	b := newTestBooking(t, clock, bookingParams(t, day(2030, time.March, 11), 3))
	require.NoError(t, b.Confirm())
	clock.now = day(2030, time.March, 8)
	_, err := b.Cancel("plans changed", CancelledByGuest)
	require.NoError(t, err)

	first := b.ToJSON()
	assert.Equal(t, first, b.ToJSON())
	assert.Equal(t, "CANCELLED", string(first.Status))
	require.NotNil(t, first.Refund)
	assert.Equal(t, 50, first.Refund.Percentage)
	assert.NotNil(t, first.ConfirmedAt)
	assert.Nil(t, first.CompletedAt)

	restored := RestoreBooking(b.Snapshot(), WithClock(clock.Now))
	assert.Equal(t, first, restored.ToJSON())
	assert.True(t, SameIdentity(b, restored))
}
