package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rental-marketplace/backend/internal/domain/valueobject"
)

const longDescription = "A bright two bedroom flat on the Corniche with sea views and a balcony."

type testClock struct {
	now time.Time
}

func newTestClock(now time.Time) *testClock {
	return &testClock{now: now}
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func money(t *testing.T, amount int64, currency string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoney(decimal.NewFromInt(amount), currency)
	require.NoError(t, err)
	return m
}

func dateRange(t *testing.T, start time.Time, nights int) valueobject.DateRange {
	t.Helper()
	r, err := valueobject.NewDateRange(start, start.AddDate(0, 0, nights))
	require.NoError(t, err)
	return r
}

func testAddress(t *testing.T) valueobject.Address {
	t.Helper()
	a, err := valueobject.NewAddress(valueobject.AddressInput{
		Street:     "12 Corniche St",
		City:       "Doha",
		Country:    "Qatar",
		PostalCode: "1234",
	})
	require.NoError(t, err)
	return a
}

func propertyParams(t *testing.T) CreatePropertyParams {
	t.Helper()
	return CreatePropertyParams{
		HostID:      uuid.New(),
		Title:       "Corniche flat",
		Description: longDescription,
		Type:        PropertyTypeApartment,
		Address:     testAddress(t),
		BasePrice:   money(t, 100, "QAR"),
		MaxGuests:   4,
		Bedrooms:    2,
		Bathrooms:   1,
		Beds:        2,
	}
}

func bookingParams(t *testing.T, start time.Time, nights int) CreateBookingParams {
	t.Helper()
	return CreateBookingParams{
		PropertyID:    uuid.New(),
		GuestID:       uuid.New(),
		HostID:        uuid.New(),
		DateRange:     dateRange(t, start, nights),
		PricePerNight: money(t, 100, "QAR"),
		GuestCount:    2,
	}
}

func newTestBooking(t *testing.T, clock *testClock, params CreateBookingParams) *Booking {
	t.Helper()
	b, err := NewBooking(params, WithClock(clock.Now))
	require.NoError(t, err)
	return b
}
