package persistence_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rental-marketplace/backend/internal/domain/entity"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
)

var fixedNow = time.Date(2030, time.March, 1, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func day(m time.Month, d int) time.Time {
	return time.Date(2030, m, d, 0, 0, 0, 0, time.UTC)
}

func qar(t *testing.T, amount int64) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoney(decimal.NewFromInt(amount), "QAR")
	require.NoError(t, err)
	return m
}

func newBooking(t *testing.T, propertyID, guestID, hostID uuid.UUID, start time.Time, nights int) *entity.Booking {
	t.Helper()
	dates, err := valueobject.NewDateRange(start, start.AddDate(0, 0, nights))
	require.NoError(t, err)
	b, err := entity.NewBooking(entity.CreateBookingParams{
		PropertyID:    propertyID,
		GuestID:       guestID,
		HostID:        hostID,
		DateRange:     dates,
		PricePerNight: qar(t, 100),
		GuestCount:    2,
	}, entity.WithClock(fixedClock))
	require.NoError(t, err)
	return b
}

func newProperty(t *testing.T, hostID uuid.UUID, city string, maxGuests int, publish bool) *entity.Property {
	t.Helper()
	address, err := valueobject.NewAddress(valueobject.AddressInput{
		Street:  "1 Pearl Blvd",
		City:    city,
		Country: "Qatar",
	})
	require.NoError(t, err)
	fee := qar(t, 20)
	p, err := entity.NewProperty(entity.CreatePropertyParams{
		HostID:      hostID,
		Title:       "Marina loft in " + city,
		Description: "Sunny loft with a view over the marina, close to cafes and the beach.",
		Type:        entity.PropertyTypeLoft,
		Address:     address,
		BasePrice:   qar(t, 450),
		CleaningFee: &fee,
		MaxGuests:   maxGuests,
		Bedrooms:    1,
		Bathrooms:   1,
		Beds:        1,
		Amenities:   []entity.Amenity{{ID: "wifi", Name: "Wifi"}},
		Images:      []string{"https://cdn.example.com/loft.jpg"},
	}, entity.WithClock(fixedClock))
	require.NoError(t, err)
	if publish {
		require.NoError(t, p.Publish())
	}
	return p
}

func newUser(t *testing.T, email string, roles ...entity.Role) *entity.User {
	t.Helper()
	addr, err := valueobject.NewEmail(email)
	require.NoError(t, err)
	u, err := entity.NewUser(entity.CreateUserParams{
		Email:   addr,
		Profile: entity.UserProfile{FirstName: "Omar", LastName: "Khalil", Languages: []string{"ar"}},
		Roles:   roles,
	}, entity.WithClock(fixedClock))
	require.NoError(t, err)
	return u
}
