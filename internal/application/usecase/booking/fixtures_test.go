package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/application/usecase/booking"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
	"github.com/rental-marketplace/backend/internal/integration/lock"
	"github.com/rental-marketplace/backend/internal/integration/persistence"
	"github.com/rental-marketplace/backend/internal/integration/persistence/persistencetest"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func day(m time.Month, d int) time.Time {
	return time.Date(2030, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	clock      *testClock
	opts       []entity.Option
	redis      *miniredis.Miniredis
	bookings   adapter.BookingRepository
	properties adapter.PropertyRepository
	users      adapter.UserRepository
	lock       adapter.BookingLock
	guest      *entity.User
	host       *entity.User
	property   *entity.Property
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := &testClock{now: time.Date(2030, time.March, 1, 9, 0, 0, 0, time.UTC)}
	opts := []entity.Option{entity.WithClock(clock.Now)}

	db := persistencetest.NewDB(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	f := &fixture{
		clock:      clock,
		opts:       opts,
		redis:      mr,
		bookings:   persistence.NewBookingRepository(db, opts...),
		properties: persistence.NewPropertyRepository(db, opts...),
		users:      persistence.NewUserRepository(db, opts...),
		lock: lock.NewRedisBookingLock(client, lock.Config{
			WaitTimeout:   2 * time.Second,
			RetryInterval: 5 * time.Millisecond,
		}),
	}
	f.guest = f.addUser(t, "guest@example.com", entity.RoleGuest)
	f.host = f.addUser(t, "host@example.com", entity.RoleGuest, entity.RoleHost)
	f.property = f.addProperty(t, f.host.ID(), false)
	return f
}

func (f *fixture) addUser(t *testing.T, email string, roles ...entity.Role) *entity.User {
	t.Helper()
	addr, err := valueobject.NewEmail(email)
	require.NoError(t, err)
	u, err := entity.NewUser(entity.CreateUserParams{
		Email:   addr,
		Profile: entity.UserProfile{FirstName: "Test", LastName: "User"},
		Roles:   roles,
	}, f.opts...)
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *fixture) addProperty(t *testing.T, hostID uuid.UUID, instant bool) *entity.Property {
	t.Helper()
	address, err := valueobject.NewAddress(valueobject.AddressInput{Street: "5 Souq Rd", City: "Doha", Country: "Qatar"})
	require.NoError(t, err)
	base, err := valueobject.NewMoney(decimal.NewFromInt(100), "QAR")
	require.NoError(t, err)
	fee, err := valueobject.NewMoney(decimal.NewFromInt(20), "QAR")
	require.NoError(t, err)

	p, err := entity.NewProperty(entity.CreatePropertyParams{
		HostID:         hostID,
		Title:          "Souq Waqif studio",
		Description:    "Compact studio steps away from Souq Waqif with a kitchenette and fast wifi.",
		Type:           entity.PropertyTypeStudio,
		Address:        address,
		BasePrice:      base,
		CleaningFee:    &fee,
		MaxGuests:      4,
		InstantBooking: instant,
		Images:         []string{"https://cdn.example.com/studio.jpg"},
	}, f.opts...)
	require.NoError(t, err)
	require.NoError(t, p.Publish())
	require.NoError(t, f.properties.Create(context.Background(), p))
	return p
}

func (f *fixture) createUseCase() *booking.CreateBookingUseCase {
	return booking.NewCreateBookingUseCase(f.bookings, f.properties, f.users, f.lock, "", f.opts...)
}

func (f *fixture) book(t *testing.T, start time.Time, nights int, policy entity.CancellationPolicy) *entity.Booking {
	t.Helper()
	out, err := f.createUseCase().Execute(context.Background(), booking.CreateBookingInput{
		GuestID:            f.guest.ID(),
		PropertyID:         f.property.ID(),
		StartDate:          start,
		EndDate:            start.AddDate(0, 0, nights),
		GuestCount:         2,
		CancellationPolicy: policy,
	})
	require.NoError(t, err)
	return out.Booking
}

func qar(t *testing.T, amount int64) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoney(decimal.NewFromInt(amount), "QAR")
	require.NoError(t, err)
	return m
}
