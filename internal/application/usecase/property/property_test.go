package property_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rental-marketplace/backend/internal/application/adapter"
	"github.com/rental-marketplace/backend/internal/application/usecase/property"
	"github.com/rental-marketplace/backend/internal/domain/entity"
	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
	"github.com/rental-marketplace/backend/internal/domain/valueobject"
	"github.com/rental-marketplace/backend/internal/integration/persistence"
	"github.com/rental-marketplace/backend/internal/integration/persistence/persistencetest"
)

var now = time.Date(2030, time.March, 1, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

type fixture struct {
	db         *gorm.DB
	opts       []entity.Option
	users      adapter.UserRepository
	properties adapter.PropertyRepository
	bookings   adapter.BookingRepository
	favorites  adapter.FavoriteRepository
	host       *entity.User
	guest      *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := persistencetest.NewDB(t)
	opts := []entity.Option{entity.WithClock(clock)}
	f := &fixture{
		db:         db,
		opts:       opts,
		users:      persistence.NewUserRepository(db, opts...),
		properties: persistence.NewPropertyRepository(db, opts...),
		bookings:   persistence.NewBookingRepository(db, opts...),
		favorites:  persistence.NewFavoriteRepository(db, opts...),
	}
	f.host = f.addUser(t, "host@example.com", entity.RoleGuest, entity.RoleHost)
	f.guest = f.addUser(t, "guest@example.com", entity.RoleGuest)
	return f
}

func (f *fixture) addUser(t *testing.T, email string, roles ...entity.Role) *entity.User {
	t.Helper()
	addr, err := valueobject.NewEmail(email)
	require.NoError(t, err)
	u, err := entity.NewUser(entity.CreateUserParams{
		Email:   addr,
		Profile: entity.UserProfile{FirstName: "Noor", LastName: "Saleh"},
		Roles:   roles,
	}, f.opts...)
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func qar(t *testing.T, amount int64) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoney(decimal.NewFromInt(amount), "QAR")
	require.NoError(t, err)
	return m
}

func createInput(t *testing.T, hostID uuid.UUID) property.CreatePropertyInput {
	t.Helper()
	fee := qar(t, 20)
	return property.CreatePropertyInput{
		HostID:      hostID,
		Title:       "West Bay tower apartment",
		Description: "High floor apartment in West Bay with a pool, gym and skyline views.",
		Type:        entity.PropertyTypeApartment,
		Address:     valueobject.AddressInput{Street: "Tower 3", City: "Doha", Country: "Qatar"},
		BasePrice:   qar(t, 100),
		CleaningFee: &fee,
		MaxGuests:   3,
		Bedrooms:    1,
		Bathrooms:   1,
		Beds:        2,
	}
}

func (f *fixture) createProperty(t *testing.T, publish bool) *entity.Property {
	t.Helper()
	in := createInput(t, f.host.ID())
	in.Images = []string{"https://cdn.example.com/westbay.jpg"}
	out, err := property.NewCreatePropertyUseCase(f.properties, f.users, f.opts...).Execute(context.Background(), in)
	require.NoError(t, err)
	if publish {
		_, err = property.NewPublishPropertyUseCase(f.properties).Execute(context.Background(), property.ChangeStatusInput{
			PropertyID: out.Property.ID(),
			HostID:     f.host.ID(),
		})
		require.NoError(t, err)
	}
	return out.Property
}

func TestCreatePropertyUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := property.NewCreatePropertyUseCase(f.properties, f.users, f.opts...)

	t.Run("host creates a draft", func(t *testing.T) {
		out, err := uc.Execute(ctx, createInput(t, f.host.ID()))
		require.NoError(t, err)
		assert.Equal(t, entity.PropertyStatusDraft, out.Property.Status())
		assert.Equal(t, "Doha", out.Property.Address().City())

		stored, err := f.properties.FindByID(ctx, out.Property.ID())
		require.NoError(t, err)
		assert.Equal(t, out.Property.ToJSON(), stored.ToJSON())
	})

	t.Run("guests cannot list properties", func(t *testing.T) {
		_, err := uc.Execute(ctx, createInput(t, f.guest.ID()))
		assert.ErrorIs(t, err, domainerror.ErrNotHost)
	})

	t.Run("unknown host", func(t *testing.T) {
		_, err := uc.Execute(ctx, createInput(t, uuid.New()))
		assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
	})

	t.Run("invalid address", func(t *testing.T) {
		in := createInput(t, f.host.ID())
		in.Address.City = ""
		_, err := uc.Execute(ctx, in)
		assert.ErrorIs(t, err, domainerror.ErrValidation)
	})

	t.Run("invalid listing", func(t *testing.T) {
		in := createInput(t, f.host.ID())
		in.MaxGuests = 0
		_, err := uc.Execute(ctx, in)
		assert.ErrorIs(t, err, domainerror.ErrInvalidPropertyField)
	})
}

func TestPublishAndUnlistPropertyUseCase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	publish := property.NewPublishPropertyUseCase(f.properties)
	unlist := property.NewUnlistPropertyUseCase(f.properties)
	addImage := property.NewAddImageUseCase(f.properties)

	created, err := property.NewCreatePropertyUseCase(f.properties, f.users, f.opts...).Execute(ctx, createInput(t, f.host.ID()))
	require.NoError(t, err)
	in := property.ChangeStatusInput{PropertyID: created.Property.ID(), HostID: f.host.ID()}

	_, err = publish.Execute(ctx, in)
	assert.ErrorIs(t, err, domainerror.ErrPublishRequirementsNotMet)

	_, err = addImage.Execute(ctx, property.AddImageInput{PropertyID: in.PropertyID, HostID: f.guest.ID(), URL: "https://cdn.example.com/1.jpg"})
	assert.ErrorIs(t, err, domainerror.ErrNotPropertyHost)

	_, err = addImage.Execute(ctx, property.AddImageInput{PropertyID: in.PropertyID, HostID: f.host.ID(), URL: "https://cdn.example.com/1.jpg"})
	require.NoError(t, err)

	_, err = publish.Execute(ctx, property.ChangeStatusInput{PropertyID: in.PropertyID, HostID: f.guest.ID()})
	assert.ErrorIs(t, err, domainerror.ErrNotPropertyHost)

	out, err := publish.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, entity.PropertyStatusPublished, out.Property.Status())

	out, err = unlist.Execute(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, entity.PropertyStatusUnlisted, out.Property.Status())

	_, err = unlist.Execute(ctx, in)
	assert.ErrorIs(t, err, domainerror.ErrInvalidPropertyTransition)

	stored, err := f.properties.FindByID(ctx, in.PropertyID)
	require.NoError(t, err)
	assert.Equal(t, entity.PropertyStatusUnlisted, stored.Status())
	assert.Len(t, stored.Images(), 1)
}

func TestGetPropertyUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := property.NewGetPropertyUseCase(f.properties, f.favorites)

	published := f.createProperty(t, true)
	draft := f.createProperty(t, false)

	fav, err := entity.NewFavorite(f.guest.ID(), published.ID())
	require.NoError(t, err)
	require.NoError(t, f.favorites.Add(ctx, fav))

	out, err := uc.Execute(ctx, property.GetPropertyInput{PropertyID: published.ID()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.FavoritesCount)

	_, err = uc.Execute(ctx, property.GetPropertyInput{PropertyID: draft.ID(), ViewerID: f.guest.ID()})
	assert.ErrorIs(t, err, domainerror.ErrPropertyNotFound)

	out, err = uc.Execute(ctx, property.GetPropertyInput{PropertyID: draft.ID(), ViewerID: f.host.ID()})
	require.NoError(t, err)
	assert.Equal(t, entity.PropertyStatusDraft, out.Property.Status())
}

func TestListPropertiesUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := property.NewListPropertiesUseCase(f.properties)

	published := f.createProperty(t, true)
	f.createProperty(t, false)

	hostID := f.host.ID()
	mine, err := uc.Execute(ctx, property.ListPropertiesInput{HostID: &hostID})
	require.NoError(t, err)
	assert.Len(t, mine.Properties, 2)

	browse, err := uc.Execute(ctx, property.ListPropertiesInput{Filter: adapter.PropertyFilter{City: "doha", MinGuests: 2}})
	require.NoError(t, err)
	require.Len(t, browse.Properties, 1)
	assert.Equal(t, published.ID(), browse.Properties[0].ID())

	none, err := uc.Execute(ctx, property.ListPropertiesInput{Filter: adapter.PropertyFilter{MinGuests: 4}})
	require.NoError(t, err)
	assert.Empty(t, none.Properties)
}

func TestQuotePropertyUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := property.NewQuotePropertyUseCase(f.properties, f.bookings)
	listing := f.createProperty(t, true)
	start := time.Date(2030, time.March, 11, 0, 0, 0, 0, time.UTC)

	out, err := uc.Execute(ctx, property.QuoteInput{
		PropertyID: listing.ID(),
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 3),
		GuestCount: 2,
	})
	require.NoError(t, err)
	assert.True(t, out.Available)
	assert.True(t, out.Quote.TotalPrice.Equals(qar(t, 320)))

	dates, err := valueobject.NewDateRange(start.AddDate(0, 0, 1), start.AddDate(0, 0, 2))
	require.NoError(t, err)
	existing, err := entity.NewBooking(entity.CreateBookingParams{
		PropertyID:    listing.ID(),
		GuestID:       f.guest.ID(),
		HostID:        f.host.ID(),
		DateRange:     dates,
		PricePerNight: listing.BasePrice(),
		GuestCount:    1,
	}, f.opts...)
	require.NoError(t, err)
	require.NoError(t, f.bookings.Create(ctx, existing))

	out, err = uc.Execute(ctx, property.QuoteInput{
		PropertyID: listing.ID(),
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 3),
		GuestCount: 2,
	})
	require.NoError(t, err)
	assert.False(t, out.Available)
	assert.True(t, out.Quote.TotalPrice.Equals(qar(t, 320)))

	_, err = uc.Execute(ctx, property.QuoteInput{
		PropertyID: listing.ID(),
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 3),
		GuestCount: 9,
	})
	assert.ErrorIs(t, err, domainerror.ErrGuestCountExceeded)

	_, err = uc.Execute(ctx, property.QuoteInput{PropertyID: uuid.New(), StartDate: start, EndDate: start.AddDate(0, 0, 1), GuestCount: 1})
	assert.ErrorIs(t, err, domainerror.ErrPropertyNotFound)
}
