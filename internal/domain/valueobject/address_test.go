package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

func validAddressInput() AddressInput {
	return AddressInput{
		Street:     " 12 Corniche St ",
		City:       "Doha",
		Country:    "Qatar",
		PostalCode: "1234",
	}
}

func TestNewAddress(t *testing.T) {
	t.Run("trims fields", func(t *testing.T) {
		addr, err := NewAddress(validAddressInput())
		require.NoError(t, err)
		assert.Equal(t, "12 Corniche St", addr.Street())
		assert.False(t, addr.HasCoordinates())
		assert.Equal(t, "12 Corniche St, Doha, 1234, Qatar", addr.Format())
	})

	for _, field := range []string{"street", "city", "country"} {
		t.Run("missing "+field, func(t *testing.T) {
			input := validAddressInput()
			switch field {
			case "street":
				input.Street = "  "
			case "city":
				input.City = ""
			case "country":
				input.Country = ""
			}
			_, err := NewAddress(input)
			assert.ErrorIs(t, err, domainerror.ErrAddressFieldRequired)
		})
	}

	t.Run("invalid coordinates", func(t *testing.T) {
		input := validAddressInput()
		input.Coordinates = &Coordinates{Latitude: 91, Longitude: 0}
		_, err := NewAddress(input)
		assert.ErrorIs(t, err, domainerror.ErrInvalidCoordinates)
	})
}

func TestAddress_CoordinatesAndEquality(t *testing.T) {
	addr, err := NewAddress(validAddressInput())
	require.NoError(t, err)

	located, err := addr.WithCoordinates(25.2854, 51.5310)
	require.NoError(t, err)
	assert.True(t, located.HasCoordinates())
	assert.False(t, addr.HasCoordinates(), "WithCoordinates must not mutate the receiver")
	assert.False(t, addr.Equals(located))

	coords := located.Coordinates()
	coords.Latitude = 0
	assert.Equal(t, 25.2854, located.Coordinates().Latitude)

	again, err := NewAddress(located.Input())
	require.NoError(t, err)
	assert.True(t, again.Equals(located))

	_, err = addr.WithCoordinates(0, 181)
	assert.ErrorIs(t, err, domainerror.ErrInvalidCoordinates)
}

func TestAddress_JSON(t *testing.T) {
	addr, err := NewAddress(validAddressInput())
	require.NoError(t, err)

	data, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"street":"12 Corniche St","city":"Doha","state":"","country":"Qatar","postalCode":"1234"}`, string(data))
}
