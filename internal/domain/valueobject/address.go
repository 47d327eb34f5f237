// Package valueobject contains immutable, self-validating domain value objects.
package valueobject

import (
	"encoding/json"
	"fmt"
	"strings"

	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

// Coordinates is a geographic point.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// NewCoordinates validates latitude and longitude bounds.
func NewCoordinates(lat, lng float64) (Coordinates, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Coordinates{}, domainerror.NewValueObjectError(
			domainerror.ErrCodeInvalidCoordinates,
			fmt.Sprintf("coordinates (%g, %g) out of bounds", lat, lng),
			domainerror.ErrInvalidCoordinates,
		)
	}
	return Coordinates{Latitude: lat, Longitude: lng}, nil
}

// AddressInput carries the raw fields used to build an Address.
type AddressInput struct {
	Street      string
	City        string
	State       string
	Country     string
	PostalCode  string
	Coordinates *Coordinates
}

// Address is a postal address with optional coordinates.
type Address struct {
	street      string
	city        string
	state       string
	country     string
	postalCode  string
	coordinates *Coordinates
}

// AddressJSON is the plain projection of Address.
type AddressJSON struct {
	Street      string       `json:"street"`
	City        string       `json:"city"`
	State       string       `json:"state"`
	Country     string       `json:"country"`
	PostalCode  string       `json:"postalCode"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// NewAddress validates and trims the input.
func NewAddress(input AddressInput) (Address, error) {
	addr := Address{
		street:     strings.TrimSpace(input.Street),
		city:       strings.TrimSpace(input.City),
		state:      strings.TrimSpace(input.State),
		country:    strings.TrimSpace(input.Country),
		postalCode: strings.TrimSpace(input.PostalCode),
	}

	required := []struct{ name, value string }{
		{"street", addr.street},
		{"city", addr.city},
		{"country", addr.country},
	}
	for _, field := range required {
		if field.value == "" {
			return Address{}, domainerror.NewValueObjectError(
				domainerror.ErrCodeAddressFieldRequired,
				field.name+" is required",
				domainerror.ErrAddressFieldRequired,
			)
		}
	}

	if input.Coordinates != nil {
		coords, err := NewCoordinates(input.Coordinates.Latitude, input.Coordinates.Longitude)
		if err != nil {
			return Address{}, err
		}
		addr.coordinates = &coords
	}

	return addr, nil
}

func (a Address) Street() string     { return a.street }
func (a Address) City() string       { return a.city }
func (a Address) State() string      { return a.state }
func (a Address) Country() string    { return a.country }
func (a Address) PostalCode() string { return a.postalCode }

// Coordinates returns a copy of the coordinates, or nil.
func (a Address) Coordinates() *Coordinates {
	if a.coordinates == nil {
		return nil
	}
	c := *a.coordinates
	return &c
}

// HasCoordinates reports whether the address is geocoded.
func (a Address) HasCoordinates() bool {
	return a.coordinates != nil
}

// WithCoordinates returns a copy of the address located at the given point.
func (a Address) WithCoordinates(lat, lng float64) (Address, error) {
	coords, err := NewCoordinates(lat, lng)
	if err != nil {
		return Address{}, err
	}
	a.coordinates = &coords
	return a, nil
}

// Input returns the fields of the address, e.g. for persistence.
func (a Address) Input() AddressInput {
	return AddressInput{
		Street:      a.street,
		City:        a.city,
		State:       a.state,
		Country:     a.country,
		PostalCode:  a.postalCode,
		Coordinates: a.Coordinates(),
	}
}

// Format renders a single-line address, skipping blank optional parts.
func (a Address) Format() string {
	parts := []string{a.street, a.city}
	region := strings.TrimSpace(a.state + " " + a.postalCode)
	if region != "" {
		parts = append(parts, region)
	}
	parts = append(parts, a.country)
	return strings.Join(parts, ", ")
}

// Equals compares all fields including coordinates.
func (a Address) Equals(other Address) bool {
	if a.street != other.street || a.city != other.city || a.state != other.state ||
		a.country != other.country || a.postalCode != other.postalCode {
		return false
	}
	if a.coordinates == nil || other.coordinates == nil {
		return a.coordinates == nil && other.coordinates == nil
	}
	return *a.coordinates == *other.coordinates
}

// ToJSON returns the plain projection of the value.
func (a Address) ToJSON() AddressJSON {
	return AddressJSON{
		Street:      a.street,
		City:        a.city,
		State:       a.state,
		Country:     a.country,
		PostalCode:  a.postalCode,
		Coordinates: a.Coordinates(),
	}
}

// MarshalJSON implements json.Marshaler.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.ToJSON())
}
