package entity

import (
	"fmt"
	"regexp"
	"strings"

	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

var clockTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// PropertyRules are the house rules of a listing.
type PropertyRules struct {
	CheckInTime     string   `json:"checkInTime"`
	CheckOutTime    string   `json:"checkOutTime"`
	PetsAllowed     bool     `json:"petsAllowed"`
	SmokingAllowed  bool     `json:"smokingAllowed"`
	PartiesAllowed  bool     `json:"partiesAllowed"`
	AdditionalRules []string `json:"additionalRules"`
}

// DefaultPropertyRules returns the rules applied when a host sets none.
func DefaultPropertyRules() PropertyRules {
	return PropertyRules{
		CheckInTime:     "15:00",
		CheckOutTime:    "11:00",
		AdditionalRules: []string{},
	}
}

// Validate checks the HH:MM check-in and check-out times.
func (r PropertyRules) Validate() error {
	for _, t := range []struct{ name, value string }{
		{"check-in time", r.CheckInTime},
		{"check-out time", r.CheckOutTime},
	} {
		if !clockTimePattern.MatchString(t.value) {
			return domainerror.NewPropertyError(
				domainerror.ErrCodeInvalidPropertyField,
				fmt.Sprintf("%s %q must be HH:MM", t.name, t.value),
				domainerror.ErrInvalidPropertyField,
			)
		}
	}
	for _, rule := range r.AdditionalRules {
		if strings.TrimSpace(rule) == "" {
			return domainerror.NewPropertyError(
				domainerror.ErrCodeInvalidPropertyField,
				"additional rules must not be blank",
				domainerror.ErrInvalidPropertyField,
			)
		}
	}
	return nil
}

func (r PropertyRules) clone() PropertyRules {
	r.AdditionalRules = append([]string{}, r.AdditionalRules...)
	return r
}
