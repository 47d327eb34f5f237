// Package valueobject contains immutable, self-validating domain value objects.
package valueobject

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

const maxEmailLength = 254

const (
	minPhoneDigits = 7
	maxPhoneDigits = 15
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nonDigits    = regexp.MustCompile(`\D`)
)

// Email is a normalized (trimmed, lower-cased) email address.
type Email struct {
	value string
}

// NewEmail validates and normalizes an email address.
func NewEmail(raw string) (Email, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if len(value) > maxEmailLength || !emailPattern.MatchString(value) {
		return Email{}, domainerror.NewValueObjectError(
			domainerror.ErrCodeInvalidEmail,
			fmt.Sprintf("%q is not a valid email address", raw),
			domainerror.ErrInvalidEmail,
		)
	}
	return Email{value: value}, nil
}

// String returns the normalized address.
func (e Email) String() string {
	return e.value
}

// LocalPart returns the part before '@'.
func (e Email) LocalPart() string {
	at := strings.LastIndex(e.value, "@")
	return e.value[:at]
}

// Domain returns the part after '@'.
func (e Email) Domain() string {
	at := strings.LastIndex(e.value, "@")
	return e.value[at+1:]
}

// Masked renders the address with the local part hidden except its first character.
func (e Email) Masked() string {
	local := e.LocalPart()
	return local[:1] + strings.Repeat("*", len(local)-1) + "@" + e.Domain()
}

// Equals compares normalized values.
func (e Email) Equals(other Email) bool {
	return e.value == other.value
}

// MarshalJSON implements json.Marshaler.
func (e Email) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.value)
}

// PhoneNumber is a phone number reduced to its digits.
type PhoneNumber struct {
	digits string
}

// NewPhoneNumber strips formatting characters and validates the digit count.
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) < minPhoneDigits || len(digits) > maxPhoneDigits {
		return PhoneNumber{}, domainerror.NewValueObjectError(
			domainerror.ErrCodeInvalidPhoneNumber,
			fmt.Sprintf("phone number must have %d to %d digits, got %d", minPhoneDigits, maxPhoneDigits, len(digits)),
			domainerror.ErrInvalidPhoneNumber,
		)
	}
	return PhoneNumber{digits: digits}, nil
}

// Digits returns the bare digits.
func (p PhoneNumber) Digits() string {
	return p.digits
}

// String renders the number as +<digits>.
func (p PhoneNumber) String() string {
	return "+" + p.digits
}

// Format renders NANP numbers as +1 (AAA) BBB-CCCC and everything else as +<digits>.
func (p PhoneNumber) Format() string {
	d := p.digits
	switch {
	case len(d) == 10:
		return fmt.Sprintf("+1 (%s) %s-%s", d[:3], d[3:6], d[6:])
	case len(d) == 11 && d[0] == '1':
		return fmt.Sprintf("+1 (%s) %s-%s", d[1:4], d[4:7], d[7:])
	default:
		return p.String()
	}
}

// Equals compares digits.
func (p PhoneNumber) Equals(other PhoneNumber) bool {
	return p.digits == other.digits
}

// MarshalJSON implements json.Marshaler.
func (p PhoneNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}
