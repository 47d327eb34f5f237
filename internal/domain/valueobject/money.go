// Package valueobject contains immutable, self-validating domain value objects.
package valueobject

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	domainerror "github.com/rental-marketplace/backend/internal/domain/error"
)

// moneyScale is the number of decimal places kept after multiplication and division.
const moneyScale = 2

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Money is a non-negative amount in a single currency.
type Money struct {
	amount   decimal.Decimal
	currency string
}

// MoneyJSON is the plain projection of Money.
type MoneyJSON struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// NewMoney creates a Money value. The currency is upper-cased before validation.
func NewMoney(amount decimal.Decimal, currencyCode string) (Money, error) {
	if amount.IsNegative() {
		return Money{}, domainerror.NewValueObjectError(
			domainerror.ErrCodeInvalidAmount,
			fmt.Sprintf("amount %s must not be negative", amount.String()),
			domainerror.ErrInvalidAmount,
		)
	}

	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if !currencyPattern.MatchString(code) {
		return Money{}, domainerror.NewValueObjectError(
			domainerror.ErrCodeInvalidCurrency,
			fmt.Sprintf("currency %q must be a 3-letter code", currencyCode),
			domainerror.ErrInvalidCurrency,
		)
	}

	return Money{amount: amount, currency: code}, nil
}

// NewMoneyFromFloat is a convenience wrapper around NewMoney.
func NewMoneyFromFloat(amount float64, currencyCode string) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount), currencyCode)
}

// Zero returns a zero amount in the given currency.
func Zero(currencyCode string) (Money, error) {
	return NewMoney(decimal.Zero, currencyCode)
}

// Amount returns the amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the ISO currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns m - other. The result may not be negative.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return Money{}, err
	}

	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, domainerror.NewValueObjectError(
			domainerror.ErrCodeNegativeResult,
			fmt.Sprintf("cannot subtract %s from %s", other.String(), m.String()),
			domainerror.ErrNegativeResult,
		)
	}
	return Money{amount: result, currency: m.currency}, nil
}

// Multiply returns m * factor rounded to minor units. factor must not be negative.
func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	if factor.IsNegative() {
		return Money{}, domainerror.NewValueObjectError(
			domainerror.ErrCodeInvalidFactor,
			fmt.Sprintf("multiplier %s must not be negative", factor.String()),
			domainerror.ErrInvalidFactor,
		)
	}
	return Money{amount: m.amount.Mul(factor).Round(moneyScale), currency: m.currency}, nil
}

// MultiplyInt is Multiply for whole factors such as a number of nights.
func (m Money) MultiplyInt(factor int) (Money, error) {
	return m.Multiply(decimal.NewFromInt(int64(factor)))
}

// Divide returns m / divisor rounded to minor units. divisor must be positive.
func (m Money) Divide(divisor decimal.Decimal) (Money, error) {
	if !divisor.IsPositive() {
		return Money{}, domainerror.NewValueObjectError(
			domainerror.ErrCodeInvalidFactor,
			fmt.Sprintf("divisor %s must be positive", divisor.String()),
			domainerror.ErrInvalidFactor,
		)
	}
	return Money{amount: m.amount.Div(divisor).Round(moneyScale), currency: m.currency}, nil
}

// IsGreaterThan reports whether m > other.
func (m Money) IsGreaterThan(other Money) (bool, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.GreaterThan(other.amount), nil
}

// IsLessThan reports whether m < other.
func (m Money) IsLessThan(other Money) (bool, error) {
	if err := m.assertSameCurrency(other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

// Equals reports value equality. Amounts compare numerically, so 10 equals 10.00.
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// Format renders the amount as a currency string for the given BCP 47 locale.
// Unknown locales fall back to English; unknown currencies render as "CODE 0.00".
func (m Money) Format(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}

	unit, err := currency.ParseISO(m.currency)
	if err != nil {
		return m.String()
	}

	printer := message.NewPrinter(tag)
	return printer.Sprint(currency.Symbol(unit.Amount(m.amount.InexactFloat64())))
}

// String renders the amount with two decimals and its currency code.
func (m Money) String() string {
	return m.currency + " " + m.amount.StringFixed(moneyScale)
}

// ToJSON returns the plain projection of the value.
func (m Money) ToJSON() MoneyJSON {
	return MoneyJSON{
		Amount:   m.amount.InexactFloat64(),
		Currency: m.currency,
	}
}

// MarshalJSON implements json.Marshaler.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToJSON())
}

func (m Money) assertSameCurrency(other Money) error {
	if m.currency != other.currency {
		return domainerror.NewValueObjectError(
			domainerror.ErrCodeCurrencyMismatch,
			fmt.Sprintf("cannot combine %s with %s", m.currency, other.currency),
			domainerror.ErrMoneyCurrencyMismatch,
		)
	}
	return nil
}
