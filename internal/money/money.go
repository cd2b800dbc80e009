// Package money parses and formats decimal prices for the kiosk.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPrice  = errors.New("invalid price")
	ErrNegativePrice = errors.New("negative price")
)

// Parse reads a non-negative price such as "8.99" or "$8.99".
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if s == "" {
		return decimal.Zero, ErrInvalidPrice
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativePrice
	}
	return d, nil
}

// MustParse is Parse for static menu data.
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic("money: " + s + ": " + err.Error())
	}
	return d
}

// String formats d with two decimal places.
func String(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Display formats d as a dollar amount, e.g. "$22.98".
func Display(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// OptionLabel is the price tag shown next to a customization option.
// Free options read "FREE" rather than "+$0.00".
func OptionLabel(price decimal.Decimal) string {
	if !price.IsPositive() {
		return "FREE"
	}
	return "+$" + price.StringFixed(2)
}
