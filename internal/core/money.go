// Package core provides the transaction model and money handling.
//
// Amounts are kept as integer cents everywhere; decimal.Decimal is only used at
// the edges where a major-unit (dollar) amount is read or parsed.
package core

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

var (
	hundred  = decimal.NewFromInt(100)
	minCents = decimal.NewFromInt(math.MinInt64)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// ParseDollars converts a decimal string to Money.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted, as is a
// leading sign. Sub-cent digits are rounded half away from zero.
//
// Examples:
//   ParseDollars("12.34")  -> 1234 cents
//   ParseDollars("-0,5")   -> -50 cents
//   ParseDollars("1.005")  -> 101 cents
func ParseDollars(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.ContainsAny(s, "eE") {
		// decimal accepts exponents; amounts typed by a person never have one
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Mul(hundred).Round(0)
	if cents.LessThan(minCents) || cents.GreaterThan(maxCents) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// MoneyFromDollars converts a major-unit amount to cents, rounding half away
// from zero. d must fit in int64 cents; ParseDollars rejects amounts that
// do not.
func MoneyFromDollars(d decimal.Decimal) Money {
	return Money{Cents: d.Mul(hundred).Round(0).IntPart()}
}

// Dollars returns the amount in major units. The conversion is exact.
func (m Money) Dollars() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

func (m Money) String() string {
	return m.Dollars().StringFixed(2)
}

func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}
