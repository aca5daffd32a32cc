// Package money holds the fixed-precision helpers shared by every engine.
// Amounts are shopspring decimals rounded to two places; binary floats are
// only ever used for annuity factors and never stored.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code. Only the base currency and USD are convertible.
type Currency string

const (
	PEN Currency = "PEN"
	USD Currency = "USD"

	// Base is the accounting currency every aggregate is expressed in.
	Base = PEN
)

// ParseCurrency normalises a code, defaulting to the base currency when empty.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if c == "" {
		return Base, nil
	}

	if !c.Valid() {
		return "", fmt.Errorf("unsupported currency %q", code)
	}

	return c, nil
}

func (c Currency) Valid() bool {
	return c == PEN || c == USD
}

func (c Currency) IsBase() bool {
	return c == Base
}

var (
	hundred = decimal.NewFromInt(100)

	// divPrecision keeps quotients exact enough that the final Round is the only rounding.
	divPrecision int32 = 16

	// Cent is the smallest representable amount.
	Cent = decimal.New(1, -2)
)

// Round rounds to cents, half away from zero.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ToBase converts a foreign amount using a base-per-foreign rate.
func ToBase(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Round(2)
}

// FromBase converts a base amount back into the foreign currency.
func FromBase(amount, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.Zero
	}

	return amount.DivRound(rate, 2)
}

// Percent returns part/whole*100 rounded to places, or zero when whole is zero.
func Percent(part, whole decimal.Decimal, places int32) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}

	return part.Mul(hundred).DivRound(whole, divPrecision).Round(places)
}

// NonNegative clamps d at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}

	return d
}

// Sum adds a list of amounts.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}

	return total
}

// IsSettled reports whether a balance is within a cent of zero.
func IsSettled(balance decimal.Decimal) bool {
	return balance.LessThanOrEqual(Cent)
}
