package domain

import "github.com/shopspring/decimal"

// SafeParse parses a string into a decimal, returning zero for invalid or empty input.
func SafeParse(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// EffectivePrice substitutes 1 for a zero or negative price so that share
// counts stay defined for degenerate stored data. A documented default,
// not an error.
func EffectivePrice(price decimal.Decimal) decimal.Decimal {
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.NewFromInt(1)
	}
	return price
}
