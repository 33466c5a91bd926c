package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency identifies one of the two currencies the system displays.
// All stored monetary fields are in the base currency (USD); KRW values
// are always derived through the configured exchange rate.
type Currency string

const (
	USD Currency = "USD"
	KRW Currency = "KRW"
)

// ParseCurrency parses a currency code, case-insensitively.
func ParseCurrency(s string) (Currency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "USD":
		return USD, nil
	case "KRW":
		return KRW, nil
	default:
		return "", fmt.Errorf("unknown currency %q", s)
	}
}

// displayPlaces returns the number of decimal places used when a value
// is emitted for display: 2 for USD, 0 for KRW.
func (c Currency) displayPlaces() int32 {
	if c == KRW {
		return 0
	}
	return 2
}

// RoundDisplay rounds a value for display in this currency. Intermediate
// calculations are never rounded; only emitted values pass through here.
func (c Currency) RoundDisplay(d decimal.Decimal) decimal.Decimal {
	return d.Round(c.displayPlaces())
}

// ToSecondary converts a base-currency (USD) amount into KRW using the
// KRW-per-USD rate.
func ToSecondary(amountUSD, rate decimal.Decimal) decimal.Decimal {
	return amountUSD.Mul(rate)
}

// ToBase converts a KRW amount back into USD. A zero rate is a caller
// contract violation; it yields zero instead of panicking.
func ToBase(amountKRW, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return decimal.Zero
	}
	return amountKRW.Div(rate)
}
