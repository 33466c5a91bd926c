// Package engine implements the income projection and comparison engine:
// pure functions that turn (capital, currency, portfolio composition) into
// per-asset and per-portfolio dividend income figures. The engine performs
// no I/O and never mutates the portfolios it is given; callers recompute
// from scratch whenever an input changes.
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/dividendlab/divstat/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Allocated returns the capital slice assigned to a holding:
// capital * weight / 100. Weights outside [0,100] pass through
// proportionally; the engine reflects whatever the stored data says.
func Allocated(capital, weight decimal.Decimal) decimal.Decimal {
	return capital.Mul(weight).Div(hundred)
}

// Shares returns the fractional share count implied by the allocation.
// A zero or missing price is treated as 1, so degenerate stored data
// yields defined output instead of a division by zero. No rounding here;
// rounding happens only when a value is emitted for display.
func Shares(capital, weight, price decimal.Decimal) decimal.Decimal {
	return Allocated(capital, weight).Div(domain.EffectivePrice(price))
}

// paymentIncome is the income one dividend payment event of the holding
// produces under the given capital, in the base currency.
func paymentIncome(h domain.Holding, capital decimal.Decimal) decimal.Decimal {
	return Shares(capital, h.Weight, h.Price).Mul(h.LastDivAmount)
}
