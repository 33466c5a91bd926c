package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category tags a holding by its role in the allocation. Informational
// only; the income math never branches on it.
type Category string

const (
	CategoryFixed  Category = "Fixed"
	CategoryCash   Category = "Cash"
	CategoryGrowth Category = "Growth"
)

// Holding is a single weighted asset inside a portfolio.
type Holding struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Category      Category        `json:"category"`
	Weight        decimal.Decimal `json:"weight"`
	Price         decimal.Decimal `json:"price"`
	LastDivAmount decimal.Decimal `json:"last_div_amount"`
	PaymentMonths []int           `json:"payment_months"`
}

// PaysIn reports whether the holding pays a dividend in calendar month m (1..12).
func (h Holding) PaysIn(m int) bool {
	for _, pm := range h.PaymentMonths {
		if pm == m {
			return true
		}
	}
	return false
}

// Portfolio is a named, weighted set of dividend-paying holdings.
// TotalCapital is the portfolio's own stored capital baseline in USD;
// Currency records which currency the capital was originally entered in
// and does not change the stored numeric base.
type Portfolio struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	AccountType  string          `json:"account_type"`
	TotalCapital decimal.Decimal `json:"total_capital"`
	Currency     Currency        `json:"currency"`
	Items        []Holding       `json:"items"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TotalWeight sums the stored weights across all holdings. Weights are
// expected to sum to 100 before a portfolio is saved, but the engine
// computes correctly for any stored weights.
func (p Portfolio) TotalWeight() decimal.Decimal {
	total := decimal.Zero
	for _, h := range p.Items {
		total = total.Add(h.Weight)
	}
	return total
}

// Settings is the persisted per-installation settings record. It only
// seeds the initial capital resolution state.
type Settings struct {
	DefaultCapital  decimal.Decimal `json:"default_capital"`
	DefaultCurrency Currency        `json:"default_currency"`
}
