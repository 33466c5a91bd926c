package engine

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dividendlab/divstat/internal/domain"
)

// MonthsInCycle is the length of the steady-state projection cycle. The
// projection is indexed by calendar month number, not by dated forecast:
// month 1 means "the first occurrence of payment-month 1 in a notional
// twelve-month cycle".
const MonthsInCycle = 12

// MonthLabel returns the short English label for month m (1..12).
func MonthLabel(m int) string {
	return time.Month(m).String()[:3]
}

// distinctPaymentMonths returns the holding's payment months as a set:
// duplicates count once and out-of-range values are dropped. Every
// consumer of payment month data goes through this, so the annual
// payment count always agrees with the monthly vector.
func distinctPaymentMonths(h domain.Holding) []int {
	var seen [MonthsInCycle + 1]bool
	months := make([]int, 0, len(h.PaymentMonths))
	for _, m := range h.PaymentMonths {
		if m < 1 || m > MonthsInCycle || seen[m] {
			continue
		}
		seen[m] = true
		months = append(months, m)
	}
	return months
}

// ProjectMonthlyIncome produces the 12-slot calendar-month income vector
// for one portfolio under the given capital, expressed in the target
// currency. Each slot sums, over the holdings that pay in that month, the
// income of one payment event. Values are rounded for display at this
// emission point (2 decimals for USD, whole numbers for KRW) and never
// mid-calculation, so rounding error does not compound across holdings.
func ProjectMonthlyIncome(p domain.Portfolio, capital decimal.Decimal, currency domain.Currency, rate decimal.Decimal) []decimal.Decimal {
	months := make([]decimal.Decimal, MonthsInCycle)
	for i := range months {
		months[i] = decimal.Zero
	}

	for _, h := range p.Items {
		income := paymentIncome(h, capital)
		for _, m := range distinctPaymentMonths(h) {
			months[m-1] = months[m-1].Add(income)
		}
	}

	for i, v := range months {
		if currency == domain.KRW {
			v = domain.ToSecondary(v, rate)
		}
		months[i] = currency.RoundDisplay(v)
	}
	return months
}
