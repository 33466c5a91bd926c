package engine

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/dividendlab/divstat/internal/domain"
)

var twelve = decimal.NewFromInt(12)

// AssetRow is the expanded single-portfolio view of one holding: annual
// and monthly income in both currencies. Weight is emitted as stored,
// unclamped.
type AssetRow struct {
	Symbol     string          `json:"symbol"`
	Name       string          `json:"name"`
	Category   domain.Category `json:"category"`
	Weight     decimal.Decimal `json:"weight"`
	AnnualUSD  decimal.Decimal `json:"annual_usd"`
	AnnualKRW  decimal.Decimal `json:"annual_krw"`
	MonthlyUSD decimal.Decimal `json:"monthly_usd"`
	MonthlyKRW decimal.Decimal `json:"monthly_krw"`
}

// BreakdownAssets computes per-asset annual and monthly income for one
// portfolio under the resolved capital. Annual income is one payment's
// income times the number of distinct in-range payment months, so it
// always equals the sum of the monthly vector; monthly income spreads the
// annual figure evenly. Rounding (USD to cents, KRW to whole won) is
// applied only here, at emission.
func BreakdownAssets(p domain.Portfolio, capital, rate decimal.Decimal) []AssetRow {
	return lo.Map(p.Items, func(h domain.Holding, _ int) AssetRow {
		payments := decimal.NewFromInt(int64(len(distinctPaymentMonths(h))))
		annualUSD := paymentIncome(h, capital).Mul(payments)
		annualKRW := domain.ToSecondary(annualUSD, rate)

		return AssetRow{
			Symbol:     h.Symbol,
			Name:       h.Name,
			Category:   h.Category,
			Weight:     h.Weight,
			AnnualUSD:  domain.USD.RoundDisplay(annualUSD),
			AnnualKRW:  domain.KRW.RoundDisplay(annualKRW),
			MonthlyUSD: domain.USD.RoundDisplay(annualUSD.Div(twelve)),
			MonthlyKRW: domain.KRW.RoundDisplay(annualKRW.Div(twelve)),
		}
	})
}
