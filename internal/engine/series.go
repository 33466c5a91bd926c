package engine

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/dividendlab/divstat/internal/domain"
)

// Column identifies one portfolio in a comparison series. Columns are
// keyed by portfolio ID; the display name rides along as a label so that
// two portfolios sharing a name cannot collide.
type Column struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Row is one calendar month of the comparison: the rounded income of
// each selected portfolio for that month, keyed by portfolio ID.
type Row struct {
	Month  int                        `json:"month"`
	Label  string                     `json:"label"`
	Values map[string]decimal.Decimal `json:"values"`
}

// Series is a tabular 12-month time series, one column per selected
// portfolio, suitable for charting.
type Series struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// CapitalResolver supplies the capital for one portfolio. Callers pass
// CapitalPolicy.Resolve (or an equivalent) so that a global override
// flows through every column identically.
type CapitalResolver func(domain.Portfolio) decimal.Decimal

// BuildComparisonSeries builds the side-by-side monthly income series for
// the selected portfolios. Selection is a membership set of portfolio
// IDs; order is irrelevant — columns follow the order of the portfolio
// collection. The series is recomputed from scratch on every call; with
// tens of portfolios and 12 months a full recompute is cheap, and it
// keeps the output a pure function of its inputs.
//
// An empty selection yields a series with no rows, signaling "nothing to
// chart" to the caller.
func BuildComparisonSeries(portfolios []domain.Portfolio, selection []string, resolve CapitalResolver, currency domain.Currency, rate decimal.Decimal) Series {
	selected := selectPortfolios(portfolios, selection)
	if len(selected) == 0 {
		return Series{}
	}

	columns := lo.Map(selected, func(p domain.Portfolio, _ int) Column {
		return Column{ID: p.ID, Name: p.Name}
	})

	incomes := make(map[string][]decimal.Decimal, len(selected))
	for _, p := range selected {
		incomes[p.ID] = ProjectMonthlyIncome(p, resolve(p), currency, rate)
	}

	rows := make([]Row, 0, MonthsInCycle)
	for m := 1; m <= MonthsInCycle; m++ {
		values := make(map[string]decimal.Decimal, len(selected))
		for _, p := range selected {
			values[p.ID] = incomes[p.ID][m-1]
		}
		rows = append(rows, Row{Month: m, Label: MonthLabel(m), Values: values})
	}

	return Series{Columns: columns, Rows: rows}
}

func selectPortfolios(portfolios []domain.Portfolio, selection []string) []domain.Portfolio {
	wanted := lo.SliceToMap(selection, func(id string) (string, struct{}) {
		return id, struct{}{}
	})
	return lo.Filter(portfolios, func(p domain.Portfolio, _ int) bool {
		_, ok := wanted[p.ID]
		return ok
	})
}
