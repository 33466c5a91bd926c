// Package export publishes projection snapshots to spreadsheet
// destinations: a shared Google Sheets document refreshed after every
// snapshot, or a one-shot local Excel workbook.
package export

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/dividendlab/divstat/internal/engine"
	"github.com/dividendlab/divstat/internal/snapshot"
)

// SheetWriter writes a projection to a spreadsheet destination.
type SheetWriter interface {
	Write(ctx context.Context, projection snapshot.Projection) error
}

// Service delegates projection writing to a SheetWriter.
// Implements worker.AfterSnapshotHook.
type Service struct {
	writer SheetWriter
}

// NewService creates a new export Service.
func NewService(writer SheetWriter) *Service {
	return &Service{writer: writer}
}

// Export writes the projection to the configured destination.
func (s *Service) Export(ctx context.Context, projection snapshot.Projection) error {
	return s.writer.Write(ctx, projection)
}

// buildIncomeRows builds the INCOME sheet data: one row per calendar
// month, one column per portfolio, values in the projection currency.
// Columns: Month | <portfolio name>...
func buildIncomeRows(projection snapshot.Projection) [][]any {
	series := projection.Series

	header := make([]any, 0, len(series.Columns)+1)
	header = append(header, "Month")
	for _, col := range series.Columns {
		header = append(header, col.Name)
	}

	data := make([][]any, 0, len(series.Rows)+1)
	data = append(data, header)
	for _, row := range series.Rows {
		cells := make([]any, 0, len(series.Columns)+1)
		cells = append(cells, row.Label)
		for _, col := range series.Columns {
			cells = append(cells, toFloat(row.Values[col.ID]))
		}
		data = append(data, cells)
	}
	return data
}

// buildBreakdownRows builds the BREAKDOWN sheet data: one row per
// holding across all portfolios, in series column order.
// Columns: Portfolio | Symbol | Name | Category | Weight % | Annual USD | Annual KRW | Monthly USD | Monthly KRW
func buildBreakdownRows(projection snapshot.Projection) [][]any {
	data := [][]any{
		{"Portfolio", "Symbol", "Name", "Category", "Weight %", "Annual USD", "Annual KRW", "Monthly USD", "Monthly KRW"},
	}

	for _, col := range projection.Series.Columns {
		for _, asset := range projection.Breakdowns[col.ID] {
			data = append(data, breakdownCells(col.Name, asset))
		}
	}
	return data
}

func breakdownCells(portfolioName string, asset engine.AssetRow) []any {
	return []any{
		portfolioName,
		asset.Symbol,
		asset.Name,
		string(asset.Category),
		toFloat(asset.Weight),
		toFloat(asset.AnnualUSD),
		toFloat(asset.AnnualKRW),
		toFloat(asset.MonthlyUSD),
		toFloat(asset.MonthlyKRW),
	}
}

// buildSummaryRows builds the SUMMARY sheet data: the snapshot
// parameters the income and breakdown figures were computed under.
func buildSummaryRows(projection snapshot.Projection) [][]any {
	return [][]any{
		{"Date", projection.Date.Format("2006-01-02")},
		{"Capital USD", toFloat(projection.Capital)},
		{"Currency", string(projection.Currency)},
		{"Exchange Rate KRW/USD", toFloat(projection.ExchangeRate)},
		{"Portfolios", len(projection.Series.Columns)},
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
