package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dividendlab/divstat/internal/domain"
	"github.com/dividendlab/divstat/internal/engine"
	"github.com/dividendlab/divstat/internal/portfolio"
)

type incomeRow struct {
	Month  int             `json:"month"`
	Label  string          `json:"label"`
	Income decimal.Decimal `json:"income"`
}

type incomeResponse struct {
	PortfolioID string          `json:"portfolio_id"`
	Capital     decimal.Decimal `json:"capital"`
	Currency    domain.Currency `json:"currency"`
	Months      []incomeRow     `json:"months"`
}

// GetMonthlyIncome handles GET /api/v1/portfolios/{id}/income. Optional
// query parameters: capital or capital_krw (what-if override), currency.
func (h *Handler) GetMonthlyIncome(w http.ResponseWriter, r *http.Request) {
	p, err := h.portfolios.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, portfolio.ErrNotFound) {
			writeError(w, http.StatusNotFound, "portfolio not found")
			return
		}
		slog.Error("failed to get portfolio", "id", r.PathValue("id"), "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	policy, err := h.capitalPolicyFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	currency, err := h.currencyFromQuery(r.Context(), r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid currency parameter")
		return
	}

	capital := policy.Resolve(p)
	months := engine.ProjectMonthlyIncome(p, capital, currency, h.rate)

	rows := make([]incomeRow, len(months))
	for i, v := range months {
		rows[i] = incomeRow{Month: i + 1, Label: engine.MonthLabel(i + 1), Income: v}
	}
	writeJSON(w, http.StatusOK, incomeResponse{
		PortfolioID: p.ID,
		Capital:     capital,
		Currency:    currency,
		Months:      rows,
	})
}

type breakdownResponse struct {
	PortfolioID  string            `json:"portfolio_id"`
	Capital      decimal.Decimal   `json:"capital"`
	ExchangeRate decimal.Decimal   `json:"exchange_rate"`
	Assets       []engine.AssetRow `json:"assets"`
}

// GetBreakdown handles GET /api/v1/portfolios/{id}/breakdown.
func (h *Handler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	p, err := h.portfolios.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, portfolio.ErrNotFound) {
			writeError(w, http.StatusNotFound, "portfolio not found")
			return
		}
		slog.Error("failed to get portfolio", "id", r.PathValue("id"), "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	policy, err := h.capitalPolicyFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	capital := policy.Resolve(p)
	assets := engine.BreakdownAssets(p, capital, h.rate)
	if assets == nil {
		assets = []engine.AssetRow{}
	}
	writeJSON(w, http.StatusOK, breakdownResponse{
		PortfolioID:  p.ID,
		Capital:      capital,
		ExchangeRate: h.rate,
		Assets:       assets,
	})
}

// Compare handles GET /api/v1/compare. The ids parameter is a
// comma-separated membership set of portfolio IDs; unknown IDs are
// ignored and an empty selection yields a series with no rows.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	portfolios, err := h.portfolios.List(r.Context())
	if err != nil {
		slog.Error("failed to list portfolios", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	policy, err := h.capitalPolicyFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	currency, err := h.currencyFromQuery(r.Context(), r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid currency parameter")
		return
	}

	selection := splitIDs(r.URL.Query().Get("ids"))
	series := engine.BuildComparisonSeries(portfolios, selection, policy.Resolve, currency, h.rate)
	writeJSON(w, http.StatusOK, series)
}

func splitIDs(raw string) []string {
	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
