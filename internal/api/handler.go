package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/dividendlab/divstat/internal/domain"
	"github.com/dividendlab/divstat/internal/engine"
	"github.com/dividendlab/divstat/internal/portfolio"
	"github.com/dividendlab/divstat/internal/retirement"
	"github.com/dividendlab/divstat/internal/settings"
	"github.com/dividendlab/divstat/internal/snapshot"
)

// SimulationClient fetches externally-computed retirement simulations.
type SimulationClient interface {
	GetSimulation(ctx context.Context, scenario string) (retirement.Simulation, error)
}

// Handler provides the HTTP endpoints of the income projection API.
type Handler struct {
	portfolios  *portfolio.Service
	settings    settings.Repository
	snapshots   *snapshot.Service
	simulation  SimulationClient
	rate        decimal.Decimal
	adminAPIKey string
}

// NewHandler creates a new API handler. The exchange rate is the
// configured constant snapshot used for all KRW conversions.
func NewHandler(portfolios *portfolio.Service, settingsRepo settings.Repository, snapshots *snapshot.Service, simulation SimulationClient, rate decimal.Decimal, adminAPIKey string) *Handler {
	return &Handler{
		portfolios:  portfolios,
		settings:    settingsRepo,
		snapshots:   snapshots,
		simulation:  simulation,
		rate:        rate,
		adminAPIKey: adminAPIKey,
	}
}

// capitalPolicyFromQuery builds the capital resolution policy for one
// request. A capital or capital_krw parameter acts as the global
// override; with neither, each portfolio uses its own stored capital.
func (h *Handler) capitalPolicyFromQuery(q url.Values) (*engine.CapitalPolicy, error) {
	policy := engine.NewCapitalPolicy()

	if v := q.Get("capital"); v != "" {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return nil, errors.New("invalid capital parameter")
		}
		policy.SetOverrideUSD(amount)
		return policy, nil
	}
	if v := q.Get("capital_krw"); v != "" {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return nil, errors.New("invalid capital_krw parameter")
		}
		policy.SetOverrideKRW(amount, h.rate)
		return policy, nil
	}
	return policy, nil
}

// currencyFromQuery resolves the display currency: explicit query
// parameter first, then the stored settings default.
func (h *Handler) currencyFromQuery(ctx context.Context, q url.Values) (domain.Currency, error) {
	if v := q.Get("currency"); v != "" {
		return domain.ParseCurrency(v)
	}
	cfg, err := h.settings.Get(ctx)
	if err != nil {
		slog.Warn("settings unavailable, defaulting to USD", "error", err)
		return domain.USD, nil
	}
	return cfg.DefaultCurrency, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
