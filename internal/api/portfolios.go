package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dividendlab/divstat/internal/domain"
	"github.com/dividendlab/divstat/internal/portfolio"
)

// ListPortfolios handles GET /api/v1/portfolios.
func (h *Handler) ListPortfolios(w http.ResponseWriter, r *http.Request) {
	portfolios, err := h.portfolios.List(r.Context())
	if err != nil {
		slog.Error("failed to list portfolios", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if portfolios == nil {
		portfolios = []domain.Portfolio{}
	}
	writeJSON(w, http.StatusOK, portfolios)
}

// GetPortfolio handles GET /api/v1/portfolios/{id}.
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, p)
}

// CreatePortfolio handles POST /api/v1/portfolios.
func (h *Handler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var p domain.Portfolio
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	created, err := h.portfolios.Create(r.Context(), p)
	if err != nil {
		if errors.Is(err, portfolio.ErrInvalidWeights) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.Error("failed to create portfolio", "name", p.Name, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// DeletePortfolio handles DELETE /api/v1/portfolios/{id}.
func (h *Handler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	err := h.portfolios.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, portfolio.ErrNotFound) {
			writeError(w, http.StatusNotFound, "portfolio not found")
			return
		}
		slog.Error("failed to delete portfolio", "id", r.PathValue("id"), "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// GetSettings handles GET /api/v1/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.settings.Get(r.Context())
	if err != nil {
		slog.Error("failed to get settings", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// UpdateSettings handles PUT /api/v1/settings.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var cfg domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if _, err := domain.ParseCurrency(string(cfg.DefaultCurrency)); err != nil {
		writeError(w, http.StatusBadRequest, "invalid default_currency")
		return
	}

	if err := h.settings.Update(r.Context(), cfg); err != nil {
		slog.Error("failed to update settings", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}
