package api

import (
	"log/slog"
	"net/http"
)

// GetRetirementSimulation handles GET /api/v1/retirement/simulate,
// proxying the external simulation service. The optional scenario
// parameter names a stress scenario; empty requests the baseline run.
func (h *Handler) GetRetirementSimulation(w http.ResponseWriter, r *http.Request) {
	sim, err := h.simulation.GetSimulation(r.Context(), r.URL.Query().Get("scenario"))
	if err != nil {
		slog.Error("failed to fetch retirement simulation", "error", err)
		writeError(w, http.StatusBadGateway, "simulation service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, sim)
}
