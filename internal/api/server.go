package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"
)

// NewServer creates an HTTP server with all routes configured.
func NewServer(port string, h *Handler) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/v1/portfolios", h.ListPortfolios)
	mux.HandleFunc("POST /api/v1/portfolios", h.CreatePortfolio)
	mux.HandleFunc("GET /api/v1/portfolios/{id}", h.GetPortfolio)
	mux.HandleFunc("DELETE /api/v1/portfolios/{id}", h.DeletePortfolio)

	mux.HandleFunc("GET /api/v1/portfolios/{id}/income", h.GetMonthlyIncome)
	mux.HandleFunc("GET /api/v1/portfolios/{id}/breakdown", h.GetBreakdown)
	mux.HandleFunc("GET /api/v1/compare", h.Compare)

	mux.HandleFunc("GET /api/v1/settings", h.GetSettings)
	mux.HandleFunc("PUT /api/v1/settings", h.UpdateSettings)

	mux.HandleFunc("GET /api/v1/snapshots/latest", h.GetLatestSnapshot)
	mux.HandleFunc("GET /api/v1/snapshots/{date}", h.GetSnapshotByDate)
	mux.HandleFunc("GET /api/v1/snapshots", h.ListSnapshots)

	generateHandler := http.HandlerFunc(h.GenerateSnapshot)
	if h.adminAPIKey != "" {
		mux.Handle("POST /api/v1/snapshots/generate", requireAuth(h.adminAPIKey, generateHandler))
	} else {
		mux.Handle("POST /api/v1/snapshots/generate", generateHandler)
	}

	if h.simulation != nil {
		mux.HandleFunc("GET /api/v1/retirement/simulate", h.GetRetirementSimulation)
	}

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}
