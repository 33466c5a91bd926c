package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dividendlab/divstat/internal/domain"
)

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandler(&mockPortfolioRepo{}, nil, nil, nil)
	srv := NewServer("8000", h)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestRouting(t *testing.T) {
	repo := &mockPortfolioRepo{portfolios: []domain.Portfolio{quarterlyPortfolio("id-a", "Core")}}
	h := newTestHandler(repo, nil, nil, &mockSimulation{})
	srv := NewServer("8000", h)

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/v1/portfolios", http.StatusOK},
		{http.MethodGet, "/api/v1/portfolios/id-a", http.StatusOK},
		{http.MethodGet, "/api/v1/portfolios/id-a/income", http.StatusOK},
		{http.MethodGet, "/api/v1/portfolios/id-a/breakdown", http.StatusOK},
		{http.MethodGet, "/api/v1/compare?ids=id-a", http.StatusOK},
		{http.MethodGet, "/api/v1/settings", http.StatusOK},
		{http.MethodGet, "/api/v1/snapshots", http.StatusOK},
		{http.MethodGet, "/api/v1/snapshots/latest", http.StatusNotFound},
		{http.MethodGet, "/api/v1/retirement/simulate", http.StatusOK},
		{http.MethodPost, "/api/v1/portfolios/id-a", http.StatusMethodNotAllowed},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		srv.Handler.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Errorf("%s %s: status = %d, want %d", tc.method, tc.path, w.Code, tc.want)
		}
	}
}

func TestSimulationRouteAbsentWithoutClient(t *testing.T) {
	h := newTestHandler(&mockPortfolioRepo{}, nil, nil, nil)
	srv := NewServer("8000", h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/retirement/simulate", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGenerateRequiresAuth(t *testing.T) {
	repo := &mockPortfolioRepo{}
	settings := &mockSettingsRepo{settings: domain.Settings{DefaultCapital: d("10000"), DefaultCurrency: domain.USD}}
	base := newTestHandler(repo, settings, nil, nil)
	base.adminAPIKey = "secret-key"
	srv := NewServer("8000", base)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/snapshots/generate", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/snapshots/generate", nil)
	req.Header.Set("Authorization", "Bearer wrong-key")
	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token: status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/snapshots/generate", nil)
	req.Header.Set("Authorization", "Bearer secret-key")
	w = httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("valid token: status = %d, want 200", w.Code)
	}
}
