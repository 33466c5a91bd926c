package retirement

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetSimulation(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"summary": {
				"total_survival_years": 42,
				"sgov_exhaustion_date": "2041-03",
				"growth_asset_sell_start_date": "2043-07",
				"is_permanent": false
			},
			"monthly_data": [
				{"month": 1, "corp_balance": 100000, "pension_balance": 50000, "total_net_worth": 150000, "target_cashflow": 3000}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2, 10*time.Millisecond)
	sim, err := client.GetSimulation(context.Background(), "")
	if err != nil {
		t.Fatalf("GetSimulation: %v", err)
	}

	if gotPath != "/api/retirement/simulate" {
		t.Errorf("path = %q", gotPath)
	}
	if sim.Summary.TotalSurvivalYears != 42 {
		t.Errorf("survival years = %d, want 42", sim.Summary.TotalSurvivalYears)
	}
	if len(sim.MonthlyData) != 1 || sim.MonthlyData[0].CorpBalance != 100000 {
		t.Errorf("monthly data = %+v", sim.MonthlyData)
	}
}

func TestGetSimulationScenario(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("scenario")
		w.Write([]byte(`{"summary":{},"monthly_data":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2, 10*time.Millisecond)
	if _, err := client.GetSimulation(context.Background(), "BEAR"); err != nil {
		t.Fatalf("GetSimulation: %v", err)
	}
	if gotQuery != "BEAR" {
		t.Errorf("scenario = %q, want BEAR", gotQuery)
	}
}

func TestGetSimulationRetriesOn429(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"summary":{},"monthly_data":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 3, time.Millisecond)
	if _, err := client.GetSimulation(context.Background(), ""); err != nil {
		t.Fatalf("GetSimulation after retries: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestGetSimulationServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 1, time.Millisecond)
	if _, err := client.GetSimulation(context.Background(), ""); err == nil {
		t.Error("expected error on 500")
	}
}

func TestGetSimulationNegativeRetries(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"summary":{"total_survival_years":7},"monthly_data":[]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, -3, time.Millisecond)
	sim, err := client.GetSimulation(context.Background(), "")
	if err != nil {
		t.Fatalf("GetSimulation: %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if sim.Summary.TotalSurvivalYears != 7 {
		t.Errorf("survival years = %d, want 7", sim.Summary.TotalSurvivalYears)
	}
}
