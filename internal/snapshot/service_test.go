package snapshot

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dividendlab/divstat/internal/domain"
)

type mockRepo struct {
	saved map[string]json.RawMessage
}

func newMockRepo() *mockRepo {
	return &mockRepo{saved: make(map[string]json.RawMessage)}
}

func (m *mockRepo) Save(_ context.Context, date time.Time, data json.RawMessage) error {
	m.saved[date.Format("2006-01-02")] = data
	return nil
}

func (m *mockRepo) GetLatest(_ context.Context) (*Snapshot, error) {
	return nil, ErrNotFound
}

func (m *mockRepo) GetByDate(_ context.Context, _ time.Time) (*Snapshot, error) {
	return nil, ErrNotFound
}

func (m *mockRepo) List(_ context.Context, _ int) ([]Snapshot, error) {
	return nil, nil
}

type mockPortfolios struct {
	portfolios []domain.Portfolio
}

func (m *mockPortfolios) List(_ context.Context) ([]domain.Portfolio, error) {
	return m.portfolios, nil
}

type mockSettings struct {
	settings domain.Settings
}

func (m *mockSettings) Get(_ context.Context) (domain.Settings, error) {
	return m.settings, nil
}

func TestGenerateProjection(t *testing.T) {
	portfolios := &mockPortfolios{
		portfolios: []domain.Portfolio{
			{
				ID:           "p1",
				Name:         "Quarterly",
				TotalCapital: decimal.RequireFromString("99999"), // ignored under override
				Items: []domain.Holding{
					{
						Symbol:        "SCHD",
						Weight:        decimal.RequireFromString("100"),
						Price:         decimal.RequireFromString("150"),
						LastDivAmount: decimal.RequireFromString("0.2"),
						PaymentMonths: []int{2, 5, 8, 11},
					},
				},
			},
		},
	}
	cfg := &mockSettings{
		settings: domain.Settings{
			DefaultCapital:  decimal.RequireFromString("15000"),
			DefaultCurrency: domain.USD,
		},
	}
	repo := newMockRepo()
	svc := NewService(portfolios, cfg, repo, decimal.RequireFromString("1425.5"))

	date := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	projection, err := svc.Generate(context.Background(), date)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(projection.Series.Rows) != 12 {
		t.Fatalf("series rows = %d, want 12", len(projection.Series.Rows))
	}
	// Default capital overrides the stored capital: 100 shares * 0.2 = 20.
	feb := projection.Series.Rows[1].Values["p1"]
	if !feb.Equal(decimal.RequireFromString("20")) {
		t.Errorf("Feb income = %v, want 20", feb)
	}

	if len(projection.Breakdowns["p1"]) != 1 {
		t.Fatalf("breakdown rows = %d, want 1", len(projection.Breakdowns["p1"]))
	}
	if got := projection.Breakdowns["p1"][0].AnnualUSD; !got.Equal(decimal.RequireFromString("80")) {
		t.Errorf("annual USD = %v, want 80", got)
	}

	raw, ok := repo.saved["2026-08-29"]
	if !ok {
		t.Fatal("snapshot not saved")
	}
	var restored Projection
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatalf("stored payload not valid JSON: %v", err)
	}
	if restored.Currency != domain.USD {
		t.Errorf("stored currency = %v, want USD", restored.Currency)
	}
}

func TestGenerateEmptyCollection(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(&mockPortfolios{}, &mockSettings{
		settings: domain.Settings{DefaultCapital: decimal.NewFromInt(10000), DefaultCurrency: domain.USD},
	}, repo, decimal.RequireFromString("1425.5"))

	projection, err := svc.Generate(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(projection.Series.Rows) != 0 {
		t.Errorf("rows = %d, want 0 for empty collection", len(projection.Series.Rows))
	}
}
