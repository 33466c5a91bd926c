package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/dividendlab/divstat/internal/domain"
	"github.com/dividendlab/divstat/internal/engine"
)

// PortfolioSource supplies the stored portfolio collection.
type PortfolioSource interface {
	List(ctx context.Context) ([]domain.Portfolio, error)
}

// SettingsSource supplies the settings record seeding the projection defaults.
type SettingsSource interface {
	Get(ctx context.Context) (domain.Settings, error)
}

// Projection is the snapshot payload: the full comparison series over all
// stored portfolios at the settings default capital, plus each
// portfolio's per-asset breakdown.
type Projection struct {
	Date         time.Time                    `json:"date"`
	Capital      decimal.Decimal              `json:"capital"`
	Currency     domain.Currency              `json:"currency"`
	ExchangeRate decimal.Decimal              `json:"exchange_rate"`
	Series       engine.Series                `json:"series"`
	Breakdowns   map[string][]engine.AssetRow `json:"breakdowns"`
}

// Service generates and stores daily projection snapshots.
type Service struct {
	portfolios PortfolioSource
	settings   SettingsSource
	repo       Repository
	rate       decimal.Decimal
}

// NewService creates a new snapshot Service. The exchange rate is the
// configured constant snapshot, not live-fetched.
func NewService(portfolios PortfolioSource, settings SettingsSource, repo Repository, rate decimal.Decimal) *Service {
	if portfolios == nil {
		panic("snapshot.NewService: portfolios is nil")
	}
	if settings == nil {
		panic("snapshot.NewService: settings is nil")
	}
	if repo == nil {
		panic("snapshot.NewService: repo is nil")
	}
	return &Service{portfolios: portfolios, settings: settings, repo: repo, rate: rate}
}

// Generate computes the projection over every stored portfolio and
// persists it under the given date, replacing any snapshot already
// stored for that date.
func (s *Service) Generate(ctx context.Context, date time.Time) (Projection, error) {
	portfolios, err := s.portfolios.List(ctx)
	if err != nil {
		return Projection{}, fmt.Errorf("fetching portfolios: %w", err)
	}

	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return Projection{}, fmt.Errorf("fetching settings: %w", err)
	}

	// The snapshot uses the settings default capital as a global
	// override so all portfolios are compared on equal footing.
	policy := engine.NewCapitalPolicy()
	policy.SetOverrideUSD(cfg.DefaultCapital)

	selection := lo.Map(portfolios, func(p domain.Portfolio, _ int) string { return p.ID })
	series := engine.BuildComparisonSeries(portfolios, selection, policy.Resolve, cfg.DefaultCurrency, s.rate)

	breakdowns := make(map[string][]engine.AssetRow, len(portfolios))
	for _, p := range portfolios {
		breakdowns[p.ID] = engine.BreakdownAssets(p, policy.Resolve(p), s.rate)
	}

	projection := Projection{
		Date:         date,
		Capital:      cfg.DefaultCapital,
		Currency:     cfg.DefaultCurrency,
		ExchangeRate: s.rate,
		Series:       series,
		Breakdowns:   breakdowns,
	}

	data, err := json.Marshal(projection)
	if err != nil {
		return Projection{}, fmt.Errorf("marshaling projection: %w", err)
	}
	if err := s.repo.Save(ctx, date, data); err != nil {
		return Projection{}, err
	}
	return projection, nil
}

// GetLatest returns the most recent stored snapshot.
func (s *Service) GetLatest(ctx context.Context) (*Snapshot, error) {
	return s.repo.GetLatest(ctx)
}

// GetByDate returns the snapshot stored for the given date.
func (s *Service) GetByDate(ctx context.Context, date time.Time) (*Snapshot, error) {
	return s.repo.GetByDate(ctx, date)
}

// List returns up to limit snapshots, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Snapshot, error) {
	return s.repo.List(ctx, limit)
}
