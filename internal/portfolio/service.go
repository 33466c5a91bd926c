package portfolio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dividendlab/divstat/internal/domain"
)

// ErrInvalidWeights indicates that a portfolio's weights do not sum to 100.
// Save-time validation lives here; the projection engine itself computes
// for any weights it is given.
var ErrInvalidWeights = errors.New("holding weights must sum to 100")

// weightTolerance allows for fractional weights entered with one decimal.
var weightTolerance = decimal.RequireFromString("0.1")

// Service owns the portfolio lifecycle: it validates and stores user
// portfolios, and hands read-only copies to the projection engine.
type Service struct {
	repo Repository
}

// NewService creates a new portfolio Service.
func NewService(repo Repository) *Service {
	if repo == nil {
		panic("portfolio.NewService: repo is nil")
	}
	return &Service{repo: repo}
}

// List returns all stored portfolios with their holdings.
func (s *Service) List(ctx context.Context) ([]domain.Portfolio, error) {
	return s.repo.List(ctx)
}

// Get returns one portfolio by ID.
func (s *Service) Get(ctx context.Context, id string) (domain.Portfolio, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new portfolio, assigning its ID and
// creation time. Weights must sum to 100 within tolerance before a
// portfolio is accepted for saving.
func (s *Service) Create(ctx context.Context, p domain.Portfolio) (domain.Portfolio, error) {
	if p.Name == "" {
		return domain.Portfolio{}, errors.New("portfolio name is required")
	}
	if diff := p.TotalWeight().Sub(decimal.NewFromInt(100)).Abs(); diff.GreaterThan(weightTolerance) {
		return domain.Portfolio{}, fmt.Errorf("%w: got %s", ErrInvalidWeights, p.TotalWeight())
	}
	if p.AccountType == "" {
		p.AccountType = "Personal"
	}
	if p.Currency == "" {
		p.Currency = domain.USD
	}

	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()

	if err := s.repo.Create(ctx, p); err != nil {
		return domain.Portfolio{}, err
	}
	return p, nil
}

// Delete removes a stored portfolio and its holdings.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
