// Package settings persists the single per-installation settings record
// that seeds the capital resolution defaults.
package settings

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dividendlab/divstat/internal/domain"
)

// Repository defines settings storage.
type Repository interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, s domain.Settings) error
}

// PgRepository implements Repository with PostgreSQL. The settings table
// holds exactly one row, created by the initial migration.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL settings repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Get(ctx context.Context) (domain.Settings, error) {
	var capital, currency string
	err := r.pool.QueryRow(ctx,
		`SELECT default_capital::text, default_currency FROM settings WHERE id = 1`).
		Scan(&capital, &currency)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("reading settings: %w", err)
	}

	return domain.Settings{
		DefaultCapital:  domain.SafeParse(capital),
		DefaultCurrency: domain.Currency(currency),
	}, nil
}

func (r *PgRepository) Update(ctx context.Context, s domain.Settings) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE settings
		 SET default_capital = $1::numeric, default_currency = $2, updated_at = NOW()
		 WHERE id = 1`,
		s.DefaultCapital.String(), string(s.DefaultCurrency))
	if err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}
	return nil
}
