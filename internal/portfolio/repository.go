package portfolio

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dividendlab/divstat/internal/domain"
)

// ErrNotFound indicates that the requested portfolio does not exist.
var ErrNotFound = errors.New("portfolio not found")

// Repository defines persistent storage for portfolios. The projection
// engine never talks to storage directly; it only reads portfolios the
// service hands it.
type Repository interface {
	List(ctx context.Context) ([]domain.Portfolio, error)
	Get(ctx context.Context, id string) (domain.Portfolio, error)
	Create(ctx context.Context, p domain.Portfolio) error
	Delete(ctx context.Context, id string) error
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL portfolio repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) List(ctx context.Context) ([]domain.Portfolio, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, account_type, total_capital::text, currency, created_at
		 FROM portfolios
		 ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing portfolios: %w", err)
	}
	defer rows.Close()

	var portfolios []domain.Portfolio
	index := make(map[string]int)
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		index[p.ID] = len(portfolios)
		portfolios = append(portfolios, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating portfolios: %w", err)
	}

	itemRows, err := r.pool.Query(ctx,
		`SELECT portfolio_id, symbol, name, category, weight::text, price::text,
		        last_div_amount::text, payment_months
		 FROM portfolio_items
		 ORDER BY portfolio_id, position, symbol`)
	if err != nil {
		return nil, fmt.Errorf("listing portfolio items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		portfolioID, h, err := scanHolding(itemRows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[portfolioID]; ok {
			portfolios[i].Items = append(portfolios[i].Items, h)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating portfolio items: %w", err)
	}

	return portfolios, nil
}

func (r *PgRepository) Get(ctx context.Context, id string) (domain.Portfolio, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, name, account_type, total_capital::text, currency, created_at
		 FROM portfolios WHERE id = $1`, id)

	p, err := scanPortfolio(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Portfolio{}, ErrNotFound
		}
		return domain.Portfolio{}, err
	}

	itemRows, err := r.pool.Query(ctx,
		`SELECT portfolio_id, symbol, name, category, weight::text, price::text,
		        last_div_amount::text, payment_months
		 FROM portfolio_items
		 WHERE portfolio_id = $1
		 ORDER BY position, symbol`, id)
	if err != nil {
		return domain.Portfolio{}, fmt.Errorf("loading items for %s: %w", id, err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		_, h, err := scanHolding(itemRows)
		if err != nil {
			return domain.Portfolio{}, err
		}
		p.Items = append(p.Items, h)
	}
	if err := itemRows.Err(); err != nil {
		return domain.Portfolio{}, fmt.Errorf("iterating items for %s: %w", id, err)
	}

	return p, nil
}

func (r *PgRepository) Create(ctx context.Context, p domain.Portfolio) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO portfolios (id, name, account_type, total_capital, currency, created_at)
		 VALUES ($1, $2, $3, $4::numeric, $5, $6)`,
		p.ID, p.Name, p.AccountType, p.TotalCapital.String(), string(p.Currency), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting portfolio %s: %w", p.ID, err)
	}

	for i, h := range p.Items {
		months := make([]int32, len(h.PaymentMonths))
		for j, m := range h.PaymentMonths {
			months[j] = int32(m)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO portfolio_items
			   (portfolio_id, symbol, name, category, weight, price, last_div_amount, payment_months, position)
			 VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7::numeric, $8, $9)`,
			p.ID, h.Symbol, h.Name, string(h.Category),
			h.Weight.String(), h.Price.String(), h.LastDivAmount.String(), months, i)
		if err != nil {
			return fmt.Errorf("inserting item %s of %s: %w", h.Symbol, p.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing portfolio %s: %w", p.ID, err)
	}
	return nil
}

func (r *PgRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM portfolios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting portfolio %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPortfolio(row rowScanner) (domain.Portfolio, error) {
	var p domain.Portfolio
	var capital, currency string
	if err := row.Scan(&p.ID, &p.Name, &p.AccountType, &capital, &currency, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Portfolio{}, err
		}
		return domain.Portfolio{}, fmt.Errorf("scanning portfolio: %w", err)
	}
	p.TotalCapital = domain.SafeParse(capital)
	p.Currency = domain.Currency(currency)
	return p, nil
}

func scanHolding(row rowScanner) (string, domain.Holding, error) {
	var portfolioID, category, weight, price, lastDiv string
	var months []int32
	var h domain.Holding
	if err := row.Scan(&portfolioID, &h.Symbol, &h.Name, &category, &weight, &price, &lastDiv, &months); err != nil {
		return "", domain.Holding{}, fmt.Errorf("scanning holding: %w", err)
	}
	h.Category = domain.Category(category)
	h.Weight = domain.SafeParse(weight)
	h.Price = domain.SafeParse(price)
	h.LastDivAmount = domain.SafeParse(lastDiv)
	h.PaymentMonths = make([]int, len(months))
	for i, m := range months {
		h.PaymentMonths[i] = int(m)
	}
	return portfolioID, h, nil
}
