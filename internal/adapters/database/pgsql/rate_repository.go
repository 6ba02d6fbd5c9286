package pgsql

import (
	"context"
	"fmt"

	"github.com/NotaSpese/expense_report_app/internal/core/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRateRepository implements the repositories.RateRepository interface using pgxpool.
type PgxRateRepository struct {
	db *pgxpool.Pool
}

// NewRateRepository creates a new PgxRateRepository.
func NewRateRepository(db *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{db: db}
}

// UpsertRate inserts or replaces the rate stored for a currency code.
func (r *PgxRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) error {
	query := `
		INSERT INTO exchange_rates (
			currency_code, rate,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (currency_code) DO UPDATE SET
			rate = EXCLUDED.rate,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
	`
	_, err := r.db.Exec(ctx, query,
		rate.CurrencyCode, rate.Rate,
		rate.CreatedAt, rate.CreatedBy, rate.LastUpdatedAt, rate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("error upserting exchange rate: %w", err)
	}
	return nil
}

// ListRates retrieves every stored exchange rate.
func (r *PgxRateRepository) ListRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := `
		SELECT currency_code, rate,
			created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rates
		ORDER BY currency_code
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing exchange rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		var rate domain.ExchangeRate
		if err := rows.Scan(
			&rate.CurrencyCode, &rate.Rate,
			&rate.CreatedAt, &rate.CreatedBy, &rate.LastUpdatedAt, &rate.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("error scanning exchange rate row: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rate rows: %w", err)
	}
	return rates, nil
}
