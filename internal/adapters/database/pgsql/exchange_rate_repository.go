package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pennywise/fxcore_app/internal/apperrors"
	"github.com/pennywise/fxcore_app/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRateRepository implements the repositories.RateRepositoryFacade interface using
// pgxpool. Rows are keyed by (base_currency, target_currency, fx_date); saving is an
// idempotent upsert so re-fetching the same day's rates overwrites rather than
// duplicates.
type PgxRateRepository struct {
	db *pgxpool.Pool
}

// NewRateRepository creates a new PgxRateRepository.
func NewRateRepository(db *pgxpool.Pool) *PgxRateRepository {
	return &PgxRateRepository{db: db}
}

// SaveRates upserts the given rate rows in one batch.
func (r *PgxRateRepository) SaveRates(ctx context.Context, rates []domain.ExchangeRate) error {
	if len(rates) == 0 {
		return nil
	}
	query := `
		INSERT INTO exchange_rates (
			rate_id, base_currency, target_currency, rate, fx_date, source, is_stale,
			created_at, last_updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (base_currency, target_currency, fx_date) DO UPDATE SET
			rate = EXCLUDED.rate,
			source = EXCLUDED.source,
			is_stale = EXCLUDED.is_stale,
			last_updated_at = EXCLUDED.last_updated_at
	`
	batch := &pgx.Batch{}
	for _, rate := range rates {
		batch.Queue(query,
			rate.RateID, rate.BaseCurrencyCode, rate.TargetCurrencyCode, rate.Rate,
			rate.FxDate, rate.Source, rate.IsStale, rate.CreatedAt, rate.LastUpdatedAt,
		)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for range rates {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("error upserting exchange rate: %w", err)
		}
	}
	return nil
}

// FindRate retrieves the rate for a currency pair on an exact date.
func (r *PgxRateRepository) FindRate(ctx context.Context, baseCode, targetCode string, fxDate time.Time) (*domain.ExchangeRate, error) {
	query := `
		SELECT rate_id, base_currency, target_currency, rate, fx_date, source, is_stale,
			created_at, last_updated_at
		FROM exchange_rates
		WHERE base_currency = $1 AND target_currency = $2 AND fx_date = $3
	`
	rate := &domain.ExchangeRate{}
	err := r.db.QueryRow(ctx, query, baseCode, targetCode, fxDate).Scan(
		&rate.RateID, &rate.BaseCurrencyCode, &rate.TargetCurrencyCode, &rate.Rate,
		&rate.FxDate, &rate.Source, &rate.IsStale, &rate.CreatedAt, &rate.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding exchange rate: %w", err)
	}
	return rate, nil
}

// FindRatesForDate retrieves all rate rows effective on the given date.
func (r *PgxRateRepository) FindRatesForDate(ctx context.Context, fxDate time.Time) ([]domain.ExchangeRate, error) {
	query := `
		SELECT rate_id, base_currency, target_currency, rate, fx_date, source, is_stale,
			created_at, last_updated_at
		FROM exchange_rates
		WHERE fx_date = $1
		ORDER BY base_currency, target_currency
	`
	rows, err := r.db.Query(ctx, query, fxDate)
	if err != nil {
		return nil, fmt.Errorf("error listing exchange rates: %w", err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		var rate domain.ExchangeRate
		if err := rows.Scan(
			&rate.RateID, &rate.BaseCurrencyCode, &rate.TargetCurrencyCode, &rate.Rate,
			&rate.FxDate, &rate.Source, &rate.IsStale, &rate.CreatedAt, &rate.LastUpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning exchange rate: %w", err)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rates: %w", err)
	}
	return rates, nil
}
