package repositories

import (
	"context"
	"time"

	"github.com/pennywise/fxcore_app/internal/core/domain"
)

// RateReader defines read operations for exchange rate data.
type RateReader interface {
	// FindRate retrieves the rate for a currency pair on an exact date.
	// Returns apperrors.ErrNotFound when no row exists for that date.
	FindRate(ctx context.Context, baseCode, targetCode string, fxDate time.Time) (*domain.ExchangeRate, error)

	// FindRatesForDate retrieves all rate rows effective on the given date.
	FindRatesForDate(ctx context.Context, fxDate time.Time) ([]domain.ExchangeRate, error)
}

// RateWriter defines write operations for exchange rate data. Writes are idempotent
// upserts keyed by (base_currency, target_currency, fx_date): re-storing the same day's
// rate overwrites rather than duplicates.
type RateWriter interface {
	SaveRates(ctx context.Context, rates []domain.ExchangeRate) error
}

// RateRepositoryFacade combines all exchange rate repository interfaces.
type RateRepositoryFacade interface {
	RateReader
	RateWriter
}
