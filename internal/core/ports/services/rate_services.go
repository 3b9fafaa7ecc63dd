package services

import (
	"context"
	"time"

	"github.com/pennywise/fxcore_app/internal/core/domain"
	"github.com/pennywise/fxcore_app/internal/core/ports/providers"
)

// RateReaderSvc defines read operations over the rate store.
type RateReaderSvc interface {
	// GetRate looks up the rate for a pair on the given date, falling back one day
	// when the exact date is missing. A zero date means today.
	GetRate(ctx context.Context, baseCode, targetCode string, fxDate time.Time) (*domain.ExchangeRate, error)

	// GetRatesForDate lists all rate rows effective on the given date.
	GetRatesForDate(ctx context.Context, fxDate time.Time) ([]domain.ExchangeRate, error)

	// HasRatesForToday reports whether any rate rows exist for today's date.
	HasRatesForToday(ctx context.Context) (bool, error)

	// CheckStaleRates reports whether today's rate set contains any stale entries.
	CheckStaleRates(ctx context.Context) (bool, error)
}

// RateFetcherSvc defines the daily fetch operations.
type RateFetcherSvc interface {
	// FetchTodaysRates tries configured providers in priority order, persists the
	// first non-empty rate set, and falls back to previous-day rates when every
	// provider fails.
	FetchTodaysRates(ctx context.Context) ([]domain.ExchangeRate, error)

	// FetchFromProvider fetches and canonicalizes rates from a single provider.
	FetchFromProvider(ctx context.Context, provider providers.RateProvider) ([]domain.ExchangeRate, error)

	// UsePreviousDayRates clones yesterday's non-stale rates forward as stale rows.
	UsePreviousDayRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// RateSvcFacade combines all rate-related service interfaces.
type RateSvcFacade interface {
	RateReaderSvc
	RateFetcherSvc
}
