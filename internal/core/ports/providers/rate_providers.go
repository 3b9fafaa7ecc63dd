package providers

import (
	"context"

	"github.com/shopspring/decimal"
)

// RateProvider is one upstream source of daily exchange rate quotes. Providers are
// tried strictly in ascending Priority order; a failed or timed-out provider is a typed
// error (apperrors.ProviderError) that falls through to the next one.
type RateProvider interface {
	// Name identifies the provider in rate provenance and logs.
	Name() string

	// Priority orders providers in the fallback chain; lower is tried first.
	Priority() int

	// FetchLatest returns today's quotes for the given base currency, keyed by target
	// currency code. The call must be bounded by the provider's own timeout.
	FetchLatest(ctx context.Context, baseCode string) (map[string]decimal.Decimal, error)
}
