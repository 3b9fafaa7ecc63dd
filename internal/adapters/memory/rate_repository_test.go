package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/pennywise/fxcore_app/internal/adapters/memory"
	"github.com/pennywise/fxcore_app/internal/apperrors"
	"github.com/pennywise/fxcore_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateRepository_UpsertByPairAndDate(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRateRepository()
	fxDate := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	first := domain.ExchangeRate{
		RateID:             "rate-1",
		BaseCurrencyCode:   "USD",
		TargetCurrencyCode: "EUR",
		Rate:               decimal.RequireFromString("0.90"),
		FxDate:             fxDate,
	}
	require.NoError(t, repo.SaveRates(ctx, []domain.ExchangeRate{first}))

	// Saving the same pair and date again overwrites instead of duplicating.
	second := first
	second.RateID = "rate-2"
	second.Rate = decimal.RequireFromString("0.91")
	require.NoError(t, repo.SaveRates(ctx, []domain.ExchangeRate{second}))

	stored, err := repo.FindRate(ctx, "USD", "EUR", fxDate)
	require.NoError(t, err)
	assert.Equal(t, "rate-2", stored.RateID)
	assert.True(t, decimal.RequireFromString("0.91").Equal(stored.Rate))

	all, err := repo.FindRatesForDate(ctx, fxDate)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRateRepository_FindRate_NotFound(t *testing.T) {
	repo := memory.NewRateRepository()

	_, err := repo.FindRate(context.Background(), "USD", "EUR", time.Now())

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
