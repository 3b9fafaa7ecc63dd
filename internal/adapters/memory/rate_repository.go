// Package memory provides in-memory repository implementations used in tests and when
// embedding the core as a library without durable storage.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pennywise/fxcore_app/internal/apperrors"
	"github.com/pennywise/fxcore_app/internal/core/domain"
)

// RateRepository is a mutex-guarded map-backed rate store. Writes are idempotent
// upserts keyed by (base, target, fx date), matching the durable implementation.
type RateRepository struct {
	mu    sync.RWMutex
	rates map[string]domain.ExchangeRate
}

// NewRateRepository creates an empty in-memory rate store.
func NewRateRepository() *RateRepository {
	return &RateRepository{rates: make(map[string]domain.ExchangeRate)}
}

func rateKey(base, target string, fxDate time.Time) string {
	return fmt.Sprintf("%s:%s:%s", strings.ToUpper(base), strings.ToUpper(target), fxDate.Format("2006-01-02"))
}

// SaveRates upserts the given rate rows.
func (r *RateRepository) SaveRates(ctx context.Context, rates []domain.ExchangeRate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rate := range rates {
		r.rates[rateKey(rate.BaseCurrencyCode, rate.TargetCurrencyCode, rate.FxDate)] = rate
	}
	return nil
}

// FindRate retrieves the rate for a pair on an exact date.
func (r *RateRepository) FindRate(ctx context.Context, baseCode, targetCode string, fxDate time.Time) (*domain.ExchangeRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rate, ok := r.rates[rateKey(baseCode, targetCode, fxDate)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &rate, nil
}

// FindRatesForDate retrieves all rate rows effective on the given date.
func (r *RateRepository) FindRatesForDate(ctx context.Context, fxDate time.Time) ([]domain.ExchangeRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	suffix := ":" + fxDate.Format("2006-01-02")
	var out []domain.ExchangeRate
	for key, rate := range r.rates {
		if strings.HasSuffix(key, suffix) {
			out = append(out, rate)
		}
	}
	return out, nil
}
