package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/pennywise/fxcore_app/internal/apperrors"
	"github.com/pennywise/fxcore_app/internal/core/domain"
	portsproviders "github.com/pennywise/fxcore_app/internal/core/ports/providers"
	portsrepo "github.com/pennywise/fxcore_app/internal/core/ports/repositories"
	portssvc "github.com/pennywise/fxcore_app/internal/core/ports/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateService owns the exchange rate store and the daily fetch. It guarantees that,
// for the current date, a best-effort rate exists for every supported currency pair
// against the base currency, degrading to previous-day stale rates when every
// provider fails.
type RateService struct {
	BaseService
	rateRepo    portsrepo.RateRepositoryFacade
	currencySvc portssvc.CurrencySvcFacade
	providers   []portsproviders.RateProvider
	baseCode    string
	now         func() time.Time
}

var _ portssvc.RateSvcFacade = (*RateService)(nil)

// RateServiceOption is a functional option for configuring the rate service.
type RateServiceOption func(*RateService)

// WithClock overrides the time source. Tests use this to pin "today".
func WithClock(now func() time.Time) RateServiceOption {
	return func(s *RateService) {
		s.now = now
	}
}

// NewRateService creates a RateService. Providers are sorted by ascending priority;
// baseCode is the currency all provider quotes are fetched against.
func NewRateService(
	rateRepo portsrepo.RateRepositoryFacade,
	currencySvc portssvc.CurrencySvcFacade,
	rateProviders []portsproviders.RateProvider,
	baseCode string,
	options ...RateServiceOption,
) *RateService {
	sorted := make([]portsproviders.RateProvider, len(rateProviders))
	copy(sorted, rateProviders)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority() < sorted[j].Priority() })

	svc := &RateService{
		rateRepo:    rateRepo,
		currencySvc: currencySvc,
		providers:   sorted,
		baseCode:    strings.ToUpper(baseCode),
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

func (s *RateService) today() time.Time {
	return domain.TruncateToDate(s.now())
}

// HasRatesForToday reports whether any rate rows exist for today's date. Used to avoid
// redundant provider calls.
func (s *RateService) HasRatesForToday(ctx context.Context) (bool, error) {
	rates, err := s.rateRepo.FindRatesForDate(ctx, s.today())
	if err != nil {
		return false, fmt.Errorf("failed to check today's rates: %w", err)
	}
	return len(rates) > 0, nil
}

// FetchFromProvider fetches the provider's latest quotes against the base currency and
// canonicalizes them: supported targets only, rate precision normalized, provenance
// stamped. Provider failures come back as apperrors.ProviderError.
func (s *RateService) FetchFromProvider(ctx context.Context, provider portsproviders.RateProvider) ([]domain.ExchangeRate, error) {
	quotes, err := provider.FetchLatest(ctx, s.baseCode)
	if err != nil {
		return nil, err
	}

	today := s.today()
	now := s.now()
	rates := make([]domain.ExchangeRate, 0, len(quotes))
	for target, rate := range quotes {
		target = strings.ToUpper(target)
		if target == s.baseCode || !s.currencySvc.IsSupported(ctx, target) {
			continue
		}
		if rate.LessThanOrEqual(decimal.Zero) {
			s.LogWarn(ctx, "Skipping non-positive provider quote",
				slog.String("provider", provider.Name()),
				slog.String("target", target))
			continue
		}
		rates = append(rates, domain.ExchangeRate{
			RateID:             uuid.NewString(),
			BaseCurrencyCode:   s.baseCode,
			TargetCurrencyCode: target,
			Rate:               domain.NormalizeRate(rate),
			FxDate:             today,
			Source:             provider.Name(),
			IsStale:            false,
			AuditFields:        domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		})
	}
	return rates, nil
}

// FetchTodaysRates iterates configured providers in ascending priority order and
// persists the first non-empty rate set. When every provider fails it falls back to
// previous-day rates. Re-running on a day that already has rates is a no-op that
// returns the stored set.
func (s *RateService) FetchTodaysRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	hasToday, err := s.HasRatesForToday(ctx)
	if err != nil {
		return nil, err
	}
	if hasToday {
		s.LogDebug(ctx, "Rates already present for today, skipping fetch")
		return s.rateRepo.FindRatesForDate(ctx, s.today())
	}

	for _, provider := range s.providers {
		rates, err := s.FetchFromProvider(ctx, provider)
		if err != nil {
			s.LogWarn(ctx, "Rate provider failed, trying next",
				slog.String("provider", provider.Name()),
				slog.String("error", err.Error()))
			continue
		}
		if len(rates) == 0 {
			s.LogWarn(ctx, "Rate provider returned no usable quotes",
				slog.String("provider", provider.Name()))
			continue
		}
		if err := s.rateRepo.SaveRates(ctx, rates); err != nil {
			return nil, fmt.Errorf("failed to store rates from %s: %w", provider.Name(), err)
		}
		s.LogInfo(ctx, "Fetched today's exchange rates",
			slog.String("provider", provider.Name()),
			slog.Int("count", len(rates)))
		return rates, nil
	}

	s.LogWarn(ctx, "All rate providers failed, falling back to previous day rates")
	return s.UsePreviousDayRates(ctx)
}

// UsePreviousDayRates clones yesterday's non-stale rates forward with today's date and
// IsStale=true. When no previous-day rates exist either it returns an empty set; the
// caller must handle the resulting no-rate state per pair.
func (s *RateService) UsePreviousDayRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	today := s.today()
	yesterday := today.AddDate(0, 0, -1)

	previous, err := s.rateRepo.FindRatesForDate(ctx, yesterday)
	if err != nil {
		return nil, fmt.Errorf("failed to read previous day rates: %w", err)
	}

	now := s.now()
	stale := make([]domain.ExchangeRate, 0, len(previous))
	for _, rate := range previous {
		if rate.IsStale {
			continue
		}
		clone := rate
		clone.RateID = uuid.NewString()
		clone.FxDate = today
		clone.IsStale = true
		clone.AuditFields = domain.AuditFields{CreatedAt: now, LastUpdatedAt: now}
		stale = append(stale, clone)
	}

	if len(stale) == 0 {
		s.LogWarn(ctx, "No previous day rates available to carry forward")
		return []domain.ExchangeRate{}, nil
	}

	if err := s.rateRepo.SaveRates(ctx, stale); err != nil {
		return nil, fmt.Errorf("failed to store carried-forward rates: %w", err)
	}
	s.LogInfo(ctx, "Carried previous day rates forward as stale", slog.Int("count", len(stale)))
	return stale, nil
}

// GetRate looks up the rate for a pair on the given date (zero means today), falling
// back one day when the exact date has no rate. Same-pair requests short-circuit to a
// synthetic rate of 1. Returns apperrors.ErrRateUnavailable when neither a fresh nor a
// stale rate can be resolved.
func (s *RateService) GetRate(ctx context.Context, baseCode, targetCode string, fxDate time.Time) (*domain.ExchangeRate, error) {
	base := strings.ToUpper(baseCode)
	target := strings.ToUpper(targetCode)
	if len(base) != 3 || len(target) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	if fxDate.IsZero() {
		fxDate = s.today()
	} else {
		fxDate = domain.TruncateToDate(fxDate)
	}

	if base == target {
		return &domain.ExchangeRate{
			BaseCurrencyCode:   base,
			TargetCurrencyCode: target,
			Rate:               decimal.NewFromInt(1),
			FxDate:             fxDate,
			Source:             domain.SameCurrencySource,
		}, nil
	}

	rate, err := s.resolveRate(ctx, base, target, fxDate)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	// One-day-back fallback.
	rate, err = s.resolveRate(ctx, base, target, fxDate.AddDate(0, 0, -1))
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: no rate for %s to %s on or before %s",
		apperrors.ErrRateUnavailable, base, target, fxDate.Format("2006-01-02"))
}

// resolveRate finds a pair's rate on an exact date: direct row, then inverse row, then
// a cross rate through the base currency both legs were quoted against.
func (s *RateService) resolveRate(ctx context.Context, base, target string, fxDate time.Time) (*domain.ExchangeRate, error) {
	direct, err := s.rateRepo.FindRate(ctx, base, target, fxDate)
	if err == nil {
		return direct, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	inverse, err := s.rateRepo.FindRate(ctx, target, base, fxDate)
	if err == nil {
		if inverse.Rate.IsZero() {
			return nil, fmt.Errorf("%w: zero inverse rate for %s to %s", apperrors.ErrRateUnavailable, target, base)
		}
		return s.derivedRate(base, target, decimal.NewFromInt(1).Div(inverse.Rate), fxDate, inverse.Source, inverse.IsStale), nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if base == s.baseCode || target == s.baseCode {
		return nil, apperrors.ErrNotFound
	}
	toTarget, err := s.rateRepo.FindRate(ctx, s.baseCode, target, fxDate)
	if err != nil {
		return nil, err
	}
	toBase, err := s.rateRepo.FindRate(ctx, s.baseCode, base, fxDate)
	if err != nil {
		return nil, err
	}
	if toBase.Rate.IsZero() {
		return nil, fmt.Errorf("%w: zero cross rate for %s", apperrors.ErrRateUnavailable, base)
	}
	cross := toTarget.Rate.Div(toBase.Rate)
	return s.derivedRate(base, target, cross, fxDate, toTarget.Source, toTarget.IsStale || toBase.IsStale), nil
}

func (s *RateService) derivedRate(base, target string, rate decimal.Decimal, fxDate time.Time, source string, isStale bool) *domain.ExchangeRate {
	now := s.now()
	return &domain.ExchangeRate{
		RateID:             uuid.NewString(),
		BaseCurrencyCode:   base,
		TargetCurrencyCode: target,
		Rate:               domain.NormalizeRate(rate),
		FxDate:             fxDate,
		Source:             source,
		IsStale:            isStale,
		AuditFields:        domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
}

// GetRatesForDate lists all rate rows effective on the given date (zero means today).
func (s *RateService) GetRatesForDate(ctx context.Context, fxDate time.Time) ([]domain.ExchangeRate, error) {
	if fxDate.IsZero() {
		fxDate = s.today()
	} else {
		fxDate = domain.TruncateToDate(fxDate)
	}
	return s.rateRepo.FindRatesForDate(ctx, fxDate)
}

// CheckStaleRates reports whether today's rate set contains any stale entries. Drives
// the user-facing "rates may be outdated" banner.
func (s *RateService) CheckStaleRates(ctx context.Context) (bool, error) {
	rates, err := s.rateRepo.FindRatesForDate(ctx, s.today())
	if err != nil {
		return false, fmt.Errorf("failed to read today's rates: %w", err)
	}
	for _, rate := range rates {
		if rate.IsStale {
			return true, nil
		}
	}
	return false, nil
}
