package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/pennywise/fxcore_app/internal/apperrors"
	"github.com/pennywise/fxcore_app/internal/core/domain"
	portsrepo "github.com/pennywise/fxcore_app/internal/core/ports/repositories"
	portssvc "github.com/pennywise/fxcore_app/internal/core/ports/services"
	"github.com/pennywise/fxcore_app/internal/utils/fx"
	"github.com/shopspring/decimal"
)

// ReconciliationService revalues account balances at current exchange rates and keeps
// the running FX gain/loss ledger per account. Balances and original rates are
// caller-supplied on every call; the service owns only the histories behind its
// repository.
type ReconciliationService struct {
	BaseService
	historyRepo portsrepo.FXHistoryRepositoryFacade
	rateSvc     portssvc.RateReaderSvc
	config      domain.ReconciliationConfig
	now         func() time.Time
}

var _ portssvc.ReconciliationSvcFacade = (*ReconciliationService)(nil)

// ReconciliationServiceOption is a functional option for configuring the service.
type ReconciliationServiceOption func(*ReconciliationService)

// WithReconciliationClock overrides the time source for tests.
func WithReconciliationClock(now func() time.Time) ReconciliationServiceOption {
	return func(s *ReconciliationService) {
		s.now = now
	}
}

// NewReconciliationService creates a ReconciliationService.
func NewReconciliationService(
	historyRepo portsrepo.FXHistoryRepositoryFacade,
	rateSvc portssvc.RateReaderSvc,
	config domain.ReconciliationConfig,
	options ...ReconciliationServiceOption,
) *ReconciliationService {
	if !config.Frequency.Valid() {
		config.Frequency = domain.FrequencyMonthly
	}
	svc := &ReconciliationService{
		historyRepo: historyRepo,
		rateSvc:     rateSvc,
		config:      config,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// ReconcileAccount revalues one account's balance at the current rate, records the
// resulting gain/loss in both histories, and schedules the next reconciliation.
// Revaluation of a still-held balance is unrealized gain/loss by definition.
func (s *ReconciliationService) ReconcileAccount(ctx context.Context, account domain.AccountBalance, currentRate decimal.Decimal) (*domain.ReconciliationResult, error) {
	if account.AccountID == "" {
		return nil, fmt.Errorf("%w: account id is required", apperrors.ErrValidation)
	}
	if currentRate.LessThanOrEqual(decimal.Zero) || account.OriginalRate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rates must be positive", apperrors.ErrValidation)
	}
	for _, frozen := range s.config.FreezePeriods {
		if frozen == account.Period {
			return nil, fmt.Errorf("%w: accounting period %s is frozen", apperrors.ErrValidation, account.Period)
		}
	}

	originalValue := account.Balance.Mul(account.OriginalRate)
	currentBalance := account.Balance.Mul(currentRate)
	gainLoss := currentBalance.Sub(originalValue)
	gainLossPct := fx.PercentageOf(gainLoss, originalValue)

	now := s.now()
	result := &domain.ReconciliationResult{
		AccountID:            account.AccountID,
		Currency:             account.Currency,
		Period:               account.Period,
		OriginalBalance:      account.Balance,
		CurrentBalance:       currentBalance,
		OriginalRate:         account.OriginalRate,
		CurrentRate:          currentRate,
		FXGainLoss:           gainLoss,
		FXGainLossPercentage: gainLossPct,
		UnrealizedGainLoss:   gainLoss,
		RealizedGainLoss:     decimal.Zero,
		LastReconciliation:   now,
		NextReconciliation:   now.Add(s.config.Frequency.Interval()),
	}

	if err := s.historyRepo.AppendReconciliation(ctx, *result); err != nil {
		return nil, fmt.Errorf("failed to record reconciliation: %w", err)
	}
	record := domain.FXGainLoss{
		AccountID:          account.AccountID,
		Currency:           account.Currency,
		Period:             account.Period,
		OriginalAmount:     originalValue,
		CurrentAmount:      currentBalance,
		OriginalRate:       account.OriginalRate,
		CurrentRate:        currentRate,
		GainLoss:           gainLoss,
		GainLossPercentage: gainLossPct,
		IsRealized:         false,
		RecordedAt:         now,
	}
	if err := s.historyRepo.AppendGainLoss(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record fx gain/loss: %w", err)
	}

	s.LogInfo(ctx, "Account reconciled",
		slog.String("account_id", account.AccountID),
		slog.String("currency", account.Currency),
		slog.String("period", account.Period),
		slog.String("fx_gain_loss", gainLoss.String()))
	return result, nil
}

// ReconcileAllAccounts fetches a fresh rate per account currency against the primary
// currency and reconciles each account. A per-account failure is logged and skipped;
// partial success is expected and acceptable.
func (s *ReconciliationService) ReconcileAllAccounts(ctx context.Context, accounts []domain.AccountBalance, primaryCurrency string) ([]domain.ReconciliationResult, error) {
	results := make([]domain.ReconciliationResult, 0, len(accounts))
	for _, account := range accounts {
		rate, err := s.rateSvc.GetRate(ctx, account.Currency, primaryCurrency, time.Time{})
		if err != nil {
			s.LogWarn(ctx, "Skipping account, no current rate",
				slog.String("account_id", account.AccountID),
				slog.String("currency", account.Currency),
				slog.String("error", err.Error()))
			continue
		}
		result, err := s.ReconcileAccount(ctx, account, rate.Rate)
		if err != nil {
			s.LogWarn(ctx, "Skipping account, reconciliation failed",
				slog.String("account_id", account.AccountID),
				slog.String("error", err.Error()))
			continue
		}
		results = append(results, *result)
	}
	return results, nil
}

// IsReconciliationNeeded reports whether the account is due again: enough time elapsed
// since the last reconciliation AND the rate has moved beyond the configured threshold
// relative to the rate used last time. A never-reconciled account is always due.
func (s *ReconciliationService) IsReconciliationNeeded(ctx context.Context, accountID string, currentRate decimal.Decimal) (bool, error) {
	last, err := s.historyRepo.LatestReconciliation(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("failed to read reconciliation history: %w", err)
	}

	if s.now().Sub(last.LastReconciliation) < s.config.Frequency.Interval() {
		return false, nil
	}
	rateMove := fx.PercentageChange(last.CurrentRate, currentRate).Abs()
	return rateMove.GreaterThan(s.config.ThresholdPercentage), nil
}

// CalculateTotalFXGainLoss sums the latest-per-account gain/loss for an accounting
// period, with a per-account breakdown.
func (s *ReconciliationService) CalculateTotalFXGainLoss(ctx context.Context, period string) (*domain.FXGainLossSummary, error) {
	latest, err := s.historyRepo.LatestGainLossPerAccount(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("failed to read fx gain/loss history: %w", err)
	}

	summary := &domain.FXGainLossSummary{
		Period:     period,
		Total:      decimal.Zero,
		ByAccount:  make(map[string]decimal.Decimal, len(latest)),
		AccountIDs: make([]string, 0, len(latest)),
	}
	for accountID, record := range latest {
		summary.ByAccount[accountID] = record.GainLoss
		summary.AccountIDs = append(summary.AccountIDs, accountID)
		summary.Total = summary.Total.Add(record.GainLoss)
	}
	sort.Strings(summary.AccountIDs)
	return summary, nil
}

// CheckForSignificantChanges reports whether the account's latest gain/loss percentage
// exceeds the significant change threshold. Always false when significant-change
// notifications are disabled.
func (s *ReconciliationService) CheckForSignificantChanges(ctx context.Context, accountID string) (bool, error) {
	if !s.config.NotifyOnSignificantChanges {
		return false, nil
	}
	history, err := s.historyRepo.GainLossHistory(ctx, accountID)
	if err != nil {
		return false, fmt.Errorf("failed to read fx gain/loss history: %w", err)
	}
	if len(history) == 0 {
		return false, nil
	}
	latest := history[len(history)-1]
	return latest.GainLossPercentage.Abs().GreaterThan(s.config.SignificantChangeThreshold), nil
}
