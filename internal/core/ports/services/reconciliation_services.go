package services

import (
	"context"

	"github.com/pennywise/fxcore_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconciliationSvcFacade periodically revalues account balances at current exchange
// rates and maintains the running FX gain/loss ledger. Account balances and original
// rates are supplied by the caller on each call; this service never reads accounts.
type ReconciliationSvcFacade interface {
	ReconcileAccount(ctx context.Context, account domain.AccountBalance, currentRate decimal.Decimal) (*domain.ReconciliationResult, error)

	// ReconcileAllAccounts fetches a fresh rate per account currency against the
	// primary currency and reconciles each account. Per-account failures are logged
	// and skipped; partial success is expected.
	ReconcileAllAccounts(ctx context.Context, accounts []domain.AccountBalance, primaryCurrency string) ([]domain.ReconciliationResult, error)

	// IsReconciliationNeeded reports whether enough time has elapsed since the last
	// reconciliation and the rate has moved beyond the configured threshold.
	IsReconciliationNeeded(ctx context.Context, accountID string, currentRate decimal.Decimal) (bool, error)

	// CalculateTotalFXGainLoss sums the latest-per-account gain/loss for a period.
	CalculateTotalFXGainLoss(ctx context.Context, period string) (*domain.FXGainLossSummary, error)

	// CheckForSignificantChanges reports whether the account's latest gain/loss
	// percentage exceeds the significant change threshold.
	CheckForSignificantChanges(ctx context.Context, accountID string) (bool, error)
}
