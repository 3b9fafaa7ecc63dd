package repositories

import (
	"context"

	"github.com/pennywise/fxcore_app/internal/core/domain"
)

// HistoryReader defines read operations over the reconciliation and FX gain/loss
// histories kept per account.
type HistoryReader interface {
	// LatestReconciliation returns the most recent reconciliation for an account.
	// Returns apperrors.ErrNotFound when the account has never been reconciled.
	LatestReconciliation(ctx context.Context, accountID string) (*domain.ReconciliationResult, error)

	// GainLossHistory returns the FX gain/loss rows for an account, oldest first.
	GainLossHistory(ctx context.Context, accountID string) ([]domain.FXGainLoss, error)

	// LatestGainLossPerAccount returns the latest gain/loss row per account for the
	// given accounting period.
	LatestGainLossPerAccount(ctx context.Context, period string) (map[string]domain.FXGainLoss, error)
}

// HistoryWriter defines append operations. Both histories are append-only audit trails.
type HistoryWriter interface {
	AppendReconciliation(ctx context.Context, result domain.ReconciliationResult) error
	AppendGainLoss(ctx context.Context, record domain.FXGainLoss) error
}

// FXHistoryRepositoryFacade combines the history repository interfaces.
type FXHistoryRepositoryFacade interface {
	HistoryReader
	HistoryWriter
}
