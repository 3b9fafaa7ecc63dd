package memory

import (
	"context"
	"sync"

	"github.com/pennywise/fxcore_app/internal/apperrors"
	"github.com/pennywise/fxcore_app/internal/core/domain"
)

// FXHistoryRepository keeps the reconciliation and FX gain/loss histories in
// mutex-guarded maps keyed by account id. Both histories are append-only.
type FXHistoryRepository struct {
	mu              sync.RWMutex
	reconciliations map[string][]domain.ReconciliationResult
	gainLoss        map[string][]domain.FXGainLoss
}

// NewFXHistoryRepository creates an empty in-memory history store.
func NewFXHistoryRepository() *FXHistoryRepository {
	return &FXHistoryRepository{
		reconciliations: make(map[string][]domain.ReconciliationResult),
		gainLoss:        make(map[string][]domain.FXGainLoss),
	}
}

// AppendReconciliation appends a reconciliation record to the account's history.
func (r *FXHistoryRepository) AppendReconciliation(ctx context.Context, result domain.ReconciliationResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reconciliations[result.AccountID] = append(r.reconciliations[result.AccountID], result)
	return nil
}

// AppendGainLoss appends an FX gain/loss row to the account's history.
func (r *FXHistoryRepository) AppendGainLoss(ctx context.Context, record domain.FXGainLoss) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gainLoss[record.AccountID] = append(r.gainLoss[record.AccountID], record)
	return nil
}

// LatestReconciliation returns the most recent reconciliation for an account.
func (r *FXHistoryRepository) LatestReconciliation(ctx context.Context, accountID string) (*domain.ReconciliationResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	history := r.reconciliations[accountID]
	if len(history) == 0 {
		return nil, apperrors.ErrNotFound
	}
	latest := history[len(history)-1]
	return &latest, nil
}

// GainLossHistory returns the FX gain/loss rows for an account, oldest first.
func (r *FXHistoryRepository) GainLossHistory(ctx context.Context, accountID string) ([]domain.FXGainLoss, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	history := r.gainLoss[accountID]
	out := make([]domain.FXGainLoss, len(history))
	copy(out, history)
	return out, nil
}

// LatestGainLossPerAccount returns the latest gain/loss row per account for a period.
func (r *FXHistoryRepository) LatestGainLossPerAccount(ctx context.Context, period string) (map[string]domain.FXGainLoss, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]domain.FXGainLoss)
	for accountID, history := range r.gainLoss {
		for i := len(history) - 1; i >= 0; i-- {
			if history[i].Period == period {
				out[accountID] = history[i]
				break
			}
		}
	}
	return out, nil
}
