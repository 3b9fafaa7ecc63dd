package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/pennywise/fxcore_app/internal/apperrors"
	"github.com/pennywise/fxcore_app/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxFXHistoryRepository implements repositories.FXHistoryRepositoryFacade on
// PostgreSQL. Both tables are append-only; reads order by recording time.
type PgxFXHistoryRepository struct {
	db *pgxpool.Pool
}

// NewFXHistoryRepository creates a new PgxFXHistoryRepository.
func NewFXHistoryRepository(db *pgxpool.Pool) *PgxFXHistoryRepository {
	return &PgxFXHistoryRepository{db: db}
}

// AppendReconciliation inserts a reconciliation record.
func (r *PgxFXHistoryRepository) AppendReconciliation(ctx context.Context, result domain.ReconciliationResult) error {
	query := `
		INSERT INTO reconciliation_history (
			account_id, currency, period, original_balance, current_balance,
			original_rate, current_rate, fx_gain_loss, fx_gain_loss_pct,
			unrealized_gain_loss, realized_gain_loss, last_reconciliation, next_reconciliation
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := r.db.Exec(ctx, query,
		result.AccountID, result.Currency, result.Period, result.OriginalBalance,
		result.CurrentBalance, result.OriginalRate, result.CurrentRate, result.FXGainLoss,
		result.FXGainLossPercentage, result.UnrealizedGainLoss, result.RealizedGainLoss,
		result.LastReconciliation, result.NextReconciliation,
	)
	if err != nil {
		return fmt.Errorf("error inserting reconciliation record: %w", err)
	}
	return nil
}

// AppendGainLoss inserts an FX gain/loss row.
func (r *PgxFXHistoryRepository) AppendGainLoss(ctx context.Context, record domain.FXGainLoss) error {
	query := `
		INSERT INTO fx_gain_loss_history (
			account_id, currency, period, original_amount, current_amount,
			original_rate, current_rate, gain_loss, gain_loss_pct, is_realized, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(ctx, query,
		record.AccountID, record.Currency, record.Period, record.OriginalAmount,
		record.CurrentAmount, record.OriginalRate, record.CurrentRate, record.GainLoss,
		record.GainLossPercentage, record.IsRealized, record.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("error inserting fx gain/loss record: %w", err)
	}
	return nil
}

// LatestReconciliation returns the most recent reconciliation for an account.
func (r *PgxFXHistoryRepository) LatestReconciliation(ctx context.Context, accountID string) (*domain.ReconciliationResult, error) {
	query := `
		SELECT account_id, currency, period, original_balance, current_balance,
			original_rate, current_rate, fx_gain_loss, fx_gain_loss_pct,
			unrealized_gain_loss, realized_gain_loss, last_reconciliation, next_reconciliation
		FROM reconciliation_history
		WHERE account_id = $1
		ORDER BY last_reconciliation DESC
		LIMIT 1
	`
	result := &domain.ReconciliationResult{}
	err := r.db.QueryRow(ctx, query, accountID).Scan(
		&result.AccountID, &result.Currency, &result.Period, &result.OriginalBalance,
		&result.CurrentBalance, &result.OriginalRate, &result.CurrentRate, &result.FXGainLoss,
		&result.FXGainLossPercentage, &result.UnrealizedGainLoss, &result.RealizedGainLoss,
		&result.LastReconciliation, &result.NextReconciliation,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error finding latest reconciliation: %w", err)
	}
	return result, nil
}

// GainLossHistory returns the FX gain/loss rows for an account, oldest first.
func (r *PgxFXHistoryRepository) GainLossHistory(ctx context.Context, accountID string) ([]domain.FXGainLoss, error) {
	query := `
		SELECT account_id, currency, period, original_amount, current_amount,
			original_rate, current_rate, gain_loss, gain_loss_pct, is_realized, recorded_at
		FROM fx_gain_loss_history
		WHERE account_id = $1
		ORDER BY recorded_at ASC
	`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, fmt.Errorf("error listing fx gain/loss history: %w", err)
	}
	defer rows.Close()
	return scanGainLossRows(rows)
}

// LatestGainLossPerAccount returns the latest gain/loss row per account for a period.
func (r *PgxFXHistoryRepository) LatestGainLossPerAccount(ctx context.Context, period string) (map[string]domain.FXGainLoss, error) {
	query := `
		SELECT DISTINCT ON (account_id)
			account_id, currency, period, original_amount, current_amount,
			original_rate, current_rate, gain_loss, gain_loss_pct, is_realized, recorded_at
		FROM fx_gain_loss_history
		WHERE period = $1
		ORDER BY account_id, recorded_at DESC
	`
	rows, err := r.db.Query(ctx, query, period)
	if err != nil {
		return nil, fmt.Errorf("error listing fx gain/loss history: %w", err)
	}
	defer rows.Close()

	records, err := scanGainLossRows(rows)
	if err != nil {
		return nil, err
	}
	out := make(map[string]domain.FXGainLoss, len(records))
	for _, record := range records {
		out[record.AccountID] = record
	}
	return out, nil
}

func scanGainLossRows(rows pgx.Rows) ([]domain.FXGainLoss, error) {
	var records []domain.FXGainLoss
	for rows.Next() {
		var record domain.FXGainLoss
		if err := rows.Scan(
			&record.AccountID, &record.Currency, &record.Period, &record.OriginalAmount,
			&record.CurrentAmount, &record.OriginalRate, &record.CurrentRate, &record.GainLoss,
			&record.GainLossPercentage, &record.IsRealized, &record.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning fx gain/loss record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fx gain/loss records: %w", err)
	}
	return records, nil
}
